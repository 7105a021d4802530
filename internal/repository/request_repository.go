package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Request, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Request, error)
	ListByTechnician(ctx context.Context, name string) ([]domain.Request, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	// UpdateStatus atomically swaps the status and reports the previous
	// status plus the assigned technician, which the caller needs to
	// apply the load-ledger coupling exactly once. A request already in
	// a terminal status is left untouched; the returned previous status
	// tells the caller the swap was refused.
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (technician *string, previous domain.RequestStatus, err error)
	CountByCategory(ctx context.Context) (map[domain.Category]int, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates the postgres-backed repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `request_id, student_id, query, category, technician,
       start_time, end_time, assigned_time, student_free_time, status`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (request_id, student_id, query, category, technician,
            start_time, end_time, assigned_time, student_free_time, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		request.RequestID,
		request.StudentID,
		request.Query,
		request.Category,
		request.Technician,
		request.StartTime,
		request.EndTime,
		request.AssignedTime,
		request.StudentFreeTime,
		request.Status,
	)
	return err
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE request_id=$1`
	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.RequestID,
		&request.StudentID,
		&request.Query,
		&request.Category,
		&request.Technician,
		&request.StartTime,
		&request.EndTime,
		&request.AssignedTime,
		&request.StudentFreeTime,
		&request.Status,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListRecent(ctx context.Context, limit int) ([]domain.Request, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE student_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByTechnician(ctx context.Context, name string) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE technician=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*string, domain.RequestStatus, error) {
	const query = `
        UPDATE requests r
        SET status = CASE WHEN prev.old_status IN ('resolved','completed') THEN r.status ELSE $2 END
        FROM (SELECT request_id, status AS old_status FROM requests WHERE request_id=$1 FOR UPDATE) prev
        WHERE r.request_id = prev.request_id
        RETURNING r.technician, prev.old_status`
	var technician *string
	var previous domain.RequestStatus
	if err := r.pool.QueryRow(ctx, query, id, status).Scan(&technician, &previous); err != nil {
		return nil, "", err
	}
	return technician, previous, nil
}

func (r *requestRepository) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT category, COUNT(*) FROM requests GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Category]int)
	for rows.Next() {
		var category domain.Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.RequestID,
			&request.StudentID,
			&request.Query,
			&request.Category,
			&request.Technician,
			&request.StartTime,
			&request.EndTime,
			&request.AssignedTime,
			&request.StudentFreeTime,
			&request.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
