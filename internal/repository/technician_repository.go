package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// TechnicianRepository encapsulates technician persistence, including the
// load ledger. IncrementLoad and DecrementLoad are the only two mutations
// technician records undergo outside of administrative onboarding; both
// are atomic per technician at the storage layer and no-ops for unknown
// names.
type TechnicianRepository interface {
	Create(ctx context.Context, technician *domain.Technician) error
	GetByName(ctx context.Context, name string) (*domain.Technician, error)
	ListByRole(ctx context.Context, role domain.Trade) ([]domain.Technician, error)
	ListAll(ctx context.Context) ([]domain.Technician, error)
	IncrementLoad(ctx context.Context, name string) error
	DecrementLoad(ctx context.Context, name string) error
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository instantiates the postgres-backed repository.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

const technicianColumns = `name, role, start_time, end_time, current_load, status, password_hash`

func (r *technicianRepository) Create(ctx context.Context, technician *domain.Technician) error {
	const query = `
        INSERT INTO technicians (name, role, start_time, end_time, current_load, status, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.pool.Exec(ctx, query,
		technician.Name,
		technician.Role,
		technician.StartTime,
		technician.EndTime,
		technician.CurrentLoad,
		technician.Status,
		technician.PasswordHash,
	)
	return err
}

func (r *technicianRepository) GetByName(ctx context.Context, name string) (*domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE name=$1`
	var technician domain.Technician
	if err := r.pool.QueryRow(ctx, query, name).Scan(
		&technician.Name,
		&technician.Role,
		&technician.StartTime,
		&technician.EndTime,
		&technician.CurrentLoad,
		&technician.Status,
		&technician.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) ListByRole(ctx context.Context, role domain.Trade) ([]domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE role=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

func (r *technicianRepository) ListAll(ctx context.Context) ([]domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicians(rows)
}

// IncrementLoad raises the active-job count by one and forces busy status.
func (r *technicianRepository) IncrementLoad(ctx context.Context, name string) error {
	const query = `UPDATE technicians SET current_load = current_load + 1, status = 'busy' WHERE name=$1`
	_, err := r.pool.Exec(ctx, query, name)
	return err
}

// DecrementLoad lowers the active-job count, floored at zero, and derives
// status so that free always means zero load.
func (r *technicianRepository) DecrementLoad(ctx context.Context, name string) error {
	const query = `
        UPDATE technicians
        SET current_load = GREATEST(current_load - 1, 0),
            status = CASE WHEN current_load <= 1 THEN 'free' ELSE 'busy' END
        WHERE name=$1`
	_, err := r.pool.Exec(ctx, query, name)
	return err
}

func scanTechnicians(rows pgx.Rows) ([]domain.Technician, error) {
	var result []domain.Technician
	for rows.Next() {
		var technician domain.Technician
		if err := rows.Scan(
			&technician.Name,
			&technician.Role,
			&technician.StartTime,
			&technician.EndTime,
			&technician.CurrentLoad,
			&technician.Status,
			&technician.PasswordHash,
		); err != nil {
			return nil, err
		}
		result = append(result, technician)
	}
	return result, rows.Err()
}
