package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-helpdesk/internal/intake"
)

// MaintenanceMapRepository backs the auxiliary issue→technician lookup
// table. Each entry pairs a free-text issue description with the name of
// the technician who historically handled it.
type MaintenanceMapRepository interface {
	intake.IssueLookup
	Add(ctx context.Context, issue, technician string) error
}

type maintenanceMapRepository struct {
	pool *pgxpool.Pool
}

// NewMaintenanceMapRepository instantiates the postgres-backed repository.
func NewMaintenanceMapRepository(pool *pgxpool.Pool) MaintenanceMapRepository {
	return &maintenanceMapRepository{pool: pool}
}

func (r *maintenanceMapRepository) Add(ctx context.Context, issue, technician string) error {
	const query = `INSERT INTO maintenance_map (issue, technician) VALUES ($1,$2) ON CONFLICT (issue) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, issue, technician)
	return err
}

// Lookup scans entries in insertion order and returns the technician of
// the first entry any of whose issue words occurs in the query. Misses
// report intake.LookupUnknown, mirroring the mapping table contract.
func (r *maintenanceMapRepository) Lookup(ctx context.Context, query string) (string, error) {
	rows, err := r.pool.Query(ctx, `SELECT issue, technician FROM maintenance_map ORDER BY id ASC`)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	for rows.Next() {
		var issue, technician string
		if err := rows.Scan(&issue, &technician); err != nil {
			return "", err
		}
		if issueMatches(issue, query) {
			return technician, nil
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return intake.LookupUnknown, nil
}

func issueMatches(issue, query string) bool {
	for _, word := range strings.Fields(strings.ToLower(issue)) {
		if strings.Contains(query, word) {
			return true
		}
	}
	return false
}
