package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// StudentRepository encapsulates student records. Read-only from the
// intake engine's perspective; Create exists for onboarding and seeding.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, studentID string) (*domain.Student, error)
}

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository instantiates the postgres-backed repository.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (student_id, name, password_hash)
        VALUES ($1,$2,$3)
        ON CONFLICT (student_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, student.StudentID, student.Name, student.PasswordHash)
	return err
}

func (r *studentRepository) GetByID(ctx context.Context, studentID string) (*domain.Student, error) {
	const query = `SELECT student_id, name, password_hash FROM students WHERE student_id=$1`
	var student domain.Student
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&student.StudentID,
		&student.Name,
		&student.PasswordHash,
	); err != nil {
		return nil, err
	}
	return &student, nil
}
