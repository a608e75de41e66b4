package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

func (r *EnrollmentPostgres) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
        )
    `
	var enrolled bool
	if err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}

func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, userID, courseID uuid.UUID) error {
	const query = `
        INSERT INTO enrollments (user_id, course_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, course_id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentPostgres) CoursesByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
        SELECT course_id FROM enrollments WHERE user_id = $1 ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
