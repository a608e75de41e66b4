package postgres

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	const query = `
        SELECT id, title, description, author_id, status, created_at, updated_at
          FROM courses
         WHERE id = $1
    `
	course := &models.Course{}
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.AuthorID,
		&course.Status,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}

	return course, nil
}

func (r *CoursePostgres) ListPublicPreviews(ctx context.Context) ([]models.CoursePreview, error) {
	const query = `
        SELECT id, title, description
          FROM courses
         WHERE status = $1
         ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, models.StatusPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var previews []models.CoursePreview
	for rows.Next() {
		var p models.CoursePreview
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}
	return previews, rows.Err()
}

// PreviewsByIDs keeps the order of ids, which carries search relevance.
func (r *CoursePostgres) PreviewsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.CoursePreview, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, title, description
          FROM courses
         WHERE id = ANY($1) AND status = $2
    `
	rows, err := r.db.Query(ctx, query, ids, models.StatusPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]models.CoursePreview, len(ids))
	for rows.Next() {
		var p models.CoursePreview
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	previews := make([]models.CoursePreview, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			previews = append(previews, p)
		}
	}
	return previews, nil
}
