package postgres

import (
	"CourseFlow/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

func (r *ProgressPostgres) UpsertPosition(ctx context.Context, lessonID, userID uuid.UUID, positionSeconds int) error {
	query := `
        INSERT INTO lesson_progress (user_id, lesson_id, last_watched_position, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, lesson_id)
        DO UPDATE SET last_watched_position = $3, updated_at = NOW()
    `
	if _, err := r.db.Exec(ctx, query, userID, lessonID, positionSeconds); err != nil {
		return fmt.Errorf("failed to upsert watch position: %w", err)
	}
	return nil
}

func (r *ProgressPostgres) SetCompleted(ctx context.Context, lessonID, userID uuid.UUID, isCompleted bool) error {
	query := `
        INSERT INTO lesson_progress (user_id, lesson_id, is_completed, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, lesson_id)
        DO UPDATE SET is_completed = $3, updated_at = NOW()
    `
	if _, err := r.db.Exec(ctx, query, userID, lessonID, isCompleted); err != nil {
		return fmt.Errorf("failed to set completion: %w", err)
	}
	return nil
}

func (r *ProgressPostgres) GetProgress(ctx context.Context, lessonID, userID uuid.UUID) (*models.LessonProgress, error) {
	query := `
        SELECT user_id, lesson_id, is_completed, last_watched_position, updated_at
          FROM lesson_progress
         WHERE user_id = $1 AND lesson_id = $2
    `
	var p models.LessonProgress
	err := r.db.QueryRow(ctx, query, userID, lessonID).Scan(
		&p.UserID, &p.LessonID, &p.IsCompleted, &p.LastWatchedPosition, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	return &p, nil
}

func (r *ProgressPostgres) ProgressByCourse(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]models.LessonProgress, error) {
	query := `
        SELECT p.user_id, p.lesson_id, p.is_completed, p.last_watched_position, p.updated_at
          FROM lesson_progress p
          JOIN lessons l ON l.id = p.lesson_id
         WHERE p.user_id = $1 AND l.course_id = $2
    `
	rows, err := r.db.Query(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[uuid.UUID]models.LessonProgress)
	for rows.Next() {
		var p models.LessonProgress
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.IsCompleted, &p.LastWatchedPosition, &p.UpdatedAt); err != nil {
			return nil, err
		}
		progress[p.LessonID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progress, nil
}
