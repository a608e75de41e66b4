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

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

func (r *LessonPostgres) GetLessonByID(ctx context.Context, id uuid.UUID) (models.Lesson, error) {
	var lesson models.Lesson
	query := `
    SELECT id, course_id, module_id, lesson_title, lesson_order, lesson_type,
           video_source_type, external_video_id, text_content, created_at, updated_at
      FROM lessons
     WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&lesson.ID, &lesson.CourseID, &lesson.ModuleID,
		&lesson.LessonTitle, &lesson.LessonOrder, &lesson.LessonType,
		&lesson.VideoSourceType, &lesson.ExternalVideoID, &lesson.TextContent,
		&lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Lesson{}, app_errors.ErrLessonNotFound
		}
		return models.Lesson{}, fmt.Errorf("failed to query lesson: %w", err)
	}
	return lesson, nil
}

func (r *LessonPostgres) CourseContent(ctx context.Context, courseID uuid.UUID) ([]models.Contents, error) {
	modulesQuery := `
        SELECT id, course_id, title, module_order, created_at, updated_at
        FROM modules
        WHERE course_id = $1
        ORDER BY module_order
    `
	rows, err := r.db.Query(ctx, modulesQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Order, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	lessonsQuery := `
        SELECT id, course_id, module_id, lesson_title, lesson_order, lesson_type,
               video_source_type, external_video_id, text_content, created_at, updated_at
        FROM lessons
        WHERE course_id = $1
        ORDER BY module_id, lesson_order
    `
	lessonRows, err := r.db.Query(ctx, lessonsQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer lessonRows.Close()

	lessonsByModule := make(map[uuid.UUID][]models.Lesson)
	for lessonRows.Next() {
		var l models.Lesson
		if err := lessonRows.Scan(
			&l.ID, &l.CourseID, &l.ModuleID, &l.LessonTitle, &l.LessonOrder, &l.LessonType,
			&l.VideoSourceType, &l.ExternalVideoID, &l.TextContent, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		lessonsByModule[l.ModuleID] = append(lessonsByModule[l.ModuleID], l)
	}

	var content []models.Contents
	for _, mod := range modules {
		content = append(content, models.Contents{
			Module:  mod,
			Lessons: lessonsByModule[mod.ID],
		})
	}
	return content, nil
}
