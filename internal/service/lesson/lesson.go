package lesson

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"

	"github.com/google/uuid"
)

type lessonRepo interface {
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (models.Lesson, error)
	CourseContent(ctx context.Context, courseID uuid.UUID) ([]models.Contents, error)
}

type progressRepo interface {
	GetProgress(ctx context.Context, lessonID, userID uuid.UUID) (*models.LessonProgress, error)
	ProgressByCourse(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]models.LessonProgress, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

// LessonService serves the learner-facing lesson reads: the active lesson
// with the learner's progress, and the full course outline the player
// flattens for navigation.
type LessonService struct {
	log          logger.Log
	lessonRepo   lessonRepo
	progressRepo progressRepo
	courseRepo   courseRepo
	enrollments  enrollmentRepo
}

func NewLessonService(log logger.Log, l lessonRepo, p progressRepo, c courseRepo, e enrollmentRepo) *LessonService {
	return &LessonService{
		log:          log,
		lessonRepo:   l,
		progressRepo: p,
		courseRepo:   c,
		enrollments:  e,
	}
}

func (s *LessonService) LessonDetail(ctx context.Context, lessonID, userID uuid.UUID) (models.LessonDetail, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return models.LessonDetail{}, err
	}
	if err := s.requireEnrollment(ctx, userID, lesson.CourseID); err != nil {
		return models.LessonDetail{}, err
	}

	detail := models.LessonDetail{Lesson: lesson}
	progress, err := s.progressRepo.GetProgress(ctx, lessonID, userID)
	if err == nil && progress != nil {
		detail.Progress = progress
	}
	return detail, nil
}

// CourseOutline returns the outline with the learner's progress map.
func (s *LessonService) CourseOutline(ctx context.Context, courseID, userID uuid.UUID) (models.CourseOutline, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return models.CourseOutline{}, err
	}
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return models.CourseOutline{}, err
	}

	modules, err := s.lessonRepo.CourseContent(ctx, courseID)
	if err != nil {
		return models.CourseOutline{}, err
	}
	progress, err := s.progressRepo.ProgressByCourse(ctx, courseID, userID)
	if err != nil {
		return models.CourseOutline{}, err
	}
	return models.CourseOutline{Course: *course, Modules: modules, Progress: progress}, nil
}

func (s *LessonService) requireEnrollment(ctx context.Context, userID, courseID uuid.UUID) error {
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return app_errors.ErrNotEnrolled
	}
	return nil
}
