package progress

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type lessonRepo interface {
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (models.Lesson, error)
}

type progressRepo interface {
	UpsertPosition(ctx context.Context, lessonID, userID uuid.UUID, positionSeconds int) error
	SetCompleted(ctx context.Context, lessonID, userID uuid.UUID, isCompleted bool) error
	GetProgress(ctx context.Context, lessonID, userID uuid.UUID) (*models.LessonProgress, error)
	ProgressByCourse(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]models.LessonProgress, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

// ProgressService persists what the player reports: watch positions,
// end-of-playback, and completion toggles.
type ProgressService struct {
	log          logger.Log
	lessonRepo   lessonRepo
	progressRepo progressRepo
	enrollments  enrollmentRepo
}

func NewProgressService(log logger.Log, l lessonRepo, p progressRepo, e enrollmentRepo) *ProgressService {
	return &ProgressService{
		log:          log,
		lessonRepo:   l,
		progressRepo: p,
		enrollments:  e,
	}
}

// SaveVideoProgress records the last watched position for a video lesson.
// Positions for non-video lessons are rejected.
func (s *ProgressService) SaveVideoProgress(ctx context.Context, lessonID, userID uuid.UUID, positionSeconds int) error {
	lesson, err := s.requireEnrolledLesson(ctx, lessonID, userID)
	if err != nil {
		return err
	}
	if lesson.LessonType != models.LessonTypeVideo {
		return fmt.Errorf("lesson %s is not a video lesson", lessonID)
	}
	if positionSeconds < 0 {
		positionSeconds = 0
	}
	return s.progressRepo.UpsertPosition(ctx, lessonID, userID, positionSeconds)
}

// VideoEnded marks a video lesson completed after natural end of playback.
func (s *ProgressService) VideoEnded(ctx context.Context, lessonID, userID uuid.UUID) error {
	lesson, err := s.requireEnrolledLesson(ctx, lessonID, userID)
	if err != nil {
		return err
	}
	if lesson.LessonType != models.LessonTypeVideo {
		return fmt.Errorf("lesson %s is not a video lesson", lessonID)
	}
	return s.progressRepo.SetCompleted(ctx, lessonID, userID, true)
}

// MarkLessonCompleted sets the completion flag either way; it backs both the
// manual toggle and the player's consumption-gated completion.
func (s *ProgressService) MarkLessonCompleted(ctx context.Context, lessonID, userID uuid.UUID, isCompleted bool) error {
	if _, err := s.requireEnrolledLesson(ctx, lessonID, userID); err != nil {
		return err
	}
	return s.progressRepo.SetCompleted(ctx, lessonID, userID, isCompleted)
}

func (s *ProgressService) LessonProgress(ctx context.Context, lessonID, userID uuid.UUID) (*models.LessonProgress, error) {
	if _, err := s.requireEnrolledLesson(ctx, lessonID, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetProgress(ctx, lessonID, userID)
}

// CourseProgress returns the learner's per-lesson progress map for a course.
func (s *ProgressService) CourseProgress(ctx context.Context, courseID, userID uuid.UUID) (map[uuid.UUID]models.LessonProgress, error) {
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, app_errors.ErrNotEnrolled
	}
	return s.progressRepo.ProgressByCourse(ctx, courseID, userID)
}

func (s *ProgressService) requireEnrolledLesson(ctx context.Context, lessonID, userID uuid.UUID) (models.Lesson, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return models.Lesson{}, err
	}
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, lesson.CourseID)
	if err != nil {
		return models.Lesson{}, err
	}
	if !enrolled {
		return models.Lesson{}, app_errors.ErrNotEnrolled
	}
	return lesson, nil
}
