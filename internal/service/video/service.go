package video

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"
	"time"

	"github.com/google/uuid"
)

type lessonRepo interface {
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (models.Lesson, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type mediaStorage interface {
	PresignedVideoURL(ctx context.Context, objectKey string) (string, error)
}

type urlCache interface {
	GetVideoURL(ctx context.Context, lessonID uuid.UUID) (string, bool, error)
	SetVideoURL(ctx context.Context, lessonID uuid.UUID, url string, ttl time.Duration) error
}

// VideoService issues signed playback URLs for self-hosted lesson videos.
// URLs stay valid for the presign TTL; the cache keeps remounts within that
// window from re-signing.
type VideoService struct {
	log          logger.Log
	lessonRepo   lessonRepo
	enrollments  enrollmentRepo
	mediaStorage mediaStorage
	cache        urlCache
	cacheTTL     time.Duration
}

func NewVideoService(log logger.Log, l lessonRepo, e enrollmentRepo, m mediaStorage, c urlCache, cacheTTL time.Duration) *VideoService {
	return &VideoService{
		log:          log,
		lessonRepo:   l,
		enrollments:  e,
		mediaStorage: m,
		cache:        c,
		cacheTTL:     cacheTTL,
	}
}

// SignedVideoURL returns a time-limited playback URL for a lesson's
// self-hosted video. Provider-embed lessons never reach the signer; their
// URLs are derived client-side from the external ID.
func (s *VideoService) SignedVideoURL(ctx context.Context, lessonID, userID uuid.UUID) (string, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return "", err
	}

	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, lesson.CourseID)
	if err != nil {
		return "", err
	}
	if !enrolled {
		return "", app_errors.ErrNotEnrolled
	}

	if lesson.LessonType != models.LessonTypeVideo || lesson.VideoSourceType == nil {
		return "", app_errors.ErrMissingVideoSource
	}
	if *lesson.VideoSourceType != models.VideoSourceCloudinary {
		return "", app_errors.ErrUnknownVideoSource
	}
	if lesson.ExternalVideoID == nil || *lesson.ExternalVideoID == "" {
		return "", app_errors.ErrMissingVideoID
	}

	if url, ok, err := s.cache.GetVideoURL(ctx, lessonID); err != nil {
		s.log.ErrorErr("video url cache read failed", err, "lesson_id", lessonID)
	} else if ok {
		return url, nil
	}

	url, err := s.mediaStorage.PresignedVideoURL(ctx, *lesson.ExternalVideoID)
	if err != nil {
		return "", err
	}

	if err := s.cache.SetVideoURL(ctx, lessonID, url, s.cacheTTL); err != nil {
		s.log.ErrorErr("video url cache write failed", err, "lesson_id", lessonID)
	}
	return url, nil
}
