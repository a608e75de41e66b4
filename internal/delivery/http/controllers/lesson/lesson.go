package lesson

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/delivery/http/controllers/middleware"
	"CourseFlow/internal/models"
	"CourseFlow/internal/player"
	"CourseFlow/pkg/logger"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonService interface {
	LessonDetail(ctx context.Context, lessonID, userID uuid.UUID) (models.LessonDetail, error)
	CourseOutline(ctx context.Context, courseID, userID uuid.UUID) (models.CourseOutline, error)
}

type VideoService interface {
	SignedVideoURL(ctx context.Context, lessonID, userID uuid.UUID) (string, error)
}

type ProgressService interface {
	SaveVideoProgress(ctx context.Context, lessonID, userID uuid.UUID, positionSeconds int) error
	VideoEnded(ctx context.Context, lessonID, userID uuid.UUID) error
	MarkLessonCompleted(ctx context.Context, lessonID, userID uuid.UUID, isCompleted bool) error
}

type LessonHandler struct {
	log      logger.Log
	lessons  LessonService
	videos   VideoService
	progress ProgressService
}

func NewLessonHandler(l logger.Log, lessons LessonService, videos VideoService, progress ProgressService) *LessonHandler {
	return &LessonHandler{
		log:      l,
		lessons:  lessons,
		videos:   videos,
		progress: progress,
	}
}

func (h *LessonHandler) CourseOutline(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	outline, err := h.lessons.CourseOutline(c.Request.Context(), courseID, userID)
	if err != nil {
		h.respondError(c, err, "failed to get course outline")
		return
	}
	c.JSON(http.StatusOK, outline)
}

func (h *LessonHandler) LessonDetail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	detail, err := h.lessons.LessonDetail(c.Request.Context(), lessonID, userID)
	if err != nil {
		h.respondError(c, err, "failed to get lesson")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// LessonView returns the lesson with its rendered content view: the resolved
// playback state for video lessons, the text body, or the quiz entry point.
// Viewing a text lesson marks it completed.
func (h *LessonHandler) LessonView(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	detail, err := h.lessons.LessonDetail(c.Request.Context(), lessonID, userID)
	if err != nil {
		h.respondError(c, err, "failed to get lesson")
		return
	}

	var q player.SignedURLQuery
	if detail.Lesson.LessonType == models.LessonTypeVideo &&
		detail.Lesson.VideoSourceType != nil &&
		*detail.Lesson.VideoSourceType == models.VideoSourceCloudinary {
		url, err := h.videos.SignedVideoURL(c.Request.Context(), lessonID, userID)
		if err != nil {
			q.Err = app_errors.ErrVideoUnavailable
			h.log.ErrorErr("failed to sign video url", err, "lesson_id", lessonID)
		} else {
			q.URL = url
		}
	}

	renderer := player.NewContentRenderer(h.log, &userProgressSink{progress: h.progress, userID: userID})
	view := renderer.View(detail, q)
	renderer.LessonShown(c.Request.Context(), detail)

	c.JSON(http.StatusOK, gin.H{
		"lesson":   detail.Lesson,
		"progress": detail.Progress,
		"view":     view,
	})
}

func (h *LessonHandler) VideoURL(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	url, err := h.videos.SignedVideoURL(c.Request.Context(), lessonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrMissingVideoSource),
			errors.Is(err, app_errors.ErrMissingVideoID),
			errors.Is(err, app_errors.ErrUnknownVideoSource):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.respondError(c, err, "failed to sign video url")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

type saveProgressRequest struct {
	PositionSeconds int `json:"position_seconds" binding:"min=0"`
}

func (h *LessonHandler) SaveProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.progress.SaveVideoProgress(c.Request.Context(), lessonID, userID, req.PositionSeconds); err != nil {
		h.respondError(c, err, "failed to save progress")
		return
	}
	c.Status(http.StatusNoContent)
}

// VideoEnded marks a video lesson completed after natural end of playback.
func (h *LessonHandler) VideoEnded(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	if err := h.progress.VideoEnded(c.Request.Context(), lessonID, userID); err != nil {
		h.respondError(c, err, "failed to record end of playback")
		return
	}
	c.Status(http.StatusNoContent)
}

type completionRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// SetCompletion backs the manual completion toggle.
func (h *LessonHandler) SetCompletion(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return
	}
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.progress.MarkLessonCompleted(c.Request.Context(), lessonID, userID, req.IsCompleted); err != nil {
		h.respondError(c, err, "failed to set completion")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LessonHandler) respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, app_errors.ErrLessonNotFound), errors.Is(err, app_errors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, app_errors.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled"})
	default:
		h.log.ErrorErr(msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// userProgressSink binds the request's user to the player's progress sink.
type userProgressSink struct {
	progress ProgressService
	userID   uuid.UUID
}

func (s *userProgressSink) SaveVideoProgress(ctx context.Context, lessonID uuid.UUID, positionSeconds int) error {
	return s.progress.SaveVideoProgress(ctx, lessonID, s.userID, positionSeconds)
}

func (s *userProgressSink) MarkLessonCompleted(ctx context.Context, lessonID uuid.UUID, isCompleted bool) error {
	return s.progress.MarkLessonCompleted(ctx, lessonID, s.userID, isCompleted)
}
