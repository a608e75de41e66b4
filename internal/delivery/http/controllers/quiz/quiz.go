package quiz

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/delivery/http/controllers/middleware"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuizService interface {
	StartAttempt(ctx context.Context, lessonID, userID uuid.UUID) (*models.QuizAttempt, error)
	SubmitAttempt(ctx context.Context, attemptID, userID uuid.UUID, answers []models.QuizAnswer) (*models.QuizAttemptResult, error)
	AttemptResult(ctx context.Context, attemptID, userID uuid.UUID) (*models.QuizAttemptResult, error)
}

type QuizHandler struct {
	log     logger.Log
	service QuizService
}

func NewQuizHandler(l logger.Log, s QuizService) *QuizHandler {
	return &QuizHandler{log: l, service: s}
}

// StartAttempt opens a fresh attempt for the lesson's quiz, discarding any
// attempt still in progress. Questions come back without correctness data.
func (h *QuizHandler) StartAttempt(c *gin.Context) {
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
	attempt, err := h.service.StartAttempt(c.Request.Context(), lessonID, userID)
	if err != nil {
		h.respondError(c, err, "failed to start attempt")
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

type submitRequest struct {
	Answers []models.QuizAnswer `json:"answers" binding:"required"`
}

func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result, err := h.service.SubmitAttempt(c.Request.Context(), attemptID, userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUnansweredQuestions):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrAttemptSubmitted):
			c.JSON(http.StatusConflict, gin.H{"error": "attempt already submitted"})
		default:
			h.respondError(c, err, "failed to submit attempt")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) AttemptResult(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	attemptID, err := uuid.Parse(c.Param("attempt_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attempt id"})
		return
	}
	result, err := h.service.AttemptResult(c.Request.Context(), attemptID, userID)
	if err != nil {
		h.respondError(c, err, "failed to get attempt result")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, app_errors.ErrLessonNotFound),
		errors.Is(err, app_errors.ErrQuizNotFound),
		errors.Is(err, app_errors.ErrAttemptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, app_errors.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": "not enrolled"})
	default:
		h.log.ErrorErr(msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
