package course

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

type CourseService interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	SearchCourses(ctx context.Context, query string) ([]models.CoursePreview, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) error
	EnrolledCourses(ctx context.Context, userID uuid.UUID) ([]models.CoursePreview, error)
}

type CourseHandler struct {
	log     logger.Log
	service CourseService
}

func NewCourseHandler(l logger.Log, s CourseService) *CourseHandler {
	return &CourseHandler{log: l, service: s}
}

// ListCourses returns public course previews. With ?q= it runs the catalog
// search and returns previews in relevance order.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	previews, err := h.service.SearchCourses(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.ErrorErr("failed to list courses", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courses"})
		return
	}
	if previews == nil {
		previews = []models.CoursePreview{}
	}
	c.JSON(http.StatusOK, gin.H{"courses": previews})
}

func (h *CourseHandler) CourseByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}
	course, err := h.service.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) || errors.Is(err, app_errors.ErrCourseNotPublished) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		h.log.ErrorErr("failed to get course", err, "course_id", courseID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
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
	if err := h.service.Enroll(c.Request.Context(), userID, courseID); err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound), errors.Is(err, app_errors.ErrCourseNotPublished):
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		case errors.Is(err, app_errors.ErrAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": "already enrolled"})
		default:
			h.log.ErrorErr("failed to enroll", err, "course_id", courseID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enroll"})
		}
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CourseHandler) EnrolledCourses(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	previews, err := h.service.EnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		h.log.ErrorErr("failed to list enrolled courses", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list enrolled courses"})
		return
	}
	if previews == nil {
		previews = []models.CoursePreview{}
	}
	c.JSON(http.StatusOK, gin.H{"courses": previews})
}
