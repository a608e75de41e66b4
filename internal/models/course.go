package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusHidden = "hidden"
	StatusPublic = "public"
)

type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AuthorID    uuid.UUID `json:"author_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CoursePreview struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// Contents is one module of the course outline with its ordered lessons.
type Contents struct {
	Module  Module   `json:"module"`
	Lessons []Lesson `json:"lessons"`
}

// CourseOutline is the full outline plus the requesting learner's per-lesson
// progress, keyed by lesson ID. The player flattens Modules into a single
// ordered lesson list for prev/next navigation.
type CourseOutline struct {
	Course   Course                       `json:"course"`
	Modules  []Contents                   `json:"modules"`
	Progress map[uuid.UUID]LessonProgress `json:"progress"`
}

type Enrollment struct {
	UserID    uuid.UUID `json:"user_id"`
	CourseID  uuid.UUID `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
