package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	LessonTypeVideo = "video"
	LessonTypeText  = "text"
	LessonTypeQuiz  = "quiz"

	VideoSourceCloudinary = "cloudinary"
	VideoSourceYouTube    = "youtube"
	VideoSourceVimeo      = "vimeo"
)

type Lesson struct {
	ID              uuid.UUID `json:"id"`
	CourseID        uuid.UUID `json:"course_id"`
	ModuleID        uuid.UUID `json:"module_id"`
	LessonTitle     string    `json:"lesson_title"`
	LessonOrder     int       `json:"lesson_order"`
	LessonType      string    `json:"lesson_type"`
	VideoSourceType *string   `json:"video_source_type,omitempty"`
	ExternalVideoID *string   `json:"external_video_id,omitempty"`
	TextContent     *string   `json:"text_content,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LessonProgress struct {
	UserID              uuid.UUID `json:"user_id"`
	LessonID            uuid.UUID `json:"lesson_id"`
	IsCompleted         bool      `json:"is_completed"`
	LastWatchedPosition *int      `json:"last_watched_position,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// LessonDetail is what the player receives for the active lesson: the lesson
// itself plus the requesting learner's progress record, if any.
type LessonDetail struct {
	Lesson   Lesson          `json:"lesson"`
	Progress *LessonProgress `json:"progress,omitempty"`
}
