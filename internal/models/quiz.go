package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
	AttemptStatusDiscarded  = "discarded"
)

type QuizOption struct {
	OptionID    uuid.UUID `json:"option_id"`
	OptionText  string    `json:"option_text"`
	OptionOrder int       `json:"option_order"`
}

type QuizQuestion struct {
	QuestionID    uuid.UUID    `json:"question_id"`
	QuestionText  string       `json:"question_text"`
	QuestionOrder int          `json:"question_order"`
	Options       []QuizOption `json:"options"`
}

// QuizAttempt is one run-through of a quiz. Questions are ordered by
// QuestionOrder and carry no correctness data; correctness is withheld
// until grading.
type QuizAttempt struct {
	AttemptID uuid.UUID      `json:"attempt_id"`
	LessonID  uuid.UUID      `json:"lesson_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Status    string         `json:"status"`
	Questions []QuizQuestion `json:"questions"`
	StartedAt time.Time      `json:"started_at"`
}

type QuizAnswer struct {
	QuestionID       uuid.UUID `json:"question_id"`
	SelectedOptionID uuid.UUID `json:"selected_option_id"`
}

type GradedOption struct {
	OptionID        uuid.UUID `json:"option_id"`
	OptionText      string    `json:"option_text"`
	OptionOrder     int       `json:"option_order"`
	IsCorrectAnswer bool      `json:"is_correct_answer"`
}

// AnswerDetail is one per-question review record in a graded result.
type AnswerDetail struct {
	QuestionID       uuid.UUID      `json:"question_id"`
	QuestionText     string         `json:"question_text"`
	QuestionOrder    int            `json:"question_order"`
	SelectedOptionID uuid.UUID      `json:"selected_option_id"`
	Options          []GradedOption `json:"options"`
	Explanation      *string        `json:"explanation,omitempty"`
}

// DefinitionOption and DefinitionQuestion carry correctness data and are
// never serialized toward a learner before grading.
type DefinitionOption struct {
	OptionID    uuid.UUID
	OptionText  string
	OptionOrder int
	IsCorrect   bool
}

type DefinitionQuestion struct {
	QuestionID    uuid.UUID
	QuestionText  string
	QuestionOrder int
	Explanation   *string
	Options       []DefinitionOption
}

// QuizDefinition is the authored quiz for a lesson, as stored.
type QuizDefinition struct {
	LessonID  uuid.UUID
	Questions []DefinitionQuestion
}

// QuizAttemptResult is the graded outcome of a submitted attempt.
// Immutable once produced.
type QuizAttemptResult struct {
	AttemptID   uuid.UUID      `json:"attempt_id"`
	LessonID    uuid.UUID      `json:"lesson_id"`
	Score       float64        `json:"score"`
	IsPassed    bool           `json:"is_passed"`
	Details     []AnswerDetail `json:"details"`
	SubmittedAt time.Time      `json:"submitted_at"`
}
