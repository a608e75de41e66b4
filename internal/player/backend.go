package player

import (
	"CourseFlow/internal/models"
	"context"

	"github.com/google/uuid"
)

// AttemptService starts and grades quiz attempts. The engine never sees
// correctness data before submission.
type AttemptService interface {
	StartAttempt(ctx context.Context, lessonID uuid.UUID) (*models.QuizAttempt, error)
	SubmitAttempt(ctx context.Context, attemptID uuid.UUID, answers []models.QuizAnswer) (*models.QuizAttemptResult, error)
}

// ProgressSink receives playback progress and completion changes. The hosting
// side owns persistence; the player only reports.
type ProgressSink interface {
	SaveVideoProgress(ctx context.Context, lessonID uuid.UUID, positionSeconds int) error
	MarkLessonCompleted(ctx context.Context, lessonID uuid.UUID, isCompleted bool) error
}
