package postgres

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuizPostgres struct {
	db *pgxpool.Pool
}

func NewQuizPostgres(db *pgxpool.Pool) *QuizPostgres {
	return &QuizPostgres{db: db}
}

func (r *QuizPostgres) QuizByLessonID(ctx context.Context, lessonID uuid.UUID) (*models.QuizDefinition, error) {
	questionsQuery := `
        SELECT id, question_text, question_order, explanation
          FROM quiz_questions
         WHERE lesson_id = $1
         ORDER BY question_order
    `
	rows, err := r.db.Query(ctx, questionsQuery, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []models.DefinitionQuestion
	for rows.Next() {
		var q models.DefinitionQuestion
		if err := rows.Scan(&q.QuestionID, &q.QuestionText, &q.QuestionOrder, &q.Explanation); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, app_errors.ErrQuizNotFound
	}

	optionsQuery := `
        SELECT o.question_id, o.id, o.option_text, o.option_order, o.is_correct
          FROM quiz_options o
          JOIN quiz_questions q ON q.id = o.question_id
         WHERE q.lesson_id = $1
         ORDER BY o.option_order
    `
	optRows, err := r.db.Query(ctx, optionsQuery, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz options: %w", err)
	}
	defer optRows.Close()

	optionsByQuestion := make(map[uuid.UUID][]models.DefinitionOption)
	for optRows.Next() {
		var questionID uuid.UUID
		var o models.DefinitionOption
		if err := optRows.Scan(&questionID, &o.OptionID, &o.OptionText, &o.OptionOrder, &o.IsCorrect); err != nil {
			return nil, err
		}
		optionsByQuestion[questionID] = append(optionsByQuestion[questionID], o)
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		questions[i].Options = optionsByQuestion[questions[i].QuestionID]
	}
	return &models.QuizDefinition{LessonID: lessonID, Questions: questions}, nil
}

func (r *QuizPostgres) CreateAttempt(ctx context.Context, attempt models.QuizAttempt) error {
	const query = `
        INSERT INTO quiz_attempts (id, lesson_id, user_id, status, started_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		attempt.AttemptID, attempt.LessonID, attempt.UserID, attempt.Status, attempt.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// AttemptByID returns the attempt row only; questions are rebuilt from the
// quiz definition by the caller when needed.
func (r *QuizPostgres) AttemptByID(ctx context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error) {
	const query = `
        SELECT id, lesson_id, user_id, status, started_at
          FROM quiz_attempts
         WHERE id = $1
    `
	attempt := &models.QuizAttempt{}
	err := r.db.QueryRow(ctx, query, attemptID).Scan(
		&attempt.AttemptID, &attempt.LessonID, &attempt.UserID, &attempt.Status, &attempt.StartedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to query attempt: %w", err)
	}
	return attempt, nil
}

func (r *QuizPostgres) DiscardOpenAttempts(ctx context.Context, lessonID, userID uuid.UUID) error {
	const query = `
        UPDATE quiz_attempts
           SET status = $3
         WHERE lesson_id = $1 AND user_id = $2 AND status = $4
    `
	_, err := r.db.Exec(ctx, query, lessonID, userID, models.AttemptStatusDiscarded, models.AttemptStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to discard attempts: %w", err)
	}
	return nil
}

// SaveSubmission flips the attempt to submitted and stores the answer set in
// one transaction, so a half-written submission never becomes visible.
func (r *QuizPostgres) SaveSubmission(ctx context.Context, attemptID uuid.UUID, answers []models.QuizAnswer, score float64, isPassed bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateQuery = `
        UPDATE quiz_attempts
           SET status = $2, score = $3, is_passed = $4, submitted_at = NOW()
         WHERE id = $1 AND status = $5
    `
	cmdTag, err := tx.Exec(ctx, updateQuery,
		attemptID, models.AttemptStatusSubmitted, score, isPassed, models.AttemptStatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to update attempt: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrAttemptSubmitted
	}

	const answerQuery = `
        INSERT INTO quiz_attempt_answers (attempt_id, question_id, selected_option_id)
        VALUES ($1, $2, $3)
    `
	for _, a := range answers {
		if _, err := tx.Exec(ctx, answerQuery, attemptID, a.QuestionID, a.SelectedOptionID); err != nil {
			return fmt.Errorf("failed to save answer: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *QuizPostgres) AnswersByAttempt(ctx context.Context, attemptID uuid.UUID) ([]models.QuizAnswer, error) {
	const query = `
        SELECT question_id, selected_option_id
          FROM quiz_attempt_answers
         WHERE attempt_id = $1
    `
	rows, err := r.db.Query(ctx, query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []models.QuizAnswer
	for rows.Next() {
		var a models.QuizAnswer
		if err := rows.Scan(&a.QuestionID, &a.SelectedOptionID); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
