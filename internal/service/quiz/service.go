package quiz

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type quizRepo interface {
	QuizByLessonID(ctx context.Context, lessonID uuid.UUID) (*models.QuizDefinition, error)
	CreateAttempt(ctx context.Context, attempt models.QuizAttempt) error
	AttemptByID(ctx context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error)
	DiscardOpenAttempts(ctx context.Context, lessonID, userID uuid.UUID) error
	SaveSubmission(ctx context.Context, attemptID uuid.UUID, answers []models.QuizAnswer, score float64, isPassed bool) error
	AnswersByAttempt(ctx context.Context, attemptID uuid.UUID) ([]models.QuizAnswer, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type lessonRepo interface {
	GetLessonByID(ctx context.Context, lessonID uuid.UUID) (models.Lesson, error)
}

// QuizService owns the server side of the attempt lifecycle: starting
// attempts with correctness withheld, grading on submission, and producing
// the per-question review details.
type QuizService struct {
	log          logger.Log
	quizRepo     quizRepo
	lessonRepo   lessonRepo
	enrollments  enrollmentRepo
	passingScore float64
}

func NewQuizService(log logger.Log, q quizRepo, l lessonRepo, e enrollmentRepo, passingScore float64) *QuizService {
	return &QuizService{
		log:          log,
		quizRepo:     q,
		lessonRepo:   l,
		enrollments:  e,
		passingScore: passingScore,
	}
}

// StartAttempt discards any open attempt for the lesson and creates a fresh
// one. The returned questions are ordered but carry no correctness data.
func (s *QuizService) StartAttempt(ctx context.Context, lessonID, userID uuid.UUID) (*models.QuizAttempt, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.LessonType != models.LessonTypeQuiz {
		return nil, app_errors.ErrQuizNotFound
	}
	if err := s.requireEnrollment(ctx, userID, lesson.CourseID); err != nil {
		return nil, err
	}

	def, err := s.quizRepo.QuizByLessonID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.quizRepo.DiscardOpenAttempts(ctx, lessonID, userID); err != nil {
		return nil, fmt.Errorf("failed to discard open attempts: %w", err)
	}

	attempt := models.QuizAttempt{
		AttemptID: uuid.New(),
		LessonID:  lessonID,
		UserID:    userID,
		Status:    models.AttemptStatusInProgress,
		Questions: stripCorrectness(def.Questions),
		StartedAt: time.Now().UTC(),
	}
	if err := s.quizRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitAttempt grades the full answer set and returns the result with
// review details in the original question order.
func (s *QuizService) SubmitAttempt(ctx context.Context, attemptID, userID uuid.UUID, answers []models.QuizAnswer) (*models.QuizAttemptResult, error) {
	attempt, err := s.quizRepo.AttemptByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, app_errors.ErrAttemptNotFound
	}
	if attempt.Status != models.AttemptStatusInProgress {
		return nil, app_errors.ErrAttemptSubmitted
	}

	def, err := s.quizRepo.QuizByLessonID(ctx, attempt.LessonID)
	if err != nil {
		return nil, err
	}

	selected := make(map[uuid.UUID]uuid.UUID, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOptionID
	}
	if missing := len(def.Questions) - answeredCount(def.Questions, selected); missing > 0 {
		return nil, fmt.Errorf("%w: %d remaining", app_errors.ErrUnansweredQuestions, missing)
	}

	result := s.grade(def, attempt, selected)
	if err := s.quizRepo.SaveSubmission(ctx, attemptID, answers, result.Score, result.IsPassed); err != nil {
		return nil, err
	}

	s.log.Info("quiz attempt submitted",
		"attempt_id", attemptID,
		"lesson_id", attempt.LessonID,
		"score", result.Score,
		"passed", result.IsPassed,
	)
	return result, nil
}

// AttemptResult regrades a previously submitted attempt from its stored
// answers, for result screens revisited after the original submission.
func (s *QuizService) AttemptResult(ctx context.Context, attemptID, userID uuid.UUID) (*models.QuizAttemptResult, error) {
	attempt, err := s.quizRepo.AttemptByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, app_errors.ErrAttemptNotFound
	}
	if attempt.Status != models.AttemptStatusSubmitted {
		return nil, app_errors.ErrAttemptNotFound
	}
	def, err := s.quizRepo.QuizByLessonID(ctx, attempt.LessonID)
	if err != nil {
		return nil, err
	}
	answers, err := s.quizRepo.AnswersByAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	selected := make(map[uuid.UUID]uuid.UUID, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOptionID
	}
	return s.grade(def, attempt, selected), nil
}

func (s *QuizService) requireEnrollment(ctx context.Context, userID, courseID uuid.UUID) error {
	enrolled, err := s.enrollments.IsEnrolled(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return app_errors.ErrNotEnrolled
	}
	return nil
}

func (s *QuizService) grade(def *models.QuizDefinition, attempt *models.QuizAttempt, selected map[uuid.UUID]uuid.UUID) *models.QuizAttemptResult {
	questions := orderedQuestions(def.Questions)
	hits := 0
	details := make([]models.AnswerDetail, 0, len(questions))
	for _, q := range questions {
		chosen := selected[q.QuestionID]
		detail := models.AnswerDetail{
			QuestionID:       q.QuestionID,
			QuestionText:     q.QuestionText,
			QuestionOrder:    q.QuestionOrder,
			SelectedOptionID: chosen,
			Explanation:      q.Explanation,
		}
		for _, o := range q.Options {
			detail.Options = append(detail.Options, models.GradedOption{
				OptionID:        o.OptionID,
				OptionText:      o.OptionText,
				OptionOrder:     o.OptionOrder,
				IsCorrectAnswer: o.IsCorrect,
			})
			if o.IsCorrect && o.OptionID == chosen {
				hits++
			}
		}
		details = append(details, detail)
	}

	score := 0.0
	if len(questions) > 0 {
		score = float64(hits) / float64(len(questions)) * 100
	}
	return &models.QuizAttemptResult{
		AttemptID:   attempt.AttemptID,
		LessonID:    attempt.LessonID,
		Score:       score,
		IsPassed:    score >= s.passingScore,
		Details:     details,
		SubmittedAt: time.Now().UTC(),
	}
}

func orderedQuestions(questions []models.DefinitionQuestion) []models.DefinitionQuestion {
	ordered := make([]models.DefinitionQuestion, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].QuestionOrder < ordered[j].QuestionOrder
	})
	for i := range ordered {
		opts := make([]models.DefinitionOption, len(ordered[i].Options))
		copy(opts, ordered[i].Options)
		sort.SliceStable(opts, func(a, b int) bool {
			return opts[a].OptionOrder < opts[b].OptionOrder
		})
		ordered[i].Options = opts
	}
	return ordered
}

func stripCorrectness(questions []models.DefinitionQuestion) []models.QuizQuestion {
	ordered := orderedQuestions(questions)
	out := make([]models.QuizQuestion, 0, len(ordered))
	for _, q := range ordered {
		question := models.QuizQuestion{
			QuestionID:    q.QuestionID,
			QuestionText:  q.QuestionText,
			QuestionOrder: q.QuestionOrder,
		}
		for _, o := range q.Options {
			question.Options = append(question.Options, models.QuizOption{
				OptionID:    o.OptionID,
				OptionText:  o.OptionText,
				OptionOrder: o.OptionOrder,
			})
		}
		out = append(out, question)
	}
	return out
}

func answeredCount(questions []models.DefinitionQuestion, selected map[uuid.UUID]uuid.UUID) int {
	n := 0
	for _, q := range questions {
		if id, ok := selected[q.QuestionID]; ok && id != uuid.Nil {
			n++
		}
	}
	return n
}
