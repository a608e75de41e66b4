package quiz

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLog struct{}

func (nopLog) Debug(msg string, args ...any)               {}
func (nopLog) Info(msg string, args ...any)                {}
func (nopLog) Warn(msg string, args ...any)                {}
func (nopLog) Error(msg string, args ...any)               {}
func (nopLog) ErrorErr(msg string, err error, args ...any) {}
func (nopLog) Fatal(msg string, args ...any)               {}
func (nopLog) FatalErr(msg string, err error, args ...any) {}

type fakeQuizRepo struct {
	def      *models.QuizDefinition
	attempts map[uuid.UUID]*models.QuizAttempt
	answers  map[uuid.UUID][]models.QuizAnswer
	discards int
}

func newFakeQuizRepo(def *models.QuizDefinition) *fakeQuizRepo {
	return &fakeQuizRepo{
		def:      def,
		attempts: make(map[uuid.UUID]*models.QuizAttempt),
		answers:  make(map[uuid.UUID][]models.QuizAnswer),
	}
}

func (f *fakeQuizRepo) QuizByLessonID(ctx context.Context, lessonID uuid.UUID) (*models.QuizDefinition, error) {
	if f.def == nil || f.def.LessonID != lessonID {
		return nil, app_errors.ErrQuizNotFound
	}
	return f.def, nil
}

func (f *fakeQuizRepo) CreateAttempt(ctx context.Context, attempt models.QuizAttempt) error {
	f.attempts[attempt.AttemptID] = &attempt
	return nil
}

func (f *fakeQuizRepo) AttemptByID(ctx context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok {
		return nil, app_errors.ErrAttemptNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeQuizRepo) DiscardOpenAttempts(ctx context.Context, lessonID, userID uuid.UUID) error {
	f.discards++
	for _, a := range f.attempts {
		if a.LessonID == lessonID && a.UserID == userID && a.Status == models.AttemptStatusInProgress {
			a.Status = models.AttemptStatusDiscarded
		}
	}
	return nil
}

func (f *fakeQuizRepo) SaveSubmission(ctx context.Context, attemptID uuid.UUID, answers []models.QuizAnswer, score float64, isPassed bool) error {
	a, ok := f.attempts[attemptID]
	if !ok {
		return app_errors.ErrAttemptNotFound
	}
	a.Status = models.AttemptStatusSubmitted
	f.answers[attemptID] = answers
	return nil
}

func (f *fakeQuizRepo) AnswersByAttempt(ctx context.Context, attemptID uuid.UUID) ([]models.QuizAnswer, error) {
	return f.answers[attemptID], nil
}

type fakeLessonRepo struct {
	lesson models.Lesson
}

func (f *fakeLessonRepo) GetLessonByID(ctx context.Context, lessonID uuid.UUID) (models.Lesson, error) {
	if f.lesson.ID != lessonID {
		return models.Lesson{}, app_errors.ErrLessonNotFound
	}
	return f.lesson, nil
}

type fakeEnrollments struct {
	enrolled bool
}

func (f *fakeEnrollments) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return f.enrolled, nil
}

// twoQuestionQuiz builds a definition with questions authored out of order to
// exercise ordering on the way out.
func twoQuestionQuiz(lessonID uuid.UUID) (*models.QuizDefinition, []uuid.UUID, []uuid.UUID) {
	var correct, wrong []uuid.UUID
	var questions []models.DefinitionQuestion
	for _, order := range []int{2, 1} {
		right := uuid.New()
		bad := uuid.New()
		correct = append(correct, right)
		wrong = append(wrong, bad)
		questions = append(questions, models.DefinitionQuestion{
			QuestionID:    uuid.New(),
			QuestionText:  "q",
			QuestionOrder: order,
			Options: []models.DefinitionOption{
				{OptionID: bad, OptionText: "no", OptionOrder: 2},
				{OptionID: right, OptionText: "yes", OptionOrder: 1, IsCorrect: true},
			},
		})
	}
	return &models.QuizDefinition{LessonID: lessonID, Questions: questions}, correct, wrong
}

func quizLesson(courseID uuid.UUID) models.Lesson {
	return models.Lesson{
		ID:         uuid.New(),
		CourseID:   courseID,
		LessonType: models.LessonTypeQuiz,
	}
}

func newTestService(def *models.QuizDefinition, lesson models.Lesson) (*QuizService, *fakeQuizRepo) {
	repo := newFakeQuizRepo(def)
	svc := NewQuizService(nopLog{}, repo, &fakeLessonRepo{lesson: lesson}, &fakeEnrollments{enrolled: true}, 70)
	return svc, repo
}

func TestStartAttemptStripsCorrectnessAndOrders(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, _, _ := twoQuestionQuiz(lesson.ID)
	svc, repo := newTestService(def, lesson)

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, uuid.New())
	require.NoError(t, err)

	require.Len(t, attempt.Questions, 2)
	assert.Equal(t, 1, attempt.Questions[0].QuestionOrder)
	assert.Equal(t, 2, attempt.Questions[1].QuestionOrder)
	for _, q := range attempt.Questions {
		require.Len(t, q.Options, 2)
		assert.Equal(t, 1, q.Options[0].OptionOrder)
	}
	assert.Equal(t, models.AttemptStatusInProgress, attempt.Status)
	assert.Equal(t, 1, repo.discards)
}

func TestStartAttemptDiscardsOpenAttempt(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, _, _ := twoQuestionQuiz(lesson.ID)
	svc, repo := newTestService(def, lesson)
	userID := uuid.New()

	first, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)
	second, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	assert.Equal(t, models.AttemptStatusDiscarded, repo.attempts[first.AttemptID].Status)
	assert.Equal(t, models.AttemptStatusInProgress, repo.attempts[second.AttemptID].Status)
}

func TestStartAttemptRejectsNonQuizLesson(t *testing.T) {
	lesson := quizLesson(uuid.New())
	lesson.LessonType = models.LessonTypeText
	def, _, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)

	_, err := svc.StartAttempt(context.Background(), lesson.ID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrQuizNotFound)
}

func TestSubmitAttemptGrades(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, wrong := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
		{QuestionID: def.Questions[1].QuestionID, SelectedOptionID: wrong[1]},
	}
	result, err := svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, result.Score, 0.001)
	assert.False(t, result.IsPassed)
	require.Len(t, result.Details, 2)
	assert.Equal(t, 1, result.Details[0].QuestionOrder)
	for _, d := range result.Details {
		hasCorrect := false
		for _, o := range d.Options {
			hasCorrect = hasCorrect || o.IsCorrectAnswer
		}
		assert.True(t, hasCorrect, "review details carry the correct answer")
	}
}

func TestSubmitAttemptPassAtThreshold(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
		{QuestionID: def.Questions[1].QuestionID, SelectedOptionID: correct[1]},
	}
	result, err := svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.Score, 0.001)
	assert.True(t, result.IsPassed)
}

func TestSubmitAttemptRejectsIncompleteAnswerSet(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
	}
	_, err = svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	assert.ErrorIs(t, err, app_errors.ErrUnansweredQuestions)
}

func TestSubmitAttemptRejectsDoubleSubmit(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
		{QuestionID: def.Questions[1].QuestionID, SelectedOptionID: correct[1]},
	}
	_, err = svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	assert.ErrorIs(t, err, app_errors.ErrAttemptSubmitted)
}

func TestSubmitAttemptRejectsForeignAttempt(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	owner := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, owner)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
		{QuestionID: def.Questions[1].QuestionID, SelectedOptionID: correct[1]},
	}
	_, err = svc.SubmitAttempt(context.Background(), attempt.AttemptID, uuid.New(), answers)
	assert.ErrorIs(t, err, app_errors.ErrAttemptNotFound)
}

func TestAttemptResultRegradesFromStoredAnswers(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, correct, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	answers := []models.QuizAnswer{
		{QuestionID: def.Questions[0].QuestionID, SelectedOptionID: correct[0]},
		{QuestionID: def.Questions[1].QuestionID, SelectedOptionID: correct[1]},
	}
	submitted, err := svc.SubmitAttempt(context.Background(), attempt.AttemptID, userID, answers)
	require.NoError(t, err)

	result, err := svc.AttemptResult(context.Background(), attempt.AttemptID, userID)
	require.NoError(t, err)
	assert.InDelta(t, submitted.Score, result.Score, 0.001)
	assert.Equal(t, submitted.IsPassed, result.IsPassed)
	assert.Len(t, result.Details, 2)
}

func TestAttemptResultRequiresSubmission(t *testing.T) {
	lesson := quizLesson(uuid.New())
	def, _, _ := twoQuestionQuiz(lesson.ID)
	svc, _ := newTestService(def, lesson)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(context.Background(), lesson.ID, userID)
	require.NoError(t, err)

	_, err = svc.AttemptResult(context.Background(), attempt.AttemptID, userID)
	assert.ErrorIs(t, err, app_errors.ErrAttemptNotFound)
}
