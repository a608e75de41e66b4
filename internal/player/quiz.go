package player

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	ModePlaying = "playing"
	ModeResults = "results"
	ModeReview  = "review"
)

// Per-option visual states in review mode.
const (
	OptionCorrectSelected   = "correct_selected"
	OptionIncorrectSelected = "incorrect_selected"
	OptionCorrectUnselected = "correct_unselected"
	OptionNeutral           = "neutral"
)

// ReviewOption is a graded option annotated with its review state.
type ReviewOption struct {
	models.GradedOption
	State string `json:"state"`
}

// ReviewEntry joins a played question with its graded detail.
type ReviewEntry struct {
	Question    models.QuizQuestion `json:"question"`
	Options     []ReviewOption      `json:"options"`
	Explanation *string             `json:"explanation,omitempty"`
}

// QuizEngine drives one quiz lesson through the playing -> results -> review
// state machine. All state is local to the engine; the only external effects
// are the attempt service calls and the completion callback.
type QuizEngine struct {
	log         logger.Log
	svc         AttemptService
	lessonID    uuid.UUID
	onCompleted func(models.QuizAttemptResult)

	mu      sync.Mutex
	mode    string
	attempt *models.QuizAttempt
	answers map[uuid.UUID]uuid.UUID
	index   int
	result  *models.QuizAttemptResult
	notice  string
}

func NewQuizEngine(log logger.Log, svc AttemptService, lessonID uuid.UUID, onCompleted func(models.QuizAttemptResult)) *QuizEngine {
	return &QuizEngine{
		log:         log,
		svc:         svc,
		lessonID:    lessonID,
		onCompleted: onCompleted,
		mode:        ModePlaying,
		answers:     make(map[uuid.UUID]uuid.UUID),
	}
}

// Start begins a new attempt if none is held and results are not already
// shown. Safe to call on every mount; it is a no-op once an attempt exists.
func (e *QuizEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.attempt != nil || e.mode == ModeResults || e.mode == ModeReview {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	attempt, err := e.svc.StartAttempt(ctx, e.lessonID)
	if err != nil {
		e.log.ErrorErr("failed to start quiz attempt", err, "lesson_id", e.lessonID)
		e.mu.Lock()
		e.notice = noticeFromErr(err, "failed to start quiz")
		e.mu.Unlock()
		return err
	}

	e.mu.Lock()
	e.attempt = attempt
	e.mode = ModePlaying
	e.index = 0
	e.answers = make(map[uuid.UUID]uuid.UUID)
	e.result = nil
	e.mu.Unlock()
	return nil
}

// SelectOption records the user's choice for one question. Question and
// option order are never mutated.
func (e *QuizEngine) SelectOption(questionID, optionID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModePlaying || e.attempt == nil {
		return
	}
	for _, q := range e.attempt.Questions {
		if q.QuestionID == questionID {
			e.answers[questionID] = optionID
			return
		}
	}
}

// Next advances the index within the current mode's bounds; out-of-range
// requests are no-ops.
func (e *QuizEngine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index < e.maxIndexLocked() {
		e.index++
	}
}

func (e *QuizEngine) Prev() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index > 0 {
		e.index--
	}
}

func (e *QuizEngine) maxIndexLocked() int {
	switch e.mode {
	case ModeReview:
		if e.result == nil {
			return 0
		}
		return len(e.result.Details) - 1
	default:
		if e.attempt == nil {
			return 0
		}
		return len(e.attempt.Questions) - 1
	}
}

func (e *QuizEngine) Mode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *QuizEngine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// CurrentQuestion returns the question at the index while playing.
func (e *QuizEngine) CurrentQuestion() (models.QuizQuestion, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModePlaying || e.attempt == nil || e.index >= len(e.attempt.Questions) {
		return models.QuizQuestion{}, false
	}
	return e.attempt.Questions[e.index], true
}

// SelectedOption returns the recorded choice for a question, if any.
func (e *QuizEngine) SelectedOption(questionID uuid.UUID) (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.answers[questionID]
	return id, ok
}

// Unanswered returns the 1-based numbers of questions with no selection, in
// play order.
func (e *QuizEngine) Unanswered() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unansweredLocked()
}

func (e *QuizEngine) unansweredLocked() []int {
	if e.attempt == nil {
		return nil
	}
	var missing []int
	for i, q := range e.attempt.Questions {
		if _, ok := e.answers[q.QuestionID]; !ok {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// Submit sends the full answer set and transitions to results. Blocked
// locally, with no service call, while any question is unanswered.
func (e *QuizEngine) Submit(ctx context.Context) (*models.QuizAttemptResult, error) {
	e.mu.Lock()
	if e.mode != ModePlaying || e.attempt == nil {
		e.mu.Unlock()
		return nil, app_errors.ErrAttemptNotFound
	}
	if missing := e.unansweredLocked(); len(missing) > 0 {
		e.notice = fmt.Sprintf("%d unanswered: question %s", len(missing), joinInts(missing))
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %d remaining", app_errors.ErrUnansweredQuestions, len(missing))
	}

	answers := make([]models.QuizAnswer, 0, len(e.attempt.Questions))
	for _, q := range e.attempt.Questions {
		answers = append(answers, models.QuizAnswer{
			QuestionID:       q.QuestionID,
			SelectedOptionID: e.answers[q.QuestionID],
		})
	}
	attemptID := e.attempt.AttemptID
	e.mu.Unlock()

	result, err := e.svc.SubmitAttempt(ctx, attemptID, answers)
	if err != nil {
		e.log.ErrorErr("failed to submit quiz attempt", err, "attempt_id", attemptID)
		e.mu.Lock()
		e.notice = noticeFromErr(err, "failed to submit quiz")
		e.mu.Unlock()
		return nil, err
	}

	e.mu.Lock()
	e.result = result
	e.mode = ModeResults
	e.index = 0
	e.mu.Unlock()

	if e.onCompleted != nil {
		e.onCompleted(*result)
	}
	return result, nil
}

// Result returns the graded outcome once in results or review mode.
func (e *QuizEngine) Result() (*models.QuizAttemptResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return nil, false
	}
	return e.result, true
}

// Review enters review mode from results.
func (e *QuizEngine) Review() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeResults || e.result == nil {
		return
	}
	e.mode = ModeReview
	e.index = 0
}

// BackToResults leaves review mode.
func (e *QuizEngine) BackToResults() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != ModeReview {
		return
	}
	e.mode = ModeResults
	e.index = 0
}

// ReviewEntries cross-references the graded details against the questions in
// the order they were played, not the order of the result payload.
func (e *QuizEngine) ReviewEntries() []ReviewEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.attempt == nil || e.result == nil {
		return nil
	}

	byQuestion := make(map[uuid.UUID]models.AnswerDetail, len(e.result.Details))
	for _, d := range e.result.Details {
		byQuestion[d.QuestionID] = d
	}

	entries := make([]ReviewEntry, 0, len(e.attempt.Questions))
	for _, q := range e.attempt.Questions {
		detail, ok := byQuestion[q.QuestionID]
		if !ok {
			continue
		}
		opts := make([]ReviewOption, 0, len(detail.Options))
		for _, o := range detail.Options {
			opts = append(opts, ReviewOption{GradedOption: o, State: optionState(o, detail.SelectedOptionID)})
		}
		entries = append(entries, ReviewEntry{Question: q, Options: opts, Explanation: detail.Explanation})
	}
	return entries
}

func optionState(o models.GradedOption, selected uuid.UUID) string {
	switch {
	case o.IsCorrectAnswer && o.OptionID == selected:
		return OptionCorrectSelected
	case !o.IsCorrectAnswer && o.OptionID == selected:
		return OptionIncorrectSelected
	case o.IsCorrectAnswer:
		return OptionCorrectUnselected
	default:
		return OptionNeutral
	}
}

// TryAgain discards every piece of local state and starts a fresh attempt.
// The previous attempt is never reused.
func (e *QuizEngine) TryAgain(ctx context.Context) error {
	e.mu.Lock()
	e.attempt = nil
	e.answers = make(map[uuid.UUID]uuid.UUID)
	e.index = 0
	e.result = nil
	e.mode = ModePlaying
	e.notice = ""
	e.mu.Unlock()
	return e.Start(ctx)
}

// Notice returns the pending dismissable notification, if any.
func (e *QuizEngine) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

func (e *QuizEngine) DismissNotice() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notice = ""
}

func noticeFromErr(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

func joinInts(nums []int) string {
	s := ""
	for i, n := range nums {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", n)
	}
	return s
}
