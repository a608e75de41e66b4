package progress

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLog struct{}

func (nopLog) Debug(string, ...interface{})           {}
func (nopLog) Info(string, ...interface{})            {}
func (nopLog) Warn(string, ...interface{})            {}
func (nopLog) Error(string, ...interface{})           {}
func (nopLog) ErrorErr(string, error, ...interface{}) {}
func (nopLog) Fatal(string, ...interface{})           {}
func (nopLog) FatalErr(string, error, ...interface{}) {}

type fakeLessonRepo struct {
	lessons map[uuid.UUID]models.Lesson
}

func (f *fakeLessonRepo) GetLessonByID(_ context.Context, id uuid.UUID) (models.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return models.Lesson{}, errors.New("lesson not found")
	}
	return lesson, nil
}

type fakeProgressRepo struct {
	positions map[uuid.UUID]int
	completed map[uuid.UUID]bool
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		positions: make(map[uuid.UUID]int),
		completed: make(map[uuid.UUID]bool),
	}
}

func (f *fakeProgressRepo) UpsertPosition(_ context.Context, lessonID, _ uuid.UUID, positionSeconds int) error {
	f.positions[lessonID] = positionSeconds
	return nil
}

func (f *fakeProgressRepo) SetCompleted(_ context.Context, lessonID, _ uuid.UUID, isCompleted bool) error {
	f.completed[lessonID] = isCompleted
	return nil
}

func (f *fakeProgressRepo) GetProgress(_ context.Context, lessonID, userID uuid.UUID) (*models.LessonProgress, error) {
	pos, ok := f.positions[lessonID]
	if !ok {
		return nil, nil
	}
	return &models.LessonProgress{UserID: userID, LessonID: lessonID, LastWatchedPosition: &pos}, nil
}

func (f *fakeProgressRepo) ProgressByCourse(_ context.Context, _, _ uuid.UUID) (map[uuid.UUID]models.LessonProgress, error) {
	out := make(map[uuid.UUID]models.LessonProgress)
	for id, pos := range f.positions {
		p := pos
		out[id] = models.LessonProgress{LessonID: id, LastWatchedPosition: &p, IsCompleted: f.completed[id]}
	}
	return out, nil
}

type fakeEnrollmentRepo struct {
	enrolled bool
}

func (f *fakeEnrollmentRepo) IsEnrolled(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.enrolled, nil
}

func newTestService(lessons ...models.Lesson) (*ProgressService, *fakeProgressRepo) {
	byID := make(map[uuid.UUID]models.Lesson)
	for _, l := range lessons {
		byID[l.ID] = l
	}
	repo := newFakeProgressRepo()
	svc := NewProgressService(nopLog{}, &fakeLessonRepo{lessons: byID}, repo, &fakeEnrollmentRepo{enrolled: true})
	return svc, repo
}

func TestSaveVideoProgress_ClampsNegativePositions(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeVideo}
	svc, repo := newTestService(lesson)

	require.NoError(t, svc.SaveVideoProgress(context.Background(), lesson.ID, uuid.New(), -5))
	assert.Equal(t, 0, repo.positions[lesson.ID])

	require.NoError(t, svc.SaveVideoProgress(context.Background(), lesson.ID, uuid.New(), 91))
	assert.Equal(t, 91, repo.positions[lesson.ID])
}

func TestSaveVideoProgress_RejectsNonVideoLessons(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeText}
	svc, repo := newTestService(lesson)

	err := svc.SaveVideoProgress(context.Background(), lesson.ID, uuid.New(), 30)
	require.Error(t, err)
	assert.Empty(t, repo.positions)
}

func TestVideoEnded_MarksCompleted(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeVideo}
	svc, repo := newTestService(lesson)

	require.NoError(t, svc.VideoEnded(context.Background(), lesson.ID, uuid.New()))
	assert.True(t, repo.completed[lesson.ID])
}

func TestVideoEnded_RejectsNonVideoLessons(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeQuiz}
	svc, repo := newTestService(lesson)

	require.Error(t, svc.VideoEnded(context.Background(), lesson.ID, uuid.New()))
	assert.Empty(t, repo.completed)
}

func TestMarkLessonCompleted_TogglesBothWays(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeText}
	svc, repo := newTestService(lesson)
	userID := uuid.New()

	require.NoError(t, svc.MarkLessonCompleted(context.Background(), lesson.ID, userID, true))
	assert.True(t, repo.completed[lesson.ID])

	require.NoError(t, svc.MarkLessonCompleted(context.Background(), lesson.ID, userID, false))
	assert.False(t, repo.completed[lesson.ID])
}

func TestProgressWrites_RequireEnrollment(t *testing.T) {
	lesson := models.Lesson{ID: uuid.New(), CourseID: uuid.New(), LessonType: models.LessonTypeVideo}
	repo := newFakeProgressRepo()
	svc := NewProgressService(nopLog{},
		&fakeLessonRepo{lessons: map[uuid.UUID]models.Lesson{lesson.ID: lesson}},
		repo,
		&fakeEnrollmentRepo{},
	)

	assert.ErrorIs(t, svc.SaveVideoProgress(context.Background(), lesson.ID, uuid.New(), 10), app_errors.ErrNotEnrolled)
	assert.ErrorIs(t, svc.MarkLessonCompleted(context.Background(), lesson.ID, uuid.New(), true), app_errors.ErrNotEnrolled)
	assert.Empty(t, repo.positions)
	assert.Empty(t, repo.completed)
}

func TestCourseProgress_RequiresEnrollment(t *testing.T) {
	repo := newFakeProgressRepo()
	svc := NewProgressService(nopLog{}, &fakeLessonRepo{}, repo, &fakeEnrollmentRepo{})

	_, err := svc.CourseProgress(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)
}
