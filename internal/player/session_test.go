package player

import (
	"CourseFlow/internal/models"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outlineWithLessons(counts ...int) (models.CourseOutline, []models.Lesson) {
	outline := models.CourseOutline{
		Course:   models.Course{ID: uuid.New(), Title: "course"},
		Progress: make(map[uuid.UUID]models.LessonProgress),
	}
	var all []models.Lesson
	for m, n := range counts {
		module := models.Module{ID: uuid.New(), CourseID: outline.Course.ID, Order: m}
		contents := models.Contents{Module: module}
		for i := 0; i < n; i++ {
			lesson := models.Lesson{
				ID:          uuid.New(),
				CourseID:    outline.Course.ID,
				ModuleID:    module.ID,
				LessonOrder: i,
				LessonType:  models.LessonTypeText,
			}
			contents.Lessons = append(contents.Lessons, lesson)
			all = append(all, lesson)
		}
		outline.Modules = append(outline.Modules, contents)
	}
	return outline, all
}

func newTestSession(t *testing.T, outline models.CourseOutline, active uuid.UUID, sink ProgressSink) *LessonSession {
	t.Helper()
	session, ok := NewLessonSession(NewContentRenderer(nopLog{}, sink), sink, outline, active)
	require.True(t, ok)
	return session
}

func TestFlattenOutline_PreservesModuleAndLessonOrder(t *testing.T) {
	outline, all := outlineWithLessons(2, 3, 1)
	flat := FlattenOutline(outline)
	require.Len(t, flat, 6)
	for i, l := range all {
		assert.Equal(t, l.ID, flat[i].ID)
	}
}

func TestSession_NavigationBounds(t *testing.T) {
	outline, all := outlineWithLessons(2, 2)
	sink := newFakeProgressSink()

	first := newTestSession(t, outline, all[0].ID, sink)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.False(t, first.Prev(context.Background()), "prev at the first lesson is a no-op")

	last := newTestSession(t, outline, all[3].ID, sink)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	assert.False(t, last.Next(context.Background()), "next at the last lesson is a no-op")
}

func TestSession_NextCrossesModuleBoundary(t *testing.T) {
	outline, all := outlineWithLessons(1, 2)
	session := newTestSession(t, outline, all[0].ID, newFakeProgressSink())

	require.True(t, session.Next(context.Background()))
	assert.Equal(t, all[1].ID, session.ActiveLesson().ID, "second module's first lesson follows the first module's last")
}

func TestSession_UnknownLessonRejected(t *testing.T) {
	outline, _ := outlineWithLessons(2)
	sink := newFakeProgressSink()
	_, ok := NewLessonSession(NewContentRenderer(nopLog{}, sink), sink, outline, uuid.New())
	assert.False(t, ok)
}

func TestSession_ToggleCompletion(t *testing.T) {
	outline, all := outlineWithLessons(1)
	sink := newFakeProgressSink()
	session := newTestSession(t, outline, all[0].ID, sink)

	assert.False(t, session.IsCompleted())
	require.NoError(t, session.ToggleCompletion(context.Background()))
	assert.True(t, session.IsCompleted())
	assert.True(t, sink.completed[all[0].ID])

	require.NoError(t, session.ToggleCompletion(context.Background()))
	assert.False(t, session.IsCompleted())
	assert.False(t, sink.completed[all[0].ID])
}

func TestSession_ViewRendersActiveLesson(t *testing.T) {
	outline, all := outlineWithLessons(2)
	session := newTestSession(t, outline, all[0].ID, newFakeProgressSink())

	view := session.View(SignedURLQuery{})
	assert.Equal(t, ViewKindText, view.Kind)
}
