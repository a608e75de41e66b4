package player

import (
	"CourseFlow/internal/models"
	"context"

	"github.com/google/uuid"
)

// FlattenOutline collapses a course outline into a single ordered lesson
// list, module by module, for prev/next navigation.
func FlattenOutline(outline models.CourseOutline) []models.Lesson {
	var lessons []models.Lesson
	for _, m := range outline.Modules {
		lessons = append(lessons, m.Lessons...)
	}
	return lessons
}

// LessonSession composes content rendering with navigation and the manual
// completion toggle. It holds no content state of its own; everything flows
// through the renderer and the progress sink.
type LessonSession struct {
	renderer *ContentRenderer
	sink     ProgressSink

	lessons  []models.Lesson
	progress map[uuid.UUID]models.LessonProgress
	active   int
}

// NewLessonSession builds a session over the outline with the given lesson
// active. Returns false if the lesson is not part of the outline.
func NewLessonSession(renderer *ContentRenderer, sink ProgressSink, outline models.CourseOutline, activeLessonID uuid.UUID) (*LessonSession, bool) {
	lessons := FlattenOutline(outline)
	idx := -1
	for i, l := range lessons {
		if l.ID == activeLessonID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	progress := outline.Progress
	if progress == nil {
		progress = make(map[uuid.UUID]models.LessonProgress)
	}
	return &LessonSession{
		renderer: renderer,
		sink:     sink,
		lessons:  lessons,
		progress: progress,
		active:   idx,
	}, true
}

func (s *LessonSession) ActiveLesson() models.Lesson {
	return s.lessons[s.active]
}

// ActiveDetail pairs the active lesson with the learner's progress record.
func (s *LessonSession) ActiveDetail() models.LessonDetail {
	lesson := s.lessons[s.active]
	detail := models.LessonDetail{Lesson: lesson}
	if p, ok := s.progress[lesson.ID]; ok {
		detail.Progress = &p
	}
	return detail
}

func (s *LessonSession) HasPrev() bool {
	return s.active > 0
}

func (s *LessonSession) HasNext() bool {
	return s.active < len(s.lessons)-1
}

// Prev moves to the previous lesson; no-op at the boundary.
func (s *LessonSession) Prev(ctx context.Context) bool {
	if !s.HasPrev() {
		return false
	}
	s.active--
	s.renderer.LessonShown(ctx, s.ActiveDetail())
	return true
}

// Next moves to the next lesson; no-op at the boundary.
func (s *LessonSession) Next(ctx context.Context) bool {
	if !s.HasNext() {
		return false
	}
	s.active++
	s.renderer.LessonShown(ctx, s.ActiveDetail())
	return true
}

// IsCompleted reflects the active lesson's completion flag from the course's
// per-lesson progress map; the toggle's label and icon follow it.
func (s *LessonSession) IsCompleted() bool {
	p, ok := s.progress[s.lessons[s.active].ID]
	return ok && p.IsCompleted
}

// ToggleCompletion flips the active lesson's completion flag through the
// sink and mirrors the change locally.
func (s *LessonSession) ToggleCompletion(ctx context.Context) error {
	lesson := s.lessons[s.active]
	next := !s.IsCompleted()
	if err := s.sink.MarkLessonCompleted(ctx, lesson.ID, next); err != nil {
		return err
	}
	p := s.progress[lesson.ID]
	p.LessonID = lesson.ID
	p.IsCompleted = next
	s.progress[lesson.ID] = p
	return nil
}

// View renders the active lesson's content.
func (s *LessonSession) View(q SignedURLQuery) ContentView {
	return s.renderer.View(s.ActiveDetail(), q)
}
