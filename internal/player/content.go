package player

import (
	"CourseFlow/internal/models"
	"CourseFlow/pkg/logger"
	"context"

	"github.com/google/uuid"
)

const (
	ViewKindVideo       = "video"
	ViewKindText        = "text"
	ViewKindQuiz        = "quiz"
	ViewKindUnsupported = "unsupported"

	PlayerKindNative = "native"
	PlayerKindEmbed  = "embed"
)

// VideoView is the video branch of a content view. Exactly one of the state
// fields applies, in priority order: loading, error, player, empty.
type VideoView struct {
	IsLoading bool `json:"is_loading"`
	// Error message shown in the error panel; empty when no error.
	Error string `json:"error,omitempty"`
	URL   string `json:"url,omitempty"`
	// PlayerKind distinguishes the native player (self-hosted source) from a
	// provider iframe embed. Consumers key the player by URL so a URL change
	// fully remounts it.
	PlayerKind string `json:"player_kind,omitempty"`
	// ResumeFrom is the stored position to seek to, self-hosted source only.
	ResumeFrom int `json:"resume_from,omitempty"`
}

type TextView struct {
	// HTML is assumed pre-sanitized upstream; rendered as-is.
	HTML string `json:"html"`
}

type QuizView struct {
	LessonID string `json:"lesson_id"`
}

// ContentView is the tagged union a lesson renders to. Exactly one of the
// branch pointers is set, matching Kind.
type ContentView struct {
	Kind  string     `json:"kind"`
	Video *VideoView `json:"video,omitempty"`
	Text  *TextView  `json:"text,omitempty"`
	Quiz  *QuizView  `json:"quiz,omitempty"`
}

// ContentRenderer dispatches a lesson to its content branch and owns the
// completion side effects. Completion is consumption-gated: text lessons
// complete on view, video lessons on the ended signal, quiz lessons on a
// passed submission. The manual toggle lives on the session.
type ContentRenderer struct {
	log     logger.Log
	sink    ProgressSink
	tracker *PositionTracker
}

func NewContentRenderer(log logger.Log, sink ProgressSink) *ContentRenderer {
	r := &ContentRenderer{log: log, sink: sink}
	r.tracker = NewPositionTracker(TrackerCallbacks{
		OnProgress: r.videoProgress,
		OnEnded:    r.videoEnded,
	})
	return r
}

// Tracker exposes the renderer's position tracker for the hosting player
// surface to attach its media handle to.
func (r *ContentRenderer) Tracker() *PositionTracker {
	return r.tracker
}

// View builds the content view for a lesson. The signed-URL query state is
// consulted only by the video branch's self-hosted source.
func (r *ContentRenderer) View(detail models.LessonDetail, q SignedURLQuery) ContentView {
	lesson := detail.Lesson
	switch lesson.LessonType {
	case models.LessonTypeVideo:
		state := Resolve(VideoInputsFromLesson(lesson), q)
		v := &VideoView{IsLoading: state.IsLoading, URL: state.URL}
		if state.Err != nil {
			v.Error = state.Err.Error()
		}
		if state.URL != "" {
			v.PlayerKind = PlayerKindEmbed
			if lesson.VideoSourceType != nil && *lesson.VideoSourceType == models.VideoSourceCloudinary {
				v.PlayerKind = PlayerKindNative
				if detail.Progress != nil && detail.Progress.LastWatchedPosition != nil && *detail.Progress.LastWatchedPosition > 0 {
					v.ResumeFrom = *detail.Progress.LastWatchedPosition
				}
			}
		}
		return ContentView{Kind: ViewKindVideo, Video: v}
	case models.LessonTypeText:
		t := &TextView{}
		if lesson.TextContent != nil {
			t.HTML = *lesson.TextContent
		}
		return ContentView{Kind: ViewKindText, Text: t}
	case models.LessonTypeQuiz:
		return ContentView{Kind: ViewKindQuiz, Quiz: &QuizView{LessonID: lesson.ID.String()}}
	default:
		return ContentView{Kind: ViewKindUnsupported}
	}
}

// LessonShown reports that a lesson was presented. Text lessons complete on
// view; other types complete only through their own consumption signals.
func (r *ContentRenderer) LessonShown(ctx context.Context, detail models.LessonDetail) {
	if detail.Lesson.LessonType != models.LessonTypeText {
		return
	}
	if detail.Progress != nil && detail.Progress.IsCompleted {
		return
	}
	if err := r.sink.MarkLessonCompleted(ctx, detail.Lesson.ID, true); err != nil {
		r.log.ErrorErr("failed to mark text lesson completed", err, "lesson_id", detail.Lesson.ID)
	}
}

// QuizCompleted receives a graded result from the quiz engine and marks the
// lesson completed on a pass.
func (r *ContentRenderer) QuizCompleted(ctx context.Context, result models.QuizAttemptResult) {
	if !result.IsPassed {
		return
	}
	if err := r.sink.MarkLessonCompleted(ctx, result.LessonID, true); err != nil {
		r.log.ErrorErr("failed to mark quiz lesson completed", err, "lesson_id", result.LessonID)
	}
}

func (r *ContentRenderer) videoProgress(lessonID uuid.UUID, positionSeconds int) {
	if err := r.sink.SaveVideoProgress(context.Background(), lessonID, positionSeconds); err != nil {
		r.log.ErrorErr("failed to save video progress", err, "lesson_id", lessonID)
	}
}

func (r *ContentRenderer) videoEnded(lessonID uuid.UUID) {
	if err := r.sink.MarkLessonCompleted(context.Background(), lessonID, true); err != nil {
		r.log.ErrorErr("failed to mark video lesson completed", err, "lesson_id", lessonID)
	}
}
