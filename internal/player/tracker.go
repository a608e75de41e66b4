package player

import (
	"CourseFlow/internal/models"
	"sync"

	"github.com/google/uuid"
)

// Media readiness levels, matching the usual media-element scale.
const (
	HaveNothing     = 0
	HaveMetadata    = 1
	HaveCurrentData = 2
	HaveFutureData  = 3
	HaveEnoughData  = 4
)

// MediaHandle is the playback surface the tracker drives. OnReady registers a
// one-shot observer for the "enough data buffered" signal and returns a
// deregistration func; implementations must not fire after deregistration.
type MediaHandle interface {
	CurrentSrc() string
	ReadyState() int
	Seek(positionSeconds float64)
	OnReady(fn func()) (cancel func())
}

// TrackerCallbacks receive playback events for the active lesson. Both fire
// only for the self-hosted source; provider embeds give no reliable
// client-side signal and are excluded.
type TrackerCallbacks struct {
	OnProgress func(lessonID uuid.UUID, positionSeconds int)
	OnEnded    func(lessonID uuid.UUID)
}

// PositionTracker seeks a media handle to the last watched position once the
// handle is ready, and forwards progress/ended events upward. One tracker
// serves one player surface; Attach replaces any previous attachment.
type PositionTracker struct {
	cb TrackerCallbacks

	mu         sync.Mutex
	cancel     func()
	lessonID   uuid.UUID
	sourceType string
	url        string
}

func NewPositionTracker(cb TrackerCallbacks) *PositionTracker {
	return &PositionTracker{cb: cb}
}

// Attach binds the tracker to a handle for one lesson. A stored position is
// applied only for the self-hosted source; the seek waits for the ready
// signal unless the handle is already sufficiently buffered.
func (t *PositionTracker) Attach(handle MediaHandle, lessonID uuid.UUID, sourceType, url string, lastWatched int) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.lessonID = lessonID
	t.sourceType = sourceType
	t.url = url
	t.mu.Unlock()

	if sourceType != models.VideoSourceCloudinary || lastWatched <= 0 || url == "" {
		return
	}

	seek := func() {
		// A ready signal can arrive after the source already changed to the
		// next lesson's video; only seek while the handle still plays ours.
		if handle.CurrentSrc() == url && handle.ReadyState() >= HaveFutureData {
			handle.Seek(float64(lastWatched))
		}
	}

	if handle.ReadyState() >= HaveFutureData {
		seek()
		return
	}

	var once sync.Once
	var cancel func()
	cancel = handle.OnReady(func() {
		once.Do(func() {
			seek()
			t.mu.Lock()
			if t.cancel != nil {
				t.cancel()
				t.cancel = nil
			}
			t.mu.Unlock()
		})
	})

	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()
}

// Detach removes the pending ready observer, if any. Safe to call repeatedly.
func (t *PositionTracker) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.lessonID = uuid.Nil
	t.sourceType = ""
	t.url = ""
}

// HandleTimeUpdate forwards the current position, truncated to whole seconds,
// for the self-hosted source.
func (t *PositionTracker) HandleTimeUpdate(positionSeconds float64) {
	t.mu.Lock()
	lessonID, sourceType := t.lessonID, t.sourceType
	t.mu.Unlock()

	if sourceType != models.VideoSourceCloudinary || t.cb.OnProgress == nil {
		return
	}
	t.cb.OnProgress(lessonID, int(positionSeconds))
}

// HandleEnded forwards end-of-playback for the self-hosted source.
func (t *PositionTracker) HandleEnded() {
	t.mu.Lock()
	lessonID, sourceType := t.lessonID, t.sourceType
	t.mu.Unlock()

	if sourceType != models.VideoSourceCloudinary || t.cb.OnEnded == nil {
		return
	}
	t.cb.OnEnded(lessonID)
}
