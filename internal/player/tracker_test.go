package player

import (
	"CourseFlow/internal/models"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	src        string
	readyState int
	seeks      []float64
	onReady    func()
	cancels    int
}

func (m *fakeMedia) CurrentSrc() string { return m.src }
func (m *fakeMedia) ReadyState() int    { return m.readyState }
func (m *fakeMedia) Seek(pos float64)   { m.seeks = append(m.seeks, pos) }

func (m *fakeMedia) OnReady(fn func()) func() {
	m.onReady = fn
	return func() {
		m.cancels++
		m.onReady = nil
	}
}

func (m *fakeMedia) fireReady() {
	if m.onReady != nil {
		m.onReady()
	}
}

func TestTracker_SeeksOnReadySignal(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveMetadata}

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 42)
	assert.Empty(t, media.seeks, "must wait for the ready signal")

	media.readyState = HaveEnoughData
	media.fireReady()
	require.Equal(t, []float64{42}, media.seeks)
	assert.Equal(t, 1, media.cancels, "observer deregistered after firing")
}

func TestTracker_SeeksImmediatelyWhenAlreadyBuffered(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveEnoughData}

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 30)
	assert.Equal(t, []float64{30}, media.seeks)
	assert.Nil(t, media.onReady, "no observer registered when already buffered")
}

func TestTracker_StaleReadyCallbackDoesNotSeek(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveMetadata}

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 42)

	// The lesson changed before the signal arrived.
	media.src = "https://cdn/b.mp4"
	media.readyState = HaveEnoughData
	media.fireReady()
	assert.Empty(t, media.seeks)
}

func TestTracker_ReattachCancelsPreviousObserver(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveMetadata}

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 10)
	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/b.mp4", 20)
	assert.Equal(t, 1, media.cancels, "first observer removed before attaching the second")

	media.src = "https://cdn/b.mp4"
	media.readyState = HaveEnoughData
	media.fireReady()
	assert.Equal(t, []float64{20}, media.seeks)
}

func TestTracker_NoSeekForEmbedSources(t *testing.T) {
	for _, source := range []string{models.VideoSourceYouTube, models.VideoSourceVimeo} {
		tr := NewPositionTracker(TrackerCallbacks{})
		media := &fakeMedia{src: "https://embed/x", readyState: HaveEnoughData}
		tr.Attach(media, uuid.New(), source, "https://embed/x", 99)
		assert.Empty(t, media.seeks, "source %s", source)
	}
}

func TestTracker_NoSeekForZeroPosition(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveEnoughData}
	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 0)
	assert.Empty(t, media.seeks)
}

func TestTracker_ProgressAndEndedGatedToSelfHosted(t *testing.T) {
	var progress []int
	var ended int
	tr := NewPositionTracker(TrackerCallbacks{
		OnProgress: func(_ uuid.UUID, pos int) { progress = append(progress, pos) },
		OnEnded:    func(_ uuid.UUID) { ended++ },
	})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveEnoughData}

	tr.Attach(media, uuid.New(), models.VideoSourceYouTube, "https://embed/x", 0)
	tr.HandleTimeUpdate(12.7)
	tr.HandleEnded()
	assert.Empty(t, progress)
	assert.Zero(t, ended)

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 0)
	tr.HandleTimeUpdate(12.7)
	tr.HandleEnded()
	assert.Equal(t, []int{12}, progress, "positions reported as whole seconds")
	assert.Equal(t, 1, ended)
}

func TestTracker_DetachRemovesObserver(t *testing.T) {
	tr := NewPositionTracker(TrackerCallbacks{})
	media := &fakeMedia{src: "https://cdn/a.mp4", readyState: HaveMetadata}

	tr.Attach(media, uuid.New(), models.VideoSourceCloudinary, "https://cdn/a.mp4", 5)
	tr.Detach()
	assert.Equal(t, 1, media.cancels)

	media.readyState = HaveEnoughData
	media.fireReady()
	assert.Empty(t, media.seeks)
}
