package player

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoInputs(source, externalID string) VideoInputs {
	return VideoInputs{
		LessonID:   uuid.New(),
		LessonType: models.LessonTypeVideo,
		SourceType: source,
		ExternalID: externalID,
	}
}

func TestResolve_NonVideoLessonIsAlwaysEmpty(t *testing.T) {
	for _, lt := range []string{models.LessonTypeText, models.LessonTypeQuiz, "", "unknown"} {
		state := Resolve(VideoInputs{LessonID: uuid.New(), LessonType: lt}, SignedURLQuery{IsLoading: true})
		assert.Equal(t, PlaybackState{}, state, "lesson type %q", lt)
	}
}

func TestResolve_YouTubeIsSynchronous(t *testing.T) {
	state := Resolve(videoInputs(models.VideoSourceYouTube, "abc123"), SignedURLQuery{})
	require.NoError(t, state.Err)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", state.URL)
}

func TestResolve_VimeoIsSynchronous(t *testing.T) {
	state := Resolve(videoInputs(models.VideoSourceVimeo, "123456789"), SignedURLQuery{})
	require.NoError(t, state.Err)
	assert.False(t, state.IsLoading)
	assert.Equal(t, "https://player.vimeo.com/video/123456789", state.URL)
}

func TestResolve_CloudinaryMirrorsQueryState(t *testing.T) {
	in := videoInputs(models.VideoSourceCloudinary, "vid1")

	loading := Resolve(in, SignedURLQuery{IsLoading: true})
	assert.True(t, loading.IsLoading)
	assert.Empty(t, loading.URL)
	assert.NoError(t, loading.Err)

	ok := Resolve(in, SignedURLQuery{URL: "https://cdn/x.mp4"})
	assert.False(t, ok.IsLoading)
	assert.Equal(t, "https://cdn/x.mp4", ok.URL)

	failed := Resolve(in, SignedURLQuery{Err: errors.New("boom")})
	assert.EqualError(t, failed.Err, "boom")
	assert.Empty(t, failed.URL)
}

func TestResolve_IdleQueryReportsUnavailable(t *testing.T) {
	state := Resolve(videoInputs(models.VideoSourceCloudinary, "vid1"), SignedURLQuery{})
	assert.ErrorIs(t, state.Err, app_errors.ErrVideoUnavailable)
	assert.False(t, state.IsLoading)
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	missingID := Resolve(videoInputs(models.VideoSourceYouTube, ""), SignedURLQuery{})
	assert.ErrorIs(t, missingID.Err, app_errors.ErrMissingVideoID)
	assert.False(t, missingID.IsLoading)

	missingSource := Resolve(videoInputs("", "abc"), SignedURLQuery{})
	assert.ErrorIs(t, missingSource.Err, app_errors.ErrMissingVideoSource)

	unknown := Resolve(videoInputs("dailymotion", "abc"), SignedURLQuery{})
	assert.ErrorIs(t, unknown.Err, app_errors.ErrUnknownVideoSource)
}

func TestResolve_NoSourceAndNoIDIsEmptyState(t *testing.T) {
	state := Resolve(videoInputs("", ""), SignedURLQuery{})
	assert.Equal(t, PlaybackState{}, state)
}

func TestExtractYouTubeID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?list=x&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractYouTubeID(tc.raw), "input %q", tc.raw)
	}
}

func TestExtractVimeoID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"76979871", "76979871"},
		{"https://vimeo.com/76979871", "76979871"},
		{"https://player.vimeo.com/video/76979871", "76979871"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractVimeoID(tc.raw), "input %q", tc.raw)
	}
}
