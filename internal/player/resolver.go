package player

import (
	"CourseFlow/internal/app_errors"
	"CourseFlow/internal/models"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// VideoInputs are the lesson fields video resolution depends on. Resolution
// recomputes the whole PlaybackState from these on every change; previous
// state is never merged in.
type VideoInputs struct {
	LessonID   uuid.UUID
	LessonType string
	SourceType string
	ExternalID string
}

func VideoInputsFromLesson(l models.Lesson) VideoInputs {
	in := VideoInputs{LessonID: l.ID, LessonType: l.LessonType}
	if l.VideoSourceType != nil {
		in.SourceType = *l.VideoSourceType
	}
	if l.ExternalVideoID != nil {
		in.ExternalID = *l.ExternalVideoID
	}
	return in
}

// SignedURLQuery is the observed state of the backend signed-URL fetch for
// the active lesson. Only consulted for the self-hosted source.
type SignedURLQuery struct {
	IsLoading bool
	URL       string
	Err       error
}

// PlaybackState holds exactly one of: loading, an error, a resolved URL, or
// nothing (neutral empty state).
type PlaybackState struct {
	IsLoading bool
	URL       string
	Err       error
}

// Resolve derives the playback state for a lesson. Embed sources resolve
// synchronously; the self-hosted source mirrors the signed-URL query.
func Resolve(in VideoInputs, q SignedURLQuery) PlaybackState {
	if in.LessonType != models.LessonTypeVideo {
		return PlaybackState{}
	}
	if in.SourceType == "" && in.ExternalID == "" {
		return PlaybackState{}
	}
	if in.SourceType == "" {
		return PlaybackState{Err: app_errors.ErrMissingVideoSource}
	}
	if in.ExternalID == "" {
		return PlaybackState{Err: fmt.Errorf("%w: %s", app_errors.ErrMissingVideoID, in.SourceType)}
	}

	switch in.SourceType {
	case models.VideoSourceYouTube:
		return PlaybackState{URL: YouTubeEmbedURL(in.ExternalID)}
	case models.VideoSourceVimeo:
		return PlaybackState{URL: VimeoEmbedURL(in.ExternalID)}
	case models.VideoSourceCloudinary:
		switch {
		case q.IsLoading:
			return PlaybackState{IsLoading: true}
		case q.Err != nil:
			return PlaybackState{Err: q.Err}
		case q.URL != "":
			return PlaybackState{URL: q.URL}
		default:
			// Idle query with no data and no error. Surface it instead of
			// hanging silently on a stale cache state.
			return PlaybackState{Err: app_errors.ErrVideoUnavailable}
		}
	default:
		return PlaybackState{Err: fmt.Errorf("%w: %s", app_errors.ErrUnknownVideoSource, in.SourceType)}
	}
}

var (
	youtubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?.*v=)([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`(?:youtu\.be/)([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`(?:youtube\.com/embed/)([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([A-Za-z0-9_-]{6,})`),
	}
	vimeoIDPattern = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
)

// ExtractYouTubeID returns the canonical video ID from a bare ID or any of
// the common full-URL forms (watch, youtu.be, embed, shorts).
func ExtractYouTubeID(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, p := range youtubeIDPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return raw
}

// ExtractVimeoID returns the numeric video ID from a bare ID or a vimeo.com
// URL.
func ExtractVimeoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := vimeoIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

func YouTubeEmbedURL(raw string) string {
	return "https://www.youtube.com/embed/" + ExtractYouTubeID(raw)
}

func VimeoEmbedURL(raw string) string {
	return "https://player.vimeo.com/video/" + ExtractVimeoID(raw)
}
