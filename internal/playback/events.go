package playback

import (
	"time"

	"github.com/mlevasseur/refrain/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback actually starts on a track.
//
// Emitted by:
//   - Play/PlayIndex: when a queue track starts
//   - Next/Previous: when navigating with playback
//   - the poll loop: when a finished track advances automatically
//
// NOT emitted by:
//   - queue edits that move the current index without touching audio
//   - Pause/Stop: those are state changes only
//
// Consumers handle all track side effects (media keys metadata, session
// persistence, status output) in response to this event.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ModeChange is emitted when the navigation mode changes.
type ModeChange struct {
	Mode playlist.Mode
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	Path      string // track path if applicable
	Err       error
}
