package playback

import (
	"context"
	"time"

	"github.com/mlevasseur/refrain/internal/playlist"
)

// Service defines the playback service contract. It binds the engine to
// the queue: engine operations act on whatever track the queue points at,
// and the poll loop advances the queue when a track finishes.
type Service interface {
	// Playback control
	Play() error
	PlayIndex(index int) error
	Pause() error
	Resume() error
	Toggle() error
	Stop()
	Next() error
	Previous() error
	Seek(delta time.Duration) error
	SeekTo(position time.Duration) error

	// Queue manipulation
	Append(tracks ...Track)
	RemoveAt(index int) bool
	RemoveSelected() bool
	MoveUp(index int) bool
	MoveDown(index int) bool
	ClearQueue()

	// Queue selection
	Select(index int) bool
	ClearSelection()
	SelectedIndex() int

	// State queries
	State() State
	IsPlaying() bool
	Position() time.Duration
	Duration() (time.Duration, bool)
	CurrentTrack() *Track
	CurrentIndex() int

	// Queue queries
	QueueTracks() []Track
	QueueLen() int
	QueueIsEmpty() bool

	// Mode control
	Mode() playlist.Mode
	SetMode(mode playlist.Mode)

	// Volume control
	Volume() float64
	SetVolume(level float64)

	// Run drives the completion poll until ctx is canceled or the
	// service is closed. Track completion is only ever detected here.
	Run(ctx context.Context)

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
