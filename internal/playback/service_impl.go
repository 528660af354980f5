// internal/playback/service_impl.go
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/mlevasseur/refrain/internal/player"
	"github.com/mlevasseur/refrain/internal/playlist"
)

// defaultPollInterval is how often the poll loop checks for a finished
// track. Completion is only ever observed at this granularity.
const defaultPollInterval = 100 * time.Millisecond

// previousRestartThreshold is how far into a track Previous restarts it
// instead of going back to the prior queue entry.
const previousRestartThreshold = 3 * time.Second

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	engine *player.Player
	queue  *playlist.Navigator

	// active arms the poll loop: it is true from a successful play until
	// the queue runs out, a play fails, or Stop is called. It keeps a
	// fresh or settled engine from being mistaken for a finished track.
	active bool

	lastState State
	lastTrack *Track
	lastIndex int

	pollInterval time.Duration

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback service around an engine and a queue.
// A pollInterval of zero selects the default of 100ms.
func New(engine *player.Player, queue *playlist.Navigator, pollInterval time.Duration) Service {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &serviceImpl{
		engine:       engine,
		queue:        queue,
		lastState:    StateStopped,
		lastIndex:    -1,
		pollInterval: pollInterval,
		done:         make(chan struct{}),
	}
}

// Run drives the completion poll until ctx is canceled or the service is
// closed.
func (s *serviceImpl) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick advances the queue when the armed track has finished. A disarmed
// service ignores the engine entirely, so the "fresh engine reads as
// finished" quirk never triggers a play.
func (s *serviceImpl) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.active || !s.engine.CheckFinished() {
		return
	}

	next := s.queue.Advance()
	if next == nil {
		s.active = false
		zlog.Debug().Msg("playback: queue finished")
		s.emitStateLocked()
		return
	}
	_ = s.playTrackLocked(*next, s.queue.CurrentIndex(), "advance")
}

// Play starts the current queue track, or the first track when nothing is
// current yet. Calling it on a track already playing restarts that track.
func (s *serviceImpl) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playLocked()
}

func (s *serviceImpl) playLocked() error {
	if s.queue.IsEmpty() {
		return ErrEmptyQueue
	}
	t := s.queue.Current()
	if t == nil {
		t = s.queue.Advance()
	}
	return s.playTrackLocked(*t, s.queue.CurrentIndex(), "play")
}

// PlayIndex jumps the queue to index and plays the track there.
func (s *serviceImpl) PlayIndex(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.queue.JumpTo(index)
	if t == nil {
		return ErrInvalidIndex
	}
	return s.playTrackLocked(*t, index, "play")
}

// playTrackLocked hands a track to the engine and emits the resulting
// events. On failure the poll loop is disarmed so the settled engine is
// not treated as a finished track.
func (s *serviceImpl) playTrackLocked(t playlist.Track, index int, op string) error {
	prev, prevIndex := s.lastTrack, s.lastIndex

	if err := s.engine.PlayAtIndex(t.Path, index); err != nil {
		s.active = false
		zlog.Error().Err(err).Msgf("playback: %s failed: path=%s", op, t.Path)
		s.broadcast(func(sub *Subscription) {
			sub.sendError(ErrorEvent{Operation: op, Path: t.Path, Err: err})
		})
		s.emitStateLocked()
		return err
	}

	cur := fromPlaylist(t)
	s.lastTrack, s.lastIndex = &cur, index
	s.active = true
	zlog.Debug().Msgf("playback: playing: index=%d path=%s", index, t.Path)

	s.broadcast(func(sub *Subscription) {
		sub.sendTrack(TrackChange{
			Previous:      prev,
			Current:       &cur,
			PreviousIndex: prevIndex,
			Index:         index,
		})
	})
	s.emitStateLocked()
	return nil
}

// Pause suspends playback. No-op unless playing.
func (s *serviceImpl) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.State() != player.Playing {
		return nil
	}
	s.engine.Pause()
	s.emitStateLocked()
	return nil
}

// Resume continues paused playback. No-op unless paused.
func (s *serviceImpl) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine.State() != player.Paused {
		return nil
	}
	s.engine.Resume()
	s.emitStateLocked()
	return nil
}

// Toggle pauses when playing, resumes when paused, and starts the queue
// otherwise.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.engine.State() {
	case player.Playing:
		s.engine.Pause()
		s.emitStateLocked()
		return nil
	case player.Paused:
		s.engine.Resume()
		s.emitStateLocked()
		return nil
	default:
		return s.playLocked()
	}
}

// Stop halts playback and disarms the poll loop. The queue position is
// untouched so Play resumes from the same track.
func (s *serviceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Stop()
	s.active = false
	s.emitStateLocked()
}

// Next advances the queue and plays the track there. At the end of a
// sequential queue playback stops and the queue position is unset.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.queue.Advance()
	if next == nil {
		s.engine.Stop()
		s.active = false
		zlog.Debug().Msg("playback: next past end of queue")
		s.emitStateLocked()
		return nil
	}
	return s.playTrackLocked(*next, s.queue.CurrentIndex(), "next")
}

// Previous restarts the current track when more than a few seconds in,
// otherwise it steps back to the prior queue entry. At the head of the
// queue it is a no-op.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.engine.State()
	if (st == player.Playing || st == player.Paused) && s.engine.Position() > previousRestartThreshold {
		return s.seekToLocked(0)
	}

	prev := s.queue.Previous()
	if prev == nil {
		return nil
	}
	return s.playTrackLocked(*prev, s.queue.CurrentIndex(), "previous")
}

// Seek moves playback relative to the current position.
func (s *serviceImpl) Seek(delta time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seekToLocked(s.engine.Position() + delta)
}

// SeekTo moves playback to an absolute position.
func (s *serviceImpl) SeekTo(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seekToLocked(position)
}

func (s *serviceImpl) seekToLocked(position time.Duration) error {
	err := s.engine.SeekTo(position)
	if err != nil {
		var openErr *player.OpenError
		if errors.As(err, &openErr) {
			s.active = false
			zlog.Error().Err(err).Msgf("playback: seek failed: path=%s", openErr.Path)
			s.broadcast(func(sub *Subscription) {
				sub.sendError(ErrorEvent{Operation: "seek", Path: openErr.Path, Err: err})
			})
			s.emitStateLocked()
		}
		return err
	}

	// A seek on a finished track reloads it, so playback is live again.
	s.active = true
	pos := s.engine.Position()
	s.broadcast(func(sub *Subscription) { sub.sendPosition(pos) })
	s.emitStateLocked()
	return nil
}

// Append adds tracks to the end of the queue without touching playback.
func (s *serviceImpl) Append(tracks ...Track) {
	if len(tracks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	converted := make([]playlist.Track, len(tracks))
	for i, t := range tracks {
		converted[i] = toPlaylist(t)
	}
	s.queue.Append(converted...)
	s.emitQueueLocked()
}

// RemoveAt removes the track at index. The audio of a removed playing
// track keeps playing; only the queue bookkeeping moves.
func (s *serviceImpl) RemoveAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAtLocked(index)
}

func (s *serviceImpl) removeAtLocked(index int) bool {
	if !s.queue.RemoveAt(index) {
		return false
	}
	s.emitQueueLocked()
	return true
}

// RemoveSelected removes the selected track, if any.
func (s *serviceImpl) RemoveSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.queue.SelectedIndex()
	if index < 0 {
		return false
	}
	return s.removeAtLocked(index)
}

// MoveUp swaps the track at index with its predecessor.
func (s *serviceImpl) MoveUp(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.MoveUp(index) {
		return false
	}
	s.emitQueueLocked()
	return true
}

// MoveDown swaps the track at index with its successor.
func (s *serviceImpl) MoveDown(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.queue.MoveDown(index) {
		return false
	}
	s.emitQueueLocked()
	return true
}

// ClearQueue empties the queue. Audio already in flight keeps playing and
// settles through the poll loop once it drains.
func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Clear()
	s.emitQueueLocked()
}

// Select marks the track at index as selected.
func (s *serviceImpl) Select(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Select(index)
}

// ClearSelection unsets the selection.
func (s *serviceImpl) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.ClearSelection()
}

// SelectedIndex returns the selected index (-1 if none).
func (s *serviceImpl) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.SelectedIndex()
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *serviceImpl) stateLocked() State {
	switch s.engine.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// IsPlaying reports whether audio is actually in flight.
func (s *serviceImpl) IsPlaying() bool {
	return s.engine.IsPlaying()
}

// Position returns the current playback position.
func (s *serviceImpl) Position() time.Duration {
	return s.engine.Position()
}

// Duration returns the current track length, if the decoder reported one.
func (s *serviceImpl) Duration() (time.Duration, bool) {
	return s.engine.Duration()
}

// CurrentTrack returns a copy of the track the queue points at, or nil.
func (s *serviceImpl) CurrentTrack() *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.queue.Current()
	if t == nil {
		return nil
	}
	track := fromPlaylist(*t)
	return &track
}

// CurrentIndex returns the current queue index (-1 if none).
func (s *serviceImpl) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

// QueueTracks returns a copy of all tracks in the queue.
func (s *serviceImpl) QueueTracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queueTracksLocked()
}

func (s *serviceImpl) queueTracksLocked() []Track {
	tracks := s.queue.Tracks()
	result := make([]Track, len(tracks))
	for i, t := range tracks {
		result[i] = fromPlaylist(t)
	}
	return result
}

// QueueLen returns the number of tracks in the queue.
func (s *serviceImpl) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// QueueIsEmpty reports whether the queue holds no tracks.
func (s *serviceImpl) QueueIsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.IsEmpty()
}

// Mode returns the queue advance mode.
func (s *serviceImpl) Mode() playlist.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Mode()
}

// SetMode switches the queue advance mode.
func (s *serviceImpl) SetMode(mode playlist.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Mode() == mode {
		return
	}
	s.queue.SetMode(mode)
	zlog.Debug().Msgf("playback: mode changed: mode=%s", mode)
	s.broadcast(func(sub *Subscription) {
		sub.sendMode(ModeChange{Mode: mode})
	})
}

// Volume returns the current volume level.
func (s *serviceImpl) Volume() float64 {
	return s.engine.Volume()
}

// SetVolume applies a volume level, clamped to [0, 1] by the engine.
func (s *serviceImpl) SetVolume(level float64) {
	s.engine.SetVolume(level)
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

// emitStateLocked broadcasts a StateChange if the mapped state moved since
// the last emission.
func (s *serviceImpl) emitStateLocked() {
	current := s.stateLocked()
	if current == s.lastState {
		return
	}
	previous := s.lastState
	s.lastState = current
	s.broadcast(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: previous, Current: current})
	})
}

func (s *serviceImpl) emitQueueLocked() {
	e := QueueChange{
		Tracks: s.queueTracksLocked(),
		Index:  s.queue.CurrentIndex(),
	}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}
