package player

import (
	"sync"
	"time"
)

// Player is the playback engine. It drives a single Sink and tracks the
// elapsed position itself: the position is extrapolated from the wall
// clock between reads instead of querying the sink, so it advances only
// while Playing and freezes exactly where the last read left it on pause.
//
// One mutex owns every field. Each exported method takes it once, so a
// stop racing a play from another goroutine serializes cleanly and no
// caller can observe a half-updated engine.
type Player struct {
	mu sync.Mutex

	sink Sink

	state    State
	track    string
	index    int
	position time.Duration
	lastTick time.Time
	duration time.Duration
	knownDur bool
}

// New creates a stopped player on top of sink.
func New(sink Sink) *Player {
	return &Player{
		sink:  sink,
		state: Stopped,
		index: -1,
	}
}

// Play stops any current playback and starts the track at path from the
// beginning. On failure the engine is left stopped and unloaded, and the
// error wraps the decoder failure as an *OpenError.
func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked(path)
}

// PlayAtIndex records index as the active index and then plays the track.
// The index is recorded before the open is attempted, so a failed open
// leaves the fresh index in place; a caller that needs the previous index
// back rolls it back itself.
func (p *Player) PlayAtIndex(path string, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = index
	return p.playLocked(path)
}

func (p *Player) playLocked(path string) error {
	duration, known, err := p.sink.Load(path, 0)
	if err != nil {
		p.track = ""
		p.position = 0
		p.duration, p.knownDur = 0, false
		p.state = Stopped
		return &OpenError{Path: path, Err: err}
	}

	p.track = path
	p.position = 0
	p.lastTick = time.Now()
	p.duration, p.knownDur = duration, known

	p.sink.Play()
	p.state = p.state.next(eventPlay)
	return nil
}

// Pause suspends playback. The position freezes at the value of the last
// Position read; the span since that read is not added. No-op unless
// Playing.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanPause() {
		return
	}
	p.sink.Pause()
	p.state = p.state.next(eventPause)
}

// Resume continues paused playback. Position accounting restarts from the
// frozen value: the paused span never reaches the position. No-op unless
// Paused with queued audio.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanResume() || p.sink.Empty() {
		return
	}
	p.sink.Play()
	p.lastTick = time.Now()
	p.state = p.state.next(eventResume)
}

// Stop halts output and forces the sticky Finished flag. The loaded track
// reference and position are left alone so "what was playing" queries
// still resolve; IsPlaying reports false from here on.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink.Stop()
	p.state = p.state.next(eventStop)
}

// IsPlaying reports whether audio is actually in flight: the engine must
// be in Playing (so neither paused, stopped, nor finished) and the sink
// must still hold queued audio.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Playing && !p.sink.Empty()
}

// CheckFinished reports whether the loaded track is done, either because
// the sink drained while playing or because Stop forced it. Completion is
// detected only here, by polling; observing a drained sink makes the
// Finished state sticky, so any polling cadence sees one finish exactly
// once it has happened and never double-counts it.
func (p *Player) CheckFinished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Finished {
		return true
	}
	if p.sink.Empty() && !p.sink.Paused() {
		p.state = p.state.next(eventDrain)
		return true
	}
	return false
}

// Position returns the elapsed playback time. While Playing it folds the
// wall-clock time since the previous read into the stored position, so
// repeated reads never double-count; while Paused it returns the frozen
// value unchanged.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing && !p.sink.Empty() {
		now := time.Now()
		p.position += now.Sub(p.lastTick)
		p.lastTick = now
	}
	return p.position
}

// Duration returns the total length of the loaded track, if the decoder
// reported one.
func (p *Player) Duration() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration, p.knownDur
}

// SeekTo moves playback to position. The sink cannot seek in place, so
// the track is reloaded and decoded up to the target: the cost grows with
// the offset and a long skip may cause an audible gap. The recorded
// position is updated before the reload, so readers see the target
// immediately. A pause in effect is preserved; otherwise playback resumes
// at the target. Fails with ErrNoActiveTrack when nothing is loaded.
func (p *Player) SeekTo(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == "" {
		return ErrNoActiveTrack
	}
	if position < 0 {
		position = 0
	}

	wasPaused := p.state == Paused

	p.position = position
	p.lastTick = time.Now()

	duration, known, err := p.sink.Load(p.track, position)
	if err != nil {
		p.state = p.state.next(eventStop)
		return &OpenError{Path: p.track, Err: err}
	}
	p.duration, p.knownDur = duration, known

	if !wasPaused {
		p.sink.Play()
	}
	p.state = p.state.next(eventSeek)
	return nil
}

// SetVolume applies a level clamped to [0, 1]. The level persists across
// track changes.
func (p *Player) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink.SetVolume(level)
}

// Volume returns the current volume level.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink.Volume()
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Track returns the loaded track path, if any. The reference survives a
// stop or a finish and is only replaced by the next successful play.
func (p *Player) Track() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track, p.track != ""
}

// ActiveIndex returns the playlist index recorded by the last PlayAtIndex.
func (p *Player) ActiveIndex() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index < 0 {
		return 0, false
	}
	return p.index, true
}

// Close stops playback and releases the sink.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sink.Close()
}
