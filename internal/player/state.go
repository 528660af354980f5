// internal/player/state.go
package player

// State represents the playback state machine.
//
// Stopped is the initial state: nothing has been loaded, or the last open
// failed. Finished is sticky: it records that the loaded track completed on
// its own or was stopped explicitly, and only a successful play or seek
// clears it. The loaded track reference and position survive the transition
// into Finished so that "what was playing" queries keep resolving.
//
// Valid transitions:
//   - Stopped  → Playing  (play)
//   - Playing  → Paused   (pause)
//   - Paused   → Playing  (resume, seek)
//   - Playing  → Finished (stop, drained sink)
//   - Paused   → Finished (stop)
//   - Finished → Playing  (play, seek)
//
// Everything else is a no-op: the transition function is total, so an
// event that makes no sense in the current state leaves it unchanged.
type State int

const (
	Stopped State = iota
	Playing
	Paused
	Finished
)

// event is an input to the state machine. Events are only raised after the
// side effect they describe succeeded; a failed open never reaches next.
type event int

const (
	eventPlay event = iota
	eventPause
	eventResume
	eventStop
	eventDrain
	eventSeek
)

// next returns the state following ev.
func (s State) next(ev event) State {
	switch ev {
	case eventPlay:
		// A fresh track always lands in Playing and clears Finished.
		return Playing
	case eventPause:
		if s == Playing {
			return Paused
		}
		return s
	case eventResume:
		if s == Paused {
			return Playing
		}
		return s
	case eventStop:
		// Stop forces the sticky Finished flag from any state.
		return Finished
	case eventDrain:
		// Only a playing track can run out of audio.
		if s == Playing {
			return Finished
		}
		return s
	case eventSeek:
		// A seek preserves a pause in effect, otherwise playback runs.
		if s == Paused {
			return Paused
		}
		return Playing
	default:
		return s
	}
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Finished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is in flight (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
