// internal/playback/state.go
package playback

// State represents the playback state as seen by consumers. The engine's
// Finished state is an internal detail and maps to StateStopped here.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
