package playlist

import "fmt"

// Mode defines how Advance picks the next track.
type Mode int

const (
	// Sequential walks the playlist in order and stops at the end.
	Sequential Mode = iota
	// Shuffle picks a random track different from the current one.
	Shuffle
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Shuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sequential", "":
		return Sequential, nil
	case "shuffle":
		return Shuffle, nil
	default:
		return Sequential, fmt.Errorf("unknown advance mode: %q", s)
	}
}
