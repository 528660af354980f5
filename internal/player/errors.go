package player

import (
	"errors"
	"fmt"
)

// ErrNoActiveTrack is returned by SeekTo when nothing is loaded.
var ErrNoActiveTrack = errors.New("no active track")

// OpenError reports a track that could not be opened or decoded.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open track %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }
