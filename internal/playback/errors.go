package playback

import "errors"

var (
	// ErrEmptyQueue is returned when playback is requested on an empty queue.
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrInvalidIndex is returned for a queue index that is out of range.
	ErrInvalidIndex = errors.New("invalid queue index")
)
