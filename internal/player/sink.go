package player

import "time"

// Sink is the decoder and output-device seam. A sink holds at most one
// decoded stream at a time; Load replaces whatever was queued. The Player
// serializes all calls, so implementations only need to guard state that
// tests or audio callbacks touch from other goroutines.
type Sink interface {
	// Load opens and decodes the track at path, replacing any queued
	// stream, and discards audio up to skip before queueing the rest.
	// The stream is left suspended; Play starts it. Reports the total
	// track duration when the decoder knows it.
	Load(path string, skip time.Duration) (duration time.Duration, known bool, err error)

	// Play starts or resumes output of the queued stream.
	Play()

	// Pause suspends output, keeping the stream queued.
	Pause()

	// Stop discards the queued stream; the sink reports Empty afterwards.
	Stop()

	// Empty reports whether no queued audio remains, either because
	// nothing is loaded or because the stream played out.
	Empty() bool

	// Paused reports whether output is suspended.
	Paused() bool

	// SetVolume applies a level in [0, 1]. The level survives Load.
	SetVolume(level float64)

	// Volume returns the last applied level.
	Volume() float64

	// Close releases the sink's resources.
	Close() error
}
