package player

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
	extOGA  = ".oga"
)

// The speaker is process-global: it is initialized once at the sample rate
// of the first loaded track, and later tracks are resampled to match.
var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// BeepSink plays decoded audio through the beep speaker.
type BeepSink struct {
	mu sync.Mutex

	level float64

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	drained  *atomic.Bool
}

// Verify BeepSink implements Sink at compile time.
var _ Sink = (*BeepSink)(nil)

// NewBeepSink creates a sink at full volume with nothing queued.
func NewBeepSink() *BeepSink {
	return &BeepSink{level: 1.0}
}

// Load decodes the track at path and queues it, suspended, on the speaker.
// Audio up to skip is decoded and dropped first; there is no random access
// at this layer, so the cost of the drop grows with skip.
func (s *BeepSink) Load(path string, skip time.Duration) (time.Duration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}

	streamer, format, err := decode(path, f)
	if err != nil {
		f.Close()
		return 0, false, err
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return 0, false, err
		}
		speakerInitialized = true
	}

	total := format.SampleRate.D(streamer.Len())
	known := streamer.Len() > 0

	if skip > 0 {
		discard(streamer, format.SampleRate.N(skip))
	}

	s.file = f
	s.streamer = streamer
	s.format = format

	var stream beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		stream = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	s.ctrl = &beep.Ctrl{Streamer: stream, Paused: true}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}

	// Each load gets its own drained flag so a late callback from a
	// cleared stream cannot mark the new one as played out.
	drained := new(atomic.Bool)
	s.drained = drained

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		drained.Store(true)
	})))

	return total, known, nil
}

// Play resumes output of the queued stream.
func (s *BeepSink) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

// Pause suspends output.
func (s *BeepSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

// Stop discards the queued stream and releases the decoder.
func (s *BeepSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *BeepSink) stopLocked() {
	if s.ctrl == nil {
		return
	}

	speaker.Clear()

	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	s.ctrl = nil
	s.volume = nil
	s.drained = nil
}

// Empty reports whether no queued audio remains.
func (s *BeepSink) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return true
	}
	return s.drained.Load()
}

// Paused reports whether output is suspended.
func (s *BeepSink) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl == nil {
		return false
	}
	speaker.Lock()
	paused := s.ctrl.Paused
	speaker.Unlock()
	return paused
}

// SetVolume applies a level in [0, 1]. The level carries over to the next
// loaded track.
func (s *BeepSink) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Volume = levelToVolume(level)
	s.volume.Silent = level <= 0
	speaker.Unlock()
}

// Volume returns the last applied level.
func (s *BeepSink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Close discards any queued stream.
func (s *BeepSink) Close() error {
	s.Stop()
	return nil
}

func decode(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3:
		return mp3.Decode(f)
	case extFLAC:
		return flac.Decode(f)
	case extWAV:
		return wav.Decode(f)
	case extOGG, extOGA:
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
}

// discard decodes and drops n samples from the streamer.
func discard(streamer beep.Streamer, n int) {
	buf := make([][2]float64, 1024)
	for n > 0 {
		chunk := min(n, len(buf))
		read, ok := streamer.Stream(buf[:chunk])
		n -= read
		if !ok {
			return
		}
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic Volume.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
// We map: 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> -10 (essentially silent)
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
