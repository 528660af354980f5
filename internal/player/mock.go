// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is an in-memory Sink for tests. It records calls and lets tests
// drive drain and failure behavior. Safe for concurrent use so tests can
// poke it while a polling goroutine drives the player.
type Mock struct {
	mu sync.Mutex

	loadErr  error
	duration time.Duration
	known    bool

	loaded  bool
	drained bool
	paused  bool
	level   float64
	closed  bool

	loadCalls  []string
	skipCalls  []time.Duration
	playCalls  int
	pauseCalls int
	stopCalls  int
}

// NewMock creates a mock sink reporting a known 3-minute duration.
func NewMock() *Mock {
	return &Mock{
		duration: 3 * time.Minute,
		known:    true,
		level:    1.0,
	}
}

func (m *Mock) Load(path string, skip time.Duration) (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadCalls = append(m.loadCalls, path)
	m.skipCalls = append(m.skipCalls, skip)

	m.loaded = false
	m.drained = false
	m.paused = false
	if m.loadErr != nil {
		return 0, false, m.loadErr
	}

	m.loaded = true
	m.paused = true
	return m.duration, m.known, nil
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.loaded {
		m.paused = false
	}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.loaded {
		m.paused = true
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.loaded = false
	m.drained = false
	m.paused = false
}

func (m *Mock) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.loaded || m.drained
}

func (m *Mock) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded && m.paused
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetLoadError makes subsequent Load calls fail with err.
func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// SetDuration sets the duration reported by the next Load.
func (m *Mock) SetDuration(d time.Duration, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
	m.known = known
}

// SimulateDrained marks the queued stream as fully played out.
func (m *Mock) SimulateDrained() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drained = true
}

// LoadCalls returns the paths passed to Load, in order.
func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

// SkipCalls returns the skip offsets passed to Load, in order.
func (m *Mock) SkipCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.skipCalls...)
}

// PlayCalls returns how many times Play was called.
func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// PauseCalls returns how many times Pause was called.
func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// StopCalls returns how many times Stop was called.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Sink at compile time.
var _ Sink = (*Mock)(nil)
