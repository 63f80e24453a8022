// Package mock provides a mock implementation of the AudioEngine interface.
// It simulates playback in memory so services can be tested without a real
// audio library or sound hardware.
package mock

import (
	"sync"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// Engine is a mock audio engine. Each Load allocates a fresh handle; the
// loaded-handle count is observable so tests can assert that the playback
// session never leaks a handle.
//
// Thread-safety: all operations are protected by a mutex.
type Engine struct {
	mu         sync.Mutex
	tracks     map[domain.PlaybackHandle]*mockTrack
	nextHandle domain.PlaybackHandle

	// failure toggles for exercising error paths
	failLoad bool
	failPlay bool
}

type mockTrack struct {
	path   string
	status domain.PlaybackStatus
}

// NewEngine creates a new mock audio engine.
func NewEngine() *Engine {
	return &Engine{
		tracks:     make(map[domain.PlaybackHandle]*mockTrack),
		nextHandle: 1,
	}
}

// SetFailLoad configures the engine to fail Load calls.
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the engine to fail Play calls.
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Load registers a simulated track and returns its handle.
func (m *Engine) Load(path string) (domain.PlaybackHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLoad {
		return domain.InvalidPlaybackHandle, domain.ErrAssetUnavailable
	}
	if path == "" {
		return domain.InvalidPlaybackHandle, domain.ErrAssetUnavailable
	}

	handle := m.nextHandle
	m.nextHandle++
	m.tracks[handle] = &mockTrack{path: path, status: domain.StatusStopped}
	return handle, nil
}

// Unload releases a handle. The handle is invalid afterwards.
func (m *Engine) Unload(handle domain.PlaybackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tracks[handle]; !ok {
		return domain.ErrInvalidPlaybackHandle
	}
	delete(m.tracks, handle)
	return nil
}

// Play marks the track as playing.
func (m *Engine) Play(handle domain.PlaybackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPlay {
		return domain.ErrAssetUnavailable
	}
	track, ok := m.tracks[handle]
	if !ok {
		return domain.ErrInvalidPlaybackHandle
	}
	track.status = domain.StatusPlaying
	return nil
}

// Pause marks a playing track as paused.
func (m *Engine) Pause(handle domain.PlaybackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, ok := m.tracks[handle]
	if !ok {
		return domain.ErrInvalidPlaybackHandle
	}
	if track.status == domain.StatusPlaying {
		track.status = domain.StatusPaused
	}
	return nil
}

// Status returns the simulated status for a handle.
func (m *Engine) Status(handle domain.PlaybackHandle) (domain.PlaybackStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, ok := m.tracks[handle]
	if !ok {
		return domain.StatusStopped, domain.ErrInvalidPlaybackHandle
	}
	return track.status, nil
}

// LoadedCount returns the number of live handles. Tests use this to assert
// the one-handle invariant and the absence of leaks.
func (m *Engine) LoadedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}

// LoadedPath returns the path bound to a handle, for test assertions.
func (m *Engine) LoadedPath(handle domain.PlaybackHandle) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, ok := m.tracks[handle]
	if !ok {
		return "", false
	}
	return track.path, true
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
