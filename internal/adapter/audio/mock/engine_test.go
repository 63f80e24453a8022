package mock

import (
	"errors"
	"testing"

	"github.com/songhaven/songbook/internal/domain"
)

// TestNewEngine tests creating a new mock engine.
func TestNewEngine(t *testing.T) {
	engine := NewEngine()

	if engine == nil {
		t.Fatal("NewEngine returned nil")
	}

	if engine.LoadedCount() != 0 {
		t.Errorf("Expected 0 loaded tracks, got %d", engine.LoadedCount())
	}
}

// TestLoad tests loading a track.
func TestLoad(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("/cache/first.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if handle == domain.InvalidPlaybackHandle {
		t.Error("Load returned the invalid handle")
	}

	if engine.LoadedCount() != 1 {
		t.Errorf("Expected 1 loaded track, got %d", engine.LoadedCount())
	}

	path, ok := engine.LoadedPath(handle)
	if !ok || path != "/cache/first.mp3" {
		t.Errorf("Expected bound path /cache/first.mp3, got %q (ok=%v)", path, ok)
	}
}

// TestLoadEmptyPath tests loading with an empty path.
func TestLoadEmptyPath(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Load("")
	if !errors.Is(err, domain.ErrAssetUnavailable) {
		t.Errorf("Expected ErrAssetUnavailable, got %v", err)
	}
}

// TestLoadFailureToggle tests the simulated load failure.
func TestLoadFailureToggle(t *testing.T) {
	engine := NewEngine()
	engine.SetFailLoad(true)

	if _, err := engine.Load("/cache/first.mp3"); err == nil {
		t.Error("Expected Load to fail")
	}

	engine.SetFailLoad(false)
	if _, err := engine.Load("/cache/first.mp3"); err != nil {
		t.Errorf("Expected Load to succeed, got %v", err)
	}
}

// TestUnload tests releasing a handle.
func TestUnload(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("/cache/first.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := engine.Unload(handle); err != nil {
		t.Fatalf("Unload failed: %v", err)
	}

	if engine.LoadedCount() != 0 {
		t.Errorf("Expected 0 loaded tracks, got %d", engine.LoadedCount())
	}

	// The handle is invalid afterwards
	if err := engine.Unload(handle); !errors.Is(err, domain.ErrInvalidPlaybackHandle) {
		t.Errorf("Expected ErrInvalidPlaybackHandle, got %v", err)
	}
}

// TestPlayPauseStatus tests the simulated status transitions.
func TestPlayPauseStatus(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("/cache/first.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	status, err := engine.Status(handle)
	if err != nil || status != domain.StatusStopped {
		t.Errorf("Expected stopped after load, got %v (%v)", status, err)
	}

	if err := engine.Play(handle); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusPlaying {
		t.Errorf("Expected playing, got %v", status)
	}

	if err := engine.Pause(handle); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	status, _ = engine.Status(handle)
	if status != domain.StatusPaused {
		t.Errorf("Expected paused, got %v", status)
	}
}

// TestPauseWhenStopped tests that pausing a stopped track is a no-op.
func TestPauseWhenStopped(t *testing.T) {
	engine := NewEngine()

	handle, err := engine.Load("/cache/first.mp3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := engine.Pause(handle); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}

	status, _ := engine.Status(handle)
	if status != domain.StatusStopped {
		t.Errorf("Expected stopped, got %v", status)
	}
}

// TestOperationsOnUnknownHandle tests error returns for unknown handles.
func TestOperationsOnUnknownHandle(t *testing.T) {
	engine := NewEngine()

	if err := engine.Play(42); !errors.Is(err, domain.ErrInvalidPlaybackHandle) {
		t.Errorf("Play: expected ErrInvalidPlaybackHandle, got %v", err)
	}
	if err := engine.Pause(42); !errors.Is(err, domain.ErrInvalidPlaybackHandle) {
		t.Errorf("Pause: expected ErrInvalidPlaybackHandle, got %v", err)
	}
	if _, err := engine.Status(42); !errors.Is(err, domain.ErrInvalidPlaybackHandle) {
		t.Errorf("Status: expected ErrInvalidPlaybackHandle, got %v", err)
	}
}

// TestHandlesAreUnique tests that each load gets a fresh handle.
func TestHandlesAreUnique(t *testing.T) {
	engine := NewEngine()

	h1, _ := engine.Load("/cache/a.mp3")
	h2, _ := engine.Load("/cache/b.mp3")

	if h1 == h2 {
		t.Errorf("Expected distinct handles, both were %d", h1)
	}

	if engine.LoadedCount() != 2 {
		t.Errorf("Expected 2 loaded tracks, got %d", engine.LoadedCount())
	}
}
