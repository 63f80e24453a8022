package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
	"github.com/songhaven/songbook/internal/store"
)

// PlaybackService owns the single playback session: at most one engine
// handle, bound to at most one song, at any time.
//
// The session moves through three states. Idle holds no handle. Loaded holds
// a handle bound to a song's audio asset without producing sound. Playing is
// Loaded with the engine running. Loading a new song while a handle is held
// always releases the old handle first; failing to do so would leak engine
// resources, which the tests assert against explicitly.
//
// The PlayLoadedSong flag in shared state is a reflection of engine status.
// Only this service dispatches it, and only after the engine call succeeds.
//
// Store dispatches and bus publishes run synchronously while the session
// lock is held. Event handlers may read the store, whose state is already
// updated when the event fires, but must not call back into this service;
// doing so deadlocks.
type PlaybackService struct {
	logger *slog.Logger
	engine ports.AudioEngine
	assets ports.AssetStore
	store  *store.Store
	bus    ports.EventBus

	mu      sync.Mutex
	handle  domain.PlaybackHandle
	current *domain.Song
}

// NewPlaybackService creates a new playback session manager in the idle state.
func NewPlaybackService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	assets ports.AssetStore,
	st *store.Store,
	bus ports.EventBus,
) *PlaybackService {
	return &PlaybackService{
		logger: logger,
		engine: engine,
		assets: assets,
		store:  st,
		bus:    bus,
		handle: domain.InvalidPlaybackHandle,
	}
}

// LoadSong binds the session to a song's audio asset. Any previously held
// handle is released before the new one is acquired. On failure the session
// is idle: no half-initialized handle remains reachable.
func (s *PlaybackService) LoadSong(ctx context.Context, song domain.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("loading song",
		slog.String("title", song.Title),
		slog.String("asset", song.AudioFileName))

	// Release before replace: the old handle must be gone before a new one
	// exists, so a failure below cannot leave two live handles.
	s.releaseLocked()

	if song.AudioFileName == "" {
		perr := domain.NewPlaybackError("resolve", song, domain.ErrNoAudioAsset)
		s.bus.Publish(domain.NewPlaybackErrorEvent(song, perr))
		return perr
	}

	path, err := s.assets.Resolve(ctx, song.AudioFileName)
	if err != nil {
		perr := domain.NewPlaybackError("resolve", song, err)
		s.logger.Warn("asset resolution failed", slog.Any("error", perr))
		s.bus.Publish(domain.NewPlaybackErrorEvent(song, perr))
		return perr
	}

	handle, err := s.engine.Load(path)
	if err != nil {
		perr := domain.NewPlaybackError("load", song, err)
		s.logger.Warn("engine load failed", slog.Any("error", perr))
		s.bus.Publish(domain.NewPlaybackErrorEvent(song, perr))
		return perr
	}

	bound := song.Clone()
	s.handle = handle
	s.current = &bound

	s.store.Dispatch(domain.LoadedSongAction{Song: &bound})
	s.bus.Publish(domain.NewSongLoadedEvent(bound, handle))

	return nil
}

// TogglePlay starts the bound song if it is not playing, and pauses it if it
// is. The resulting engine status is mirrored into shared state afterward.
func (s *PlaybackService) TogglePlay() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == domain.InvalidPlaybackHandle || s.current == nil {
		return domain.ErrNoSongLoaded
	}

	status, err := s.engine.Status(s.handle)
	if err != nil {
		return s.failLocked("status", err)
	}

	if status == domain.StatusPlaying {
		if err := s.engine.Pause(s.handle); err != nil {
			return s.failLocked("pause", err)
		}
		s.store.Dispatch(domain.PlayLoadedSongAction{Playing: false})
		s.bus.Publish(domain.NewPlaybackPausedEvent(*s.current))
		return nil
	}

	if err := s.engine.Play(s.handle); err != nil {
		return s.failLocked("play", err)
	}
	s.store.Dispatch(domain.PlayLoadedSongAction{Playing: true})
	s.bus.Publish(domain.NewPlaybackStartedEvent(*s.current))
	return nil
}

// Unload releases the engine handle and resets the loaded-song state to its
// defaults. Safe to call in any state, on every exit path.
func (s *PlaybackService) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
}

// State reports the current session state.
func (s *PlaybackService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == domain.InvalidPlaybackHandle {
		return domain.SessionIdle
	}
	status, err := s.engine.Status(s.handle)
	if err == nil && status == domain.StatusPlaying {
		return domain.SessionPlaying
	}
	return domain.SessionLoaded
}

// CurrentSong returns a copy of the bound song, or nil when idle.
func (s *PlaybackService) CurrentSong() *domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	song := s.current.Clone()
	return &song
}

// Shutdown releases the session. Part of the application teardown path.
func (s *PlaybackService) Shutdown() error {
	s.Unload()
	return nil
}

// failLocked converts an engine failure into a PlaybackError, tearing the
// session down to idle first. Caller must hold the lock.
func (s *PlaybackService) failLocked(op string, err error) error {
	song := *s.current
	s.releaseLocked()

	perr := domain.NewPlaybackError(op, song, err)
	s.logger.Warn("engine failure, session reset", slog.Any("error", perr))
	s.bus.Publish(domain.NewPlaybackErrorEvent(song, perr))
	return perr
}

// releaseLocked frees the held handle, if any, and resets the shared
// playback state to its defaults. Caller must hold the lock.
func (s *PlaybackService) releaseLocked() {
	if s.handle == domain.InvalidPlaybackHandle {
		return
	}

	released := s.current
	if err := s.engine.Unload(s.handle); err != nil {
		// The handle is still cleared: a failed release must not leave the
		// session believing it owns engine resources.
		s.logger.Warn("engine unload failed", slog.Any("error", err))
	}

	s.handle = domain.InvalidPlaybackHandle
	s.current = nil

	s.store.Dispatch(domain.LoadedSongAction{Song: nil})
	if released != nil {
		s.bus.Publish(domain.NewPlaybackStoppedEvent(*released))
	}
}
