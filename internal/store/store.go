// Package store owns the single application state tree.
// All mutation flows through Dispatch with a closed action vocabulary; no
// caller ever mutates a field directly. The store is an owned instance, not
// a global: consumers receive it by injection.
package store

import (
	"log/slog"
	"sync"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// Store holds the process-wide AppState and applies actions to it.
//
// Dispatch is synchronous and total: it never fails, and every effect is
// visible to readers before the dispatcher's caller resumes. Thread-safe
// via sync.RWMutex.
type Store struct {
	logger *slog.Logger
	bus    ports.EventBus

	mu    sync.RWMutex
	state domain.AppState
}

// New creates a store with the default initial state.
func New(logger *slog.Logger, bus ports.EventBus) *Store {
	return &Store{
		logger: logger,
		bus:    bus,
		state:  domain.NewAppState(),
	}
}

// State returns a deep-copy snapshot of the current state tree. Mutating the
// snapshot never affects the store.
func (s *Store) State() domain.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Dispatch applies an action to the state tree and publishes a state-changed
// event. The action set is sealed, so the type switch below is exhaustive;
// there is no unknown-action fallback to fall into silently.
func (s *Store) Dispatch(action domain.Action) {
	s.mu.Lock()

	switch a := action.(type) {
	case domain.UserAction:
		s.state.User = a.User

	case domain.SelectedSongAction:
		song := a.Song.Clone()
		s.state.SelectedSong = &song

	case domain.LoadedSongAction:
		if a.Song == nil {
			s.state.LoadedSong = nil
			// The invariant playLoadedSong => loadedSong cannot outlive the binding.
			s.state.PlayLoadedSong = false
		} else {
			song := a.Song.Clone()
			s.state.LoadedSong = &song
		}

	case domain.PlayLoadedSongAction:
		if a.Playing && s.state.LoadedSong == nil {
			// The play flag mirrors engine status and only the session
			// manager dispatches it, so this indicates a caller bug.
			s.logger.Warn("play intent without a loaded song, clamping to false")
			s.state.PlayLoadedSong = false
		} else {
			s.state.PlayLoadedSong = a.Playing
		}

	case domain.SongsAction:
		// Wholesale replacement, never a merge.
		s.state.Songs = domain.CloneSongs(a.Songs)

	case domain.SavedSongsAction:
		s.state.SavedSongs = append([]domain.SavedSong(nil), a.SavedSongs...)
	}

	name := domain.Name(action)
	s.mu.Unlock()

	s.logger.Debug("action dispatched", slog.String("action", name))
	s.bus.Publish(domain.NewStateChangedEvent(name))
}

// Songs returns a snapshot of the loaded catalog.
func (s *Store) Songs() []domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CloneSongs(s.state.Songs)
}

// User returns the current editor identity.
func (s *Store) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User
}

// SelectedSong returns a copy of the record under detail view, or nil.
func (s *Store) SelectedSong() *domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.SelectedSong == nil {
		return nil
	}
	song := s.state.SelectedSong.Clone()
	return &song
}

// LoadedSong returns a copy of the record bound to playback, or nil.
func (s *Store) LoadedSong() *domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.LoadedSong == nil {
		return nil
	}
	song := s.state.LoadedSong.Clone()
	return &song
}

// PlayLoadedSong returns the current play intent flag.
func (s *Store) PlayLoadedSong() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.PlayLoadedSong
}

// SavedSongs returns a snapshot of the bookmark subset.
func (s *Store) SavedSongs() []domain.SavedSong {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.SavedSong(nil), s.state.SavedSongs...)
}
