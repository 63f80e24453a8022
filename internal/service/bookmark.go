package service

import (
	"context"
	"log/slog"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
	"github.com/songhaven/songbook/internal/store"
)

// BookmarkService maintains the user's saved-songs subset. Entries
// deduplicate by document id when the song has been persisted, falling back
// to the local id otherwise (SavedSong.Key). The subset is replaced
// wholesale in shared state and mirrored to local persistence.
type BookmarkService struct {
	logger *slog.Logger
	store  *store.Store
	repo   ports.BookmarkRepository
	bus    ports.EventBus
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(
	logger *slog.Logger,
	st *store.Store,
	repo ports.BookmarkRepository,
	bus ports.EventBus,
) *BookmarkService {
	return &BookmarkService{
		logger: logger,
		store:  st,
		repo:   repo,
		bus:    bus,
	}
}

// Restore loads persisted bookmarks into shared state. Called once at
// startup; an empty repository yields an empty subset, not an error.
func (s *BookmarkService) Restore(ctx context.Context) error {
	saved, err := s.repo.Load(ctx)
	if err != nil {
		return domain.NewRepositoryError("load", "bookmarks", "failed to restore saved songs", err)
	}

	s.store.Dispatch(domain.SavedSongsAction{SavedSongs: saved})
	s.logger.Debug("bookmarks restored", slog.Int("count", len(saved)))
	return nil
}

// Save bookmarks a song. Saving an already-bookmarked song is a no-op.
func (s *BookmarkService) Save(ctx context.Context, song domain.Song) error {
	entry := domain.SavedSongOf(song)
	saved := s.store.SavedSongs()

	for _, existing := range saved {
		if existing.Key() == entry.Key() {
			return nil
		}
	}

	saved = append(saved, entry)
	return s.commit(ctx, saved)
}

// Remove drops a song from the bookmark subset. Removing a song that is not
// bookmarked is a no-op.
func (s *BookmarkService) Remove(ctx context.Context, song domain.Song) error {
	entry := domain.SavedSongOf(song)
	saved := s.store.SavedSongs()

	kept := saved[:0]
	for _, existing := range saved {
		if existing.Key() != entry.Key() {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(saved) {
		return nil
	}

	return s.commit(ctx, kept)
}

// commit persists the new subset, then replaces it in shared state.
func (s *BookmarkService) commit(ctx context.Context, saved []domain.SavedSong) error {
	if err := s.repo.Save(ctx, saved); err != nil {
		return domain.NewRepositoryError("save", "bookmarks", "failed to persist saved songs", err)
	}

	s.store.Dispatch(domain.SavedSongsAction{SavedSongs: saved})
	s.logger.Debug("bookmarks updated", slog.Int("count", len(saved)))
	s.bus.Publish(domain.NewBookmarksChangedEvent(saved))
	return nil
}
