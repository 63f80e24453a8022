// Package ports defines repository interfaces for local persistence.
package ports

import (
	"context"

	"github.com/songhaven/songbook/internal/domain"
)

// BookmarkRepository persists the user's saved-songs subset across runs.
// The catalog itself is never persisted locally; only bookmark references are.
//
// Thread-safety: implementations must be thread-safe.
type BookmarkRepository interface {
	// Save replaces the persisted bookmark set wholesale, mirroring the
	// SavedSongs action semantics.
	Save(ctx context.Context, saved []domain.SavedSong) error

	// Load retrieves the persisted bookmark set in saved order.
	// If nothing was saved, returns an empty slice (not an error).
	Load(ctx context.Context) ([]domain.SavedSong, error)

	// Clear removes all persisted bookmarks.
	Clear(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}
