// Package sqlite persists the user's saved-songs subset in a local SQLite
// database, so bookmarks survive restarts without any remote dependency.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// BookmarkRepository implements ports.BookmarkRepository backed by SQLite.
// Save replaces the whole set in one transaction, mirroring the wholesale
// SavedSongs action semantics.
//
// Thread-safe: operations are serialized by a mutex on top of the single
// connection pool.
type BookmarkRepository struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS saved_songs (
	position    INTEGER PRIMARY KEY,
	document_id TEXT NOT NULL DEFAULT '',
	song_id     INTEGER NOT NULL DEFAULT 0,
	title       TEXT NOT NULL DEFAULT ''
)`

// Open initializes or connects to the bookmark database at path.
func Open(path string) (*BookmarkRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &BookmarkRepository{db: db}, nil
}

// Save replaces the persisted bookmark set wholesale.
func (r *BookmarkRepository) Save(ctx context.Context, saved []domain.SavedSong) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM saved_songs"); err != nil {
		return fmt.Errorf("clear saved songs: %w", err)
	}

	for i, entry := range saved {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO saved_songs (position, document_id, song_id, title) VALUES (?, ?, ?, ?)",
			i, entry.DocumentID, entry.ID, entry.Title)
		if err != nil {
			return fmt.Errorf("insert saved song: %w", err)
		}
	}

	return tx.Commit()
}

// Load retrieves the persisted bookmark set in saved order.
func (r *BookmarkRepository) Load(ctx context.Context) ([]domain.SavedSong, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.QueryContext(ctx,
		"SELECT document_id, song_id, title FROM saved_songs ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query saved songs: %w", err)
	}
	defer rows.Close()

	saved := make([]domain.SavedSong, 0)
	for rows.Next() {
		var entry domain.SavedSong
		if err := rows.Scan(&entry.DocumentID, &entry.ID, &entry.Title); err != nil {
			return nil, fmt.Errorf("scan saved song: %w", err)
		}
		saved = append(saved, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved songs: %w", err)
	}

	return saved, nil
}

// Clear removes all persisted bookmarks.
func (r *BookmarkRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, "DELETE FROM saved_songs")
	if err != nil {
		return fmt.Errorf("clear saved songs: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (r *BookmarkRepository) Close() error {
	return r.db.Close()
}

// Verify that BookmarkRepository implements the BookmarkRepository interface
var _ ports.BookmarkRepository = (*BookmarkRepository)(nil)
