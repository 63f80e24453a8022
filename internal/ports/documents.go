// Package ports defines the remote document store boundary.
package ports

import (
	"context"

	"github.com/songhaven/songbook/internal/domain"
)

// DocumentStore is the interface to the external document collection that
// holds the song catalog. Records are flat JSON-compatible objects matching
// the domain.Song shape.
//
// The store provides no partial reads: ListAll returns the whole collection
// from one fetch, in store order.
//
// Thread-safety: implementations must be safe for concurrent use.
type DocumentStore interface {
	// Create inserts a new record into the named collection and returns the
	// generated document id.
	Create(ctx context.Context, collection string, song domain.Song) (string, error)

	// Replace writes a full replacement document at the given id.
	// Returns domain.ErrDocumentNotFound if the id is unknown.
	Replace(ctx context.Context, collection, documentID string, song domain.Song) error

	// ListAll fetches every record in the collection, in store order, with
	// each song's DocumentID populated from its store key.
	ListAll(ctx context.Context, collection string) ([]domain.Song, error)
}
