// Package memory provides an in-memory implementation of the DocumentStore
// interface. It backs tests and offline runs; document ids are generated
// with UUIDs the way the remote store would assign its own keys.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// Store is a map-backed document store. ListAll preserves insertion order,
// matching the ordered-sequence contract of the remote boundary.
//
// Thread-safety: all operations are protected by a mutex.
type Store struct {
	mu    sync.Mutex
	docs  map[string]map[string]domain.Song // collection -> id -> record
	order map[string][]string               // collection -> insertion order

	// failure toggles for exercising error paths
	failCreate  bool
	failReplace bool
	failList    bool

	// call counters, so tests can assert that validation short-circuits
	// before the boundary is ever reached
	createCalls  int
	replaceCalls int
}

var errSimulated = errors.New("simulated store failure")

// NewStore creates an empty in-memory document store.
func NewStore() *Store {
	return &Store{
		docs:  make(map[string]map[string]domain.Song),
		order: make(map[string][]string),
	}
}

// SetFailCreate configures Create calls to fail.
func (s *Store) SetFailCreate(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCreate = fail
}

// SetFailReplace configures Replace calls to fail.
func (s *Store) SetFailReplace(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReplace = fail
}

// SetFailList configures ListAll calls to fail.
func (s *Store) SetFailList(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failList = fail
}

// Create inserts a record and returns a generated document id.
func (s *Store) Create(ctx context.Context, collection string, song domain.Song) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls++
	if s.failCreate {
		return "", errSimulated
	}

	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]domain.Song)
	}

	id := uuid.NewString()
	record := song.Clone()
	record.DocumentID = id
	s.docs[collection][id] = record
	s.order[collection] = append(s.order[collection], id)
	return id, nil
}

// Replace writes a full replacement document at an existing id.
func (s *Store) Replace(ctx context.Context, collection, documentID string, song domain.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.replaceCalls++
	if s.failReplace {
		return errSimulated
	}

	if _, ok := s.docs[collection][documentID]; !ok {
		return domain.ErrDocumentNotFound
	}

	record := song.Clone()
	record.DocumentID = documentID
	s.docs[collection][documentID] = record
	return nil
}

// ListAll returns every record in insertion order with DocumentID populated.
func (s *Store) ListAll(ctx context.Context, collection string) ([]domain.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failList {
		return nil, errSimulated
	}

	ids := s.order[collection]
	out := make([]domain.Song, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.docs[collection][id].Clone())
	}
	return out, nil
}

// CreateCalls returns how many times Create was invoked.
func (s *Store) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}

// ReplaceCalls returns how many times Replace was invoked.
func (s *Store) ReplaceCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceCalls
}

// Len returns the number of documents in a collection, for test assertions.
func (s *Store) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order[collection])
}

// Verify that Store implements the DocumentStore interface
var _ ports.DocumentStore = (*Store)(nil)
