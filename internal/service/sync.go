// Package service provides business logic for the songbook client.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
	"github.com/songhaven/songbook/internal/store"
)

// SyncService bridges user edits to the remote document store with
// validate-then-write semantics and a load-all refresh model.
//
// Two rules hold everywhere: no write is ever attempted on invalid input
// (validation is local and synchronous, before any network call), and no
// partial catalog state is ever exposed (the Songs dispatch is all-or-nothing
// relative to one fetch).
//
// Remote failures discard the in-progress edit. There is no retry, no queue,
// and no rollback beyond not having committed: the caller surfaces a generic
// persistence failure and the user re-enters the edit.
type SyncService struct {
	logger     *slog.Logger
	store      *store.Store
	docs       ports.DocumentStore
	bus        ports.EventBus
	collection string

	// now is swapped in tests to pin write stamps
	now func() time.Time
}

// NewSyncService creates a new sync service for the given collection.
func NewSyncService(
	logger *slog.Logger,
	st *store.Store,
	docs ports.DocumentStore,
	bus ports.EventBus,
	collection string,
) *SyncService {
	return &SyncService{
		logger:     logger,
		store:      st,
		docs:       docs,
		bus:        bus,
		collection: collection,
		now:        time.Now,
	}
}

// CreateSong validates a draft, stamps it with the editor and today's date,
// and submits a create to the remote collection. On success the catalog is
// reloaded from the remote store; the new record is never inserted locally,
// because the source of truth is always the post-write remote list.
func (s *SyncService) CreateSong(ctx context.Context, draft domain.Song, editor domain.User) error {
	if verr := domain.ValidateSongForSave(draft); verr != nil {
		s.logger.Debug("create rejected by validation",
			slog.String("field", verr.Field),
			slog.String("reason", string(verr.Reason)))
		return verr
	}

	record := draft.Clone()
	record.LastModifiedBy = editor.DisplayName
	record.LastModifiedDate = domain.StampDate(s.now())
	if record.UploadedBy == "" {
		record.UploadedBy = editor.DisplayName
	}

	documentID, err := s.docs.Create(ctx, s.collection, record)
	if err != nil {
		serr := domain.NewSyncError("create", s.collection, "", err)
		s.logger.Error("create failed", slog.Any("error", serr))
		s.bus.Publish(domain.NewSyncFailedEvent("create", serr))
		return serr
	}

	s.logger.Info("song created",
		slog.String("title", record.Title),
		slog.String("document_id", documentID))
	s.bus.Publish(domain.NewSongCreatedEvent(record, documentID))

	// A reload after the write observes it, given read-after-write
	// consistency from the store for this session.
	return s.ListSongs(ctx)
}

// UpdateSong validates the edits, then writes a full replacement document at
// the existing record's id. UploadedBy and Comments are taken from the
// pre-edit record: they are not editable and must round-trip unchanged.
//
// On success the merged result becomes the selected song and the catalog is
// reloaded. On remote failure the edit is discarded.
func (s *SyncService) UpdateSong(ctx context.Context, existing, edits domain.Song, editor domain.User) error {
	if verr := domain.ValidateSongForSave(edits); verr != nil {
		s.logger.Debug("update rejected by validation",
			slog.String("field", verr.Field),
			slog.String("reason", string(verr.Reason)))
		return verr
	}

	// Updating a record that was never persisted is a precondition violation.
	if !existing.Persisted() {
		return domain.ErrNotPersisted
	}

	merged := edits.Clone()
	merged.ID = existing.ID
	merged.DocumentID = existing.DocumentID
	merged.UploadedBy = existing.UploadedBy
	merged.Comments = append([]domain.Comment(nil), existing.Comments...)
	merged.LastModifiedBy = editor.DisplayName
	merged.LastModifiedDate = domain.StampDate(s.now())

	if err := s.docs.Replace(ctx, s.collection, existing.DocumentID, merged); err != nil {
		serr := domain.NewSyncError("replace", s.collection, existing.DocumentID, err)
		s.logger.Error("update failed", slog.Any("error", serr))
		s.bus.Publish(domain.NewSyncFailedEvent("replace", serr))
		return serr
	}

	s.store.Dispatch(domain.SelectedSongAction{Song: merged})
	s.logger.Info("song updated",
		slog.String("title", merged.Title),
		slog.String("document_id", merged.DocumentID))
	s.bus.Publish(domain.NewSongUpdatedEvent(merged))

	return s.ListSongs(ctx)
}

// ListSongs fetches the full collection and replaces the catalog atomically
// from the caller's perspective: the Songs dispatch happens once, with the
// complete result of one fetch.
func (s *SyncService) ListSongs(ctx context.Context) error {
	songs, err := s.docs.ListAll(ctx, s.collection)
	if err != nil {
		serr := domain.NewSyncError("list", s.collection, "", err)
		s.logger.Error("catalog reload failed", slog.Any("error", serr))
		s.bus.Publish(domain.NewSyncFailedEvent("list", serr))
		return serr
	}

	s.store.Dispatch(domain.SongsAction{Songs: songs})
	s.logger.Debug("catalog reloaded", slog.Int("count", len(songs)))
	s.bus.Publish(domain.NewCatalogReloadedEvent(len(songs)))

	return nil
}

// NextLocalID returns the sequential id for a new draft, one past the
// current catalog length.
func (s *SyncService) NextLocalID() int {
	return len(s.store.Songs()) + 1
}
