// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrNotPersisted is returned when an operation requires a song that has
	// already been written to the remote store.
	ErrNotPersisted = errors.New("song has never been persisted")

	// ErrDocumentNotFound is returned when a document id does not exist in
	// the remote collection.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoSongLoaded is returned when a playback operation is attempted
	// with no song bound to the session.
	ErrNoSongLoaded = errors.New("no song loaded")

	// ErrNoAudioAsset is returned when a song carries no audio reference.
	ErrNoAudioAsset = errors.New("song has no audio asset")

	// ErrAssetUnavailable is returned when an asset reference cannot be
	// resolved to playable bytes.
	ErrAssetUnavailable = errors.New("audio asset unavailable")

	// ErrInvalidPlaybackHandle is returned when an engine handle is unknown
	// or already released.
	ErrInvalidPlaybackHandle = errors.New("invalid playback handle")

	// ErrNotInitialized is returned when an operation is attempted on an
	// uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrBusClosed is returned when publishing on a closed event bus.
	ErrBusClosed = errors.New("event bus closed")
)

// ValidationReason classifies why a song failed local validation.
type ValidationReason string

const (
	// ReasonMissingRequiredField means title, category, or recordedDate was empty.
	ReasonMissingRequiredField ValidationReason = "missing_required_field"

	// ReasonInvalidDateFormat means recordedDate did not match MM/DD/YYYY or MM-DD-YYYY.
	ReasonInvalidDateFormat ValidationReason = "invalid_date_format"
)

// ValidationError reports a local validation failure. It is always detected
// before any remote call is made.
type ValidationError struct {
	Field   string           // Field that failed validation
	Reason  ValidationReason // Machine-readable failure class
	Message string           // Human-readable message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, reason ValidationReason, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  reason,
		Message: message,
	}
}

// SyncError reports a remote read or write failure. The in-progress edit is
// discarded; callers surface it as a generic persistence failure.
type SyncError struct {
	Op         string // Operation that failed (e.g. "create", "replace", "list")
	Collection string // Remote collection name
	DocumentID string // Document id, if the operation targeted one
	Err        error  // Underlying transport or store error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.DocumentID != "" {
		return fmt.Sprintf("sync %s failed for %s/%s: %v", e.Op, e.Collection, e.DocumentID, e.Err)
	}
	return fmt.Sprintf("sync %s failed for %s: %v", e.Op, e.Collection, e.Err)
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError.
func NewSyncError(op, collection, documentID string, err error) *SyncError {
	return &SyncError{
		Op:         op,
		Collection: collection,
		DocumentID: documentID,
		Err:        err,
	}
}

// PlaybackError reports an engine or asset failure. The session returns to
// idle and never leaves a half-initialized handle reachable.
type PlaybackError struct {
	Op   string // Operation that failed (e.g. "resolve", "load", "play")
	Song Song   // Song the session was binding or bound to
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback %s failed for %q: %v", e.Op, e.Song.Title, e.Err)
}

// Unwrap returns the underlying error.
func (e *PlaybackError) Unwrap() error {
	return e.Err
}

// NewPlaybackError creates a new PlaybackError.
func NewPlaybackError(op string, song Song, err error) *PlaybackError {
	return &PlaybackError{
		Op:   op,
		Song: song,
		Err:  err,
	}
}

// AuthError reports an identity provider failure. The cause is surfaced
// verbatim to the user.
type AuthError struct {
	Op    string // Operation that failed (e.g. "sign_in", "sign_up", "sign_out")
	Cause error  // Provider error, propagated unchanged
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication %s failed: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewAuthError creates a new AuthError.
func NewAuthError(op string, cause error) *AuthError {
	return &AuthError{
		Op:    op,
		Cause: cause,
	}
}

// RepositoryError wraps local persistence failures with context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g. "save", "load")
	Type    string // Repository type (e.g. "bookmarks")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}
