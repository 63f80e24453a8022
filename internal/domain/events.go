// Package domain defines events for the event-driven architecture.
// Events let the presentation layer observe state and playback changes
// without coupling to the services that produce them.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// State events
	EventStateChanged EventType = "state.changed"

	// Catalog events
	EventCatalogReloaded EventType = "catalog.reloaded"
	EventSongCreated     EventType = "song.created"
	EventSongUpdated     EventType = "song.updated"
	EventSyncFailed      EventType = "sync.failed"

	// Playback events
	EventSongLoaded      EventType = "playback.loaded"
	EventPlaybackStarted EventType = "playback.started"
	EventPlaybackPaused  EventType = "playback.paused"
	EventPlaybackStopped EventType = "playback.stopped"
	EventPlaybackError   EventType = "playback.error"

	// Identity events
	EventUserSignedIn  EventType = "user.signed_in"
	EventUserSignedOut EventType = "user.signed_out"

	// Bookmark events
	EventBookmarksChanged EventType = "bookmarks.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// StateChangedEvent is published after every successful dispatch.
type StateChangedEvent struct {
	baseEvent
	ActionName string
}

// Type returns the event type.
func (e StateChangedEvent) Type() EventType {
	return EventStateChanged
}

// NewStateChangedEvent creates a new StateChangedEvent.
func NewStateChangedEvent(actionName string) StateChangedEvent {
	return StateChangedEvent{
		baseEvent:  newBaseEvent(),
		ActionName: actionName,
	}
}

// CatalogReloadedEvent is published when the catalog is refreshed from the
// remote store.
type CatalogReloadedEvent struct {
	baseEvent
	Count int
}

// Type returns the event type.
func (e CatalogReloadedEvent) Type() EventType {
	return EventCatalogReloaded
}

// NewCatalogReloadedEvent creates a new CatalogReloadedEvent.
func NewCatalogReloadedEvent(count int) CatalogReloadedEvent {
	return CatalogReloadedEvent{
		baseEvent: newBaseEvent(),
		Count:     count,
	}
}

// SongCreatedEvent is published after a successful create.
type SongCreatedEvent struct {
	baseEvent
	Song       Song
	DocumentID string
}

// Type returns the event type.
func (e SongCreatedEvent) Type() EventType {
	return EventSongCreated
}

// NewSongCreatedEvent creates a new SongCreatedEvent.
func NewSongCreatedEvent(song Song, documentID string) SongCreatedEvent {
	return SongCreatedEvent{
		baseEvent:  newBaseEvent(),
		Song:       song,
		DocumentID: documentID,
	}
}

// SongUpdatedEvent is published after a successful replacement write.
type SongUpdatedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongUpdatedEvent) Type() EventType {
	return EventSongUpdated
}

// NewSongUpdatedEvent creates a new SongUpdatedEvent.
func NewSongUpdatedEvent(song Song) SongUpdatedEvent {
	return SongUpdatedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// SyncFailedEvent is published when a remote read or write fails. The edit
// in progress has been discarded.
type SyncFailedEvent struct {
	baseEvent
	Op    string
	Error error
}

// Type returns the event type.
func (e SyncFailedEvent) Type() EventType {
	return EventSyncFailed
}

// NewSyncFailedEvent creates a new SyncFailedEvent.
func NewSyncFailedEvent(op string, err error) SyncFailedEvent {
	return SyncFailedEvent{
		baseEvent: newBaseEvent(),
		Op:        op,
		Error:     err,
	}
}

// SongLoadedEvent is published when the playback session binds a song.
type SongLoadedEvent struct {
	baseEvent
	Song   Song
	Handle PlaybackHandle
}

// Type returns the event type.
func (e SongLoadedEvent) Type() EventType {
	return EventSongLoaded
}

// NewSongLoadedEvent creates a new SongLoadedEvent.
func NewSongLoadedEvent(song Song, handle PlaybackHandle) SongLoadedEvent {
	return SongLoadedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Handle:    handle,
	}
}

// PlaybackStartedEvent is published when the bound song starts playing.
type PlaybackStartedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e PlaybackStartedEvent) Type() EventType {
	return EventPlaybackStarted
}

// NewPlaybackStartedEvent creates a new PlaybackStartedEvent.
func NewPlaybackStartedEvent(song Song) PlaybackStartedEvent {
	return PlaybackStartedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlaybackPausedEvent is published when the bound song is paused.
type PlaybackPausedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e PlaybackPausedEvent) Type() EventType {
	return EventPlaybackPaused
}

// NewPlaybackPausedEvent creates a new PlaybackPausedEvent.
func NewPlaybackPausedEvent(song Song) PlaybackPausedEvent {
	return PlaybackPausedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlaybackStoppedEvent is published when the session releases its handle.
type PlaybackStoppedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e PlaybackStoppedEvent) Type() EventType {
	return EventPlaybackStopped
}

// NewPlaybackStoppedEvent creates a new PlaybackStoppedEvent.
func NewPlaybackStoppedEvent(song Song) PlaybackStoppedEvent {
	return PlaybackStoppedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlaybackErrorEvent is published when asset resolution or the engine fails.
type PlaybackErrorEvent struct {
	baseEvent
	Song  Song
	Error error
}

// Type returns the event type.
func (e PlaybackErrorEvent) Type() EventType {
	return EventPlaybackError
}

// NewPlaybackErrorEvent creates a new PlaybackErrorEvent.
func NewPlaybackErrorEvent(song Song, err error) PlaybackErrorEvent {
	return PlaybackErrorEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Error:     err,
	}
}

// UserSignedInEvent is published after a successful sign-in or sign-up.
type UserSignedInEvent struct {
	baseEvent
	User User
}

// Type returns the event type.
func (e UserSignedInEvent) Type() EventType {
	return EventUserSignedIn
}

// NewUserSignedInEvent creates a new UserSignedInEvent.
func NewUserSignedInEvent(user User) UserSignedInEvent {
	return UserSignedInEvent{
		baseEvent: newBaseEvent(),
		User:      user,
	}
}

// UserSignedOutEvent is published after sign-out.
type UserSignedOutEvent struct {
	baseEvent
}

// Type returns the event type.
func (e UserSignedOutEvent) Type() EventType {
	return EventUserSignedOut
}

// NewUserSignedOutEvent creates a new UserSignedOutEvent.
func NewUserSignedOutEvent() UserSignedOutEvent {
	return UserSignedOutEvent{baseEvent: newBaseEvent()}
}

// BookmarksChangedEvent is published when the saved-songs subset changes.
type BookmarksChangedEvent struct {
	baseEvent
	SavedSongs []SavedSong
}

// Type returns the event type.
func (e BookmarksChangedEvent) Type() EventType {
	return EventBookmarksChanged
}

// NewBookmarksChangedEvent creates a new BookmarksChangedEvent.
func NewBookmarksChangedEvent(saved []SavedSong) BookmarksChangedEvent {
	return BookmarksChangedEvent{
		baseEvent:  newBaseEvent(),
		SavedSongs: saved,
	}
}
