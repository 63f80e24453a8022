// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the songbook catalog client.
package domain

import (
	"strconv"
	"time"
)

// Song represents a single catalog record with all its metadata.
// This is the core domain model mirrored from the remote document collection.
type Song struct {
	// ID is a locally assigned sequential identifier, unique within the
	// currently loaded catalog.
	ID int `json:"id"`

	// DocumentID is the identifier assigned by the remote document store on
	// first create. Empty means the song has never been persisted; once set
	// it never changes for the lifetime of the record.
	DocumentID string `json:"-"`

	// Title is the song title (required)
	Title string `json:"title"`

	// RecordedDate is the recording date in MM/DD/YYYY or MM-DD-YYYY form (required)
	RecordedDate string `json:"recordedDate"`

	// Category is the user-assigned grouping (required)
	Category string `json:"category"`

	// Image is an optional reference to cover art in asset storage
	Image string `json:"image"`

	// Notes contains free-form notes about the recording
	Notes string `json:"notes"`

	// AudioFileName is the reference into asset storage for the playable audio
	AudioFileName string `json:"audioFileName"`

	// LastModifiedBy is the display name of the last editor
	LastModifiedBy string `json:"lastModifiedBy"`

	// LastModifiedDate is stamped on every write (MM-DD-YYYY)
	LastModifiedDate string `json:"lastModifiedDate"`

	// UploadedBy is the display name of the original uploader. It is not
	// editable and must round-trip unchanged through every save.
	UploadedBy string `json:"uploadedBy,omitempty"`

	// Comments is the order-preserving list of comments on the song. Like
	// UploadedBy, it round-trips unchanged through the edit surface.
	Comments []Comment `json:"comments,omitempty"`
}

// Persisted reports whether the song has ever been written to the remote store.
func (s Song) Persisted() bool {
	return s.DocumentID != ""
}

// Clone returns a copy of the song with its comments duplicated.
func (s Song) Clone() Song {
	out := s
	out.Comments = append([]Comment(nil), s.Comments...)
	return out
}

// Comment is a single comment attached to a song.
type Comment struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	CreatedDate string `json:"createdDate"`
}

// GuestDisplayName is the sentinel display name used before sign-in.
const GuestDisplayName = "Guest"

// User identifies the current editor.
type User struct {
	// DisplayName is shown in lastModifiedBy stamps. Defaults to "Guest".
	DisplayName string `json:"userDisplayName"`

	// Email is empty when unauthenticated.
	Email string `json:"userEmail"`
}

// GuestUser returns the unauthenticated default user.
func GuestUser() User {
	return User{DisplayName: GuestDisplayName}
}

// Authenticated reports whether the user has signed in.
func (u User) Authenticated() bool {
	return u.Email != ""
}

// SavedSong is a user-specific bookmark referencing a song identity.
type SavedSong struct {
	// DocumentID references the remote record when the song has been persisted.
	DocumentID string `json:"documentId"`

	// ID is the local catalog id, used when DocumentID is empty.
	ID int `json:"id"`

	// Title is carried for display without a catalog lookup.
	Title string `json:"title"`
}

// Key returns the deduplication identity for the bookmark: the document id
// when the song has been persisted, the local id otherwise.
func (s SavedSong) Key() string {
	if s.DocumentID != "" {
		return s.DocumentID
	}
	return "local:" + strconv.Itoa(s.ID)
}

// SavedSongOf builds a bookmark reference for a song.
func SavedSongOf(song Song) SavedSong {
	return SavedSong{
		DocumentID: song.DocumentID,
		ID:         song.ID,
		Title:      song.Title,
	}
}

// AppState is the single state tree for the client. It is created once at
// process start and mutated exclusively through action dispatch.
type AppState struct {
	// User is the current editor identity
	User User

	// Songs is the full loaded catalog, in remote store order
	Songs []Song

	// SelectedSong is the record under detail view or edit (nil if none)
	SelectedSong *Song

	// LoadedSong is the record bound to the playback session (nil if none).
	// It may differ from SelectedSong.
	LoadedSong *Song

	// PlayLoadedSong reflects whether the loaded song should be playing.
	// True implies LoadedSong != nil.
	PlayLoadedSong bool

	// SavedSongs is the user-specific bookmark subset
	SavedSongs []SavedSong
}

// NewAppState constructs the initial state tree with defaults.
func NewAppState() AppState {
	return AppState{User: GuestUser()}
}

// Clone returns a deep copy of the state so readers never alias the
// store-owned tree.
func (s AppState) Clone() AppState {
	out := s
	out.Songs = CloneSongs(s.Songs)
	out.SavedSongs = append([]SavedSong(nil), s.SavedSongs...)
	if s.SelectedSong != nil {
		sel := s.SelectedSong.Clone()
		out.SelectedSong = &sel
	}
	if s.LoadedSong != nil {
		loaded := s.LoadedSong.Clone()
		out.LoadedSong = &loaded
	}
	return out
}

// CloneSongs returns a deep copy of a catalog slice.
func CloneSongs(songs []Song) []Song {
	if songs == nil {
		return nil
	}
	out := make([]Song, len(songs))
	for i, song := range songs {
		out[i] = song.Clone()
	}
	return out
}

// PlaybackHandle is an opaque identifier for a track loaded in the audio engine.
type PlaybackHandle int64

const (
	// InvalidPlaybackHandle represents an unset or released handle
	InvalidPlaybackHandle PlaybackHandle = 0
)

// PlaybackStatus is the engine-side status of a loaded track.
type PlaybackStatus int

const (
	// StatusStopped indicates the track is loaded but not producing audio
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates the track is actively producing audio
	StatusPlaying

	// StatusPaused indicates playback is suspended at the current position
	StatusPaused
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// SessionState is the playback session lifecycle state.
type SessionState int

const (
	// SessionIdle means no engine handle is held
	SessionIdle SessionState = iota

	// SessionLoaded means the engine is bound to a song but not playing
	SessionLoaded

	// SessionPlaying means the bound song is producing audio
	SessionPlaying
)

// String returns a human-readable representation of the session state.
func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionLoaded:
		return "loaded"
	case SessionPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// stampLayout is the write stamp layout for lastModifiedDate (MM-DD-YYYY).
const stampLayout = "01-02-2006"

// StampDate formats a time as an MM-DD-YYYY write stamp.
func StampDate(t time.Time) string {
	return t.Format(stampLayout)
}

// Today returns the current date as an MM-DD-YYYY write stamp.
func Today() string {
	return StampDate(time.Now())
}
