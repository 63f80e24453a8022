// Package domain defines the closed action vocabulary for the state store.
// Actions form a sealed tagged union: the store handles them with an
// exhaustive type switch, so an unrecognized action is a compile-time
// impossibility rather than a silent no-op.
package domain

// Action is the sealed interface implemented by every state action.
// The unexported marker method keeps the set closed to this package.
type Action interface {
	isAction()
}

// UserAction replaces the current user identity.
type UserAction struct {
	User User
}

// SelectedSongAction replaces the record under detail view or edit.
type SelectedSongAction struct {
	Song Song
}

// LoadedSongAction replaces the record bound to the playback session.
// A nil Song clears the binding (session teardown).
type LoadedSongAction struct {
	Song *Song
}

// PlayLoadedSongAction replaces the play intent flag. The flag mirrors
// engine status; it is only ever dispatched by the playback session manager.
type PlayLoadedSongAction struct {
	Playing bool
}

// SongsAction replaces the catalog wholesale. There is no incremental
// merge: the list is always fully refreshed from the remote store.
type SongsAction struct {
	Songs []Song
}

// SavedSongsAction replaces the bookmark subset wholesale.
type SavedSongsAction struct {
	SavedSongs []SavedSong
}

func (UserAction) isAction()           {}
func (SelectedSongAction) isAction()   {}
func (LoadedSongAction) isAction()     {}
func (PlayLoadedSongAction) isAction() {}
func (SongsAction) isAction()          {}
func (SavedSongsAction) isAction()     {}

// Name returns a stable identifier for an action, used in logs and events.
func Name(a Action) string {
	switch a.(type) {
	case UserAction:
		return "User"
	case SelectedSongAction:
		return "SelectedSong"
	case LoadedSongAction:
		return "LoadedSong"
	case PlayLoadedSongAction:
		return "PlayLoadedSong"
	case SongsAction:
		return "Songs"
	case SavedSongsAction:
		return "SavedSongs"
	default:
		return "unknown"
	}
}
