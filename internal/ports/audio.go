// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"context"

	"github.com/songhaven/songbook/internal/domain"
)

// AudioEngine is the interface for audio playback engines.
// The production engine is an external collaborator; this abstraction lets
// the playback session manager own handle lifecycle without knowing the
// underlying audio library.
//
// Implementations must be thread-safe.
type AudioEngine interface {
	// Load loads an audio file and returns a handle to it.
	// The handle stays valid until Unload is called with it.
	//
	// path: local path to the audio file, as resolved by the asset store
	//
	// Returns a PlaybackHandle for the loaded track, or an error if loading fails.
	Load(path string) (domain.PlaybackHandle, error)

	// Unload releases all engine resources held for a handle. After Unload
	// the handle is invalid. Unloading stops playback if the track is playing.
	//
	// Returns an error if the handle is invalid.
	Unload(handle domain.PlaybackHandle) error

	// Play starts or resumes playback of the loaded track.
	//
	// Returns an error if the handle is invalid or playback cannot start.
	Play(handle domain.PlaybackHandle) error

	// Pause suspends playback, preserving the position for a later Play.
	//
	// Returns an error if the handle is invalid.
	Pause(handle domain.PlaybackHandle) error

	// Status returns the engine-side status of the loaded track.
	//
	// Returns the status or an error if the handle is invalid.
	Status(handle domain.PlaybackHandle) (domain.PlaybackStatus, error)
}

// AssetStore resolves asset references to playable local files.
// The retrieval protocol is owned by the adapter; resolution failures
// surface to callers as domain.ErrAssetUnavailable.
type AssetStore interface {
	// Resolve fetches the audio bytes behind an asset reference and returns
	// a local path the audio engine can load.
	Resolve(ctx context.Context, audioFileName string) (string, error)
}
