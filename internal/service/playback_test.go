package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songhaven/songbook/internal/adapter/audio/mock"
	"github.com/songhaven/songbook/internal/adapter/eventbus"
	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/store"
)

// Mock asset store for testing
type mockAssetStore struct {
	mu          sync.Mutex
	failResolve bool
	resolved    []string
}

func (m *mockAssetStore) Resolve(_ context.Context, audioFileName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if audioFileName == "" {
		return "", domain.ErrNoAudioAsset
	}
	if m.failResolve {
		return "", domain.ErrAssetUnavailable
	}
	m.resolved = append(m.resolved, audioFileName)
	return "/cache/" + audioFileName, nil
}

func playbackTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPlaybackService() (*PlaybackService, *mock.Engine, *mockAssetStore, *store.Store) {
	logger := playbackTestLogger()
	bus := eventbus.NewSyncEventBus(logger)
	st := store.New(logger, bus)
	engine := mock.NewEngine()
	assets := &mockAssetStore{}

	svc := NewPlaybackService(logger, engine, assets, st, bus)
	return svc, engine, assets, st
}

func playableSong(id int, title, asset string) domain.Song {
	return domain.Song{
		ID:            id,
		Title:         title,
		Category:      "hymn",
		RecordedDate:  "01-05-2024",
		AudioFileName: asset,
	}
}

func TestPlaybackService_InitialStateIsIdle(t *testing.T) {
	svc, _, _, _ := newTestPlaybackService()

	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Nil(t, svc.CurrentSong())
}

func TestPlaybackService_LoadSong(t *testing.T) {
	svc, engine, _, st := newTestPlaybackService()

	song := playableSong(1, "First", "first.mp3")
	err := svc.LoadSong(context.Background(), song)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionLoaded, svc.State())
	assert.Equal(t, 1, engine.LoadedCount())

	current := svc.CurrentSong()
	require.NotNil(t, current)
	assert.Equal(t, "First", current.Title)

	loaded := st.LoadedSong()
	require.NotNil(t, loaded)
	assert.Equal(t, "First", loaded.Title)
	assert.False(t, st.PlayLoadedSong())
}

func TestPlaybackService_LoadSong_ReleasesPreviousHandle(t *testing.T) {
	svc, engine, _, _ := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))
	require.NoError(t, svc.LoadSong(ctx, playableSong(2, "Second", "second.mp3")))

	// One handle, bound to the second song
	assert.Equal(t, 1, engine.LoadedCount())
	current := svc.CurrentSong()
	require.NotNil(t, current)
	assert.Equal(t, "Second", current.Title)
}

func TestPlaybackService_LoadSong_NoAudioAsset(t *testing.T) {
	svc, engine, _, _ := newTestPlaybackService()

	err := svc.LoadSong(context.Background(), playableSong(1, "Silent", ""))

	assert.ErrorIs(t, err, domain.ErrNoAudioAsset)
	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Equal(t, 0, engine.LoadedCount())
}

func TestPlaybackService_LoadSong_ResolveFailure(t *testing.T) {
	svc, engine, assets, st := newTestPlaybackService()
	assets.failResolve = true

	err := svc.LoadSong(context.Background(), playableSong(1, "Gone", "gone.mp3"))

	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)
	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Equal(t, 0, engine.LoadedCount())
	assert.Nil(t, st.LoadedSong())
}

func TestPlaybackService_LoadSong_EngineFailure(t *testing.T) {
	svc, engine, _, st := newTestPlaybackService()
	engine.SetFailLoad(true)

	err := svc.LoadSong(context.Background(), playableSong(1, "Broken", "broken.mp3"))

	require.Error(t, err)
	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Equal(t, 0, engine.LoadedCount())
	assert.Nil(t, st.LoadedSong())
	assert.False(t, st.PlayLoadedSong())
}

func TestPlaybackService_LoadSong_FailureReleasesPreviousHandle(t *testing.T) {
	svc, engine, assets, _ := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))
	assets.failResolve = true

	err := svc.LoadSong(ctx, playableSong(2, "Second", "second.mp3"))
	require.Error(t, err)

	// The old handle was released before the failed load; nothing leaks
	assert.Equal(t, 0, engine.LoadedCount())
	assert.Equal(t, domain.SessionIdle, svc.State())
}

func TestPlaybackService_TogglePlay_NoSongLoaded(t *testing.T) {
	svc, _, _, _ := newTestPlaybackService()

	err := svc.TogglePlay()
	assert.ErrorIs(t, err, domain.ErrNoSongLoaded)
}

func TestPlaybackService_TogglePlay_StartsAndPauses(t *testing.T) {
	svc, _, _, st := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))

	// First toggle starts playback
	require.NoError(t, svc.TogglePlay())
	assert.Equal(t, domain.SessionPlaying, svc.State())
	assert.True(t, st.PlayLoadedSong())

	// Second toggle pauses
	require.NoError(t, svc.TogglePlay())
	assert.Equal(t, domain.SessionLoaded, svc.State())
	assert.False(t, st.PlayLoadedSong())

	// Third toggle resumes
	require.NoError(t, svc.TogglePlay())
	assert.Equal(t, domain.SessionPlaying, svc.State())
	assert.True(t, st.PlayLoadedSong())
}

func TestPlaybackService_TogglePlay_EngineFailureResetsSession(t *testing.T) {
	svc, engine, _, st := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))
	engine.SetFailPlay(true)

	err := svc.TogglePlay()

	var perr *domain.PlaybackError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "play", perr.Op)

	// The session tore down to idle without leaking the handle
	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Equal(t, 0, engine.LoadedCount())
	assert.Nil(t, st.LoadedSong())
	assert.False(t, st.PlayLoadedSong())
}

func TestPlaybackService_EventHandlersSeeUpdatedStore(t *testing.T) {
	logger := playbackTestLogger()
	bus := eventbus.NewSyncEventBus(logger)
	st := store.New(logger, bus)
	svc := NewPlaybackService(logger, mock.NewEngine(), &mockAssetStore{}, st, bus)

	// Handlers read the store, never the service; the loaded song is already
	// in shared state when the event fires.
	var seen []string
	bus.Subscribe(domain.EventSongLoaded, func(domain.Event) {
		if loaded := st.LoadedSong(); loaded != nil {
			seen = append(seen, loaded.Title)
		}
	})

	song := playableSong(1, "Morning Hymn", "hymn.mp3")
	require.NoError(t, svc.LoadSong(context.Background(), song))

	assert.Equal(t, []string{"Morning Hymn"}, seen)
}

func TestPlaybackService_Unload(t *testing.T) {
	svc, engine, _, st := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))
	require.NoError(t, svc.TogglePlay())

	svc.Unload()

	assert.Equal(t, domain.SessionIdle, svc.State())
	assert.Equal(t, 0, engine.LoadedCount())
	assert.Nil(t, svc.CurrentSong())
	assert.Nil(t, st.LoadedSong())
	assert.False(t, st.PlayLoadedSong())
}

func TestPlaybackService_Unload_WhenIdleIsNoOp(t *testing.T) {
	svc, _, _, _ := newTestPlaybackService()

	svc.Unload()
	assert.Equal(t, domain.SessionIdle, svc.State())
}

func TestPlaybackService_Shutdown(t *testing.T) {
	svc, engine, _, _ := newTestPlaybackService()
	ctx := context.Background()

	require.NoError(t, svc.LoadSong(ctx, playableSong(1, "First", "first.mp3")))
	require.NoError(t, svc.Shutdown())

	assert.Equal(t, 0, engine.LoadedCount())
}
