package assets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songhaven/songbook/internal/domain"
)

func cacheTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// taggedAudio prefixes body with an empty ID3v2 header so the asset sniffs
// as MP3.
func taggedAudio(body string) []byte {
	return append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), body...)
}

func newTestCache(t *testing.T, handler http.Handler) (*Cache, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache, err := NewCache(cacheTestLogger(), server.URL, t.TempDir(), nil)
	require.NoError(t, err)
	return cache, server
}

func TestCache_Resolve_DownloadsAndCaches(t *testing.T) {
	var hits int64
	cache, _ := newTestCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		require.Equal(t, "/hymn.mp3", r.URL.Path)
		_, _ = w.Write(taggedAudio("fake audio bytes"))
	}))

	path, err := cache.Resolve(context.Background(), "hymn.mp3")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, taggedAudio("fake audio bytes"), data)

	// Second resolve is a cache hit; no second network trip
	again, err := cache.Resolve(context.Background(), "hymn.mp3")
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestCache_Resolve_EmptyReference(t *testing.T) {
	cache, _ := newTestCache(t, http.NotFoundHandler())

	_, err := cache.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNoAudioAsset)
}

func TestCache_Resolve_MissingAsset(t *testing.T) {
	cache, _ := newTestCache(t, http.NotFoundHandler())

	_, err := cache.Resolve(context.Background(), "gone.mp3")
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)
}

func TestCache_Resolve_FailedDownloadLeavesNoCacheEntry(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	cache, _ := newTestCache(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(taggedAudio("recovered"))
	}))

	_, err := cache.Resolve(context.Background(), "flaky.mp3")
	require.Error(t, err)

	// After the failure clears, resolve fetches fresh bytes
	fail.Store(false)
	path, err := cache.Resolve(context.Background(), "flaky.mp3")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, taggedAudio("recovered"), data)
}

func TestCache_Resolve_UnidentifiableBytesRejected(t *testing.T) {
	var hits int64
	cache, _ := newTestCache(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte("this is not audio at all"))
	}))

	_, err := cache.Resolve(context.Background(), "garbage.mp3")
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)

	// The rejected download is not cached; the next resolve fetches again
	_, err = cache.Resolve(context.Background(), "garbage.mp3")
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestCache_Prefetch(t *testing.T) {
	var hits int64
	cache, _ := newTestCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(taggedAudio("audio"))
	}))

	cache.Prefetch(context.Background(), []string{"a.mp3", "b.mp3", "", "missing.mp3"})

	// Empty references are skipped, failures are tolerated
	assert.Equal(t, int64(3), atomic.LoadInt64(&hits))

	path, err := cache.Resolve(context.Background(), "a.mp3")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, int64(3), atomic.LoadInt64(&hits))
}

func TestNewCache_CreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/assets"

	_, err := NewCache(cacheTestLogger(), "http://localhost", dir, nil)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
