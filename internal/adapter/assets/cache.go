// Package assets resolves audio asset references to local files.
// Assets are fetched from the blob store over HTTP and cached on disk; the
// playback engine only ever sees local paths.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"github.com/songhaven/songbook/internal/domain"
	"github.com/songhaven/songbook/internal/ports"
)

// prefetchConcurrency bounds parallel downloads during a cache warm.
const prefetchConcurrency = 4

// Cache is a disk-backed asset cache. Resolve is idempotent: a second call
// for the same reference returns the cached file without a network trip.
type Cache struct {
	logger     *slog.Logger
	baseURL    string
	dir        string
	httpClient *http.Client
}

// NewCache creates an asset cache rooted at dir. The directory is created if
// missing. A nil httpClient falls back to a client with a sane timeout.
func NewCache(logger *slog.Logger, baseURL, dir string, httpClient *http.Client) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset cache dir: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Cache{
		logger:     logger,
		baseURL:    baseURL,
		dir:        dir,
		httpClient: httpClient,
	}, nil
}

// Resolve returns a local path for the asset reference, downloading it on a
// cache miss. Resolution failures surface as domain.ErrAssetUnavailable so
// the playback manager can convert them without inspecting transport detail.
func (c *Cache) Resolve(ctx context.Context, audioFileName string) (string, error) {
	if audioFileName == "" {
		return "", domain.ErrNoAudioAsset
	}

	local := filepath.Join(c.dir, filepath.Base(audioFileName))
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	if err := c.download(ctx, audioFileName, local); err != nil {
		c.logger.Warn("asset fetch failed",
			slog.String("asset", audioFileName),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: %s", domain.ErrAssetUnavailable, audioFileName)
	}

	if err := c.sniff(local); err != nil {
		os.Remove(local)
		c.logger.Warn("asset is not readable audio",
			slog.String("asset", audioFileName),
			slog.Any("error", err))
		return "", fmt.Errorf("%w: %s", domain.ErrAssetUnavailable, audioFileName)
	}
	return local, nil
}

// Prefetch warms the cache for a set of asset references with bounded
// concurrency. Individual failures are logged and skipped; a cache warm is
// best-effort and never blocks catalog browsing.
func (c *Cache) Prefetch(ctx context.Context, audioFileNames []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)

	for _, name := range audioFileNames {
		if name == "" {
			continue
		}
		g.Go(func() error {
			if _, err := c.Resolve(ctx, name); err != nil {
				c.logger.Debug("prefetch skipped asset",
					slog.String("asset", name),
					slog.Any("error", err))
			}
			return nil
		})
	}

	_ = g.Wait()
}

// download streams the asset to a temp file, then renames it into place so a
// partial download never looks like a cached asset.
func (c *Cache) download(ctx context.Context, audioFileName, local string) error {
	assetURL := c.baseURL + "/" + url.PathEscape(audioFileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close asset: %w", err)
	}

	return os.Rename(tmp.Name(), local)
}

// sniff confirms the fetched bytes parse as a known audio container. A file
// the tag reader cannot identify never reaches the engine.
func (c *Cache) sniff(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return fmt.Errorf("identify asset: %w", err)
	}

	c.logger.Debug("asset cached",
		slog.String("path", path),
		slog.String("format", string(meta.Format())),
		slog.String("title", meta.Title()))
	return nil
}

// Verify that Cache implements the AssetStore interface
var _ ports.AssetStore = (*Cache)(nil)
