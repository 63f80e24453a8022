// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/songhaven/songbook/internal/adapter/assets"
	"github.com/songhaven/songbook/internal/adapter/audio/mock"
	"github.com/songhaven/songbook/internal/adapter/docstore/rest"
	"github.com/songhaven/songbook/internal/adapter/eventbus"
	"github.com/songhaven/songbook/internal/adapter/repository/sqlite"
	"github.com/songhaven/songbook/internal/config"
	"github.com/songhaven/songbook/internal/logger"
	"github.com/songhaven/songbook/internal/ports"
	"github.com/songhaven/songbook/internal/service"
	"github.com/songhaven/songbook/internal/store"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	logger *slog.Logger

	// Infrastructure
	eventBus ports.EventBus
	engine   ports.AudioEngine
	docs     ports.DocumentStore
	identity ports.IdentityProvider
	assets   ports.AssetStore
	repo     ports.BookmarkRepository

	// Shared state
	store *store.Store

	// Services
	syncService     *service.SyncService
	playbackService *service.PlaybackService
	identityService *service.IdentityService
	bookmarkService *service.BookmarkService
}

// Options override parts of the wiring, mainly for tests. A nil field means
// the production adapter built from the configuration is used.
type Options struct {
	// Engine replaces the audio engine. When nil, a mock engine is used.
	Engine ports.AudioEngine

	// Documents replaces the remote document store.
	Documents ports.DocumentStore

	// Identity replaces the identity provider.
	Identity ports.IdentityProvider

	// Assets replaces the audio asset store.
	Assets ports.AssetStore

	// Bookmarks replaces the bookmark repository.
	Bookmarks ports.BookmarkRepository

	// Logger replaces the configured logger.
	Logger *slog.Logger
}

// New creates an application with all dependencies wired from cfg.
// This is the main dependency injection function.
func New(cfg config.Config, opts Options) (*Application, error) {
	app := &Application{}

	if opts.Logger != nil {
		app.logger = opts.Logger
	} else {
		app.logger = logger.NewLogger(logger.Config{
			Level:  logger.ParseLevel(cfg.Logging.Level),
			Format: cfg.Logging.Format,
		})
	}
	app.logger.Info("initializing songbook client",
		slog.String("remote", cfg.Remote.BaseURL),
		slog.String("collection", cfg.Remote.Collection))

	app.eventBus = eventbus.NewSyncEventBus(
		app.logger.With(slog.String("component", "eventbus")))

	app.store = store.New(
		app.logger.With(slog.String("component", "store")),
		app.eventBus,
	)

	if opts.Documents != nil && opts.Identity != nil {
		app.docs = opts.Documents
		app.identity = opts.Identity
	} else {
		client := rest.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIToken, nil)
		if opts.Documents != nil {
			app.docs = opts.Documents
		} else {
			app.docs = rest.NewDocuments(client)
		}
		if opts.Identity != nil {
			app.identity = opts.Identity
		} else {
			app.identity = rest.NewIdentity(client)
		}
	}

	if opts.Assets != nil {
		app.assets = opts.Assets
	} else {
		cache, err := assets.NewCache(
			app.logger.With(slog.String("component", "assets")),
			cfg.Assets.BaseURL, cfg.Assets.CacheDir, nil)
		if err != nil {
			return nil, fmt.Errorf("init asset cache: %w", err)
		}
		app.assets = cache
	}

	if opts.Bookmarks != nil {
		app.repo = opts.Bookmarks
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.BookmarksDB), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		repo, err := sqlite.Open(cfg.BookmarksDB)
		if err != nil {
			return nil, fmt.Errorf("open bookmark db: %w", err)
		}
		app.repo = repo
	}

	if opts.Engine != nil {
		app.engine = opts.Engine
	} else {
		app.engine = mock.NewEngine()
	}

	app.syncService = service.NewSyncService(
		app.logger.With(slog.String("service", "sync")),
		app.store,
		app.docs,
		app.eventBus,
		cfg.Remote.Collection,
	)

	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.engine,
		app.assets,
		app.store,
		app.eventBus,
	)

	app.identityService = service.NewIdentityService(
		app.logger.With(slog.String("service", "identity")),
		app.identity,
		app.store,
		app.eventBus,
	)

	app.bookmarkService = service.NewBookmarkService(
		app.logger.With(slog.String("service", "bookmarks")),
		app.store,
		app.repo,
		app.eventBus,
	)

	if err := app.bookmarkService.Restore(context.Background()); err != nil {
		// Non-fatal - just log and continue
		app.logger.Warn("failed to restore bookmarks", slog.Any("error", err))
	}

	return app, nil
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Store returns the shared state store.
func (a *Application) Store() *store.Store { return a.store }

// EventBus returns the application event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Sync returns the catalog synchronization service.
func (a *Application) Sync() *service.SyncService { return a.syncService }

// Playback returns the playback session manager.
func (a *Application) Playback() *service.PlaybackService { return a.playbackService }

// Identity returns the identity service.
func (a *Application) Identity() *service.IdentityService { return a.identityService }

// Bookmarks returns the bookmark service.
func (a *Application) Bookmarks() *service.BookmarkService { return a.bookmarkService }

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	if a.playbackService != nil {
		if err := a.playbackService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown playback service", slog.Any("error", err))
		}
	}

	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Warn("failed to close bookmark repository", slog.Any("error", err))
		}
	}

	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
