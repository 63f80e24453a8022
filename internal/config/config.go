// Package config loads client configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Remote contains configuration for the remote document store.
type Remote struct {
	BaseURL    string `toml:"base_url"`
	Collection string `toml:"collection"`
	APIToken   string `toml:"api_token"`
}

// Assets contains configuration for the audio asset store.
type Assets struct {
	BaseURL  string `toml:"base_url"`
	CacheDir string `toml:"cache_dir"`
}

// Logging contains logger configuration.
type Logging struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// Config is the full client configuration.
type Config struct {
	Remote      Remote  `toml:"remote"`
	Assets      Assets  `toml:"assets"`
	Logging     Logging `toml:"logging"`
	BookmarksDB string  `toml:"bookmarks_db"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Remote: Remote{
			BaseURL:    "http://localhost:8080",
			Collection: "songs",
		},
		Assets: Assets{
			BaseURL:  "http://localhost:8080/assets",
			CacheDir: filepath.Join(dataDir, "assets"),
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		BookmarksDB: filepath.Join(dataDir, "bookmarks.db"),
	}
}

// Load reads configuration from path, filling unset fields with defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.toml")
}

func (c Config) validate() error {
	if c.Remote.BaseURL == "" {
		return errors.New("remote.base_url must not be empty")
	}
	if c.Remote.Collection == "" {
		return errors.New("remote.collection must not be empty")
	}
	if c.Assets.CacheDir == "" {
		return errors.New("assets.cache_dir must not be empty")
	}
	if c.BookmarksDB == "" {
		return errors.New("bookmarks_db must not be empty")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}
	return nil
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "songbook")
}
