// Package config loads the iconsvg TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/iconsvg/config.toml (falling back to
// ~/.config/iconsvg/config.toml). A missing file is not an error; every
// field has a default.
//
//	icon_dirs = ["~/icons"]
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "file"   # none, file, redis or mongo
//	ttl = "24h"
//
//	[api]
//	timeout = "10s"
//	[api.providers]
//	local = "http://localhost:3000"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/iconsvg/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "iconsvg"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the whole configuration file.
type Config struct {
	// IconDirs are scanned for *.json icon sets at startup.
	IconDirs []string `toml:"icon_dirs"`

	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	API    APIConfig    `toml:"api"`
}

// ServerConfig configures `iconsvg serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the render cache backend.
type CacheConfig struct {
	Backend         string   `toml:"backend"`
	Dir             string   `toml:"dir,omitempty"`
	TTL             Duration `toml:"ttl"`
	RedisAddr       string   `toml:"redis_addr,omitempty"`
	RedisDB         int      `toml:"redis_db,omitempty"`
	MongoURI        string   `toml:"mongo_uri,omitempty"`
	MongoDatabase   string   `toml:"mongo_database,omitempty"`
	MongoCollection string   `toml:"mongo_collection,omitempty"`
}

// APIConfig configures the remote icon API.
type APIConfig struct {
	// Providers maps provider names to base URLs. The empty provider is
	// the public Iconify API unless overridden here under "default".
	Providers map[string]string `toml:"providers,omitempty"`
	Timeout   Duration          `toml:"timeout"`
}

// Duration is a time.Duration written as "24h" or "10s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
		},
		API: APIConfig{Timeout: Duration{10 * time.Second}},
	}
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns the configuration file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path over the defaults. A missing file yields [Default].
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	for i, dir := range cfg.IconDirs {
		cfg.IconDirs[i] = expandHome(dir)
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks the backend name, durations and provider URLs.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.API.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "api timeout must not be negative")
	}
	for name, u := range c.API.Providers {
		if name != "default" {
			if err := errors.ValidateProvider(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "provider %q", name)
			}
		}
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "provider %q", name)
		}
	}
	return nil
}

// Providers returns the provider map keyed as the loader expects, with
// "default" renamed to "".
func (c Config) Providers() map[string]string {
	out := make(map[string]string, len(c.API.Providers))
	for name, u := range c.API.Providers {
		if name == "default" {
			name = ""
		}
		out[name] = u
	}
	return out
}

// String renders cfg as TOML.
func (c Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("# encode error: %v\n", err)
	}
	return buf.String()
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
