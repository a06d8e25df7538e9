package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/iconsvg/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Server.Addr != def.Server.Addr || cfg.Cache.Backend != def.Cache.Backend {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
icon_dirs = ["/srv/icons", "~/icons"]

[server]
addr = "127.0.0.1:9000"

[cache]
backend = "redis"
ttl = "1h30m"
redis_addr = "cache:6379"
redis_db = 2

[api]
timeout = "3s"
[api.providers]
default = "https://icons.example.com"
local = "http://localhost:3000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	home, _ := os.UserHomeDir()
	if len(cfg.IconDirs) != 2 || cfg.IconDirs[1] != filepath.Join(home, "icons") {
		t.Errorf("IconDirs = %v", cfg.IconDirs)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	if cfg.API.Timeout.Duration != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.API.Timeout)
	}

	providers := cfg.Providers()
	if providers[""] != "https://icons.example.com" || providers["local"] != "http://localhost:3000" {
		t.Errorf("Providers() = %v", providers)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "icon_dirs = [", "parse"},
		{"unknown key", "colour = \"red\"", "unknown keys: colour"},
		{"bad backend", "[cache]\nbackend = \"memcached\"", "unknown cache backend"},
		{"bad duration", "[cache]\nttl = \"forever\"", "parse"},
		{"bad provider url", "[api.providers]\nlocal = \"ftp://x\"", "provider"},
		{"bad provider name", "[api.providers]\n\"Bad_Name\" = \"http://x\"", "provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.IconDirs = []string{"/srv/icons"}
	cfg.Cache.Backend = BackendMongo
	cfg.Cache.MongoURI = "mongodb://db:27017"
	cfg.Cache.TTL = Duration{2 * time.Hour}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Cache.Backend != BackendMongo || got.Cache.MongoURI != cfg.Cache.MongoURI {
		t.Errorf("Cache = %+v", got.Cache)
	}
	if got.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("TTL = %v", got.Cache.TTL)
	}
	if len(got.IconDirs) != 1 || got.IconDirs[0] != "/srv/icons" {
		t.Errorf("IconDirs = %v", got.IconDirs)
	}
}

func TestString(t *testing.T) {
	s := Default().String()
	for _, want := range []string{`addr = ":8080"`, `backend = "file"`, `ttl = "24h0m0s"`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/xdg-config/iconsvg/config.toml" {
		t.Errorf("DefaultPath() = %q", path)
	}
	dir, _ := CacheDir()
	if dir != "/tmp/xdg-cache/iconsvg" {
		t.Errorf("CacheDir() = %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	dir, _ = Dir()
	if dir != filepath.Join(home, ".config", AppName) {
		t.Errorf("Dir() without XDG = %q", dir)
	}
}
