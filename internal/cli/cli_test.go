package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iconsvg/pkg/config"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

const testSetJSON = `{
	"prefix": "test",
	"width": 24,
	"height": 24,
	"icons": {
		"home": {"body": "<path fill=\"currentColor\" d=\"M10 20v-6h4v6\"/>"},
		"wide": {"body": "<rect width=\"20\" height=\"16\"/>", "width": 20, "height": 16}
	},
	"aliases": {
		"home-turned": {"parent": "home", "rotate": 1},
		"home-mirrored": {"parent": "home-turned", "hFlip": true}
	}
}`

// testEnv is a temp directory holding a config file and an icon set.
type testEnv struct {
	dir        string
	configPath string
	setPath    string
}

func newTestEnv(t *testing.T, backend string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		setPath:    filepath.Join(dir, "test.json"),
	}
	if err := os.WriteFile(env.setPath, []byte(testSetJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Cache.Backend = backend
	cfg.Cache.Dir = filepath.Join(dir, "cache")
	if err := config.Save(env.configPath, cfg); err != nil {
		t.Fatal(err)
	}
	return env
}

// run executes the root command with args and returns its stdout.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", e.configPath, "--offline"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults",
			args: []string{"test:home"},
			want: []string{`<svg`, `width="1em"`, `height="1em"`, `viewBox="0 0 24 24"`},
		},
		{
			name: "dash name",
			args: []string{"test-wide"},
			want: []string{`viewBox="0 0 20 16"`},
		},
		{
			name: "alias",
			args: []string{"test:home-turned"},
			want: []string{`rotate(90 12 12)`},
		},
		{
			name: "customised",
			args: []string{"test:wide", "--height", "32", "--rotate", "90deg", "--color", "#f00"},
			want: []string{`height="32"`, `viewBox="0 0 16 20"`},
		},
		{
			name: "html",
			args: []string{"test:home", "--format", "html"},
			want: []string{`<span class="iconify"><svg`},
		},
		{
			name: "json",
			args: []string{"test:home", "-f", "json", "--width", "auto"},
			want: []string{`"viewBox": "0 0 24 24"`, `"width": "24"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(t, append([]string{"render", "--set", env.setPath}, tt.args...)...)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderCommandErrors(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown icon", []string{"test:missing"}},
		{"unknown set offline", []string{"other:home"}},
		{"bad name", []string{"home"}},
		{"bad format", []string{"test:home", "--format", "png"}},
		{"bad color", []string{"test:home", "--color", "red;}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.run(t, append([]string{"render", "--set", env.setPath}, tt.args...)...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderCommandToFile(t *testing.T) {
	env := newTestEnv(t, config.BackendFile)
	out := filepath.Join(env.dir, "home.svg")

	for i := 0; i < 2; i++ {
		if _, err := env.run(t, "render", "--set", env.setPath, "test:home", "-o", out); err != nil {
			t.Fatalf("render #%d: %v", i, err)
		}
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("file does not hold an svg: %s", data)
	}
	entries, err := os.ReadDir(filepath.Join(env.dir, "cache"))
	if err != nil || len(entries) == 0 {
		t.Errorf("render cache not populated: %v", err)
	}

	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)

	out, err := env.run(t, "list", env.setPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, w := range []string{"home", "wide", "home-turned", "20×16", "rotate 90°"} {
		if !strings.Contains(out, w) {
			t.Errorf("list output missing %q:\n%s", w, out)
		}
	}

	out, err = env.run(t, "list", env.setPath, "--filter", "wide")
	if err != nil {
		t.Fatalf("list --filter: %v", err)
	}
	if strings.Contains(out, "home") {
		t.Errorf("filtered list should not contain home:\n%s", out)
	}
}

func TestAliasesCommand(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)

	out, err := env.run(t, "aliases", env.setPath)
	if err != nil {
		t.Fatalf("aliases: %v", err)
	}
	for _, w := range []string{`digraph "test"`, `"home-turned" -> "home"`, `"home-mirrored" -> "home-turned"`} {
		if !strings.Contains(out, w) {
			t.Errorf("dot output missing %q:\n%s", w, out)
		}
	}

	if _, err := env.run(t, "aliases", env.setPath, "--format", "png"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)

	out, err := env.run(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != env.configPath {
		t.Errorf("config path = %q, want %q", out, env.configPath)
	}

	out, err = env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `backend = "none"`) {
		t.Errorf("config show missing backend:\n%s", out)
	}

	if _, err := env.run(t, "config", "init"); err == nil {
		t.Error("config init should refuse to overwrite")
	}
	if _, err := env.run(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	cfg, err := config.Load(env.configPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != config.BackendFile {
		t.Errorf("backend after init = %q, want %q", cfg.Cache.Backend, config.BackendFile)
	}
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t, config.BackendNone)
	if err := os.WriteFile(env.configPath, []byte("colour = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "list", env.setPath); err == nil {
		t.Error("expected an error for an unknown config key")
	}
}

func TestCachePathCommand(t *testing.T) {
	env := newTestEnv(t, config.BackendFile)
	out, err := env.run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if want := filepath.Join(env.dir, "cache"); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestRenderOptsAttrs(t *testing.T) {
	opts := renderOpts{width: "2em", rotate: "90deg", inline: true}
	got := opts.attrs()
	want := map[string]string{"width": "2em", "rotate": "90deg", "inline": "true"}
	if len(got) != len(want) {
		t.Fatalf("attrs() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("attrs()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestOrientationLabel(t *testing.T) {
	tests := []struct {
		o    svg.Orientation
		want string
	}{
		{svg.Orientation{}, ""},
		{svg.Orientation{Rotate: 1}, "rotate 90°"},
		{svg.Orientation{Rotate: 6, HFlip: true}, "rotate 180° hflip"},
		{svg.Orientation{VFlip: true}, "vflip"},
	}
	for _, tt := range tests {
		if got := orientationLabel(tt.o); got != tt.want {
			t.Errorf("orientationLabel(%+v) = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	newProgress(logger).done("Listed 3 icons")
	if !strings.Contains(buf.String(), "Listed 3 icons") {
		t.Errorf("progress output = %q", buf.String())
	}
}
