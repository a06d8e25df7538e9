// Package cli implements the iconsvg command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/iconsvg/pkg/buildinfo"
	"github.com/matzehuels/iconsvg/pkg/cache"
	"github.com/matzehuels/iconsvg/pkg/config"
	"github.com/matzehuels/iconsvg/pkg/httputil"
	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/loader"
	"github.com/matzehuels/iconsvg/pkg/observability"
	"github.com/matzehuels/iconsvg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// connectTimeout bounds connecting to redis or mongo cache backends.
	connectTimeout = 5 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
	noCache    bool
	offline    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. Debug level also routes render,
// cache and HTTP events to the logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "iconsvg renders icon set icons as customised SVG",
		Long:         `iconsvg renders icons from Iconify JSON icon sets, local or fetched from an Iconify-compatible API, applying size, flip, rotation and alignment. It also serves icons over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/iconsvg/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")
	root.PersistentFlags().BoolVar(&c.offline, "offline", false, "never fetch icons from the remote API")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.aliasesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

func (c *CLI) loadConfig() error {
	path, err := c.resolveConfigPath()
	if err != nil {
		return fmt.Errorf("config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner builds a pipeline runner over the configured icon directories,
// any extra set files, the configured cache and (unless offline) the
// remote API.
func (c *CLI) newRunner(ctx context.Context, setFiles []string) (*pipeline.Runner, error) {
	reg, err := c.newRegistry(setFiles)
	if err != nil {
		return nil, err
	}
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}

	var ld pipeline.Loader
	if !c.offline {
		ld = c.newLoader()
	}

	// Keys are scoped by release; output may differ between versions.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	runner := pipeline.NewRunner(reg, ld, store, keyer, c.Logger)
	if ttl := c.config.Cache.TTL.Duration; ttl > 0 {
		runner.TTL = ttl
	}
	return runner, nil
}

func (c *CLI) newRegistry(setFiles []string) (*iconset.Registry, error) {
	reg := iconset.NewRegistry()
	for _, dir := range c.config.IconDirs {
		n, err := reg.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load icon dir %s: %w", dir, err)
		}
		c.Logger.Debug("loaded icon dir", "dir", dir, "sets", n)
	}
	for _, f := range setFiles {
		if _, err := reg.LoadFile(f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (c *CLI) newLoader() *loader.Client {
	opts := []loader.Option{}
	if t := c.config.API.Timeout.Duration; t > 0 {
		opts = append(opts, loader.WithHTTPClient(httputil.NewClient(t)))
	}
	for provider, base := range c.config.Providers() {
		opts = append(opts, loader.WithProvider(provider, base))
	}
	return loader.New(opts...)
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.config.Cache
	switch cc.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cc.RedisAddr, DB: cc.RedisDB})
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cc.MongoURI,
			Database:   cc.MongoDatabase,
			Collection: cc.MongoCollection,
		})
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the file cache directory: the configured one, else the
// XDG cache directory.
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return config.CacheDir()
}
