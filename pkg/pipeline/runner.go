package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/iconsvg/pkg/cache"
	"github.com/matzehuels/iconsvg/pkg/customise"
	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/observability"
	"github.com/matzehuels/iconsvg/pkg/render"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

// Loader makes icons available in a registry, typically by fetching them
// from a remote API. *loader.Client implements it.
type Loader interface {
	Load(ctx context.Context, reg *iconset.Registry, names []iconset.Name) (loaded, missing []iconset.Name, err error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it so rendering and caching behave the same.
//
// The Runner holds no per-render state; multiple goroutines can share one.
type Runner struct {
	Registry *iconset.Registry
	Loader   Loader // nil disables remote loading
	Cache    cache.Cache
	Keyer    cache.Keyer
	TTL      time.Duration
	Logger   *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer uses [cache.DefaultKeyer] and a
// nil loader keeps rendering local to reg.
func NewRunner(reg *iconset.Registry, loader Loader, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if reg == nil {
		reg = iconset.NewRegistry()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Loader:   loader,
		Cache:    c,
		Keyer:    keyer,
		TTL:      DefaultTTL,
		Logger:   logger,
	}
}

// Execute renders one icon.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	name, err := iconset.ParseName(opts.Icon)
	if err != nil {
		return nil, err
	}
	result := &Result{Icon: name.String(), Format: opts.Format}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, result.Icon, opts.Format)

	key := r.Keyer.RenderKey(result.Icon, opts.Format, opts.cacheParams())
	if !opts.Refresh && !opts.UniqueIDs {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, key)
			result.Data = data
			result.CacheHit = true
			result.Duration = time.Since(start)
			hooks.OnRenderComplete(ctx, result.Icon, opts.Format, len(data), result.Duration, nil)
			return result, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	data, err := r.render(ctx, name, opts)
	result.Duration = time.Since(start)
	hooks.OnRenderComplete(ctx, result.Icon, opts.Format, len(data), result.Duration, err)
	if err != nil {
		return nil, err
	}
	result.Data = data

	// Output with fresh IDs differs on every call and is not worth caching.
	if !opts.UniqueIDs {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}

	r.Logger.Debug("rendered icon",
		"icon", result.Icon,
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Duration)
	return result, nil
}

// Resolve returns the icon geometry for name, loading it remotely when the
// registry does not have it and a loader is configured.
func (r *Runner) Resolve(ctx context.Context, name iconset.Name) (svg.Icon, error) {
	if !r.Registry.Exists(name) && r.Loader != nil {
		_, missing, err := r.Loader.Load(ctx, r.Registry, []iconset.Name{name})
		if err != nil {
			return svg.Icon{}, err
		}
		if len(missing) > 0 {
			return svg.Icon{}, errors.New(errors.ErrCodeIconNotFound, "icon %s not found", name)
		}
		r.Logger.Debug("loaded icon from api", "icon", name.String())
	}
	return r.Registry.Lookup(name)
}

// Build resolves name and applies the customisation attributes.
func (r *Runner) Build(ctx context.Context, name iconset.Name, attrs map[string]string) (svg.Result, error) {
	icon, err := r.Resolve(ctx, name)
	if err != nil {
		return svg.Result{}, err
	}
	return svg.Build(icon, customise.FromAttributes(attrs)), nil
}

func (r *Runner) render(ctx context.Context, name iconset.Name, opts Options) ([]byte, error) {
	res, err := r.Build(ctx, name, opts.Attrs)
	if err != nil {
		return nil, err
	}
	ropts := opts.renderOptions()
	if opts.UniqueIDs {
		ropts = append(ropts, render.WithIDs(svg.NewIDReplacer("")))
	}
	return render.Encode(opts.Format, res, ropts...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
