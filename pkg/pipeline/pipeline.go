// Package pipeline provides the icon rendering pipeline shared by the CLI
// and the HTTP server.
//
// A render runs four stages:
//
//  1. Resolve: parse the icon name and find it in the registry, fetching the
//     icon from the remote API when a loader is configured
//  2. Customise: turn raw attributes (width, flip, rotate, ...) into
//     [svg.Customisations]
//  3. Build: compute the transformed body and attributes with [svg.Build]
//  4. Encode: produce svg, html, url or json output with [render.Encode]
//
// Encoded output is cached by icon name, format and parameters.
//
// # Usage
//
//	runner := pipeline.NewRunner(reg, client, cache, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Icon:   "mdi:home",
//	    Format: "svg",
//	    Attrs:  map[string]string{"height": "32", "rotate": "90deg"},
//	})
//	os.Stdout.Write(res.Data)
package pipeline

import (
	"maps"
	"time"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format when none is given.
	DefaultFormat = render.FormatSVG

	// DefaultTTL is how long rendered output stays cached.
	DefaultTTL = 24 * time.Hour
)

// =============================================================================
// Options
// =============================================================================

// Options describes one render.
type Options struct {
	// Icon is the icon name: "prefix:name", "@provider:prefix:name" or
	// "prefix-name".
	Icon string

	// Format is one of svg, html, url or json.
	Format string

	// Attrs are raw customisation attributes as accepted by
	// customise.FromAttributes.
	Attrs map[string]string

	// Color replaces currentColor in the body.
	Color string

	// Class is added to the <svg> element.
	Class string

	// UniqueIDs rewrites body IDs so several copies of the icon can share
	// a document.
	UniqueIDs bool

	// Refresh bypasses the cache read; the result is still stored.
	Refresh bool
}

// ValidateAndSetDefaults fills in the default format and checks the rest.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if !render.ValidFormat(o.Format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s (must be 'svg', 'html', 'url' or 'json')", o.Format)
	}
	if o.Icon == "" {
		return errors.New(errors.ErrCodeInvalidIconName, "icon name is required")
	}
	if o.Color != "" {
		if err := errors.ValidateColor(o.Color); err != nil {
			return err
		}
	}
	return nil
}

// cacheParams flattens everything that affects the output into one map.
func (o Options) cacheParams() map[string]string {
	params := maps.Clone(o.Attrs)
	if params == nil {
		params = make(map[string]string)
	}
	if o.Color != "" {
		params["_color"] = o.Color
	}
	if o.Class != "" {
		params["_class"] = o.Class
	}
	return params
}

// renderOptions converts the markup-level options.
func (o Options) renderOptions() []render.Option {
	var opts []render.Option
	if o.Color != "" {
		opts = append(opts, render.WithColor(o.Color))
	}
	if o.Class != "" {
		opts = append(opts, render.WithAttr("class", o.Class))
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Runner.Execute].
type Result struct {
	// Icon is the canonical icon name.
	Icon string

	// Format is the output format.
	Format string

	// Data is the encoded output.
	Data []byte

	// CacheHit reports whether Data came from the cache.
	CacheHit bool

	// Duration is the wall time of the render, cache lookup included.
	Duration time.Duration
}
