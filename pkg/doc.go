// Package pkg provides the libraries behind iconsvg.
//
// # Overview
//
// iconsvg turns icons from Iconify JSON icon sets into customised SVG. The
// pkg directory is organized into these areas:
//
//  1. [svg] - Geometry core (dimensions, flips, rotation, alignment)
//  2. [iconset] - Icon set parsing, alias resolution and the registry
//  3. [customise] - Attribute strings to customisations
//  4. [render] - Markup output (SVG, HTML, CSS url, JSON) and alias graphs
//  5. [pipeline] - Orchestration (resolve → build → render → cache)
//  6. [loader], [cache], [config] - Remote icon sets, render caches, settings
//
// # Architecture
//
// The typical data flow through iconsvg:
//
//	Icon name ("mdi:home")
//	         ↓
//	    [iconset] registry (local sets, else [loader] from the API)
//	         ↓
//	    [customise] + [svg.Build] (attributes + body)
//	         ↓
//	    [render] (markup)
//	         ↓
//	    [cache] (keyed by icon, format and parameters)
//
// # Quick Start
//
// Render an icon from a local set:
//
//	reg := iconset.NewRegistry()
//	if _, err := reg.LoadFile("mdi.json"); err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(reg, nil, cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Icon:  "mdi:home",
//	    Attrs: map[string]string{"height": "32", "rotate": "90deg"},
//	})
//
// [svg]: github.com/matzehuels/iconsvg/pkg/svg
// [svg.Build]: github.com/matzehuels/iconsvg/pkg/svg#Build
// [iconset]: github.com/matzehuels/iconsvg/pkg/iconset
// [customise]: github.com/matzehuels/iconsvg/pkg/customise
// [render]: github.com/matzehuels/iconsvg/pkg/render
// [pipeline]: github.com/matzehuels/iconsvg/pkg/pipeline
// [loader]: github.com/matzehuels/iconsvg/pkg/loader
// [cache]: github.com/matzehuels/iconsvg/pkg/cache
// [config]: github.com/matzehuels/iconsvg/pkg/config
package pkg
