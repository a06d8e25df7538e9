// Package render turns [svg.Result] values into markup.
//
// # Overview
//
// [svg.Build] only computes attributes and a body. This package wraps them in
// a complete <svg> element and applies presentation concerns the geometry core
// leaves out:
//
//   - Color substitution for currentColor ([WithColor])
//   - Unique IDs for bodies embedded more than once ([WithIDs])
//   - The vertical-align style for inline icons
//   - Extra attributes such as class ([WithAttr])
//
// Output formats are raw SVG, an HTML fragment and a data URL for CSS:
//
//	res := svg.Build(icon, c)
//	markup, err := render.SVG(res, render.WithColor("#f00"))
//	css := render.URL(markup) // url("data:image/svg+xml,...")
//
// The [aliasgraph] subpackage renders the alias structure of an icon set with
// Graphviz.
//
// [aliasgraph]: github.com/matzehuels/iconsvg/pkg/render/aliasgraph
package render
