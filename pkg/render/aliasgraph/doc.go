// Package aliasgraph renders the alias structure of an icon set.
//
// Each icon and alias becomes a node; every alias points at its parent.
// Alias nodes are dashed and labelled with the transform they add, which makes
// it easy to see how a rotated or flipped variant is derived:
//
//	dot := aliasgraph.ToDOT(set, aliasgraph.Options{})
//	out, err := aliasgraph.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation is required.
package aliasgraph
