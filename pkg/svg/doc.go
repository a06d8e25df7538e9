// Package svg turns icon definitions into SVG attributes and body markup.
//
// # Overview
//
// An [Icon] carries its intrinsic coordinate space (left, top, width, height),
// its body markup and an orientation baked in by the icon author. [Build]
// combines an icon with caller [Customisations] and returns a [Result] holding
// the width, height, preserveAspectRatio and viewBox attributes for the outer
// <svg> element plus the transformed body:
//
//	res := svg.Build(icon, svg.Customisations{
//	    Height: svg.Str("40px"),
//	    Rotate: 1,
//	    VAlign: svg.AlignBottom,
//	})
//	// res.Attributes.Width == "32px"
//	// res.Attributes.ViewBox == "0 0 16 20"
//	// res.Body == `<g transform="rotate(90 8 8)">...</g>`
//
// # Orientation
//
// Orientation is applied in two passes over a single working [ViewBox]: first
// the icon's own flip and rotation, then the caller's. Each pass flips first and
// rotates second. A horizontal plus vertical flip in the same pass is folded into
// a half turn before that pass's rotation is normalized. A flip resets the box
// origin to 0,0 and an odd rotation transposes the box axes; the second pass
// operates on whatever box the first pass left behind.
//
// Every pass that produces transforms wraps the body in one <g> element. SVG
// applies transform lists right to left, so rotations are written before flips.
//
// # Sizes
//
// Width and height are [Dimension] values: unset, a number, a unit string such
// as "1em", or auto. When only one side is set, [CalculateSize] derives the other
// from the box aspect ratio. When neither is set the height defaults to 1em.
// Auto resolves to the box dimension itself.
//
// # Concurrency
//
// Build and CalculateSize are pure and keep no package state, so they are safe
// to call from any number of goroutines. [IDReplacer] holds a counter and must
// not be shared between goroutines without synchronization.
package svg
