// Package customise turns raw string attributes, as found on HTML elements,
// query strings or command-line flags, into normalized [svg.Customisations].
//
// Parsing is lenient: unknown tokens are ignored and unparseable values fall
// back to defaults, mirroring how browsers treat bad attribute values.
//
//	c := customise.FromAttributes(map[string]string{
//	    "height": "24",
//	    "flip":   "horizontal",
//	    "rotate": "90deg",
//	    "align":  "left,top,slice",
//	})
package customise

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/iconsvg/pkg/svg"
)

var separatorRe = regexp.MustCompile(`[\s,]+`)

// tokens splits a list attribute such as "left, top slice".
func tokens(s string) []string {
	var out []string
	for _, t := range separatorRe.Split(strings.TrimSpace(s), -1) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FlipFromString sets HFlip and VFlip from "horizontal" and "vertical"
// tokens. Unknown tokens are ignored.
func FlipFromString(s string, c *svg.Customisations) {
	for _, t := range tokens(s) {
		switch t {
		case "horizontal":
			c.HFlip = true
		case "vertical":
			c.VFlip = true
		}
	}
}

// AlignmentFromString sets alignment and slice from tokens left, center,
// right, top, middle, bottom, slice and meet.
func AlignmentFromString(s string, c *svg.Customisations) {
	for _, t := range tokens(s) {
		switch t {
		case "left", "center", "right":
			c.HAlign = svg.HAlign(t)
		case "top", "middle", "bottom":
			c.VAlign = svg.VAlign(t)
		case "slice":
			c.Slice = true
		case "meet":
			c.Slice = false
		}
	}
}

var (
	rotateNumberRe = regexp.MustCompile(`^-?[0-9.]*`)
	leadingIntRe   = regexp.MustCompile(`^-?[0-9]+`)
)

// RotateFromString converts a rotation to quarter turns in [0, 4).
//
// A bare number is a count of quarter turns, truncated to an integer.
// "90deg" and "25%" are one quarter turn; deg and % values that are not
// whole quarter turns give 0, as do unparseable numbers. Any other unit
// returns def.
func RotateFromString(s string, def int) int {
	s = strings.TrimSpace(s)
	num := rotateNumberRe.FindString(s)
	units := s[len(num):]

	switch {
	case units == "":
		n, err := strconv.Atoi(leadingIntRe.FindString(num))
		if err != nil {
			return 0
		}
		return svg.NormalizeRotation(n)
	case units == s:
		return def
	}

	var split float64
	switch units {
	case "deg":
		split = 90
	case "%":
		split = 25
	default:
		return def
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	v /= split
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0
	}
	return svg.NormalizeRotation(int(v))
}

var numberRe = regexp.MustCompile(`^-?(?:[0-9]+\.?[0-9]*|\.[0-9]+)$`)

// Dimension parses a width or height attribute. Empty values are unset,
// "auto" is auto, bare numbers are numeric and anything else is kept as a
// unit string.
func Dimension(s string) svg.Dimension {
	s = strings.TrimSpace(s)
	if numberRe.MatchString(s) {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return svg.Num(v)
		}
	}
	return svg.Str(s)
}

// Bool parses boolean attributes. Presence without a value, "true", "1",
// and the attribute's own name count as true.
func Bool(name, value string) bool {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "true", "1", "yes", "on":
		return true
	}
	return strings.EqualFold(v, name)
}

// attributeOrder is the order [Apply] reads keys in. Shorthands come
// before the specific keys that override them.
var attributeOrder = []string{
	"width", "height",
	"flip", "align",
	"hAlign", "vAlign", "hFlip", "vFlip", "slice",
	"rotate", "inline",
}

// FromAttributes builds customisations from raw attributes merged onto the
// defaults. Recognised keys are width, height, flip, hFlip, vFlip, rotate,
// align, hAlign, vAlign, slice and inline.
func FromAttributes(attrs map[string]string) svg.Customisations {
	c := svg.DefaultCustomisations()
	Apply(attrs, &c)
	return c
}

// Apply merges raw attributes onto c. When keys conflict, hFlip and vFlip
// override flip, and hAlign, vAlign and slice override align.
func Apply(attrs map[string]string, c *svg.Customisations) {
	for _, key := range attributeOrder {
		value, ok := attrs[key]
		if !ok {
			continue
		}
		switch key {
		case "width":
			c.Width = Dimension(value)
		case "height":
			c.Height = Dimension(value)
		case "flip":
			FlipFromString(value, c)
		case "hFlip":
			c.HFlip = Bool(key, value)
		case "vFlip":
			c.VFlip = Bool(key, value)
		case "rotate":
			c.Rotate = RotateFromString(value, c.Rotate)
		case "align", "hAlign", "vAlign":
			AlignmentFromString(value, c)
		case "slice":
			c.Slice = Bool(key, value)
		case "inline":
			c.Inline = Bool(key, value)
		}
	}
}
