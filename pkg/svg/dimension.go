package svg

import (
	"strconv"
	"strings"
)

// DimensionKind identifies which variant a [Dimension] holds.
type DimensionKind uint8

const (
	// Unset means the size was not requested and should be derived.
	Unset DimensionKind = iota
	// Number is a bare numeric size in user units.
	Number
	// Unit is a string size such as "1em" or "40px". Strings that do not
	// look like a number are kept here too and passed through verbatim.
	Unit
	// Auto means "use the icon's own box dimension".
	Auto
)

// autoKeyword is the literal accepted for [Auto] sizes.
const autoKeyword = "auto"

// Dimension is a width or height request. The zero value is [Unset].
type Dimension struct {
	kind DimensionKind
	num  float64
	str  string
}

// Num returns a numeric dimension.
func Num(v float64) Dimension {
	return Dimension{kind: Number, num: v}
}

// Str returns a string dimension. An empty string yields an unset dimension and
// "auto" yields [AutoSize].
func Str(s string) Dimension {
	switch strings.TrimSpace(s) {
	case "":
		return Dimension{}
	case autoKeyword:
		return AutoSize()
	}
	return Dimension{kind: Unit, str: s}
}

// AutoSize returns the auto dimension.
func AutoSize() Dimension {
	return Dimension{kind: Auto}
}

// Kind reports the variant held by d.
func (d Dimension) Kind() DimensionKind { return d.kind }

// IsSet reports whether d was explicitly requested.
func (d Dimension) IsSet() bool { return d.kind != Unset }

// Value returns the numeric value of a [Number] dimension, or 0.
func (d Dimension) Value() float64 {
	if d.kind == Number {
		return d.num
	}
	return 0
}

// String renders d as an attribute value. Unset renders as "".
func (d Dimension) String() string {
	switch d.kind {
	case Number:
		return formatNumber(d.num)
	case Unit:
		return d.str
	case Auto:
		return autoKeyword
	default:
		return ""
	}
}

// formatNumber prints v in the shortest decimal form without an exponent,
// so 16 prints as "16" and 0.8 as "0.8".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
