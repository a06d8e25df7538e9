package svg

import (
	"math"
	"regexp"
	"strconv"
)

// sizePrecision rounds scaled sizes to 4 decimal places.
const sizePrecision = 10000

// unitSizeRe matches a number followed by an optional unit, e.g. "1em",
// "40px", "-2.5", "50%".
var unitSizeRe = regexp.MustCompile(`^(-?(?:[0-9]+\.?[0-9]*|\.[0-9]+))([a-zA-Z%]*)$`)

// CalculateSize scales d by ratio, where ratio is other/given.
//
// A ratio of exactly 1 returns d untouched. Numbers are multiplied and
// rounded to 4 decimal places. Unit strings have their numeric part scaled and
// the unit re-appended. Auto, unset, unparseable strings and degenerate ratios
// (NaN, infinite or not positive) pass through unchanged.
func CalculateSize(d Dimension, ratio float64) Dimension {
	if ratio == 1 {
		return d
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return d
	}

	switch d.kind {
	case Number:
		return Num(scale(d.num, ratio))
	case Unit:
		m := unitSizeRe.FindStringSubmatch(d.str)
		if m == nil {
			return d
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return d
		}
		return Dimension{kind: Unit, str: formatNumber(scale(n, ratio)) + m[2]}
	default:
		return d
	}
}

func scale(v, ratio float64) float64 {
	return math.Round(v*ratio*sizePrecision) / sizePrecision
}
