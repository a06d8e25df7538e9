package svg

import "testing"

func TestCalculateSize(t *testing.T) {
	tests := []struct {
		name  string
		in    Dimension
		ratio float64
		want  string
	}{
		{"ratio one keeps number", Num(16), 1, "16"},
		{"ratio one keeps string", Str("1.50000em"), 1, "1.50000em"},
		{"number", Num(48), 1.25, "60"},
		{"number rounded", Num(1), 1.0 / 3, "0.3333"},
		{"em", Str("1em"), 0.8, "0.8em"},
		{"px", Str("40px"), 0.8, "32px"},
		{"bare numeric string", Str("32"), 1.25, "40"},
		{"percent", Str("50%"), 2, "100%"},
		{"negative", Str("-2px"), 1.5, "-3px"},
		{"leading dot", Str(".5em"), 2, "1em"},
		{"auto", AutoSize(), 2, "auto"},
		{"unset", Dimension{}, 2, ""},
		{"not a number", Str("inherit"), 2, "inherit"},
		{"calc passes through", Str("calc(1em + 2px)"), 2, "calc(1em + 2px)"},
		{"two dots", Str("1.5.3px"), 2, "1.5.3px"},
		{"zero ratio", Num(16), 0, "16"},
		{"infinite ratio", Str("1em"), 1.0 / zero(), "1em"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateSize(tt.in, tt.ratio).String()
			if got != tt.want {
				t.Errorf("CalculateSize(%q, %v) = %q, want %q", tt.in, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestCalculateSizeRatioOneIsIdentity(t *testing.T) {
	for _, d := range []Dimension{Num(16), Num(0.1 + 0.2), Str("1em"), Str("12.000px"), Str("weird"), AutoSize()} {
		if got := CalculateSize(d, 1); got != d {
			t.Errorf("CalculateSize(%q, 1) = %q, want unchanged", d, got)
		}
	}
}

func TestCalculateSizeKeepsKind(t *testing.T) {
	if k := CalculateSize(Num(10), 2).Kind(); k != Number {
		t.Errorf("number scaled to kind %v", k)
	}
	if k := CalculateSize(Str("10px"), 2).Kind(); k != Unit {
		t.Errorf("unit scaled to kind %v", k)
	}
}

func zero() float64 { return 0 }
