package svg

// Default icon geometry used when an icon definition leaves it out.
const (
	DefaultLeft   = 0
	DefaultTop    = 0
	DefaultWidth  = 16
	DefaultHeight = 16
)

// Icon is an icon definition with all geometry resolved.
//
// Rotate counts quarter turns and may be any integer; it is normalized
// modulo 4 when applied.
type Icon struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
	Body   string
	HFlip  bool
	VFlip  bool
	Rotate int
}

// NewIcon returns an icon with the default 16x16 box at the origin.
func NewIcon(body string) Icon {
	return Icon{
		Left:   DefaultLeft,
		Top:    DefaultTop,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Body:   body,
	}
}

// ViewBox returns a copy of the icon's intrinsic box.
func (i Icon) ViewBox() ViewBox {
	return ViewBox{Left: i.Left, Top: i.Top, Width: i.Width, Height: i.Height}
}

// Orientation returns the flip and rotation baked into the icon.
func (i Icon) Orientation() Orientation {
	return Orientation{HFlip: i.HFlip, VFlip: i.VFlip, Rotate: i.Rotate}
}

// ViewBox is the rectangle an icon body is drawn in.
type ViewBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// String formats the box as a viewBox attribute value.
func (b ViewBox) String() string {
	return formatNumber(b.Left) + " " + formatNumber(b.Top) + " " +
		formatNumber(b.Width) + " " + formatNumber(b.Height)
}

// Orientation is one source of flip and rotation: either the icon's baked-in
// transform or the caller's request.
type Orientation struct {
	HFlip  bool
	VFlip  bool
	Rotate int
}
