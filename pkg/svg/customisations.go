package svg

// HAlign is the horizontal alignment of the icon within its viewport.
type HAlign string

// VAlign is the vertical alignment of the icon within its viewport.
type VAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"

	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "middle"
	AlignBottom VAlign = "bottom"
)

// Customisations is the caller's rendering intent, already normalized.
//
// Unset Width and Height are derived from the box aspect ratio. Alignment
// values other than the declared constants, including the empty string,
// behave as center and middle.
type Customisations struct {
	Width  Dimension
	Height Dimension
	HFlip  bool
	VFlip  bool
	Rotate int
	HAlign HAlign
	VAlign VAlign
	Slice  bool
	Inline bool
}

// DefaultCustomisations returns centered alignment, no flip, no rotation,
// unset sizes, meet scaling and block display.
func DefaultCustomisations() Customisations {
	return Customisations{
		HAlign: AlignCenter,
		VAlign: AlignMiddle,
	}
}

// Orientation returns the flip and rotation requested by the caller.
func (c Customisations) Orientation() Orientation {
	return Orientation{HFlip: c.HFlip, VFlip: c.VFlip, Rotate: c.Rotate}
}

// PreserveAspectRatio returns the preserveAspectRatio attribute value for
// the requested alignment and scaling.
func (c Customisations) PreserveAspectRatio() string {
	var x string
	switch c.HAlign {
	case AlignLeft:
		x = "xMin"
	case AlignRight:
		x = "xMax"
	default:
		x = "xMid"
	}

	var y string
	switch c.VAlign {
	case AlignTop:
		y = "YMin"
	case AlignBottom:
		y = "YMax"
	default:
		y = "YMid"
	}

	if c.Slice {
		return x + y + " slice"
	}
	return x + y + " meet"
}
