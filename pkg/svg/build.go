package svg

import "strings"

// Attributes are the attributes of the outer <svg> element.
type Attributes struct {
	Width               string `json:"width"`
	Height              string `json:"height"`
	PreserveAspectRatio string `json:"preserveAspectRatio"`
	ViewBox             string `json:"viewBox"`
}

// Result is the output of [Build].
//
// Inline asks the renderer to add a vertical-align style so the icon sits on
// the text baseline; Build never writes styles itself.
type Result struct {
	Attributes Attributes `json:"attributes"`
	Body       string     `json:"body"`
	Inline     bool       `json:"inline,omitempty"`
}

// Build applies c to icon and returns the <svg> attributes and body.
// Neither argument is modified.
func Build(icon Icon, c Customisations) Result {
	box := icon.ViewBox()
	body := icon.Body

	// Icon orientation first, then the caller's, on the same evolving box.
	for _, o := range [...]Orientation{icon.Orientation(), c.Orientation()} {
		box, body = applyOrientation(box, body, o)
	}

	width, height := resolveSize(box, c.Width, c.Height)

	return Result{
		Attributes: Attributes{
			Width:               width,
			Height:              height,
			PreserveAspectRatio: c.PreserveAspectRatio(),
			ViewBox:             box.String(),
		},
		Body:   body,
		Inline: c.Inline,
	}
}

// NormalizeRotation maps any quarter-turn count into [0, 4).
func NormalizeRotation(rotate int) int {
	rotate %= 4
	if rotate < 0 {
		rotate += 4
	}
	return rotate
}

// applyOrientation runs one flip-then-rotate pass and returns the adjusted
// box and body.
func applyOrientation(box ViewBox, body string, o Orientation) (ViewBox, string) {
	var transforms []string
	rotate := o.Rotate

	switch {
	case o.HFlip && o.VFlip:
		rotate += 2
	case o.HFlip:
		transforms = append(transforms,
			"translate("+formatNumber(box.Width+box.Left)+" "+formatNumber(0-box.Top)+")",
			"scale(-1 1)")
		box.Left, box.Top = 0, 0
	case o.VFlip:
		transforms = append(transforms,
			"translate("+formatNumber(0-box.Left)+" "+formatNumber(box.Height+box.Top)+")",
			"scale(1 -1)")
		box.Left, box.Top = 0, 0
	}

	rotate = NormalizeRotation(rotate)
	if r := rotation(box, rotate); r != "" {
		transforms = append([]string{r}, transforms...)
	}

	if rotate%2 == 1 {
		if box.Left != 0 || box.Top != 0 {
			box.Left, box.Top = box.Top, box.Left
		}
		box.Width, box.Height = box.Height, box.Width
	}

	if len(transforms) > 0 {
		body = `<g transform="` + strings.Join(transforms, " ") + `">` + body + `</g>`
	}
	return box, body
}

// rotation returns the rotate() transform for a normalized quarter-turn
// count, or "" for no rotation.
func rotation(box ViewBox, rotate int) string {
	switch rotate {
	case 1:
		c := formatNumber(box.Height/2 + box.Top)
		return "rotate(90 " + c + " " + c + ")"
	case 2:
		return "rotate(180 " + formatNumber(box.Width/2+box.Left) + " " + formatNumber(box.Height/2+box.Top) + ")"
	case 3:
		c := formatNumber(box.Width/2 + box.Left)
		return "rotate(-90 " + c + " " + c + ")"
	default:
		return ""
	}
}

// resolveSize settles the final width and height attribute values.
func resolveSize(box ViewBox, width, height Dimension) (string, string) {
	switch {
	case !width.IsSet() && !height.IsSet():
		height = Str("1em")
		width = CalculateSize(height, box.Width/box.Height)
	case width.IsSet() && height.IsSet():
	case height.IsSet():
		width = CalculateSize(height, box.Width/box.Height)
	default:
		height = CalculateSize(width, box.Height/box.Width)
	}

	if width.Kind() == Auto {
		width = Num(box.Width)
	}
	if height.Kind() == Auto {
		height = Num(box.Height)
	}
	return width.String(), height.String()
}
