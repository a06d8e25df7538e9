package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

// Output formats accepted by [Encode].
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatURL  = "url"
	FormatJSON = "json"
)

// inlineStyle aligns an inline icon with the text baseline.
const inlineStyle = "vertical-align: -0.125em"

// Option configures markup rendering.
type Option func(*renderer)

type renderer struct {
	color string
	ids   *svg.IDReplacer
	attrs [][2]string
}

// WithColor replaces currentColor in the body with color.
func WithColor(color string) Option { return func(r *renderer) { r.color = color } }

// WithIDs rewrites body IDs with r.
func WithIDs(r *svg.IDReplacer) Option { return func(rr *renderer) { rr.ids = r } }

// WithAttr adds an attribute to the <svg> element.
func WithAttr(key, value string) Option {
	return func(r *renderer) { r.attrs = append(r.attrs, [2]string{key, value}) }
}

// Body returns the body of res with color and ID options applied.
func Body(res svg.Result, opts ...Option) (string, error) {
	r := newRenderer(opts...)
	return r.body(res)
}

// SVG renders res as a standalone <svg> element.
func SVG(res svg.Result, opts ...Option) (string, error) {
	r := newRenderer(opts...)
	body, err := r.body(res)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" aria-hidden="true" role="img"`)
	writeAttr(&b, "width", res.Attributes.Width)
	writeAttr(&b, "height", res.Attributes.Height)
	writeAttr(&b, "preserveAspectRatio", res.Attributes.PreserveAspectRatio)
	writeAttr(&b, "viewBox", res.Attributes.ViewBox)
	if res.Inline {
		writeAttr(&b, "style", inlineStyle)
	}
	for _, kv := range r.attrs {
		writeAttr(&b, kv[0], kv[1])
	}
	b.WriteString(">")
	b.WriteString(body)
	b.WriteString("</svg>")
	return b.String(), nil
}

// HTML renders res as an HTML fragment wrapped in a span carrying the
// iconify class, ready to paste into a page.
func HTML(res svg.Result, opts ...Option) (string, error) {
	markup, err := SVG(res, opts...)
	if err != nil {
		return "", err
	}
	return `<span class="iconify">` + markup + `</span>`, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// DataURL encodes markup as a data: URL.
func DataURL(markup string) string {
	return "data:image/svg+xml," + encodeForURL(markup)
}

// URL wraps [DataURL] in a CSS url() expression.
func URL(markup string) string {
	return `url("` + DataURL(markup) + `")`
}

// encodeForURL escapes the few characters that break data URLs and folds
// whitespace. Double quotes become single quotes so the result can sit inside
// a double quoted CSS string.
func encodeForURL(markup string) string {
	markup = strings.ReplaceAll(markup, `"`, "'")
	markup = strings.NewReplacer("%", "%25", "#", "%23", "<", "%3C", ">", "%3E").Replace(markup)
	return whitespaceRe.ReplaceAllString(markup, " ")
}

// Encode renders res in the named format.
func Encode(format string, res svg.Result, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG, "":
		s, err := SVG(res, opts...)
		return []byte(s), err
	case FormatHTML:
		s, err := HTML(res, opts...)
		return []byte(s), err
	case FormatURL:
		s, err := SVG(res, opts...)
		if err != nil {
			return nil, err
		}
		return []byte(URL(s)), nil
	case FormatJSON:
		return encodeJSON(res, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s (must be 'svg', 'html', 'url' or 'json')", format)
	}
}

// ValidFormat reports whether [Encode] understands format.
func ValidFormat(format string) bool {
	switch format {
	case FormatSVG, FormatHTML, FormatURL, FormatJSON:
		return true
	}
	return false
}

func newRenderer(opts ...Option) renderer {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *renderer) body(res svg.Result) (string, error) {
	body := res.Body
	if r.color != "" {
		if err := errors.ValidateColor(r.color); err != nil {
			return "", err
		}
		body = strings.ReplaceAll(body, "currentColor", r.color)
	}
	if r.ids != nil {
		body = r.ids.Replace(body)
	}
	return body, nil
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
