package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

func testResult() svg.Result {
	icon := svg.Icon{Width: 24, Height: 24, Body: `<path fill="currentColor" d="M0 0h24v24H0z"/>`}
	return svg.Build(icon, svg.DefaultCustomisations())
}

func TestSVG(t *testing.T) {
	got, err := SVG(testResult())
	if err != nil {
		t.Fatal(err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" aria-hidden="true" role="img"` +
		` width="1em" height="1em" preserveAspectRatio="xMidYMid meet" viewBox="0 0 24 24">` +
		`<path fill="currentColor" d="M0 0h24v24H0z"/></svg>`
	if got != want {
		t.Errorf("SVG() =\n  %s\nwant\n  %s", got, want)
	}
}

func TestSVGInline(t *testing.T) {
	res := testResult()
	res.Inline = true
	got, _ := SVG(res)
	if !strings.Contains(got, `style="vertical-align: -0.125em"`) {
		t.Errorf("inline style missing: %s", got)
	}
}

func TestSVGOptions(t *testing.T) {
	res := testResult()
	res.Body = `<defs><linearGradient id="g"/></defs><path fill="url(#g)" stroke="currentColor"/>`

	got, err := SVG(res,
		WithColor("#ff0000"),
		WithIDs(svg.NewIDReplacer("icon-")),
		WithAttr("class", `big "icon"`),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`stroke="#ff0000"`,
		`id="icon-0"`,
		`url(#icon-0)`,
		`class="big &#34;icon&#34;"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestSVGInvalidColor(t *testing.T) {
	_, err := SVG(testResult(), WithColor(`red"/><script>`))
	if !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("expected INVALID_COLOR, got %v", err)
	}
}

func TestDataURL(t *testing.T) {
	got := URL(`<svg a="b">  <path d="M0 0" fill="#000"/>50%</svg>`)
	want := `url("data:image/svg+xml,%3Csvg a='b'%3E %3Cpath d='M0 0' fill='%23000'/%3E50%25%3C/svg%3E")`
	if got != want {
		t.Errorf("URL() =\n  %s\nwant\n  %s", got, want)
	}
}

func TestEncode(t *testing.T) {
	res := testResult()
	for _, format := range []string{FormatSVG, FormatHTML, FormatURL, FormatJSON, ""} {
		data, err := Encode(format, res)
		if err != nil {
			t.Errorf("Encode(%q): %v", format, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Encode(%q) returned no data", format)
		}
	}

	if _, err := Encode("png", res); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(png) error = %v", err)
	}
	if ValidFormat("png") || !ValidFormat("html") {
		t.Error("ValidFormat mismatch")
	}
}

func TestEncodeJSON(t *testing.T) {
	data, err := Encode(FormatJSON, testResult(), WithColor("blue"))
	if err != nil {
		t.Fatal(err)
	}
	var got svg.Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Attributes.ViewBox != "0 0 24 24" || !strings.Contains(got.Body, `fill="blue"`) {
		t.Errorf("decoded = %+v", got)
	}
}
