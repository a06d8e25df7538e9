package svg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var idAttrRe = regexp.MustCompile(`\sid="(\S+)"`)

// IDReplacer rewrites element IDs inside icon bodies so several copies of
// the same icon can live in one document without clashing gradients, masks or
// clip paths.
//
// Each replacer numbers IDs with its own counter. It is not safe for
// concurrent use.
type IDReplacer struct {
	prefix  string
	counter int
	newID   func(id string) string
}

// NewIDReplacer returns a replacer that renames IDs to prefix followed by a
// counter. An empty prefix is replaced by one derived from a random UUID.
func NewIDReplacer(prefix string) *IDReplacer {
	if prefix == "" {
		prefix = "svg" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + "-"
	}
	return &IDReplacer{prefix: prefix}
}

// NewIDReplacerFunc returns a replacer that asks fn for every new ID.
func NewIDReplacerFunc(fn func(id string) string) *IDReplacer {
	return &IDReplacer{newID: fn}
}

// Replace returns body with every declared ID and every reference to it
// (#id, url(#id), "id", ;id and id.begin style animation references)
// renamed.
func (r *IDReplacer) Replace(body string) string {
	matches := idAttrRe.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return body
	}

	// Renamed IDs carry a marker until every ID is processed so a new name
	// never matches a later pattern.
	marker := "~" + strings.ReplaceAll(uuid.NewString(), "-", "") + "~"
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true

		re := regexp.MustCompile(`([#;"])(` + regexp.QuoteMeta(id) + `)([")]|\.[a-z])`)
		body = re.ReplaceAllString(body, "${1}"+escapeDollar(r.next(id))+marker+"${3}")
	}
	return strings.ReplaceAll(body, marker, "")
}

func (r *IDReplacer) next(id string) string {
	if r.newID != nil {
		return r.newID(id)
	}
	n := r.counter
	r.counter++
	return r.prefix + strconv.Itoa(n)
}

func escapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
