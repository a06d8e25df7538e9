package iconset

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

// MaxAliasDepth is the longest alias chain [Set.Icon] follows.
const MaxAliasDepth = 6

// IconData is an icon as stored in a set. Nil fields are inherited.
type IconData struct {
	Body   string   `json:"body,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Top    *float64 `json:"top,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Rotate *int     `json:"rotate,omitempty"`
	HFlip  *bool    `json:"hFlip,omitempty"`
	VFlip  *bool    `json:"vFlip,omitempty"`
}

// AliasData is an icon defined in terms of a parent icon or alias.
type AliasData struct {
	Parent string `json:"parent"`
	IconData
}

// Set is an icon set.
type Set struct {
	Prefix   string               `json:"prefix"`
	Provider string               `json:"provider,omitempty"`
	Icons    map[string]IconData  `json:"icons"`
	Aliases  map[string]AliasData `json:"aliases,omitempty"`
	Left     *float64             `json:"left,omitempty"`
	Top      *float64             `json:"top,omitempty"`
	Width    *float64             `json:"width,omitempty"`
	Height   *float64             `json:"height,omitempty"`
	NotFound []string             `json:"not_found,omitempty"`
}

// Parse decodes and validates an icon set.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidIconSet, err, "decode icon set")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the prefix, icon and alias names, and that every alias
// parent exists.
func (s *Set) Validate() error {
	if err := errors.ValidateIconPart("prefix", s.Prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidIconSet, err, "invalid icon set")
	}
	if err := errors.ValidateProvider(s.Provider); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidIconSet, err, "invalid icon set %s", s.Prefix)
	}
	for name := range s.Icons {
		if err := errors.ValidateIconPart("name", name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidIconSet, err, "invalid icon in %s", s.Prefix)
		}
	}
	for name, a := range s.Aliases {
		if err := errors.ValidateIconPart("name", name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidIconSet, err, "invalid alias in %s", s.Prefix)
		}
		if _, ok := s.Icons[a.Parent]; ok {
			continue
		}
		if _, ok := s.Aliases[a.Parent]; !ok {
			return errors.New(errors.ErrCodeInvalidIconSet, "alias %s:%s has missing parent %q", s.Prefix, name, a.Parent)
		}
	}
	return nil
}

// Has reports whether the set defines name as an icon or alias.
func (s *Set) Has(name string) bool {
	if _, ok := s.Icons[name]; ok {
		return true
	}
	_, ok := s.Aliases[name]
	return ok
}

// Names returns all icon and alias names, sorted.
func (s *Set) Names() []string {
	names := slices.Collect(maps.Keys(s.Icons))
	for name := range s.Aliases {
		if _, dup := s.Icons[name]; !dup {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Icon resolves name, following aliases, into complete icon geometry.
func (s *Set) Icon(name string) (svg.Icon, error) {
	data, err := s.resolve(name)
	if err != nil {
		return svg.Icon{}, err
	}
	return s.complete(data), nil
}

// Parent returns the parent of an alias, or "" for icons and unknown names.
func (s *Set) Parent(name string) string {
	if _, ok := s.Icons[name]; ok {
		return ""
	}
	return s.Aliases[name].Parent
}

// resolve walks the alias chain down to an icon and merges the chain back
// up onto it.
func (s *Set) resolve(name string) (IconData, error) {
	var chain []IconData
	current := name
	for {
		if data, ok := s.Icons[current]; ok {
			for i := len(chain) - 1; i >= 0; i-- {
				data = mergeIconData(data, chain[i])
			}
			return data, nil
		}

		alias, ok := s.Aliases[current]
		if !ok {
			return IconData{}, errors.New(errors.ErrCodeIconNotFound, "icon %s:%s not found", s.Prefix, name)
		}
		if len(chain) >= MaxAliasDepth {
			return IconData{}, errors.New(errors.ErrCodeInvalidIconSet, "alias chain for %s:%s is too deep", s.Prefix, name)
		}
		chain = append(chain, alias.IconData)
		current = alias.Parent
	}
}

// mergeIconData applies child on top of parent. Explicit geometry and body
// override, rotations add up and flips toggle.
func mergeIconData(parent, child IconData) IconData {
	merged := parent
	if child.Body != "" {
		merged.Body = child.Body
	}
	if child.Left != nil {
		merged.Left = child.Left
	}
	if child.Top != nil {
		merged.Top = child.Top
	}
	if child.Width != nil {
		merged.Width = child.Width
	}
	if child.Height != nil {
		merged.Height = child.Height
	}
	if child.Rotate != nil {
		r := svg.NormalizeRotation(deref(parent.Rotate, 0) + *child.Rotate)
		merged.Rotate = &r
	}
	if child.HFlip != nil {
		f := deref(parent.HFlip, false) != *child.HFlip
		merged.HFlip = &f
	}
	if child.VFlip != nil {
		f := deref(parent.VFlip, false) != *child.VFlip
		merged.VFlip = &f
	}
	return merged
}

// complete fills in geometry from the set defaults and the global defaults.
func (s *Set) complete(d IconData) svg.Icon {
	return svg.Icon{
		Left:   deref(d.Left, deref(s.Left, svg.DefaultLeft)),
		Top:    deref(d.Top, deref(s.Top, svg.DefaultTop)),
		Width:  deref(d.Width, deref(s.Width, svg.DefaultWidth)),
		Height: deref(d.Height, deref(s.Height, svg.DefaultHeight)),
		Body:   d.Body,
		Rotate: deref(d.Rotate, 0),
		HFlip:  deref(d.HFlip, false),
		VFlip:  deref(d.VFlip, false),
	}
}

// Subset returns a set holding the requested names. Aliases bring their
// parent chain along; unknown names are listed in NotFound.
func (s *Set) Subset(names []string) *Set {
	sub := &Set{
		Prefix:   s.Prefix,
		Provider: s.Provider,
		Icons:    make(map[string]IconData),
		Left:     s.Left,
		Top:      s.Top,
		Width:    s.Width,
		Height:   s.Height,
	}

	for _, name := range names {
		if !s.Has(name) {
			sub.NotFound = append(sub.NotFound, name)
			continue
		}
		current := name
		for range MaxAliasDepth + 1 {
			if data, ok := s.Icons[current]; ok {
				sub.Icons[current] = data
				break
			}
			alias, ok := s.Aliases[current]
			if !ok {
				break
			}
			if sub.Aliases == nil {
				sub.Aliases = make(map[string]AliasData)
			}
			sub.Aliases[current] = alias
			current = alias.Parent
		}
	}
	return sub
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
