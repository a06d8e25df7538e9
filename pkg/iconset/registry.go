package iconset

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/observability"
	"github.com/matzehuels/iconsvg/pkg/svg"
)

type setKey struct {
	provider string
	prefix   string
}

// Registry holds icon sets keyed by provider and prefix.
// A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	sets map[setKey][]*Set
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[setKey][]*Set)}
}

// Add registers s. Several sets may share a prefix; later sets take
// precedence when they define the same icon.
func (r *Registry) Add(s *Set) {
	key := setKey{provider: s.Provider, prefix: s.Prefix}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[key] = append(r.sets[key], s)
}

// Lookup resolves n to icon geometry.
func (r *Registry) Lookup(n Name) (svg.Icon, error) {
	s, err := r.find(n)
	if err != nil {
		return svg.Icon{}, err
	}
	return s.Icon(n.Name)
}

// Exists reports whether n can be resolved.
func (r *Registry) Exists(n Name) bool {
	_, err := r.find(n)
	return err == nil
}

// Set returns the merged view of every set registered for provider and
// prefix, or false when none is.
func (r *Registry) Set(provider, prefix string) (*Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sets := r.sets[setKey{provider: provider, prefix: prefix}]
	switch len(sets) {
	case 0:
		return nil, false
	case 1:
		return sets[0], true
	}

	// Later sets win; each contributes its own resolved icons so that set
	// level defaults are not lost when merging.
	merged := &Set{Prefix: prefix, Provider: provider, Icons: make(map[string]IconData)}
	for _, s := range sets {
		for _, name := range s.Names() {
			icon, err := s.Icon(name)
			if err != nil {
				continue
			}
			merged.Icons[name] = fromIcon(icon)
		}
	}
	return merged, true
}

// Prefixes returns the names of all registered sets, formatted as
// "@provider:prefix" or "prefix", sorted.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.sets))
	for k := range r.sets {
		if k.provider != "" {
			out = append(out, "@"+k.provider+":"+k.prefix)
		} else {
			out = append(out, k.prefix)
		}
	}
	slices.Sort(out)
	return out
}

// LoadFile parses the icon set in path and registers it.
func (r *Registry) LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "icon set %s", path)
	}
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidIconSet, err, "load %s", path)
	}
	r.Add(s)
	observability.Render().OnIconLoad(context.Background(), "file", s.Prefix, len(s.Icons)+len(s.Aliases))
	return s, nil
}

// LoadDir registers every *.json icon set in dir and returns how many were
// loaded. Loading stops at the first invalid file.
func (r *Registry) LoadDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, err
	}
	slices.Sort(paths)
	for i, p := range paths {
		if _, err := r.LoadFile(p); err != nil {
			return i, err
		}
	}
	return len(paths), nil
}

// find returns the newest set for n that defines the icon.
func (r *Registry) find(n Name) (*Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sets, ok := r.sets[setKey{provider: n.Provider, prefix: n.Prefix}]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "icon set %s is not loaded", prefixString(n))
	}
	for i := len(sets) - 1; i >= 0; i-- {
		if sets[i].Has(n.Name) {
			return sets[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeIconNotFound, "icon %s not found", n)
}

func prefixString(n Name) string {
	if n.Provider != "" {
		return "@" + n.Provider + ":" + n.Prefix
	}
	return n.Prefix
}

// fromIcon converts resolved geometry back into stored icon data.
func fromIcon(i svg.Icon) IconData {
	d := IconData{
		Body:   i.Body,
		Left:   &i.Left,
		Top:    &i.Top,
		Width:  &i.Width,
		Height: &i.Height,
	}
	if i.Rotate != 0 {
		d.Rotate = &i.Rotate
	}
	if i.HFlip {
		d.HFlip = &i.HFlip
	}
	if i.VFlip {
		d.VFlip = &i.VFlip
	}
	return d
}
