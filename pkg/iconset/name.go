package iconset

import (
	"strings"

	"github.com/matzehuels/iconsvg/pkg/errors"
)

// Name identifies an icon.
type Name struct {
	Provider string `json:"provider,omitempty"`
	Prefix   string `json:"prefix"`
	Name     string `json:"name"`
}

// ParseName parses an icon name string.
func ParseName(s string) (Name, error) {
	var n Name
	parts := strings.Split(s, ":")

	if strings.HasPrefix(s, "@") {
		if len(parts) < 2 || len(parts) > 3 {
			return Name{}, errors.New(errors.ErrCodeInvalidIconName, "invalid icon name: %q", s)
		}
		n.Provider = parts[0][1:]
		parts = parts[1:]
	}

	switch len(parts) {
	case 3:
		n.Provider, n.Prefix, n.Name = parts[0], parts[1], parts[2]
	case 2:
		n.Prefix, n.Name = parts[0], parts[1]
	case 1:
		prefix, name, ok := strings.Cut(parts[0], "-")
		if !ok {
			return Name{}, errors.New(errors.ErrCodeInvalidIconName, "icon name %q has no prefix", s)
		}
		n.Prefix, n.Name = prefix, name
	default:
		return Name{}, errors.New(errors.ErrCodeInvalidIconName, "invalid icon name: %q", s)
	}

	if err := n.Validate(); err != nil {
		return Name{}, err
	}
	return n, nil
}

// Validate checks every part of the name.
func (n Name) Validate() error {
	if err := errors.ValidateProvider(n.Provider); err != nil {
		return err
	}
	if err := errors.ValidateIconPart("prefix", n.Prefix); err != nil {
		return err
	}
	return errors.ValidateIconPart("name", n.Name)
}

// String formats the name in its canonical form.
func (n Name) String() string {
	if n.Provider != "" {
		return "@" + n.Provider + ":" + n.Prefix + ":" + n.Name
	}
	return n.Prefix + ":" + n.Name
}
