package errors

import (
	"regexp"
	"strings"
)

// iconPartRe matches a provider, prefix or icon name: lower-case
// alphanumeric words joined by single dashes.
var iconPartRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// maxNameLength bounds every part of an icon name.
const maxNameLength = 128

// ValidateIconPart validates one part of an icon name. kind names the part
// in the error message ("provider", "prefix" or "name").
func ValidateIconPart(kind, part string) error {
	if part == "" {
		return New(ErrCodeInvalidIconName, "icon %s cannot be empty", kind)
	}
	if len(part) > maxNameLength {
		return New(ErrCodeInvalidIconName, "icon %s too long (max %d characters)", kind, maxNameLength)
	}
	if !iconPartRe.MatchString(part) {
		return New(ErrCodeInvalidIconName, "invalid icon %s: %q", kind, part)
	}
	return nil
}

// ValidateProvider validates an API provider name. The empty string is the
// default provider and is valid.
func ValidateProvider(provider string) error {
	if provider == "" {
		return nil
	}
	return ValidateIconPart("provider", provider)
}

var (
	hexColorRe   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorRe  = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\([0-9., %]+\)$`)
	namedColorRe = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// ValidateColor validates a color substituted for currentColor in icon
// bodies. It accepts hex colors, rgb()/hsl() functions and keyword names,
// and rejects anything that could break out of an attribute value.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if len(color) > 64 {
		return New(ErrCodeInvalidColor, "color too long (max 64 characters)")
	}
	if hexColorRe.MatchString(color) || funcColorRe.MatchString(color) || namedColorRe.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color: %q", color)
}

// ValidateURL validates a provider base URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
