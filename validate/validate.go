package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Patterns and bounds are exported for reuse (e.g., JSON Schema).
const (
	// ECLevelPattern accepts a single QR error correction letter in
	// either case; runtime validation normalizes to upper.
	ECLevelPattern = "^[LMQHlmqh]$"

	URLMin = 1
	URLMax = 2048

	WidthMin = 1
	WidthMax = 4096

	DefaultWidth   = 300
	DefaultECLevel = "M"
)

// Sentinel errors for classification by callers. ErrInvalidURL is
// sentence-cased because its text is surfaced verbatim to clients.
var (
	ErrInvalidURL     = errors.New("Invalid URL format")
	ErrInvalidWidth   = errors.New("invalid width")
	ErrInvalidECLevel = errors.New("invalid error correction level")
)

// ValidateSourceURL checks that s is an absolute http(s) URL with a host.
// Relative references, bare words, and scheme-only strings are rejected.
func ValidateSourceURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidURL)
	}
	if len(s) > URLMax {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidURL, URLMax)
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, s)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q is not supported (use http or https)", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, s)
	}
	return nil
}

// ValidateWidth checks the pixel dimension rule: WidthMin-WidthMax.
// The upper bound exists because the encoder allocates width^2 pixels.
func ValidateWidth(w int) error {
	if w < WidthMin || w > WidthMax {
		return fmt.Errorf("%w: %d (expected %d-%d pixels)", ErrInvalidWidth, w, WidthMin, WidthMax)
	}
	return nil
}

// NormalizeECLevel validates an error correction letter and returns its
// canonical upper-case form. Input is accepted in either case.
func NormalizeECLevel(s string) (string, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	switch norm {
	case "L", "M", "Q", "H":
		return norm, nil
	}
	return "", fmt.Errorf("%w: %q (expected L, M, Q, or H)", ErrInvalidECLevel, s)
}
