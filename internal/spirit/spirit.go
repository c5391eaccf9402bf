// Package spirit maps a finished reflection set onto a "spirit animal"
// archetype by calling a hosted generative model and strictly validating
// the reply against the configured enumeration.
package spirit

import (
	"errors"
	"strings"
)

// Descriptive text fields longer than MaxFieldChars are hard-truncated to
// TruncateAt characters plus an ellipsis.
const (
	MaxFieldChars = 700
	TruncateAt    = 697
	Ellipsis      = "…"
)

// Adapter failures. Callers match with errors.Is; every returned error
// wraps exactly one of these.
var (
	// ErrConfiguration means the adapter cannot run at all (missing API key).
	ErrConfiguration = errors.New("spirit: not configured")

	// ErrInvalidInput means the caller-supplied input is unusable
	// (no reflections, or a key unsafe to place in a transport header).
	ErrInvalidInput = errors.New("spirit: invalid input")

	// ErrResponseFormat means the model reply could not be parsed.
	ErrResponseFormat = errors.New("spirit: malformed response")

	// ErrInvalidCategory means the reply named an animal outside the
	// configured enumeration.
	ErrInvalidCategory = errors.New("spirit: invalid animal")
)

// Recommendation is the validated result of one adapter call. Two prose
// versions in two languages, plus trait scores out of 100.
type Recommendation struct {
	Animal     string         `json:"animal"`
	Title      string         `json:"title"`
	Version1En string         `json:"version1En"`
	Version1Th string         `json:"version1Th"`
	Version2En string         `json:"version2En"`
	Version2Th string         `json:"version2Th"`
	Stats      map[string]int `json:"stats"`
}

// TruncateField trims s and hard-truncates it to the field cap, appending
// the ellipsis marker when the source exceeded the cap.
func TruncateField(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= MaxFieldChars {
		return s
	}
	return string(r[:TruncateAt]) + Ellipsis
}
