// Package journal defines the reflection data model and the validation
// rules shared by the wizard controller and the TUI.
package journal

import (
	"strings"
)

// Limits for user-entered content. Text and topic caps are enforced by
// truncation at the input layer and re-checked on submission.
const (
	MaxTextChars  = 180
	MaxTopicChars = 60
	MinRating     = 1
	MaxRating     = 10
)

// Reflection is one answered prompt: a topic, the user's short text, and a
// 1-10 self-rating. A zero rating means "not yet rated".
type Reflection struct {
	ID     string `json:"id"`
	Topic  string `json:"topic"`
	Text   string `json:"text"`
	Rating int    `json:"rating,omitempty"`
}

// ClampText truncates s to at most MaxTextChars characters. Runes, not
// bytes, so Thai input is not cut mid-character.
func ClampText(s string) string {
	return clampRunes(s, MaxTextChars)
}

// ClampTopic truncates s to at most MaxTopicChars characters.
func ClampTopic(s string) string {
	return clampRunes(s, MaxTopicChars)
}

func clampRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// ValidText reports whether text is submittable: non-empty after trimming
// and within the character cap.
func ValidText(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && len([]rune(trimmed)) <= MaxTextChars
}

// ValidRating reports whether rating is a committed value in [1,10].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// UsedTopics returns the set of topics already present in reflections.
func UsedTopics(reflections []Reflection) map[string]bool {
	used := make(map[string]bool, len(reflections))
	for _, r := range reflections {
		used[r.Topic] = true
	}
	return used
}

// AvailableTopics filters catalog down to topics not yet answered,
// preserving catalog order, returning at most limit entries. A limit <= 0
// means no limit.
func AvailableTopics(catalog []string, reflections []Reflection, limit int) []string {
	used := UsedTopics(reflections)
	var available []string
	for _, topic := range catalog {
		if used[topic] {
			continue
		}
		available = append(available, topic)
		if limit > 0 && len(available) == limit {
			break
		}
	}
	return available
}

// IndexOf returns the position of the reflection with the given id, or -1.
func IndexOf(reflections []Reflection, id string) int {
	for i, r := range reflections {
		if r.ID == id {
			return i
		}
	}
	return -1
}
