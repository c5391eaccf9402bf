package spirit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lantern/internal/config"
)

// rawRecommendation is the wire shape before validation. Stats values stay
// untyped so non-numeric replies can be rejected explicitly.
type rawRecommendation struct {
	Animal     string         `json:"animal"`
	Title      string         `json:"title"`
	Version1En string         `json:"version1En"`
	Version1Th string         `json:"version1Th"`
	Version2En string         `json:"version2En"`
	Version2Th string         `json:"version2Th"`
	Stats      map[string]any `json:"stats"`
}

// Parse turns a complete model reply into a validated Recommendation.
// Two response shapes are supported: a JSON document (current prompt) and
// the older labeled plain-text block. JSON is tried first; replies that are
// neither fail with ErrResponseFormat.
func Parse(reply string, animals []config.AnimalSpec, traits []string) (*Recommendation, error) {
	reply = stripFences(strings.TrimSpace(reply))
	if reply == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrResponseFormat)
	}

	var raw *rawRecommendation
	var err error
	if strings.HasPrefix(reply, "{") {
		raw, err = parseJSON(reply)
	} else {
		raw, err = parseLabeled(reply)
	}
	if err != nil {
		return nil, err
	}

	return validate(raw, animals, traits)
}

func parseJSON(reply string) (*rawRecommendation, error) {
	var raw rawRecommendation
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrResponseFormat, err)
	}
	return &raw, nil
}

// Labeled plain-text markers used by earlier prompt revisions. Each field
// runs until the next marker or end of text.
var labeledMarkers = []string{
	"Animal:",
	"Title:",
	"Version1_EN:",
	"Version1_TH:",
	"Version2_EN:",
	"Version2_TH:",
	"Stats:",
}

// Title: is the only optional marker.
var requiredMarkers = []string{
	"Animal:", "Version1_EN:", "Version1_TH:", "Version2_EN:", "Version2_TH:", "Stats:",
}

var statPairPattern = regexp.MustCompile(`(?i)([a-z_]+)\s*[:=]\s*(-?\d+)`)

func parseLabeled(reply string) (*rawRecommendation, error) {
	fields := make(map[string]string, len(labeledMarkers))
	for _, marker := range labeledMarkers {
		start := strings.Index(reply, marker)
		if start < 0 {
			continue
		}
		rest := reply[start+len(marker):]
		end := len(rest)
		for _, next := range labeledMarkers {
			if next == marker {
				continue
			}
			if i := strings.Index(rest, next); i >= 0 && i < end {
				end = i
			}
		}
		fields[marker] = strings.TrimSpace(rest[:end])
	}

	for _, marker := range requiredMarkers {
		if _, ok := fields[marker]; !ok {
			return nil, fmt.Errorf("%w: missing %q marker", ErrResponseFormat, marker)
		}
	}

	stats := make(map[string]any)
	for _, m := range statPairPattern.FindAllStringSubmatch(fields["Stats:"], -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		stats[strings.ToLower(m[1])] = n
	}

	return &rawRecommendation{
		Animal:     fields["Animal:"],
		Title:      fields["Title:"],
		Version1En: fields["Version1_EN:"],
		Version1Th: fields["Version1_TH:"],
		Version2En: fields["Version2_EN:"],
		Version2Th: fields["Version2_TH:"],
		Stats:      stats,
	}, nil
}

func validate(raw *rawRecommendation, animals []config.AnimalSpec, traits []string) (*Recommendation, error) {
	animal, ok := matchAnimal(raw.Animal, animals)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in the configured set", ErrInvalidCategory, raw.Animal)
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = "The " + animal
	}

	stats := make(map[string]int, len(traits))
	for _, trait := range traits {
		value, ok := lookupStat(raw.Stats, trait)
		if !ok {
			return nil, fmt.Errorf("%w: missing stat %q", ErrResponseFormat, trait)
		}
		n, err := coerceStat(value)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %q: %v", ErrResponseFormat, trait, err)
		}
		stats[trait] = n
	}

	return &Recommendation{
		Animal:     animal,
		Title:      title,
		Version1En: TruncateField(raw.Version1En),
		Version1Th: TruncateField(raw.Version1Th),
		Version2En: TruncateField(raw.Version2En),
		Version2Th: TruncateField(raw.Version2Th),
		Stats:      stats,
	}, nil
}

// matchAnimal resolves the reply's animal case-insensitively to the
// canonical name from the configured enumeration.
func matchAnimal(name string, animals []config.AnimalSpec) (string, bool) {
	name = strings.TrimSpace(name)
	for _, a := range animals {
		if strings.EqualFold(a.Name, name) {
			return a.Name, true
		}
	}
	return "", false
}

func lookupStat(stats map[string]any, trait string) (any, bool) {
	if v, ok := stats[trait]; ok {
		return v, true
	}
	for key, v := range stats {
		if strings.EqualFold(key, trait) {
			return v, true
		}
	}
	return nil, false
}

func coerceStat(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("non-integer value %q", n.String())
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", v)
	}
}

// stripFences removes a surrounding markdown code fence, which some model
// revisions wrap around JSON replies despite the MIME hint.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
