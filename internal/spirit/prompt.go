package spirit

import (
	"fmt"
	"strings"

	"lantern/internal/config"
	"lantern/internal/journal"
)

// BuildPrompt formats the reflection set into the instructional prompt sent
// to the model. The archetype catalog and trait names come from
// configuration, not from this package.
func BuildPrompt(reflections []journal.Reflection, animals []config.AnimalSpec, traits []string) string {
	names := make([]string, 0, len(animals))
	for _, a := range animals {
		names = append(names, a.Name)
	}

	var summary strings.Builder
	for i, r := range reflections {
		if i > 0 {
			summary.WriteString("\n\n")
		}
		fmt.Fprintf(&summary, "%d. Topic: %s\n   Reflection: %s", i+1, r.Topic, r.Text)
		if r.Rating > 0 {
			fmt.Fprintf(&summary, "\n   Self-rating: %d/10", r.Rating)
		}
	}

	var archetypes strings.Builder
	for i, a := range animals {
		fmt.Fprintf(&archetypes, "%d. %s -> %q: %s\n", i+1, a.Name, a.Title, a.Archetype)
	}

	titleCased := make([]string, len(traits))
	for i, tr := range traits {
		titleCased[i] = strings.ToUpper(tr[:1]) + tr[1:]
	}

	var statFields strings.Builder
	for i, tr := range traits {
		if i > 0 {
			statFields.WriteString(",\n")
		}
		fmt.Fprintf(&statFields, "    %q: \"number (0-100)\"", tr)
	}

	return fmt.Sprintf(`Based on these year reflections from a person, choose ONE animal from this list that best represents them in an "Office Ecosystem" context: %s.

Reflections:
%s

THE CONCEPT: "The Reflection Styles"
Analyze their text to see how they handled stress, wins, and teamwork. We want to assign them a reflection style archetype using an animal.

Archetypes (Choose ONE of these %d):
%s
TASK:
1. Analyze the reflections for personality, achievements, challenges, and teamwork style.
2. Pick the ONE animal that best fits.
3. Create 4 output versions. ALL versions must start with the Archetype Title (e.g. "The <Title>: ...").
4. Assign a score (0-100) for each of these traits: %s.

- Version 1 (English): Focus on their ROLE and IMPACT in the team.
- Version 1 (Thai): Thai translation of Version 1.
- Version 2 (English): Focus on their PERSONALITY and VIBE.
- Version 2 (Thai): Thai translation of Version 2.

Each explanation should be punchy, cute, and shareable (approx 300-400 characters).

Respond with a JSON object strictly following this structure:
{
  "animal": "One of: %s",
  "title": "string",
  "version1En": "string (Archetype Title: Explanation)",
  "version1Th": "string (Archetype Title: Explanation)",
  "version2En": "string (Archetype Title: Explanation)",
  "version2Th": "string (Archetype Title: Explanation)",
  "stats": {
%s
  }
}`,
		strings.Join(names, ", "),
		summary.String(),
		len(animals),
		archetypes.String(),
		strings.Join(titleCased, ", "),
		strings.Join(names, ", "),
		statFields.String(),
	)
}
