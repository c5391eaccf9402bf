package spirit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lantern/internal/config"
)

var testAnimals = []config.AnimalSpec{
	{Name: "Capybara", Title: "The Zen Reflection"},
	{Name: "RiverOtter", Title: "The Memory Collector"},
	{Name: "Owl", Title: "The Big Picture"},
	{Name: "Beaver", Title: "The Achievement Review"},
}

var testTraits = []string{"execution", "strategy", "resilience", "connection"}

func jsonReply(animal string) string {
	return fmt.Sprintf(`{
		"animal": %q,
		"title": "The Big Picture",
		"version1En": "The Big Picture: you zoom out.",
		"version1Th": "ภาพรวม: คุณมองภาพกว้าง",
		"version2En": "The Big Picture: calm strategist vibes.",
		"version2Th": "ภาพรวม: สายกลยุทธ์สุดชิล",
		"stats": {"execution": 70, "strategy": 95, "resilience": 80, "connection": 60}
	}`, animal)
}

func TestParseJSON(t *testing.T) {
	rec, err := Parse(jsonReply("Owl"), testAnimals, testTraits)
	require.NoError(t, err)

	assert.Equal(t, "Owl", rec.Animal)
	assert.Equal(t, "The Big Picture", rec.Title)
	assert.Equal(t, 95, rec.Stats["strategy"])
	assert.Len(t, rec.Stats, 4)
}

func TestParseJSONCaseInsensitiveAnimal(t *testing.T) {
	rec, err := Parse(jsonReply("riverotter"), testAnimals, testTraits)
	require.NoError(t, err)
	// Canonical casing from the enumeration, not the reply.
	assert.Equal(t, "RiverOtter", rec.Animal)
}

func TestParseInvalidCategory(t *testing.T) {
	rec, err := Parse(jsonReply("Dragon"), testAnimals, testTraits)
	assert.Nil(t, rec)
	require.ErrorIs(t, err, ErrInvalidCategory)
	assert.Contains(t, err.Error(), "Dragon")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse(`{"animal": "Owl",`, testAnimals, testTraits)
	assert.ErrorIs(t, err, ErrResponseFormat)
}

func TestParseFencedJSON(t *testing.T) {
	fenced := "```json\n" + jsonReply("Owl") + "\n```"
	rec, err := Parse(fenced, testAnimals, testTraits)
	require.NoError(t, err)
	assert.Equal(t, "Owl", rec.Animal)
}

func TestParseNonNumericStat(t *testing.T) {
	reply := `{
		"animal": "Owl",
		"version1En": "a", "version1Th": "b", "version2En": "c", "version2Th": "d",
		"stats": {"execution": "plenty", "strategy": 1, "resilience": 1, "connection": 1}
	}`
	_, err := Parse(reply, testAnimals, testTraits)
	assert.ErrorIs(t, err, ErrResponseFormat)
}

func TestParseMissingStat(t *testing.T) {
	reply := `{
		"animal": "Owl",
		"version1En": "a", "version1Th": "b", "version2En": "c", "version2Th": "d",
		"stats": {"execution": 1, "strategy": 1, "resilience": 1}
	}`
	_, err := Parse(reply, testAnimals, testTraits)
	require.ErrorIs(t, err, ErrResponseFormat)
	assert.Contains(t, err.Error(), "connection")
}

func TestParseDefaultTitle(t *testing.T) {
	reply := `{
		"animal": "Beaver",
		"version1En": "a", "version1Th": "b", "version2En": "c", "version2Th": "d",
		"stats": {"execution": 1, "strategy": 1, "resilience": 1, "connection": 1}
	}`
	rec, err := Parse(reply, testAnimals, testTraits)
	require.NoError(t, err)
	assert.Equal(t, "The Beaver", rec.Title)
}

func TestParseTruncatesLongFields(t *testing.T) {
	long := strings.Repeat("x", 800)
	reply := fmt.Sprintf(`{
		"animal": "Owl",
		"version1En": %q, "version1Th": "b", "version2En": "c", "version2Th": "d",
		"stats": {"execution": 1, "strategy": 1, "resilience": 1, "connection": 1}
	}`, long)

	rec, err := Parse(reply, testAnimals, testTraits)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(rec.Version1En)), MaxFieldChars)
	assert.True(t, strings.HasSuffix(rec.Version1En, Ellipsis))
}

func TestParseLabeledFormat(t *testing.T) {
	reply := `Animal: Capybara
Title: The Zen Reflection
Version1_EN: The Zen Reflection: steady and calm all year.
Version1_TH: สายเซน: นิ่งและสงบตลอดปี
Version2_EN: The Zen Reflection: unbothered, hydrated, thriving.
Version2_TH: สายเซน: ชิลสุด ๆ
Stats: Execution=60, Strategy=55, Resilience=90, Connection=75`

	rec, err := Parse(reply, testAnimals, testTraits)
	require.NoError(t, err)
	assert.Equal(t, "Capybara", rec.Animal)
	assert.Equal(t, "The Zen Reflection", rec.Title)
	assert.Equal(t, 90, rec.Stats["resilience"])
}

func TestParseLabeledMissingMarker(t *testing.T) {
	reply := `Animal: Capybara
Version1_EN: a
Version1_TH: b
Version2_EN: c
Stats: Execution=60, Strategy=55, Resilience=90, Connection=75`

	_, err := Parse(reply, testAnimals, testTraits)
	require.ErrorIs(t, err, ErrResponseFormat)
	assert.Contains(t, err.Error(), "Version2_TH:")
}

func TestTruncateField(t *testing.T) {
	t.Run("short fields pass through trimmed", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateField("  hello  "))
	})

	t.Run("length 800 truncates to cap with ellipsis", func(t *testing.T) {
		out := TruncateField(strings.Repeat("y", 800))
		assert.Equal(t, TruncateAt+1, len([]rune(out)))
		assert.True(t, strings.HasSuffix(out, Ellipsis))
	})

	t.Run("exactly at cap is untouched", func(t *testing.T) {
		in := strings.Repeat("z", MaxFieldChars)
		assert.Equal(t, in, TruncateField(in))
	})
}

func TestErrorsAreTyped(t *testing.T) {
	_, err := Parse("", testAnimals, testTraits)
	assert.True(t, errors.Is(err, ErrResponseFormat))
}
