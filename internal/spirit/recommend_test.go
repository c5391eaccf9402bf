package spirit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"lantern/internal/config"
	"lantern/internal/journal"
)

func testSpiritConfig(key string) config.SpiritConfig {
	return config.SpiritConfig{
		APIKey:      key,
		Model:       "gemini-flash-lite-latest",
		Temperature: 0.7,
		Animals:     testAnimals,
		Traits:      testTraits,
	}
}

var oneReflection = []journal.Reflection{
	{ID: "1", Topic: "Gratitude", Text: "I am grateful for my team.", Rating: 8},
}

// Precondition failures must be detected before any network traffic.

func TestRecommendMissingKey(t *testing.T) {
	r := NewRecommender(testSpiritConfig(""), nil)
	rec, err := r.Recommend(context.Background(), oneReflection)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRecommendWhitespaceKey(t *testing.T) {
	r := NewRecommender(testSpiritConfig("   "), nil)
	_, err := r.Recommend(context.Background(), oneReflection)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRecommendEmptyReflections(t *testing.T) {
	r := NewRecommender(testSpiritConfig("valid-key"), nil)
	rec, err := r.Recommend(context.Background(), nil)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommendNonASCIIKey(t *testing.T) {
	r := NewRecommender(testSpiritConfig("คีย์ลับ"), nil)
	_, err := r.Recommend(context.Background(), oneReflection)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsASCII(t *testing.T) {
	assert.True(t, isASCII("AIzaSy-example_123"))
	assert.False(t, isASCII("ключ"))
	assert.False(t, isASCII("key…"))
}
