package spirit

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"lantern/internal/config"
	"lantern/internal/journal"
)

// Recommender calls the Gemini API and returns a validated Recommendation.
// It never retries; the caller decides whether to re-invoke.
type Recommender struct {
	cfg config.SpiritConfig
	log *zap.Logger
}

// NewRecommender creates a recommender from the spirit configuration.
func NewRecommender(cfg config.SpiritConfig, log *zap.Logger) *Recommender {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recommender{cfg: cfg, log: log}
}

// Recommend sends the reflection set to the model and parses the reply.
// The streamed response is fully accumulated before parsing; a partial
// stream is never surfaced.
func (r *Recommender) Recommend(ctx context.Context, reflections []journal.Reflection) (*Recommendation, error) {
	apiKey := strings.TrimSpace(r.cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", ErrConfiguration)
	}
	if len(reflections) == 0 {
		return nil, fmt.Errorf("%w: no reflections provided", ErrInvalidInput)
	}
	if !isASCII(apiKey) {
		return nil, fmt.Errorf("%w: API key contains invalid characters", ErrInvalidInput)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	prompt := BuildPrompt(reflections, r.cfg.Animals, r.cfg.Traits)
	genCfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(r.cfg.Temperature)),
		ResponseMIMEType: "application/json",
	}

	r.log.Debug("requesting spirit animal recommendation",
		zap.String("model", r.cfg.Model),
		zap.Int("reflections", len(reflections)))

	var reply strings.Builder
	for resp, err := range client.Models.GenerateContentStream(ctx, r.cfg.Model, genai.Text(prompt), genCfg) {
		if err != nil {
			return nil, fmt.Errorf("%w: stream failed: %v", ErrResponseFormat, err)
		}
		reply.WriteString(resp.Text())
	}

	rec, err := Parse(reply.String(), r.cfg.Animals, r.cfg.Traits)
	if err != nil {
		r.log.Warn("spirit reply rejected", zap.Error(err))
		return nil, err
	}

	r.log.Info("spirit animal recommended", zap.String("animal", rec.Animal))
	return rec, nil
}

// isASCII reports whether s is safe to place in a transport header.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
