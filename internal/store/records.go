package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"lantern/internal/journal"
	"lantern/internal/spirit"
)

// DefaultLanguage is used when no valid preference is saved.
const DefaultLanguage = "en"

// LoadReflections reads the saved reflection list. An absent key or an
// unparsable value yields an empty list; parse failures are logged and
// swallowed so a corrupt record never blocks startup.
func (s *Store) LoadReflections() []journal.Reflection {
	raw, ok, err := s.Get(KeyReflections)
	if err != nil {
		s.log.Warn("failed to load saved reflections", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var reflections []journal.Reflection
	if err := json.Unmarshal([]byte(raw), &reflections); err != nil {
		s.log.Warn("ignoring corrupt reflections record", zap.Error(err))
		return nil
	}
	return reflections
}

// SaveReflections persists the reflection list. An empty list deletes the
// key rather than writing an empty array.
func (s *Store) SaveReflections(reflections []journal.Reflection) error {
	if len(reflections) == 0 {
		return s.Delete(KeyReflections)
	}

	data, err := json.Marshal(reflections)
	if err != nil {
		return fmt.Errorf("failed to encode reflections: %w", err)
	}
	return s.Put(KeyReflections, string(data))
}

// DeleteReflections removes the saved reflection list.
func (s *Store) DeleteReflections() error {
	return s.Delete(KeyReflections)
}

// LoadRecommendation reads the cached spirit result, or nil when absent or
// corrupt.
func (s *Store) LoadRecommendation() *spirit.Recommendation {
	raw, ok, err := s.Get(KeySpiritResult)
	if err != nil {
		s.log.Warn("failed to load cached recommendation", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var rec spirit.Recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn("ignoring corrupt recommendation record", zap.Error(err))
		return nil
	}
	return &rec
}

// SaveRecommendation caches the spirit result so a later session does not
// re-call the remote service.
func (s *Store) SaveRecommendation(rec *spirit.Recommendation) error {
	if rec == nil {
		return s.Delete(KeySpiritResult)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}
	return s.Put(KeySpiritResult, string(data))
}

// DeleteRecommendation clears the cached spirit result.
func (s *Store) DeleteRecommendation() error {
	return s.Delete(KeySpiritResult)
}

// Language returns the saved two-letter language code, falling back to
// DefaultLanguage when absent or invalid.
func (s *Store) Language() string {
	raw, ok, err := s.Get(KeyLanguage)
	if err != nil {
		s.log.Warn("failed to load language preference", zap.Error(err))
		return DefaultLanguage
	}
	if !ok || len(raw) != 2 {
		return DefaultLanguage
	}
	return raw
}

// SetLanguage persists the language preference.
func (s *Store) SetLanguage(code string) error {
	if len(code) != 2 {
		return fmt.Errorf("invalid language code %q", code)
	}
	return s.Put(KeyLanguage, code)
}
