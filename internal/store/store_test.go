package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lantern/internal/journal"
	"lantern/internal/spirit"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lantern.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := openTestStore(t)

	if _, ok, _ := s.Get("missing"); ok {
		t.Fatalf("expected missing key to be absent")
	}

	if err := s.Put("k", "v1"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := s.Put("k", "v2"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("get failed: %v, ok=%v", err, ok)
	}
	if v != "v2" {
		t.Fatalf("expected last write to win, got %q", v)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatalf("expected key gone after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("deleting absent key should be a no-op: %v", err)
	}
}

func TestReflectionsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lantern.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	saved := []journal.Reflection{
		{ID: "a", Topic: "Gratitude", Text: "My team.", Rating: 8},
		{ID: "b", Topic: "Growth", Text: "Shipped the rewrite."},
	}
	if err := s.SaveReflections(saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// Fresh session against the same storage.
	s2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()

	loaded := s2.LoadReflections()
	if diff := cmp.Diff(saved, loaded); diff != "" {
		t.Fatalf("round-trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveEmptyListDeletesKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveReflections([]journal.Reflection{{ID: "a", Topic: "x", Text: "y"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.SaveReflections(nil); err != nil {
		t.Fatalf("save empty failed: %v", err)
	}

	// The key must be absent, not an empty-array string.
	if _, ok, _ := s.Get(KeyReflections); ok {
		t.Fatalf("expected reflections key to be absent after saving empty list")
	}
}

func TestCorruptReflectionsTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(KeyReflections, "{not valid json"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if got := s.LoadReflections(); len(got) != 0 {
		t.Fatalf("expected corrupt record to read as empty, got %v", got)
	}
}

func TestRecommendationRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := &spirit.Recommendation{
		Animal:     "Owl",
		Title:      "The Big Picture",
		Version1En: "The Big Picture: you zoom out.",
		Version1Th: "ภาพรวม",
		Version2En: "v2 en",
		Version2Th: "v2 th",
		Stats:      map[string]int{"execution": 70, "strategy": 95, "resilience": 80, "connection": 60},
	}
	if err := s.SaveRecommendation(rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := s.LoadRecommendation()
	if diff := cmp.Diff(rec, loaded); diff != "" {
		t.Fatalf("round-trip mismatch (-saved +loaded):\n%s", diff)
	}

	if err := s.DeleteRecommendation(); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if s.LoadRecommendation() != nil {
		t.Fatalf("expected recommendation cleared")
	}
}

func TestCorruptRecommendationTreatedAsAbsent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(KeySpiritResult, "][ nope"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if s.LoadRecommendation() != nil {
		t.Fatalf("expected corrupt recommendation to read as nil")
	}
}

func TestLanguagePreference(t *testing.T) {
	s := openTestStore(t)

	if got := s.Language(); got != DefaultLanguage {
		t.Fatalf("expected default language, got %q", got)
	}

	if err := s.SetLanguage("th"); err != nil {
		t.Fatalf("set language failed: %v", err)
	}
	if got := s.Language(); got != "th" {
		t.Fatalf("expected th, got %q", got)
	}

	if err := s.SetLanguage("thai"); err == nil {
		t.Fatalf("expected error for non two-letter code")
	}

	// Corrupt stored value falls back to the default.
	if err := s.Put(KeyLanguage, "???!"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if got := s.Language(); got != DefaultLanguage {
		t.Fatalf("expected fallback to default, got %q", got)
	}
}
