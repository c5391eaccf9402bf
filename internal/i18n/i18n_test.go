package i18n

import "testing"

func TestLookupAndFallback(t *testing.T) {
	b := New("en")

	if got := b.T("app.title"); got != "Lantern" {
		t.Fatalf("expected english title, got %q", got)
	}
	if got := b.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("expected missing key echoed back, got %q", got)
	}

	b.SetLang("th")
	if got := b.T("writer.submit"); got != "ต่อไป" {
		t.Fatalf("expected thai string, got %q", got)
	}
}

func TestUnsupportedCodeFallsBackToEnglish(t *testing.T) {
	b := New("xx")
	if b.Lang() != LangEN {
		t.Fatalf("expected english fallback, got %q", b.Lang())
	}
	if b.SetLang("de") {
		t.Fatalf("expected SetLang to reject unsupported code")
	}
	if b.Lang() != LangEN {
		t.Fatalf("rejected code must not change the active language")
	}
}

func TestToggleCycles(t *testing.T) {
	b := New("en")
	if got := b.Toggle(); got != LangTH {
		t.Fatalf("expected th after toggle, got %q", got)
	}
	if got := b.Toggle(); got != LangEN {
		t.Fatalf("expected en after second toggle, got %q", got)
	}
}

func TestTf(t *testing.T) {
	b := New("en")
	if got := b.Tf("progress.step", 2, 4); got != "Step 2 of 4" {
		t.Fatalf("unexpected formatted string: %q", got)
	}
}

func TestTopicsCatalog(t *testing.T) {
	b := New("en")
	topics := b.Topics()
	if len(topics) == 0 {
		t.Fatalf("expected a non-empty topic catalog")
	}
	if topics[0] != "Gratitude" {
		t.Fatalf("expected catalog order preserved, got %q first", topics[0])
	}

	b.SetLang("th")
	th := b.Topics()
	if len(th) != len(topics) {
		t.Fatalf("expected catalogs to be the same length: en=%d th=%d", len(topics), len(th))
	}
}

// Every key present in English should have a counterpart in every other
// locale so a translation gap shows up here instead of at runtime.
func TestLocalesCoverSameKeys(t *testing.T) {
	b := New("en")

	var walk func(prefix string, table map[string]any)
	walk = func(prefix string, table map[string]any) {
		for key, v := range table {
			full := key
			if prefix != "" {
				full = prefix + "." + key
			}
			switch val := v.(type) {
			case map[string]any:
				walk(full, val)
			case string:
				for _, lang := range supported {
					if _, ok := lookup(b.tables[lang], full); !ok {
						t.Errorf("locale %q missing key %q", lang, full)
					}
				}
			}
		}
	}
	walk("", b.tables[LangEN])
}
