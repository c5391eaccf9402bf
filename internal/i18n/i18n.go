// Package i18n supplies user-facing strings by key from embedded locale
// tables. Keys are dot paths ("topics.title"); a missing key falls back to
// English and finally to the key itself so a gap is visible, not fatal.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed locales/*.json
var localeFS embed.FS

// Lang is a supported two-letter language code.
type Lang string

const (
	LangEN Lang = "en"
	LangTH Lang = "th"
)

var supported = []Lang{LangEN, LangTH}

// Bundle resolves strings for one active language.
type Bundle struct {
	lang   Lang
	tables map[Lang]map[string]any
}

// New creates a bundle with the given language active. An unsupported code
// falls back to English.
func New(code string) *Bundle {
	tables := make(map[Lang]map[string]any, len(supported))
	for _, lang := range supported {
		data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", lang))
		if err != nil {
			panic(fmt.Sprintf("i18n: missing embedded locale %q: %v", lang, err))
		}
		var table map[string]any
		if err := json.Unmarshal(data, &table); err != nil {
			panic(fmt.Sprintf("i18n: corrupt embedded locale %q: %v", lang, err))
		}
		tables[lang] = table
	}

	b := &Bundle{lang: LangEN, tables: tables}
	b.SetLang(code)
	return b
}

// Lang returns the active language.
func (b *Bundle) Lang() Lang {
	return b.lang
}

// SetLang switches the active language, reporting whether code was a
// supported language.
func (b *Bundle) SetLang(code string) bool {
	for _, lang := range supported {
		if string(lang) == code {
			b.lang = lang
			return true
		}
	}
	return false
}

// Toggle cycles to the next supported language and returns it.
func (b *Bundle) Toggle() Lang {
	for i, lang := range supported {
		if lang == b.lang {
			b.lang = supported[(i+1)%len(supported)]
			return b.lang
		}
	}
	b.lang = LangEN
	return b.lang
}

// T resolves a dot-path key to a string in the active language.
func (b *Bundle) T(key string) string {
	if v, ok := lookup(b.tables[b.lang], key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if b.lang != LangEN {
		if v, ok := lookup(b.tables[LangEN], key); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return key
}

// Tf resolves a key and formats it with args.
func (b *Bundle) Tf(key string, args ...any) string {
	return fmt.Sprintf(b.T(key), args...)
}

// List resolves a dot-path key to a string slice in the active language.
func (b *Bundle) List(key string) []string {
	for _, lang := range []Lang{b.lang, LangEN} {
		v, ok := lookup(b.tables[lang], key)
		if !ok {
			continue
		}
		items, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Topics returns the curated topic catalog for the active language.
func (b *Bundle) Topics() []string {
	return b.List("topics.catalog")
}

func lookup(table map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var current any = table
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
