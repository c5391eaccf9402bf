package export

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lantern/internal/config"
	"lantern/internal/journal"
)

func TestParseTemplate(t *testing.T) {
	for _, name := range []string{"minimal", "Elegant", "BOLD", " bold "} {
		tpl, err := ParseTemplate(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, tpl)
	}

	_, err := ParseTemplate("neon")
	assert.Error(t, err)
}

func testDocument(n int) Document {
	doc := Document{
		Template: TemplateMinimal,
		Title:    "2026",
		Subtitle: "A quiet look back",
		Footer:   "created with lantern",
	}
	for i := 0; i < n; i++ {
		doc.Reflections = append(doc.Reflections, journal.Reflection{
			ID:     fmt.Sprintf("r%d", i),
			Topic:  fmt.Sprintf("Topic %d", i),
			Text:   strings.Repeat("a year of small steady steps ", 6),
			Rating: (i % 10) + 1,
		})
	}
	return doc
}

func TestRenderStandardSize(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, tpl := range Templates() {
		t.Run(string(tpl), func(t *testing.T) {
			doc := testDocument(3)
			doc.Template = tpl
			img, err := r.Render(doc)
			require.NoError(t, err)

			b := img.Bounds()
			assert.Equal(t, CardWidth, b.Dx())
			assert.Equal(t, CardHeight, b.Dy())
		})
	}
}

func TestRenderGrowsForLongContent(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	img, err := r.Render(testDocument(12))
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, CardWidth, b.Dx())
	assert.Greater(t, b.Dy(), CardHeight, "twelve full reflections cannot fit the standard height")
}

func TestRenderWithSpiritCard(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	doc := testDocument(2)
	doc.Spirit = &SpiritCard{
		Animal: "Owl",
		Title:  "The Big Picture",
		Text:   "You spent the year connecting dots nobody else saw.",
		Traits: []string{"execution", "strategy", "resilience", "connection"},
		Stats:  map[string]int{"execution": 70, "strategy": 95, "resilience": 80, "connection": 60},
	}

	img, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, CardWidth, img.Bounds().Dx())
}

func TestWrapText(t *testing.T) {
	fonts, err := newFaces()
	require.NoError(t, err)

	assert.Nil(t, wrapText(fonts.body, "   ", 400))

	lines := wrapText(fonts.body, strings.Repeat("steady ", 40), 400)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, textWidth(fonts.body, line), 400)
	}

	// A single oversized word gets its own line instead of being split.
	lines = wrapText(fonts.body, "a "+strings.Repeat("x", 80)+" b", 200)
	assert.Len(t, lines, 3)
}

func newTestExporter(t *testing.T, dir string) *Exporter {
	t.Helper()
	e, err := NewExporter(dir, nil)
	require.NoError(t, err)
	e.now = func() time.Time { return time.UnixMilli(1767225600000) }
	return e
}

func TestDownloadWritesPNG(t *testing.T) {
	dir := t.TempDir()
	e := newTestExporter(t, dir)

	path, err := e.Download(testDocument(2))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reflections-1767225600000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, CardWidth, img.Bounds().Dx())
}

func TestShareFallsBackToFile(t *testing.T) {
	e := newTestExporter(t, t.TempDir())
	e.opener = func(string) error { return fmt.Errorf("no opener") }

	path, opened, err := e.Share(testDocument(1))
	require.NoError(t, err)
	assert.False(t, opened)

	_, err = os.Stat(path)
	assert.NoError(t, err, "the file must survive the failed share")
}

func TestShareReportsOpened(t *testing.T) {
	e := newTestExporter(t, t.TempDir())
	var got string
	e.opener = func(path string) error {
		got = path
		return nil
	}

	path, opened, err := e.Share(testDocument(1))
	require.NoError(t, err)
	assert.True(t, opened)
	assert.Equal(t, path, got)
}

func TestLoadAssets(t *testing.T) {
	dir := t.TempDir()

	// One real artwork file; the other animal's file does not exist.
	f, err := os.Create(filepath.Join(dir, "owl.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())

	animals := []config.AnimalSpec{
		{Name: "Owl", Art: "owl.png"},
		{Name: "Beaver", Art: "beaver.png"},
		{Name: "Capybara"},
	}
	assets := LoadAssets(context.Background(), dir, animals, time.Second, nil)

	_, ok := assets.Image("Owl")
	assert.True(t, ok)
	_, ok = assets.Image("Beaver")
	assert.False(t, ok, "missing artwork falls back to the badge")
	_, ok = assets.Image("Capybara")
	assert.False(t, ok)
}

func TestLoadAssetsWithoutDir(t *testing.T) {
	assets := LoadAssets(context.Background(), "", []config.AnimalSpec{{Name: "Owl", Art: "owl.png"}}, time.Second, nil)
	_, ok := assets.Image("Owl")
	assert.False(t, ok)
}
