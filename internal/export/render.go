package export

import (
	"fmt"
	"image"

	"lantern/internal/journal"
)

// SpiritCard is the optional spirit animal section of a story card. Text is
// already localized and version-picked by the caller.
type SpiritCard struct {
	Animal string
	Title  string
	Text   string
	Traits []string
	Stats  map[string]int
	Art    image.Image
}

// Document is everything one story card shows. Strings arrive already
// localized so the renderer knows nothing about languages.
type Document struct {
	Template    Template
	Title       string
	Subtitle    string
	Footer      string
	Reflections []journal.Reflection
	Spirit      *SpiritCard
}

// Renderer rasterizes story cards.
type Renderer struct {
	fonts *faces
}

func NewRenderer() (*Renderer, error) {
	fonts, err := newFaces()
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: fonts}, nil
}

// Layout spacing, in pixels.
const (
	margin       = 96
	contentWidth = CardWidth - 2*margin

	lineDisplay = 96
	lineHeading = 56
	lineBody    = 48
	lineSmall   = 38

	cardPadding = 36
	cardGap     = 32
)

// Render draws the full document. Every reflection appears whole and in
// order; when they need more room than the standard height the card grows
// taller instead of truncating.
func (r *Renderer) Render(doc Document) (image.Image, error) {
	height := r.walk(nil, doc)
	c := newCanvas(r.fonts, height)
	r.paintBackground(c, doc.Template)
	r.walk(c, doc)
	return c.img, nil
}

func (r *Renderer) paintBackground(c *canvas, t Template) {
	pal := t.palette()
	switch t {
	case TemplateMinimal:
		c.fill(c.img.Bounds(), pal.background)
	default:
		c.fillVGradient(c.img.Bounds(), pal.background, pal.surface)
	}
	if t == TemplateBold {
		c.fill(image.Rect(0, 0, CardWidth, 20), pal.accent)
	}
}

// walk lays the document out top to bottom and returns the total height.
// With a nil canvas nothing is drawn, which is how Render measures first.
func (r *Renderer) walk(c *canvas, doc Document) int {
	pal := doc.Template.palette()
	y := margin

	// Header.
	y += lineDisplay
	if c != nil {
		c.drawTextCentered(r.fonts.display, y, pal.heading, doc.Title)
	}
	if doc.Subtitle != "" {
		y += lineBody + 8
		if c != nil {
			c.drawTextCentered(r.fonts.body, y, pal.muted, doc.Subtitle)
		}
	}
	if doc.Template == TemplateElegant && c != nil {
		c.fill(image.Rect(CardWidth/2-80, y+28, CardWidth/2+80, y+31), pal.accent)
	}
	y += 56

	// Reflections.
	for _, ref := range doc.Reflections {
		y += r.reflection(c, pal, ref, y)
		y += cardGap
	}

	// Spirit animal.
	if doc.Spirit != nil {
		y += r.spirit(c, pal, doc.Spirit, y)
	}

	// Footer.
	y += 48 + lineSmall
	if c != nil {
		c.drawTextCentered(r.fonts.small, y, pal.muted, doc.Footer)
	}
	return y + margin
}

func (r *Renderer) reflection(c *canvas, pal palette, ref journal.Reflection, top int) int {
	textW := contentWidth - 2*cardPadding
	lines := wrapText(r.fonts.body, ref.Text, textW)

	height := cardPadding + lineHeading + len(lines)*lineBody + cardPadding
	if ref.Rating > 0 {
		height += 44
	}

	if c != nil {
		c.fill(image.Rect(margin, top, CardWidth-margin, top+height), pal.surface)
		c.fill(image.Rect(margin, top, margin+8, top+height), pal.accent)
	}

	y := top + cardPadding + 40
	if c != nil {
		c.drawText(r.fonts.heading, margin+cardPadding, y, pal.heading, ref.Topic)
	}
	for _, line := range lines {
		y += lineBody
		if c != nil {
			c.drawText(r.fonts.body, margin+cardPadding, y, pal.body, line)
		}
	}
	if ref.Rating > 0 {
		y += 44
		if c != nil {
			r.ratingDots(c, pal, margin+cardPadding, y-10, ref.Rating)
		}
	}
	return height
}

func (r *Renderer) ratingDots(c *canvas, pal palette, x, cy, rating int) {
	for i := 0; i < journal.MaxRating; i++ {
		col := pal.muted
		if i < rating {
			col = pal.accent
		}
		c.fillCircle(x+9+i*28, cy, 9, col)
	}
	label := fmt.Sprintf("%d/%d", rating, journal.MaxRating)
	c.drawText(r.fonts.small, x+journal.MaxRating*28+24, cy+10, pal.muted, label)
}

func (r *Renderer) spirit(c *canvas, pal palette, sp *SpiritCard, top int) int {
	y := top + 24
	if c != nil {
		c.fill(image.Rect(margin, y, CardWidth-margin, y+2), pal.accent)
	}
	y += 48

	// Artwork, or a drawn badge when none loaded.
	const artBox = 360
	if sp.Art != nil {
		if c != nil {
			c.drawImage(image.Rect((CardWidth-artBox)/2, y, (CardWidth+artBox)/2, y+artBox), sp.Art)
		}
		y += artBox
	} else {
		const radius = 120
		if c != nil {
			c.fillCircle(CardWidth/2, y+radius, radius, pal.accent)
			initial := "?"
			if sp.Animal != "" {
				initial = string([]rune(sp.Animal)[0])
			}
			w := textWidth(r.fonts.display, initial)
			c.drawText(r.fonts.display, (CardWidth-w)/2, y+radius+32, pal.background, initial)
		}
		y += 2 * radius
	}

	y += 24 + lineHeading
	if c != nil {
		c.drawTextCentered(r.fonts.heading, y, pal.heading, sp.Title)
	}

	for _, line := range wrapText(r.fonts.body, sp.Text, contentWidth) {
		y += lineBody
		if c != nil {
			c.drawTextCentered(r.fonts.body, y, pal.body, line)
		}
	}

	if len(sp.Traits) > 0 {
		y += 32
		y += r.statBars(c, pal, sp, y)
	}
	return y - top
}

func (r *Renderer) statBars(c *canvas, pal palette, sp *SpiritCard, top int) int {
	const barWidth = 420
	const rowHeight = 52
	labelX := margin + cardPadding
	barX := CardWidth - margin - cardPadding - barWidth

	y := top
	for _, trait := range sp.Traits {
		value := sp.Stats[trait]
		if value < 0 {
			value = 0
		}
		if value > 100 {
			value = 100
		}
		y += rowHeight
		if c != nil {
			c.drawText(r.fonts.small, labelX, y, pal.body, trait)
			c.fill(image.Rect(barX, y-18, barX+barWidth, y), pal.surface)
			c.fill(image.Rect(barX, y-18, barX+barWidth*value/100, y), pal.accent)
		}
	}
	return y - top
}
