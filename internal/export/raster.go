package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"
)

// Story cards are sized for a portrait phone story.
const (
	CardWidth  = 1080
	CardHeight = 1920
)

// faces bundles the text styles the renderers draw with.
type faces struct {
	display font.Face
	heading font.Face
	body    font.Face
	small   font.Face
}

func newFaces() (*faces, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	face := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	fs := &faces{}
	if fs.display, err = face(bold, 72); err != nil {
		return nil, err
	}
	if fs.heading, err = face(bold, 40); err != nil {
		return nil, err
	}
	if fs.body, err = face(regular, 34); err != nil {
		return nil, err
	}
	if fs.small, err = face(regular, 26); err != nil {
		return nil, err
	}
	return fs, nil
}

// canvas wraps the card image with the drawing primitives the templates
// share.
type canvas struct {
	img   *image.RGBA
	fonts *faces
}

// newCanvas allocates a card surface. The card grows past the standard
// height when the content needs the room; it never shrinks below it.
func newCanvas(fonts *faces, height int) *canvas {
	if height < CardHeight {
		height = CardHeight
	}
	return &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, CardWidth, height)),
		fonts: fonts,
	}
}

func (c *canvas) fill(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// fillVGradient paints r with a vertical blend from top to bottom.
func (c *canvas) fillVGradient(r image.Rectangle, top, bottom color.RGBA) {
	height := r.Dy()
	if height <= 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		t := float64(y-r.Min.Y) / float64(height)
		row := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 0xFF,
		}
		c.fill(image.Rect(r.Min.X, y, r.Max.X, y+1), row)
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func (c *canvas) fillCircle(cx, cy, radius int, col color.RGBA) {
	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= rr {
				c.img.SetRGBA(cx+dx, cy+dy, col)
			}
		}
	}
}

func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText draws s with its baseline at y, returning the x where the text
// ends.
func (c *canvas) drawText(face font.Face, x, y int, col color.RGBA, s string) int {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

func (c *canvas) drawTextCentered(face font.Face, y int, col color.RGBA, s string) {
	x := (CardWidth - textWidth(face, s)) / 2
	c.drawText(face, x, y, col, s)
}

// drawImage scales src to fit r, preserving aspect ratio.
func (c *canvas) drawImage(r image.Rectangle, src image.Image) {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return
	}
	scale := min(float64(r.Dx())/float64(sb.Dx()), float64(r.Dy())/float64(sb.Dy()))
	w := int(float64(sb.Dx()) * scale)
	h := int(float64(sb.Dy()) * scale)
	x0 := r.Min.X + (r.Dx()-w)/2
	y0 := r.Min.Y + (r.Dy()-h)/2
	dst := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.ApproxBiLinear.Scale(c.img, dst, src, sb, xdraw.Over, nil)
}

// wrapText breaks s into lines no wider than maxWidth, measured with face.
// Words longer than a full line are placed alone rather than split.
func wrapText(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if textWidth(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
