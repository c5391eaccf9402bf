package export

import (
	"fmt"
	"image/color"
	"strings"
)

// Template selects the visual style of the story card.
type Template string

const (
	TemplateMinimal Template = "minimal"
	TemplateElegant Template = "elegant"
	TemplateBold    Template = "bold"
)

// Templates lists every style in presentation order.
func Templates() []Template {
	return []Template{TemplateMinimal, TemplateElegant, TemplateBold}
}

// ParseTemplate matches a style name case-insensitively.
func ParseTemplate(name string) (Template, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(TemplateMinimal):
		return TemplateMinimal, nil
	case string(TemplateElegant):
		return TemplateElegant, nil
	case string(TemplateBold):
		return TemplateBold, nil
	default:
		return "", fmt.Errorf("unknown template %q (minimal, elegant, bold)", name)
	}
}

// palette is the color scheme one template draws with.
type palette struct {
	background color.RGBA
	surface    color.RGBA
	heading    color.RGBA
	body       color.RGBA
	muted      color.RGBA
	accent     color.RGBA
}

func (t Template) palette() palette {
	switch t {
	case TemplateElegant:
		return palette{
			background: color.RGBA{0x10, 0x18, 0x28, 0xFF},
			surface:    color.RGBA{0x1A, 0x24, 0x38, 0xFF},
			heading:    color.RGBA{0xF5, 0xEF, 0xE0, 0xFF},
			body:       color.RGBA{0xD8, 0xD4, 0xC8, 0xFF},
			muted:      color.RGBA{0x8A, 0x92, 0xA6, 0xFF},
			accent:     color.RGBA{0xC9, 0xA8, 0x6A, 0xFF},
		}
	case TemplateBold:
		return palette{
			background: color.RGBA{0x5B, 0x21, 0xB6, 0xFF},
			surface:    color.RGBA{0x6D, 0x28, 0xD9, 0xFF},
			heading:    color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
			body:       color.RGBA{0xF5, 0xF3, 0xFF, 0xFF},
			muted:      color.RGBA{0xC4, 0xB5, 0xFD, 0xFF},
			accent:     color.RGBA{0xFB, 0xBF, 0x24, 0xFF},
		}
	default: // minimal
		return palette{
			background: color.RGBA{0xFA, 0xFA, 0xF8, 0xFF},
			surface:    color.RGBA{0xF0, 0xEF, 0xEA, 0xFF},
			heading:    color.RGBA{0x1A, 0x1A, 0x1A, 0xFF},
			body:       color.RGBA{0x33, 0x33, 0x33, 0xFF},
			muted:      color.RGBA{0x8A, 0x8A, 0x84, 0xFF},
			accent:     color.RGBA{0x2F, 0x6F, 0x5E, 0xFF},
		}
	}
}
