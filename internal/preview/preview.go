// Package preview renders the social-preview card shared with CLT results.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/output"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Card size expected by link unfurlers
const (
	Width  = 1200
	Height = 630
)

const (
	margin    = 72
	barHeight = 16
)

// Theme holds the card colours
type Theme struct {
	Background color.RGBA
	Accent     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
}

// DefaultTheme is the dark site palette
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{R: 0x10, G: 0x17, B: 0x2a, A: 0xff},
		Accent:     color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff},
		Text:       color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff},
		Muted:      color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff},
	}
}

// Renderer draws preview cards
type Renderer struct {
	Theme Theme
	face  font.Face
}

// NewRenderer creates a renderer with the default theme
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme(), face: basicfont.Face7x13}
}

// Image draws the card for a CLT result
func (r *Renderer) Image(res domain.CalculationResult) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Theme.Background), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, Width, barHeight), image.NewUniform(r.Theme.Accent), image.Point{}, draw.Src)

	y := margin
	y += r.text(img, "Calculadora CLT", margin, y, 4, r.Theme.Muted) + 24
	y += r.text(img, "Bruto "+output.FormatBRL(res.Gross), margin, y, 5, r.Theme.Text) + 24
	y += r.text(img, "Liquido "+output.FormatBRL(res.Total), margin, y, 7, r.Theme.Accent) + 36

	for _, label := range []string{calculation.LabelINSS, calculation.LabelIRRF} {
		if line, ok := res.Line(label); ok {
			y += r.text(img, fmt.Sprintf("%s  -%s", label, output.FormatBRL(line.Amount)), margin, y, 3, r.Theme.Muted) + 12
		}
	}
	if fgts, ok := res.Accrual(calculation.AccrualFGTS); ok {
		r.text(img, "FGTS  +"+output.FormatBRL(fgts.Amount), margin, y, 3, r.Theme.Muted)
	}

	footer := "devnagringa.com"
	width := font.MeasureString(r.face, footer).Ceil() * 3
	r.text(img, footer, Width-margin-width, Height-margin-r.lineHeight()*3, 3, r.Theme.Text)
	return img
}

// Render encodes the card as PNG
func (r *Renderer) Render(w io.Writer, res domain.CalculationResult) error {
	if err := png.Encode(w, r.Image(res)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// text draws s at (x, y) magnified by scale and returns the height used.
// The bitmap face is rasterised at its native size and scaled up, which
// keeps the pixel look of the font.
func (r *Renderer) text(dst draw.Image, s string, x, y, scale int, c color.Color) int {
	w := font.MeasureString(r.face, s).Ceil()
	h := r.lineHeight()
	if w == 0 {
		return 0
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(0, r.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	target := image.Rect(x, y, x+w*scale, y+h*scale)
	xdraw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), xdraw.Over, nil)
	return h * scale
}

func (r *Renderer) lineHeight() int {
	return r.face.Metrics().Height.Ceil()
}
