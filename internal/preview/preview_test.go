package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	res := calculation.CalculateCLT(domain.CLTInput{GrossSalary: decimal.NewFromInt(5000), IncludeFGTS: true})

	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, res))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestImage_Layout(t *testing.T) {
	r := NewRenderer()
	img := r.Image(calculation.CalculateCLT(domain.CLTInput{GrossSalary: decimal.NewFromInt(5000)}))

	assert.Equal(t, r.Theme.Accent, img.RGBAAt(Width/2, barHeight/2), "accent bar across the top")
	assert.Equal(t, r.Theme.Background, img.RGBAAt(Width-1, Height/2), "right edge stays clear")

	textPixels := 0
	for y := margin; y < Height/2; y++ {
		for x := margin; x < Width-margin; x++ {
			if img.RGBAAt(x, y) != r.Theme.Background {
				textPixels++
			}
		}
	}
	assert.Positive(t, textPixels, "headline text is drawn")
}

func TestImage_ZeroSalary(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRenderer().Image(calculation.CalculateCLT(domain.CLTInput{}))
	})
}
