package texture

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// DefaultContrast is the contrast factor applied before desaturation.
const DefaultContrast = 1.8

// BumpMap derives the grayscale surface-detail map of a finished texture:
// each channel becomes clamp((c-0.5)*contrast+0.5) and the result is
// desaturated. A zero contrast means DefaultContrast.
func BumpMap(tex image.Image, contrast float64) *image.Gray {
	if contrast == 0 {
		contrast = DefaultContrast
	}
	// Grayscale keeps the RGBA layout with equal channels.
	g := effect.Grayscale(adjust.Contrast(tex, contrast-1))
	out := image.NewGray(g.Rect)
	w := g.Rect.Dx()
	for y := 0; y < g.Rect.Dy(); y++ {
		src := g.Pix[y*g.Stride:]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < w; x++ {
			dst[x] = src[x*4]
		}
	}
	return out
}
