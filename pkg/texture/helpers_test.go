package texture

import (
	"image"
	"image/color"
	"math"
)

func solid(side int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// radial is a smooth, horizontally symmetric photo stand-in.
func radial(side int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	c := float64(side) / 2
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			d := math.Hypot(dx, dy) / c
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * math.Max(0, 1-d)),
				G: uint8(40 + 100*float64(y)/float64(side)),
				B: uint8(200 * math.Min(1, d)),
				A: 255,
			})
		}
	}
	return img
}

func columnMean(img *image.RGBA, x int) [3]float64 {
	var m [3]float64
	h := img.Rect.Dy()
	for y := 0; y < h; y++ {
		p := img.Pix[img.PixOffset(x, y):]
		for c := 0; c < 3; c++ {
			m[c] += float64(p[c])
		}
	}
	for c := range m {
		m[c] /= float64(h)
	}
	return m
}
