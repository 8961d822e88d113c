package texture

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
)

// rgb is a color with channels in [0,255].
type rgb [3]float64

func rgbOf(c EdgeColor) rgb {
	return rgb{float64(c.R), float64(c.G), float64(c.B)}
}

// channel rounds v to the nearest representable 8-bit value.
func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

// over composites c with opacity a onto the opaque pixel p.
func over(p []uint8, c rgb, a float64) {
	p[0] = channel(float64(p[0])*(1-a) + c[0]*a)
	p[1] = channel(float64(p[1])*(1-a) + c[1]*a)
	p[2] = channel(float64(p[2])*(1-a) + c[2]*a)
	p[3] = 255
}

func fill(dst *image.RGBA, c EdgeColor) {
	r := dst.Rect
	if r.Empty() {
		return
	}
	row := dst.Pix[:r.Dx()*4]
	for i := 0; i < len(row); i += 4 {
		row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, 255
	}
	for y := 1; y < r.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:], row)
	}
}

// fadeLayer collects edge color gradients on a transparent gg context.
// Overlapping fades of one color accumulate alpha the same way compositing
// each onto the canvas in turn would.
type fadeLayer struct {
	dc                  *gg.Context
	c                   rgb
	opaque, transparent gg.RGBA
	err                 error
}

func newFadeLayer(w, h int, edge EdgeColor) *fadeLayer {
	c := rgbOf(edge)
	opaque := gg.RGBA{R: c[0] / 255, G: c[1] / 255, B: c[2] / 255, A: 1}
	transparent := opaque
	transparent.A = 0
	return &fadeLayer{dc: gg.NewContext(w, h), c: c, opaque: opaque, transparent: transparent}
}

// add fills r with a linear gradient of the edge color, opaque at (x0,y0)
// and transparent at (x1,y1). Positions are projected onto the gradient
// line and padded beyond both ends.
func (l *fadeLayer) add(x0, y0, x1, y1 float64, r image.Rectangle) {
	if l.err != nil || r.Empty() || (x0 == x1 && y0 == y1) {
		return
	}
	l.dc.SetFillBrush(gg.NewLinearGradientBrush(x0, y0, x1, y1).
		AddColorStop(0, l.opaque).
		AddColorStop(1, l.transparent))
	l.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	if err := l.dc.Fill(); err != nil {
		l.err = fmt.Errorf("draw fade %v: %w", r, err)
	}
}

// over composites the collected fades onto the opaque canvas, using the
// layer's alpha and the exact edge color.
func (l *fadeLayer) over(canvas *image.RGBA) error {
	if l.err != nil {
		return l.err
	}
	m := l.dc.Image()
	mask, ok := m.(*image.RGBA)
	if !ok {
		mask = image.NewRGBA(m.Bounds())
		draw.Draw(mask, mask.Rect, m, m.Bounds().Min, draw.Src)
	}
	r := canvas.Rect.Intersect(mask.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := mask.Pix[mask.PixOffset(x, y)+3]
			if a == 0 {
				continue
			}
			i := canvas.PixOffset(x, y)
			over(canvas.Pix[i:i+4], l.c, float64(a)/255)
		}
	}
	return nil
}
