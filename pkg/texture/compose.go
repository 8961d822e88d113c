package texture

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Compose builds the equirectangular canvas for src before the wrap seam
// is blended. The canvas is 2*Height wide. src is stretched into the
// front half band, a mirrored and tinted copy fills the two back strips,
// and edge color fades soften the band edges, the poles and the
// front/back seams.
func Compose(src image.Image, edge EdgeColor, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if src == nil || src.Bounds().Empty() {
		return nil, &DimensionError{Reason: "empty source"}
	}
	return compose(opaqueRGBA(src), edge, opts.withDefaults())
}

func compose(src *image.RGBA, edge EdgeColor, o Options) (*image.RGBA, error) {
	h := o.Height
	w := 2 * h
	q := w / 4

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(canvas, edge)

	front := image.Rect(q, 0, w-q, h)
	o.Filter.scale(canvas, front, src)

	paintBack(canvas, src, edge, o, q)

	fades := newFadeLayer(w, h, edge)

	bw := o.BandFade * float64(front.Dx())
	bwi := int(math.Ceil(bw))
	fl, fr := float64(front.Min.X), float64(front.Max.X)
	fades.add(fl, 0, fl+bw, 0, image.Rect(front.Min.X, 0, front.Min.X+bwi, h))
	fades.add(fr, 0, fr-bw, 0, image.Rect(front.Max.X-bwi, 0, front.Max.X, h))

	ph := o.PoleFade * float64(h)
	phi := int(math.Ceil(ph))
	fades.add(0, 0, 0, ph, image.Rect(0, 0, w, phi))
	fades.add(0, float64(h), 0, float64(h)-ph, image.Rect(0, h-phi, w, h))

	half := o.SeamFade * float64(w) / 2
	hi := int(math.Ceil(half))
	for _, b := range []int{front.Min.X, front.Max.X} {
		bf := float64(b)
		fades.add(bf, 0, bf-half, 0, image.Rect(b-hi, 0, b, h))
		fades.add(bf, 0, bf+half, 0, image.Rect(b, 0, b+hi, h))
	}

	if err := fades.over(canvas); err != nil {
		return nil, err
	}
	return canvas, nil
}

// paintBack fills the back strips [0,q) and [w-q,w) with the mirrored
// source tinted toward the edge color. The mirrored image runs
// continuously from the right strip across the wrap into the left strip,
// so each strip meets the front band at the source column it borders.
func paintBack(canvas, src *image.RGBA, edge EdgeColor, o Options, q int) {
	if q == 0 {
		return
	}
	w, h := canvas.Rect.Dx(), canvas.Rect.Dy()

	mirrored := transform.FlipH(src)
	tint(mirrored, edge.Colorful(), o.BackTint)

	back := image.NewRGBA(image.Rect(0, 0, 2*q, h))
	o.Filter.scale(back, back.Bounds(), mirrored)

	op := o.BackOpacity
	for y := 0; y < h; y++ {
		for x := 0; x < 2*q; x++ {
			dx := w - q + x
			if x >= q {
				dx = x - q
			}
			si := back.PixOffset(x, y)
			sp := back.Pix[si : si+4]
			di := canvas.PixOffset(dx, y)
			over(canvas.Pix[di:di+4], rgb{float64(sp[0]), float64(sp[1]), float64(sp[2])}, op)
		}
	}
}

// tint pulls every pixel of img toward c by t in RGB space.
func tint(img *image.RGBA, c colorful.Color, t float64) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		p := colorful.Color{
			R: float64(img.Pix[i]) / 255,
			G: float64(img.Pix[i+1]) / 255,
			B: float64(img.Pix[i+2]) / 255,
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = p.BlendRgb(c, t).Clamped().RGB255()
	}
}
