package texture

import (
	"image"
	"math"
)

// EstimateEdgeColor averages the pixels of a thin ring just inside the
// crop's circular frame. The disc has radius side/2*DefaultDiscScale and
// the ring covers [DefaultAnnulusInner*R, R). It returns NeutralGray and
// ErrDegenerateInput when the ring holds no pixels.
func EstimateEdgeColor(src image.Image) (EdgeColor, error) {
	return estimateEdgeColor(opaqueRGBA(src), DefaultDiscScale, DefaultAnnulusInner)
}

func estimateEdgeColor(src *image.RGBA, discScale, inner float64) (EdgeColor, error) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	side := math.Min(float64(w), float64(h))
	cx, cy := float64(w)/2, float64(h)/2
	r := side / 2 * discScale
	rIn := r * inner
	rIn2, r2 := rIn*rIn, r*r

	var sr, sg, sb, n uint64
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			dx := float64(x) + 0.5 - cx
			d2 := dx*dx + dy*dy
			if d2 < rIn2 || d2 >= r2 {
				continue
			}
			i := x * 4
			sr += uint64(row[i])
			sg += uint64(row[i+1])
			sb += uint64(row[i+2])
			n++
		}
	}
	if n == 0 {
		return NeutralGray, ErrDegenerateInput
	}
	avg := func(s uint64) uint8 { return uint8((s + n/2) / n) }
	return EdgeColor{R: avg(sr), G: avg(sg), B: avg(sb)}, nil
}
