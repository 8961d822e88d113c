package texture

import (
	"image"
	"math"
)

// WrapBlendWidth returns the number of columns on each side of the wrap
// seam that BlendWrapSeam cross-fades for a canvas of width w.
func WrapBlendWidth(w int, frac float64) int {
	if w < 2 {
		return 0
	}
	k := int(math.Round(float64(w) * frac))
	if k < 1 {
		k = 1
	}
	if k > w/2 {
		k = w / 2
	}
	return k
}

// BlendWrapSeam cross-fades the leftmost and rightmost k columns of canvas
// so that column 0 and column w-1 meet without a visible jump when the
// canvas wraps around a sphere. Column x pairs with its mirror w-1-x. For
// x in [0,k) with a = x/k, column x becomes l*(1+a)/2 + r*(1-a)/2 and
// column w-1-x becomes r*(1+a)/2 + l*(1-a)/2, where l and r are the paired
// columns as they were before the call. The outermost columns both take
// the average of the pair and are therefore equal. It returns k.
func BlendWrapSeam(canvas *image.RGBA, frac float64) int {
	w, h := canvas.Rect.Dx(), canvas.Rect.Dy()
	k := WrapBlendWidth(w, frac)
	if k == 0 || h == 0 {
		return 0
	}

	// Every read below comes from this snapshot, never from a column
	// already written in this pass.
	span := k * 4
	left := make([]uint8, span*h)
	right := make([]uint8, span*h)
	for y := 0; y < h; y++ {
		row := canvas.Pix[y*canvas.Stride:]
		copy(left[y*span:], row[:span])
		copy(right[y*span:], row[(w-k)*4:w*4])
	}

	for x := 0; x < k; x++ {
		a := float64(x) / float64(k)
		near, far := (1+a)/2, (1-a)/2
		m := w - 1 - x
		for y := 0; y < h; y++ {
			li := y*span + x*4
			ri := y*span + (k-1-x)*4
			l, r := left[li:li+4], right[ri:ri+4]
			row := canvas.Pix[y*canvas.Stride:]
			dl := row[x*4 : x*4+4]
			dr := row[m*4 : m*4+4]
			for c := 0; c < 3; c++ {
				lv, rv := float64(l[c]), float64(r[c])
				dl[c] = channel(lv*near + rv*far)
				dr[c] = channel(rv*near + lv*far)
			}
			dl[3], dr[3] = 255, 255
		}
	}
	return k
}

// WrapDifference returns the mean absolute per-channel difference between
// the first and last columns of img, on a 0-255 scale.
func WrapDifference(img *image.RGBA) float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		first, last := row[:4], row[(w-1)*4:w*4]
		for c := 0; c < 3; c++ {
			sum += math.Abs(float64(first[c]) - float64(last[c]))
		}
	}
	return sum / float64(3*h)
}
