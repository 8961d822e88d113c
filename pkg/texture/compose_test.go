package texture

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDimensions(t *testing.T) {
	for _, h := range []int{4, 7, 64, 256} {
		canvas, err := Compose(radial(48), EdgeColor{R: 9}, Options{Height: h})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 2*h, h), canvas.Rect, "height %d", h)
	}
}

func TestComposeRejectsBadOptions(t *testing.T) {
	_, err := Compose(radial(16), EdgeColor{}, Options{Height: 2})
	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)

	_, err = Compose(radial(16), EdgeColor{}, Options{Height: 16, Filter: "sinc"})
	assert.Error(t, err)

	_, err = Compose(radial(16), EdgeColor{}, Options{Height: 16, PoleFade: 0.7})
	assert.Error(t, err)

	_, err = Compose(nil, EdgeColor{}, Options{Height: 16})
	assert.ErrorAs(t, err, &dimErr)
}

// TestComposePoleFadeMonotonic checks that the edge color's weight grows
// toward both poles along every column.
func TestComposePoleFadeMonotonic(t *testing.T) {
	const h = 256
	edge := EdgeColor{R: 255}
	canvas, err := Compose(solid(64, color.RGBA{0, 0, 255, 255}), edge, Options{Height: h})
	require.NoError(t, err)

	band := int(math.Ceil(DefaultPoleFade * h))
	red := func(x, y int) int { return int(canvas.Pix[canvas.PixOffset(x, y)]) }
	for x := 0; x < 2*h; x++ {
		for y := 0; y < band; y++ {
			assert.GreaterOrEqual(t, red(x, y), red(x, y+1), "top x=%d y=%d", x, y)
			assert.GreaterOrEqual(t, red(x, h-1-y), red(x, h-2-y), "bottom x=%d y=%d", x, y)
		}
	}

	mid := h // center column of the front band
	assert.Greater(t, red(mid, 0), 240)
	assert.Greater(t, red(mid, h-1), 240)
	assert.Equal(t, 0, red(mid, band+4))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, canvas.RGBAAt(mid, h/2))
}

func TestComposeBackFillIsMutedMirror(t *testing.T) {
	const h = 128
	// Left half white, right half black.
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(0)
			if x < 32 {
				v = 255
			}
			src.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	edge := EdgeColor{R: 128, G: 128, B: 128}
	canvas, err := Compose(src, edge, Options{Height: h})
	require.NoError(t, err)

	w := 2 * h
	q := w / 4
	y := h / 2
	// Front band keeps the source orientation.
	assert.Equal(t, uint8(255), canvas.RGBAAt(q+q/2, y).R)
	assert.Equal(t, uint8(0), canvas.RGBAAt(w-q-q/2, y).R)

	// The back band is the mirror: the right strip starts with the
	// source's right side (black), the left strip ends with its left
	// side (white). Both are pulled toward gray.
	rightStrip := canvas.RGBAAt(w-q+q/4, y).R
	leftStrip := canvas.RGBAAt(q/4, y).R
	assert.Less(t, rightStrip, uint8(128))
	assert.Greater(t, leftStrip, uint8(128))

	// Tint 0.3 then opacity 0.7 over gray: 255 -> 217 -> 190, 0 -> 38 -> 65.
	assert.InDelta(t, 190, float64(leftStrip), 2)
	assert.InDelta(t, 65, float64(rightStrip), 2)
}

func TestComposeSeamFadesReachEdgeColor(t *testing.T) {
	const h = 256
	edge := EdgeColor{G: 255}
	canvas, err := Compose(solid(64, color.RGBA{0, 0, 255, 255}), edge, Options{Height: h})
	require.NoError(t, err)

	w := 2 * h
	for _, b := range []int{w / 4, 3 * w / 4} {
		for _, x := range []int{b - 1, b} {
			g := canvas.RGBAAt(x, h/2).G
			assert.Greater(t, g, uint8(245), "boundary column %d", x)
		}
	}
}

func TestFadeLayer(t *testing.T) {
	const w, h = 40, 4
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(canvas, EdgeColor{})

	fades := newFadeLayer(w, h, EdgeColor{R: 200, B: 100})
	fades.add(0, 0, 20, 0, image.Rect(0, 0, 20, h))
	// Degenerate gradients and empty rectangles draw nothing.
	fades.add(30, 0, 30, 0, image.Rect(25, 0, w, h))
	fades.add(0, 0, 10, 0, image.Rect(5, 0, 5, h))
	require.NoError(t, fades.over(canvas))

	for x := 0; x < w; x++ {
		a := math.Max(0, 1-(float64(x)+0.5)/20)
		for y := 0; y < h; y++ {
			c := canvas.RGBAAt(x, y)
			assert.InDelta(t, 200*a, float64(c.R), 2, "x=%d", x)
			assert.InDelta(t, 100*a, float64(c.B), 2, "x=%d", x)
			assert.Equal(t, uint8(0), c.G)
			assert.Equal(t, uint8(255), c.A)
		}
	}
}

func TestFadeLayerAccumulates(t *testing.T) {
	const w, h = 10, 2
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(canvas, EdgeColor{})

	// Two identical fades over one pixel stack like source-over.
	fades := newFadeLayer(w, h, EdgeColor{G: 255})
	for i := 0; i < 2; i++ {
		fades.add(-10, 0, 10, 0, image.Rect(0, 0, 1, h))
	}
	require.NoError(t, fades.over(canvas))

	// The first pixel center sits at t = 10.5/20.
	a := 1 - 10.5/20
	want := 255 * (1 - (1-a)*(1-a))
	assert.InDelta(t, want, float64(canvas.RGBAAt(0, 0).G), 2)
	assert.Equal(t, uint8(0), canvas.RGBAAt(1, 0).G)
}

func TestComposeFilters(t *testing.T) {
	for _, f := range Filters {
		canvas, err := Compose(solid(32, color.RGBA{255, 0, 0, 255}), EdgeColor{R: 255}, Options{Height: 32, Filter: f})
		require.NoError(t, err, f)
		c := canvas.RGBAAt(32, 16)
		assert.InDelta(t, 255, float64(c.R), 1, f)
		assert.InDelta(t, 0, float64(c.G), 1, f)
	}
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterBiLinear, f)

	f, err = ParseFilter("Lanczos3")
	require.NoError(t, err)
	assert.Equal(t, FilterLanczos, f)

	_, err = ParseFilter("mitchell")
	assert.Error(t, err)
}
