package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeDimensions(t *testing.T) {
	res, err := Synthesize(radial(96), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultHeight, res.Texture.Rect.Dy())
	assert.Equal(t, 2*res.Texture.Rect.Dy(), res.Texture.Rect.Dx())

	res, err = Synthesize(radial(96), Options{Height: 300})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 600, 300), res.Texture.Rect)
}

func TestSynthesizeSolidRed(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	res, err := Synthesize(solid(512, red), Options{})
	require.NoError(t, err)

	assert.Equal(t, EdgeColor{R: 255}, res.Edge)
	assert.False(t, res.Degenerate)
	assert.Zero(t, WrapDifference(res.Texture))

	tex := res.Texture
	for i := 0; i < len(tex.Pix); i += 4 {
		if tex.Pix[i] != 255 || tex.Pix[i+1] != 0 || tex.Pix[i+2] != 0 || tex.Pix[i+3] != 255 {
			x, y := (i/4)%tex.Rect.Dx(), (i/4)/tex.Rect.Dx()
			t.Fatalf("pixel (%d,%d) = %v, want solid red", x, y, tex.Pix[i:i+4])
		}
	}
}

func TestSynthesizeWrapContinuity(t *testing.T) {
	vertical := image.NewRGBA(image.Rect(0, 0, 128, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			vertical.SetRGBA(x, y, color.RGBA{uint8(2 * y), 90, uint8(255 - 2*y), 255})
		}
	}

	horizontal := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			horizontal.SetRGBA(x, y, color.RGBA{uint8(x / 2), 60, 200, 255})
		}
	}
	noise := image.NewRGBA(image.Rect(0, 0, 200, 200))
	rand.New(rand.NewSource(11)).Read(noise.Pix)

	for name, src := range map[string]image.Image{
		"radial":     radial(256),
		"vertical":   vertical,
		"horizontal": horizontal,
		"noise":      noise,
	} {
		res, err := Synthesize(src, Options{Height: 512})
		require.NoError(t, err, name)
		assert.Zero(t, WrapDifference(res.Texture), name)
	}
}

func TestSynthesizeEdgeLines(t *testing.T) {
	const side = 512
	src := solid(side, color.RGBA{100, 100, 100, 255})
	for y := 0; y < side; y++ {
		src.SetRGBA(0, y, color.RGBA{255, 255, 255, 255})
		src.SetRGBA(side-1, y, color.RGBA{255, 255, 255, 255})
	}

	res, err := Synthesize(src, Options{})
	require.NoError(t, err)
	assert.Equal(t, EdgeColor{R: 100, G: 100, B: 100}, res.Edge)

	w := res.Texture.Rect.Dx()
	first, last := columnMean(res.Texture, 0), columnMean(res.Texture, w-1)
	for c := 0; c < 3; c++ {
		assert.InDelta(t, 100, first[c], 10)
		assert.InDelta(t, 100, last[c], 10)
	}
	assert.Less(t, WrapDifference(res.Texture), 10.0)

	// The lines meet the front/back boundaries, where the seam fades
	// pull them back to the edge color.
	for _, x := range []int{w/4 - 1, w / 4, 3*w/4 - 1, 3 * w / 4} {
		m := columnMean(res.Texture, x)
		assert.Less(t, m[0], 140.0, "column %d", x)
	}
}

func TestSynthesizeDegenerate(t *testing.T) {
	res, err := Synthesize(solid(1, color.RGBA{0, 200, 0, 255}), Options{Height: 32})
	require.NoError(t, err)
	assert.True(t, res.Degenerate)
	assert.Equal(t, NeutralGray, res.Edge)
	assert.Equal(t, image.Rect(0, 0, 64, 32), res.Texture.Rect)

	res, err = Synthesize(solid(40, color.RGBA{7, 8, 9, 255}), Options{Height: 32})
	require.NoError(t, err)
	assert.False(t, res.Degenerate)
	assert.Equal(t, EdgeColor{R: 7, G: 8, B: 9}, res.Edge)
}

func TestSynthesizeRejectsNonSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	res, err := Synthesize(src, Options{})
	assert.Nil(t, res)

	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 64, dimErr.Width)
	assert.Equal(t, 32, dimErr.Height)

	_, err = Synthesize(nil, Options{})
	assert.ErrorAs(t, err, &dimErr)
	_, err = Synthesize(image.NewRGBA(image.Rect(0, 0, 0, 0)), Options{})
	assert.ErrorAs(t, err, &dimErr)
}

func TestSynthesizeTreatsSourceAsOpaque(t *testing.T) {
	src := solid(64, color.RGBA{0, 0, 0, 0})
	res, err := Synthesize(src, Options{Height: 16})
	require.NoError(t, err)
	for i := 3; i < len(res.Texture.Pix); i += 4 {
		require.Equal(t, uint8(255), res.Texture.Pix[i])
	}
}

func TestBumpMap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(2, 0, color.RGBA{128, 128, 128, 255})
	img.SetRGBA(3, 0, color.RGBA{100, 100, 100, 255})

	bump := BumpMap(img, 0)
	require.Equal(t, img.Rect, bump.Rect)

	want := func(v float64) float64 {
		c := (v/255-0.5)*DefaultContrast + 0.5
		if c < 0 {
			c = 0
		}
		if c > 1 {
			c = 1
		}
		return c * 255
	}
	assert.InDelta(t, 0, float64(bump.GrayAt(0, 0).Y), 1)
	assert.InDelta(t, 255, float64(bump.GrayAt(1, 0).Y), 1)
	assert.InDelta(t, want(128), float64(bump.GrayAt(2, 0).Y), 1.5)
	assert.InDelta(t, want(100), float64(bump.GrayAt(3, 0).Y), 1.5)

	// Contrast 1 leaves channels alone, so only the luma weights apply.
	red := image.NewRGBA(image.Rect(2, 3, 5, 5))
	draw.Draw(red, red.Rect, image.NewUniform(color.RGBA{255, 0, 0, 255}), image.Point{}, draw.Src)
	gray := BumpMap(red, 1)
	require.Equal(t, red.Rect, gray.Rect)
	for y := red.Rect.Min.Y; y < red.Rect.Max.Y; y++ {
		for x := red.Rect.Min.X; x < red.Rect.Max.X; x++ {
			assert.InDelta(t, 77, float64(gray.GrayAt(x, y).Y), 1)
		}
	}
}
