package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultHeight, o.Height)
	assert.Equal(t, FilterBiLinear, o.Filter)
	assert.Equal(t, DefaultBackTint, o.BackTint)
	assert.Equal(t, DefaultBandFade, o.BandFade)
	assert.Equal(t, DefaultSeamFade, o.SeamFade)
	assert.Equal(t, DefaultWrapBlend, o.WrapBlend)

	o = Options{BackTint: 1e-9, BandFade: 0.5}.withDefaults()
	assert.Equal(t, 1e-9, o.BackTint)
	assert.Equal(t, 0.5, o.BandFade)
	assert.Equal(t, DefaultPoleFade, o.PoleFade)
}

func TestOptionsValidateReportsFirstBadField(t *testing.T) {
	o := Options{DiscScale: 2, BackOpacity: -1, WrapBlend: 3}
	for i := 0; i < 20; i++ {
		err := o.Validate()
		require.Error(t, err)
		assert.Equal(t, "texture: disc scale 2 out of range [0,1]", err.Error())
	}

	err := Options{SeamFade: 1.5, WrapBlend: -0.1}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seam fade")

	assert.NoError(t, Options{PoleFade: 0.5, BackTint: 1}.Validate())
	assert.Error(t, Options{PoleFade: 0.6}.Validate())
}

func TestTinyBackTintKeepsMirror(t *testing.T) {
	const h = 32
	edge := EdgeColor{R: 128, G: 128, B: 128}
	src := solid(16, color.RGBA{255, 255, 255, 255})

	plain, err := Compose(src, edge, Options{Height: h, BackTint: 1e-9, BackOpacity: 1})
	require.NoError(t, err)
	tinted, err := Compose(src, edge, Options{Height: h, BackOpacity: 1})
	require.NoError(t, err)

	// A back strip pixel away from every fade.
	p := image.Pt(h/8, h/2)
	assert.Equal(t, uint8(255), plain.RGBAAt(p.X, p.Y).R)
	assert.Less(t, tinted.RGBAAt(p.X, p.Y).R, uint8(255))
}
