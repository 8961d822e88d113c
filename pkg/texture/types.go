package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default pipeline parameters
const (
	DefaultHeight = 1024
	MinHeight     = 4

	DefaultDiscScale    = 0.95
	DefaultAnnulusInner = 0.85
	DefaultBackTint     = 0.3
	DefaultBackOpacity  = 0.7
	DefaultBandFade     = 0.15
	DefaultPoleFade     = 0.12
	DefaultSeamFade     = 0.06
	DefaultWrapBlend    = 0.04
)

// NeutralGray is the edge color used when the estimator samples no pixels.
var NeutralGray = EdgeColor{R: 128, G: 128, B: 128}

// ErrDegenerateInput reports that the edge annulus contained no pixels.
// It never fails a run; Synthesize records it in Result.Degenerate.
var ErrDegenerateInput = errors.New("texture: no sampleable edge pixels")

// DimensionError reports a source or target size the pipeline cannot use.
type DimensionError struct {
	Width, Height int
	Reason        string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("texture: invalid dimensions %dx%d: %s", e.Width, e.Height, e.Reason)
}

// EdgeColor is the representative background color of a source crop.
type EdgeColor struct {
	R, G, B uint8
}

// RGBA returns the color as an opaque color.RGBA.
func (c EdgeColor) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful returns the color in go-colorful's [0,1] representation.
func (c EdgeColor) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the color as #rrggbb.
func (c EdgeColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Options controls texture synthesis. The zero value is usable; every zero
// field takes its default, so a fraction cannot be set to exactly 0. Use a
// tiny positive value such as 1e-9 to switch a fade or the back tint off.
// The wrap blend always covers at least one column.
type Options struct {
	// Height of the equirectangular canvas; width is always 2*Height.
	Height int
	Filter Filter

	DiscScale    float64 // disc radius as a fraction of half the crop side
	AnnulusInner float64 // inner annulus radius as a fraction of the disc radius
	BackTint     float64 // how far the back fill is pulled toward the edge color
	BackOpacity  float64 // opacity of the back fill over the edge color base
	BandFade     float64 // front band edge fade, fraction of the band width
	PoleFade     float64 // pole fade, fraction of the canvas height
	SeamFade     float64 // front/back seam fade, fraction of the canvas width
	WrapBlend    float64 // wrap cross-blend zone, fraction of the canvas width
}

// withDefaults returns a copy of o with zero fields defaulted.
func (o Options) withDefaults() Options {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Filter == "" {
		o.Filter = FilterBiLinear
	}
	def(&o.DiscScale, DefaultDiscScale)
	def(&o.AnnulusInner, DefaultAnnulusInner)
	def(&o.BackTint, DefaultBackTint)
	def(&o.BackOpacity, DefaultBackOpacity)
	def(&o.BandFade, DefaultBandFade)
	def(&o.PoleFade, DefaultPoleFade)
	def(&o.SeamFade, DefaultSeamFade)
	def(&o.WrapBlend, DefaultWrapBlend)
	return o
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.Height < MinHeight {
		return &DimensionError{Width: 2 * o.Height, Height: o.Height, Reason: fmt.Sprintf("height must be at least %d", MinHeight)}
	}
	if _, err := ParseFilter(string(o.Filter)); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"disc scale", o.DiscScale},
		{"annulus inner", o.AnnulusInner},
		{"back tint", o.BackTint},
		{"back opacity", o.BackOpacity},
		{"band fade", o.BandFade},
		{"pole fade", o.PoleFade},
		{"seam fade", o.SeamFade},
		{"wrap blend", o.WrapBlend},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("texture: %s %v out of range [0,1]", f.name, f.v)
		}
	}
	if o.PoleFade > 0.5 {
		return fmt.Errorf("texture: pole fade %v overlaps the opposite pole", o.PoleFade)
	}
	return nil
}

// Result is the outcome of one synthesis run.
type Result struct {
	Texture    *image.RGBA
	Edge       EdgeColor
	Degenerate bool
	Duration   time.Duration
}
