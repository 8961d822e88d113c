// Package texture turns a square photo into a seamless equirectangular
// planet texture.
//
// The pipeline runs in three synchronous steps. EstimateEdgeColor picks a
// background color from a ring near the crop's circular frame, Compose
// lays the photo and a mirrored back fill onto a 2:1 canvas with edge
// color fades, and BlendWrapSeam cross-fades the outermost columns so the
// texture wraps around a sphere without a stripe. Synthesize runs all
// three. No state is shared between runs.
package texture

import (
	"errors"
	"image"
	"time"
)

// Synthesize runs the full pipeline on a square source. It fails with a
// *DimensionError when src is not square or the options ask for an
// impossible canvas; it never returns a partially built texture.
func Synthesize(src image.Image, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	o := opts.withDefaults()

	if src == nil {
		return nil, &DimensionError{Reason: "no source image"}
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, &DimensionError{Width: b.Dx(), Height: b.Dy(), Reason: "empty source"}
	}
	if b.Dx() != b.Dy() {
		return nil, &DimensionError{Width: b.Dx(), Height: b.Dy(), Reason: "source crop must be square"}
	}

	crop := opaqueRGBA(src)
	log := Logger()

	edge, err := estimateEdgeColor(crop, o.DiscScale, o.AnnulusInner)
	degenerate := false
	if err != nil {
		if !errors.Is(err, ErrDegenerateInput) {
			return nil, err
		}
		degenerate = true
		log.Warn("edge annulus empty, using neutral gray", "side", b.Dx())
	}

	canvas, err := compose(crop, edge, o)
	if err != nil {
		return nil, err
	}
	k := BlendWrapSeam(canvas, o.WrapBlend)

	res := &Result{
		Texture:    canvas,
		Edge:       edge,
		Degenerate: degenerate,
		Duration:   time.Since(start),
	}
	log.Debug("texture synthesized",
		"side", b.Dx(),
		"width", canvas.Rect.Dx(),
		"height", canvas.Rect.Dy(),
		"edge", edge.Hex(),
		"wrap_columns", k,
		"duration", res.Duration)
	return res, nil
}
