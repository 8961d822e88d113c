package texture

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Filter names the resampler used to stretch the source into the canvas.
type Filter string

// Supported filters
const (
	FilterNearest    Filter = "nearest"
	FilterBiLinear   Filter = "bilinear"
	FilterCatmullRom Filter = "catmullrom"
	FilterLanczos    Filter = "lanczos"
)

// Filters lists the accepted filter names.
var Filters = []Filter{FilterNearest, FilterBiLinear, FilterCatmullRom, FilterLanczos}

// ParseFilter converts a name to a Filter. The empty string is bilinear.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bilinear", "linear":
		return FilterBiLinear, nil
	case "nearest", "nn":
		return FilterNearest, nil
	case "catmullrom", "bicubic":
		return FilterCatmullRom, nil
	case "lanczos", "lanczos3":
		return FilterLanczos, nil
	}
	return "", fmt.Errorf("texture: unknown filter %q", name)
}

// scale stretches src into dr of dst, replacing what was there.
func (f Filter) scale(dst *image.RGBA, dr image.Rectangle, src image.Image) {
	if dr.Empty() {
		return
	}
	switch f {
	case FilterLanczos:
		r := resize.Resize(uint(dr.Dx()), uint(dr.Dy()), src, resize.Lanczos3)
		draw.Draw(dst, dr, r, r.Bounds().Min, draw.Src)
	case FilterNearest:
		draw.NearestNeighbor.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)
	case FilterCatmullRom:
		draw.CatmullRom.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)
	default:
		draw.BiLinear.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)
	}
}

// opaqueRGBA copies img into a new zero-origin RGBA with every alpha set
// to 255. Source alpha carries no meaning for the pipeline.
func opaqueRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
