// Package source turns user images into the square crops the texture
// pipeline consumes.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"

	"cogentcore.org/core/base/iox/imagex"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"golang.org/x/image/draw"
)

// DefaultMaxSide bounds the side of a crop handed to the pipeline.
const DefaultMaxSide = 2048

// ErrUnsupportedFormat is returned for data that is not a known image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// sniffLen is the header size the filetype matchers inspect.
const sniffLen = 262

// Sniff reports the image format of the leading bytes of a file.
func Sniff(head []byte) (imagex.Formats, error) {
	if !filetype.IsImage(head) {
		return imagex.None, ErrUnsupportedFormat
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == types.Unknown {
		return imagex.None, ErrUnsupportedFormat
	}
	format, err := imagex.ExtToFormat(kind.Extension)
	if err != nil {
		return imagex.None, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	return format, nil
}

// Decode reads one image from r. Unknown data fails with
// ErrUnsupportedFormat before any decoder runs.
func Decode(r io.Reader) (image.Image, imagex.Formats, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(sniffLen)
	if _, err := Sniff(head); err != nil {
		return nil, imagex.None, err
	}
	img, format, err := imagex.Read(br)
	if err != nil {
		return nil, imagex.None, fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, imagex.Formats, error) {
	img, format, err := imagex.Open(path)
	if err != nil {
		return nil, imagex.None, fmt.Errorf("open %s: %w", path, err)
	}
	return img, format, nil
}

// CenterCrop cuts the largest centered square out of img, the same framing
// the capture view shows. The result has its origin at (0,0).
func CenterCrop(img image.Image) *image.RGBA {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	ox := b.Min.X + (b.Dx()-side)/2
	oy := b.Min.Y + (b.Dy()-side)/2

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(dst, dst.Bounds(), img, image.Pt(ox, oy), draw.Src)
	return dst
}

// Fit shrinks a square crop so its side is at most maxSide. Smaller crops
// are returned unchanged; a maxSide of zero or less disables the limit.
func Fit(crop *image.RGBA, maxSide int) *image.RGBA {
	side := crop.Rect.Dx()
	if maxSide <= 0 || side <= maxSide {
		return crop
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxSide, maxSide))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), crop, crop.Bounds(), draw.Src, nil)
	return dst
}

// Acquire decodes r and returns a square crop no larger than maxSide.
func Acquire(r io.Reader, maxSide int) (*image.RGBA, error) {
	img, _, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty image")
	}
	return Fit(CenterCrop(img), maxSide), nil
}

// AcquireFile is Acquire for a file on disk.
func AcquireFile(path string, maxSide int) (*image.RGBA, error) {
	img, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("open %s: empty image", path)
	}
	return Fit(CenterCrop(img), maxSide), nil
}
