package planetizer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/kiesman99/planetize/pkg/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(side int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func smallConfig() Config {
	return Config{Texture: texture.Options{Height: 32}}
}

func TestRun(t *testing.T) {
	p := New(smallConfig())
	res, err := p.Run(context.Background(), Request{Crop: square(24, color.RGBA{200, 40, 40, 255})})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 64, 32), res.Texture.Bounds())
	assert.Equal(t, "#c82828", res.Edge.Hex())
	assert.Nil(t, res.Bump)
	assert.Nil(t, res.BumpPNG)

	img, err := png.Decode(bytes.NewReader(res.TexturePNG))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
	assert.False(t, p.Busy())
}

func TestRunBump(t *testing.T) {
	p := New(smallConfig())
	res, err := p.Run(context.Background(), Request{Crop: square(16, color.RGBA{90, 90, 90, 255}), Bump: true})
	require.NoError(t, err)
	require.NotNil(t, res.Bump)

	img, err := png.Decode(bytes.NewReader(res.BumpPNG))
	require.NoError(t, err)
	_, ok := img.(*image.Gray)
	assert.True(t, ok, "bump PNG decodes as %T", img)
	assert.Equal(t, res.Texture.Bounds(), img.Bounds())
}

func TestRunOptionsOverride(t *testing.T) {
	p := New(smallConfig())
	res, err := p.Run(context.Background(), Request{
		Crop:    square(8, color.RGBA{1, 2, 3, 255}),
		Options: &texture.Options{Height: 16},
	})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 16), res.Texture.Bounds())
}

func TestRunNonSquare(t *testing.T) {
	p := New(smallConfig())
	_, err := p.Run(context.Background(), Request{Crop: image.NewRGBA(image.Rect(0, 0, 10, 5))})

	var dimErr *texture.DimensionError
	require.True(t, errors.As(err, &dimErr), "got %v", err)
	assert.Equal(t, 10, dimErr.Width)
	assert.False(t, p.Busy())
}

func TestRunCancelledBeforeStart(t *testing.T) {
	p := New(smallConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, Request{Crop: square(8, color.RGBA{A: 255})})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestRunCancelledDuringDelay(t *testing.T) {
	cfg := smallConfig()
	cfg.Delay = time.Minute
	p := New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := p.Run(ctx, Request{Crop: square(8, color.RGBA{A: 255})})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, res)
	assert.False(t, p.Busy())
}

func TestRejectWhileBusy(t *testing.T) {
	cfg := smallConfig()
	cfg.Delay = time.Minute
	p := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Run(ctx, Request{Crop: square(8, color.RGBA{A: 255})})
		done <- err
	}()
	require.Eventually(t, p.Busy, time.Second, time.Millisecond)

	_, err := p.Run(context.Background(), Request{Crop: square(8, color.RGBA{A: 255})})
	assert.ErrorIs(t, err, ErrBusy)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, p.Busy())

	// The slot is free again.
	p.delay = 0
	_, err = p.Run(context.Background(), Request{Crop: square(8, color.RGBA{A: 255})})
	assert.NoError(t, err)
}

func TestCancelPrevious(t *testing.T) {
	cfg := smallConfig()
	cfg.Policy = CancelPrevious
	cfg.Delay = 50 * time.Millisecond
	p := New(cfg)

	first := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background(), Request{Crop: square(8, color.RGBA{A: 255})})
		first <- err
	}()
	require.Eventually(t, p.Busy, time.Second, time.Millisecond)

	res, err := p.Run(context.Background(), Request{Crop: square(8, color.RGBA{R: 255, A: 255})})
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", res.Edge.Hex())
	assert.ErrorIs(t, <-first, context.Canceled)
}

func TestSetOptions(t *testing.T) {
	p := New(Config{Texture: texture.Options{Height: -1}})
	assert.Equal(t, texture.Options{}, p.Options())

	assert.Error(t, p.SetOptions(texture.Options{BackTint: 2}))
	require.NoError(t, p.SetOptions(texture.Options{Height: 64}))
	assert.Equal(t, 64, p.Options().Height)
}

func TestParsePolicy(t *testing.T) {
	for _, pol := range []Policy{Reject, CancelPrevious} {
		got, err := ParsePolicy(pol.String())
		require.NoError(t, err)
		assert.Equal(t, pol, got)
	}
	_, err := ParsePolicy("queue")
	assert.Error(t, err)
}
