package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/iox/imagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeStdout(t *testing.T, terminal bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldTerm := stdout, stdoutIsTerminal
	stdout = &buf
	stdoutIsTerminal = func() bool { return terminal }
	t.Cleanup(func() { stdout, stdoutIsTerminal = oldOut, oldTerm })
	return &buf
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 3))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestWriteImageFile(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	path := filepath.Join(dir, "texture.png")
	require.NoError(t, WriteImage(path, img))
	got, f, err := imagex.Open(path)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(img.At(2, 1)), color.RGBAModel.Convert(got.At(2, 1)))

	jpg := filepath.Join(dir, "planet.jpg")
	require.NoError(t, WriteImage(jpg, img))
	_, f, err = imagex.Open(jpg)
	require.NoError(t, err)
	assert.Equal(t, imagex.JPEG, f)

	assert.Error(t, WriteImage(filepath.Join(dir, "planet.xyz"), img))
}

func TestWriteImageStdout(t *testing.T) {
	buf := fakeStdout(t, false)
	require.NoError(t, WriteImage("", testImage()))
	got, err := png.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), got.Bounds())
}

func TestWriteRefusesTerminal(t *testing.T) {
	buf := fakeStdout(t, true)
	assert.ErrorIs(t, CheckStdout(""), ErrTerminal)
	assert.NoError(t, CheckStdout("out.png"))
	assert.ErrorIs(t, WriteImage("", testImage()), ErrTerminal)
	assert.ErrorIs(t, WriteEncoded("", []byte("png"), nil), ErrTerminal)
	assert.Zero(t, buf.Len())
}

func TestWriteEncoded(t *testing.T) {
	img := testImage()
	var enc bytes.Buffer
	require.NoError(t, png.Encode(&enc, img))

	path := filepath.Join(t.TempDir(), "texture.png")
	require.NoError(t, WriteEncoded(path, enc.Bytes(), img))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, enc.Bytes(), data)

	buf := fakeStdout(t, false)
	require.NoError(t, WriteEncoded("", enc.Bytes(), img))
	assert.Equal(t, enc.Bytes(), buf.Bytes())

	// Another extension re-encodes from the image.
	bmp := filepath.Join(t.TempDir(), "texture.bmp")
	require.NoError(t, WriteEncoded(bmp, enc.Bytes(), img))
	_, f, err := imagex.Open(bmp)
	require.NoError(t, err)
	assert.Equal(t, imagex.BMP, f)
}

func TestFormat(t *testing.T) {
	f, err := Format("")
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)

	f, err = Format("a/b/planet.TIFF")
	require.NoError(t, err)
	assert.Equal(t, imagex.TIFF, f)

	_, err = Format("noext")
	assert.Error(t, err)
}
