//go:build vips

package vips

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-transform/internal/primitive"
)

var backend *Backend

func TestMain(m *testing.M) {
	backend = NewBackend(log.New(io.Discard, "", 0), false)
	if err := backend.Startup("vips-test", 0); err != nil {
		log.Fatalf("failed to start vips: %v", err)
	}
	code := m.Run()
	backend.Shutdown()
	os.Exit(code)
}

func decodeSolid(t *testing.T, w, h int, c color.NRGBA) primitive.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := backend.Decode(buf.Bytes())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Release(out) })
	return out
}

func TestBackend_Lifecycle(t *testing.T) {
	assert.Equal(t, BackendName, backend.Name())
	assert.Error(t, backend.Startup("again", 0))
	assert.Contains(t, backend.Formats(), ".png")
	assert.Contains(t, backend.Formats(), ".jpg")
}

func TestDecode(t *testing.T) {
	img := decodeSolid(t, 30, 20, color.NRGBA{10, 20, 30, 255})
	assert.Equal(t, 30, img.Width())
	assert.Equal(t, 20, img.Height())
	assert.Equal(t, primitive.FormatUchar, img.Format())

	_, err := backend.Decode([]byte("not an image"))
	assert.ErrorIs(t, err, primitive.ErrUnsupportedFormat)
}

func TestResizeAndExtract(t *testing.T) {
	img := decodeSolid(t, 80, 60, color.NRGBA{10, 20, 30, 255})

	half, err := backend.Resize(img, 0.5)
	require.NoError(t, err)
	defer backend.Release(half)
	assert.Equal(t, 40, half.Width())
	assert.Equal(t, 30, half.Height())
	assert.Equal(t, 80, img.Width(), "source must not change")

	area, err := backend.ExtractArea(img, 10, 10, 20, 15)
	require.NoError(t, err)
	defer backend.Release(area)
	assert.Equal(t, 20, area.Width())
	assert.Equal(t, 15, area.Height())

	_, err = backend.ExtractArea(img, 70, 0, 20, 10)
	assert.ErrorIs(t, err, primitive.ErrBadRegion)
}

func TestEmbed(t *testing.T) {
	img := decodeSolid(t, 20, 10, color.NRGBA{10, 20, 30, 255})

	out, err := backend.Embed(img, 0, 5, 20, 20, []float64{255, 0, 0})
	require.NoError(t, err)
	defer backend.Release(out)

	assert.Equal(t, 20, out.Width())
	assert.Equal(t, 20, out.Height())
	assert.Equal(t, primitive.FormatUchar, out.Format())
	assert.Equal(t, 3, out.Bands())

	_, err = backend.Embed(img, 5, 0, 20, 20, []float64{0})
	assert.ErrorIs(t, err, primitive.ErrBadRegion)
	_, err = backend.Embed(img, 0, 0, 20, 20, []float64{0, 0})
	assert.ErrorIs(t, err, primitive.ErrBadBands)
}

func TestBandsAndArithmetic(t *testing.T) {
	img := decodeSolid(t, 8, 8, color.NRGBA{10, 20, 30, 128})
	require.Equal(t, 4, img.Bands())

	alpha, err := backend.ExtractBand(img, 3, 1)
	require.NoError(t, err)
	defer backend.Release(alpha)
	assert.Equal(t, 1, alpha.Bands())

	scaled, err := backend.Linear(alpha, 2, 1)
	require.NoError(t, err)
	defer backend.Release(scaled)
	assert.Equal(t, primitive.FormatFloat, scaled.Format())

	product, err := backend.Multiply(alpha, alpha)
	require.NoError(t, err)
	defer backend.Release(product)
	assert.Equal(t, primitive.FormatFloat, product.Format())

	back, err := backend.Cast(product, primitive.FormatUchar)
	require.NoError(t, err)
	defer backend.Release(back)

	colour, err := backend.ExtractBand(img, 0, 3)
	require.NoError(t, err)
	defer backend.Release(colour)
	joined, err := backend.BandJoin(colour, back)
	require.NoError(t, err)
	defer backend.Release(joined)
	assert.Equal(t, 4, joined.Bands())

	_, err = backend.ExtractBand(img, 3, 2)
	assert.ErrorIs(t, err, primitive.ErrBadBands)
}

func TestEntropy(t *testing.T) {
	flat := decodeSolid(t, 16, 16, color.NRGBA{90, 90, 90, 255})
	e, err := backend.Entropy(flat)
	require.NoError(t, err)
	assert.InDelta(t, 0, e, 1e-9)
}

func TestGaussBlurAndSVG(t *testing.T) {
	img := decodeSolid(t, 16, 16, color.NRGBA{90, 90, 90, 255})
	blurred, err := backend.GaussBlur(img, 1.5)
	require.NoError(t, err)
	defer backend.Release(blurred)
	assert.Equal(t, 16, blurred.Width())

	_, err = backend.GaussBlur(img, 0)
	assert.ErrorIs(t, err, primitive.ErrBadArgument)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="8" viewBox="0 0 10 8"><rect x="0" y="0" width="10" height="8" rx="2" ry="2" fill="#fff"/></svg>`)
	mask, err := backend.LoadSVG(svg)
	require.NoError(t, err)
	defer backend.Release(mask)
	assert.Equal(t, 10, mask.Width())
	assert.Equal(t, 8, mask.Height())
	assert.Equal(t, 4, mask.Bands())
}

func TestEncode(t *testing.T) {
	img := decodeSolid(t, 12, 12, color.NRGBA{10, 20, 30, 128})

	for ext, want := range map[string]primitive.FileFormat{
		".png":  primitive.FileFormatPNG,
		".jpg":  primitive.FileFormatJPEG,
		".webp": primitive.FileFormatWebP,
	} {
		buf, err := backend.Encode(img, ext, primitive.EncodeOptions{Strip: true, Background: [3]uint8{255, 255, 255}})
		require.NoError(t, err, ext)
		assert.Equal(t, want, primitive.DetectFormat(buf), ext)
	}

	_, err := backend.Encode(img, ".bmp", primitive.EncodeOptions{})
	assert.ErrorIs(t, err, primitive.ErrUnsupportedFormat)
	_, err = backend.Encode(img, ".jpg", primitive.EncodeOptions{Quality: 101})
	assert.ErrorIs(t, err, primitive.ErrBadArgument)
}
