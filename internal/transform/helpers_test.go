package transform

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"testing"

	"github.com/ironsheep/image-transform/internal/imaging"
	"github.com/ironsheep/image-transform/internal/primitive"
)

var errInjected = errors.New("injected failure")

// newContext starts a Context on the pure-Go backend with logging discarded.
func newContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	return newContextWith(t, imaging.NewBackend(), opts...)
}

func newContextWith(t *testing.T, b primitive.Backend, opts ...Option) *Context {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)
	ctx, err := Init("test", 0, b, opts...)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Shutdown() })
	return ctx
}

// decodeImage encodes src as PNG and decodes it through ctx. The image is
// closed when the test ends.
func decodeImage(t *testing.T, ctx *Context, src image.Image) *Image {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	img, err := ctx.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	t.Cleanup(func() { _ = img.Close() })
	return img
}

// solid returns an opaque w x h image of one colour.
func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// pattern returns an opaque image whose pixels are set by fn.
func pattern(w, h int, fn func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fn(x, y))
		}
	}
	return img
}

// sample reads one sample of the image's current pixels.
func sample(t *testing.T, img *Image, x, y, band int) float64 {
	t.Helper()
	p, ok := img.Primitive().(*imaging.Image)
	if !ok {
		t.Fatalf("unexpected primitive image %T", img.Primitive())
	}
	return p.At(x, y, band)
}

// newPlanar returns a 1x1 image with the given band layout.
func newPlanar(bands int, interp primitive.Interpretation, format primitive.BandFormat) primitive.Image {
	return imaging.NewImage(1, 1, bands, interp, format)
}

func near(a, b, tol float64) bool {
	d := a - b
	return d <= tol && d >= -tol
}

// faultyBackend wraps the pure-Go backend, failing chosen operations and
// recording releases.
type faultyBackend struct {
	*imaging.Backend

	failEmbed     bool
	failLoadSVG   bool
	entropyBudget int // fail once this many Entropy calls succeeded; <0 never
	entropyCalls  int
	released      []primitive.Image
}

func newFaultyBackend() *faultyBackend {
	return &faultyBackend{Backend: imaging.NewBackend(), entropyBudget: -1}
}

func (f *faultyBackend) Embed(in primitive.Image, left, top, width, height int, background []float64) (primitive.Image, error) {
	if f.failEmbed {
		return nil, errInjected
	}
	return f.Backend.Embed(in, left, top, width, height, background)
}

func (f *faultyBackend) LoadSVG(svg []byte) (primitive.Image, error) {
	if f.failLoadSVG {
		return nil, errInjected
	}
	return f.Backend.LoadSVG(svg)
}

func (f *faultyBackend) Entropy(in primitive.Image) (float64, error) {
	if f.entropyBudget >= 0 && f.entropyCalls >= f.entropyBudget {
		return 0, errInjected
	}
	f.entropyCalls++
	return f.Backend.Entropy(in)
}

func (f *faultyBackend) Release(img primitive.Image) {
	f.released = append(f.released, img)
}
