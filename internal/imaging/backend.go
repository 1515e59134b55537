package imaging

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// BackendName is reported by Backend.Name.
const BackendName = "imaging"

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".bmp"}

// Backend implements primitive.Backend on pure-Go libraries.
//
// Decoding goes through gen2brain/jpegn for JPEG and disintegration/imaging
// for everything else, 8-bit resampling and blurring through
// disintegration/imaging, 16-bit resampling through golang.org/x/image/draw,
// histograms and row fan-out through bild, SVG rasterisation through
// oksvg/rasterx and WebP encoding through gen2brain/webp.
//
// # Thread Safety
//
// A Backend is safe for concurrent use. Images are immutable values, so
// operations on different images never interact.
type Backend struct {
	mu        sync.Mutex
	started   bool
	prevProcs int
}

var _ primitive.Backend = (*Backend)(nil)

// NewBackend returns a Backend that has not been started.
func NewBackend() *Backend {
	return &Backend{}
}

// Name identifies the backend in logs.
func (b *Backend) Name() string { return BackendName }

// Startup bounds the worker fan-out of the image libraries. Both
// disintegration/imaging and bild/parallel size their worker pools from
// GOMAXPROCS, so a positive concurrency is applied there and restored on
// Shutdown.
func (b *Backend) Startup(name string, concurrency int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return fmt.Errorf("backend %s already started for %q: %w", BackendName, name, primitive.ErrBadArgument)
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency %d: %w", concurrency, primitive.ErrBadArgument)
	}
	if concurrency > 0 {
		b.prevProcs = runtime.GOMAXPROCS(concurrency)
	}
	b.started = true
	return nil
}

// Shutdown restores GOMAXPROCS if Startup changed it.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.prevProcs > 0 {
		runtime.GOMAXPROCS(b.prevProcs)
		b.prevProcs = 0
	}
	b.started = false
}

// Formats lists the extensions Encode accepts.
func (b *Backend) Formats() []string {
	out := make([]string, len(supportedFormats))
	copy(out, supportedFormats)
	return out
}

// Release is a no-op: pure-Go images are reclaimed by the garbage collector.
func (b *Backend) Release(primitive.Image) {}
