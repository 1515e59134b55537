//go:build vips

package vips

import (
	"fmt"
	"log"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// BackendName is reported by Backend.Name.
const BackendName = "vips"

var saveTypes = []struct {
	ext string
	typ vips.ImageType
}{
	{".jpg", vips.ImageTypeJPEG},
	{".jpeg", vips.ImageTypeJPEG},
	{".png", vips.ImageTypePNG},
	{".gif", vips.ImageTypeGIF},
	{".webp", vips.ImageTypeWEBP},
	{".tif", vips.ImageTypeTIFF},
	{".tiff", vips.ImageTypeTIFF},
}

// Backend implements primitive.Backend on libvips.
type Backend struct {
	logger *log.Logger
	debug  bool

	mu      sync.Mutex
	started bool
	stopped bool
}

var _ primitive.Backend = (*Backend)(nil)

// NewBackend returns a Backend that routes libvips log messages to logger.
// Without debug only warnings and worse are passed on.
func NewBackend(logger *log.Logger, debug bool) *Backend {
	if logger == nil {
		logger = log.Default()
	}
	return &Backend{logger: logger, debug: debug}
}

// Name identifies the backend in logs.
func (b *Backend) Name() string { return BackendName }

// Startup initialises libvips. concurrency sets the libvips thread pool
// size; zero keeps the libvips default.
func (b *Backend) Startup(name string, concurrency int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started || b.stopped {
		return fmt.Errorf("backend %s cannot be started again for %q: %w", BackendName, name, primitive.ErrBadArgument)
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency %d: %w", concurrency, primitive.ErrBadArgument)
	}

	level := vips.LogLevelWarning
	if b.debug {
		level = vips.LogLevelDebug
	}
	vips.LoggingSettings(b.logVips, level)
	vips.Startup(&vips.Config{ConcurrencyLevel: concurrency})

	b.started = true
	return nil
}

func (b *Backend) logVips(domain string, level vips.LogLevel, message string) {
	b.logger.Printf("%s: %s", domain, message)
}

// Shutdown stops libvips.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return
	}
	vips.Shutdown()
	b.started = false
	b.stopped = true
}

// Formats lists the extensions libvips was built to save.
func (b *Backend) Formats() []string {
	var out []string
	for _, t := range saveTypes {
		if vips.IsTypeSupported(t.typ) {
			out = append(out, t.ext)
		}
	}
	return out
}

// Decode loads an encoded buffer and applies its EXIF orientation.
func (b *Backend) Decode(buf []byte) (primitive.Image, error) {
	if primitive.DetectFormat(buf) == primitive.FileFormatUnknown {
		return nil, fmt.Errorf("decode: %w", primitive.ErrUnsupportedFormat)
	}
	ref, err := vips.NewImageFromBuffer(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if err := ref.AutoRotate(); err != nil {
		ref.Close()
		return nil, fmt.Errorf("failed to orient image: %w", err)
	}
	if err := normalise(ref); err != nil {
		ref.Close()
		return nil, err
	}
	return &Image{ref: ref}, nil
}

// LoadSVG rasterises an SVG document through librsvg.
func (b *Backend) LoadSVG(svg []byte) (primitive.Image, error) {
	ref, err := vips.NewImageFromBuffer(svg)
	if err != nil {
		return nil, fmt.Errorf("failed to load svg: %w", err)
	}
	return &Image{ref: ref}, nil
}

// Release closes the libvips reference.
func (b *Backend) Release(in primitive.Image) {
	if img, err := asImage(in); err == nil {
		img.ref.Close()
	}
}
