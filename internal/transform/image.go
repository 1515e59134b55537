package transform

import (
	"github.com/ironsheep/image-transform/internal/primitive"
)

// Image is a handle owning one decoded image.
//
// Every operation computes its result from immutable intermediate values
// and swaps the owned image only once all of its steps have succeeded, so a
// failed operation leaves the handle exactly as it was.
//
// An Image is not safe for concurrent use.
type Image struct {
	ctx    *Context
	img    primitive.Image
	bg     Background
	closed bool
}

// Width returns the current width in pixels.
func (img *Image) Width() int {
	if img.closed {
		return 0
	}
	return img.img.Width()
}

// Height returns the current height in pixels.
func (img *Image) Height() int {
	if img.closed {
		return 0
	}
	return img.img.Height()
}

// Bands returns the current band count.
func (img *Image) Bands() int {
	if img.closed {
		return 0
	}
	return img.img.Bands()
}

// Interpretation returns how the current bands are read.
func (img *Image) Interpretation() primitive.Interpretation {
	if img.closed {
		return primitive.InterpretationMultiband
	}
	return img.img.Interpretation()
}

// Format returns the current sample format.
func (img *Image) Format() primitive.BandFormat {
	if img.closed {
		return primitive.FormatUchar
	}
	return img.img.Format()
}

// HasAlpha reports whether the current image carries an alpha band.
func (img *Image) HasAlpha() bool {
	return !img.closed && primitive.HasAlpha(img.img)
}

// Primitive returns the owned backend image. It stays owned by img and is
// invalidated by the next successful operation or Close.
func (img *Image) Primitive() primitive.Image { return img.img }

// Close releases the owned image. Closing twice is a no-op.
func (img *Image) Close() error {
	if img.closed {
		return nil
	}
	img.ctx.backend.Release(img.img)
	img.img = nil
	img.closed = true
	img.ctx.release()
	return nil
}

func (img *Image) check(op string) error {
	if img.closed {
		return img.ctx.fail(op, ErrState, ErrClosed)
	}
	return nil
}

func (img *Image) fail(op string, kind, err error) error {
	return img.ctx.fail(op, kind, err)
}

// replace makes next the owned image and releases the previous one.
func (img *Image) replace(next primitive.Image) {
	if next == img.img {
		return
	}
	img.ctx.backend.Release(img.img)
	img.img = next
}

// scratch tracks the intermediate images of one operation so they can be
// released together once the result is known.
type scratch struct {
	backend primitive.Backend
	images  []primitive.Image
}

func (s *scratch) keep(img primitive.Image, err error) (primitive.Image, error) {
	if err == nil && img != nil {
		s.images = append(s.images, img)
	}
	return img, err
}

// release frees every tracked image except the ones listed.
func (s *scratch) release(except ...primitive.Image) {
	seen := make(map[primitive.Image]bool, len(s.images))
	for _, e := range except {
		seen[e] = true
	}
	for _, img := range s.images {
		if seen[img] {
			continue
		}
		seen[img] = true
		s.backend.Release(img)
	}
	s.images = nil
}
