//go:build vips

package vips

import (
	"fmt"
	"image"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Resize scales with a Lanczos3 kernel.
func (b *Backend) Resize(in primitive.Image, scale float64) (primitive.Image, error) {
	if !(scale > 0) {
		return nil, fmt.Errorf("scale %v: %w", scale, primitive.ErrBadArgument)
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.Resize(scale, vips.KernelLanczos3)
	})
}

func (b *Backend) ExtractArea(in primitive.Image, left, top, width, height int) (primitive.Image, error) {
	r := image.Rect(left, top, left+width, top+height)
	if width <= 0 || height <= 0 || !r.In(image.Rect(0, 0, in.Width(), in.Height())) {
		return nil, fmt.Errorf("extract %v from %dx%d: %w", r, in.Width(), in.Height(), primitive.ErrBadRegion)
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.ExtractArea(left, top, width, height)
	})
}

// Embed builds the padded image as in + (1 - mask) * background, where mask
// is one over the placed image and zero over the padding.
func (b *Backend) Embed(in primitive.Image, left, top, width, height int, background []float64) (primitive.Image, error) {
	if !image.Rect(left, top, left+in.Width(), top+in.Height()).In(image.Rect(0, 0, width, height)) {
		return nil, fmt.Errorf("embed %dx%d at (%d,%d) in %dx%d: %w",
			in.Width(), in.Height(), left, top, width, height, primitive.ErrBadRegion)
	}
	bands := in.Bands()
	if len(background) != 1 && len(background) != bands {
		return nil, fmt.Errorf("%d background values for %d bands: %w", len(background), bands, primitive.ErrBadBands)
	}

	scale := make([]float64, bands)
	offset := make([]float64, bands)
	for i := range scale {
		v := background[0]
		if len(background) > 1 {
			v = background[i]
		}
		scale[i], offset[i] = -v, v
	}

	format := bandFormats[in.Format()]
	mask, err := derive(in, func(ref *vips.ImageRef) error {
		if err := ref.Linear([]float64{0}, []float64{1}); err != nil {
			return err
		}
		if err := ref.Embed(left, top, width, height, vips.ExtendBlack); err != nil {
			return err
		}
		return ref.Linear(scale, offset)
	})
	if err != nil {
		return nil, err
	}
	defer mask.ref.Close()

	return derive(in, func(ref *vips.ImageRef) error {
		if err := ref.Embed(left, top, width, height, vips.ExtendBlack); err != nil {
			return err
		}
		if err := ref.Add(mask.ref); err != nil {
			return err
		}
		return ref.Cast(format)
	})
}

func (b *Backend) ExtractBand(in primitive.Image, band, n int) (primitive.Image, error) {
	if band < 0 || n <= 0 || band+n > in.Bands() {
		return nil, fmt.Errorf("bands %d+%d of %d: %w", band, n, in.Bands(), primitive.ErrBadBands)
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.ExtractBand(band, n)
	})
}

func (b *Backend) BandJoin(in primitive.Image, others ...primitive.Image) (primitive.Image, error) {
	refs := make([]*vips.ImageRef, len(others))
	for i, o := range others {
		img, err := asImage(o)
		if err != nil {
			return nil, err
		}
		if o.Width() != in.Width() || o.Height() != in.Height() || o.Format() != in.Format() {
			return nil, fmt.Errorf("band join %dx%d %s with %dx%d %s: %w",
				in.Width(), in.Height(), in.Format(), o.Width(), o.Height(), o.Format(), primitive.ErrMismatch)
		}
		refs[i] = img.ref
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.BandJoin(refs...)
	})
}

func (b *Backend) Linear(in primitive.Image, a, c float64) (primitive.Image, error) {
	return derive(in, func(ref *vips.ImageRef) error {
		if err := ref.Linear([]float64{a}, []float64{c}); err != nil {
			return err
		}
		return ref.Cast(vips.BandFormatFloat)
	})
}

func (b *Backend) Multiply(left, right primitive.Image) (primitive.Image, error) {
	r, err := asImage(right)
	if err != nil {
		return nil, err
	}
	if left.Width() != right.Width() || left.Height() != right.Height() {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w",
			left.Width(), left.Height(), right.Width(), right.Height(), primitive.ErrMismatch)
	}
	if lb, rb := left.Bands(), right.Bands(); lb != rb && lb != 1 && rb != 1 {
		return nil, fmt.Errorf("multiply %d bands by %d: %w", lb, rb, primitive.ErrBadBands)
	}
	return derive(left, func(ref *vips.ImageRef) error {
		if err := ref.Multiply(r.ref); err != nil {
			return err
		}
		return ref.Cast(vips.BandFormatFloat)
	})
}

func (b *Backend) Cast(in primitive.Image, format primitive.BandFormat) (primitive.Image, error) {
	target, ok := bandFormats[format]
	if !ok {
		return nil, fmt.Errorf("cast to %s: %w", format, primitive.ErrBadArgument)
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.Cast(target)
	})
}

// Entropy is hist_find followed by hist_entropy.
func (b *Backend) Entropy(in primitive.Image) (float64, error) {
	hist, err := derive(in, func(ref *vips.ImageRef) error {
		return ref.HistogramFind()
	})
	if err != nil {
		return 0, err
	}
	defer hist.ref.Close()
	return hist.ref.HistogramEntropy()
}

func (b *Backend) GaussBlur(in primitive.Image, sigma float64) (primitive.Image, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("sigma %v: %w", sigma, primitive.ErrBadArgument)
	}
	return derive(in, func(ref *vips.ImageRef) error {
		return ref.GaussianBlur(sigma)
	})
}
