//go:build vips

package vips

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Image wraps a libvips image reference. The reference is never mutated
// after construction: every operation works on a copy.
type Image struct {
	ref *vips.ImageRef
}

var _ primitive.Image = (*Image)(nil)

func (img *Image) Width() int  { return img.ref.Width() }
func (img *Image) Height() int { return img.ref.Height() }
func (img *Image) Bands() int  { return img.ref.Bands() }

func (img *Image) Interpretation() primitive.Interpretation {
	switch img.ref.Interpretation() {
	case vips.InterpretationBW:
		return primitive.InterpretationBW
	case vips.InterpretationGrey16:
		return primitive.InterpretationGrey16
	case vips.InterpretationSRGB, vips.InterpretationRGB:
		return primitive.InterpretationSRGB
	case vips.InterpretationRGB16:
		return primitive.InterpretationRGB16
	case vips.InterpretationCMYK:
		return primitive.InterpretationCMYK
	}
	return primitive.InterpretationMultiband
}

func (img *Image) Format() primitive.BandFormat {
	switch img.ref.BandFormat() {
	case vips.BandFormatUchar:
		return primitive.FormatUchar
	case vips.BandFormatUshort:
		return primitive.FormatUshort
	}
	return primitive.FormatFloat
}

var bandFormats = map[primitive.BandFormat]vips.BandFormat{
	primitive.FormatUchar:  vips.BandFormatUchar,
	primitive.FormatUshort: vips.BandFormatUshort,
	primitive.FormatFloat:  vips.BandFormatFloat,
}

func asImage(in primitive.Image) (*Image, error) {
	img, ok := in.(*Image)
	if !ok || img == nil || img.ref == nil {
		return nil, fmt.Errorf("image %T is not a vips image: %w", in, primitive.ErrMismatch)
	}
	return img, nil
}

// derive copies in and applies fn to the copy. The copy is closed if fn
// fails.
func derive(in primitive.Image, fn func(ref *vips.ImageRef) error) (*Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	ref, err := src.ref.Copy()
	if err != nil {
		return nil, err
	}
	if err := fn(ref); err != nil {
		ref.Close()
		return nil, err
	}
	return &Image{ref: ref}, nil
}

// normalise casts band formats the primitives do not model to float.
func normalise(ref *vips.ImageRef) error {
	switch ref.BandFormat() {
	case vips.BandFormatUchar, vips.BandFormatUshort, vips.BandFormatFloat:
		return nil
	}
	return ref.Cast(vips.BandFormatFloat)
}
