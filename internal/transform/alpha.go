package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform/internal/primitive"
)

const roundMask = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">` +
	`<rect x="0" y="0" width="%d" height="%d" rx="%d" ry="%d" fill="#fff"/></svg>`

// alphaCeiling is the opaque alpha value for an interpretation.
func alphaCeiling(interp primitive.Interpretation) float64 {
	switch interp {
	case primitive.InterpretationRGB16, primitive.InterpretationGrey16:
		return 65535
	}
	return 255
}

// splitAlpha separates the colour bands of in from its alpha band. alpha is
// nil when in has none.
func splitAlpha(s *scratch, b primitive.Backend, in primitive.Image) (colour, alpha primitive.Image, err error) {
	if !primitive.HasAlpha(in) {
		return in, nil, nil
	}
	bands := in.Bands()
	colour, err = s.keep(b.ExtractBand(in, 0, bands-1))
	if err != nil {
		return nil, nil, err
	}
	alpha, err = s.keep(b.ExtractBand(in, bands-1, 1))
	if err != nil {
		return nil, nil, err
	}
	return colour, alpha, nil
}

// Round gives the image rounded corners with radii rx and ry by replacing
// or combining its alpha band with a rounded-rectangle mask. The result
// always has the original colour bands plus exactly one alpha band.
func (img *Image) Round(rx, ry int) error {
	const op = "round"
	if err := img.check(op); err != nil {
		return err
	}
	if rx < 0 || ry < 0 {
		return img.fail(op, ErrTransform, fmt.Errorf("radius %dx%d: %w", rx, ry, ErrInvalidArgument))
	}

	s := &scratch{backend: img.ctx.backend}
	out, err := roundCorners(s, img.ctx.backend, img.img, rx, ry)
	if err != nil {
		s.release()
		return img.fail(op, ErrTransform, err)
	}
	s.release(out)
	img.replace(out)
	return nil
}

func roundCorners(s *scratch, b primitive.Backend, in primitive.Image, rx, ry int) (primitive.Image, error) {
	w, h := in.Width(), in.Height()
	svg := fmt.Sprintf(roundMask, w, h, w, h, w, h, rx, ry)

	rendered, err := s.keep(b.LoadSVG([]byte(svg)))
	if err != nil {
		return nil, fmt.Errorf("render mask: %w", err)
	}

	colour, alpha, err := splitAlpha(s, b, in)
	if err != nil {
		return nil, err
	}
	mask, maskAlpha, err := splitAlpha(s, b, rendered)
	if err != nil {
		return nil, err
	}
	if maskAlpha != nil {
		mask = maskAlpha
	}

	imageMax := alphaCeiling(colour.Interpretation())
	maskMax := alphaCeiling(mask.Interpretation())

	switch {
	case alpha != nil:
		// imageMax * (mask/maskMax) * (alpha/imageMax)
		m, err := s.keep(b.Linear(mask, 1/maskMax, 0))
		if err != nil {
			return nil, err
		}
		a, err := s.keep(b.Linear(alpha, 1/imageMax, 0))
		if err != nil {
			return nil, err
		}
		prod, err := s.keep(b.Multiply(m, a))
		if err != nil {
			return nil, err
		}
		if mask, err = s.keep(b.Linear(prod, imageMax, 0)); err != nil {
			return nil, err
		}
	case imageMax != maskMax:
		if mask, err = s.keep(b.Linear(mask, imageMax/maskMax, 0)); err != nil {
			return nil, err
		}
	}

	mask, err = s.keep(b.Cast(mask, colour.Format()))
	if err != nil {
		return nil, err
	}
	return s.keep(b.BandJoin(colour, mask))
}
