package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// resizeBias is added to every target dimension before dividing by the
// source dimension, so a scale that should land exactly on the target is
// never truncated one pixel short by the resampler.
const resizeBias = 0.1

func ratio(target, source int) float64 {
	return (float64(target) + resizeBias) / float64(source)
}

// fitScale is the largest scale that keeps a width x height image inside the
// w x h box. A zero target dimension is unconstrained.
func fitScale(w, h, width, height int) float64 {
	switch {
	case w > 0 && h > 0:
		return math.Min(ratio(w, width), ratio(h, height))
	case w > 0:
		return ratio(w, width)
	default:
		return ratio(h, height)
	}
}

// coverScale is the smallest scale that makes a width x height image cover
// the w x h box. A zero target dimension is unconstrained.
func coverScale(w, h, width, height int) float64 {
	switch {
	case w > 0 && h > 0:
		return math.Max(ratio(w, width), ratio(h, height))
	case w > 0:
		return ratio(w, width)
	default:
		return ratio(h, height)
	}
}

// Resize scales the image into a width x height box using mode. Either
// dimension may be zero to derive it from the other, preserving the aspect
// ratio.
//
//   - ResizeFit scales to fit inside the box. The result may be smaller than
//     the box on one axis.
//   - ResizeFill scales to fit and then pads the short axis, centred, with
//     the background colour.
//   - ResizeCrop scales to cover the box and crops the excess around the
//     centre.
func (img *Image) Resize(width, height int, mode ResizeMode) error {
	const op = "resize"
	if err := img.check(op); err != nil {
		return err
	}
	if width < 0 || height < 0 || (width == 0 && height == 0) {
		return img.fail(op, ErrTransform, fmt.Errorf("target %dx%d: %w", width, height, ErrInvalidArgument))
	}

	b := img.ctx.backend
	s := &scratch{backend: b}
	src := img.img

	var (
		out primitive.Image
		err error
	)
	switch mode {
	case ResizeFit, ResizeFill:
		scale := fitScale(width, height, src.Width(), src.Height())
		out, err = s.keep(b.Resize(src, scale))
		if err == nil && mode == ResizeFill {
			out, err = img.pad(s, out, width, height)
		}
	case ResizeCrop:
		scale := coverScale(width, height, src.Width(), src.Height())
		out, err = s.keep(b.Resize(src, scale))
		if err == nil {
			out, err = img.cropImage(s, out, width, height, GravityCenter)
		}
	default:
		return img.fail(op, ErrTransform, fmt.Errorf("%s: %w", mode, ErrUnknownMode))
	}

	if err != nil {
		s.release()
		return img.fail(op, ErrTransform, err)
	}

	img.ctx.debugf("resize %s %dx%d -> %dx%d", mode, src.Width(), src.Height(), out.Width(), out.Height())
	s.release(out)
	img.replace(out)
	return nil
}

// pad embeds in, centred, in the box formed by the requested dimensions.
// A zero request keeps the current dimension. Offsets use integer halving.
func (img *Image) pad(s *scratch, in primitive.Image, width, height int) (primitive.Image, error) {
	tw, th := in.Width(), in.Height()
	if width > tw {
		tw = width
	}
	if height > th {
		th = height
	}
	if tw == in.Width() && th == in.Height() {
		return in, nil
	}

	b := img.ctx.backend
	var alpha *float64
	transparent := 0.0

	switch {
	case primitive.HasAlpha(in):
		alpha = &transparent
	case img.ctx.padAlpha == PadAlphaAlways:
		withAlpha, err := addOpaqueAlpha(s, b, in)
		if err != nil {
			return nil, err
		}
		in = withAlpha
		alpha = &transparent
	}

	background := padValues(in, img.bg, alpha)
	left := (tw - in.Width()) / 2
	top := (th - in.Height()) / 2
	return s.keep(b.Embed(in, left, top, tw, th, background))
}

// addOpaqueAlpha appends a fully opaque alpha band to in.
func addOpaqueAlpha(s *scratch, b primitive.Backend, in primitive.Image) (primitive.Image, error) {
	first, err := s.keep(b.ExtractBand(in, 0, 1))
	if err != nil {
		return nil, err
	}
	opaque, err := s.keep(b.Linear(first, 0, in.Format().Max()))
	if err != nil {
		return nil, err
	}
	alpha, err := s.keep(b.Cast(opaque, in.Format()))
	if err != nil {
		return nil, err
	}
	return s.keep(b.BandJoin(in, alpha))
}

// Blur applies a Gaussian blur. sigma must be positive.
func (img *Image) Blur(sigma float64) error {
	const op = "blur"
	if err := img.check(op); err != nil {
		return err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return img.fail(op, ErrConfig, fmt.Errorf("sigma %v: %w", sigma, ErrInvalidArgument))
	}

	out, err := img.ctx.backend.GaussBlur(img.img, sigma)
	if err != nil {
		return img.fail(op, ErrTransform, err)
	}
	img.replace(out)
	return nil
}
