package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Crop cuts the image down to width x height, keeping the region named by
// gravity. A zero dimension keeps the current one and a dimension larger
// than the image is clamped to it: Crop never pads. Cropping to the current
// size is a no-op. GravitySmart trims by entropy instead of anchoring.
// An unknown gravity fails with ErrUnknownGravity even when the crop would
// be a no-op.
func (img *Image) Crop(width, height int, gravity Gravity) error {
	const op = "crop"
	if err := img.check(op); err != nil {
		return err
	}
	if width < 0 || height < 0 {
		return img.fail(op, ErrTransform, fmt.Errorf("target %dx%d: %w", width, height, ErrInvalidArgument))
	}

	s := &scratch{backend: img.ctx.backend}
	out, err := img.cropImage(s, img.img, width, height, gravity)
	if err != nil {
		s.release()
		return img.fail(op, ErrTransform, err)
	}
	s.release(out)
	img.replace(out)
	return nil
}

// cropImage returns in cut down per Crop's rules. The result is in itself
// when nothing needs cutting.
func (img *Image) cropImage(s *scratch, in primitive.Image, width, height int, gravity Gravity) (primitive.Image, error) {
	w, h := clampDim(width, in.Width()), clampDim(height, in.Height())

	if gravity == GravitySmart {
		return smartCrop(s, img.ctx.backend, in, w, h)
	}

	r, err := anchor(gravity, in.Width(), in.Height(), w, h)
	if err != nil {
		return nil, err
	}
	if w == in.Width() && h == in.Height() {
		return in, nil
	}

	img.ctx.debugf("crop %s %dx%d+%d+%d", gravity, r.Width, r.Height, r.X, r.Y)
	return s.keep(img.ctx.backend.ExtractArea(in, r.X, r.Y, r.Width, r.Height))
}

// clampDim treats zero as "keep" and never exceeds the current dimension.
func clampDim(target, current int) int {
	if target == 0 || target > current {
		return current
	}
	return target
}

// SmartCrop trims the image to width x height by repeatedly discarding the
// edge slice with the lower entropy. Unlike Crop, it fails with
// ErrOutOfBounds when the target is larger than the image.
func (img *Image) SmartCrop(width, height int) error {
	const op = "smart crop"
	if err := img.check(op); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return img.fail(op, ErrTransform, fmt.Errorf("target %dx%d: %w", width, height, ErrInvalidArgument))
	}

	s := &scratch{backend: img.ctx.backend}
	out, err := smartCrop(s, img.ctx.backend, img.img, width, height)
	if err != nil {
		s.release()
		return img.fail(op, ErrTransform, err)
	}
	s.release(out)
	img.replace(out)
	return nil
}
