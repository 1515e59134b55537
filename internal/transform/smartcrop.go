package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// smartSteps is the number of slices each axis is trimmed in, roughly.
const smartSteps = 10

// smartStep returns the slice size for trimming the given excesses in about
// smartSteps iterations. It is never less than one pixel.
func smartStep(xExcess, yExcess int) int {
	excess := max(xExcess, yExcess)
	step := (excess + smartSteps - 1) / smartSteps
	return max(step, 1)
}

// sliceSize is the width of the next slice cut from an axis with excess
// pixels left. The last slice takes the whole remainder once it is within
// two steps, so the axis never overshoots its target.
func sliceSize(excess, step int) int {
	if excess > 2*step {
		return step
	}
	return excess
}

// smartCrop trims in to w x h by entropy. Each round compares the left and
// right slices, then the top and bottom slices, and keeps the side with the
// strictly greater entropy; on a tie the left or top side is kept.
func smartCrop(s *scratch, b primitive.Backend, in primitive.Image, w, h int) (primitive.Image, error) {
	if w > in.Width() || h > in.Height() {
		return nil, fmt.Errorf("target %dx%d for %dx%d image: %w", w, h, in.Width(), in.Height(), ErrOutOfBounds)
	}

	step := smartStep(in.Width()-w, in.Height()-h)
	cur := in
	xDone, yDone := false, false

	for !xDone || !yDone {
		if !xDone {
			if excess := cur.Width() - w; excess > 0 {
				n := sliceSize(excess, step)
				next, err := trim(s, b, cur, n, true)
				if err != nil {
					return nil, err
				}
				cur = next
			}
			xDone = cur.Width() <= w
		}

		if !yDone {
			if excess := cur.Height() - h; excess > 0 {
				n := sliceSize(excess, step)
				next, err := trim(s, b, cur, n, false)
				if err != nil {
					return nil, err
				}
				cur = next
			}
			yDone = cur.Height() <= h
		}
	}
	return cur, nil
}

// trim removes an n-pixel slice from one end of an axis of in. The far
// (right or bottom) slice is discarded unless it has strictly more entropy
// than the near one.
func trim(s *scratch, b primitive.Backend, in primitive.Image, n int, horizontal bool) (primitive.Image, error) {
	width, height := in.Width(), in.Height()

	var near, far, keepNear, keepFar Rect
	if horizontal {
		near = Rect{0, 0, n, height}
		far = Rect{width - n, 0, n, height}
		keepNear = Rect{0, 0, width - n, height}
		keepFar = Rect{n, 0, width - n, height}
	} else {
		near = Rect{0, 0, width, n}
		far = Rect{0, height - n, width, n}
		keepNear = Rect{0, 0, width, height - n}
		keepFar = Rect{0, n, width, height - n}
	}

	nearEntropy, err := regionEntropy(s, b, in, near)
	if err != nil {
		return nil, err
	}
	farEntropy, err := regionEntropy(s, b, in, far)
	if err != nil {
		return nil, err
	}

	keep := keepNear
	if farEntropy > nearEntropy {
		keep = keepFar
	}
	return s.keep(b.ExtractArea(in, keep.X, keep.Y, keep.Width, keep.Height))
}

func regionEntropy(s *scratch, b primitive.Backend, in primitive.Image, r Rect) (float64, error) {
	region, err := s.keep(b.ExtractArea(in, r.X, r.Y, r.Width, r.Height))
	if err != nil {
		return 0, err
	}
	return b.Entropy(region)
}
