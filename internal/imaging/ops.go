package imaging

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Resize scales every band by scale with a Lanczos kernel for 8-bit samples
// and Catmull-Rom for 16-bit samples.
func (b *Backend) Resize(in primitive.Image, scale float64) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("resize scale %v: %w", scale, primitive.ErrBadArgument)
	}
	if src.format == primitive.FormatFloat {
		return nil, fmt.Errorf("resize %s samples: %w", src.format, primitive.ErrBadArgument)
	}

	w := scaledDim(src.width, scale)
	h := scaledDim(src.height, scale)
	out := NewImage(w, h, len(src.planes), src.interp, src.format)

	for i, p := range src.planes {
		dst := out.planes[i]
		switch src.format {
		case primitive.FormatUchar:
			r := imaging.Resize(p.u8, w, h, imaging.Lanczos)
			for j := range dst.u8.Pix {
				dst.u8.Pix[j] = r.Pix[j*4]
			}
		case primitive.FormatUshort:
			xdraw.CatmullRom.Scale(dst.u16, dst.u16.Bounds(), p.u16, p.u16.Bounds(), xdraw.Src, nil)
		}
	}
	return out, nil
}

func scaledDim(d int, scale float64) int {
	n := int(math.Round(float64(d) * scale))
	if n < 1 {
		return 1
	}
	return n
}

// ExtractArea copies a rectangle that must lie inside the image.
func (b *Backend) ExtractArea(in primitive.Image, left, top, width, height int) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	if left < 0 || top < 0 || width <= 0 || height <= 0 ||
		left+width > src.width || top+height > src.height {
		return nil, fmt.Errorf("extract %dx%d+%d+%d from %dx%d: %w",
			width, height, left, top, src.width, src.height, primitive.ErrBadRegion)
	}

	out := NewImage(width, height, len(src.planes), src.interp, src.format)
	for i := range src.planes {
		copyRect(out.planes[i], width, 0, 0, src.planes[i], src.width, left, top, width, height)
	}
	return out, nil
}

// Embed places in on a larger canvas filled with one background value per
// band. A single background value is used for every band.
func (b *Backend) Embed(in primitive.Image, left, top, width, height int, background []float64) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	if left < 0 || top < 0 || left+src.width > width || top+src.height > height {
		return nil, fmt.Errorf("embed %dx%d at +%d+%d in %dx%d: %w",
			src.width, src.height, left, top, width, height, primitive.ErrBadRegion)
	}
	if len(background) != 1 && len(background) != len(src.planes) {
		return nil, fmt.Errorf("%d background values for %d bands: %w",
			len(background), len(src.planes), primitive.ErrBadBands)
	}

	out := NewImage(width, height, len(src.planes), src.interp, src.format)
	for i := range out.planes {
		v := background[0]
		if len(background) > 1 {
			v = background[i]
		}
		fillPlane(out.planes[i], width*height, v)
		copyRect(out.planes[i], width, left, top, src.planes[i], src.width, 0, 0, src.width, src.height)
	}
	return out, nil
}

// ExtractBand returns n bands starting at band. The interpretation of the
// source is kept.
func (b *Backend) ExtractBand(in primitive.Image, band, n int) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	if band < 0 || n < 1 || band+n > len(src.planes) {
		return nil, fmt.Errorf("bands %d..%d of %d: %w", band, band+n-1, len(src.planes), primitive.ErrBadBands)
	}

	out := *src
	out.planes = append([]plane(nil), src.planes[band:band+n]...)
	return &out, nil
}

// BandJoin appends the bands of others to in.
func (b *Backend) BandJoin(in primitive.Image, others ...primitive.Image) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}

	out := *src
	out.planes = append([]plane(nil), src.planes...)
	for _, o := range others {
		other, err := asImage(o)
		if err != nil {
			return nil, err
		}
		if other.width != src.width || other.height != src.height || other.format != src.format {
			return nil, fmt.Errorf("join %dx%d %s with %dx%d %s: %w",
				src.width, src.height, src.format, other.width, other.height, other.format, primitive.ErrMismatch)
		}
		out.planes = append(out.planes, other.planes...)
	}
	return &out, nil
}

// Linear computes in*a + c into a float image.
func (b *Backend) Linear(in primitive.Image, a, c float64) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}

	out := NewImage(src.width, src.height, len(src.planes), src.interp, primitive.FormatFloat)
	for i, p := range src.planes {
		dst := out.planes[i]
		forEachRow(src.width, src.height, func(lo, hi int) {
			for j := lo; j < hi; j++ {
				dst.f[j] = p.at(j)*a + c
			}
		})
	}
	return out, nil
}

// Multiply multiplies two images sample by sample into a float image. A
// one-band operand is applied to every band of the other.
func (b *Backend) Multiply(left, right primitive.Image) (primitive.Image, error) {
	l, err := asImage(left)
	if err != nil {
		return nil, err
	}
	r, err := asImage(right)
	if err != nil {
		return nil, err
	}
	if l.width != r.width || l.height != r.height {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", l.width, l.height, r.width, r.height, primitive.ErrMismatch)
	}
	bands := len(l.planes)
	switch {
	case len(r.planes) == bands:
	case len(r.planes) == 1:
	case bands == 1:
		bands = len(r.planes)
	default:
		return nil, fmt.Errorf("multiply %d bands by %d bands: %w", len(l.planes), len(r.planes), primitive.ErrMismatch)
	}

	out := NewImage(l.width, l.height, bands, l.interp, primitive.FormatFloat)
	for i := range out.planes {
		lp := l.planes[min(i, len(l.planes)-1)]
		rp := r.planes[min(i, len(r.planes)-1)]
		dst := out.planes[i]
		forEachRow(l.width, l.height, func(lo, hi int) {
			for j := lo; j < hi; j++ {
				dst.f[j] = lp.at(j) * rp.at(j)
			}
		})
	}
	return out, nil
}

// Cast converts samples to format, rounding and clamping to its range.
func (b *Backend) Cast(in primitive.Image, format primitive.BandFormat) (primitive.Image, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}
	if _, ok := validFormats[format]; !ok {
		return nil, fmt.Errorf("cast to %s: %w", format, primitive.ErrBadArgument)
	}
	if format == src.format {
		return src, nil
	}

	out := NewImage(src.width, src.height, len(src.planes), src.interp, format)
	for i, p := range src.planes {
		dst := out.planes[i]
		forEachRow(src.width, src.height, func(lo, hi int) {
			for j := lo; j < hi; j++ {
				dst.set(j, p.at(j))
			}
		})
	}
	return out, nil
}

var validFormats = map[primitive.BandFormat]bool{
	primitive.FormatUchar:  true,
	primitive.FormatUshort: true,
	primitive.FormatFloat:  true,
}

// forEachRow runs fn over sample index ranges covering whole rows, spread
// across the bild worker pool.
func forEachRow(width, height int, fn func(lo, hi int)) {
	parallel.Line(height, func(start, end int) {
		fn(start*width, end*width)
	})
}

func fillPlane(p plane, n int, v float64) {
	if n == 0 {
		return
	}
	p.set(0, v)
	switch {
	case p.u8 != nil:
		for i := 1; i < n; i++ {
			p.u8.Pix[i] = p.u8.Pix[0]
		}
	case p.u16 != nil:
		for i := 1; i < n; i++ {
			p.u16.Pix[2*i] = p.u16.Pix[0]
			p.u16.Pix[2*i+1] = p.u16.Pix[1]
		}
	default:
		for i := 1; i < n; i++ {
			p.f[i] = v
		}
	}
}

// copyRect copies a w x h block from src at (sx, sy) to dst at (dx, dy).
// dstWidth and srcWidth are the plane widths.
func copyRect(dst plane, dstWidth, dx, dy int, src plane, srcWidth, sx, sy, w, h int) {
	for y := 0; y < h; y++ {
		d := (dy+y)*dstWidth + dx
		s := (sy+y)*srcWidth + sx
		switch {
		case src.u8 != nil:
			copy(dst.u8.Pix[d:d+w], src.u8.Pix[s:s+w])
		case src.u16 != nil:
			copy(dst.u16.Pix[2*d:2*(d+w)], src.u16.Pix[2*s:2*(s+w)])
		default:
			copy(dst.f[d:d+w], src.f[s:s+w])
		}
	}
}
