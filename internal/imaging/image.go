package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Image is a planar raster implementing primitive.Image.
//
// Every band lives in its own plane so band split and join are slice
// operations and each plane can be handed to image libraries directly as an
// *image.Gray (uchar) or *image.Gray16 (ushort). Float planes only appear as
// intermediates of Linear and Multiply.
//
// Planes are never written after the Image that owns them is returned, which
// lets ExtractBand and BandJoin share planes between images.
type Image struct {
	width  int
	height int
	interp primitive.Interpretation
	format primitive.BandFormat
	planes []plane
}

// plane holds the samples of one band. Exactly one field is set, matching
// the owning image's format. Planes are always compact (stride == width).
type plane struct {
	u8  *image.Gray
	u16 *image.Gray16
	f   []float64
}

var _ primitive.Image = (*Image)(nil)

// NewImage allocates a zero-filled image.
func NewImage(width, height, bands int, interp primitive.Interpretation, format primitive.BandFormat) *Image {
	img := &Image{
		width:  width,
		height: height,
		interp: interp,
		format: format,
		planes: make([]plane, bands),
	}
	for i := range img.planes {
		img.planes[i] = newPlane(format, width, height)
	}
	return img
}

func newPlane(format primitive.BandFormat, width, height int) plane {
	r := image.Rect(0, 0, width, height)
	switch format {
	case primitive.FormatUchar:
		return plane{u8: image.NewGray(r)}
	case primitive.FormatUshort:
		return plane{u16: image.NewGray16(r)}
	default:
		return plane{f: make([]float64, width*height)}
	}
}

func (p plane) at(i int) float64 {
	switch {
	case p.u8 != nil:
		return float64(p.u8.Pix[i])
	case p.u16 != nil:
		return float64(uint16(p.u16.Pix[2*i])<<8 | uint16(p.u16.Pix[2*i+1]))
	default:
		return p.f[i]
	}
}

func (p plane) set(i int, v float64) {
	switch {
	case p.u8 != nil:
		p.u8.Pix[i] = uint8(clampSample(v, 255))
	case p.u16 != nil:
		s := uint16(clampSample(v, 65535))
		p.u16.Pix[2*i] = uint8(s >> 8)
		p.u16.Pix[2*i+1] = uint8(s)
	default:
		p.f[i] = v
	}
}

// clampSample rounds v to the nearest integer and clamps it to [0, max].
func clampSample(v, max float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= max {
		return max
	}
	return math.Floor(v + 0.5)
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Bands returns the number of bands.
func (img *Image) Bands() int { return len(img.planes) }

// Interpretation returns how the bands should be read.
func (img *Image) Interpretation() primitive.Interpretation { return img.interp }

// Format returns the sample format shared by all bands.
func (img *Image) Format() primitive.BandFormat { return img.format }

// At returns the sample of band at (x, y).
func (img *Image) At(x, y, band int) float64 {
	return img.planes[band].at(y*img.width + x)
}

// Set writes the sample of band at (x, y), rounding and clamping it to the
// image format. Only use Set on images that have not been handed to a
// backend operation yet.
func (img *Image) Set(x, y, band int, v float64) {
	img.planes[band].set(y*img.width+x, v)
}

// FromImage converts a Go image into a planar Image.
//
// Gray and Gray16 become one-band b-w/grey16 images, CMYK stays four-band
// CMYK, 64-bit colour models become RGB16 and everything else is read
// through an 8-bit NRGBA copy as sRGB. The alpha band is kept only when the
// source is not opaque.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch s := src.(type) {
	case *image.Gray:
		img := NewImage(w, h, 1, primitive.InterpretationBW, primitive.FormatUchar)
		for y := 0; y < h; y++ {
			copy(img.planes[0].u8.Pix[y*w:(y+1)*w], s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return img

	case *image.Gray16:
		img := NewImage(w, h, 1, primitive.InterpretationGrey16, primitive.FormatUshort)
		for y := 0; y < h; y++ {
			copy(img.planes[0].u16.Pix[2*y*w:2*(y+1)*w], s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return img

	case *image.CMYK:
		img := NewImage(w, h, 4, primitive.InterpretationCMYK, primitive.FormatUchar)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := s.PixOffset(b.Min.X+x, b.Min.Y+y)
				i := y*w + x
				for band := 0; band < 4; band++ {
					img.planes[band].u8.Pix[i] = s.Pix[o+band]
				}
			}
		}
		return img

	case *image.RGBA64, *image.NRGBA64:
		bands := 4
		if s.(interface{ Opaque() bool }).Opaque() {
			bands = 3
		}
		img := NewImage(w, h, bands, primitive.InterpretationRGB16, primitive.FormatUshort)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBA64Model.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
				i := y*w + x
				img.planes[0].set(i, float64(c.R))
				img.planes[1].set(i, float64(c.G))
				img.planes[2].set(i, float64(c.B))
				if bands == 4 {
					img.planes[3].set(i, float64(c.A))
				}
			}
		}
		return img
	}

	n := imaging.Clone(src)
	return fromNRGBA(n, !n.Opaque())
}

func fromNRGBA(n *image.NRGBA, withAlpha bool) *Image {
	w, h := n.Rect.Dx(), n.Rect.Dy()
	bands := 3
	if withAlpha {
		bands = 4
	}
	img := NewImage(w, h, bands, primitive.InterpretationSRGB, primitive.FormatUchar)
	for y := 0; y < h; y++ {
		row := n.Pix[y*n.Stride:]
		for x := 0; x < w; x++ {
			i := y*w + x
			for band := 0; band < bands; band++ {
				img.planes[band].u8.Pix[i] = row[x*4+band]
			}
		}
	}
	return img
}

// ToImage converts the planar image into a Go image suitable for encoding.
//
// One band becomes Gray/Gray16, grey+alpha and RGB(A) become NRGBA or
// NRGBA64, four-band CMYK becomes image.CMYK and CMYK+alpha is converted to
// NRGBA. Float images must be cast first.
func (img *Image) ToImage() (image.Image, error) {
	if img.format == primitive.FormatFloat {
		return nil, fmt.Errorf("cannot export %s samples: %w", img.format, primitive.ErrBadArgument)
	}
	r := image.Rect(0, 0, img.width, img.height)
	deep := img.format == primitive.FormatUshort

	if img.interp == primitive.InterpretationCMYK && len(img.planes) >= 4 {
		if len(img.planes) == 4 && !deep {
			out := image.NewCMYK(r)
			for i := 0; i < img.width*img.height; i++ {
				for band := 0; band < 4; band++ {
					out.Pix[i*4+band] = img.planes[band].u8.Pix[i]
				}
			}
			return out, nil
		}
		return img.toNRGBA(), nil
	}

	switch len(img.planes) {
	case 1:
		if deep {
			out := image.NewGray16(r)
			copy(out.Pix, img.planes[0].u16.Pix)
			return out, nil
		}
		out := image.NewGray(r)
		copy(out.Pix, img.planes[0].u8.Pix)
		return out, nil
	case 2, 3, 4:
		if deep {
			return img.toNRGBA64(), nil
		}
		return img.toNRGBA(), nil
	}
	return nil, fmt.Errorf("cannot export %d bands: %w", len(img.planes), primitive.ErrBadBands)
}

// rgbaAt returns the colour at sample index i scaled to [0, 1], expanding
// grey to RGB and converting CMYK.
func (img *Image) rgbaAt(i int) (r, g, b, a float64) {
	ceiling := img.format.Max()
	a = 1
	if primitive.HasAlpha(img) {
		a = img.planes[len(img.planes)-1].at(i) / ceiling
	}

	switch {
	case img.interp == primitive.InterpretationCMYK && len(img.planes) >= 4:
		c := img.planes[0].at(i) / ceiling
		m := img.planes[1].at(i) / ceiling
		y := img.planes[2].at(i) / ceiling
		k := img.planes[3].at(i) / ceiling
		return (1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k), a
	case len(img.planes) < 3:
		v := img.planes[0].at(i) / ceiling
		return v, v, v, a
	default:
		return img.planes[0].at(i) / ceiling, img.planes[1].at(i) / ceiling, img.planes[2].at(i) / ceiling, a
	}
}

func (img *Image) toNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for i := 0; i < img.width*img.height; i++ {
		r, g, b, a := img.rgbaAt(i)
		out.Pix[i*4+0] = uint8(clampSample(r*255, 255))
		out.Pix[i*4+1] = uint8(clampSample(g*255, 255))
		out.Pix[i*4+2] = uint8(clampSample(b*255, 255))
		out.Pix[i*4+3] = uint8(clampSample(a*255, 255))
	}
	return out
}

func (img *Image) toNRGBA64() *image.NRGBA64 {
	out := image.NewNRGBA64(image.Rect(0, 0, img.width, img.height))
	for i := 0; i < img.width*img.height; i++ {
		r, g, b, a := img.rgbaAt(i)
		for c, v := range [4]float64{r, g, b, a} {
			s := uint16(clampSample(v*65535, 65535))
			out.Pix[i*8+c*2] = uint8(s >> 8)
			out.Pix[i*8+c*2+1] = uint8(s)
		}
	}
	return out
}

func asImage(in primitive.Image) (*Image, error) {
	img, ok := in.(*Image)
	if !ok || img == nil {
		return nil, fmt.Errorf("image %T was not produced by the imaging backend: %w", in, primitive.ErrMismatch)
	}
	return img, nil
}
