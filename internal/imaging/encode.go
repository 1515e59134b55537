package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// DefaultQuality is used when EncodeOptions.Quality is zero.
const DefaultQuality = 75

var encoderFormats = map[primitive.FileFormat]imaging.Format{
	primitive.FileFormatJPEG: imaging.JPEG,
	primitive.FileFormatPNG:  imaging.PNG,
	primitive.FileFormatGIF:  imaging.GIF,
	primitive.FileFormatTIFF: imaging.TIFF,
	primitive.FileFormatBMP:  imaging.BMP,
}

// Encode writes in in the format named by ext.
//
// Formats without an alpha channel (JPEG, BMP) are flattened against
// opts.Background. The Go encoders never copy source metadata, so Strip is
// always honoured; Interlace has no pure-Go encoder and is ignored.
func (b *Backend) Encode(in primitive.Image, ext string, opts primitive.EncodeOptions) ([]byte, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}

	format := primitive.FormatFromExtension(ext)
	if format == primitive.FileFormatUnknown {
		return nil, fmt.Errorf("encode %q: %w", ext, primitive.ErrUnsupportedFormat)
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("quality %d: %w", quality, primitive.ErrBadArgument)
	}

	img, err := src.ToImage()
	if err != nil {
		return nil, err
	}
	if format == primitive.FileFormatJPEG || format == primitive.FileFormatBMP {
		img = flatten(src, opts.Background)
	}

	var buf bytes.Buffer
	switch format {
	case primitive.FileFormatWebP:
		err = webp.Encode(&buf, img, webp.Options{Quality: quality})
	default:
		err = imaging.Encode(&buf, img, encoderFormats[format], imaging.JPEGQuality(quality))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// flatten composites src over an opaque background of the given colour.
// Images without alpha are only converted to NRGBA.
func flatten(src *Image, background [3]uint8) image.Image {
	n := src.toNRGBA()
	if !primitive.HasAlpha(src) {
		return n
	}
	bg := imaging.New(src.width, src.height, color.NRGBA{R: background[0], G: background[1], B: background[2], A: 255})
	return imaging.Overlay(bg, n, image.Pt(0, 0), 1.0)
}
