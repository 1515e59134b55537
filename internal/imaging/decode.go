package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/jpegn"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Decode parses an encoded buffer into a planar Image.
//
// The container is identified by its magic bytes rather than trusted from a
// file name. JPEG is decoded with gen2brain/jpegn, which keeps grey and CMYK
// images in their native colour space; every other format goes through
// disintegration/imaging. Both apply the EXIF orientation tag.
//
// # Errors
//
//   - primitive.ErrUnsupportedFormat if the buffer is not a recognised image
//   - the decoder's error, wrapped, if the data is corrupt
func (b *Backend) Decode(buf []byte) (primitive.Image, error) {
	format := primitive.DetectFormat(buf)
	if format == primitive.FileFormatUnknown {
		return nil, fmt.Errorf("failed to decode image: %w", primitive.ErrUnsupportedFormat)
	}

	var (
		img image.Image
		err error
	)
	switch format {
	case primitive.FileFormatJPEG:
		img, err = jpegn.Decode(bytes.NewReader(buf), &jpegn.Options{AutoRotate: true})
	default:
		img, err = imaging.Decode(bytes.NewReader(buf), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("failed to decode %s image: empty raster: %w", format, primitive.ErrBadRegion)
	}

	return FromImage(img), nil
}
