//go:build vips

package vips

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// DefaultQuality is used when EncodeOptions.Quality is zero.
const DefaultQuality = 75

// Encode saves in with the libvips saver for ext. JPEG output is flattened
// against opts.Background first.
func (b *Backend) Encode(in primitive.Image, ext string, opts primitive.EncodeOptions) ([]byte, error) {
	src, err := asImage(in)
	if err != nil {
		return nil, err
	}

	quality := opts.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("quality %d: %w", quality, primitive.ErrBadArgument)
	}

	ref := src.ref
	var buf []byte
	switch primitive.FormatFromExtension(ext) {
	case primitive.FileFormatJPEG:
		if primitive.HasAlpha(in) {
			flat, err := derive(in, func(r *vips.ImageRef) error {
				return r.Flatten(&vips.Color{R: opts.Background[0], G: opts.Background[1], B: opts.Background[2]})
			})
			if err != nil {
				return nil, err
			}
			defer flat.ref.Close()
			ref = flat.ref
		}
		p := vips.NewJpegExportParams()
		p.Quality = quality
		p.StripMetadata = opts.Strip
		p.Interlace = opts.Interlace
		buf, _, err = ref.ExportJpeg(p)
	case primitive.FileFormatPNG:
		p := vips.NewPngExportParams()
		p.StripMetadata = opts.Strip
		p.Interlace = opts.Interlace
		buf, _, err = ref.ExportPng(p)
	case primitive.FileFormatWebP:
		p := vips.NewWebpExportParams()
		p.Quality = quality
		p.StripMetadata = opts.Strip
		buf, _, err = ref.ExportWebp(p)
	case primitive.FileFormatGIF:
		p := vips.NewGifExportParams()
		p.StripMetadata = opts.Strip
		buf, _, err = ref.ExportGIF(p)
	case primitive.FileFormatTIFF:
		p := vips.NewTiffExportParams()
		p.StripMetadata = opts.Strip
		buf, _, err = ref.ExportTiff(p)
	default:
		return nil, fmt.Errorf("encode %q: %w", ext, primitive.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ext, err)
	}
	return buf, nil
}
