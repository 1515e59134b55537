package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// DefaultQuality is the JPEG quality used when ToBuffer is given zero.
const DefaultQuality = 75

// ToBuffer encodes the image in the format named by ext (".jpg", ".png",
// ...). quality applies to the JPEG family only, 0 selecting DefaultQuality;
// other formats ignore it. strip removes metadata. Interlacing and the
// flatten colour come from the image's Background.
//
// The returned slice belongs to the caller.
func (img *Image) ToBuffer(ext string, quality int, strip bool) ([]byte, error) {
	const op = "encode"
	if err := img.check(op); err != nil {
		return nil, err
	}

	opts := primitive.EncodeOptions{
		Strip:      strip,
		Interlace:  img.bg.Interlace,
		Background: [3]uint8{img.bg.R, img.bg.G, img.bg.B},
	}
	if primitive.IsJPEG(ext) {
		if quality == 0 {
			quality = DefaultQuality
		}
		if quality < 1 || quality > 100 {
			return nil, img.fail(op, ErrConfig, fmt.Errorf("quality %d: %w", quality, ErrInvalidArgument))
		}
		opts.Quality = quality
	}

	buf, err := img.ctx.backend.Encode(img.img, ext, opts)
	if err != nil {
		return nil, img.fail(op, ErrEncode, err)
	}
	img.ctx.debugf("encoded %dx%d as %s (%d bytes)", img.img.Width(), img.img.Height(), ext, len(buf))
	return buf, nil
}
