package imaging

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// LoadSVG rasterises an SVG document at its viewBox size into a four-band
// sRGB image. The alpha band is always present, even when the drawing
// covers every pixel.
func (b *Backend) LoadSVG(svg []byte) (primitive.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w := int(math.Round(icon.ViewBox.W))
	h := int(math.Round(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg viewBox %vx%v: %w", icon.ViewBox.W, icon.ViewBox.H, primitive.ErrBadArgument)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return fromNRGBA(imaging.Clone(rgba), true), nil
}
