package transform

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Background is the per-image output configuration: the colour used for
// Fill padding and alpha flattening, and the saver flags.
type Background struct {
	R, G, B   uint8
	Strip     bool
	Interlace bool
}

// DefaultBackground is white with metadata stripped and interlacing on.
func DefaultBackground() Background {
	return Background{R: 255, G: 255, B: 255, Strip: true, Interlace: true}
}

// PadAlpha controls the alpha band of Fill padding.
type PadAlpha int

const (
	// PadAlphaAlways gives every Fill result an alpha band: images without
	// one get an opaque band first, and the padding is fully transparent.
	PadAlphaAlways PadAlpha = iota

	// PadAlphaPreserve only pads transparently when the image already has
	// alpha. Otherwise the padding is opaque background.
	PadAlphaPreserve
)

func (p PadAlpha) String() string {
	switch p {
	case PadAlphaAlways:
		return "always"
	case PadAlphaPreserve:
		return "preserve"
	}
	return fmt.Sprintf("padalpha(%d)", int(p))
}

// ParsePadAlpha accepts "always" and "preserve".
func ParsePadAlpha(s string) (PadAlpha, error) {
	switch s {
	case "always", "":
		return PadAlphaAlways, nil
	case "preserve":
		return PadAlphaPreserve, nil
	}
	return 0, fmt.Errorf("pad alpha %q: %w", s, ErrInvalidArgument)
}

// SetBackgroundColour sets the colour used by later Fill padding and
// encoding. Channels must be in 0..255.
func (img *Image) SetBackgroundColour(r, g, b int) error {
	const op = "set background"
	if err := img.check(op); err != nil {
		return err
	}
	for _, v := range [...]int{r, g, b} {
		if v < 0 || v > 255 {
			return img.fail(op, ErrConfig, fmt.Errorf("colour (%d, %d, %d): %w", r, g, b, ErrInvalidArgument))
		}
	}
	img.bg.R, img.bg.G, img.bg.B = uint8(r), uint8(g), uint8(b)
	return nil
}

// SetBackground replaces the whole output configuration.
func (img *Image) SetBackground(bg Background) { img.bg = bg }

// Background returns the current output configuration.
func (img *Image) Background() Background { return img.bg }

// padValues maps the background colour onto the colour bands of in, scaled
// to its sample range. alpha, if non-nil, is appended as the last value.
func padValues(in primitive.Image, bg Background, alpha *float64) []float64 {
	bands := in.Bands()
	if alpha != nil {
		bands--
	}
	ceiling := in.Format().Max()
	scale := func(v uint8) float64 { return float64(v) / 255 * ceiling }

	values := make([]float64, 0, in.Bands())
	switch {
	case in.Interpretation() == primitive.InterpretationCMYK:
		c, m, y, k := color.RGBToCMYK(bg.R, bg.G, bg.B)
		values = append(values, scale(c), scale(m), scale(y), scale(k))
	case bands < 3:
		grey := color.GrayModel.Convert(color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}).(color.Gray)
		values = append(values, scale(grey.Y))
	default:
		values = append(values, scale(bg.R), scale(bg.G), scale(bg.B))
	}

	for len(values) < bands {
		values = append(values, 0)
	}
	values = values[:bands]
	if alpha != nil {
		values = append(values, *alpha)
	}
	return values
}
