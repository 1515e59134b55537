package transform

import (
	"fmt"
	"strings"
)

// ResizeMode selects how Resize fits an image into a target box.
type ResizeMode int

const (
	// ResizeFill scales to fit and pads the short axis with the background.
	ResizeFill ResizeMode = iota
	// ResizeFit scales to fit without padding or cropping.
	ResizeFit
	// ResizeCrop scales to cover the box and crops the excess around the
	// centre.
	ResizeCrop
)

var modeNames = [...]string{
	ResizeFill: "fill",
	ResizeFit:  "fit",
	ResizeCrop: "crop",
}

func (m ResizeMode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseResizeMode accepts "fill", "fit" and "crop" in any case.
func ParseResizeMode(s string) (ResizeMode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return ResizeMode(m), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Gravity is the anchor a crop keeps. GravitySmart has no anchor: it hands
// the crop to the entropy trimmer.
type Gravity int

const (
	GravityNorth Gravity = iota
	GravityNorthEast
	GravityEast
	GravitySouthEast
	GravitySouth
	GravitySouthWest
	GravityWest
	GravityNorthWest
	GravityCenter
	GravitySmart
)

var gravityNames = [...]string{
	GravityNorth:     "north",
	GravityNorthEast: "northeast",
	GravityEast:      "east",
	GravitySouthEast: "southeast",
	GravitySouth:     "south",
	GravitySouthWest: "southwest",
	GravityWest:      "west",
	GravityNorthWest: "northwest",
	GravityCenter:    "center",
	GravitySmart:     "smart",
}

func (g Gravity) String() string {
	if g >= 0 && int(g) < len(gravityNames) {
		return gravityNames[g]
	}
	return fmt.Sprintf("gravity(%d)", int(g))
}

// ParseGravity accepts the gravity names in any case, with "centre" as an
// alias of "center".
func ParseGravity(s string) (Gravity, error) {
	if strings.EqualFold(s, "centre") {
		return GravityCenter, nil
	}
	for g, name := range gravityNames {
		if strings.EqualFold(s, name) {
			return Gravity(g), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownGravity)
}

// Rect is a crop rectangle inside the source image.
type Rect struct {
	X, Y, Width, Height int
}

// centreOffset returns the centring offset for a dimension d cut down to t.
// The halving is integer division before the 0.1 bias, so odd remainders
// round down.
func centreOffset(d, t int) int {
	return int(float64((d-t)/2) + 0.1)
}

// anchor returns the rectangle a fixed gravity keeps when a width x height
// image is cut down to w x h. w and h must already be clamped to the image.
func anchor(g Gravity, width, height, w, h int) (Rect, error) {
	cx := centreOffset(width, w)
	cy := centreOffset(height, h)
	right := width - w
	bottom := height - h

	var x, y int
	switch g {
	case GravityNorth:
		x, y = cx, 0
	case GravityNorthEast:
		x, y = right, 0
	case GravityEast:
		x, y = right, cy
	case GravitySouthEast:
		x, y = right, bottom
	case GravitySouth:
		x, y = cx, bottom
	case GravitySouthWest:
		x, y = 0, bottom
	case GravityWest:
		x, y = 0, cy
	case GravityNorthWest:
		x, y = 0, 0
	case GravityCenter:
		x, y = cx, cy
	default:
		return Rect{}, fmt.Errorf("%s: %w", g, ErrUnknownGravity)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}
