package primitive

import "fmt"

// Interpretation describes how the bands of an image should be read.
type Interpretation int

const (
	InterpretationMultiband Interpretation = iota
	InterpretationBW
	InterpretationGrey16
	InterpretationSRGB
	InterpretationRGB16
	InterpretationCMYK
)

var interpretationNames = map[Interpretation]string{
	InterpretationMultiband: "multiband",
	InterpretationBW:        "b-w",
	InterpretationGrey16:    "grey16",
	InterpretationSRGB:      "srgb",
	InterpretationRGB16:     "rgb16",
	InterpretationCMYK:      "cmyk",
}

func (i Interpretation) String() string {
	if name, ok := interpretationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("interpretation(%d)", int(i))
}

// BandFormat is the numeric type of every sample in an image.
type BandFormat int

const (
	FormatUchar BandFormat = iota
	FormatUshort
	FormatFloat
)

var formatNames = map[BandFormat]string{
	FormatUchar:  "uchar",
	FormatUshort: "ushort",
	FormatFloat:  "float",
}

func (f BandFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Max returns the largest sample value representable in the format.
// Float samples are unbounded and report 1.
func (f BandFormat) Max() float64 {
	switch f {
	case FormatUchar:
		return 255
	case FormatUshort:
		return 65535
	}
	return 1
}

// Image is a decoded raster owned by a Backend.
type Image interface {
	Width() int
	Height() int
	Bands() int
	Interpretation() Interpretation
	Format() BandFormat
}

// EncodeOptions are the saver parameters applied on every encode.
type EncodeOptions struct {
	// Quality is only meaningful for JPEG-family and lossy WebP output.
	// Zero selects the backend default.
	Quality int

	// Strip removes metadata (EXIF, ICC, XMP) from the output.
	Strip bool

	// Interlace requests progressive/interlaced output where the format
	// supports it.
	Interlace bool

	// Background is the RGB colour alpha is flattened against when the
	// target format cannot carry an alpha channel.
	Background [3]uint8
}

// Backend is the image primitives capability set.
//
// Implementations must not mutate the images passed to them. All returned
// images are new values.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Startup brings up process-wide library state. concurrency <= 0 keeps
	// the library default.
	Startup(name string, concurrency int) error

	// Shutdown releases process-wide library state.
	Shutdown()

	// Formats lists the file extensions (with leading dot) Encode accepts.
	Formats() []string

	// Decode parses an encoded buffer.
	Decode(buf []byte) (Image, error)

	// Resize scales both axes by scale. Output dimensions are rounded to
	// the nearest integer and never drop below one pixel.
	Resize(in Image, scale float64) (Image, error)

	// ExtractArea returns the width x height region with its top-left
	// corner at (left, top). The region must lie inside the image.
	ExtractArea(in Image, left, top, width, height int) (Image, error)

	// Embed places in at (left, top) on a width x height canvas filled with
	// background, one value per band.
	Embed(in Image, left, top, width, height int, background []float64) (Image, error)

	// ExtractBand returns n consecutive bands starting at band.
	ExtractBand(in Image, band, n int) (Image, error)

	// BandJoin appends the bands of others to in. All images must share
	// dimensions and format.
	BandJoin(in Image, others ...Image) (Image, error)

	// Linear computes in*a + b per sample. The result is FormatFloat.
	Linear(in Image, a, b float64) (Image, error)

	// Multiply multiplies two images sample by sample. The result is
	// FormatFloat.
	Multiply(left, right Image) (Image, error)

	// Cast converts samples to format, rounding and clamping to its range.
	Cast(in Image, format BandFormat) (Image, error)

	// Entropy returns the Shannon entropy (bits) of the histogram of all
	// samples of all bands.
	Entropy(in Image) (float64, error)

	// GaussBlur blurs every band with a Gaussian of the given sigma.
	GaussBlur(in Image, sigma float64) (Image, error)

	// LoadSVG rasterises an SVG document at its viewBox size.
	LoadSVG(svg []byte) (Image, error)

	// Encode writes in in the format named by ext (".jpg", "png", ...).
	Encode(in Image, ext string, opts EncodeOptions) ([]byte, error)

	// Release frees any native resources held by img.
	Release(img Image)
}
