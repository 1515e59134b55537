package primitive

import "errors"

var (
	// ErrUnsupportedFormat is returned when an encoded buffer or a target
	// extension is not handled by the backend.
	ErrUnsupportedFormat = errors.New("primitive: unsupported format")

	// ErrBadRegion is returned when a rectangle does not fit the image.
	ErrBadRegion = errors.New("primitive: region outside image")

	// ErrBadBands is returned for band indexes or band counts that do not
	// match the image.
	ErrBadBands = errors.New("primitive: invalid band selection")

	// ErrMismatch is returned when images combined by one operation differ
	// in size, band count or format.
	ErrMismatch = errors.New("primitive: images do not match")

	// ErrBadArgument is returned for numeric arguments a primitive rejects,
	// such as a non-positive scale or sigma.
	ErrBadArgument = errors.New("primitive: invalid argument")
)
