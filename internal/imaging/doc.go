// Package imaging is the pure-Go image primitives backend.
//
// It implements primitive.Backend without cgo so the server builds and runs
// anywhere the Go toolchain does. The libvips backend in internal/vips is the
// faster alternative when libvips is installed.
//
// # Image Layout
//
// Images are planar: each band is stored in its own plane, either an
// *image.Gray (uchar), an *image.Gray16 (ushort) or a float64 slice (float,
// only produced by Linear and Multiply). Planes are compact, with sample i
// of a width-W plane at (i%W, i/W). Coordinates are 0-based with (0,0) at the
// top-left corner.
//
// # Thread Safety
//
// Images are never modified after they are returned, so they may be shared
// between goroutines and between images. ExtractBand and BandJoin rely on
// this and share planes instead of copying them.
//
// # Concurrency
//
// disintegration/imaging and bild/parallel fan work out over GOMAXPROCS
// workers. Backend.Startup lowers or raises that bound for the life of the
// backend.
package imaging
