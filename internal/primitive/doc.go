// Package primitive defines the raster operations the transform core relies on.
//
// The core never touches pixels directly. Everything it needs from an image
// library is expressed by the Backend interface: scale-resize, rectangular
// extraction, embedding, band split and join, simple per-sample arithmetic,
// format casts, histogram entropy, Gaussian blur, SVG rasterisation and
// buffer encoding. Two implementations live next to this package:
//
//   - internal/imaging: pure Go, built on disintegration/imaging, bild,
//     golang.org/x/image and oksvg. Always available.
//   - internal/vips: libvips through govips, compiled with the "vips" build tag.
//
// # Value Semantics
//
// Backend operations never modify their inputs. Each call returns a new Image,
// so a caller can keep the previous value until a multi-step operation has
// fully succeeded. Release lets a backend free native memory early; Go-only
// backends may treat it as a no-op.
//
// # Bands and Interpretation
//
// An Image is a stack of bands (channel planes) that share one BandFormat.
// Interpretation records what the bands mean (sRGB, 16-bit grey, CMYK, ...).
// Band extraction keeps the source interpretation, so the alpha band split off
// an RGB16 image still reports RGB16.
package primitive
