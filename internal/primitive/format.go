package primitive

import (
	"bytes"
	"strings"
)

// FileFormat names an encoded image container.
type FileFormat string

const (
	FileFormatUnknown FileFormat = ""
	FileFormatJPEG    FileFormat = "jpeg"
	FileFormatPNG     FileFormat = "png"
	FileFormatGIF     FileFormat = "gif"
	FileFormatWebP    FileFormat = "webp"
	FileFormatBMP     FileFormat = "bmp"
	FileFormatTIFF    FileFormat = "tiff"
)

var extFormats = map[string]FileFormat{
	"jpg":  FileFormatJPEG,
	"jpeg": FileFormatJPEG,
	"png":  FileFormatPNG,
	"gif":  FileFormatGIF,
	"webp": FileFormatWebP,
	"bmp":  FileFormatBMP,
	"tif":  FileFormatTIFF,
	"tiff": FileFormatTIFF,
}

// FormatFromExtension maps ".jpg", "JPEG", "tif" and friends to a
// FileFormat. Unknown extensions yield FileFormatUnknown.
func FormatFromExtension(ext string) FileFormat {
	return extFormats[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// IsJPEG reports whether ext names the JPEG family.
func IsJPEG(ext string) bool {
	return FormatFromExtension(ext) == FileFormatJPEG
}

// signature is a run of magic bytes found at offset within a buffer.
type signature struct {
	offset int
	magic  []byte
}

// A format matches when every one of its signatures does.
var signatures = []struct {
	format FileFormat
	sigs   []signature
}{
	{FileFormatJPEG, []signature{{0, []byte{0xFF, 0xD8, 0xFF}}}},
	{FileFormatPNG, []signature{{0, []byte("\x89PNG\r\n\x1a\n")}}},
	{FileFormatGIF, []signature{{0, []byte("GIF87a")}}},
	{FileFormatGIF, []signature{{0, []byte("GIF89a")}}},
	{FileFormatWebP, []signature{{0, []byte("RIFF")}, {8, []byte("WEBP")}}},
	{FileFormatTIFF, []signature{{0, []byte("II*\x00")}}},
	{FileFormatTIFF, []signature{{0, []byte("MM\x00*")}}},
	{FileFormatBMP, []signature{{0, []byte("BM")}}},
}

// DetectFormat identifies an encoded buffer by its magic bytes.
func DetectFormat(buf []byte) FileFormat {
	for _, f := range signatures {
		if matches(buf, f.sigs) {
			return f.format
		}
	}
	return FileFormatUnknown
}

func matches(buf []byte, sigs []signature) bool {
	for _, sig := range sigs {
		if len(buf) < sig.offset || !bytes.HasPrefix(buf[sig.offset:], sig.magic) {
			return false
		}
	}
	return true
}
