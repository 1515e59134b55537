//go:build vips

// Package vips implements the image primitives on libvips through govips.
//
// It is only built with the vips build tag, since it needs libvips and cgo:
//
//	go build -tags vips ./cmd/image-transform
//
// libvips holds process-wide state. govips cannot restart it once shut down,
// so a process gets one Startup and one Shutdown.
package vips
