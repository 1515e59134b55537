// Package server implements the MCP (Model Context Protocol) server for the
// image transformation tools.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line on stdin
// and one response per line on stdout. Diagnostics go to the transform
// Context's logger, which writes to stderr.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Tools
//
// Images are opened once and then addressed by handle:
//
//   - image_formats: backend name and supported extensions
//   - image_open: decode a file or base64 payload, returning a handle
//   - image_info: dimensions, bands and output settings of a handle
//   - image_resize: fit, fill or crop resize
//   - image_crop: gravity or smart crop
//   - image_smart_crop: entropy-driven crop
//   - image_round: rounded-corner transparency
//   - image_blur: Gaussian blur
//   - image_set_background: padding/flatten colour and output flags
//   - image_encode: encode to base64 or to a file
//   - image_release: close a handle
//
// A failed transformation leaves the image behind its handle unchanged.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string as data. Malformed requests get the standard -32700, -32601
// and -32602 codes.
package server
