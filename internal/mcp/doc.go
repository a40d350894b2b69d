// Package mcp implements an MCP (Model Context Protocol) server that exposes
// the steganography encoders as tools.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on stdin
//   - Output: responses on stdout
//
// Supported methods: initialize, tools/list, tools/call and ping. The
// notifications/initialized notification is accepted and not answered.
//
// # Available Tools
//
//   - image_load: dimensions, alpha presence and transparent pixel count
//   - steg_capacity: longest message each strategy can hide
//   - steg_encode: hide a message, writing a PNG file or returning base64
//   - steg_decode: recover a hidden message
//   - steg_compare: per-channel and CIEDE2000 differences between two images
//
// Strategies are named as in the HTTP routes: "bit" (least significant bit)
// and "alpha" (fully transparent pixels). "none" is accepted and passes the
// image through.
//
// # Image Caching
//
// Decoded rasters are cached by path for the lifetime of the server.
// steg_encode evicts its output path after writing, so a later call that reads
// the written file sees the new pixels.
//
// # Error Handling
//
// Tool failures are JSON-RPC errors with code -32000 and the Go error string
// as data. Malformed tools/call params yield -32602 and unknown methods
// -32601. Logs go to stderr through zerolog.
package mcp
