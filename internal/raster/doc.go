// Package raster provides the in-memory pixel grid used by the steganography
// encoders, plus the PNG codec that moves it to and from bytes.
//
// A Raster is a row-major grid of Pixels. Each pixel carries three 8-bit color
// channels and one alpha channel expressed on a 7-bit scale:
//   - R, G, B: 0-255
//   - A: 0-127, where 0 is fully opaque and 127 is fully transparent
//
// The 7-bit alpha scale is the one used by the GD graphics library. PNG files
// store 8-bit alpha; the codec converts between the two so that any 7-bit
// value survives an Encode/Decode round trip unchanged.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Pix[y*Width+x] holds the pixel at (x, y)
//
// # Color Preservation
//
// Rasters are decoded through a non-premultiplied NRGBA buffer, so the color
// channels of fully transparent pixels are kept exactly as stored in the file.
// This matters for encoders that write payload bytes into transparent pixels.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. A Raster itself is not
// synchronized; it is owned by whichever call is processing it.
//
// # Error Handling
//
// Input that is not a decodable PNG is rejected with an error wrapping
// ErrCorruptImage. Use errors.Is to detect it.
package raster
