// Package steg hides byte payloads inside rasters and recovers them.
//
// Two strategies implement the Encoder interface:
//
//   - LSB ("bit"): one payload bit in the least significant bit of each R, G
//     and B channel of every pixel, in raster order. Alpha is never touched.
//   - Transparent ("alpha"): one payload byte in each R, G and B channel, but
//     only in pixels whose 7-bit alpha is 127 (fully transparent). Other
//     pixels are left as they are.
//
// Both append EndByte (255) to the message before embedding and stop decoding
// at its first occurrence. A message that itself contains byte 255 therefore
// decodes truncated at that byte; there is no escaping.
//
// Encoders never modify their input raster. Encode returns a modified copy on
// success and nil on failure.
//
// # Errors
//
// Failures are *Error values whose Kind is one of ErrInsufficientCapacity,
// ErrNoMessageFound or ErrUnexpected, so callers can branch with errors.Is:
//
//	out, err := steg.LSB{}.Encode(r, msg)
//	if errors.Is(err, steg.ErrInsufficientCapacity) {
//	    // image too small
//	}
//
// The package never logs.
package steg
