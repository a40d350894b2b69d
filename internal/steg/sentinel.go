package steg

import "github.com/ironsheep/image-steg/internal/raster"

// EndByte terminates every embedded payload. It can never start a valid UTF-8
// sequence.
const EndByte byte = 255

// Encoder hides a message in a raster and recovers it.
type Encoder interface {
	// Encode returns a copy of r carrying msg. On error the returned raster is nil.
	Encode(r *raster.Raster, msg []byte) (*raster.Raster, error)

	// Decode returns the message carried by r.
	Decode(r *raster.Raster) ([]byte, error)

	// Capacity returns the longest message, in bytes, that Encode accepts for r,
	// or -1 if not even an empty message fits.
	Capacity(r *raster.Raster) int
}

// payload returns msg followed by EndByte in a fresh slice.
func payload(msg []byte) []byte {
	p := make([]byte, len(msg)+1)
	copy(p, msg)
	p[len(msg)] = EndByte
	return p
}
