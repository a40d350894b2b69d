package steg

import "github.com/ironsheep/image-steg/internal/raster"

// Transparent writes whole payload bytes into the R, G and B channels of fully
// transparent pixels (alpha 127). Every other pixel is skipped unread.
type Transparent struct{}

var _ Encoder = Transparent{}

// Encode embeds msg followed by EndByte, three bytes per transparent pixel.
// Channels past the end of the payload in the last written pixel are zeroed.
// There is no upfront capacity check; running out of transparent pixels fails
// the whole call.
func (Transparent) Encode(r *raster.Raster, msg []byte) (*raster.Raster, error) {
	p := payload(msg)
	out := r.Clone()
	index := 0

	for i := range out.Pix {
		px := &out.Pix[i]
		if px.A != raster.Transparent {
			continue
		}

		px.R = byteAt(p, index)
		px.G = byteAt(p, index+1)
		px.B = byteAt(p, index+2)
		index += 3

		if index >= len(p) {
			return out, nil
		}
	}

	return nil, insufficientCapacity("Not enough transparent pixels to write the message.")
}

// Decode reads R, G and B of transparent pixels as raw bytes until EndByte.
func (Transparent) Decode(r *raster.Raster) ([]byte, error) {
	msg := []byte{}

	for _, px := range r.Pix {
		if px.A != raster.Transparent {
			continue
		}
		for _, b := range [3]uint8{px.R, px.G, px.B} {
			if b == EndByte {
				return msg, nil
			}
			msg = append(msg, b)
		}
	}

	return nil, noMessageFound()
}

// Capacity returns 3*T - 1 where T is the number of transparent pixels.
func (Transparent) Capacity(r *raster.Raster) int {
	return 3*r.TransparentPixels() - 1
}

func byteAt(p []byte, i int) byte {
	if i < len(p) {
		return p[i]
	}
	return 0
}
