package steg

import "github.com/ironsheep/image-steg/internal/raster"

// LSB writes one payload bit into bit 0 of each R, G and B channel, visiting
// pixels in row-major order. Bits are taken most significant first, so a
// payload byte may straddle two pixels. Alpha is never read or written.
type LSB struct{}

var _ Encoder = LSB{}

// Encode embeds msg followed by EndByte.
//
// The capacity check reserves one byte beyond the terminated payload:
// (len(msg)+2)*8 bits must fit in Width*Height*3. Encoding stops right after
// the last payload bit, leaving every later channel untouched.
func (LSB) Encode(r *raster.Raster, msg []byte) (*raster.Raster, error) {
	p := payload(msg)

	if (len(p)+1)*8 > r.Len()*3 {
		return nil, insufficientCapacity("Not enough pixels to write the message.")
	}

	out := r.Clone()
	byteIndex, bitIndex := 0, 0

	for i := range out.Pix {
		px := &out.Pix[i]
		for _, ch := range [3]*uint8{&px.R, &px.G, &px.B} {
			if byteIndex == len(p) {
				break
			}
			bit := p[byteIndex] >> (7 - bitIndex) & 1
			*ch = *ch&^1 | bit

			bitIndex++
			if bitIndex == 8 {
				bitIndex = 0
				byteIndex++
			}
		}

		if byteIndex == len(p) {
			return out, nil
		}
	}

	// The capacity check above guarantees the loop returns.
	return nil, unexpected()
}

// Decode collects bit 0 of each R, G and B channel into bytes until it reads
// EndByte.
func (LSB) Decode(r *raster.Raster) ([]byte, error) {
	msg := []byte{}
	var cur byte
	bits := 0

	for _, px := range r.Pix {
		for _, ch := range [3]uint8{px.R, px.G, px.B} {
			cur = cur<<1 | ch&1
			bits++
			if bits < 8 {
				continue
			}

			if cur == EndByte {
				return msg, nil
			}
			msg = append(msg, cur)
			cur, bits = 0, 0
		}
	}

	return nil, noMessageFound()
}

// Capacity returns floor(Width*Height*3/8) - 2, or -1 when that is negative.
func (LSB) Capacity(r *raster.Raster) int {
	n := r.Len()*3/8 - 2
	if n < 0 {
		return -1
	}
	return n
}
