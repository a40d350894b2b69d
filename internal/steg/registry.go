package steg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-steg/internal/raster"
)

// Strategy names as used in routes, tool arguments and CLI flags.
const (
	StrategyLSB         = "bit"
	StrategyTransparent = "alpha"
	StrategyNone        = "none"
)

// ErrUnknownStrategy is returned by Lookup for names it does not know.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Lookup returns the encoder registered under name.
func Lookup(name string) (Encoder, error) {
	switch strings.ToLower(name) {
	case StrategyLSB:
		return LSB{}, nil
	case StrategyTransparent:
		return Transparent{}, nil
	case StrategyNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownStrategy, name, StrategyLSB, StrategyTransparent)
	}
}

// Strategies lists the names of the encoders that actually carry a payload.
func Strategies() []string {
	return []string{StrategyLSB, StrategyTransparent}
}

// Noop passes images through unchanged. Encode ignores the message and Decode
// always returns an empty one. It is useful for exercising the transport
// without touching pixels.
type Noop struct{}

var _ Encoder = Noop{}

// Encode returns a clone of r and ignores the message.
func (Noop) Encode(r *raster.Raster, _ []byte) (*raster.Raster, error) {
	return r.Clone(), nil
}

// Decode always returns an empty message.
func (Noop) Decode(*raster.Raster) ([]byte, error) {
	return []byte{}, nil
}

// Capacity is always 0; nothing is carried.
func (Noop) Capacity(*raster.Raster) int {
	return 0
}
