package raster

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ErrCorruptImage is returned when input bytes cannot be decoded as a PNG.
var ErrCorruptImage = errors.New("the file may be corrupt")

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Load decodes PNG bytes into a Raster.
func Load(b []byte) (*Raster, error) {
	if !bytes.HasPrefix(b, pngSignature) {
		return nil, errors.Wrap(ErrCorruptImage, "failed to load the PNG (not a PNG file)")
	}

	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptImage, "failed to load the PNG (%v)", err)
	}

	return FromImage(img), nil
}

// Decode reads a PNG stream fully and decodes it into a Raster.
func Decode(r io.Reader) (*Raster, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read image")
	}
	return Load(b)
}

// FromImage converts any image.Image into a Raster.
//
// The image is normalized to non-premultiplied 8-bit RGBA first, so the color
// channels of transparent pixels survive when the source keeps them (PNG
// truecolor with alpha decodes to *image.NRGBA). Alpha is then mapped onto the
// 7-bit scale: a7 = 127 - (a8 >> 1).
func FromImage(img image.Image) *Raster {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	r := &Raster{Width: w, Height: h, Pix: make([]Pixel, w*h)}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			r.Pix[y*w+x] = Pixel{
				R: row[i],
				G: row[i+1],
				B: row[i+2],
				A: Transparent - row[i+3]>>1,
			}
		}
	}
	return r
}

// ToImage converts the raster into an *image.NRGBA with 8-bit alpha.
//
// The 7-bit alpha is expanded as a8 = 255 - (a7<<1 + a7>>6), which maps 0 to
// 255 and 127 to 0 and is the exact inverse of the mapping used by FromImage.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			p := r.Pix[y*r.Width+x]
			a := p.A
			if a > Transparent {
				a = Transparent
			}
			i := y*img.Stride + x*4
			img.Pix[i] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = 255 - (a<<1 + a>>6)
		}
	}
	return img
}

type encodeConfig struct {
	compression png.CompressionLevel
}

// EncodeOption configures PNG serialization.
type EncodeOption func(*encodeConfig)

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.compression = level
	}
}

// Encode writes the raster to w as a PNG.
func Encode(w io.Writer, r *Raster, opts ...EncodeOption) error {
	cfg := encodeConfig{compression: png.DefaultCompression}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := imaging.Encode(w, r.ToImage(), imaging.PNG, imaging.PNGCompressionLevel(cfg.compression)); err != nil {
		return errors.Wrap(err, "failed to encode image")
	}
	return nil
}

// Serialize returns the raster encoded as PNG bytes.
func Serialize(r *Raster, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCompression maps a level name (default, none, fast, best) to a PNG
// compression level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "fast", "speed":
		return png.BestSpeed, nil
	case "best", "size":
		return png.BestCompression, nil
	default:
		return 0, errors.Errorf("unknown png compression level: %s", name)
	}
}
