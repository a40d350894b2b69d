package raster

import "fmt"

const (
	// Opaque is the 7-bit alpha value of a fully opaque pixel.
	Opaque uint8 = 0

	// Transparent is the 7-bit alpha value of a fully transparent pixel.
	Transparent uint8 = 127
)

// Pixel is a single raster cell. A uses the 7-bit alpha scale (0-127).
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Raster is a width x height grid of pixels stored in row-major order.
type Raster struct {
	Width  int
	Height int
	Pix    []Pixel
}

// New creates a raster of the given size with every pixel set to fill.
func New(width, height int, fill Pixel) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	if fill.A > Transparent {
		return nil, fmt.Errorf("alpha %d outside 7-bit range", fill.A)
	}

	pix := make([]Pixel, width*height)
	for i := range pix {
		pix[i] = fill
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// Len returns the number of pixels in the raster.
func (r *Raster) Len() int {
	return r.Width * r.Height
}

// At returns the pixel at (x, y). It panics if the coordinates are out of range.
func (r *Raster) At(x, y int) Pixel {
	return r.Pix[r.offset(x, y)]
}

// Set replaces the pixel at (x, y). It panics if the coordinates are out of range.
func (r *Raster) Set(x, y int, p Pixel) {
	r.Pix[r.offset(x, y)] = p
}

func (r *Raster) offset(x, y int) int {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		panic(fmt.Sprintf("raster: coordinates (%d,%d) outside %dx%d", x, y, r.Width, r.Height))
	}
	return y*r.Width + x
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]Pixel, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// TransparentPixels counts the pixels whose alpha is fully transparent.
func (r *Raster) TransparentPixels() int {
	n := 0
	for _, p := range r.Pix {
		if p.A == Transparent {
			n++
		}
	}
	return n
}
