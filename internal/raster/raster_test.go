package raster

import "testing"

func TestNew(t *testing.T) {
	fill := Pixel{R: 10, G: 20, B: 30, A: Transparent}
	r, err := New(4, 3, fill)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if r.Width != 4 || r.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", r.Width, r.Height)
	}
	if len(r.Pix) != 12 {
		t.Fatalf("len(Pix): got %d, want 12", len(r.Pix))
	}
	for i, p := range r.Pix {
		if p != fill {
			t.Errorf("pixel %d: got %+v, want %+v", i, p, fill)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		fill          Pixel
	}{
		{"negative width", -1, 10, Pixel{}},
		{"negative height", 10, -1, Pixel{}},
		{"alpha out of range", 1, 1, Pixel{A: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.width, tt.height, tt.fill); err == nil {
				t.Error("New should fail")
			}
		})
	}
}

func TestRaster_AtSet(t *testing.T) {
	r, _ := New(3, 2, Pixel{})
	p := Pixel{R: 1, G: 2, B: 3, A: 4}
	r.Set(2, 1, p)

	if got := r.At(2, 1); got != p {
		t.Errorf("At(2,1): got %+v, want %+v", got, p)
	}
	if got := r.Pix[1*3+2]; got != p {
		t.Errorf("row-major offset: got %+v, want %+v", got, p)
	}
}

func TestRaster_AtOutOfBounds(t *testing.T) {
	r, _ := New(2, 2, Pixel{})
	defer func() {
		if recover() == nil {
			t.Error("At should panic for out-of-bounds coordinates")
		}
	}()
	r.At(2, 0)
}

func TestRaster_Clone(t *testing.T) {
	r, _ := New(2, 2, Pixel{R: 5})
	c := r.Clone()
	c.Set(0, 0, Pixel{R: 99})

	if r.At(0, 0).R != 5 {
		t.Error("Clone shares pixel storage with the original")
	}
	if c.Width != 2 || c.Height != 2 {
		t.Errorf("clone dimensions: got %dx%d, want 2x2", c.Width, c.Height)
	}
}

func TestRaster_TransparentPixels(t *testing.T) {
	r, _ := New(5, 1, Pixel{A: Opaque})
	r.Set(1, 0, Pixel{A: Transparent})
	r.Set(3, 0, Pixel{A: Transparent})
	r.Set(4, 0, Pixel{A: 126})

	if got := r.TransparentPixels(); got != 2 {
		t.Errorf("TransparentPixels: got %d, want 2", got)
	}
}
