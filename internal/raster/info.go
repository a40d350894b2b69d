package raster

import (
	"fmt"
	"os"
)

// Info contains metadata about a PNG file loaded as a raster.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is always "png"; other containers are rejected on load.
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// TransparentPixels counts pixels whose 7-bit alpha is 127.
	TransparentPixels int `json:"transparent_pixels"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads the raster at path through the cache and describes it.
func LoadInfo(cache *Cache, path string) (*Info, error) {
	r, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	for _, p := range r.Pix {
		if p.A != Opaque {
			hasAlpha = true
			break
		}
	}

	return &Info{
		Width:             r.Width,
		Height:            r.Height,
		Format:            "png",
		HasAlpha:          hasAlpha,
		TransparentPixels: r.TransparentPixels(),
		FileSizeBytes:     stat.Size(),
	}, nil
}
