package raster

import (
	"fmt"
	"os"
	"sync"
)

// Cache provides thread-safe caching of decoded rasters to avoid redundant
// disk reads and PNG decodes.
//
// Rasters are keyed by the path string they were loaded from. Callers must
// treat a cached raster as read-only; the steganography encoders already do,
// returning a modified clone instead of touching their input.
//
// # Memory Management
//
// Cached rasters stay in memory until removed with Evict or Clear. A raster
// costs four bytes per pixel, so long-running processes that see many large
// images should evict them when done.
//
// # Example Usage
//
//	cache := raster.NewCache()
//	r, err := cache.Load("/path/to/cover.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use r...
//	cache.Evict("/path/to/cover.png")
type Cache struct {
	mu      sync.RWMutex
	rasters map[string]*Raster
}

// NewCache creates an empty raster cache.
func NewCache() *Cache {
	return &Cache{
		rasters: make(map[string]*Raster),
	}
}

// Load returns the cached raster for path, reading and decoding the file on a
// miss.
//
// # Errors
//
//   - Returns an error if the file does not exist or cannot be read
//   - Returns an error wrapping ErrCorruptImage if the file is not a valid PNG
func (c *Cache) Load(path string) (*Raster, error) {
	c.mu.RLock()
	if r, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	r, err := Load(b)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rasters[path] = r
	c.mu.Unlock()

	return r, nil
}

// Clear removes every raster from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.rasters = make(map[string]*Raster)
	c.mu.Unlock()
}

// Evict removes the raster loaded from path. Unknown paths are ignored.
//
// Writers that overwrite a file on disk should evict its path so the next
// Load sees the new contents.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.rasters, path)
	c.mu.Unlock()
}
