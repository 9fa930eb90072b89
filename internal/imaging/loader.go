// Package imaging is the image I/O boundary. It decodes image files into
// binary pixel grids for the extraction core, which itself never touches
// files or codecs. PBM and friends are tried first since netpbm is the
// natural interchange format for binary grids, then the standard decoders,
// then webp.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF format decoder
	_ "image/jpeg" // register JPEG format decoder
	_ "image/png"  // register PNG format decoder
	"os"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/spakin/netpbm"

	"github.com/panelkit/lettering/internal/grid"
	"github.com/panelkit/lettering/internal/logging"
)

// Cache provides thread-safe caching of decoded images keyed by path, so
// repeated pipeline runs over the same sample set skip redundant disk
// reads. Cached images remain in memory until Clear.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache returns an empty cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load decodes the image at path, consulting the cache first. The decode
// chain is netpbm, then the registered standard formats, then webp.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if img, err := netpbm.Decode(f, nil); err == nil {
		logging.Debug("decoded netpbm image", "path", path)
		return img, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}
	if img, _, err := image.Decode(f); err == nil {
		return img, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}
	img, err := webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadGrid decodes the image at path and binarizes it into a pixel grid.
// Color input is flattened to grayscale before the cut so tinted lettering
// binarizes consistently.
func LoadGrid(cache *Cache, path string, opts grid.Binarize) (*grid.Grid, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	flattened := imaging.Grayscale(img)
	g := grid.FromImage(flattened, opts)
	logging.Debug("binarized image",
		"path", path,
		"width", g.Width(),
		"height", g.Height(),
		"foreground", g.Count())
	return g, nil
}
