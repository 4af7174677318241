package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache keeps decoded source frames keyed by file path, so repeated
// snapshots of the same file skip the disk read and decode.
//
// ImageCache is safe for concurrent use. Cached images are shared and must not
// be modified; every pipeline operation already treats its input as read-only.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

type cachedImage struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
// PNG, JPEG and GIF are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry = cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Evict drops one cached image. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a source image file.
type ImageInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"` // decoder name: "png", "jpeg" or "gif"
	HasAlpha      bool   `json:"has_alpha"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and reports its size, format and
// whether its colour model carries alpha.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	switch entry.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        entry.format,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns only the size of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// TakeSnapshot freezes a source frame at the working resolution w×h.
// The result is a new raster independent of frame.
func TakeSnapshot(frame image.Image, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("imaging: invalid snapshot size %dx%d", w, h))
	}
	b := frame.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return imaging.Clone(frame)
	}
	return imaging.Resize(frame, w, h, imaging.Linear)
}

// LoadSnapshot loads path through cache and freezes it at w×h.
func LoadSnapshot(cache *ImageCache, path string, w, h int) (*image.NRGBA, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return TakeSnapshot(img, w, h), nil
}

// SaveSnapshot writes img to path as PNG and returns the path written.
//
// A path without an extension gets ".png" appended. Any extension other than
// ".png" is rejected: snapshots are only ever persisted as PNG.
func SaveSnapshot(img image.Image, path string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no snapshot to save")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "":
		path += ".png"
	case ".png":
	default:
		return "", fmt.Errorf("unsupported snapshot format %q: only .png is written", ext)
	}

	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return path, nil
}
