package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Working resolution of a snapshot. Every panel is produced at this size.
const (
	SnapshotWidth  = 160
	SnapshotHeight = 120
)

// NewRaster allocates a zeroed w×h raster with its origin at (0,0).
//
// A non-positive dimension is a programming error and panics; no caller
// should ever ask for a degenerate raster.
func NewRaster(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("imaging: invalid raster dimensions %dx%d", w, h))
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// AsRaster returns img as a straight-alpha NRGBA raster with its origin at (0,0).
//
// An *image.NRGBA that already satisfies this is returned as is and must be
// treated as read-only by the caller. Anything else is deep-copied.
func AsRaster(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		panic(fmt.Sprintf("imaging: empty raster %v", b))
	}
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// PixelAt returns the straight RGBA samples at (x, y) in r's own coordinate
// space. The caller guarantees the coordinate is inside the raster.
func PixelAt(r *image.NRGBA, x, y int) (uint8, uint8, uint8, uint8) {
	i := r.PixOffset(x, y)
	p := r.Pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// Clamp8 rounds v to the nearest integer and clamps it to [0,255].
func Clamp8(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// clamp constrains an integer value to the range [min, max].
// Used for edge-clamped sampling in windowed operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
