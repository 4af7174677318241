package imaging

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// FilterMode selects the privacy filter applied inside the face region.
type FilterMode int

const (
	ModeGreyscale FilterMode = iota + 1
	ModeBlur
	ModeHueVisual
	ModePixelate
)

// DefaultFilterMode is the mode a controller starts in.
const DefaultFilterMode = ModeGreyscale

var filterModeNames = map[FilterMode]string{
	ModeGreyscale: "greyscale",
	ModeBlur:      "blur",
	ModeHueVisual: "hue",
	ModePixelate:  "pixelate",
}

func (m FilterMode) String() string {
	if name, ok := filterModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FilterMode(%d)", int(m))
}

// Valid reports whether m is one of the four defined modes.
func (m FilterMode) Valid() bool {
	_, ok := filterModeNames[m]
	return ok
}

// ParseFilterMode accepts a mode name ("greyscale", "blur", "hue",
// "pixelate"), a common alias, or the key codes "1" to "4".
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "greyscale", "grayscale", "grey", "gray":
		return ModeGreyscale, nil
	case "2", "blur":
		return ModeBlur, nil
	case "3", "hue", "hue-visual", "colour", "color":
		return ModeHueVisual, nil
	case "4", "pixelate", "pixel":
		return ModePixelate, nil
	}
	return 0, fmt.Errorf("unknown filter mode: %q", s)
}

// Rect is a detection rectangle in snapshot coordinates. Detectors may report
// fractional values; they are floored when the rect is applied.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns W×H.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// ClampRect fits r inside bounds (a raster with origin (0,0)).
//
// The top-left corner is floored and clamped to the raster, and the size is
// floored and cut to what remains, never below one pixel. A rect lying
// wholly outside the raster therefore collapses to a single edge pixel
// instead of indexing out of bounds.
func ClampRect(r Rect, bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	x := floorIn(r.X, 0, w-1)
	y := floorIn(r.Y, 0, h-1)
	rw := floorIn(r.W, 1, w-x)
	rh := floorIn(r.H, 1, h-y)
	return image.Rect(x, y, x+rw, y+rh)
}

// floorIn floors v and limits it to [lo, hi]. The limit is applied before
// the int conversion so huge or infinite values cannot overflow. NaN counts
// as 0.
func floorIn(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		v = 0
	}
	v = math.Max(float64(lo), math.Min(float64(hi), v))
	return int(math.Floor(v))
}

// LargestRect picks the detection with the largest area, which is usually
// the face nearest the camera. Ties keep the earliest. Returns nil when
// there are no detections.
func LargestRect(rects []Rect) *Rect {
	if len(rects) == 0 {
		return nil
	}
	best := rects[0]
	for _, r := range rects[1:] {
		if r.Area() > best.Area() {
			best = r
		}
	}
	return &best
}

// ApplyFilter runs the privacy filter selected by mode over img.
// An undefined mode passes img through as an unmodified copy.
func ApplyFilter(img image.Image, mode FilterMode) *image.NRGBA {
	switch mode {
	case ModeGreyscale:
		return ToGrey(img)
	case ModeBlur:
		return BoxBlur(img, FaceBlurRadius)
	case ModeHueVisual:
		return HSVHueVisual(img)
	case ModePixelate:
		return Pixelate5x5Grey(img)
	default:
		return imaging.Clone(img)
	}
}

// ReplaceFace returns a copy of src whose face region has been replaced by
// the privacy filter selected by mode.
//
// Parameters:
//   - src: The snapshot. Never modified.
//   - rect: The detected face. It is clamped to src (ClampRect), so partly
//     or wholly out-of-range rectangles are accepted.
//   - mode: Which filter to apply inside the region.
//
// Returns nil when src or rect is nil; that means "nothing to composite",
// not a failure. Every pixel outside the region is identical to src.
func ReplaceFace(src image.Image, rect *Rect, mode FilterMode) *image.NRGBA {
	if src == nil || rect == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok && n == nil {
		return nil
	}
	snap := AsRaster(src)
	region := ClampRect(*rect, snap.Bounds())

	face := ExtractRegion(snap, region)
	return PasteRegion(snap, ApplyFilter(face, mode), region.Min)
}
