package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBToHSV converts 8-bit RGB to HSV.
//
// Returns:
//   - h: hue in degrees, 0 <= h < 360. Achromatic colours (R=G=B) report 0.
//   - s: saturation, 0-1.
//   - v: value, 0-1.
func RGBToHSV(r, g, b uint8) (h, s, v float64) {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v = c.Hsv()
	if h >= 360 {
		h -= 360
	}
	return h, s, v
}

// HSVToRGB converts HSV back to 8-bit RGB using the six 60° sector
// reconstruction. The hue is wrapped into [0,360) first, and each channel is
// rounded to the nearest integer and clamped.
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, s, v)
	return Clamp8(c.R * 255), Clamp8(c.G * 255), Clamp8(c.B * 255)
}

// YCbCr holds full-range BT.601 components as real numbers. Values are not
// clamped, so Cr for saturated reds exceeds 255.
type YCbCr struct {
	Y  float64 `json:"y"`
	Cb float64 `json:"cb"`
	Cr float64 `json:"cr"`
}

// RGBToYCbCr converts 8-bit RGB to full-range BT.601 YCbCr.
func RGBToYCbCr(r, g, b uint8) YCbCr {
	rf, gf, bf := float64(r), float64(g), float64(b)
	return YCbCr{
		Y:  0.299*rf + 0.587*gf + 0.114*bf,
		Cb: 128 - 0.168736*rf - 0.331264*gf + 0.5*bf,
		Cr: 128 + 0.5*rf - 0.418688*gf - 0.081312*bf,
	}
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSVColor is a hue/saturation/value triple as used by the hue-band threshold.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// ColorResult describes one pixel in every colour space the pipeline uses.
type ColorResult struct {
	Hex   string    `json:"hex"`   // Hex format "#RRGGBB" (no alpha)
	RGBA  RGBAColor `json:"rgba"`  // RGBA components with alpha
	HSV   HSVColor  `json:"hsv"`   // HSV representation
	YCbCr YCbCr     `json:"ycbcr"` // Full-range BT.601, unclamped
}

// SampleColor reads the pixel at (x, y) and reports it as RGBA, HSV and YCbCr.
//
// This is the quickest way to choose a hue-band centre or a Cr threshold for
// a particular snapshot: sample a skin pixel and read off HSV.H or YCbCr.Cr.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	px, py := bounds.Min.X+x, bounds.Min.Y+y
	var r8, g8, b8, a8 uint8
	if n, ok := img.(*image.NRGBA); ok {
		r8, g8, b8, a8 = PixelAt(n, px, py)
	} else {
		c := color.NRGBAModel.Convert(img.At(px, py)).(color.NRGBA)
		r8, g8, b8, a8 = c.R, c.G, c.B, c.A
	}
	h, s, v := RGBToHSV(r8, g8, b8)

	return &ColorResult{
		Hex:   fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGBA:  RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSV:   HSVColor{H: h, S: s, V: v},
		YCbCr: RGBToYCbCr(r8, g8, b8),
	}, nil
}
