package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// HueBandHalfWidth is the fixed angular half-width, in degrees, of the hue
// band selected by ThresholdHueBand.
const HueBandHalfWidth = 20.0

// ChannelSet holds the three single-channel views produced by SplitRGB and
// ThresholdRGB.
type ChannelSet struct {
	R *image.NRGBA
	G *image.NRGBA
	B *image.NRGBA
}

type pixelFunc func(r, g, b, a uint8) (uint8, uint8, uint8, uint8)

// mapPixels applies fn to every pixel of img and returns a new raster.
func mapPixels(img image.Image, fn pixelFunc) *image.NRGBA {
	src := AsRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := NewRaster(w, h)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				si, di := src.PixOffset(x, y), dst.PixOffset(x, y)
				s := src.Pix[si : si+4 : si+4]
				d := dst.Pix[di : di+4 : di+4]
				d[0], d[1], d[2], d[3] = fn(s[0], s[1], s[2], s[3])
			}
		}
	})
	return dst
}

// mapChannels feeds each source sample to one function per output raster.
func mapChannels(img image.Image, fr, fg, fb pixelFunc) ChannelSet {
	src := AsRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := ChannelSet{R: NewRaster(w, h), G: NewRaster(w, h), B: NewRaster(w, h)}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				si, di := src.PixOffset(x, y), out.R.PixOffset(x, y)
				s := src.Pix[si : si+4 : si+4]
				put(out.R.Pix[di:di+4:di+4], fr, s)
				put(out.G.Pix[di:di+4:di+4], fg, s)
				put(out.B.Pix[di:di+4:di+4], fb, s)
			}
		}
	})
	return out
}

func put(d []uint8, fn pixelFunc, s []uint8) {
	d[0], d[1], d[2], d[3] = fn(s[0], s[1], s[2], s[3])
}

func luma709(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

func binary(on bool) uint8 {
	if on {
		return 255
	}
	return 0
}

// GreyPlus20 converts to greyscale with Rec. 709 luma weights and raises the
// brightness by 20%, clamping at white.
func GreyPlus20(img image.Image) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		v := Clamp8(luma709(r, g, b) * 1.2)
		return v, v, v, a
	})
}

// ToGrey converts to greyscale with Rec. 709 luma weights.
func ToGrey(img image.Image) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		v := Clamp8(luma709(r, g, b))
		return v, v, v, a
	})
}

// SplitRGB isolates each colour channel: (R,0,0), (0,G,0) and (0,0,B).
func SplitRGB(img image.Image) ChannelSet {
	return mapChannels(img,
		func(r, _, _, a uint8) (uint8, uint8, uint8, uint8) { return r, 0, 0, a },
		func(_, g, _, a uint8) (uint8, uint8, uint8, uint8) { return 0, g, 0, a },
		func(_, _, b, a uint8) (uint8, uint8, uint8, uint8) { return 0, 0, b, a },
	)
}

// ThresholdRGB produces one black/white image per channel. A pixel is white
// where the channel is >= its threshold.
func ThresholdRGB(img image.Image, tR, tG, tB uint8) ChannelSet {
	return mapChannels(img,
		func(r, _, _, a uint8) (uint8, uint8, uint8, uint8) {
			v := binary(r >= tR)
			return v, v, v, a
		},
		func(_, g, _, a uint8) (uint8, uint8, uint8, uint8) {
			v := binary(g >= tG)
			return v, v, v, a
		},
		func(_, _, b, a uint8) (uint8, uint8, uint8, uint8) {
			v := binary(b >= tB)
			return v, v, v, a
		},
	)
}

// HSVHueVisual shows the pure hue of every pixel by forcing S=1 and V=1.
// Achromatic pixels have hue 0 and so come out red.
func HSVHueVisual(img image.Image) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		h, _, _ := RGBToHSV(r, g, b)
		hr, hg, hb := HSVToRGB(h, 1, 1)
		return hr, hg, hb, a
	})
}

// YCbCrY extracts the BT.601 luma plane as a greyscale image.
func YCbCrY(img image.Image) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		v := Clamp8(RGBToYCbCr(r, g, b).Y)
		return v, v, v, a
	})
}

// ThresholdHueBand selects pixels whose hue lies within halfWidth degrees of
// center, measured around the hue wheel.
func ThresholdHueBand(img image.Image, center, halfWidth float64) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		h, _, _ := RGBToHSV(r, g, b)
		d := math.Abs(h - center)
		d = math.Min(d, 360-d)
		v := binary(d <= halfWidth)
		return v, v, v, a
	})
}

// ThresholdCr selects pixels whose unclamped Cr (red chroma) is >= t.
func ThresholdCr(img image.Image, t uint8) *image.NRGBA {
	return mapPixels(img, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		v := binary(RGBToYCbCr(r, g, b).Cr >= float64(t))
		return v, v, v, a
	})
}
