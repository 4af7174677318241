package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRGBToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v float64
	}{
		{"pure red", 255, 0, 0, 0, 1, 1},
		{"pure green", 0, 255, 0, 120, 1, 1},
		{"pure blue", 0, 0, 255, 240, 1, 1},
		{"yellow", 255, 255, 0, 60, 1, 1},
		{"cyan", 0, 255, 255, 180, 1, 1},
		{"magenta", 255, 0, 255, 300, 1, 1},
		{"white", 255, 255, 255, 0, 0, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128.0 / 255.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			if math.Abs(h-tt.h) > 1e-9 || math.Abs(s-tt.s) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestRGBToHSV_HueRange(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				h, s, v := RGBToHSV(uint8(r), uint8(g), uint8(b))
				if h < 0 || h >= 360 {
					t.Fatalf("hue of (%d,%d,%d) = %v outside [0,360)", r, g, b, h)
				}
				if s < 0 || s > 1 || v < 0 || v > 1 {
					t.Fatalf("s/v of (%d,%d,%d) = %v/%v outside [0,1]", r, g, b, s, v)
				}
			}
		}
	}
}

func TestHSVToRGB_Sectors(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b uint8
	}{
		{0, 255, 0, 0},
		{60, 255, 255, 0},
		{120, 0, 255, 0},
		{180, 0, 255, 255},
		{240, 0, 0, 255},
		{300, 255, 0, 255},
		{30, 255, 128, 0},
		{360, 255, 0, 0},
		{-60, 255, 0, 255},
		{420, 255, 255, 0},
	}

	for _, tt := range tests {
		r, g, b := HSVToRGB(tt.h, 1, 1)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("HSVToRGB(%v,1,1): got (%d,%d,%d), want (%d,%d,%d)", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestHSVRoundTrip(t *testing.T) {
	absDiff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}

	step := 1
	if testing.Short() {
		step = 5
	}
	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				h, s, v := RGBToHSV(uint8(r), uint8(g), uint8(b))
				r2, g2, b2 := HSVToRGB(h, s, v)
				if absDiff(uint8(r), r2) > 1 || absDiff(uint8(g), g2) > 1 || absDiff(uint8(b), b2) > 1 {
					t.Fatalf("(%d,%d,%d) round-tripped to (%d,%d,%d)", r, g, b, r2, g2, b2)
				}
			}
		}
	}
}

func TestRGBToYCbCr(t *testing.T) {
	tests := []struct {
		name      string
		r, g, b   uint8
		y, cb, cr float64
	}{
		{"black", 0, 0, 0, 0, 128, 128},
		{"white", 255, 255, 255, 255, 128, 128},
		{"pure red", 255, 0, 0, 76.245, 84.97232, 255.5},
		{"pure green", 0, 255, 0, 149.685, 43.52768, 21.23456},
		{"pure blue", 0, 0, 255, 29.07, 255.5, 107.26544},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToYCbCr(tt.r, tt.g, tt.b)
			if math.Abs(got.Y-tt.y) > 1e-6 || math.Abs(got.Cb-tt.cb) > 1e-6 || math.Abs(got.Cr-tt.cr) > 1e-6 {
				t.Errorf("got %+v, want {Y:%v Cb:%v Cr:%v}", got, tt.y, tt.cb, tt.cr)
			}
		})
	}
}

func TestRGBToYCbCr_RedHasMaximumCr(t *testing.T) {
	maxCr := RGBToYCbCr(255, 0, 0).Cr
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				if cr := RGBToYCbCr(uint8(r), uint8(g), uint8(b)).Cr; cr > maxCr {
					t.Fatalf("Cr of (%d,%d,%d) = %v exceeds pure red %v", r, g, b, cr, maxCr)
				}
			}
		}
	}
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 128, 64, 200})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGBA != (RGBAColor{R: 255, G: 128, B: 64, A: 200}) {
		t.Errorf("RGBA: got %+v", result.RGBA)
	}
	if math.Abs(result.HSV.H-(60.0*64.0/191.0)) > 1e-9 {
		t.Errorf("HSV.H: got %v", result.HSV.H)
	}
	if result.YCbCr != RGBToYCbCr(255, 128, 64) {
		t.Errorf("YCbCr: got %+v", result.YCbCr)
	}
}

func TestSampleColor_OffsetAndNonNRGBA(t *testing.T) {
	// An RGBA sub-image keeps its parent's coordinates; x and y are relative
	// to its top-left corner.
	parent := image.NewRGBA(image.Rect(0, 0, 20, 20))
	parent.SetRGBA(12, 7, color.RGBA{10, 200, 30, 255})
	sub := parent.SubImage(image.Rect(10, 5, 20, 20))

	result, err := SampleColor(sub, 2, 2)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.RGBA != (RGBAColor{R: 10, G: 200, B: 30, A: 255}) {
		t.Errorf("RGBA: got %+v", result.RGBA)
	}
	if _, err := SampleColor(sub, 10, 0); err == nil {
		t.Error("x=10 is past the sub-image width and should fail")
	}

	nparent := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	nparent.SetNRGBA(12, 7, color.NRGBA{10, 200, 30, 90})
	result, err = SampleColor(nparent.SubImage(image.Rect(10, 5, 20, 20)), 2, 2)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.RGBA != (RGBAColor{R: 10, G: 200, B: 30, A: 90}) {
		t.Errorf("NRGBA sub-image RGBA: got %+v", result.RGBA)
	}

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(3, 3, color.Gray{Y: 77})
	result, err = SampleColor(gray, 3, 3)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#4D4D4D" {
		t.Errorf("Hex: got %s, want #4D4D4D", result.Hex)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}
