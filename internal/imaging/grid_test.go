package imaging

import (
	"image"
	"image/color"
	"testing"
)

var black = color.NRGBA{0, 0, 0, 255}

func TestSheetGeometry(t *testing.T) {
	w, h := SheetSize()
	if w != 544 || h != 696 {
		t.Errorf("SheetSize: got %dx%d, want 544x696", w, h)
	}

	tests := []struct {
		col, row int
		want     image.Point
	}{
		{0, 0, image.Pt(16, 16)},
		{1, 0, image.Pt(192, 16)},
		{2, 4, image.Pt(368, 560)},
	}
	for _, tt := range tests {
		if got := CellOrigin(tt.col, tt.row); got != tt.want {
			t.Errorf("CellOrigin(%d,%d): got %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestContactSheet(t *testing.T) {
	snap := createNoiseImage(SnapshotWidth, SnapshotHeight, 31)
	p := RenderPanels(snap, DefaultThresholds(), &Rect{X: 40, Y: 20, W: 60, H: 60}, ModeBlur)

	sheet := ContactSheet(p)
	w, h := SheetSize()
	if sheet.Bounds() != image.Rect(0, 0, w, h) {
		t.Fatalf("bounds: got %v", sheet.Bounds())
	}

	cells := []struct {
		name     string
		col, row int
		panel    *image.NRGBA
	}{
		{"snapshot", 0, 0, p.Snapshot},
		{"grey+20", 1, 0, p.GreyPlus20},
		{"blue", 2, 1, p.Channels.B},
		{"green mask", 1, 2, p.Thresholds.G},
		{"luma", 2, 3, p.Luma},
		{"hue band", 1, 4, p.HueBand},
		{"cr mask", 2, 4, p.CrMask},
	}
	for _, c := range cells {
		at := CellOrigin(c.col, c.row)
		for _, pt := range []image.Point{{0, 0}, {80, 60}, {CellWidth - 1, CellHeight - 1}} {
			if got, want := sheet.NRGBAAt(at.X+pt.X, at.Y+pt.Y), c.panel.NRGBAAt(pt.X, pt.Y); got != want {
				t.Errorf("%s at %v: got %v, want %v", c.name, pt, got, want)
			}
		}
	}

	// The unused top-right cell and the gutters stay black.
	empty := CellOrigin(2, 0)
	assertPixel(t, sheet, empty.X+10, empty.Y+10, black)
	assertPixel(t, sheet, 5, 5, black)

	// The face cell carries the mode label.
	face := CellOrigin(0, 4)
	assertPixel(t, sheet, face.X+1, face.Y+1, labelBackground)
	assertPixel(t, sheet, face.X+80, face.Y+60, p.Face.NRGBAAt(80, 60))
}

func TestContactSheet_Placeholders(t *testing.T) {
	p := RenderPanels(createNoiseImage(SnapshotWidth, SnapshotHeight, 5), DefaultThresholds(), nil, DefaultFilterMode)
	sheet := ContactSheet(p)

	face := CellOrigin(0, 4)
	assertPixel(t, sheet, face.X, face.Y, placeholderColor)
	assertPixel(t, sheet, face.X+CellWidth-1, face.Y+CellHeight-1, placeholderColor)
	assertPixel(t, sheet, face.X+50, face.Y+50, black)

	empty := ContactSheet(nil)
	at := CellOrigin(1, 2)
	assertPixel(t, empty, at.X, at.Y+5, placeholderColor)
}

func TestContactSheet_ResizesOtherResolutions(t *testing.T) {
	snap := createInMemoryImage(80, 60, color.NRGBA{10, 20, 30, 255})
	sheet := ContactSheet(RenderPanels(snap, DefaultThresholds(), nil, DefaultFilterMode))

	at := CellOrigin(0, 3)
	assertPixel(t, sheet, at.X+CellWidth-1, at.Y+CellHeight-1, color.NRGBA{10, 20, 30, 255})
}
