package imaging

import (
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
)

// Contact sheet geometry: a 3×5 grid of snapshot-sized cells.
const (
	SheetCols  = 3
	SheetRows  = 5
	CellWidth  = SnapshotWidth
	CellHeight = SnapshotHeight
	SheetGap   = 16
)

var (
	sheetBackground  = color.NRGBA{0, 0, 0, 255}
	placeholderColor = color.NRGBA{80, 80, 80, 255}
	labelColor       = color.NRGBA{255, 255, 255, 255}
	labelBackground  = color.NRGBA{40, 40, 40, 255}
)

// SheetSize returns the pixel size of a contact sheet.
func SheetSize() (int, int) {
	w := SheetGap + SheetCols*CellWidth + (SheetCols-1)*SheetGap + SheetGap
	h := SheetGap + SheetRows*CellHeight + (SheetRows-1)*SheetGap + SheetGap
	return w, h
}

// CellOrigin returns the top-left pixel of grid cell (col, row).
func CellOrigin(col, row int) image.Point {
	return image.Pt(SheetGap+col*(CellWidth+SheetGap), SheetGap+row*(CellHeight+SheetGap))
}

// ContactSheet lays the panels out on one image:
//
//	row 0: snapshot      grey +20%     (empty)
//	row 1: red           green         blue
//	row 2: red mask      green mask    blue mask
//	row 3: snapshot      hue           luma (Y)
//	row 4: face filter   hue band      Cr mask
//
// Panels are drawn verbatim, resized with nearest-neighbour sampling only
// when the working resolution differs from the cell size. A nil panel is
// drawn as a grey outline placeholder. The face cell is tagged with the
// filter mode's key number.
func ContactSheet(p *Panels) *image.NRGBA {
	w, h := SheetSize()
	sheet := imaging.New(w, h, sheetBackground)

	var cells [SheetRows][SheetCols]*image.NRGBA
	if p != nil {
		cells = [SheetRows][SheetCols]*image.NRGBA{
			{p.Snapshot, p.GreyPlus20, nil},
			{p.Channels.R, p.Channels.G, p.Channels.B},
			{p.Thresholds.R, p.Thresholds.G, p.Thresholds.B},
			{p.Snapshot, p.HueVisual, p.Luma},
			{p.Face, p.HueBand, p.CrMask},
		}
	}

	for row := 0; row < SheetRows; row++ {
		for col := 0; col < SheetCols; col++ {
			if row == 0 && col == 2 {
				continue
			}
			at := CellOrigin(col, row)
			if cells[row][col] == nil {
				drawPlaceholder(sheet, at)
				continue
			}
			drawCell(sheet, at, cells[row][col])
		}
	}

	if p != nil && p.Face != nil && p.Mode.Valid() {
		at := CellOrigin(0, 4)
		drawLabel(sheet, at.X+2, at.Y+2, strconv.Itoa(int(p.Mode)), labelColor, labelBackground)
	}

	return sheet
}

// drawCell copies panel rows into the sheet byte for byte, so translucent
// pixels keep their exact straight-alpha values.
func drawCell(sheet *image.NRGBA, at image.Point, panel *image.NRGBA) {
	if b := panel.Bounds(); b.Dx() != CellWidth || b.Dy() != CellHeight {
		panel = imaging.Resize(panel, CellWidth, CellHeight, imaging.NearestNeighbor)
	}
	src := AsRaster(panel)
	for y := 0; y < CellHeight; y++ {
		i := sheet.PixOffset(at.X, at.Y+y)
		j := src.PixOffset(0, y)
		copy(sheet.Pix[i:i+4*CellWidth], src.Pix[j:j+4*CellWidth])
	}
}

// drawPlaceholder outlines an empty cell.
func drawPlaceholder(sheet *image.NRGBA, at image.Point) {
	x0, y0 := at.X, at.Y
	x1, y1 := x0+CellWidth-1, y0+CellHeight-1
	for x := x0; x <= x1; x++ {
		sheet.SetNRGBA(x, y0, placeholderColor)
		sheet.SetNRGBA(x, y1, placeholderColor)
	}
	for y := y0; y <= y1; y++ {
		sheet.SetNRGBA(x0, y, placeholderColor)
		sheet.SetNRGBA(x1, y, placeholderColor)
	}
}

// drawLabel draws digits with a 3x5 pixel font on a dark box.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	inside := func(px, py int) bool { return image.Pt(px, py).In(bounds) }
	charWidth := 4

	for dy := -1; dy < 7; dy++ {
		for dx := -1; dx < len(text)*charWidth; dx++ {
			if inside(x+dx, y+dy) {
				img.SetNRGBA(x+dx, y+dy, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' && inside(cx+col, y+row) {
					img.SetNRGBA(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
