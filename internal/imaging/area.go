package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Fixed parameters of the face privacy filters.
const (
	FaceBlurRadius    = 6
	PixelateBlockSize = 5
)

// BoxBlur convolves the image with a uniform (2·radius+1)² kernel.
//
// Parameters:
//   - img: Source image.
//   - radius: Kernel radius in pixels. Zero (or a negative value) gives a
//     one-pixel kernel, i.e. an exact copy.
//
// Samples outside the image are taken from the nearest edge row or column
// (edge clamping), so the border does not darken. R, G, B and A are averaged
// independently and each result is rounded with Clamp8.
//
// The kernel is separable, so the sums are built as a horizontal then a
// vertical sliding window. The result is the exact integer kernel sum divided
// once, and the cost does not grow with radius.
func BoxBlur(img image.Image, radius int) *image.NRGBA {
	if radius < 0 {
		radius = 0
	}
	src := AsRaster(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := NewRaster(w, h)
	side := float64(2*radius + 1)
	area := side * side

	rows := make([]int, w*h*4)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			line := src.Pix[src.PixOffset(0, y):]
			out := rows[y*w*4:]
			windowSums(w, radius,
				func(i, c int) int { return int(line[i*4+c]) },
				func(i, c, sum int) { out[i*4+c] = sum })
		}
	})

	parallel.Line(w, func(start, end int) {
		for x := start; x < end; x++ {
			windowSums(h, radius,
				func(i, c int) int { return rows[(i*w+x)*4+c] },
				func(i, c, sum int) { dst.Pix[dst.PixOffset(x, i)+c] = Clamp8(float64(sum) / area) })
		}
	})
	return dst
}

// windowSums reports, for each position i in [0, n) and channel c, the sum of
// at(j, c) over j in [i-radius, i+radius] with j clamped to the edge.
func windowSums(n, radius int, at func(i, c int) int, put func(i, c, sum int)) {
	for c := 0; c < 4; c++ {
		sum := (radius + 1) * at(0, c)
		for k := 1; k <= radius && k < n; k++ {
			sum += at(k, c)
		}
		if radius > n-1 {
			sum += (radius - (n - 1)) * at(n-1, c)
		}
		put(0, c, sum)

		for i := 1; i < n; i++ {
			sum += at(clamp(i+radius, 0, n-1), c) - at(clamp(i-1-radius, 0, n-1), c)
			put(i, c, sum)
		}
	}
}

// Pixelate converts the image to greyscale (ToGrey) and then replaces every
// non-overlapping blockSize×blockSize tile with the tile's mean grey.
//
// Tiles on the right and bottom edges are cut short when the image size is
// not a multiple of blockSize; their mean is taken over the pixels they
// actually cover. The output is always opaque.
func Pixelate(img image.Image, blockSize int) *image.NRGBA {
	if blockSize < 1 {
		blockSize = 1
	}
	grey := ToGrey(img)
	w, h := grey.Bounds().Dx(), grey.Bounds().Dy()
	dst := NewRaster(w, h)
	rows := (h + blockSize - 1) / blockSize

	parallel.Line(rows, func(start, end int) {
		for by := start; by < end; by++ {
			y0 := by * blockSize
			y1 := min(y0+blockSize, h)
			for x0 := 0; x0 < w; x0 += blockSize {
				x1 := min(x0+blockSize, w)

				sum, count := 0, 0
				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						// R, G and B are equal after ToGrey.
						sum += int(grey.Pix[grey.PixOffset(x, y)])
						count++
					}
				}
				avg := Clamp8(float64(sum) / float64(count))

				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						i := dst.PixOffset(x, y)
						dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = avg, avg, avg, 255
					}
				}
			}
		}
	})
	return dst
}

// Pixelate5x5Grey is Pixelate with the face filter's block size.
func Pixelate5x5Grey(img image.Image) *image.NRGBA {
	return Pixelate(img, PixelateBlockSize)
}
