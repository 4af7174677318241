// Package imaging implements the snapshot image-processing pipeline.
//
// A snapshot is a small frozen frame (160×120 by default). The package maps it
// to a fixed battery of derived images and can replace a detected face region
// with a privacy filter.
//
// # Rasters
//
// Every operation returns a fresh *image.NRGBA with its origin at (0,0):
// straight (non-premultiplied) 8-bit R, G, B and A samples. Inputs may be any
// image.Image; they are normalised with AsRaster and never written to.
// Asking for a raster with a non-positive width or height panics.
//
// # Operations
//
//   - Colour spaces: RGBToHSV, HSVToRGB, RGBToYCbCr, SampleColor
//   - Point transforms: GreyPlus20, ToGrey, SplitRGB, ThresholdRGB,
//     HSVHueVisual, YCbCrY, ThresholdHueBand, ThresholdCr
//   - Area transforms: BoxBlur, Pixelate, Pixelate5x5Grey
//   - Compositing: ClampRect, ReplaceFace, LargestRect
//   - Frames: TakeSnapshot, LoadSnapshot, SaveSnapshot, RenderPanels,
//     ContactSheet
//
// Written channels are rounded to the nearest integer and clamped to
// [0,255] with Clamp8.
//
// # Thread Safety
//
// The transforms hold no state and may be called concurrently, including on
// the same source image. Rows are split across goroutines internally, and
// the output does not depend on how they are split. ImageCache is safe for
// concurrent use.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X grows rightward and Y downward. Face
// rectangles (Rect) use the snapshot's coordinates and are clamped to it
// rather than rejected.
package imaging
