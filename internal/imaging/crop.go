package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ExtractRegion copies the pixels of src inside r into a new raster whose
// origin is (0,0). r must already lie inside src (see ClampRect).
func ExtractRegion(src image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(AsRaster(src), r)
}

// PasteRegion returns a deep copy of src with region written over it at
// offset at. Pixels outside the pasted area are byte-identical to src, and
// src itself is left untouched.
func PasteRegion(src, region image.Image, at image.Point) *image.NRGBA {
	return imaging.Paste(AsRaster(src), region, at)
}

// ImageResult contains a raster encoded as base64 PNG.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG result.
func EncodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
