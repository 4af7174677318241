package imaging

import (
	"image"
	"sync"
)

// Thresholds are the slider values supplied with each frame.
type Thresholds struct {
	R         uint8   `json:"r"`
	G         uint8   `json:"g"`
	B         uint8   `json:"b"`
	HueCenter float64 `json:"hue_center"` // degrees, 0-360
	Cr        uint8   `json:"cr"`
}

// DefaultThresholds returns the initial slider positions: mid-range channel
// and Cr thresholds and a hue band centred on red.
func DefaultThresholds() Thresholds {
	return Thresholds{R: 128, G: 128, B: 128, HueCenter: 0, Cr: 128}
}

// Panels is the full battery of views derived from one snapshot.
// Face is nil when no face region was supplied.
type Panels struct {
	Snapshot   *image.NRGBA
	GreyPlus20 *image.NRGBA
	Channels   ChannelSet
	Thresholds ChannelSet
	HueVisual  *image.NRGBA
	Luma       *image.NRGBA
	HueBand    *image.NRGBA
	CrMask     *image.NRGBA
	Face       *image.NRGBA
	Mode       FilterMode
}

// RenderPanels computes every panel for snapshot.
//
// The transforms are independent pure functions of the same read-only
// snapshot, so they run concurrently; the result does not depend on
// scheduling.
func RenderPanels(snapshot image.Image, th Thresholds, face *Rect, mode FilterMode) *Panels {
	snap := AsRaster(snapshot)
	p := &Panels{Snapshot: snap, Mode: mode}

	jobs := []func(){
		func() { p.GreyPlus20 = GreyPlus20(snap) },
		func() { p.Channels = SplitRGB(snap) },
		func() { p.Thresholds = ThresholdRGB(snap, th.R, th.G, th.B) },
		func() { p.HueVisual = HSVHueVisual(snap) },
		func() { p.Luma = YCbCrY(snap) },
		func() { p.HueBand = ThresholdHueBand(snap, th.HueCenter, HueBandHalfWidth) },
		func() { p.CrMask = ThresholdCr(snap, th.Cr) },
		func() { p.Face = ReplaceFace(snap, face, mode) },
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		go func(run func()) {
			defer wg.Done()
			run()
		}(job)
	}
	wg.Wait()

	return p
}
