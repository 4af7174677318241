package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/snapshot-lab-mcp/internal/imaging"
)

// errNoSnapshot is returned by every tool that works on the current snapshot
// before image_snapshot has been called.
var errNoSnapshot = errors.New("no snapshot taken")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_snapshot", "image_replace_face").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	entry := s.log.WithField("tool", params.Name)
	entry.Debug("Tool call")

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		entry.WithError(err).Warn("Tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Reads the controller state (snapshot, face region, mode) as needed
//  4. Calls the appropriate imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Source files
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_snapshot":
		return s.handleImageSnapshot(args)

	// Face region state
	case "image_set_face_region":
		return s.handleSetFaceRegion(args)
	case "image_set_face_mode":
		return s.handleSetFaceMode(args)

	// Pipeline
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_replace_face":
		return s.handleReplaceFace(args)
	case "image_panels":
		return s.handleImagePanels(args)

	// Inspection and output
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_save":
		return s.handleImageSave(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// currentSnapshot returns the snapshot and its version. The raster is never
// written after it is stored, so it is safe to use outside the lock.
func (s *Server) currentSnapshot() (*image.NRGBA, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, 0, errNoSnapshot
	}
	return s.snapshot, s.version, nil
}

// faceState returns the current face region (nil when unset) and mode.
func (s *Server) faceState() (*imaging.Rect, imaging.FilterMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.face == nil {
		return nil, s.mode
	}
	face := *s.face
	return &face, s.mode
}

// === Argument helpers ===

// modeArg accepts a filter mode as a name ("blur") or key code (2 or "2").
type modeArg imaging.FilterMode

func (m *modeArg) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		var code int
		if json.Unmarshal(b, &code) != nil {
			return fmt.Errorf("mode must be a name or key code, got %s", string(b))
		}
		raw = strconv.Itoa(code)
	}
	mode, err := imaging.ParseFilterMode(raw)
	if err != nil {
		return err
	}
	*m = modeArg(mode)
	return nil
}

// thresholdArgs are the optional slider values. Unset fields fall back to
// imaging.DefaultThresholds.
type thresholdArgs struct {
	R         *int     `json:"r"`
	G         *int     `json:"g"`
	B         *int     `json:"b"`
	HueCenter *float64 `json:"hue_center"`
	Cr        *int     `json:"cr"`
}

func (a thresholdArgs) resolve() (imaging.Thresholds, error) {
	th := imaging.DefaultThresholds()

	var err error
	if th.R, err = byteArg("r", a.R, th.R); err != nil {
		return th, err
	}
	if th.G, err = byteArg("g", a.G, th.G); err != nil {
		return th, err
	}
	if th.B, err = byteArg("b", a.B, th.B); err != nil {
		return th, err
	}
	if th.Cr, err = byteArg("cr", a.Cr, th.Cr); err != nil {
		return th, err
	}
	if a.HueCenter != nil {
		if *a.HueCenter < 0 || *a.HueCenter > 360 {
			return th, fmt.Errorf("hue_center must be in [0, 360], got %g", *a.HueCenter)
		}
		th.HueCenter = *a.HueCenter
	}
	return th, nil
}

func byteArg(name string, v *int, def uint8) (uint8, error) {
	if v == nil {
		return def, nil
	}
	if *v < 0 || *v > 255 {
		return def, fmt.Errorf("%s must be in [0, 255], got %d", name, *v)
	}
	return uint8(*v), nil
}

// regionResult is a face rectangle after clamping to the snapshot.
type regionResult struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func newRegionResult(r image.Rectangle) *regionResult {
	return &regionResult{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// === Source File Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSnapshotArgs struct {
	Path         string `json:"path"`
	IncludeImage bool   `json:"include_image"`
}

type snapshotResult struct {
	Version      int                  `json:"version"`
	Width        int                  `json:"width"`
	Height       int                  `json:"height"`
	SourceWidth  int                  `json:"source_width"`
	SourceHeight int                  `json:"source_height"`
	Image        *imaging.ImageResult `json:"image,omitempty"`
}

// handleImageSnapshot freezes a source file at the working resolution and
// makes it the current snapshot. The face region belongs to the previous
// frame, so it is cleared.
func (s *Server) handleImageSnapshot(args json.RawMessage) (interface{}, error) {
	var a imageSnapshotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	snap, err := imaging.LoadSnapshot(s.cache, a.Path, s.cfg.SnapshotWidth, s.cfg.SnapshotHeight)
	if err != nil {
		return nil, err
	}
	src, err := imaging.GetDimensions(s.cache, a.Path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.version++
	s.face = nil
	version := s.version
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"path":    a.Path,
		"version": version,
	}).Info("Snapshot taken")

	result := &snapshotResult{
		Version:      version,
		Width:        snap.Bounds().Dx(),
		Height:       snap.Bounds().Dy(),
		SourceWidth:  src.Width,
		SourceHeight: src.Height,
	}
	if a.IncludeImage {
		if result.Image, err = imaging.EncodePNG(snap); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// === Face Region Handlers ===

type setFaceRegionArgs struct {
	X          *float64       `json:"x"`
	Y          *float64       `json:"y"`
	W          *float64       `json:"w"`
	H          *float64       `json:"h"`
	Candidates []imaging.Rect `json:"candidates"`
	Clear      bool           `json:"clear"`
}

type faceRegionResult struct {
	Face   *imaging.Rect `json:"face"`
	Region *regionResult `json:"region,omitempty"`
	Mode   string        `json:"mode"`
}

// handleSetFaceRegion records the face rectangle for later compositing.
// A list of detector candidates keeps only the largest; an empty list
// clears the region, the same as clear=true.
func (s *Server) handleSetFaceRegion(args json.RawMessage) (interface{}, error) {
	var a setFaceRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var face *imaging.Rect
	switch {
	case a.Clear:
	case a.Candidates != nil:
		face = imaging.LargestRect(a.Candidates)
	case a.X != nil && a.Y != nil && a.W != nil && a.H != nil:
		face = &imaging.Rect{X: *a.X, Y: *a.Y, W: *a.W, H: *a.H}
	default:
		return nil, fmt.Errorf("face region needs x, y, w and h, a candidates list, or clear")
	}

	s.mu.Lock()
	s.face = face
	mode, snap := s.mode, s.snapshot
	s.mu.Unlock()

	result := &faceRegionResult{Face: face, Mode: mode.String()}
	if face != nil && snap != nil {
		result.Region = newRegionResult(imaging.ClampRect(*face, snap.Bounds()))
	}
	return result, nil
}

type setFaceModeArgs struct {
	Mode *modeArg `json:"mode"`
}

type modeResult struct {
	Mode string `json:"mode"`
	Code int    `json:"code"`
}

func (s *Server) handleSetFaceMode(args json.RawMessage) (interface{}, error) {
	var a setFaceModeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == nil {
		return nil, fmt.Errorf("mode is required")
	}

	mode := imaging.FilterMode(*a.Mode)
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.log.WithField("mode", mode.String()).Debug("Face mode changed")
	return &modeResult{Mode: mode.String(), Code: int(mode)}, nil
}

// === Pipeline Handlers ===

type imageTransformArgs struct {
	Transform string `json:"transform"`
	thresholdArgs
	HalfWidth *float64 `json:"half_width"`
	Radius    *int     `json:"radius"`
	BlockSize *int     `json:"block_size"`
}

type transformResult struct {
	Transform string                          `json:"transform"`
	Version   int                             `json:"version"`
	Images    map[string]*imaging.ImageResult `json:"images"`
}

// transformNames lists the values accepted by image_transform.
var transformNames = []string{
	"grey_plus_20", "grey", "split_rgb", "threshold_rgb", "hue_visual",
	"ycbcr_y", "hue_band", "cr_threshold", "blur", "pixelate",
}

// handleImageTransform runs one named transform over the current snapshot.
// Single-raster transforms return an "image" entry; channel splits return
// "r", "g" and "b".
func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	th, err := a.thresholdArgs.resolve()
	if err != nil {
		return nil, err
	}

	snap, version, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}

	out := map[string]*image.NRGBA{}
	switch a.Transform {
	case "grey_plus_20":
		out["image"] = imaging.GreyPlus20(snap)
	case "grey":
		out["image"] = imaging.ToGrey(snap)
	case "split_rgb":
		addChannels(out, imaging.SplitRGB(snap))
	case "threshold_rgb":
		addChannels(out, imaging.ThresholdRGB(snap, th.R, th.G, th.B))
	case "hue_visual":
		out["image"] = imaging.HSVHueVisual(snap)
	case "ycbcr_y":
		out["image"] = imaging.YCbCrY(snap)
	case "hue_band":
		half := imaging.HueBandHalfWidth
		if a.HalfWidth != nil {
			if *a.HalfWidth < 0 {
				return nil, fmt.Errorf("half_width must not be negative, got %g", *a.HalfWidth)
			}
			half = *a.HalfWidth
		}
		out["image"] = imaging.ThresholdHueBand(snap, th.HueCenter, half)
	case "cr_threshold":
		out["image"] = imaging.ThresholdCr(snap, th.Cr)
	case "blur":
		radius := imaging.FaceBlurRadius
		if a.Radius != nil {
			limit := max(snap.Bounds().Dx(), snap.Bounds().Dy())
			if *a.Radius < 0 || *a.Radius > limit {
				return nil, fmt.Errorf("radius must be in [0, %d], got %d", limit, *a.Radius)
			}
			radius = *a.Radius
		}
		out["image"] = imaging.BoxBlur(snap, radius)
	case "pixelate":
		block := imaging.PixelateBlockSize
		if a.BlockSize != nil {
			limit := max(snap.Bounds().Dx(), snap.Bounds().Dy())
			if *a.BlockSize < 1 || *a.BlockSize > limit {
				return nil, fmt.Errorf("block_size must be in [1, %d], got %d", limit, *a.BlockSize)
			}
			block = *a.BlockSize
		}
		out["image"] = imaging.Pixelate(snap, block)
	default:
		return nil, fmt.Errorf("unknown transform: %q (valid: %v)", a.Transform, transformNames)
	}

	images, err := encodeAll(out)
	if err != nil {
		return nil, err
	}
	return &transformResult{Transform: a.Transform, Version: version, Images: images}, nil
}

func addChannels(out map[string]*image.NRGBA, cs imaging.ChannelSet) {
	out["r"], out["g"], out["b"] = cs.R, cs.G, cs.B
}

func encodeAll(rasters map[string]*image.NRGBA) (map[string]*imaging.ImageResult, error) {
	images := make(map[string]*imaging.ImageResult, len(rasters))
	for name, img := range rasters {
		if img == nil {
			continue
		}
		res, err := imaging.EncodePNG(img)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		images[name] = res
	}
	return images, nil
}

type replaceFaceArgs struct {
	Rect *imaging.Rect `json:"rect"`
	Mode *modeArg      `json:"mode"`
}

type replaceFaceResult struct {
	Replaced bool                 `json:"replaced"`
	Version  int                  `json:"version"`
	Mode     string               `json:"mode"`
	Region   *regionResult        `json:"region,omitempty"`
	Image    *imaging.ImageResult `json:"image,omitempty"`
}

// handleReplaceFace composites the privacy filter into the current snapshot.
// rect and mode default to the stored face region and mode. With no region
// at all the result reports replaced=false and carries no image.
func (s *Server) handleReplaceFace(args json.RawMessage) (interface{}, error) {
	var a replaceFaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	snap, version, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}

	face, mode := s.faceState()
	if a.Rect != nil {
		face = a.Rect
	}
	if a.Mode != nil {
		mode = imaging.FilterMode(*a.Mode)
	}

	result := &replaceFaceResult{Version: version, Mode: mode.String()}
	composite := imaging.ReplaceFace(snap, face, mode)
	if composite == nil {
		return result, nil
	}

	result.Replaced = true
	result.Region = newRegionResult(imaging.ClampRect(*face, snap.Bounds()))
	if result.Image, err = imaging.EncodePNG(composite); err != nil {
		return nil, err
	}
	return result, nil
}

type imagePanelsArgs struct {
	thresholdArgs
	Sheet     bool `json:"sheet"`
	SheetOnly bool `json:"sheet_only"`
}

type panelsResult struct {
	Version int                             `json:"version"`
	Mode    string                          `json:"mode"`
	HasFace bool                            `json:"has_face"`
	Panels  map[string]*imaging.ImageResult `json:"panels,omitempty"`
	Sheet   *imaging.ImageResult            `json:"sheet,omitempty"`
}

// handleImagePanels renders every view of the current snapshot using the
// stored face region and mode, optionally laid out as a contact sheet.
func (s *Server) handleImagePanels(args json.RawMessage) (interface{}, error) {
	var a imagePanelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	th, err := a.thresholdArgs.resolve()
	if err != nil {
		return nil, err
	}

	snap, version, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}
	face, mode := s.faceState()

	p := imaging.RenderPanels(snap, th, face, mode)
	result := &panelsResult{Version: version, Mode: mode.String(), HasFace: p.Face != nil}

	if !a.SheetOnly {
		if result.Panels, err = encodeAll(panelRasters(p)); err != nil {
			return nil, err
		}
	}
	if a.Sheet || a.SheetOnly {
		if result.Sheet, err = imaging.EncodePNG(imaging.ContactSheet(p)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func panelRasters(p *imaging.Panels) map[string]*image.NRGBA {
	return map[string]*image.NRGBA{
		"snapshot":     p.Snapshot,
		"grey_plus_20": p.GreyPlus20,
		"r":            p.Channels.R,
		"g":            p.Channels.G,
		"b":            p.Channels.B,
		"threshold_r":  p.Thresholds.R,
		"threshold_g":  p.Thresholds.G,
		"threshold_b":  p.Thresholds.B,
		"hue_visual":   p.HueVisual,
		"ycbcr_y":      p.Luma,
		"hue_band":     p.HueBand,
		"cr_threshold": p.CrMask,
		"face":         p.Face,
	}
}

// === Inspection and Output Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// handleImageSampleColor samples the current snapshot, or a source file when
// path is given.
func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var img image.Image
	if a.Path != "" {
		src, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		img = src
	} else {
		snap, _, err := s.currentSnapshot()
		if err != nil {
			return nil, err
		}
		img = snap
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSaveArgs struct {
	Path string `json:"path"`
	Face bool   `json:"face"`
}

type saveResult struct {
	Path    string `json:"path"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Version int    `json:"version"`
}

// handleImageSave writes the current snapshot, or with face=true the
// snapshot after face replacement, to a PNG file.
func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	snap, version, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}

	out := snap
	if a.Face {
		face, mode := s.faceState()
		if face == nil {
			return nil, fmt.Errorf("no face region set")
		}
		out = imaging.ReplaceFace(snap, face, mode)
	}

	path, err := imaging.SaveSnapshot(out, a.Path)
	if err != nil {
		return nil, err
	}
	// The file may have been loaded before; drop the stale decode.
	s.cache.Evict(path)
	s.log.WithFields(logrus.Fields{"path": path, "version": version}).Info("Snapshot saved")

	return &saveResult{
		Path:    path,
		Width:   out.Bounds().Dx(),
		Height:  out.Bounds().Dy(),
		Version: version,
	}, nil
}
