// Package server implements the MCP (Model Context Protocol) server that
// drives the snapshot pipeline.
//
// The server is the controller around the pure imaging package. It owns the
// state the pipeline deliberately does not: the current snapshot and its
// version, the face region reported by an external detector, and the
// selected privacy filter mode.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source files:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_snapshot: Freeze a frame at the working resolution
//
// Face region state:
//   - image_set_face_region: Set, pick from candidates, or clear the face
//   - image_set_face_mode: Select greyscale, blur, hue or pixelate
//
// Pipeline:
//   - image_transform: Run one point or area transform
//   - image_replace_face: Composite the filter into the face region
//   - image_panels: Render every panel, optionally as a contact sheet
//
// Inspection and output:
//   - image_sample_color: Get color at pixel in RGB, HSV and YCbCr
//   - image_save: Write the snapshot as PNG
//
// Tools that read the snapshot fail with "no snapshot taken" until
// image_snapshot has succeeded. image_replace_face without a face region is
// not an error; it reports replaced=false.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv(os.Getenv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
