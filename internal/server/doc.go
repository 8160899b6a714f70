// Package server implements the MCP (Model Context Protocol) server for photo
// editing and shape mosaics.
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
// # Edit Sessions
//
// image_open decodes a file and starts an edit session, identified by a
// random UUID. Every edit tool (image_brightness, image_contrast,
// image_grayscale, image_rotate, image_add_border, image_crop) replaces the
// session's current image and records the previous one, so image_undo and
// image_redo can step back and forth. A new edit after an undo discards the
// redo history. An edit rejected for bad parameters leaves the session
// untouched.
//
// image_current returns the current image as base64 PNG, image_save writes it
// to disk and image_close discards the session. Sessions live in memory only.
//
// # Inspection
//
//   - image_sample_color: exact color at a pixel of the current image
//   - image_sample_colors_multi: several labelled points in one call
//   - image_grid_overlay: coordinate grid preview; never enters the history
//
// # Mosaics
//
// mosaic_create tiles a list of image files into a heart or star outline.
// Mosaics are independent of edit sessions.
//
// # Image Caching
//
// Decoded source files are cached by path for the lifetime of the process.
// Saving over a file evicts its entry.
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
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, slog.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
