package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/photo-tools-mcp/internal/history"
	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
	"github.com/ironsheep/photo-tools-mcp/internal/mosaic"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_rotate").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Debug("tool call", "tool", params.Name, "duration", time.Since(start))

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
//  3. Looks up the edit session or loads images through the cache
//  4. Calls the appropriate imaging/history/mosaic function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session Lifecycle
	case "image_open":
		return s.handleImageOpen(args)
	case "image_current":
		return s.handleImageCurrent(args)
	case "image_save":
		return s.handleImageSave(args)
	case "image_close":
		return s.handleImageClose(args)

	// Edits
	case "image_brightness":
		return s.handleImageBrightness(args)
	case "image_contrast":
		return s.handleImageContrast(args)
	case "image_grayscale":
		return s.handleImageGrayscale(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_add_border":
		return s.handleImageAddBorder(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// History
	case "image_undo":
		return s.handleImageUndo(args)
	case "image_redo":
		return s.handleImageRedo(args)

	// Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)

	// Mosaic
	case "mosaic_create":
		return s.handleMosaicCreate(args)

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

// SessionState describes a session after an operation.
type SessionState struct {
	SessionID string `json:"session_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	UndoDepth int    `json:"undo_depth"`
	RedoDepth int    `json:"redo_depth"`

	// Changed is false when undo or redo had nothing to restore.
	Changed bool `json:"changed"`
}

func stateOf(id string, h *history.Session, changed bool) *SessionState {
	cur := h.Current()
	undo, redo := h.Depth()
	return &SessionState{
		SessionID: id,
		Width:     cur.Width(),
		Height:    cur.Height(),
		UndoDepth: undo,
		RedoDepth: redo,
		Changed:   changed,
	}
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

func (a *sessionArgs) sessionID() string { return a.SessionID }

// sessionScoped is any argument struct that embeds sessionArgs.
type sessionScoped interface {
	sessionID() string
}

// lookup unmarshals args into a and resolves the session it names.
func (s *Server) lookup(args json.RawMessage, a sessionScoped) (*editSession, error) {
	if err := json.Unmarshal(args, a); err != nil {
		return nil, err
	}
	return s.sessions.get(a.sessionID())
}

// apply runs t against the session's current buffer and commits the result.
func (s *Server) apply(id string, sess *editSession, t history.Transform) (interface{}, error) {
	if _, err := sess.history.Apply(t); err != nil {
		return nil, err
	}
	return stateOf(id, sess.history, true), nil
}

// === Session Lifecycle Handlers ===

type imageOpenArgs struct {
	Path string `json:"path"`
}

// OpenResult is returned by image_open.
type OpenResult struct {
	SessionID string `json:"session_id"`
	*imaging.ImageInfo
}

func (s *Server) handleImageOpen(args json.RawMessage) (interface{}, error) {
	var a imageOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", imaging.ErrInvalidParameter)
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	id := s.sessions.open(a.Path, buf)
	s.log.Info("session opened", "session", id, "path", a.Path, "width", info.Width, "height", info.Height)
	return &OpenResult{SessionID: id, ImageInfo: info}, nil
}

func (s *Server) handleImageCurrent(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(sess.history.Current())
}

type imageSaveArgs struct {
	sessionArgs
	Path string `json:"path"`
}

// SaveResult is returned by image_save.
type SaveResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	path := a.Path
	if path == "" {
		path = sess.path
	}
	cur := sess.history.Current()
	if err := imaging.Save(cur, path); err != nil {
		return nil, err
	}
	s.cache.Evict(path)
	return &SaveResult{Path: path, Width: cur.Width(), Height: cur.Height()}, nil
}

func (s *Server) handleImageClose(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !s.sessions.close(a.SessionID) {
		return nil, fmt.Errorf("unknown session: %q", a.SessionID)
	}
	return map[string]interface{}{"session_id": a.SessionID, "closed": true}, nil
}

// === Edit Handlers ===

type imageBrightnessArgs struct {
	sessionArgs
	Offset int `json:"offset"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Brightness(b, a.Offset)
	})
}

type imageContrastArgs struct {
	sessionArgs
	Factor float64 `json:"factor"`
}

func (s *Server) handleImageContrast(args json.RawMessage) (interface{}, error) {
	var a imageContrastArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Contrast(b, a.Factor)
	})
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Grayscale(b), nil
	})
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Rotate90(b), nil
	})
}

type imageAddBorderArgs struct {
	sessionArgs
	Width int    `json:"width"`
	Color string `json:"color"`
}

func (s *Server) handleImageAddBorder(args json.RawMessage) (interface{}, error) {
	var a imageAddBorderArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = s.cfg.Edit.BorderWidth
	}
	c := s.cfg.BorderColor()
	if a.Color != "" {
		if c, err = colorful.Hex(a.Color); err != nil {
			return nil, fmt.Errorf("%w: border color %q", imaging.ErrInvalidParameter, a.Color)
		}
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.AddBorderColor(b, a.Width, c)
	})
}

type imageCropArgs struct {
	sessionArgs
	imaging.CropRect
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return s.apply(a.SessionID, sess, func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Crop(b, a.CropRect)
	})
}

// === History Handlers ===

func (s *Server) handleImageUndo(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	_, ok := sess.history.Undo()
	return stateOf(a.SessionID, sess.history, ok), nil
}

func (s *Server) handleImageRedo(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	_, ok := sess.history.Redo()
	return stateOf(a.SessionID, sess.history, ok), nil
}

// === Inspection Handlers ===

type imageSampleColorArgs struct {
	sessionArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(sess.history.Current(), a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	sessionArgs
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(sess.history.Current(), points)
}

type imageGridOverlayArgs struct {
	sessionArgs
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates bool   `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	sess, err := s.lookup(args, &a)
	if err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridColor == "" {
		a.GridColor = imaging.DefaultGridColor
	}
	return imaging.GridOverlay(sess.history.Current(), a.GridSpacing, a.ShowCoordinates, a.GridColor)
}

// === Mosaic Handlers ===

type mosaicCreateArgs struct {
	Paths  []string `json:"paths"`
	Shape  string   `json:"shape"`
	Output string   `json:"output"`
}

// MosaicResult is returned by mosaic_create. Image is nil when no paths
// were given.
type MosaicResult struct {
	Created     bool                 `json:"created"`
	Shape       mosaic.Shape         `json:"shape,omitempty"`
	TilesPlaced int                  `json:"tiles_placed"`
	SavedTo     string               `json:"saved_to,omitempty"`
	Image       *imaging.ImageResult `json:"image,omitempty"`
}

func (s *Server) handleMosaicCreate(args json.RawMessage) (interface{}, error) {
	var a mosaicCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	shape, err := mosaic.ParseShape(a.Shape)
	if err != nil {
		return nil, err
	}

	res, err := s.mosaics.Generate(a.Paths, shape)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &MosaicResult{}, nil
	}

	out := &MosaicResult{Created: true, Shape: res.Shape, TilesPlaced: res.TilesPlaced}
	if a.Output != "" {
		if err := imaging.Save(res.Canvas, a.Output); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Output)
		out.SavedTo = a.Output
	}
	if out.Image, err = imaging.EncodePNG(res.Canvas); err != nil {
		return nil, err
	}
	s.log.Info("mosaic created", "shape", res.Shape, "sources", len(a.Paths), "tiles", res.TilesPlaced)
	return out, nil
}
