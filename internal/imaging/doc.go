// Package imaging provides the pixel buffer and the pure transforms of the
// photo editor.
//
// Every transform takes a *Buffer and returns a new *Buffer; inputs are never
// modified. This is what makes undo snapshots safe: a snapshot is just a
// retained pointer.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Color Representation
//
// Buffer samples are normalized float32 RGBA in [0, 1], non-premultiplied.
// Brightness, contrast and grayscale are defined in this normalized space.
// Buffers are quantized to 8 bits only when encoded (EncodePNG, Save).
//
// # Transforms
//
//   - Brightness: add offset/255 to R, G, B (offset in [-100, 100])
//   - Contrast: (c-0.5)*factor + 0.5 (factor in [0.5, 2.0])
//   - Grayscale: unweighted (R+G+B)/3
//   - Rotate90: clockwise quarter turn, exact index mapping
//   - AddBorder: opaque frame around an exact copy of the source
//   - Crop: exact sub-rectangle, rejected if it does not fit
//
// # Error Handling
//
// Invalid arguments are reported with errors wrapping ErrInvalidParameter;
// unreadable or malformed files with errors wrapping ErrDecode. Use errors.Is
// to classify. A failing transform never returns a partial buffer.
//
// # Thread Safety
//
// Buffers are immutable and safe to share between goroutines. ImageCache is
// safe for concurrent use.
package imaging
