// Package history keeps the linear undo/redo timeline of an edited image.
package history

import (
	"sync"

	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// Transform is a pure edit: it derives a new buffer from the current one.
type Transform func(*imaging.Buffer) (*imaging.Buffer, error)

// Session owns the current buffer of one open image together with the undo
// and redo stacks of previously current buffers.
//
// Buffers are immutable, so pushing one onto a stack is a pointer copy.
// Each method updates the three slots as one unit under a mutex.
type Session struct {
	mu      sync.Mutex
	current *imaging.Buffer
	undo    []*imaging.Buffer
	redo    []*imaging.Buffer
}

// NewSession starts a session with an empty history.
func NewSession(initial *imaging.Buffer) *Session {
	return &Session{current: initial}
}

// Current returns the buffer that is currently shown.
func (s *Session) Current() *imaging.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Commit makes next the current buffer. The previous current buffer is
// pushed onto the undo stack and the redo stack is discarded, since an edit
// after an undo starts a new timeline. A nil next is ignored.
func (s *Session) Commit(next *imaging.Buffer) {
	if next == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(next)
}

func (s *Session) commitLocked(next *imaging.Buffer) {
	s.undo = append(s.undo, s.current)
	s.redo = nil
	s.current = next
}

// Apply runs t on the current buffer and commits the result.
//
// If t fails, the error is returned and the session is left exactly as it
// was: no snapshot is pushed and the redo stack survives.
func (s *Session) Apply(t Transform) (*imaging.Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := t(s.current)
	if err != nil {
		return nil, err
	}
	s.commitLocked(next)
	return next, nil
}

// Undo steps back one edit. It returns the new current buffer and true, or
// (nil, false) when there is nothing to undo.
func (s *Session) Undo() (*imaging.Buffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := pop(&s.undo)
	if !ok {
		return nil, false
	}
	s.redo = append(s.redo, s.current)
	s.current = prev
	return prev, true
}

// Redo re-applies the most recently undone edit. It returns the new current
// buffer and true, or (nil, false) when there is nothing to redo.
func (s *Session) Redo() (*imaging.Buffer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := pop(&s.redo)
	if !ok {
		return nil, false
	}
	s.undo = append(s.undo, s.current)
	s.current = next
	return next, true
}

// Depth reports how many steps can be undone and redone.
func (s *Session) Depth() (undo, redo int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo), len(s.redo)
}

func pop(stack *[]*imaging.Buffer) (*imaging.Buffer, bool) {
	n := len(*stack)
	if n == 0 {
		return nil, false
	}
	top := (*stack)[n-1]
	(*stack)[n-1] = nil
	*stack = (*stack)[:n-1]
	return top, true
}
