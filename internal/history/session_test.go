package history

import (
	"errors"
	"sync"
	"testing"

	"github.com/ironsheep/photo-tools-mcp/internal/imaging"
)

// grayBuffer creates a w x h opaque buffer of one gray level.
func grayBuffer(t *testing.T, w, h int, level float32) *imaging.Buffer {
	t.Helper()
	samples := make([]float32, w*h*4)
	for i := 0; i < len(samples); i += 4 {
		samples[i], samples[i+1], samples[i+2], samples[i+3] = level, level, level, 1
	}
	buf, err := imaging.NewBufferFromSamples(w, h, samples)
	if err != nil {
		t.Fatalf("NewBufferFromSamples failed: %v", err)
	}
	return buf
}

func assertDepth(t *testing.T, s *Session, wantUndo, wantRedo int) {
	t.Helper()
	u, r := s.Depth()
	if u != wantUndo || r != wantRedo {
		t.Errorf("depth: got undo=%d redo=%d, want undo=%d redo=%d", u, r, wantUndo, wantRedo)
	}
}

func TestNewSession(t *testing.T) {
	initial := grayBuffer(t, 2, 2, 0.5)
	s := NewSession(initial)

	if s.Current() != initial {
		t.Error("Current should be the initial buffer")
	}
	assertDepth(t, s, 0, 0)
}

func TestUndoRedo_EmptyIsNoOp(t *testing.T) {
	initial := grayBuffer(t, 2, 2, 0.5)
	s := NewSession(initial)

	if buf, ok := s.Undo(); ok || buf != nil {
		t.Errorf("Undo on empty history: got (%v, %v), want (nil, false)", buf, ok)
	}
	if buf, ok := s.Redo(); ok || buf != nil {
		t.Errorf("Redo on empty history: got (%v, %v), want (nil, false)", buf, ok)
	}
	if s.Current() != initial {
		t.Error("no-op undo/redo changed the current buffer")
	}
	assertDepth(t, s, 0, 0)
}

func TestCommitUndoRedo_RestoresExactBuffers(t *testing.T) {
	initial := grayBuffer(t, 4, 3, 0.25)
	s := NewSession(initial)
	pre := initial.Samples()

	edited, err := s.Apply(func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Brightness(b, 40)
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	post := edited.Samples()
	assertDepth(t, s, 1, 0)

	undone, ok := s.Undo()
	if !ok {
		t.Fatal("Undo after one commit should succeed")
	}
	if !sameSamples(undone.Samples(), pre) {
		t.Error("Undo did not restore the exact pre-edit buffer")
	}
	if s.Current() != undone {
		t.Error("Undo should make the returned buffer current")
	}
	assertDepth(t, s, 0, 1)

	redone, ok := s.Redo()
	if !ok {
		t.Fatal("Redo after undo should succeed")
	}
	if !sameSamples(redone.Samples(), post) {
		t.Error("Redo did not restore the exact post-edit buffer")
	}
	assertDepth(t, s, 1, 0)
}

func TestCommit_AfterUndoDiscardsRedo(t *testing.T) {
	s := NewSession(grayBuffer(t, 2, 2, 0.1))
	s.Commit(grayBuffer(t, 2, 2, 0.2))
	s.Commit(grayBuffer(t, 2, 2, 0.3))

	s.Undo()
	s.Undo()
	assertDepth(t, s, 0, 2)

	branch := grayBuffer(t, 2, 2, 0.9)
	s.Commit(branch)
	assertDepth(t, s, 1, 0)

	if buf, ok := s.Redo(); ok || buf != nil {
		t.Error("Redo after a divergent commit should be a no-op")
	}
	if s.Current() != branch {
		t.Error("current buffer changed by no-op redo")
	}
}

func TestCommit_Nil(t *testing.T) {
	initial := grayBuffer(t, 1, 1, 0)
	s := NewSession(initial)
	s.Commit(nil)

	if s.Current() != initial {
		t.Error("Commit(nil) should be ignored")
	}
	assertDepth(t, s, 0, 0)
}

func TestApply_ErrorLeavesSessionUntouched(t *testing.T) {
	s := NewSession(grayBuffer(t, 5, 5, 0.5))
	s.Commit(grayBuffer(t, 5, 5, 0.6))
	s.Undo()
	before := s.Current()

	_, err := s.Apply(func(b *imaging.Buffer) (*imaging.Buffer, error) {
		return imaging.Crop(b, imaging.CropRect{X: 3, Y: 3, W: 5, H: 5})
	})
	if !errors.Is(err, imaging.ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
	if s.Current() != before {
		t.Error("failed Apply replaced the current buffer")
	}
	assertDepth(t, s, 0, 1)
}

func TestUndoRedo_Sequence(t *testing.T) {
	levels := []float32{0, 0.2, 0.4, 0.6}
	bufs := make([]*imaging.Buffer, len(levels))
	for i, l := range levels {
		bufs[i] = grayBuffer(t, 1, 1, l)
	}

	s := NewSession(bufs[0])
	for _, b := range bufs[1:] {
		s.Commit(b)
	}

	for i := len(bufs) - 2; i >= 0; i-- {
		got, ok := s.Undo()
		if !ok || got != bufs[i] {
			t.Fatalf("undo to step %d: got %v, %v", i, got, ok)
		}
	}
	if _, ok := s.Undo(); ok {
		t.Fatal("undo past the beginning should be a no-op")
	}
	for i := 1; i < len(bufs); i++ {
		got, ok := s.Redo()
		if !ok || got != bufs[i] {
			t.Fatalf("redo to step %d: got %v, %v", i, got, ok)
		}
	}
	assertDepth(t, s, 3, 0)
}

func TestSession_ConcurrentApply(t *testing.T) {
	s := NewSession(grayBuffer(t, 3, 3, 0))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Apply(func(b *imaging.Buffer) (*imaging.Buffer, error) {
				return imaging.Rotate90(b), nil
			}); err != nil {
				t.Errorf("Apply failed: %v", err)
			}
		}()
	}
	wg.Wait()

	assertDepth(t, s, 50, 0)
}

func sameSamples(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
