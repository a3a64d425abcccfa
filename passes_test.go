package glyphfill

import (
	"strings"
	"testing"
)

func TestPassStates(t *testing.T) {
	states := PassStates()

	mark, fill, curve := states[0], states[1], states[2]
	if mark.Pass != PassMark || fill.Pass != PassFill || curve.Pass != PassCurve {
		t.Fatalf("pass order = %v, %v, %v", mark.Pass, fill.Pass, curve.Pass)
	}

	if mark.ColorWrite || mark.Compare != CompareAlways || mark.PassOp != StencilInvert ||
		mark.WriteMask != 0x01 || mark.ReadMask != 0 {
		t.Errorf("mark state = %+v", mark)
	}
	if !fill.ColorWrite || fill.Compare != CompareEqual || fill.Reference != 1 ||
		fill.ReadMask != 0x01 || fill.WriteMask != 0 || fill.PassOp != StencilKeep {
		t.Errorf("fill state = %+v", fill)
	}
	if !curve.ColorWrite || curve.Compare != CompareAlways || curve.PassOp != StencilKeep ||
		curve.ReadMask != 0 || curve.WriteMask != 0 {
		t.Errorf("curve state = %+v", curve)
	}
}

func TestPassState_Stencil(t *testing.T) {
	states := PassStates()
	mark, fill := states[0], states[1]

	// Inverting twice restores parity; only bit 0 changes.
	s := uint8(0xF0)
	s = mark.StencilUpdate(s)
	if s != 0xF1 {
		t.Errorf("after one invert = %#x, want 0xf1", s)
	}
	if !fill.StencilTest(s) {
		t.Error("fill should pass on odd parity")
	}
	s = mark.StencilUpdate(s)
	if s != 0xF0 {
		t.Errorf("after two inverts = %#x, want 0xf0", s)
	}
	if fill.StencilTest(s) {
		t.Error("fill should fail on even parity")
	}
	if fill.StencilUpdate(0x01) != 0x01 {
		t.Error("fill must not modify the stencil")
	}
	if !states[2].StencilTest(0) || !states[2].StencilTest(1) {
		t.Error("curve pass must ignore the stencil")
	}
}

func TestCoverQuad(t *testing.T) {
	q := CoverQuad()
	if len(q) != 12 {
		t.Fatalf("CoverQuad() len = %d, want 12", len(q))
	}
	for i, v := range q {
		if v != 1 && v != -1 {
			t.Errorf("coordinate %d = %v, want +-1", i, v)
		}
	}
}

func TestPassSequencer(t *testing.T) {
	var s PassSequencer
	for range 2 {
		if !s.Idle() {
			t.Fatal("sequencer should be idle")
		}
		s.BeginFrame()
		s.Enter(PassMark)
		s.Enter(PassFill)
		s.Enter(PassCurve)
		s.EndFrame()
	}
	if !s.Idle() {
		t.Error("sequencer should be idle after EndFrame")
	}
}

func TestPassSequencer_Violations(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *PassSequencer)
		msg  string
	}{
		{"pass without frame", func(s *PassSequencer) { s.Enter(PassMark) }, "out of order"},
		{"fill before mark", func(s *PassSequencer) { s.BeginFrame(); s.Enter(PassFill) }, "out of order"},
		{"curve after mark", func(s *PassSequencer) {
			s.BeginFrame()
			s.Enter(PassMark)
			s.Enter(PassCurve)
		}, "out of order"},
		{"mark twice", func(s *PassSequencer) {
			s.BeginFrame()
			s.Enter(PassMark)
			s.Enter(PassMark)
		}, "out of order"},
		{"re-entrant frame", func(s *PassSequencer) { s.BeginFrame(); s.BeginFrame() }, "in progress"},
		{"early end", func(s *PassSequencer) {
			s.BeginFrame()
			s.Enter(PassMark)
			s.EndFrame()
		}, "before curve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s PassSequencer
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, tt.msg) {
					t.Errorf("panic = %v, want it to mention %q", r, tt.msg)
				}
			}()
			tt.run(&s)
		})
	}
}

func TestPassSequencer_Abort(t *testing.T) {
	var s PassSequencer
	s.BeginFrame()
	s.Enter(PassMark)
	s.Abort()
	if !s.Idle() {
		t.Fatal("Abort should return to idle")
	}
	s.BeginFrame()
	s.Abort()
}
