package glyphfill

import (
	"fmt"
	"sync/atomic"
)

// Pass identifies one of the three render passes of a glyph frame.
type Pass uint8

const (
	// PassMark draws all mark triangles into the stencil buffer only,
	// inverting bit 0 on every covered sample.
	PassMark Pass = iota

	// PassFill draws the cover quad with the fill color where the stencil
	// parity bit is set.
	PassFill

	// PassCurve draws the curve triangles, deciding fill or background per
	// fragment from the barycentric discriminant and facing.
	PassCurve

	passCount
)

// String returns the pass name.
func (p Pass) String() string {
	switch p {
	case PassMark:
		return "mark"
	case PassFill:
		return "fill"
	case PassCurve:
		return "curve"
	default:
		return fmt.Sprintf("Pass(%d)", uint8(p))
	}
}

// CompareFunc is a stencil comparison.
type CompareFunc uint8

const (
	CompareAlways CompareFunc = iota
	CompareEqual
)

// StencilOp is the stencil operation applied when a sample passes.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilInvert
)

// PassState is the fixed-function state of one pass. The same state applies
// to front and back faces.
type PassState struct {
	Pass Pass

	// ColorWrite enables writes to the color target.
	ColorWrite bool

	Compare   CompareFunc
	PassOp    StencilOp
	ReadMask  uint32
	WriteMask uint32
	Reference uint32
}

// StencilTest reports whether a sample with stencil value s passes.
func (st PassState) StencilTest(s uint8) bool {
	switch st.Compare {
	case CompareEqual:
		return uint32(s)&st.ReadMask == st.Reference&st.ReadMask
	default:
		return true
	}
}

// StencilUpdate returns the stencil value after a passing sample.
func (st PassState) StencilUpdate(s uint8) uint8 {
	if st.PassOp != StencilInvert {
		return s
	}
	inv := ^s
	mask := uint8(st.WriteMask)
	return (s &^ mask) | (inv & mask)
}

// PassStates returns the state of the mark, fill and curve passes, in
// execution order.
func PassStates() [3]PassState {
	return [3]PassState{
		{
			Pass:      PassMark,
			Compare:   CompareAlways,
			PassOp:    StencilInvert,
			WriteMask: 0x01,
		},
		{
			Pass:       PassFill,
			ColorWrite: true,
			Compare:    CompareEqual,
			PassOp:     StencilKeep,
			ReadMask:   0x01,
			Reference:  1,
		},
		{
			Pass:       PassCurve,
			ColorWrite: true,
			Compare:    CompareAlways,
			PassOp:     StencilKeep,
		},
	}
}

// CoverQuad returns the full-viewport quad drawn by the fill pass, as two
// triangles of x, y pairs in normalized device coordinates.
func CoverQuad() []float32 {
	return []float32{
		-1, 1, 1, 1, 1, -1,
		-1, 1, 1, -1, -1, -1,
	}
}

// PassSequencer enforces the frame order Idle -> mark -> fill -> curve -> Idle.
// The zero value is idle and ready to use.
//
// Violations are programming errors and panic.
type PassSequencer struct {
	state atomic.Int32
}

// Sequencer states: idle, frame begun, then seqPass+p after entering pass p.
const (
	seqIdle  int32 = 0
	seqBegun int32 = 1
	seqPass  int32 = 2
)

// BeginFrame moves from Idle into a new frame. It panics if a frame is
// already in progress.
func (s *PassSequencer) BeginFrame() {
	if !s.state.CompareAndSwap(seqIdle, seqBegun) {
		panic("glyphfill: BeginFrame called while a frame is in progress")
	}
}

// Enter marks the start of pass p. Passes must be entered in order, each
// exactly once per frame.
func (s *PassSequencer) Enter(p Pass) {
	want := seqBegun
	if p != PassMark {
		want = seqPass + int32(p) - 1
	}
	if p >= passCount || !s.state.CompareAndSwap(want, seqPass+int32(p)) {
		panic(fmt.Sprintf("glyphfill: %s pass entered out of order (state %s)", p, s.describe()))
	}
}

// EndFrame returns to Idle. It panics unless the curve pass was entered.
func (s *PassSequencer) EndFrame() {
	if !s.state.CompareAndSwap(seqPass+int32(PassCurve), seqIdle) {
		panic(fmt.Sprintf("glyphfill: EndFrame before curve pass (state %s)", s.describe()))
	}
}

// Abort returns to Idle from any state. Executors call it when encoding
// fails part way through a frame.
func (s *PassSequencer) Abort() {
	s.state.Store(seqIdle)
}

// Idle reports whether no frame is in progress.
func (s *PassSequencer) Idle() bool {
	return s.state.Load() == seqIdle
}

func (s *PassSequencer) describe() string {
	switch v := s.state.Load(); v {
	case seqIdle:
		return "idle"
	case seqBegun:
		return "begun"
	default:
		return Pass(v - seqPass).String()
	}
}
