package glyphfill

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyphfill package.
var (
	// ErrDegenerateContour matches every DegenerateContourError.
	ErrDegenerateContour = errors.New("glyphfill: degenerate contour")

	// ErrUnsupportedCommand matches every UnsupportedCommandError.
	ErrUnsupportedCommand = errors.New("glyphfill: unsupported path command")

	// ErrInvalidEmUnits is returned when the em divisor is not positive.
	ErrInvalidEmUnits = errors.New("glyphfill: em units must be positive")
)

// DegenerateContourError reports a contour that has fewer than three
// non-collinear points before its Close. The contour is skipped and the
// error is attached to GlyphGeometry.Diagnostics.
type DegenerateContourError struct {
	// Index is the position of the contour within the glyph (0-based,
	// counting every MoveTo run).
	Index int

	// Points is the number of distinct points the contour had.
	Points int
}

func (e *DegenerateContourError) Error() string {
	return fmt.Sprintf("glyphfill: degenerate contour %d (%d points, no three non-collinear)", e.Index, e.Points)
}

// Is reports whether target is ErrDegenerateContour.
func (e *DegenerateContourError) Is(target error) bool {
	return target == ErrDegenerateContour
}

// UnsupportedCommandError reports a command outside MoveTo, LineTo, QuadTo,
// CubicTo and Close. It signals a defect in the outline source and aborts
// tessellation of the whole glyph.
type UnsupportedCommandError struct {
	// Index is the position of the command in the input stream.
	Index int

	// Command is the offending command.
	Command PathCommand
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("glyphfill: unsupported path command %s at index %d", commandName(e.Command), e.Index)
}

// Is reports whether target is ErrUnsupportedCommand.
func (e *UnsupportedCommandError) Is(target error) bool {
	return target == ErrUnsupportedCommand
}
