package glyphfill

import "fmt"

// PathCommand is a single drawing command of a glyph outline.
//
// The set of commands is closed: MoveTo, LineTo, QuadTo, CubicTo and Close.
// Any other implementation is rejected by the tessellator with
// UnsupportedCommandError.
type PathCommand interface {
	isPathCommand()
}

// MoveTo starts a new contour at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathCommand() {}

// LineTo draws a straight edge to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathCommand() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathCommand() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathCommand() {}

// Close closes the current contour with an edge back to its MoveTo point.
type Close struct{}

func (Close) isPathCommand() {}

// commandName returns a short name for diagnostics.
func commandName(cmd PathCommand) string {
	switch cmd.(type) {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Close:
		return "Close"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}

// Path accumulates path commands for a single glyph.
type Path struct {
	commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		commands: make([]PathCommand, 0, 16),
	}
}

// MoveTo starts a new contour.
func (p *Path) MoveTo(x, y float64) *Path {
	p.commands = append(p.commands, MoveTo{Point: Pt(x, y)})
	return p
}

// LineTo appends a straight edge.
func (p *Path) LineTo(x, y float64) *Path {
	p.commands = append(p.commands, LineTo{Point: Pt(x, y)})
	return p
}

// QuadTo appends a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.commands = append(p.commands, QuadTo{Control: Pt(cx, cy), Point: Pt(x, y)})
	return p
}

// CubicTo appends a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.commands = append(p.commands, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	return p
}

// Close closes the current contour.
func (p *Path) Close() *Path {
	p.commands = append(p.commands, Close{})
	return p
}

// Commands returns the accumulated commands.
func (p *Path) Commands() []PathCommand {
	return p.commands
}

// Reset removes all commands, keeping the allocated storage.
func (p *Path) Reset() {
	p.commands = p.commands[:0]
}
