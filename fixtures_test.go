package glyphfill

// Shared outlines for the tests of this package.

func squarePath() []PathCommand {
	return NewPath().
		MoveTo(0, 0).
		LineTo(100, 0).
		LineTo(100, 100).
		LineTo(0, 100).
		Close().
		Commands()
}

func singleCurvePath() []PathCommand {
	return NewPath().
		MoveTo(0, 0).
		QuadTo(50, 100, 100, 0).
		Close().
		Commands()
}

// ringPath is an "O": a counter-clockwise outer loop and a clockwise hole,
// both made of quadratic arcs.
func ringPath() []PathCommand {
	return NewPath().
		MoveTo(5, 0).
		QuadTo(10, 0, 10, 5).
		QuadTo(10, 10, 5, 10).
		QuadTo(0, 10, 0, 5).
		QuadTo(0, 0, 5, 0).
		Close().
		MoveTo(5, 3).
		QuadTo(3, 3, 3, 5).
		QuadTo(3, 7, 5, 7).
		QuadTo(7, 7, 7, 5).
		QuadTo(7, 3, 5, 3).
		Close().
		Commands()
}

// ringPathCW is ringPath in TrueType orientation: a clockwise outer loop
// and a counter-clockwise hole.
func ringPathCW() []PathCommand {
	return NewPath().
		MoveTo(5, 0).
		QuadTo(0, 0, 0, 5).
		QuadTo(0, 10, 5, 10).
		QuadTo(10, 10, 10, 5).
		QuadTo(10, 0, 5, 0).
		Close().
		MoveTo(5, 3).
		QuadTo(7, 3, 7, 5).
		QuadTo(7, 7, 5, 7).
		QuadTo(3, 7, 3, 5).
		QuadTo(3, 3, 5, 3).
		Close().
		Commands()
}

// bogusCommand is a PathCommand outside the supported set.
type bogusCommand struct{}

func (bogusCommand) isPathCommand() {}
