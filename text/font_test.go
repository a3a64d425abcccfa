package text

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphfill"
)

var backends = []Backend{BackendSFNT, BackendGoText}

func parseGoRegular(t *testing.T, b Backend) Font {
	t.Helper()
	f, err := Parse(goregular.TTF, b)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", b, err)
	}
	return f
}

func TestParse(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			f := parseGoRegular(t, b)
			if f.UnitsPerEm() != 2048 {
				t.Errorf("UnitsPerEm() = %d, want 2048", f.UnitsPerEm())
			}
			if _, ok := f.GlyphIndex('A'); !ok {
				t.Error("GlyphIndex('A') not found")
			}
			if _, ok := f.GlyphIndex('\U0010FFFD'); ok {
				t.Error("GlyphIndex of a private-use rune should not be found")
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, b := range backends {
		if _, err := Parse([]byte("not a font"), b); err == nil {
			t.Errorf("Parse(%v) of garbage should fail", b)
		}
	}
	if _, err := Parse(goregular.TTF, Backend(42)); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}
}

func TestRuneOutline(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			f := parseGoRegular(t, b)

			cmds, err := RuneOutline(f, 'O')
			if err != nil {
				t.Fatalf("RuneOutline('O') error = %v", err)
			}
			moves, closes := 0, 0
			for _, c := range cmds {
				switch c.(type) {
				case glyphfill.MoveTo:
					moves++
				case glyphfill.Close:
					closes++
				}
			}
			if moves != 2 || closes != 2 {
				t.Errorf("'O' has %d MoveTo and %d Close, want 2 and 2", moves, closes)
			}
			if _, ok := cmds[len(cmds)-1].(glyphfill.Close); !ok {
				t.Error("outline does not end with Close")
			}

			space, err := RuneOutline(f, ' ')
			if err != nil {
				t.Fatalf("RuneOutline(' ') error = %v", err)
			}
			if len(space) != 0 {
				t.Errorf("space outline has %d commands, want 0", len(space))
			}

			if _, err := RuneOutline(f, '\U0010FFFD'); !errors.Is(err, ErrGlyphNotFound) {
				t.Errorf("missing rune error = %v, want ErrGlyphNotFound", err)
			}
		})
	}
}

func TestTessellateRune(t *testing.T) {
	for _, b := range backends {
		t.Run(b.String(), func(t *testing.T) {
			f := parseGoRegular(t, b)

			geom, err := TessellateRune(f, 'O')
			if err != nil {
				t.Fatalf("TessellateRune('O') error = %v", err)
			}
			if len(geom.Contours) != 2 {
				t.Fatalf("'O' has %d contours, want 2", len(geom.Contours))
			}
			if geom.Contours[0].Winding == geom.Contours[1].Winding {
				t.Error("outer and inner contours of 'O' should wind oppositely")
			}
			if geom.Orientation != glyphfill.CW || geom.MirrorCurves() {
				t.Errorf("Orientation = %v, want CW for a TrueType outline", geom.Orientation)
			}
			if len(geom.CurvesCW) == 0 || len(geom.CurvesCCW) == 0 {
				t.Errorf("curve buckets CW=%d CCW=%d, want both non-empty",
					len(geom.CurvesCW), len(geom.CurvesCCW))
			}
			// Normalized by the em size and centered horizontally.
			if geom.Bounds.Max.X > 1 || geom.Bounds.Min.X < -1 || geom.Bounds.Max.Y > 1 {
				t.Errorf("bounds %+v exceed the unit em square", geom.Bounds)
			}
			if c := (geom.Bounds.Min.X + geom.Bounds.Max.X) / 2; math.Abs(c) > 0.05 {
				t.Errorf("horizontal center = %v, want near 0", c)
			}

			space, err := TessellateRune(f, ' ')
			if err != nil {
				t.Fatalf("TessellateRune(' ') error = %v", err)
			}
			if !space.IsEmpty() {
				t.Error("space should tessellate to empty geometry")
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	sf := parseGoRegular(t, BackendSFNT)
	gt := parseGoRegular(t, BackendGoText)

	for _, r := range "AgO8" {
		a, err := TessellateRune(sf, r)
		if err != nil {
			t.Fatalf("sfnt %q: %v", r, err)
		}
		b, err := TessellateRune(gt, r)
		if err != nil {
			t.Fatalf("gotext %q: %v", r, err)
		}
		if len(a.Contours) != len(b.Contours) {
			t.Errorf("%q: contours sfnt=%d gotext=%d", r, len(a.Contours), len(b.Contours))
		}
		const eps = 1e-3
		if math.Abs(a.Bounds.Min.Y-b.Bounds.Min.Y) > eps || math.Abs(a.Bounds.Max.Y-b.Bounds.Max.Y) > eps {
			t.Errorf("%q: vertical bounds sfnt=%+v gotext=%+v", r, a.Bounds, b.Bounds)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(context.Background(), path, BackendSFNT)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if f.UnitsPerEm() != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", f.UnitsPerEm())
	}

	if _, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.ttf"), BackendSFNT); err == nil {
		t.Error("LoadFile of a missing file should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadFile(ctx, path, BackendSFNT); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("LoadFile with cancelled context error = %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name    string
		want    Backend
		wantErr error
	}{
		{"sfnt", BackendSFNT, nil},
		{"gotext", BackendGoText, nil},
		{"freetype", 0, ErrUnknownBackend},
		{"", 0, ErrUnknownBackend},
		{"SFNT", 0, ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBackend(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseBackend(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseBackend(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestBackendString(t *testing.T) {
	tests := []struct {
		b    Backend
		want string
	}{
		{BackendSFNT, "sfnt"},
		{BackendGoText, "gotext"},
		{Backend(7), "Backend(7)"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("Backend(%d).String() = %q, want %q", int(tt.b), got, tt.want)
		}
	}
}
