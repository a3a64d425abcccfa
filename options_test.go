package glyphfill

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.EmUnits != 1 {
		t.Errorf("EmUnits = %v, want 1", cfg.EmUnits)
	}
	if cfg.ApexMargin != defaultApexMargin {
		t.Errorf("ApexMargin = %v, want %v", cfg.ApexMargin, defaultApexMargin)
	}
	if cfg.FlipY || cfg.CenterX || cfg.Apex != nil || cfg.CubicTolerance != 0 {
		t.Errorf("unexpected non-default fields: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(
		WithEmUnits(2048),
		WithFlipY(true),
		WithCenterX(true),
		WithApex(Pt(-2, 2)),
		WithApexMargin(0.5),
		WithCubicSubdivision(0.01),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if cfg.EmUnits != 2048 || !cfg.FlipY || !cfg.CenterX || cfg.ApexMargin != 0.5 || cfg.CubicTolerance != 0.01 {
		t.Errorf("options not applied: %+v", cfg)
	}
	if cfg.Apex == nil || *cfg.Apex != Pt(-2, 2) {
		t.Errorf("Apex = %v, want (-2, 2)", cfg.Apex)
	}
}

func TestNewConfig_InvalidEmUnits(t *testing.T) {
	for _, em := range []float64{0, -1, math.NaN()} {
		if _, err := NewConfig(WithEmUnits(em)); !errors.Is(err, ErrInvalidEmUnits) {
			t.Errorf("WithEmUnits(%v) error = %v, want ErrInvalidEmUnits", em, err)
		}
	}
}

func TestWithCubicSubdivision_Negative(t *testing.T) {
	cfg, err := NewConfig(WithCubicSubdivision(-3))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CubicTolerance != 0 {
		t.Errorf("CubicTolerance = %v, want 0", cfg.CubicTolerance)
	}
}

func TestTransform(t *testing.T) {
	cmds := NewPath().MoveTo(100, 0).LineTo(300, 0).LineTo(300, 200).Close().Commands()

	tests := []struct {
		name string
		opts []Option
		in   Point
		want Point
	}{
		{"identity", nil, Pt(300, 200), Pt(300, 200)},
		{"em", []Option{WithEmUnits(100)}, Pt(300, 200), Pt(3, 2)},
		{"flip", []Option{WithEmUnits(100), WithFlipY(true)}, Pt(300, 200), Pt(3, -2)},
		{"center", []Option{WithEmUnits(100), WithCenterX(true)}, Pt(300, 200), Pt(1, 2)},
		{"center left", []Option{WithEmUnits(100), WithCenterX(true)}, Pt(100, 0), Pt(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got := newTransform(cfg, cmds).apply(tt.in); got != tt.want {
				t.Errorf("apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransform_CenterXIncludesControls(t *testing.T) {
	cmds := NewPath().MoveTo(0, 0).QuadTo(400, 0, 200, 100).Close().Commands()
	cfg, _ := NewConfig(WithCenterX(true))
	if got := newTransform(cfg, cmds).cx; got != 200 {
		t.Errorf("cx = %v, want 200", got)
	}
}
