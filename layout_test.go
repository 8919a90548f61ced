package main

import (
	"math"
	"testing"
)

const bookAspect = 920.0 / 650.0

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestComputeLayout(t *testing.T) {
	engine := NewLayoutEngine(bookAspect, DefaultLayoutConfig())

	tests := []struct {
		name         string
		width        float64
		height       float64
		expectedW    float64
		expectedH    float64
		expectedMode DisplayMode
	}{
		{"Wide desktop constrained by height", 1200, 800, 750 * bookAspect, 750, DisplayDouble},
		{"Narrow phone constrained by width", 500, 800, 480, 480 / (bookAspect / 2), DisplaySingle},
		{"Tall desktop constrained by width", 1000, 2000, 950, 950 / bookAspect, DisplayDouble},
		{"Available width exactly at breakpoint", 650, 2000, 600, 600 / bookAspect, DisplayDouble},
		{"Available width just below breakpoint", 649, 2000, 599, 599 / (bookAspect / 2), DisplaySingle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := engine.ComputeLayout(tt.width, tt.height)

			if l.Mode != tt.expectedMode {
				t.Errorf("Expected mode %s, got %s", tt.expectedMode, l.Mode)
			}
			if !approxEqual(l.Width, tt.expectedW, 0.01) || !approxEqual(l.Height, tt.expectedH, 0.01) {
				t.Errorf("Expected %.2fx%.2f, got %.2fx%.2f", tt.expectedW, tt.expectedH, l.Width, l.Height)
			}
		})
	}
}

func TestComputeLayoutProperties(t *testing.T) {
	engine := NewLayoutEngine(bookAspect, DefaultLayoutConfig())
	config := DefaultLayoutConfig()

	for w := 60.0; w <= 2600; w += 37 {
		for h := 60.0; h <= 1800; h += 53 {
			l := engine.ComputeLayout(w, h)

			margin := engine.margin(w)
			availableW := w - margin
			availableH := h - margin

			aspect := bookAspect
			if l.Mode == DisplaySingle {
				aspect = bookAspect / 2
			}
			if !approxEqual(l.Width/l.Height, aspect, 1e-9) {
				t.Fatalf("%vx%v: ratio %v, want %v", w, h, l.Width/l.Height, aspect)
			}
			if l.Width > availableW+1e-9 || l.Height > availableH+1e-9 {
				t.Fatalf("%vx%v: book %vx%v exceeds available %vx%v", w, h, l.Width, l.Height, availableW, availableH)
			}
			if !approxEqual(l.Width, availableW, 1e-9) && !approxEqual(l.Height, availableH, 1e-9) {
				t.Fatalf("%vx%v: book %vx%v touches neither bound", w, h, l.Width, l.Height)
			}
			if (availableW < config.DisplayBreakpoint) != (l.Mode == DisplaySingle) {
				t.Fatalf("%vx%v: mode %s with available width %v", w, h, l.Mode, availableW)
			}
		}
	}
}

func TestLayoutMargin(t *testing.T) {
	engine := NewLayoutEngine(bookAspect, DefaultLayoutConfig())

	if m := engine.margin(599); m != 20 {
		t.Errorf("Expected narrow margin 20, got %v", m)
	}
	if m := engine.margin(600); m != 50 {
		t.Errorf("Expected wide margin 50, got %v", m)
	}
}

func TestClampViewport(t *testing.T) {
	engine := NewLayoutEngine(bookAspect, DefaultLayoutConfig())

	tests := []struct {
		name      string
		width     float64
		height    float64
		expectedW float64
		expectedH float64
	}{
		{"Zero", 0, 0, 21, 21},
		{"Equal to narrow margin", 20, 20, 21, 21},
		{"Wide but flat", 1200, 30, 1200, 51},
		{"Already valid", 800, 600, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := engine.clampViewport(tt.width, tt.height)
			if w != tt.expectedW || h != tt.expectedH {
				t.Errorf("Expected %vx%v, got %vx%v", tt.expectedW, tt.expectedH, w, h)
			}

			l := engine.ComputeLayout(w, h)
			if l.Width <= 0 || l.Height <= 0 || math.IsNaN(l.Width) || math.IsInf(l.Width, 0) {
				t.Errorf("Clamped viewport produced invalid layout %vx%v", l.Width, l.Height)
			}
		})
	}
}

func TestDisplayModeString(t *testing.T) {
	if DisplaySingle.String() != "single" || DisplayDouble.String() != "double" {
		t.Errorf("Unexpected names %q %q", DisplaySingle, DisplayDouble)
	}
}
