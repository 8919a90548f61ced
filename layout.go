package main

// DisplayMode selects one page or a two-page spread per screen
type DisplayMode int

const (
	DisplaySingle DisplayMode = iota
	DisplayDouble
)

func (m DisplayMode) String() string {
	if m == DisplaySingle {
		return "single"
	}
	return "double"
}

// LayoutConfig holds the breakpoints and margins used for sizing the book
type LayoutConfig struct {
	DisplayBreakpoint float64 // Available width below this switches to single mode
	MarginBreakpoint  float64 // Viewport width below this uses NarrowMargin
	NarrowMargin      float64
	WideMargin        float64
}

// DefaultLayoutConfig returns the stock breakpoints: 600 px for both, 20/50 px margins
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		DisplayBreakpoint: 600,
		MarginBreakpoint:  600,
		NarrowMargin:      20,
		WideMargin:        50,
	}
}

// Layout is the size and mode the book should be rendered at
type Layout struct {
	Width  float64
	Height float64
	Mode   DisplayMode
}

// LayoutEngine fits the book into a viewport while keeping its aspect ratio
type LayoutEngine struct {
	baseAspectRatio float64
	config          LayoutConfig
}

// NewLayoutEngine creates a LayoutEngine for a spread with the given width/height ratio
func NewLayoutEngine(baseAspectRatio float64, config LayoutConfig) *LayoutEngine {
	return &LayoutEngine{
		baseAspectRatio: baseAspectRatio,
		config:          config,
	}
}

// margin returns the space kept free around the book for a viewport width
func (e *LayoutEngine) margin(viewportWidth float64) float64 {
	if viewportWidth < e.config.MarginBreakpoint {
		return e.config.NarrowMargin
	}
	return e.config.WideMargin
}

// ComputeLayout sizes the book for the viewport.
// The viewport must be larger than the margin in both dimensions; callers
// clamp degenerate sizes with clampViewport before calling.
func (e *LayoutEngine) ComputeLayout(viewportWidth, viewportHeight float64) Layout {
	margin := e.margin(viewportWidth)
	availableWidth := viewportWidth - margin
	availableHeight := viewportHeight - margin

	mode := DisplayDouble
	if availableWidth < e.config.DisplayBreakpoint {
		mode = DisplaySingle
	}

	aspect := e.baseAspectRatio
	if mode == DisplaySingle {
		aspect = e.baseAspectRatio / 2
	}

	var width, height float64
	if availableWidth/availableHeight > aspect {
		// Constrained by height
		height = availableHeight
		width = height * aspect
	} else {
		// Constrained by width
		width = availableWidth
		height = width / aspect
	}

	return Layout{Width: width, Height: height, Mode: mode}
}

// clampViewport grows a viewport to the smallest size that leaves a
// positive area once the margin is taken off
func (e *LayoutEngine) clampViewport(width, height float64) (float64, float64) {
	if m := e.margin(width); width <= m {
		width = m + 1
	}
	if m := e.margin(width); height <= m {
		height = m + 1
	}
	return width, height
}
