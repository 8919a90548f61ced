package main

import "math"

const defaultZoomScale = 1.5

// ZoomTransform is the enlargement the renderer applies around the book center
type ZoomTransform struct {
	Scale      float64
	ScrollX    float64 // Offset of the enlarged book, only non-zero while zoomed
	ScrollY    float64
	Scrollable bool // The surrounding surface may scroll
}

// layoutHost is the part of the viewer the zoom controller suspends and resumes
type layoutHost interface {
	cancelPendingLayout()
	relayout()
}

// ZoomController owns the zoom flag and the enlargement transform
type ZoomController struct {
	state *ViewerState
	host  layoutHost
	scale float64

	scrollX float64
	scrollY float64
}

// NewZoomController creates a controller enlarging by scale when zoomed
func NewZoomController(state *ViewerState, host layoutHost, scale float64) *ZoomController {
	if scale <= 1 {
		scale = defaultZoomScale
	}
	return &ZoomController{
		state: state,
		host:  host,
		scale: scale,
	}
}

// ToggleZoom flips zoom. Enabling freezes the layout; disabling restores it
// and immediately recomputes it for the current viewport.
func (z *ZoomController) ToggleZoom() {
	z.state.Zoomed = !z.state.Zoomed
	z.scrollX, z.scrollY = 0, 0

	if z.state.Zoomed {
		z.host.cancelPendingLayout()
		return
	}
	z.host.relayout()
}

// CancelZoom turns zoom off if it is on
func (z *ZoomController) CancelZoom() bool {
	if !z.state.Zoomed {
		return false
	}
	z.ToggleZoom()
	return true
}

// Scroll moves the enlarged book, keeping it within the overflow area
func (z *ZoomController) Scroll(deltaX, deltaY float64) bool {
	if !z.state.Zoomed {
		return false
	}
	maxX := z.state.RenderedWidth * (z.scale - 1) / 2
	maxY := z.state.RenderedHeight * (z.scale - 1) / 2
	z.scrollX = math.Max(-maxX, math.Min(maxX, z.scrollX+deltaX))
	z.scrollY = math.Max(-maxY, math.Min(maxY, z.scrollY+deltaY))
	return true
}

// Transform returns the transform for the current zoom state
func (z *ZoomController) Transform() ZoomTransform {
	if !z.state.Zoomed {
		return ZoomTransform{Scale: 1}
	}
	return ZoomTransform{
		Scale:      z.scale,
		ScrollX:    z.scrollX,
		ScrollY:    z.scrollY,
		Scrollable: true,
	}
}
