package main

import "errors"

// ErrNoPages is returned when there is nothing to show
var ErrNoPages = errors.New("no page images available")

// ViewerState is the single mutable record of an active viewer
type ViewerState struct {
	CurrentPage    int // 1-based
	TotalPages     int
	DisplayMode    DisplayMode
	Zoomed         bool
	RenderedWidth  float64
	RenderedHeight float64
}

// Viewer composes pagination, zoom and layout over one ViewerState.
// All mutation goes through its command methods, which are called from a
// single goroutine (the frame loop).
type Viewer struct {
	state   ViewerState
	pages   *PageSet
	layout  *LayoutEngine
	backend FlipBackend
	events  *EventEmitter

	pagination *PaginationController
	zoom       *ZoomController

	viewportWidth  float64
	viewportHeight float64
	layoutPending  bool
	exitRequested  bool
}

// NewViewer creates a viewer on page 1 and sizes it for the initial viewport
func NewViewer(pages *PageSet, layout *LayoutEngine, backend FlipBackend, zoomScale float64, viewportWidth, viewportHeight float64) (*Viewer, error) {
	if pages == nil || pages.Len() == 0 {
		return nil, ErrNoPages
	}

	v := &Viewer{
		state: ViewerState{
			CurrentPage: 1,
			TotalPages:  pages.Len(),
		},
		pages:   pages,
		layout:  layout,
		backend: backend,
		events:  NewEventEmitter(),
	}
	v.pagination = NewPaginationController(&v.state, backend, v.events)
	v.zoom = NewZoomController(&v.state, v, zoomScale)

	backend.SetListener(v)
	v.viewportWidth, v.viewportHeight = layout.clampViewport(viewportWidth, viewportHeight)
	v.applyLayout()

	return v, nil
}

// Events returns the emitter carrying pageChanged and renderReady
func (v *Viewer) Events() *EventEmitter {
	return v.events
}

// Pages returns the page set being viewed
func (v *Viewer) Pages() *PageSet {
	return v.pages
}

// GetState returns a copy of the current state
func (v *Viewer) GetState() ViewerState {
	return v.state
}

// GetZoomTransform returns the enlargement to apply when drawing
func (v *Viewer) GetZoomTransform() ZoomTransform {
	return v.zoom.Transform()
}

// IsTurning reports whether a page turn is animating
func (v *Viewer) IsTurning() bool {
	return v.pagination.IsTurning()
}

// ExitRequested reports whether the exit command was issued
func (v *Viewer) ExitRequested() bool {
	return v.exitRequested
}

// Resize records a new viewport. The layout is recomputed on the next Tick,
// or when zoom is turned off if the viewer is zoomed.
func (v *Viewer) Resize(width, height float64) {
	width, height = v.layout.clampViewport(width, height)
	if width == v.viewportWidth && height == v.viewportHeight {
		return
	}
	v.viewportWidth, v.viewportHeight = width, height
	if !v.state.Zoomed {
		v.layoutPending = true
	}
}

// Tick runs a pending layout recompute
func (v *Viewer) Tick() {
	if v.layoutPending {
		v.layoutPending = false
		v.applyLayout()
	}
}

func (v *Viewer) cancelPendingLayout() {
	v.layoutPending = false
}

func (v *Viewer) relayout() {
	v.layoutPending = false
	v.applyLayout()
}

func (v *Viewer) applyLayout() {
	if v.state.Zoomed {
		return
	}
	l := v.layout.ComputeLayout(v.viewportWidth, v.viewportHeight)
	v.state.RenderedWidth = l.Width
	v.state.RenderedHeight = l.Height
	v.state.DisplayMode = l.Mode

	v.backend.SetSize(l.Width, l.Height)
	v.backend.SetDisplayMode(l.Mode)
	debugLog("Layout %.0fx%.0f -> %.1fx%.1f (%s)", v.viewportWidth, v.viewportHeight, l.Width, l.Height, l.Mode)
}

// FlipListener

func (v *Viewer) Turned(page int) {
	v.pagination.Turned(page)
}

func (v *Viewer) RenderReady() {
	v.events.Emit(EventRenderReady, 0)
}

// InputActions

func (v *Viewer) Exit() {
	v.exitRequested = true
}

func (v *Viewer) NavigateNext() {
	v.pagination.Next()
}

func (v *Viewer) NavigatePrevious() {
	v.pagination.Previous()
}

func (v *Viewer) JumpToPage(page int) {
	v.pagination.GotoPage(page)
}

func (v *Viewer) ToggleZoom() {
	v.zoom.ToggleZoom()
}

func (v *Viewer) CancelZoom() {
	v.zoom.CancelZoom()
}

func (v *Viewer) ScrollZoomed(deltaX, deltaY float64) {
	v.zoom.Scroll(deltaX, deltaY)
}

func (v *Viewer) IsZoomed() bool {
	return v.state.Zoomed
}

func (v *Viewer) GetCurrentPage() int {
	return v.state.CurrentPage
}

func (v *Viewer) GetTotalPagesCount() int {
	return v.state.TotalPages
}
