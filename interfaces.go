package main

// FlipBackend is the page-turn mechanism the viewer drives.
// Implementations animate a turn after RenderPage and report back
// through the FlipListener they were given.
type FlipBackend interface {
	RenderPage(page int)
	SetSize(width, height float64)
	SetDisplayMode(mode DisplayMode)
	SetListener(listener FlipListener)
}

// FlipListener receives completion signals from a FlipBackend
type FlipListener interface {
	// Turned is called once the turn to page has finished animating
	Turned(page int)
	// RenderReady is called once the first page is on screen
	RenderReady()
}

// InputActions provides the commands the input router can issue
type InputActions interface {
	// Application control
	Exit()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToPage(page int)

	// Zoom
	ToggleZoom()
	CancelZoom()
	ScrollZoomed(deltaX, deltaY float64)

	// Common data access
	IsZoomed() bool
	GetCurrentPage() int
	GetTotalPagesCount() int
}

// RenderState provides read-only access to viewer state for the renderer
type RenderState interface {
	GetState() ViewerState
	GetZoomTransform() ZoomTransform
	GetCounterText() string
	IsLoaderVisible() bool
}
