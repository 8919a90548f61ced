package main

// PaginationController owns the current-page cursor.
// Turns are requested from the FlipBackend; the cursor only moves when the
// backend reports the turn finished.
type PaginationController struct {
	state   *ViewerState
	backend FlipBackend
	events  *EventEmitter

	turning bool // A turn was requested and has not completed
	target  int  // Page the pending turn goes to
}

// NewPaginationController creates a controller over the shared viewer state
func NewPaginationController(state *ViewerState, backend FlipBackend, events *EventEmitter) *PaginationController {
	return &PaginationController{
		state:   state,
		backend: backend,
		events:  events,
	}
}

// Next turns to the following page unless already on the last one
func (p *PaginationController) Next() bool {
	if p.state.CurrentPage >= p.state.TotalPages {
		return false
	}
	return p.requestTurn(p.state.CurrentPage + 1)
}

// Previous turns to the preceding page unless already on the first one
func (p *PaginationController) Previous() bool {
	if p.state.CurrentPage <= 1 {
		return false
	}
	return p.requestTurn(p.state.CurrentPage - 1)
}

// GotoPage turns to page n, clamped into [1, TotalPages]
func (p *PaginationController) GotoPage(n int) bool {
	return p.requestTurn(clampPage(n, p.state.TotalPages))
}

// IsTurning reports whether a turn is waiting for its completion signal
func (p *PaginationController) IsTurning() bool {
	return p.turning
}

// requestTurn starts a turn. Requests during a running turn are dropped.
func (p *PaginationController) requestTurn(page int) bool {
	if p.turning {
		debugLog("Turn to page %d dropped: turn to page %d in progress", page, p.target)
		return false
	}
	if page == p.state.CurrentPage {
		return false
	}

	p.turning = true
	p.target = page
	p.backend.RenderPage(page)
	return true
}

// Turned commits the page reported by the backend and emits pageChanged
func (p *PaginationController) Turned(page int) {
	if !p.turning {
		debugLog("Unexpected turn completion for page %d", page)
	}
	p.turning = false
	p.state.CurrentPage = clampPage(page, p.state.TotalPages)
	p.events.Emit(EventPageChanged, p.state.CurrentPage)
}

func clampPage(n, total int) int {
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
