package main

import "time"

const defaultWheelCooldown = 250 * time.Millisecond

// NavButton identifies an on-screen navigation button
type NavButton int

const (
	ButtonPrevious NavButton = iota
	ButtonNext
)

// InputRouter turns raw input events into viewer commands.
// Zoom suppresses click and wheel navigation, never keys or buttons.
type InputRouter struct {
	inputActions InputActions
	executor     *ActionExecutor
	clock        Clock

	wheelCooldown time.Duration
	cooldownUntil time.Time
}

// NewInputRouter creates a router issuing commands to inputActions
func NewInputRouter(inputActions InputActions, clock Clock, wheelCooldown time.Duration) *InputRouter {
	return &InputRouter{
		inputActions:  inputActions,
		executor:      NewActionExecutor(),
		clock:         clock,
		wheelCooldown: wheelCooldown,
	}
}

// HandleAction runs a keyboard action such as "next" or "cancel_zoom"
func (r *InputRouter) HandleAction(action string) bool {
	return r.executor.ExecuteAction(action, r.inputActions)
}

// HandleClick navigates by click zone: x is relative to the left edge of a
// surface surfaceWidth wide. The right half turns forward.
func (r *InputRouter) HandleClick(x, surfaceWidth float64) bool {
	if r.inputActions.IsZoomed() {
		return false
	}
	if x > surfaceWidth/2 {
		r.inputActions.NavigateNext()
	} else {
		r.inputActions.NavigatePrevious()
	}
	return true
}

// HandleDoubleClick toggles zoom
func (r *InputRouter) HandleDoubleClick() bool {
	r.inputActions.ToggleZoom()
	return true
}

// HandleWheel turns one page per gesture. The first event starts a cooldown;
// events inside it are discarded. While zoomed the wheel scrolls instead.
func (r *InputRouter) HandleWheel(deltaX, deltaY float64) bool {
	if r.inputActions.IsZoomed() {
		r.inputActions.ScrollZoomed(-deltaX, -deltaY)
		return true
	}

	now := r.clock.Now()
	if now.Before(r.cooldownUntil) {
		return false
	}
	r.cooldownUntil = now.Add(r.wheelCooldown)

	if deltaY > 0 {
		r.inputActions.NavigateNext()
	} else {
		r.inputActions.NavigatePrevious()
	}
	return true
}

// HandleButton runs the prev/next buttons
func (r *InputRouter) HandleButton(button NavButton) bool {
	switch button {
	case ButtonPrevious:
		r.inputActions.NavigatePrevious()
	case ButtonNext:
		r.inputActions.NavigateNext()
	default:
		return false
	}
	return true
}
