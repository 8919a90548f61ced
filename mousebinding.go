package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	EnableMouse      bool    `json:"enable_mouse"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	WheelInverted    bool    `json:"wheel_inverted"`
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	ScrollStep       float64 `json:"scroll_step"` // pixels per wheel notch while zoomed
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		EnableMouse:      true,
		DoubleClickTime:  300,
		WheelInverted:    false,
		WheelSensitivity: 1.0,
		ScrollStep:       40,
	}
}

// MouseEventKind tells the router what a MouseEvent is
type MouseEventKind int

const (
	MouseClick MouseEventKind = iota
	MouseDoubleClick
	MouseWheel
)

// MouseEvent is one polled mouse input in screen coordinates.
// Wheel deltas follow the page convention: positive DeltaY scrolls down.
type MouseEvent struct {
	Kind   MouseEventKind
	X, Y   float64
	DeltaX float64
	DeltaY float64
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime time.Time
	clickCount    int
}

// MousebindingManager polls the mouse and reports clicks, double-clicks and wheel motion
type MousebindingManager struct {
	settings           MouseSettings
	clock              Clock
	doubleClickTracker DoubleClickTracker
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(settings MouseSettings, clock Clock) *MousebindingManager {
	return &MousebindingManager{
		settings: settings,
		clock:    clock,
	}
}

// registerClick records a left click and reports whether it completes a double-click
func (mm *MousebindingManager) registerClick(now time.Time) bool {
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond

	if mm.doubleClickTracker.clickCount > 0 && now.Sub(mm.doubleClickTracker.lastClickTime) <= window {
		mm.doubleClickTracker.clickCount++
		if mm.doubleClickTracker.clickCount == 2 {
			// Reset for next potential double-click
			mm.doubleClickTracker.clickCount = 0
			mm.doubleClickTracker.lastClickTime = now
			return true
		}
	} else {
		mm.doubleClickTracker.clickCount = 1
	}

	mm.doubleClickTracker.lastClickTime = now
	return false
}

// normalizeWheel converts ebiten wheel offsets (positive y is up) into page deltas
func (mm *MousebindingManager) normalizeWheel(wheelX, wheelY float64) (float64, float64) {
	deltaX := wheelX * mm.settings.WheelSensitivity
	deltaY := -wheelY * mm.settings.WheelSensitivity
	if mm.settings.WheelInverted {
		deltaY = -deltaY
	}
	return deltaX, deltaY
}

// Poll returns this frame's mouse events
func (mm *MousebindingManager) Poll() []MouseEvent {
	if !mm.settings.EnableMouse {
		return nil
	}

	var events []MouseEvent

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := float64(cx), float64(cy)
		events = append(events, MouseEvent{Kind: MouseClick, X: x, Y: y})
		if mm.registerClick(mm.clock.Now()) {
			events = append(events, MouseEvent{Kind: MouseDoubleClick, X: x, Y: y})
		}
	}

	if wheelX, wheelY := ebiten.Wheel(); wheelX != 0 || wheelY != 0 {
		deltaX, deltaY := mm.normalizeWheel(wheelX, wheelY)
		events = append(events, MouseEvent{Kind: MouseWheel, DeltaX: deltaX, DeltaY: deltaY})
	}

	return events
}
