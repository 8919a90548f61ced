package main

import (
	"reflect"
	"testing"
	"time"
)

// recordingActions records the commands an InputRouter issues
type recordingActions struct {
	calls   []string
	zoomed  bool
	page    int
	total   int
	jumps   []int
	scrolls [][2]float64
}

func newRecordingActions() *recordingActions {
	return &recordingActions{page: 1, total: 10}
}

func (a *recordingActions) Exit() { a.calls = append(a.calls, "exit") }
func (a *recordingActions) NavigateNext() { a.calls = append(a.calls, "next") }
func (a *recordingActions) NavigatePrevious() { a.calls = append(a.calls, "previous") }
func (a *recordingActions) JumpToPage(page int) {
	a.calls = append(a.calls, "jump")
	a.jumps = append(a.jumps, page)
}
func (a *recordingActions) ToggleZoom() {
	a.calls = append(a.calls, "toggle_zoom")
	a.zoomed = !a.zoomed
}
func (a *recordingActions) CancelZoom() {
	a.calls = append(a.calls, "cancel_zoom")
	a.zoomed = false
}
func (a *recordingActions) ScrollZoomed(dx, dy float64) {
	a.calls = append(a.calls, "scroll")
	a.scrolls = append(a.scrolls, [2]float64{dx, dy})
}
func (a *recordingActions) IsZoomed() bool { return a.zoomed }
func (a *recordingActions) GetCurrentPage() int { return a.page }
func (a *recordingActions) GetTotalPagesCount() int { return a.total }

func TestWheelCooldown(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		expected []string
	}{
		{"Second event inside cooldown", 100 * time.Millisecond, []string{"next"}},
		{"Second event at cooldown end", 250 * time.Millisecond, []string{"next", "next"}},
		{"Second event after cooldown", 300 * time.Millisecond, []string{"next", "next"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := newRecordingActions()
			clock := newFakeClock()
			router := NewInputRouter(actions, clock, defaultWheelCooldown)

			router.HandleWheel(0, 1)
			clock.Advance(tt.gap)
			router.HandleWheel(0, 1)

			if !reflect.DeepEqual(actions.calls, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, actions.calls)
			}
		})
	}
}

func TestWheelDirection(t *testing.T) {
	actions := newRecordingActions()
	clock := newFakeClock()
	router := NewInputRouter(actions, clock, defaultWheelCooldown)

	router.HandleWheel(0, 3)
	clock.Advance(time.Second)
	router.HandleWheel(0, -3)
	clock.Advance(time.Second)
	router.HandleWheel(0, 0)

	expected := []string{"next", "previous", "previous"}
	if !reflect.DeepEqual(actions.calls, expected) {
		t.Errorf("Expected %v, got %v", expected, actions.calls)
	}
}

func TestWheelWhileZoomedScrolls(t *testing.T) {
	actions := newRecordingActions()
	actions.zoomed = true
	router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)

	router.HandleWheel(5, 10)
	router.HandleWheel(0, 10)

	if !reflect.DeepEqual(actions.calls, []string{"scroll", "scroll"}) {
		t.Errorf("Expected only scrolling while zoomed, got %v", actions.calls)
	}
	if actions.scrolls[0] != [2]float64{-5, -10} {
		t.Errorf("Expected scroll to move against the wheel, got %v", actions.scrolls[0])
	}
}

func TestClickZones(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected []string
	}{
		{"Left edge", 0, []string{"previous"}},
		{"Exact middle", 400, []string{"previous"}},
		{"Just right of middle", 400.5, []string{"next"}},
		{"Right edge", 800, []string{"next"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := newRecordingActions()
			router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)
			router.HandleClick(tt.x, 800)

			if !reflect.DeepEqual(actions.calls, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, actions.calls)
			}
		})
	}
}

func TestClickIgnoredWhileZoomed(t *testing.T) {
	actions := newRecordingActions()
	actions.zoomed = true
	router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)

	if router.HandleClick(700, 800) {
		t.Error("Click should be ignored while zoomed")
	}
	if len(actions.calls) != 0 {
		t.Errorf("Expected no commands, got %v", actions.calls)
	}
}

func TestButtonsWorkWhileZoomed(t *testing.T) {
	actions := newRecordingActions()
	actions.zoomed = true
	router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)

	router.HandleButton(ButtonNext)
	router.HandleButton(ButtonPrevious)
	if router.HandleButton(NavButton(42)) {
		t.Error("Unknown button should not be handled")
	}

	if !reflect.DeepEqual(actions.calls, []string{"next", "previous"}) {
		t.Errorf("Expected next and previous, got %v", actions.calls)
	}
}

func TestDoubleClickTogglesZoom(t *testing.T) {
	actions := newRecordingActions()
	router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)

	router.HandleDoubleClick()
	if !actions.zoomed {
		t.Error("Expected zoom on after double click")
	}
	router.HandleDoubleClick()
	if actions.zoomed {
		t.Error("Expected zoom off after second double click")
	}
}

func TestExecuteAction(t *testing.T) {
	tests := []struct {
		action   string
		zoomed   bool
		handled  bool
		expected []string
	}{
		{"next", false, true, []string{"next"}},
		{"previous", false, true, []string{"previous"}},
		{"next", true, true, []string{"next"}},
		{"toggle_zoom", false, true, []string{"toggle_zoom"}},
		{"cancel_zoom", false, false, nil},
		{"cancel_zoom", true, true, []string{"cancel_zoom"}},
		{"jump_first", false, true, []string{"jump"}},
		{"jump_last", false, true, []string{"jump"}},
		{"exit", false, true, []string{"exit"}},
		{"unknown", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			actions := newRecordingActions()
			actions.zoomed = tt.zoomed
			router := NewInputRouter(actions, newFakeClock(), defaultWheelCooldown)

			if got := router.HandleAction(tt.action); got != tt.handled {
				t.Errorf("HandleAction(%q) = %v, want %v", tt.action, got, tt.handled)
			}
			if !reflect.DeepEqual(actions.calls, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, actions.calls)
			}
		})
	}

	t.Run("jump_last targets total", func(t *testing.T) {
		actions := newRecordingActions()
		NewActionExecutor().ExecuteAction("jump_last", actions)
		if !reflect.DeepEqual(actions.jumps, []int{10}) {
			t.Errorf("Expected jump to 10, got %v", actions.jumps)
		}
	})
}

func TestRouterDrivesViewer(t *testing.T) {
	v, backend := newTestViewer(t, 10, 1200, 800)
	clock := newFakeClock()
	router := NewInputRouter(v, clock, defaultWheelCooldown)

	router.HandleAction("next")
	backend.finish()
	router.HandleAction("toggle_zoom")
	router.HandleClick(700, 800)
	router.HandleAction("cancel_zoom")
	router.HandleClick(700, 800)
	backend.finish()

	if v.GetCurrentPage() != 3 {
		t.Errorf("Expected page 3, got %d", v.GetCurrentPage())
	}
	if v.IsZoomed() {
		t.Error("Expected unzoomed after escape")
	}
}
