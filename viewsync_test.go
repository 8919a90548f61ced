package main

import (
	"testing"
	"time"
)

func newTestSync(t *testing.T, pages int, resetsCounter bool, lang string) (*ViewSync, *Viewer, *fakeBackend, *fakeClock, *Scheduler) {
	t.Helper()
	v, backend := newTestViewer(t, pages, 1200, 800)
	clock := newFakeClock()
	scheduler := NewScheduler(clock)
	sync := NewViewSync(v, scheduler, defaultLoaderDelay, newPrinter(lang), resetsCounter)
	return sync, v, backend, clock, scheduler
}

func TestViewSyncInitialState(t *testing.T) {
	sync, _, _, _, _ := newTestSync(t, 10, false, "en")

	if !sync.LoaderVisible() {
		t.Error("Loader should be visible at start")
	}
	if sync.CounterText() != "Loading..." {
		t.Errorf("Expected 'Loading...', got %q", sync.CounterText())
	}
}

func TestViewSyncRenderReady(t *testing.T) {
	sync, _, backend, clock, scheduler := newTestSync(t, 10, false, "en")

	backend.listener.RenderReady()
	if sync.LoaderVisible() {
		t.Error("Loader should hide on renderReady")
	}
	if sync.CounterText() != "Page 1 of 10" {
		t.Errorf("Expected 'Page 1 of 10', got %q", sync.CounterText())
	}
	if scheduler.Pending() != 0 {
		t.Errorf("Fallback timer should be stopped, %d pending", scheduler.Pending())
	}

	clock.Advance(2 * defaultLoaderDelay)
	scheduler.RunDue()
	if sync.CounterText() != "Page 1 of 10" {
		t.Errorf("Counter changed after fallback: %q", sync.CounterText())
	}
}

func TestViewSyncPageChanged(t *testing.T) {
	sync, v, backend, _, _ := newTestSync(t, 10, false, "en")

	v.JumpToPage(7)
	backend.finish()
	if sync.CounterText() != "Page 7 of 10" {
		t.Errorf("Expected 'Page 7 of 10', got %q", sync.CounterText())
	}
}

func TestViewSyncFallback(t *testing.T) {
	t.Run("Ceiling only", func(t *testing.T) {
		sync, v, backend, clock, scheduler := newTestSync(t, 10, false, "en")

		v.JumpToPage(4)
		backend.finish()

		clock.Advance(defaultLoaderDelay - time.Millisecond)
		scheduler.RunDue()
		if !sync.LoaderVisible() {
			t.Error("Loader hidden before the fallback delay")
		}

		clock.Advance(time.Millisecond)
		scheduler.RunDue()
		if sync.LoaderVisible() {
			t.Error("Loader should hide when the fallback fires")
		}
		if sync.CounterText() != "Page 4 of 10" {
			t.Errorf("Fallback must not overwrite the counter, got %q", sync.CounterText())
		}
	})

	t.Run("Initializes counter when nothing rendered", func(t *testing.T) {
		sync, _, _, clock, scheduler := newTestSync(t, 10, false, "en")

		clock.Advance(defaultLoaderDelay)
		scheduler.RunDue()
		if sync.CounterText() != "Page 1 of 10" {
			t.Errorf("Expected 'Page 1 of 10', got %q", sync.CounterText())
		}
	})

	t.Run("Resets counter when configured", func(t *testing.T) {
		sync, v, backend, clock, scheduler := newTestSync(t, 10, true, "en")

		backend.listener.RenderReady()
		v.JumpToPage(4)
		backend.finish()

		clock.Advance(defaultLoaderDelay)
		scheduler.RunDue()
		if sync.CounterText() != "Page 1 of 10" {
			t.Errorf("Expected forced 'Page 1 of 10', got %q", sync.CounterText())
		}
	})
}

func TestViewSyncSpanish(t *testing.T) {
	sync, _, backend, _, _ := newTestSync(t, 3, false, "es")

	if sync.CounterText() != "Cargando..." {
		t.Errorf("Expected 'Cargando...', got %q", sync.CounterText())
	}
	backend.listener.RenderReady()
	if sync.CounterText() != "Página 1 de 3" {
		t.Errorf("Expected 'Página 1 de 3', got %q", sync.CounterText())
	}
}

func TestNewPrinterFallsBackToEnglish(t *testing.T) {
	p := newPrinter("not a tag!")
	if got := p.Sprintf(msgCounter, 2, 5); got != "Page 2 of 5" {
		t.Errorf("Expected English counter, got %q", got)
	}
}
