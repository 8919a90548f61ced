package main

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultLoaderDelay = 1000 * time.Millisecond

// Message keys; English text doubles as the key
const (
	msgCounter = "Page %d of %d"
	msgLoading = "Loading..."
	// Counter for the generated page script, which fills in the placeholders
	msgCounterScript = "Page {page} of {total}"
)

func init() {
	message.SetString(language.English, msgCounter, "Page %d of %d")
	message.SetString(language.English, msgLoading, "Loading...")
	message.SetString(language.English, msgCounterScript, "Page {page} of {total}")
	message.SetString(language.Spanish, msgCounter, "Página %d de %d")
	message.SetString(language.Spanish, msgLoading, "Cargando...")
	message.SetString(language.Spanish, msgCounterScript, "Página {page} de {total}")
}

// newPrinter returns a printer for a BCP 47 tag, English if it does not parse
func newPrinter(tag string) *message.Printer {
	t, err := language.Parse(tag)
	if err != nil {
		debugLog("Unknown language %q, using English: %v", tag, err)
		t = language.English
	}
	return message.NewPrinter(t)
}

// ViewSync keeps the page counter and the loading indicator in step with the viewer
type ViewSync struct {
	printer     *message.Printer
	totalPages  int
	currentPage func() int

	counter            string
	counterInitialized bool
	loaderVisible      bool

	fallback      *Timer
	resetsCounter bool
}

// NewViewSync subscribes to the viewer's events and starts the loader fallback timer.
// If resetsCounter is set the fallback always forces the counter to page 1,
// even after the backend reported ready.
func NewViewSync(viewer *Viewer, scheduler *Scheduler, loaderDelay time.Duration, printer *message.Printer, resetsCounter bool) *ViewSync {
	s := &ViewSync{
		printer:       printer,
		totalPages:    viewer.GetTotalPagesCount(),
		currentPage:   viewer.GetCurrentPage,
		loaderVisible: true,
		resetsCounter: resetsCounter,
	}
	s.counter = printer.Sprintf(msgLoading)

	viewer.Events().OnPageChanged(s.render)
	viewer.Events().OnRenderReady(s.ready)
	s.fallback = scheduler.AfterFunc(loaderDelay, s.fallbackElapsed)

	return s
}

// CounterText returns the text of the page counter
func (s *ViewSync) CounterText() string {
	return s.counter
}

// LoaderVisible reports whether the loading indicator is shown
func (s *ViewSync) LoaderVisible() bool {
	return s.loaderVisible
}

func (s *ViewSync) render(page int) {
	s.counter = s.printer.Sprintf(msgCounter, page, s.totalPages)
	s.counterInitialized = true
}

func (s *ViewSync) ready() {
	s.loaderVisible = false
	if !s.resetsCounter {
		s.fallback.Stop()
	}
	if !s.counterInitialized {
		s.render(s.currentPage())
	}
}

func (s *ViewSync) fallbackElapsed() {
	if s.loaderVisible {
		debugLog("Loader fallback elapsed before render ready")
	}
	s.loaderVisible = false
	if s.resetsCounter {
		s.render(1)
		return
	}
	if !s.counterInitialized {
		s.render(s.currentPage())
	}
}
