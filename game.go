package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game hosts the viewer in an ebiten window
type Game struct {
	viewer    *Viewer
	sync      *ViewSync
	router    *InputRouter
	keys      *KeybindingManager
	mouse     *MousebindingManager
	renderer  *bookRenderer
	scheduler *Scheduler
	images    *PageImageManager

	scrollStep float64
	lastPage   int
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// newGame wires the viewer, its ebiten backend and input for a page set
func newGame(config Config, pages *PageSet) (*Game, error) {
	clock := systemClock{}
	scheduler := NewScheduler(clock)
	images := NewPageImageManager(pages, config.CacheSize, config.PreloadCount, config.PreloadEnabled)
	renderer := newBookRenderer(pages, images, clock, millis(config.TurnDurationMillis))
	layout := NewLayoutEngine(pages.AspectRatio(), config.LayoutConfig())

	viewer, err := NewViewer(pages, layout, renderer, config.ZoomScale,
		float64(config.WindowWidth), float64(config.WindowHeight))
	if err != nil {
		images.Stop()
		return nil, err
	}

	g := &Game{
		viewer:     viewer,
		sync:       NewViewSync(viewer, scheduler, millis(config.LoaderDelayMillis), newPrinter(config.Language), config.LoaderResetsCounter),
		router:     NewInputRouter(viewer, clock, millis(config.WheelCooldownMillis)),
		keys:       NewKeybindingManager(config.Keybindings),
		mouse:      NewMousebindingManager(config.Mouse, clock),
		renderer:   renderer,
		scheduler:  scheduler,
		images:     images,
		scrollStep: config.Mouse.ScrollStep,
		lastPage:   1,
	}
	if g.scrollStep <= 0 {
		g.scrollStep = GetDefaultMouseSettings().ScrollStep
	}

	viewer.Events().OnPageChanged(g.preloadAround)
	images.StartPreload(1, NavigationForward)

	return g, nil
}

func (g *Game) preloadAround(page int) {
	direction := NavigationJump
	switch page {
	case g.lastPage + 1:
		direction = NavigationForward
	case g.lastPage - 1:
		direction = NavigationBackward
	}
	g.lastPage = page
	g.images.StartPreload(page, direction)
}

func (g *Game) Update() error {
	g.scheduler.RunDue()
	g.handleInput()
	g.renderer.Update()
	g.viewer.Tick()

	if g.viewer.ExitRequested() {
		g.images.Stop()
		return ebiten.Termination
	}
	return nil
}

// handleInput feeds this frame's keyboard and mouse input to the router
func (g *Game) handleInput() {
	for _, action := range g.keys.JustPressedActions() {
		g.router.HandleAction(action)
	}

	for _, ev := range g.mouse.Poll() {
		switch ev.Kind {
		case MouseClick:
			if button, ok := g.renderer.buttonAt(ev.X, ev.Y); ok {
				g.router.HandleButton(button)
				continue
			}
			if x, width, ok := g.renderer.surfaceAt(ev.X, ev.Y); ok {
				g.router.HandleClick(x, width)
			}
		case MouseDoubleClick:
			if _, ok := g.renderer.buttonAt(ev.X, ev.Y); ok {
				continue
			}
			if _, _, ok := g.renderer.surfaceAt(ev.X, ev.Y); ok {
				g.router.HandleDoubleClick()
			}
		case MouseWheel:
			g.router.HandleWheel(ev.DeltaX*g.scrollStep, ev.DeltaY*g.scrollStep)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// RenderState

func (g *Game) GetState() ViewerState {
	return g.viewer.GetState()
}

func (g *Game) GetZoomTransform() ZoomTransform {
	return g.viewer.GetZoomTransform()
}

func (g *Game) GetCounterText() string {
	return g.sync.CounterText()
}

func (g *Game) IsLoaderVisible() bool {
	return g.sync.LoaderVisible()
}

// runViewer opens the viewer window and blocks until it is closed
func runViewer(config Config, pages *PageSet) error {
	g, err := newGame(config, pages)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(config.Title)
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
