package main

import (
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorBackground = color.RGBA{51, 51, 51, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorCoverFill  = color.RGBA{240, 240, 240, 255}
	colorCoverEdge  = color.RGBA{0, 0, 0, 50}
	colorShadow     = color.RGBA{0, 0, 0, 128}
	colorSpinner    = color.RGBA{243, 243, 243, 255}
	colorSpinnerArc = color.RGBA{52, 152, 219, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 102}
	bgColorButton = color.RGBA{0, 0, 0, 128}
	bgColorMobile = color.RGBA{0, 0, 0, 77}
)

// Narrow screens get smaller buttons and counter
const narrowScreenWidth = 600

// pageImages supplies decoded page images by 1-based number
type pageImages interface {
	GetPage(number int) *ebiten.Image
}

// turnAnimation is a turn in progress
type turnAnimation struct {
	from  int
	to    int
	start time.Time
}

// slotAnchor is the edge a turning page folds towards
type slotAnchor int

const (
	anchorLeft slotAnchor = iota
	anchorRight
	anchorCenter
)

// pageSlot is a page placed in book-local coordinates; page 0 is an empty side
type pageSlot struct {
	page int
	x    float64
	w    float64
}

// bookRenderer is the ebiten page-flip backend: it animates turns, reports
// their completion and draws the book with its overlays
type bookRenderer struct {
	pages        *PageSet
	images       pageImages
	clock        Clock
	turnDuration time.Duration
	listener     FlipListener
	fontSource   *text.GoTextFaceSource

	width  float64
	height float64
	mode   DisplayMode

	shown int // Page on screen when no turn is running
	turn  *turnAnimation
	ready bool

	screenWidth  float64
	screenHeight float64
	zoom         ZoomTransform
}

// newBookRenderer creates a renderer showing page 1
func newBookRenderer(pages *PageSet, images pageImages, clock Clock, turnDuration time.Duration) *bookRenderer {
	fontSource, err := newFontSource()
	if err != nil {
		log.Printf("Error: Failed to load font, overlays will have no text: %v", err)
	}
	return &bookRenderer{
		pages:        pages,
		images:       images,
		clock:        clock,
		turnDuration: turnDuration,
		fontSource:   fontSource,
		shown:        1,
		zoom:         ZoomTransform{Scale: 1},
	}
}

// FlipBackend

func (r *bookRenderer) RenderPage(page int) {
	if r.turn == nil && r.onScreen(page) {
		r.shown = page
		if r.listener != nil {
			r.listener.Turned(page)
		}
		return
	}
	r.turn = &turnAnimation{from: r.shown, to: page, start: r.clock.Now()}
	if r.turnDuration <= 0 {
		r.finishTurn()
	}
}

func (r *bookRenderer) SetSize(width, height float64) {
	r.width, r.height = width, height
}

func (r *bookRenderer) SetDisplayMode(mode DisplayMode) {
	r.mode = mode
}

func (r *bookRenderer) SetListener(listener FlipListener) {
	r.listener = listener
}

// onScreen reports whether page is already visible without a turn.
// In double mode both pages of the shown spread count.
func (r *bookRenderer) onScreen(page int) bool {
	if page == r.shown {
		return true
	}
	if r.mode != DisplayDouble {
		return false
	}
	total := r.pages.Len()
	left, right := spreadFor(page, total)
	shownLeft, shownRight := spreadFor(r.shown, total)
	return left == shownLeft && right == shownRight
}

// Update completes a turn whose animation time has elapsed
func (r *bookRenderer) Update() {
	if r.turn == nil {
		return
	}
	if r.clock.Now().Sub(r.turn.start) >= r.turnDuration {
		r.finishTurn()
	}
}

func (r *bookRenderer) finishTurn() {
	page := r.turn.to
	r.shown = page
	r.turn = nil
	if r.listener != nil {
		r.listener.Turned(page)
	}
}

// turnProgress returns how far the running turn is, in [0, 1]
func (r *bookRenderer) turnProgress() float64 {
	if r.turn == nil || r.turnDuration <= 0 {
		return 1
	}
	p := float64(r.clock.Now().Sub(r.turn.start)) / float64(r.turnDuration)
	return math.Max(0, math.Min(1, p))
}

// spreadSlots returns the left and right slots for a page in book-local coordinates
func spreadSlots(mode DisplayMode, page, total int, width float64) (pageSlot, pageSlot) {
	if mode == DisplaySingle {
		return pageSlot{page: page, x: 0, w: width}, pageSlot{}
	}
	left, right := spreadFor(page, total)
	half := width / 2
	return pageSlot{page: left, x: 0, w: half}, pageSlot{page: right, x: half, w: half}
}

// bookOrigin returns the screen position of the book's top-left corner and its scale
func bookOrigin(screenWidth, screenHeight, width, height float64, zoom ZoomTransform) (float64, float64, float64) {
	scale := zoom.Scale
	if scale <= 0 {
		scale = 1
	}
	left := screenWidth/2 + zoom.ScrollX - width*scale/2
	top := screenHeight/2 + zoom.ScrollY - height*scale/2
	return left, top, scale
}

// navButtonGeometry returns the centers and radius of the prev/next buttons
func navButtonGeometry(screenWidth, screenHeight float64) (prevX, nextX, y, radius float64) {
	radius, edge := 20.0, 20.0
	if screenWidth <= narrowScreenWidth {
		radius, edge = 15.0, 5.0
	}
	return edge + radius, screenWidth - edge - radius, screenHeight / 2, radius
}

// buttonAt reports which navigation button, if any, is under a screen point
func (r *bookRenderer) buttonAt(x, y float64) (NavButton, bool) {
	prevX, nextX, cy, radius := navButtonGeometry(r.screenWidth, r.screenHeight)
	if math.Hypot(x-prevX, y-cy) <= radius {
		return ButtonPrevious, true
	}
	if math.Hypot(x-nextX, y-cy) <= radius {
		return ButtonNext, true
	}
	return 0, false
}

// surfaceAt maps a screen point onto the book. It returns the x offset from
// the book's left edge and the book's on-screen width.
func (r *bookRenderer) surfaceAt(x, y float64) (float64, float64, bool) {
	left, top, scale := bookOrigin(r.screenWidth, r.screenHeight, r.width, r.height, r.zoom)
	w, h := r.width*scale, r.height*scale
	if x < left || x > left+w || y < top || y > top+h {
		return 0, 0, false
	}
	return x - left, w, true
}

// Draw renders the book and overlays for the current state
func (r *bookRenderer) Draw(screen *ebiten.Image, state RenderState) {
	r.screenWidth = float64(screen.Bounds().Dx())
	r.screenHeight = float64(screen.Bounds().Dy())
	r.zoom = state.GetZoomTransform()

	screen.Fill(colorBackground)

	drawn := r.drawBook(screen)
	if drawn && !r.ready {
		r.ready = true
		if r.listener != nil {
			r.listener.RenderReady()
		}
	}

	r.drawNavButtons(screen)
	r.drawCounter(screen, state.GetCounterText())
	if state.IsLoaderVisible() {
		r.drawLoader(screen)
	}
}

// drawBook draws the visible pages, animating a running turn.
// Returns true if the page on screen had an image.
func (r *bookRenderer) drawBook(screen *ebiten.Image) bool {
	total := r.pages.Len()
	if r.turn == nil {
		left, right := spreadSlots(r.mode, r.shown, total, r.width)
		a := r.drawSlot(screen, left, 1, anchorCenter)
		b := r.drawSlot(screen, right, 1, anchorCenter)
		return a || b
	}

	p := r.turnProgress()
	fromL, fromR := spreadSlots(r.mode, r.turn.from, total, r.width)
	toL, toR := spreadSlots(r.mode, r.turn.to, total, r.width)

	if r.mode == DisplaySingle {
		if p < 0.5 {
			r.drawSlot(screen, fromL, 1-2*p, anchorCenter)
		} else {
			r.drawSlot(screen, toL, 2*p-1, anchorCenter)
		}
		return true
	}

	forward := r.turn.to > r.turn.from
	switch {
	case forward && p < 0.5:
		r.drawSlot(screen, fromL, 1, anchorCenter)
		r.drawSlot(screen, toR, 1, anchorCenter)
		r.drawSlot(screen, fromR, 1-2*p, anchorLeft)
	case forward:
		r.drawSlot(screen, fromL, 1, anchorCenter)
		r.drawSlot(screen, toR, 1, anchorCenter)
		r.drawSlot(screen, toL, 2*p-1, anchorRight)
	case p < 0.5:
		r.drawSlot(screen, fromR, 1, anchorCenter)
		r.drawSlot(screen, toL, 1, anchorCenter)
		r.drawSlot(screen, fromL, 1-2*p, anchorRight)
	default:
		r.drawSlot(screen, fromR, 1, anchorCenter)
		r.drawSlot(screen, toL, 1, anchorCenter)
		r.drawSlot(screen, toR, 2*p-1, anchorLeft)
	}
	return true
}

// drawSlot draws one page squeezed horizontally by factor towards anchor.
// Returns true if an image was drawn.
func (r *bookRenderer) drawSlot(screen *ebiten.Image, slot pageSlot, factor float64, anchor slotAnchor) bool {
	if slot.page == 0 || factor <= 0 {
		return false
	}

	left, top, scale := bookOrigin(r.screenWidth, r.screenHeight, r.width, r.height, r.zoom)
	w := slot.w * scale * factor
	h := r.height * scale
	x := left + slot.x*scale
	switch anchor {
	case anchorRight:
		x += slot.w*scale - w
	case anchorCenter:
		x += (slot.w*scale - w) / 2
	}

	DrawFilledRect(screen, x+4, top+4, w, h, colorShadow)

	resource, _ := r.pages.Page(slot.page)
	if resource.IsCover {
		DrawFilledRect(screen, x, top, w, h, colorCoverFill)
	} else {
		DrawFilledRect(screen, x, top, w, h, colorWhite)
	}

	img := r.images.GetPage(slot.page)
	if img != nil {
		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterLinear
		op.GeoM.Scale(w/iw, h/ih)
		op.GeoM.Translate(x, top)
		screen.DrawImage(img, op)
	}

	if resource.IsCover {
		DrawRectBorder(screen, x, top, w, h, 5*scale, colorCoverEdge)
	}
	return img != nil
}

func (r *bookRenderer) fontSize(normal, narrow float64) float64 {
	if r.screenWidth <= narrowScreenWidth {
		return narrow
	}
	return normal
}

func (r *bookRenderer) drawNavButtons(screen *ebiten.Image) {
	prevX, nextX, y, radius := navButtonGeometry(r.screenWidth, r.screenHeight)
	bg := bgColorButton
	if r.screenWidth <= narrowScreenWidth {
		bg = bgColorMobile
	}
	DrawFilledCircle(screen, prevX, y, radius, bg)
	DrawFilledCircle(screen, nextX, y, radius, bg)

	if r.fontSource == nil {
		return
	}
	font := &text.GoTextFace{Source: r.fontSource, Size: r.fontSize(20, 14)}
	for _, b := range []struct {
		label string
		x     float64
	}{{"<", prevX}, {">", nextX}} {
		tw, th := text.Measure(b.label, font, 0)
		DrawText(screen, b.label, font, b.x-tw/2, y-th/2, colorWhite)
	}
}

func (r *bookRenderer) drawCounter(screen *ebiten.Image, counter string) {
	if r.fontSource == nil || counter == "" {
		return
	}
	font := &text.GoTextFace{Source: r.fontSource, Size: r.fontSize(12, 10)}
	textWidth, textHeight := text.Measure(counter, font, 0)

	padding := r.fontSize(10, 5)
	textX := r.screenWidth - textWidth - padding - 10
	textY := r.screenHeight - textHeight - padding - 5

	DrawFilledRect(screen, textX-10, textY-5, textWidth+20, textHeight+10, bgColorLight)
	DrawText(screen, counter, font, textX, textY, colorWhite)
}

func (r *bookRenderer) drawLoader(screen *ebiten.Image) {
	cx, cy := r.screenWidth/2, r.screenHeight/2
	DrawCircleOutline(screen, cx, cy, 30, 8, colorSpinner)

	// One revolution per second
	angle := float64(r.clock.Now().UnixMilli()%1000) / 1000 * 2 * math.Pi
	for i := 0; i < 8; i++ {
		a := angle - float64(i)*0.12
		DrawFilledCircle(screen, cx+30*math.Cos(a), cy+30*math.Sin(a), 4, colorSpinnerArc)
	}
}
