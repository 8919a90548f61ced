package main

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// newFontSource loads the bundled Go Regular font
func newFontSource() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// DrawRectBorder draws a rectangle outline of the given thickness inside the rectangle
func DrawRectBorder(screen *ebiten.Image, x, y, w, h, thickness float64, borderColor color.RGBA) {
	DrawFilledRect(screen, x, y, w, thickness, borderColor)
	DrawFilledRect(screen, x, y+h-thickness, w, thickness, borderColor)
	DrawFilledRect(screen, x, y, thickness, h, borderColor)
	DrawFilledRect(screen, x+w-thickness, y, thickness, h, borderColor)
}

// DrawFilledCircle draws a filled circle with float64 coordinates
func DrawFilledCircle(screen *ebiten.Image, cx, cy, r float64, fill color.RGBA) {
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), fill, true)
}

// DrawCircleOutline draws a circle outline with float64 coordinates
func DrawCircleOutline(screen *ebiten.Image, cx, cy, r, width float64, stroke color.RGBA) {
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), float32(width), stroke, true)
}
