package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

const (
	controlsWidth  = 580
	controlsHeight = 62
)

// DefaultControls draws a transparent 580x62 strip with shuffle, previous,
// play, next and repeat glyphs in white.
func DefaultControls() image.Image {
	dc := gg.NewContext(controlsWidth, controlsHeight)
	dc.SetColor(color.White)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	slot := float64(controlsWidth) / 5
	cy := float64(controlsHeight) / 2

	drawShuffle(dc, slot*0.5, cy)
	drawSkip(dc, slot*1.5, cy, -1)
	drawPlay(dc, slot*2.5, cy)
	drawSkip(dc, slot*3.5, cy, 1)
	drawRepeat(dc, slot*4.5, cy)

	return dc.Image()
}

func drawPlay(dc *gg.Context, cx, cy float64) {
	dc.SetLineWidth(3)
	dc.DrawCircle(cx, cy, 27)
	dc.Stroke()

	dc.MoveTo(cx-8, cy-12)
	dc.LineTo(cx-8, cy+12)
	dc.LineTo(cx+13, cy)
	dc.ClosePath()
	dc.Fill()
}

// drawSkip draws a skip glyph; dir is 1 for next and -1 for previous.
func drawSkip(dc *gg.Context, cx, cy, dir float64) {
	dc.MoveTo(cx-dir*9, cy-11)
	dc.LineTo(cx-dir*9, cy+11)
	dc.LineTo(cx+dir*8, cy)
	dc.ClosePath()
	dc.Fill()

	dc.SetLineWidth(4)
	dc.DrawLine(cx+dir*11, cy-11, cx+dir*11, cy+11)
	dc.Stroke()
}

func drawShuffle(dc *gg.Context, cx, cy float64) {
	dc.SetLineWidth(3)
	dc.DrawLine(cx-14, cy-9, cx+12, cy+9)
	dc.DrawLine(cx-14, cy+9, cx+12, cy-9)
	dc.Stroke()

	angle := math.Atan2(18, 26)
	arrowHead(dc, cx+14, cy+10, angle)
	arrowHead(dc, cx+14, cy-10, -angle)
}

func drawRepeat(dc *gg.Context, cx, cy float64) {
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(cx-15, cy-9, 30, 18, 6)
	dc.Stroke()

	arrowHead(dc, cx+4, cy-9, 0)
}

func arrowHead(dc *gg.Context, x, y, angle float64) {
	const size = 7
	dc.Push()
	dc.RotateAbout(angle, x, y)
	dc.MoveTo(x+size/2, y)
	dc.LineTo(x-size/2, y-size/2)
	dc.LineTo(x-size/2, y+size/2)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}

