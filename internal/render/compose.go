package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Card canvas size.
const (
	CardWidth  = 1280
	CardHeight = 720
)

// Labels with a fixed meaning on the card.
const (
	// LiveLabel as a duration draws a full progress bar.
	LiveLabel    = "Live"
	ElapsedLabel = "00:00"
)

const (
	backgroundWidth  = 400
	backgroundHeight = 225
	// A radius-10 box blur has a standard deviation of sqrt((21*21-1)/12).
	backgroundBlur       = 6.06
	backgroundBrightness = 0.6
	gradientOpacity      = 0.3

	previewSize         = 400
	previewCornerRadius = 40
	previewCropScale    = 1.5
	previewX            = 120
	previewY            = 160

	textX         = 565
	titleFirstY   = 180
	titleSecondY  = 230
	metaY         = 320
	titleFontSize = 45
	metaFontSize  = 30
	maxViewsRunes = 23

	barY              = 380
	barLength         = 580
	barPlayedWidth    = 9
	barRemainingWidth = 8
	knobRadius        = 10
	minProgress       = 0.15
	maxProgress       = 0.85

	timeY     = 400
	durationX = 1080
	controlsY = 450
)

var (
	textColor     = color.White
	progressColor = color.White
	trackColor    = color.White
)

// ErrEmptySource is returned when the source image has no pixels.
var ErrEmptySource = errors.New("render: source image is empty")

// Card is the text shown on a rendered thumbnail.
type Card struct {
	Title    string
	Channel  string
	Views    string
	Duration string
}

// IsLive reports whether the card is for a live stream.
func (c Card) IsLive() bool {
	return c.Duration == LiveLabel
}

// MetaLine is the "channel  |  views" line, with views cut to 23 characters.
func (c Card) MetaLine() string {
	views := []rune(c.Views)
	if len(views) > maxViewsRunes {
		views = views[:maxViewsRunes]
	}
	return fmt.Sprintf("%s  |  %s", c.Channel, string(views))
}

// Layout holds the few presentation switches a deployment may flip without
// changing the recipe.
type Layout struct {
	// PreviewBorder frames the square preview when greater than zero.
	PreviewBorder      int
	PreviewBorderColor color.Color
}

// DefaultLayout draws the preview without a frame.
var DefaultLayout = Layout{PreviewBorderColor: color.White}

// Compose renders the card for src with DefaultLayout.
func Compose(src image.Image, card Card, assets *Assets, rng *rand.Rand) (*image.NRGBA, error) {
	return ComposeLayout(src, card, assets, DefaultLayout, rng)
}

// ComposeLayout renders the 1280x720 card for src. A nil rng draws from a
// freshly seeded generator.
func ComposeLayout(src image.Image, card Card, assets *Assets, layout Layout, rng *rand.Rand) (*image.NRGBA, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrEmptySource
	}
	if assets == nil || assets.TitleFont == nil || assets.MetaFont == nil {
		return nil, errors.New("render: fonts are required")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	titleFace, err := NewFace(assets.TitleFont, titleFontSize)
	if err != nil {
		return nil, fmt.Errorf("render: title face: %w", err)
	}
	defer titleFace.Close()

	metaFace, err := NewFace(assets.MetaFont, metaFontSize)
	if err != nil {
		return nil, fmt.Errorf("render: meta face: %w", err)
	}
	defer metaFace.Close()

	background := ResizeExact(src, backgroundWidth, backgroundHeight)
	background = imaging.Blur(background, backgroundBlur)
	background = scaleBrightness(background, backgroundBrightness)

	gradient := Gradient(CardWidth, CardHeight, RandomColor(rng), RandomColor(rng), RandomColor(rng))
	canvas := imaging.Overlay(ResizeExact(background, CardWidth, CardHeight), gradient, image.Pt(0, 0), gradientOpacity)

	preview := CropCenterSquare(src, previewSize, previewCornerRadius, previewCropScale)
	previewAt := image.Pt(previewX, previewY)
	if layout.PreviewBorder > 0 {
		preview = AddBorder(preview, layout.PreviewBorder, layout.PreviewBorderColor)
		previewAt = previewAt.Sub(image.Pt(layout.PreviewBorder, layout.PreviewBorder))
	}
	canvas = imaging.Overlay(canvas, preview, previewAt, 1.0)

	dc := gg.NewContextForImage(canvas)

	title := Truncate(card.Title)
	DrawTextWithShadow(dc, titleFace, image.Pt(textX, titleFirstY), title[0], textColor, DefaultShadow)
	DrawTextWithShadow(dc, titleFace, image.Pt(textX, titleSecondY), title[1], textColor, DefaultShadow)
	DrawTextWithShadow(dc, metaFace, image.Pt(textX, metaY), card.MetaLine(), textColor, DefaultShadow)

	drawProgress(dc, card.IsLive(), rng)

	DrawTextWithShadow(dc, metaFace, image.Pt(textX, timeY), ElapsedLabel, textColor, DefaultShadow)
	DrawTextWithShadow(dc, metaFace, image.Pt(durationX, timeY), card.Duration, textColor, DefaultShadow)

	if assets.Controls != nil {
		controls := imaging.Resize(assets.Controls, controlsWidth, controlsHeight, imaging.Lanczos)
		dc.DrawImage(controls, textX, controlsY)
	}

	return imaging.Clone(dc.Image()), nil
}

// KnobX returns where the progress knob of a non-live card sits for a
// given played fraction.
func KnobX(played float64) int {
	return textX + int(barLength*played)
}

func drawProgress(dc *gg.Context, live bool, rng *rand.Rand) {
	dc.SetLineCap(gg.LineCapButt)
	start := float64(textX)
	end := float64(textX + barLength)
	y := float64(barY)

	if live {
		strokeLine(dc, start, end, y, barPlayedWidth, progressColor)
		dc.DrawCircle(end+knobRadius, y, knobRadius)
		dc.SetColor(progressColor)
		dc.Fill()
		return
	}

	played := minProgress + rng.Float64()*(maxProgress-minProgress)
	knob := float64(KnobX(played))

	strokeLine(dc, start, knob, y, barPlayedWidth, progressColor)
	strokeLine(dc, knob, end, y, barRemainingWidth, trackColor)
	dc.DrawCircle(knob, y, knobRadius)
	dc.SetColor(progressColor)
	dc.Fill()
}

func strokeLine(dc *gg.Context, x0, x1, y, width float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(x0, y, x1, y)
	dc.Stroke()
}
