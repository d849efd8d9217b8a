package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Assets holds the replaceable inputs of a card. Fonts are kept parsed but
// faceless: a font.Face is not safe for concurrent use, so Compose opens its
// own faces on every call.
type Assets struct {
	TitleFont *opentype.Font
	MetaFont  *opentype.Font
	Controls  image.Image
}

// DefaultAssets uses Go Bold for titles, Go Regular for the metadata lines
// and the generated controls strip.
func DefaultAssets() (*Assets, error) {
	return LoadAssets("", "", "")
}

// LoadAssets loads the title font, metadata font and controls strip from
// disk. An empty path selects the built-in default for that asset.
func LoadAssets(titleFontPath, metaFontPath, controlsPath string) (*Assets, error) {
	titleFont, err := loadFontOr(titleFontPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}

	metaFont, err := loadFontOr(metaFontPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("meta font: %w", err)
	}

	controls := DefaultControls()
	if controlsPath != "" {
		controls, err = imaging.Open(controlsPath)
		if err != nil {
			return nil, fmt.Errorf("controls image: %w", err)
		}
	}

	return &Assets{TitleFont: titleFont, MetaFont: metaFont, Controls: controls}, nil
}

func loadFontOr(path string, fallback []byte) (*opentype.Font, error) {
	if path == "" {
		return opentype.Parse(fallback)
	}
	return LoadFont(path)
}

// LoadFont parses a TrueType or OpenType font file.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// NewFace opens a face of f at size pixels per em.
func NewFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Shadow describes the soft drop shadow drawn under card text.
type Shadow struct {
	Offset image.Point
	Blur   float64
}

// DefaultShadow is the shadow used for every line on the card.
var DefaultShadow = Shadow{Offset: image.Pt(3, 3), Blur: 5}

// DrawTextWithShadow draws text with its top-left corner at pos, over a
// blurred black copy of itself shifted by shadow.Offset.
func DrawTextWithShadow(dc *gg.Context, face font.Face, pos image.Point, text string, fill color.Color, shadow Shadow) {
	if text == "" {
		return
	}

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent.Ceil())
	height := (metrics.Ascent + metrics.Descent).Ceil()

	dc.SetFontFace(face)
	width, _ := dc.MeasureString(text)

	// The shadow layer only needs to cover the text plus the blur spread.
	pad := int(math.Ceil(shadow.Blur * 3))
	layer := gg.NewContext(int(math.Ceil(width))+2*pad, height+2*pad)
	layer.SetFontFace(face)
	layer.SetColor(color.Black)
	layer.DrawString(text, float64(pad), float64(pad)+ascent)
	blurred := imaging.Blur(layer.Image(), shadow.Blur)

	dc.DrawImage(blurred, pos.X+shadow.Offset.X-pad, pos.Y+shadow.Offset.Y-pad)
	dc.SetColor(fill)
	dc.DrawString(text, float64(pos.X), float64(pos.Y)+ascent)
}
