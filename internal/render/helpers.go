package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// titleLineLimit is the exclusive character budget of a title line.
const titleLineLimit = 30

// ResizeExact scales img to exactly width x height, ignoring aspect ratio.
func ResizeExact(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Truncate splits a title into at most two lines of fewer than 30
// characters each. Words are placed greedily: a word goes on the first line
// if it still fits there, otherwise on the second, otherwise it is dropped.
// A short word may land on the first line after a longer one has already
// spilled to the second.
func Truncate(title string) [2]string {
	var first, second string
	for _, word := range strings.Split(title, " ") {
		n := utf8.RuneCountInString(word)
		switch {
		case utf8.RuneCountInString(first)+n < titleLineLimit:
			first += " " + word
		case utf8.RuneCountInString(second)+n < titleLineLimit:
			second += " " + word
		}
	}
	return [2]string{strings.TrimSpace(first), strings.TrimSpace(second)}
}

// RandomColor returns an opaque color with each channel in [50, 200].
func RandomColor(rng *rand.Rand) color.NRGBA {
	channel := func() uint8 { return uint8(50 + rng.IntN(151)) }
	return color.NRGBA{R: channel(), G: channel(), B: channel(), A: 255}
}

// Gradient fills a width x height canvas with colors[0] and then lays each
// following color over it through a vertical mask. The mask value at row y
// is 255*y/height.
func Gradient(width, height int, colors ...color.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if len(colors) == 0 || width <= 0 || height <= 0 {
		return dst
	}

	for y := 0; y < height; y++ {
		mask := 255 * y / height
		c := colors[0]
		for _, next := range colors[1:] {
			c = blendMasked(c, next, mask)
		}

		row := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = c.R
			row[x+1] = c.G
			row[x+2] = c.B
			row[x+3] = c.A
		}
	}
	return dst
}

func blendMasked(dst, src color.NRGBA, mask int) color.NRGBA {
	mix := func(d, s uint8) uint8 {
		return uint8((int(s)*mask + int(d)*(255-mask) + 127) / 255)
	}
	return color.NRGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: mix(dst.A, src.A),
	}
}

// AddBorder returns img framed by width pixels of border on every side.
func AddBorder(img image.Image, width int, border color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*width, b.Dy()+2*width, border)
	return imaging.Paste(canvas, img, image.Pt(width, width))
}

// CropCenterSquare cuts a square of outputSize*cropScale pixels around the
// centre of img, scales it to outputSize and rounds its corners. Parts of
// the square that fall outside img stay transparent.
func CropCenterSquare(img image.Image, outputSize int, cornerRadius, cropScale float64) *image.NRGBA {
	b := img.Bounds()
	larger := int(float64(outputSize) * cropScale)
	left := cropOrigin(b.Dx(), larger)
	top := cropOrigin(b.Dy(), larger)

	window := imaging.New(larger, larger, color.Transparent)
	window = imaging.Paste(window, img, image.Pt(-left, -top))
	square := imaging.Resize(window, outputSize, outputSize, imaging.CatmullRom)

	size := float64(outputSize)
	dc := gg.NewContext(outputSize, outputSize)
	dc.DrawRoundedRectangle(0, 0, size, size, cornerRadius)
	dc.Clip()
	dc.DrawImage(square, 0, 0)
	return imaging.Clone(dc.Image())
}

// cropOrigin is the offset of a centred window of size larger within dim,
// rounded half to even.
func cropOrigin(dim, larger int) int {
	return int(math.RoundToEven(float64(dim)/2 - float64(larger)/2))
}

// scaleBrightness multiplies the color channels of img by factor.
func scaleBrightness(img image.Image, factor float64) *image.NRGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*factor)))
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
	})
}
