// Package art renders the application logo: a filled circle with an
// inner ring, a centered letter, and four dots at the compass points.
package art

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrFontUnavailable is returned when no usable font face can be
// produced for the logo letter. Callers distinguish it from encoding
// failures via errors.Is.
var ErrFontUnavailable = errors.New("icon font unavailable")

// Sizes below minDirectSize are rendered at supersample times the
// target and downscaled; direct rendering loses the letter shape on
// tiny canvases.
const (
	minDirectSize = 32
	supersample   = 4
)

// Options configures a logo rendering.
type Options struct {
	Letter     string // single letter drawn in the center, "" to skip
	Background color.RGBA
	Ring       color.RGBA
	Dots       color.RGBA
	Text       color.RGBA
	Font       string // "bold" or "regular"
}

// DefaultOptions returns the stock logo palette.
func DefaultOptions() Options {
	return Options{
		Letter:     "M",
		Background: color.RGBA{102, 126, 234, 255}, // #667eea
		Ring:       color.RGBA{255, 255, 255, 180},
		Dots:       color.RGBA{255, 255, 255, 200},
		Text:       color.RGBA{255, 255, 255, 255},
		Font:       "bold",
	}
}

// ValidFontName reports whether name selects an embedded font.
func ValidFontName(name string) bool {
	switch name {
	case "bold", "regular":
		return true
	}
	return false
}

// Render draws the logo on a transparent size x size canvas.
func Render(size int, o Options) (image.Image, error) {
	if size < minDirectSize {
		big, err := render(size*supersample, o)
		if err != nil {
			return nil, err
		}
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Over, nil)
		return dst, nil
	}
	return render(size, o)
}

func render(size int, o Options) (image.Image, error) {
	dc := gg.NewContext(size, size)
	dc.SetColor(color.RGBA{0, 0, 0, 0})
	dc.Clear()

	center := float64(size) / 2
	radius := float64(size) * 0.45

	// Background disc
	dc.SetColor(o.Background)
	dc.DrawCircle(center, center, radius)
	dc.Fill()

	// Inner ring
	dc.SetColor(o.Ring)
	dc.SetLineWidth(math.Max(1, float64(size)/64))
	dc.DrawCircle(center, center, radius*0.8)
	dc.Stroke()

	if o.Letter != "" {
		face, err := loadFontFace(o.Font, float64(size)*0.4)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		w, h := dc.MeasureString(o.Letter)
		dc.SetColor(o.Text)
		dc.DrawString(o.Letter, center-w/2, center+h/2)
	}

	// Compass dots, inset from the disc edge
	dotRadius := math.Max(2, float64(size)/32)
	inset := radius - 2*dotRadius
	positions := []struct{ x, y float64 }{
		{center, center - inset}, // north
		{center + inset, center}, // east
		{center, center + inset}, // south
		{center - inset, center}, // west
	}
	dc.SetColor(o.Dots)
	for _, p := range positions {
		dc.DrawCircle(p.x, p.y, dotRadius)
		dc.Fill()
	}

	return dc.Image(), nil
}

// loadFontFace loads an embedded Go font at the given size.
func loadFontFace(name string, size float64) (font.Face, error) {
	ttf := gobold.TTF
	if name == "regular" {
		ttf = goregular.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %v", ErrFontUnavailable, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create face: %v", ErrFontUnavailable, err)
	}
	return face, nil
}
