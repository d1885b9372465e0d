package touchkit

import (
	"fmt"
	"image"
)

// Bitmap is RGB565 pixel data, row by row.
// A bitmap can back several logos, see LogoShared.
type Bitmap struct {
	Width, Height int
	Pix           []uint16
	ReadOnly      bool // e.g. stored in flash; logos cannot recolor it
}

// NewBitmap returns a bitmap for pix, which must hold width*height pixels.
func NewBitmap(width, height int, pix []uint16) (*Bitmap, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%dx%d with %d pixels: %w", width, height, len(pix), ErrBitmapSize)
	}
	return &Bitmap{Width: width, Height: height, Pix: pix}, nil
}

func (bm *Bitmap) clone() *Bitmap {
	pix := make([]uint16, len(bm.Pix))
	copy(pix, bm.Pix)
	return &Bitmap{Width: bm.Width, Height: bm.Height, Pix: pix}
}

// LogoMode decides whether a logo draws from the caller's bitmap or from its own copy.
type LogoMode int

const (
	// LogoShared uses the bitmap as given. Recoloring the logo changes the pixels for every logo and
	// button using the same bitmap.
	LogoShared LogoMode = iota

	// LogoCopy copies the pixels, recoloring only affects this logo.
	// A copy of a read-only bitmap is writable.
	LogoCopy
)

// Logo is an image drawn on a button, or anywhere on the screen.
type Logo struct {
	env    *Env
	bitmap *Bitmap
}

// NewLogo returns a logo showing bm.
func NewLogo(env *Env, bm *Bitmap, mode LogoMode) *Logo {
	if mode == LogoCopy {
		bm = bm.clone()
	}
	return &Logo{env: env, bitmap: bm}
}

// Bitmap returns the pixels drawn by the logo.
func (l *Logo) Bitmap() *Bitmap {
	return l.bitmap
}

func (l *Logo) Size() image.Point {
	return image.Pt(l.bitmap.Width, l.bitmap.Height)
}

// Background replaces the white pixels with color, so the logo blends into a button of that color.
func (l *Logo) Background(color Color) error {
	return l.replace(White, color)
}

// BackgroundWhite reverts a previous Background(color).
// Pixels that were color before Background was called are turned white as well.
func (l *Logo) BackgroundWhite(color Color) error {
	return l.replace(color, White)
}

func (l *Logo) replace(from, to Color) error {
	if l.bitmap.ReadOnly {
		return ErrReadOnly
	}
	for i, c := range l.bitmap.Pix {
		if Color(c) == from {
			l.bitmap.Pix[i] = uint16(to)
		}
	}
	return nil
}

// Draw draws the logo with its top-left at p.
func (l *Logo) Draw(p image.Point) {
	l.env.Surface.DrawBitmap(p, l.bitmap.Pix, l.bitmap.Width, l.bitmap.Height)
}
