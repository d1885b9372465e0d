// Package fb is an in-memory Surface backed by an image.RGBA.
// It is used for headless rendering, snapshots and tests.
package fb

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mjl-/touchkit"
)

// Framebuffer draws into an RGBA image. All fonts render with the same fixed-width face,
// the touchkit font height only moves the baseline.
type Framebuffer struct {
	Image *image.RGBA
	Face  font.Face

	flushes int
}

var _ touchkit.Surface = &Framebuffer{}
var _ touchkit.Flusher = &Framebuffer{}

// New returns a black framebuffer of width by height pixels.
func New(width, height int) *Framebuffer {
	return &Framebuffer{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		Face:  basicfont.Face7x13,
	}
}

func (fb *Framebuffer) FillRect(r image.Rectangle, c touchkit.Color) {
	draw.Draw(fb.Image, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawText draws s with its top-left at p. Text is vertically centered in a line of f.Height pixels.
func (fb *Framebuffer) DrawText(p image.Point, s string, f touchkit.Font, c touchkit.Color) {
	m := fb.Face.Metrics()
	ascent := m.Ascent.Ceil()
	h := m.Height.Ceil()
	y := p.Y + ascent
	if f.Height > h {
		y += (f.Height - h) / 2
	}
	d := &font.Drawer{
		Dst:  fb.Image,
		Src:  image.NewUniform(c),
		Face: fb.Face,
		Dot:  fixed.P(p.X, y),
	}
	d.DrawString(s)
}

func (fb *Framebuffer) DrawBitmap(p image.Point, pix []uint16, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if i >= len(pix) {
				return
			}
			q := p.Add(image.Pt(x, y))
			if q.In(fb.Image.Rect) {
				fb.Image.Set(q.X, q.Y, touchkit.Color(pix[i]))
			}
		}
	}
}

func (fb *Framebuffer) StringWidth(s string, f touchkit.Font) int {
	return font.MeasureString(fb.Face, s).Ceil()
}

// Flush counts flushes. Drawing is immediate.
func (fb *Framebuffer) Flush() error {
	fb.flushes++
	return nil
}

// Flushes returns the number of calls to Flush.
func (fb *Framebuffer) Flushes() int {
	return fb.flushes
}

// At returns the color at x, y converted to RGB565.
func (fb *Framebuffer) At(x, y int) touchkit.Color {
	c := fb.Image.RGBAAt(x, y)
	return touchkit.RGB(c.R, c.G, c.B)
}

// WritePNG encodes the framebuffer as PNG.
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, fb.Image); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNGPath writes the framebuffer to a PNG file at path.
func (fb *Framebuffer) WritePNGPath(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("close %s: %w", path, err)
		}
	}()
	return fb.WritePNG(f)
}
