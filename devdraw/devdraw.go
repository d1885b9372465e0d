// Package devdraw is a touchkit Surface in a devdraw window, for running touchkit programs on a desktop.
// The left mouse button acts as the touch screen.
package devdraw

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync/atomic"

	"9fans.net/go/draw"

	"github.com/mjl-/touchkit"
	"github.com/mjl-/touchkit/touch"
)

// Surface draws in the window of a devdraw display. All drawing must happen on one goroutine, usually the screen's main loop.
type Surface struct {
	Display *draw.Display
	Log     *slog.Logger

	errch    chan error
	mousectl *draw.Mousectl
	origin   atomic.Pointer[image.Point]
	colors   map[touchkit.Color]*draw.Image
	fonts    map[string]*draw.Font
}

var _ touchkit.Surface = &Surface{}
var _ touchkit.Flusher = &Surface{}

// Open opens a window with title label, sized for a screen of width by height pixels.
func Open(label string, width, height int) (*Surface, error) {
	errch := make(chan error, 1)
	display, err := draw.Init(errch, "", label, fmt.Sprintf("%dx%d", width, height))
	if err != nil {
		return nil, fmt.Errorf("devdraw init: %w", err)
	}
	s := &Surface{
		Display:  display,
		Log:      slog.Default(),
		errch:    errch,
		mousectl: display.InitMouse(),
		colors:   map[touchkit.Color]*draw.Image{},
		fonts:    map[string]*draw.Font{},
	}
	s.setOrigin()
	return s, nil
}

func (s *Surface) setOrigin() {
	p := s.Display.ScreenImage.R.Min
	s.origin.Store(&p)
}

// Origin returns the window's top-left in display coordinates. Safe for use from any goroutine.
func (s *Surface) Origin() image.Point {
	return *s.origin.Load()
}

// Attach reattaches to the window after a resize. The screen must be redrawn after.
func (s *Surface) Attach() error {
	if err := s.Display.Attach(draw.Refmesg); err != nil {
		return fmt.Errorf("attach after resize: %w", err)
	}
	s.setOrigin()
	return nil
}

// drawColor converts c to a devdraw RGBA color.
func drawColor(c touchkit.Color) draw.Color {
	r, g, b, _ := c.RGBA()
	return draw.Color((r>>8)<<24 | (g>>8)<<16 | (b>>8)<<8 | 0xff)
}

func (s *Surface) color(c touchkit.Color) *draw.Image {
	if img, ok := s.colors[c]; ok {
		return img
	}
	img, err := s.Display.AllocImage(image.Rect(0, 0, 1, 1), draw.ARGB32, true, drawColor(c))
	if err != nil {
		s.Log.Error("allocimage for color", "color", c, "error", err)
		return s.Display.Black
	}
	s.colors[c] = img
	return img
}

// font returns the devdraw font for f. Fonts that cannot be opened fall back to the default font.
func (s *Surface) font(f touchkit.Font) *draw.Font {
	if f.Name == "" {
		return s.Display.DefaultFont
	}
	if font, ok := s.fonts[f.Name]; ok {
		return font
	}
	font, err := s.Display.OpenFont(f.Name)
	if err != nil {
		s.Log.Debug("open font, using default", "font", f.Name, "error", err)
		font = s.Display.DefaultFont
	}
	s.fonts[f.Name] = font
	return font
}

func (s *Surface) FillRect(r image.Rectangle, c touchkit.Color) {
	s.Display.ScreenImage.Draw(r.Add(s.Origin()), s.color(c), nil, image.ZP)
}

// DrawText draws s with its top-left at p, vertically centered in a line of f.Height.
func (s *Surface) DrawText(p image.Point, text string, f touchkit.Font, c touchkit.Color) {
	font := s.font(f)
	if f.Height > font.Height {
		p.Y += (f.Height - font.Height) / 2
	}
	s.Display.ScreenImage.String(p.Add(s.Origin()), s.color(c), image.ZP, font, text)
}

func (s *Surface) DrawBitmap(p image.Point, pix []uint16, width, height int) {
	r := image.Rect(0, 0, width, height)
	img, err := s.Display.AllocImage(r, draw.RGB16, false, draw.White)
	if err != nil {
		s.Log.Error("allocimage for bitmap", "error", err)
		return
	}
	defer img.Free()
	if _, err := img.Load(r, pack16(pix, width, height)); err != nil {
		s.Log.Error("load bitmap", "error", err)
		return
	}
	s.Display.ScreenImage.Draw(r.Add(p).Add(s.Origin()), img, nil, image.ZP)
}

// pack16 returns pix in devdraw's RGB16 layout: little endian, rows padded to 32 bits.
func pack16(pix []uint16, width, height int) []byte {
	stride := (width*16 + 31) / 32 * 4
	buf := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if i >= len(pix) {
				return buf
			}
			o := y*stride + 2*x
			buf[o] = byte(pix[i])
			buf[o+1] = byte(pix[i] >> 8)
		}
	}
	return buf
}

func (s *Surface) StringWidth(text string, f touchkit.Font) int {
	return s.font(f).StringWidth(text)
}

func (s *Surface) Flush() error {
	return s.Display.Flush()
}

// Close closes the window.
func (s *Surface) Close() error {
	return s.Display.Close()
}

// Mouse feeds the left mouse button of a window into a Contact.
type Mouse struct {
	Surface *Surface
	Contact *touch.Contact

	// Called from the Run goroutine after the window was resized. It should schedule Surface.Attach
	// and a redraw on the main loop.
	OnResize func()
}

// Run reads mouse events until ctx is done or the window is closed. A closed window returns nil.
func (m *Mouse) Run(ctx context.Context) error {
	mc := m.Surface.mousectl
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-mc.C:
			if e.Buttons&1 != 0 {
				m.Contact.Set(e.Point.Sub(m.Surface.Origin()))
			} else {
				m.Contact.Release()
			}
		case <-mc.Resize:
			if m.OnResize != nil {
				m.OnResize()
			}
		case err := <-m.Surface.errch:
			m.Contact.Release()
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("devdraw: %w", err)
		}
	}
}
