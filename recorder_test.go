package touchkit

import (
	"image"
	"io"
	"log/slog"
	"unicode/utf8"
)

const glyphWidth = 6

type op struct {
	kind string // fill, text, bitmap
	r    image.Rectangle
	s    string
	c    Color
}

// recorder is a Surface keeping a log of drawing operations.
type recorder struct {
	ops []op
}

func (s *recorder) FillRect(r image.Rectangle, c Color) {
	s.ops = append(s.ops, op{kind: "fill", r: r, c: c})
}

func (s *recorder) DrawText(p image.Point, text string, f Font, c Color) {
	r := image.Rectangle{p, p.Add(image.Pt(s.StringWidth(text, f), f.Height))}
	s.ops = append(s.ops, op{kind: "text", r: r, s: text, c: c})
}

func (s *recorder) DrawBitmap(p image.Point, pix []uint16, width, height int) {
	s.ops = append(s.ops, op{kind: "bitmap", r: image.Rect(p.X, p.Y, p.X+width, p.Y+height)})
}

func (s *recorder) StringWidth(text string, f Font) int {
	return glyphWidth * utf8.RuneCountInString(text)
}

func (s *recorder) reset() {
	s.ops = nil
}

func (s *recorder) texts() []string {
	var l []string
	for _, o := range s.ops {
		if o.kind == "text" {
			l = append(l, o.s)
		}
	}
	return l
}

// filled returns the fill operations that are entirely inside r.
func (s *recorder) filled(r image.Rectangle) []op {
	var l []op
	for _, o := range s.ops {
		if o.kind == "fill" && o.r.In(r) {
			l = append(l, o)
		}
	}
	return l
}

func newTestEnv() (*Env, *recorder) {
	rec := &recorder{}
	env := NewEnv(rec, DefaultTheme())
	env.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return env, rec
}

// center returns the center of r.
func center(r image.Rectangle) image.Point {
	return r.Min.Add(r.Size().Div(2))
}
