package touchkit

import (
	"image"
	"log/slog"
)

// Color is a 16 bit RGB565 color, the native format of most small TFT controllers.
type Color uint16

// RGB returns the RGB565 color closest to r, g, b.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) & 0x1f
	g = uint32(c>>5) & 0x3f
	b = uint32(c) & 0x1f
	r = (r<<3 | r>>2) * 0x101
	g = (g<<2 | g>>4) * 0x101
	b = (b<<3 | b>>2) * 0x101
	return r, g, b, 0xffff
}

const (
	White Color = 0xffff
	Black Color = 0x0000
)

// Font names a font of the display driver. Height is in pixels and used for vertical placement of text.
type Font struct {
	Name   string
	Height int
}

// Surface is the drawing interface of the display driver. Coordinates are screen pixels.
type Surface interface {
	FillRect(r image.Rectangle, c Color)
	DrawText(p image.Point, s string, f Font, c Color) // p is the top-left of the text
	DrawBitmap(p image.Point, pix []uint16, width, height int)
	StringWidth(s string, f Font) int
}

// Flusher is implemented by surfaces that buffer drawing operations.
type Flusher interface {
	Flush() error
}

// Position is a docking position for a button group.
type Position int

const (
	PosBottom Position = iota
	PosMiddle
	PosTop
)

// Theme holds the geometry, fonts and colors used by all widgets.
type Theme struct {
	Width, Height int

	Pad            int // space around buttons in a group
	GroupHeight    int
	KeyboardHeight int // including banner
	BannerHeight   int
	StatusHeight   int
	LogoWidth      int
	LogoHeight     int
	LineSpace      int // between panel lines
	MaxLines       int // lines kept by a panel

	Font, KeyFont, StatusFont Font

	Background,
	Text,
	Button,
	ButtonOn,
	Pressed,
	Group,
	Panel,
	PanelText,
	Banner,
	BannerText,
	BannerReady,
	KeyControl,
	StatusBar,
	Status,
	StatusOK,
	StatusFail Color

	// Key colors per page, indexed by KeySet.
	Keys [4]Color
}

// DefaultTheme returns the theme for a 320x240 ILI9341 display.
func DefaultTheme() Theme {
	return Theme{
		Width:          320,
		Height:         240,
		Pad:            5,
		GroupHeight:    68,
		KeyboardHeight: 160,
		BannerHeight:   35,
		StatusHeight:   22,
		LogoWidth:      32,
		LogoHeight:     32,
		LineSpace:      3,
		MaxLines:       12,

		Font:       Font{Name: "Arial_bold_14", Height: 14},
		KeyFont:    Font{Name: "Arial_bold_14", Height: 14},
		StatusFont: Font{Name: "Arial14", Height: 14},

		Background:  Black,
		Text:        Black,
		Button:      RGB(0xff, 0xd7, 0x00), // gold
		ButtonOn:    RGB(0x00, 0x80, 0x00),
		Pressed:     RGB(0xff, 0x8c, 0x00),
		Group:       RGB(0x00, 0x00, 0xff),
		Panel:       RGB(0x00, 0x00, 0x8b), // dark blue
		PanelText:   White,
		Banner:      RGB(0x00, 0x00, 0xff),
		BannerText:  White,
		BannerReady: RGB(0x00, 0x80, 0x00),
		KeyControl:  RGB(0xb0, 0xc4, 0xde),
		StatusBar:   Black,
		Status:      RGB(0xb0, 0xc4, 0xde), // light steel blue
		StatusOK:    RGB(0x00, 0xff, 0x00),
		StatusFail:  RGB(0xff, 0x00, 0x00),
		Keys: [4]Color{
			KeySetMixed:     RGB(0xff, 0xd7, 0x00),
			KeySetMajuscule: RGB(0xff, 0xd7, 0x00),
			KeySetNumeric:   RGB(0x87, 0xce, 0xeb),
			KeySetMinuscule: RGB(0xee, 0xe8, 0xaa),
		},
	}
}

// GroupTop returns the top of a button group docked at pos.
func (t Theme) GroupTop(pos Position) int {
	switch pos {
	case PosMiddle:
		return t.Height - 2*t.GroupHeight
	case PosTop:
		return t.Height - 3*t.GroupHeight
	}
	return t.Height - t.GroupHeight
}

// Env is shared by all widgets of a screen.
type Env struct {
	Surface Surface
	Theme   Theme
	Log     *slog.Logger
}

// NewEnv returns an env drawing on s. Log is set to the default slog logger.
func NewEnv(s Surface, t Theme) *Env {
	return &Env{Surface: s, Theme: t, Log: slog.Default()}
}

func (e *Env) screen() image.Rectangle {
	return image.Rect(0, 0, e.Theme.Width, e.Theme.Height)
}

// textCentered draws s horizontally centered in r, at y.
func (e *Env) textCentered(r image.Rectangle, y int, s string, f Font, c Color) {
	if s == "" {
		return
	}
	w := e.Surface.StringWidth(s, f)
	x := r.Min.X + (r.Dx()-w)/2
	if x < r.Min.X {
		x = r.Min.X
	}
	e.Surface.DrawText(image.Pt(x, y), s, f, c)
}
