package touchkit

import (
	"image"
	"strings"
)

// ScrollPanel shows lines of text between two y coordinates.
// When the last line is full, the oldest line is dropped and the whole panel is redrawn.
type ScrollPanel struct {
	Base

	Color     Color // Background.
	TextColor Color
	Font      Font
	Action    func() // Called on touch.

	env   *Env
	lines []string // ring of retained lines
	head  int      // slot of the oldest line
	index int      // current line, relative to head
	from  int
	until int

	// Part of the window not covered by other widgets, set by the owning Stack.
	clipped   bool
	clipFrom  int
	clipUntil int
}

var _ Widget = &ScrollPanel{}

// NewScrollPanel returns an active, empty panel between the logo height and the screen height minus the logo height.
func NewScrollPanel(env *Env) *ScrollPanel {
	th := env.Theme
	ui := &ScrollPanel{
		Color:     th.Panel,
		TextColor: th.PanelText,
		Font:      th.Font,
		env:       env,
		lines:     make([]string, th.MaxLines+2),
		from:      th.LogoHeight,
		until:     th.Height - th.LogoHeight,
	}
	ui.Show()
	return ui
}

// Window returns the y coordinates between which the panel draws.
func (ui *ScrollPanel) Window() (from, until int) {
	return ui.from, ui.until
}

// SetFrom changes the top of the panel, e.g. to the bottom of a button group docked at the top.
// Lines that no longer fit are dropped. The panel is not redrawn.
func (ui *ScrollPanel) SetFrom(y int) {
	ui.from = y
	ui.fit()
}

// SetUntil changes the bottom of the panel, e.g. to the top of a button group docked at the bottom.
func (ui *ScrollPanel) SetUntil(y int) {
	ui.until = y
	ui.fit()
}

// SetClip restricts drawing to the y coordinates between from and until, e.g. to leave docked button groups alone.
// Lines outside the clip are kept but not drawn.
func (ui *ScrollPanel) SetClip(from, until int) {
	ui.clipped = true
	ui.clipFrom = from
	ui.clipUntil = until
}

// Clip returns the part of the window the panel draws in.
func (ui *ScrollPanel) Clip() (from, until int) {
	if !ui.clipped {
		return ui.from, ui.until
	}
	return max(ui.clipFrom, ui.from), min(ui.clipUntil, ui.until)
}

// Rect returns the area of the panel.
func (ui *ScrollPanel) Rect() image.Rectangle {
	return image.Rect(0, ui.from, ui.env.Theme.Width, ui.until)
}

func (ui *ScrollPanel) lineHeight() int {
	return ui.Font.Height + ui.env.Theme.LineSpace
}

// Capacity returns the number of lines shown, including the line being printed to.
func (ui *ScrollPanel) Capacity() int {
	n := (ui.until - ui.from) / ui.lineHeight()
	if n > ui.env.Theme.MaxLines {
		n = ui.env.Theme.MaxLines
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (ui *ScrollPanel) slot(i int) int {
	return (ui.head + i) % len(ui.lines)
}

// drop removes the n oldest lines.
func (ui *ScrollPanel) drop(n int) {
	ui.head = ui.slot(n)
	ui.index -= n
	for i := ui.index + 1; i < len(ui.lines); i++ {
		ui.lines[ui.slot(i)] = ""
	}
}

func (ui *ScrollPanel) fit() {
	if n := ui.index + 1 - ui.Capacity(); n > 0 {
		ui.drop(n)
	}
}

// Print appends s to the current line. A newline in s starts a new line.
func (ui *ScrollPanel) Print(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			ui.newline()
		}
		if part == "" {
			continue
		}
		ui.lines[ui.slot(ui.index)] += part
		if ui.displayed {
			ui.drawLine(ui.index)
		}
	}
}

// Println prints s and ends the line.
func (ui *ScrollPanel) Println(s string) {
	ui.Print(s)
	ui.newline()
}

func (ui *ScrollPanel) newline() {
	ui.index++
	ui.lines[ui.slot(ui.index)] = ""
	if ui.index < ui.Capacity() {
		return
	}
	ui.drop(1)
	if ui.displayed {
		ui.Draw()
	}
}

// Lines returns the retained lines, oldest first. An empty line being printed to is not included.
func (ui *ScrollPanel) Lines() []string {
	n := ui.index + 1
	if ui.lines[ui.slot(ui.index)] == "" {
		n--
	}
	l := make([]string, n)
	for i := range l {
		l[i] = ui.lines[ui.slot(i)]
	}
	return l
}

// ClearLines forgets all lines. Nothing is drawn.
func (ui *ScrollPanel) ClearLines() {
	for i := range ui.lines {
		ui.lines[i] = ""
	}
	ui.head = 0
	ui.index = 0
}

// Clear forgets all lines and erases the panel if it is displayed.
func (ui *ScrollPanel) Clear() {
	ui.ClearLines()
	if ui.displayed {
		ui.Draw()
	}
}

func (ui *ScrollPanel) lineY(i int) int {
	return ui.from + i*ui.lineHeight()
}

func (ui *ScrollPanel) drawLine(i int) {
	y := ui.lineY(i)
	from, until := ui.Clip()
	if y < from || y+ui.lineHeight() > until {
		return
	}
	ui.env.Surface.FillRect(rect(0, y, ui.env.Theme.Width, ui.lineHeight()), ui.Color)
	ui.env.Surface.DrawText(image.Pt(ui.env.Theme.Pad, y), ui.lines[ui.slot(i)], ui.Font, ui.TextColor)
}

// Draw draws the panel within its clip.
func (ui *ScrollPanel) Draw() {
	ui.DrawRange(ui.Clip())
}

// DrawRange draws the part of the panel between y coordinates from and until.
// Only lines entirely inside the range are drawn.
func (ui *ScrollPanel) DrawRange(from, until int) {
	if !ui.active {
		return
	}
	from = max(from, ui.from)
	until = min(until, ui.until)
	if from >= until {
		return
	}
	ui.env.Surface.FillRect(image.Rect(0, from, ui.env.Theme.Width, until), ui.Color)
	h := ui.lineHeight()
	for i := 0; i <= ui.index; i++ {
		y := ui.lineY(i)
		s := ui.lines[ui.slot(i)]
		if s == "" || y < from || y+h > until {
			continue
		}
		ui.env.Surface.DrawText(image.Pt(ui.env.Theme.Pad, y), s, ui.Font, ui.TextColor)
	}
	ui.displayed = true
}

func (ui *ScrollPanel) Touch(p image.Point) {
	if ui.active && p.In(ui.Rect()) && ui.Action != nil {
		ui.Action()
	}
}

func (ui *ScrollPanel) Untouch(p image.Point) {}
