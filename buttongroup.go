package touchkit

import (
	"fmt"
	"image"
	"log/slog"
)

// MaxButtons is the maximum number of buttons in a ButtonGroup.
const MaxButtons = 10

// ButtonGroup is a row of equally sized buttons across the width of the screen.
// When grouped, the buttons behave like radio buttons: at most one has State true.
type ButtonGroup struct {
	Base

	Buttons []*Button
	Color   Color // Background of the row.

	env     *Env
	top     int
	grouped bool
}

var _ Widget = &ButtonGroup{}

// NewButtonGroup returns an active group of n buttons with its top at y coordinate top, see Theme.GroupTop.
func NewButtonGroup(env *Env, n, top int) (*ButtonGroup, error) {
	if n < 1 || n > MaxButtons {
		return nil, fmt.Errorf("button group of %d buttons, max %d: %w", n, MaxButtons, ErrCapacity)
	}
	th := env.Theme
	ui := &ButtonGroup{
		Buttons: make([]*Button, n),
		Color:   th.Group,
		env:     env,
		top:     top,
	}
	w := (th.Width - th.Pad*(n+1)) / n
	h := th.GroupHeight - 2*th.Pad
	for i := range ui.Buttons {
		ui.Buttons[i] = NewButton(env, rect(th.Pad+i*(w+th.Pad), top+th.Pad, w, h))
	}
	ui.Show()
	return ui, nil
}

func (ui *ButtonGroup) Top() int {
	return ui.top
}

// Rect returns the area of the row, including padding.
func (ui *ButtonGroup) Rect() image.Rectangle {
	return rect(0, ui.top, ui.env.Theme.Width, ui.env.Theme.GroupHeight)
}

// Group turns radio behaviour on or off. Turning it on makes all buttons bistable.
// Existing states are left alone, exclusivity is enforced on the next touch.
func (ui *ButtonGroup) Group(on bool) {
	ui.grouped = on
	if on {
		for _, b := range ui.Buttons {
			b.Bistable = true
		}
	}
}

func (ui *ButtonGroup) Grouped() bool {
	return ui.grouped
}

// Selected returns the index of the first button with State true, or -1.
func (ui *ButtonGroup) Selected() int {
	for i, b := range ui.Buttons {
		if b.Bistable && b.State {
			return i
		}
	}
	return -1
}

func (ui *ButtonGroup) Touch(p image.Point) {
	if !ui.active {
		return
	}
	i := first(ui.Buttons, p)
	if i < 0 {
		return
	}
	ui.env.Log.Debug("touch button", slog.Int("top", ui.top), slog.Int("index", i))
	b := ui.Buttons[i]
	if ui.grouped && b.Bistable && b.State {
		// The selected button stays selected.
		return
	}
	b.Touch()
	if !ui.grouped {
		return
	}
	for j, b := range ui.Buttons {
		if j != i && b.State {
			b.State = false
			if b.displayed {
				b.Draw()
			}
		}
	}
}

// Hide makes the group inactive and releases its buttons. A button pressed when its group is hidden,
// e.g. from its own Action, is drawn released when the group is shown again.
func (ui *ButtonGroup) Hide() {
	ui.Base.Hide()
	for _, b := range ui.Buttons {
		b.pressed = false
	}
}

func (ui *ButtonGroup) Untouch(p image.Point) {
	if !ui.active {
		return
	}
	if i := first(ui.Buttons, p); i >= 0 {
		ui.Buttons[i].Untouch()
	}
}

func (ui *ButtonGroup) Draw() {
	if !ui.active {
		return
	}
	ui.env.Surface.FillRect(ui.Rect(), ui.Color)
	for _, b := range ui.Buttons {
		b.Draw()
	}
	ui.displayed = true
}
