package touchkit

import (
	"image"
)

// Button is a tappable rectangle with a caption and optional logos.
// A momentary button shows a pressed look while touched and calls Action.
// A bistable button flips State on each touch and calls Changed.
type Button struct {
	Base

	Color    Color  // Background.
	Caption  string // Drawn centered, below the logo if any.
	Font     *Font  // If nil, the theme's font.
	Logo     *Logo  // Drawn centered at the top.
	LogoOn   *Logo  // For a bistable button with State true. If nil, Logo is used.
	Bistable bool
	State    bool // For bistable buttons.

	Action  func()           // Called on touch of a momentary button.
	Changed func(state bool) // Called on touch of a bistable button, after State flipped.

	env     *Env
	r       image.Rectangle
	pressed bool
}

// NewButton returns an active button occupying r. The geometry cannot be changed.
func NewButton(env *Env, r image.Rectangle) *Button {
	b := &Button{
		Color: env.Theme.Button,
		env:   env,
		r:     r.Canon(),
	}
	b.Show()
	return b
}

func (ui *Button) Rect() image.Rectangle {
	return ui.r
}

// Pressed returns whether the button is momentary and currently touched.
func (ui *Button) Pressed() bool {
	return ui.pressed
}

func (ui *Button) font() Font {
	if ui.Font != nil {
		return *ui.Font
	}
	return ui.env.Theme.Font
}

// Touch reacts on a touch; the caller has already matched the touch point against Rect.
// Action and Changed run before Touch returns.
func (ui *Button) Touch() {
	if ui.Bistable {
		ui.State = !ui.State
		ui.Draw()
		if ui.Changed != nil {
			ui.Changed(ui.State)
		}
		return
	}
	ui.pressed = true
	ui.Draw()
	if ui.Action != nil {
		ui.Action()
	}
}

// Untouch redraws the button in its released look.
func (ui *Button) Untouch() {
	ui.pressed = false
	ui.Draw()
}

func (ui *Button) Draw() {
	if !ui.active {
		return
	}
	th := ui.env.Theme
	bg := ui.Color
	logo := ui.Logo
	if ui.Bistable && ui.State {
		bg = th.ButtonOn
		if ui.LogoOn != nil {
			logo = ui.LogoOn
		}
	}
	if ui.pressed {
		bg = th.Pressed
	}
	ui.env.Surface.FillRect(ui.r, bg)

	font := ui.font()
	y := ui.r.Min.Y + (ui.r.Dy()-font.Height)/2
	if logo != nil {
		size := logo.Size()
		p := image.Pt(ui.r.Min.X+(ui.r.Dx()-size.X)/2, ui.r.Min.Y+2)
		if ui.Caption == "" {
			p.Y = ui.r.Min.Y + (ui.r.Dy()-size.Y)/2
		}
		logo.Draw(p)
		y = p.Y + size.Y + 1
	}
	ui.env.textCentered(ui.r, y, ui.Caption, font, th.Text)
	ui.displayed = true
}
