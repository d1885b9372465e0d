package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/mjl-/touchkit"
)

// demo is the screen shown by the simulator. The Name button swaps the button rows for a keyboard.
type demo struct {
	scr    *touchkit.Screen
	panel  *touchkit.ScrollPanel
	colors *touchkit.ButtonGroup
	action *touchkit.ButtonGroup
	clock  *touchkit.StatusItem
	input  *touchkit.StatusItem
}

// lampBitmap returns a round lamp on a white background, lit or not.
func lampBitmap(w, h int, lit bool) *touchkit.Bitmap {
	c := touchkit.RGB(0x80, 0x80, 0x80)
	if lit {
		c = touchkit.RGB(0xff, 0xff, 0x00)
	}
	pix := make([]uint16, w*h)
	r := min(w, h)/2 - 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-w/2, y-h/2
			pix[y*w+x] = uint16(touchkit.White)
			if dx*dx+dy*dy <= r*r {
				pix[y*w+x] = uint16(c)
			}
		}
	}
	return &touchkit.Bitmap{Width: w, Height: h, Pix: pix}
}

// newDemo builds the demo screen. The lamp button shows logo if not nil, or a drawn lamp.
func newDemo(env *touchkit.Env, logo *touchkit.Bitmap) (*demo, error) {
	th := env.Theme
	d := &demo{scr: touchkit.NewScreen(env)}

	var err error
	if d.clock, err = d.scr.StatusBar.Add("", time.Now().Format("15:04:05")); err != nil {
		return nil, err
	}
	d.clock.SetState(true)
	if d.input, err = d.scr.StatusBar.Add("touch", "idle"); err != nil {
		return nil, err
	}

	d.panel = touchkit.NewScrollPanel(env)
	d.panel.SetFrom(th.StatusHeight)
	d.panel.SetUntil(th.GroupTop(touchkit.PosMiddle))
	d.panel.Action = func() { d.panel.Println("panel touched") }
	d.scr.Stack.Panel = d.panel

	if d.colors, err = touchkit.NewButtonGroup(env, 3, th.GroupTop(touchkit.PosMiddle)); err != nil {
		return nil, err
	}
	d.colors.Group(true)
	for i, c := range []struct {
		name  string
		color touchkit.Color
	}{
		{"White", touchkit.White},
		{"Green", touchkit.RGB(0x00, 0xff, 0x00)},
		{"Yellow", touchkit.RGB(0xff, 0xff, 0x00)},
	} {
		b := d.colors.Buttons[i]
		b.Caption = c.name
		b.Changed = func(on bool) {
			if !on {
				return
			}
			d.panel.TextColor = c.color
			if d.panel.Displayed() {
				d.panel.Draw()
			}
		}
	}
	d.colors.Buttons[0].State = true

	if d.action, err = touchkit.NewButtonGroup(env, 4, th.GroupTop(touchkit.PosBottom)); err != nil {
		return nil, err
	}
	hello, name, erase, lamp := d.action.Buttons[0], d.action.Buttons[1], d.action.Buttons[2], d.action.Buttons[3]
	hello.Caption = "Hello"
	hello.Action = func() { d.panel.Println("Hello, world") }
	name.Caption = "Name"
	name.Action = d.startKeyboard
	erase.Caption = "Clear"
	erase.Action = d.panel.Clear

	off, on := lampBitmap(th.LogoWidth, th.LogoHeight, false), lampBitmap(th.LogoWidth, th.LogoHeight, true)
	if logo != nil {
		off, on = logo, logo
	}
	lamp.Caption = "Lamp"
	lamp.Bistable = true
	lamp.Logo = touchkit.NewLogo(env, off, touchkit.LogoCopy)
	lamp.LogoOn = touchkit.NewLogo(env, on, touchkit.LogoCopy)
	if err := lamp.Logo.Background(lamp.Color); err != nil {
		return nil, err
	}
	if err := lamp.LogoOn.Background(th.ButtonOn); err != nil {
		return nil, err
	}
	lamp.Changed = func(lit bool) {
		if lit {
			d.panel.Println("Lamp on")
		} else {
			d.panel.Println("Lamp off")
		}
	}

	for _, g := range []*touchkit.ButtonGroup{d.colors, d.action} {
		if _, err := d.scr.Stack.AddGroup(g); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// startKeyboard hides the button rows and asks for a name.
func (d *demo) startKeyboard() {
	d.colors.Hide()
	d.action.Hide()
	d.scr.Stack.StartKeyboard("Name", touchkit.KeySetMajuscule)
	d.scr.Stack.Draw()
}

// check takes the name once the keyboard is confirmed, and brings back the button rows.
func (d *demo) check() {
	ready, err := d.scr.Stack.KeyboardReady()
	if err != nil || !ready {
		return
	}
	text, err := d.scr.Stack.TakeKeyboard()
	if err != nil {
		d.scr.Env.Log.Error("taking keyboard", "error", err)
		return
	}
	d.scr.Env.Log.Info("name entered", "name", text)
	d.colors.Show()
	d.action.Show()
	d.panel.Println("Hello, " + text)
	d.scr.Draw()
}

// tap presses and releases at p, as a touch controller without sampler would.
func (d *demo) tap(p image.Point) {
	d.input.SetCaption(fmt.Sprintf("%d,%d", p.X, p.Y))
	d.scr.Trigger.Arm(p)
	d.scr.Poll()
	d.check()
}

// tick keeps the clock current and checks the keyboard on the main loop, until ctx is done.
func (d *demo) tick(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if s := now.Format("15:04:05"); s != d.clock.Caption() {
				d.clock.SetCaption(s)
			}
			select {
			case d.scr.Call <- d.check:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
