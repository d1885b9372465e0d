package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjl-/touchkit"
	"github.com/mjl-/touchkit/fb"
)

func center(r image.Rectangle) image.Point {
	return r.Min.Add(r.Max).Div(2)
}

func newTestDemo(t *testing.T) *demo {
	t.Helper()
	th := touchkit.DefaultTheme()
	d, err := newDemo(touchkit.NewEnv(fb.New(th.Width, th.Height), th), nil)
	require.NoError(t, err)
	d.scr.Draw()
	return d
}

func TestDemoButtons(t *testing.T) {
	d := newTestDemo(t)

	p := center(d.action.Buttons[0].Rect())
	d.tap(p)
	d.tap(p)
	assert.Equal(t, []string{"Hello, world", "Hello, world"}, d.panel.Lines())
	assert.Equal(t, fmt.Sprintf("%d,%d", p.X, p.Y), d.input.Caption())

	d.tap(center(d.colors.Buttons[2].Rect()))
	assert.Equal(t, 2, d.colors.Selected())
	assert.Equal(t, touchkit.RGB(0xff, 0xff, 0x00), d.panel.TextColor)

	d.tap(center(d.action.Buttons[2].Rect()))
	assert.Empty(t, d.panel.Lines())

	d.tap(center(d.panel.Rect()))
	assert.Equal(t, []string{"panel touched"}, d.panel.Lines())
}

func TestDemoKeyboard(t *testing.T) {
	d := newTestDemo(t)

	d.tap(center(d.action.Buttons[1].Rect()))
	kb, ok := d.scr.Stack.Keyboard()
	require.True(t, ok)
	assert.False(t, d.action.Active())

	key := func(caption string) image.Point {
		for row := 0; row < touchkit.KeyRows; row++ {
			for col := 0; col < touchkit.KeyCols; col++ {
				if k := kb.Key(row, col); k.Caption == caption {
					return center(k.Rect())
				}
			}
		}
		t.Fatalf("no key %q", caption)
		return image.Point{}
	}
	d.tap(key("J"))
	d.tap(key("O"))
	assert.Equal(t, "JO", kb.Text())
	d.tap(key("OK"))

	_, ok = d.scr.Stack.Keyboard()
	assert.False(t, ok)
	assert.True(t, d.action.Active())
	assert.Equal(t, []string{"Hello, JO"}, d.panel.Lines())
}

func TestRender(t *testing.T) {
	th := touchkit.DefaultTheme()
	img, err := render(th, nil, []string{"up"})
	require.NoError(t, err)
	assert.Equal(t, th.Panel, img.At(th.Width/2, th.StatusHeight+1))

	_, err = render(th, nil, []string{"bogus"})
	assert.Error(t, err)
}

func TestDemoKeyboardReleasesName(t *testing.T) {
	d := newTestDemo(t)
	th := d.scr.Env.Theme
	name := d.action.Buttons[1]
	d.tap(center(name.Rect()))
	kb, ok := d.scr.Stack.Keyboard()
	require.True(t, ok)
	for _, caption := range []string{"J", "OK"} {
		for row := 0; row < touchkit.KeyRows; row++ {
			for col := 0; col < touchkit.KeyCols; col++ {
				if k := kb.Key(row, col); k.Caption == caption {
					d.tap(center(k.Rect()))
				}
			}
		}
	}
	require.True(t, d.action.Active())
	assert.False(t, name.Pressed())
	img := d.scr.Env.Surface.(*fb.Framebuffer)
	assert.Equal(t, th.Button, img.At(name.Rect().Min.X, name.Rect().Min.Y))
}

func TestDemoLamp(t *testing.T) {
	d := newTestDemo(t)
	th := d.scr.Env.Theme
	lamp := d.action.Buttons[3]
	img := d.scr.Env.Surface.(*fb.Framebuffer)
	r := lamp.Rect()
	corner := image.Pt(r.Min.X+(r.Dx()-th.LogoWidth)/2, r.Min.Y+2)
	mid := corner.Add(image.Pt(th.LogoWidth/2, th.LogoHeight/2))
	assert.Equal(t, th.Button, img.At(corner.X, corner.Y), "white blended into the button")

	d.tap(center(r))
	assert.True(t, lamp.State)
	assert.Equal(t, []string{"Lamp on"}, d.panel.Lines())
	assert.Equal(t, th.ButtonOn, img.At(corner.X, corner.Y))
	assert.Equal(t, touchkit.RGB(0xff, 0xff, 0x00), img.At(mid.X, mid.Y))

	d.tap(center(r))
	assert.False(t, lamp.State)
	assert.Equal(t, []string{"Lamp on", "Lamp off"}, d.panel.Lines())
}

func TestDemoLogoFile(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	bm, err := Config{Logo: path}.LoadLogo()
	require.NoError(t, err)
	bm2, err := Config{}.LoadLogo()
	require.NoError(t, err)
	assert.Nil(t, bm2)

	th := touchkit.DefaultTheme()
	d, err := newDemo(touchkit.NewEnv(fb.New(th.Width, th.Height), th), bm)
	require.NoError(t, err)
	lamp := d.action.Buttons[3]
	assert.Equal(t, image.Pt(20, 10), lamp.Logo.Size())
	// Transparent pixels read as white, so both copies took their button's color.
	assert.Equal(t, uint16(th.Button), lamp.Logo.Bitmap().Pix[0])
	assert.Equal(t, uint16(th.ButtonOn), lamp.LogoOn.Bitmap().Pix[0])
	assert.Equal(t, uint16(touchkit.White), bm.Pix[0], "copies leave the file's bitmap alone")
}
