package touchkit

import (
	"image"
	"log/slog"
	"unicode/utf8"
)

const (
	KeyCols = 10
	KeyRows = 4
)

// KeySet is a page of the keyboard.
type KeySet int

const (
	KeySetMixed KeySet = iota // digits and capitals
	KeySetMajuscule
	KeySetNumeric
	KeySetMinuscule
)

var keySetNames = [...]string{
	KeySetMixed:     "1A",
	KeySetMajuscule: "ABC",
	KeySetNumeric:   "123",
	KeySetMinuscule: "abc",
}

func (s KeySet) String() string {
	if s < 0 || int(s) >= len(keySetNames) {
		return "?"
	}
	return keySetNames[s]
}

// next returns the page the mode key switches to.
func (s KeySet) next() KeySet {
	switch s {
	case KeySetMajuscule:
		return KeySetMinuscule
	case KeySetMinuscule:
		return KeySetNumeric
	case KeySetNumeric:
		return KeySetMixed
	}
	return KeySetMajuscule
}

// The first three rows of each page, one glyph per key.
var keyPages = [...][KeyRows - 1]string{
	KeySetMixed:     {"1234567890", "QWERTYUIOP", "ASDFGHJKL."},
	KeySetMajuscule: {"QWERTYUIOP", "ASDFGHJKL'", "ZXCVBNM,;?"},
	KeySetNumeric:   {"1234567890", "+-*/=%()<>", "!#$&\"[]{}~"},
	KeySetMinuscule: {"qwertyuiop", "asdfghjkl'", "zxcvbnm,;?"},
}

type keyRole byte

const (
	keyChar = keyRole(iota)
	keyMode
	keyDelete
	keyConfirm
)

// Bottom row, the same on every page.
var controlRow = [KeyCols]struct {
	role    keyRole
	glyph   string
	caption string
}{
	{role: keyMode},
	{keyChar, "-", "-"},
	{keyChar, "@", "@"},
	{keyChar, " ", ""},
	{keyChar, " ", ""},
	{keyChar, " ", ""},
	{keyChar, ".", "."},
	{keyChar, "/", "/"},
	{keyDelete, "", "Del"},
	{keyConfirm, "", "OK"},
}

// Keyboard is a grid of KeyCols x KeyRows keys below a banner line showing the typed text.
// Switching pages changes captions and colors of the existing keys.
type Keyboard struct {
	Base

	Banner string // Shown before the typed text.
	Color  Color  // Banner background while typing.

	env    *Env
	top    int
	keys   [KeyCols * KeyRows]*Button
	roles  [KeyCols * KeyRows]keyRole
	glyphs [KeyCols * KeyRows]string
	set    KeySet
	text   string
	ready  bool
}

var _ Widget = &Keyboard{}

// NewKeyboard returns an inactive keyboard with its banner at y coordinate top.
func NewKeyboard(env *Env, top int) *Keyboard {
	th := env.Theme
	kb := &Keyboard{
		Color: th.Banner,
		env:   env,
		top:   top,
	}
	w := th.Width / KeyCols
	h := (th.KeyboardHeight - th.BannerHeight) / KeyRows
	keysTop := top + th.BannerHeight
	for i := range kb.keys {
		row, col := i/KeyCols, i%KeyCols
		b := NewButton(env, rect(col*w+1, keysTop+row*h+1, w-2, h-2))
		b.Font = &th.KeyFont
		b.Action = func() { kb.press(i) }
		kb.keys[i] = b
	}
	kb.SetKeys(KeySetMajuscule)
	return kb
}

func (kb *Keyboard) Top() int {
	return kb.top
}

// Rect returns the area of banner and keys.
func (kb *Keyboard) Rect() image.Rectangle {
	return rect(0, kb.top, kb.env.Theme.Width, kb.env.Theme.KeyboardHeight)
}

func (kb *Keyboard) bannerRect() image.Rectangle {
	return rect(0, kb.top, kb.env.Theme.Width, kb.env.Theme.BannerHeight)
}

// Key returns the key at row and col.
func (kb *Keyboard) Key(row, col int) *Button {
	return kb.keys[row*KeyCols+col]
}

// KeySet returns the current page.
func (kb *Keyboard) KeySet() KeySet {
	return kb.set
}

// Start resets the typed text, sets the banner and switches to page set.
func (kb *Keyboard) Start(banner string, set KeySet) {
	kb.text = ""
	kb.ready = false
	kb.Banner = banner
	kb.SetKeys(set)
	if kb.displayed {
		kb.drawBanner()
	}
}

// Available returns whether the OK key was hit since Start.
func (kb *Keyboard) Available() bool {
	return kb.ready
}

// Text returns the text typed since Start.
func (kb *Keyboard) Text() string {
	return kb.text
}

// SetKeys switches to page set, redrawing the keys if the keyboard is displayed.
// Unknown pages select KeySetMajuscule.
func (kb *Keyboard) SetKeys(set KeySet) {
	if set < 0 || int(set) >= len(keyPages) {
		set = KeySetMajuscule
	}
	kb.set = set
	th := kb.env.Theme
	for row, glyphs := range keyPages[set] {
		col := 0
		for _, c := range glyphs {
			i := row*KeyCols + col
			kb.roles[i] = keyChar
			kb.glyphs[i] = string(c)
			kb.keys[i].Caption = string(c)
			kb.keys[i].Color = th.Keys[set]
			col++
		}
	}
	base := (KeyRows - 1) * KeyCols
	for col, k := range controlRow {
		i := base + col
		kb.roles[i] = k.role
		kb.glyphs[i] = k.glyph
		kb.keys[i].Caption = k.caption
		kb.keys[i].Color = th.Keys[set]
		if k.role != keyChar {
			kb.keys[i].Color = th.KeyControl
		}
	}
	kb.keys[base].Caption = set.next().String()
	if kb.displayed {
		kb.drawKeys()
	}
}

func (kb *Keyboard) press(i int) {
	switch kb.roles[i] {
	case keyChar:
		if kb.ready {
			return
		}
		kb.text += kb.glyphs[i]
	case keyDelete:
		if kb.ready || kb.text == "" {
			return
		}
		_, n := utf8.DecodeLastRuneInString(kb.text)
		kb.text = kb.text[:len(kb.text)-n]
	case keyConfirm:
		kb.ready = true
	case keyMode:
		kb.env.Log.Debug("keyboard page", slog.String("from", kb.set.String()), slog.String("to", kb.set.next().String()))
		kb.SetKeys(kb.set.next())
		return
	}
	if kb.displayed {
		kb.drawBanner()
	}
}

// Hide makes the keyboard inactive and releases its keys.
func (kb *Keyboard) Hide() {
	kb.Base.Hide()
	for _, k := range kb.keys {
		k.pressed = false
	}
}

func (kb *Keyboard) Touch(p image.Point) {
	if !kb.active {
		return
	}
	if i := first(kb.keys[:], p); i >= 0 {
		kb.keys[i].Touch()
	}
}

func (kb *Keyboard) Untouch(p image.Point) {
	if !kb.active {
		return
	}
	if i := first(kb.keys[:], p); i >= 0 {
		kb.keys[i].Untouch()
	}
}

func (kb *Keyboard) Draw() {
	if !kb.active {
		return
	}
	kb.env.Surface.FillRect(kb.Rect(), kb.env.Theme.Background)
	kb.drawBanner()
	kb.drawKeys()
	kb.displayed = true
}

func (kb *Keyboard) drawBanner() {
	th := kb.env.Theme
	r := kb.bannerRect()
	bg := kb.Color
	s := kb.text
	if kb.Banner != "" {
		s = kb.Banner + ": " + s
	}
	if kb.ready {
		bg = th.BannerReady
	} else {
		s += "_"
	}
	kb.env.Surface.FillRect(r, bg)
	kb.env.Surface.DrawText(image.Pt(th.Pad, r.Min.Y+(r.Dy()-th.Font.Height)/2), s, th.Font, th.BannerText)
}

func (kb *Keyboard) drawKeys() {
	for _, k := range kb.keys {
		k.Draw()
	}
}
