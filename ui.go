package touchkit

import (
	"image"
)

// Widget is implemented by the touch targets of a Stack: ButtonGroup, Keyboard, ScrollPanel, and Stack itself.
// The set is closed, other packages cannot add widgets.
type Widget interface {
	// Touch reacts on a touch at p. Points outside the widget are ignored.
	Touch(p image.Point)
	// Untouch is called when the touch at p is released.
	Untouch(p image.Point)
	// Draw draws the widget if it is active.
	Draw()

	// Active returns whether the widget takes part in touch dispatch and drawing.
	Active() bool

	widget()
}

// Base holds the state common to all widgets.
// A widget is active when it can be displayed and touched, displayed once it has been drawn.
type Base struct {
	active    bool
	displayed bool
}

func (b *Base) widget() {}

func (b *Base) Active() bool {
	return b.active
}

func (b *Base) Displayed() bool {
	return b.displayed
}

// Undisplay marks the widget as no longer on screen, e.g. after it was drawn over.
func (b *Base) Undisplay() {
	b.displayed = false
}

// Show makes the widget active. It is not drawn until Draw is called.
func (b *Base) Show() {
	b.active = true
}

// Hide makes the widget inactive and not displayed. Its pixels are not erased.
func (b *Base) Hide() {
	b.active = false
	b.displayed = false
}
