package touchkit

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// MaxStatus is the maximum number of items in a StatusBar.
const MaxStatus = 4

// StatusItem is a "label: caption" pair in the status bar. The caption is drawn in the OK or fail color depending on State.
// The setters may be called from any goroutine; they mark the item modified for the next StatusBar.Refresh.
type StatusItem struct {
	env      *Env
	mu       sync.Mutex
	label    string
	caption  string
	color    Color
	state    bool
	at       int
	drawn    int // width at last draw
	modified atomic.Bool
}

// NewStatusItem returns an item for use in a StatusBar, positioned at x.
func NewStatusItem(env *Env, label, caption string, x int) *StatusItem {
	return &StatusItem{
		env:     env,
		label:   label,
		caption: caption,
		color:   env.Theme.Status,
		at:      x,
	}
}

func (it *StatusItem) SetCaption(s string) {
	it.mu.Lock()
	it.caption = s
	it.mu.Unlock()
	it.modified.Store(true)
}

func (it *StatusItem) SetLabel(s string) {
	it.mu.Lock()
	it.label = s
	it.mu.Unlock()
	it.modified.Store(true)
}

// SetColor sets the color of the label.
func (it *StatusItem) SetColor(c Color) {
	it.mu.Lock()
	it.color = c
	it.mu.Unlock()
	it.modified.Store(true)
}

// SetState sets the health flag: true draws the caption in the OK color, false in the fail color.
func (it *StatusItem) SetState(ok bool) {
	it.mu.Lock()
	it.state = ok
	it.mu.Unlock()
	it.modified.Store(true)
}

func (it *StatusItem) Caption() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.caption
}

func (it *StatusItem) Label() string {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.label
}

func (it *StatusItem) State() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.state
}

// Modified returns whether the item changed since it was last drawn.
func (it *StatusItem) Modified() bool {
	return it.modified.Load()
}

// At returns the x coordinate of the item.
func (it *StatusItem) At() int {
	return it.at
}

func (it *StatusItem) SetAt(x int) {
	it.at = x
}

func (it *StatusItem) texts() (label, caption string) {
	label = it.label
	if label != "" {
		label += ": "
	}
	return label, it.caption
}

// Width returns the width of the item's text, plus padding on both sides.
func (it *StatusItem) Width() int {
	it.mu.Lock()
	label, caption := it.texts()
	it.mu.Unlock()
	f := it.env.Theme.StatusFont
	return it.env.Surface.StringWidth(label, f) + it.env.Surface.StringWidth(caption, f) + 2*it.env.Theme.Pad
}

// Draw draws the item on background bg and clears the modified flag.
// The area drawn by the previous draw is erased as well.
func (it *StatusItem) Draw(bg Color) {
	it.modified.Store(false)

	it.mu.Lock()
	label, caption := it.texts()
	color, state := it.color, it.state
	it.mu.Unlock()

	th := it.env.Theme
	s := it.env.Surface
	f := th.StatusFont
	lw := s.StringWidth(label, f)
	w := lw + s.StringWidth(caption, f) + 2*th.Pad
	s.FillRect(rect(it.at, 0, max(w, it.drawn), th.StatusHeight), bg)
	it.drawn = w

	y := (th.StatusHeight - f.Height) / 2
	if label != "" {
		s.DrawText(image.Pt(it.at+th.Pad, y), label, f, color)
	}
	capColor := th.StatusFail
	if state {
		capColor = th.StatusOK
	}
	s.DrawText(image.Pt(it.at+th.Pad+lw, y), caption, f, capColor)
}

// StatusBar is the row of status items at the top of the screen. It is always visible.
type StatusBar struct {
	Color Color // Background.
	Items [MaxStatus]*StatusItem

	env *Env
}

// NewStatusBar returns an empty status bar.
func NewStatusBar(env *Env) *StatusBar {
	return &StatusBar{
		Color: env.Theme.StatusBar,
		env:   env,
	}
}

// Add appends an item with label and caption.
func (b *StatusBar) Add(label, caption string) (*StatusItem, error) {
	for i, it := range b.Items {
		if it == nil {
			it = NewStatusItem(b.env, label, caption, 0)
			b.Items[i] = it
			return it, nil
		}
	}
	return nil, fmt.Errorf("adding status %q, max %d: %w", label, MaxStatus, ErrCapacity)
}

// Rect returns the area of the bar.
func (b *StatusBar) Rect() image.Rectangle {
	return rect(0, 0, b.env.Theme.Width, b.env.Theme.StatusHeight)
}

// Draw redraws the whole bar, packing the items from left to right.
func (b *StatusBar) Draw() {
	b.env.Surface.FillRect(b.Rect(), b.Color)
	x := 0
	for _, it := range b.Items {
		if it == nil {
			continue
		}
		it.at = x
		it.drawn = 0
		it.Draw(b.Color)
		x += it.drawn
	}
}

// Refresh redraws the modified items only, and returns how many were drawn.
// Items keep their position: after a change that alters an item's width, call Draw instead.
func (b *StatusBar) Refresh() int {
	n := 0
	for _, it := range b.Items {
		if it != nil && it.modified.Load() {
			it.Draw(b.Color)
			n++
		}
	}
	return n
}
