package touchkit

import (
	"fmt"
	"image"
	"log/slog"
)

// MaxGroups is the maximum number of button groups in a Stack.
const MaxGroups = 5

// Stack holds the button groups, the optional keyboard and the optional panel of a screen, and routes touches to them.
// Button groups come first, then the keyboard, then the panel. The first widget containing the touch point gets it.
type Stack struct {
	Base

	Groups [MaxGroups]*ButtonGroup
	Panel  *ScrollPanel

	env      *Env
	keyboard *Keyboard
	touched  Widget // widget that got the last Touch, until Untouch
}

var _ Widget = &Stack{}

// NewStack returns an active, empty stack.
func NewStack(env *Env) *Stack {
	s := &Stack{env: env}
	s.Show()
	return s
}

// AddGroup puts g in the first free slot and returns the slot.
func (s *Stack) AddGroup(g *ButtonGroup) (int, error) {
	for i, o := range s.Groups {
		if o == nil {
			s.Groups[i] = g
			return i, nil
		}
	}
	return -1, fmt.Errorf("adding button group, max %d: %w", MaxGroups, ErrCapacity)
}

// target returns the widget that gets a touch at p, or nil.
func (s *Stack) target(p image.Point) Widget {
	for _, g := range s.Groups {
		if g != nil && g.Active() && p.In(g.Rect()) {
			return g
		}
	}
	if kb := s.keyboard; kb != nil && kb.Active() && p.In(kb.Rect()) {
		return kb
	}
	if s.Panel != nil && s.Panel.Active() && p.In(s.Panel.Rect()) {
		return s.Panel
	}
	return nil
}

func (s *Stack) Touch(p image.Point) {
	if !s.active {
		return
	}
	w := s.target(p)
	s.touched = w
	if w == nil {
		s.env.Log.Debug("touch outside widgets", slog.Int("x", p.X), slog.Int("y", p.Y))
		return
	}
	w.Touch(p)
}

// Untouch releases the widget that got the touch, even if a callback changed the routing in between.
func (s *Stack) Untouch(p image.Point) {
	if !s.active {
		return
	}
	w := s.touched
	s.touched = nil
	if w == nil {
		w = s.target(p)
	}
	if w != nil {
		w.Untouch(p)
	}
}

// Draw draws the panel around the docked groups and the keyboard, then the groups, then the keyboard.
func (s *Stack) Draw() {
	if !s.active {
		return
	}
	if s.Panel != nil && s.Panel.Active() {
		s.clipPanel()
		s.Panel.Draw()
	}
	for _, g := range s.Groups {
		if g != nil {
			g.Draw()
		}
	}
	if s.keyboard != nil {
		s.keyboard.Draw()
	}
	s.displayed = true
}

// panelRange returns the part of the panel not covered by active groups or the keyboard.
func (s *Stack) panelRange() (from, until int) {
	from, until = s.Panel.Window()
	cover := func(r image.Rectangle) {
		switch {
		case r.Min.Y <= from && r.Max.Y > from:
			from = r.Max.Y
		case r.Min.Y > from && r.Min.Y < until:
			until = r.Min.Y
		}
	}
	for _, g := range s.Groups {
		if g != nil && g.Active() {
			cover(g.Rect())
		}
	}
	if s.keyboard != nil && s.keyboard.Active() {
		cover(s.keyboard.Rect())
	}
	return
}

// clipPanel keeps the panel's own drawing, e.g. on overflow, out of the groups and the keyboard.
func (s *Stack) clipPanel() {
	if s.Panel != nil {
		s.Panel.SetClip(s.panelRange())
	}
}

// StartKeyboard creates the keyboard if needed, starts it with banner and page set, and makes it active.
// The keyboard is drawn if the stack is displayed.
func (s *Stack) StartKeyboard(banner string, set KeySet) *Keyboard {
	if s.keyboard == nil {
		s.keyboard = NewKeyboard(s.env, s.env.Theme.Height-s.env.Theme.KeyboardHeight)
	}
	s.keyboard.Start(banner, set)
	s.keyboard.Show()
	s.clipPanel()
	if s.displayed {
		s.keyboard.Draw()
	}
	return s.keyboard
}

// Keyboard returns the keyboard, if any.
func (s *Stack) Keyboard() (*Keyboard, bool) {
	return s.keyboard, s.keyboard != nil
}

// KeyboardReady returns whether the keyboard's text is complete. Without keyboard, ErrNoKeyboard is returned.
func (s *Stack) KeyboardReady() (bool, error) {
	if s.keyboard == nil {
		return false, ErrNoKeyboard
	}
	return s.keyboard.Available(), nil
}

// TakeKeyboard returns the keyboard's text and removes the keyboard. Without keyboard, ErrNoKeyboard is returned.
// If the stack is displayed, it is redrawn to cover the keyboard's area.
func (s *Stack) TakeKeyboard() (string, error) {
	kb := s.keyboard
	if kb == nil {
		return "", ErrNoKeyboard
	}
	s.keyboard = nil
	kb.Hide()
	s.clipPanel()
	if s.displayed {
		s.env.Surface.FillRect(kb.Rect(), s.env.Theme.Background)
		s.Draw()
	}
	return kb.Text(), nil
}
