package touchkit

import (
	"context"
	"image"
	"log/slog"
	"time"
)

// Sampler is the touch controller of the display driver.
// Sample returns the point currently touched, or false if the screen is not touched.
type Sampler interface {
	Sample() (image.Point, bool)
}

// Screen is a display with a status bar and a stack of widgets, and the main loop feeding touches to them.
//
// Touches come from two sources. The Trigger is armed from an interrupt handler or reader goroutine on touch down,
// the Sampler reports whether the screen is still touched. Without Sampler, an armed touch is released in the
// same pass.
type Screen struct {
	Env       *Env
	Stack     *Stack
	StatusBar *StatusBar
	Trigger   Trigger
	Sampler   Sampler       // Optional.
	Interval  time.Duration // Between passes of Run. Default 20ms.

	// Functions sent here are run by Run on the main loop, between passes. For code that changes widgets
	// from other goroutines.
	Call chan func()

	down bool
	last image.Point
}

// NewScreen returns a screen with an empty stack and status bar.
func NewScreen(env *Env) *Screen {
	return &Screen{
		Env:       env,
		Stack:     NewStack(env),
		StatusBar: NewStatusBar(env),
		Interval:  20 * time.Millisecond,
		Call:      make(chan func(), 1),
	}
}

// Draw clears the screen and draws everything.
func (s *Screen) Draw() {
	s.Env.Surface.FillRect(s.Env.screen(), s.Env.Theme.Background)
	s.StatusBar.Draw()
	s.Stack.Draw()
	s.flush()
}

// Down returns whether a touch is in progress, and where it started.
func (s *Screen) Down() (image.Point, bool) {
	return s.last, s.down
}

func (s *Screen) press(p image.Point) {
	if s.down {
		s.release()
	}
	s.Env.Log.Debug("touch", slog.Int("x", p.X), slog.Int("y", p.Y))
	s.down = true
	s.last = p
	s.Stack.Touch(p)
}

func (s *Screen) release() {
	s.down = false
	s.Stack.Untouch(s.last)
}

// Poll runs one pass of the main loop: dispatch an armed touch, release a finished touch,
// refresh modified status items, flush the surface.
func (s *Screen) Poll() {
	if p, ok := s.Trigger.Take(); ok {
		s.press(p)
	}
	if s.Sampler == nil {
		if s.down {
			s.release()
		}
	} else {
		p, ok := s.Sampler.Sample()
		switch {
		case ok && !s.down:
			s.press(p)
		case !ok && s.down:
			s.release()
		}
	}
	s.StatusBar.Refresh()
	s.flush()
}

func (s *Screen) flush() {
	if f, ok := s.Env.Surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			s.Env.Log.Error("flush", slog.Any("err", err))
		}
	}
}

// Run draws the screen and polls until ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.Call:
			fn()
			s.flush()
		case <-ticker.C:
			s.Poll()
		}
	}
}
