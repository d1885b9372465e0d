// Package touch reads touch controller samples and hands them to a touchkit screen.
//
// Sources run in their own goroutine and only update a Contact. The screen's main loop
// samples the Contact and does all dispatching and drawing.
package touch

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/mjl-/touchkit"
)

// ErrSyntax is returned for a sample line that is neither a point nor a release.
var ErrSyntax = errors.New("bad touch sample")

// ParseLine parses a sample line. "x,y" is a contact at x,y. "up", "-" and the empty line are a release.
func ParseLine(s string) (p image.Point, down bool, err error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "up":
		return image.Point{}, false, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, false, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	// Coordinates are 16 bits, like the packed Contact state.
	x, errx := strconv.ParseUint(strings.TrimSpace(xs), 10, 16)
	y, erry := strconv.ParseUint(strings.TrimSpace(ys), 10, 16)
	if errx != nil || erry != nil {
		return image.Point{}, false, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	return image.Pt(int(x), int(y)), true, nil
}

const (
	down     = 1 << 32
	maxCoord = 1<<16 - 1
)

// Contact is the current state of the touch controller, safe for use by one writer and any number of readers.
// It implements touchkit.Sampler.
type Contact struct {
	// Armed on each transition from released to touched, if set.
	Trigger *touchkit.Trigger

	v atomic.Uint64
}

var _ touchkit.Sampler = &Contact{}

// Set records a touch at p.
func (c *Contact) Set(p image.Point) {
	old := c.v.Swap(down | uint64(uint16(p.X))<<16 | uint64(uint16(p.Y)))
	if old&down == 0 && c.Trigger != nil {
		c.Trigger.Arm(p)
	}
}

func (c *Contact) Release() {
	c.v.Store(0)
}

// Sample returns the touched point, or false if released.
func (c *Contact) Sample() (image.Point, bool) {
	v := c.v.Load()
	if v&down == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(uint16(v>>16)), int(uint16(v))), true
}

// Apply sets or releases the contact as parsed from a line.
func (c *Contact) Apply(line string) error {
	p, isDown, err := ParseLine(line)
	if err != nil {
		return err
	}
	if isDown {
		c.Set(p)
	} else {
		c.Release()
	}
	return nil
}
