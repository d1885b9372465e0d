package touchkit

import (
	"errors"
)

var (
	// ErrCapacity is returned when more buttons, groups or status items are requested than fit.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrNoKeyboard is returned by the keyboard accessors of a Stack without a keyboard.
	ErrNoKeyboard = errors.New("no keyboard")

	// ErrReadOnly is returned when recoloring a read-only bitmap.
	ErrReadOnly = errors.New("bitmap is read-only")

	// ErrBitmapSize is returned for a bitmap whose pixels do not match its dimensions.
	ErrBitmapSize = errors.New("bitmap size mismatch")
)
