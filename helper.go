package touchkit

import (
	"image"
)

func rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// first returns the index of the first button that is active and contains p, or -1.
func first(buttons []*Button, p image.Point) int {
	for i, b := range buttons {
		if b != nil && b.Active() && p.In(b.r) {
			return i
		}
	}
	return -1
}
