package touchkit

import (
	"fmt"
	"image"
	"io"
	"os"
)

// ReadBitmap decodes an image from f and converts it to RGB565. The returned bitmap is ready for use in a Logo.
// Transparent pixels become White, so Logo.Background recolors them.
// Image formats must be registered by the caller, e.g. by importing image/png.
func ReadBitmap(f io.Reader) (*Bitmap, error) {
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image: %w", ErrBitmapSize)
	}
	pix := make([]uint16, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Premultiplied, so compositing over white adds the uncovered part.
			r, g, bl, a := img.At(x, y).RGBA()
			r, g, bl = r+0xffff-a, g+0xffff-a, bl+0xffff-a
			pix = append(pix, uint16(RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8))))
		}
	}
	return NewBitmap(b.Dx(), b.Dy(), pix)
}

// ReadBitmapPath is a convenience function that opens path and calls ReadBitmap.
func ReadBitmapPath(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBitmap(f)
}
