package comp40

import (
	"math"

	"github.com/bodgit/comp40/ppm"
)

// Diff returns the root mean square difference between a and b over the
// region where they overlap. Each channel is normalized by its image's
// denominator first so images of differing scale can be compared; the
// result is 0 for identical images and at most 1.
func Diff(a, b *ppm.Image) (float64, error) {
	width, height := minInt(a.Width, b.Width), minInt(a.Height, b.Height)
	if width == 0 || height == 0 {
		return 0, ErrEmptyImage
	}

	da, db := float64(a.Denominator), float64(b.Denominator)
	sq := func(x, y uint16) float64 {
		d := float64(x)/da - float64(y)/db
		return d * d
	}

	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ca, cb := a.RGBAt(x, y), b.RGBAt(x, y)
			sum += sq(ca.R, cb.R) + sq(ca.G, cb.G) + sq(ca.B, cb.B)
		}
	}

	return math.Sqrt(sum / float64(3*width*height)), nil
}
