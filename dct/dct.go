/*
Package dct implements the four point transform applied to the luma values of
a 2 by 2 block.

The forward transform produces an average brightness a, stored in 6 unsigned
bits, and three directional detail terms b, c and d. The detail terms are
clamped to ±0.3 and quantized to the 61 integers from -30 to 30 so they fit in
6 signed bits.
*/
package dct

import "math"

const (
	avgScale = 63

	detailLimit = 0.3
	detailSteps = 30
	// Integer steps per unit of luma detail
	detailScale = detailSteps / detailLimit
)

// Forward transforms the luma values of a block, given in block order, into
// its average and detail terms.
func Forward(y [4]float32) (a uint8, b, c, d int8) {
	y1, y2, y3, y4 := float64(y[0]), float64(y[1]), float64(y[2]), float64(y[3])

	avg := math.Round(avgScale * (y1 + y2 + y3 + y4) / 4)
	switch {
	case avg < 0:
		avg = 0
	case avg > avgScale:
		avg = avgScale
	}

	a = uint8(avg)
	b = Map((y4 + y3 - y2 - y1) / 4)
	c = Map((y4 - y3 + y2 - y1) / 4)
	d = Map((y4 - y3 - y2 + y1) / 4)
	return
}

// Inverse reconstructs the luma values of a block, in block order, from its
// average and detail terms.
func Inverse(a uint8, b, c, d int8) [4]float32 {
	av := float64(a) / avgScale
	bv, cv, dv := Unmap(b), Unmap(c), Unmap(d)

	return [4]float32{
		float32(av - bv - cv + dv),
		float32(av - bv + cv - dv),
		float32(av + bv - cv - dv),
		float32(av + bv + cv + dv),
	}
}

// Map clamps v to ±0.3 and scales it to the nearest integer in [-30, 30].
func Map(v float64) int8 {
	switch {
	case v > detailLimit:
		v = detailLimit
	case v < -detailLimit:
		v = -detailLimit
	}
	return int8(math.Round(-detailSteps + detailScale*(v+detailLimit)))
}

// Unmap returns the detail value represented by n.
func Unmap(n int8) float64 {
	return -detailLimit + (float64(n)+detailSteps)/detailScale
}
