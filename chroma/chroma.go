/*
Package chroma quantizes the averaged chroma of a block to a 4-bit index in a
fixed 16 entry table and back again.

The table values are fixed by the COMP40 format and must not change; they
are spaced more closely near zero where most chroma values fall.
*/
package chroma

import "github.com/bodgit/comp40/colorspace"

const (
	// Size is the number of entries in the chroma table.
	Size = 16

	limit = 0.5
)

var table = [Size]float32{
	-0.35, -0.20, -0.15, -0.10, -0.077, -0.055, -0.033, -0.011,
	0.011, 0.033, 0.055, 0.077, 0.10, 0.15, 0.20, 0.35,
}

// IndexOf returns the index of the table entry closest to x. Ties resolve
// to the higher index.
func IndexOf(x float32) uint8 {
	if x <= table[0] {
		return 0
	}
	if x >= table[Size-1] {
		return Size - 1
	}

	// Binary search keeping table[lo] <= x < table[hi]
	lo, hi := 0, Size-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if x < table[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}

	if x-table[lo] < table[hi]-x {
		return uint8(lo)
	}
	return uint8(hi)
}

// ValueOf returns the chroma value for index i.
func ValueOf(i uint8) float32 {
	return table[i]
}

// Quantize averages the Pb and Pr components of b and returns their table
// indices.
func Quantize(b colorspace.Block) (pb, pr uint8) {
	var pbSum, prSum float32
	for _, s := range b {
		pbSum += s.Pb
		prSum += s.Pr
	}
	return IndexOf(clamp(pbSum / 4)), IndexOf(clamp(prSum / 4))
}

// Dequantize returns the chroma values for a pair of table indices.
func Dequantize(pb, pr uint8) (float32, float32) {
	return ValueOf(pb), ValueOf(pr)
}

func clamp(v float32) float32 {
	switch {
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	default:
		return v
	}
}
