/*
Package bitpack implements reading and writing signed and unsigned bit
fields within a 64-bit word.

A field is described by its width in bits and the offset of its least
significant bit. Widths may be anything from 0 to 64 inclusive however the
field must fit within the word, so width plus offset may not exceed 64. Asking
for a field outside of those bounds is a programming error and panics.
*/
package bitpack

import (
	"errors"
	"fmt"
)

const wordSize = 64

var (
	// ErrOverflow is returned when a value does not fit in the requested
	// number of bits.
	ErrOverflow = errors.New("bitpack: overflow packing bits")
	// ErrInvalidWidth is the panic value used when a field does not fit
	// within a 64-bit word.
	ErrInvalidWidth = errors.New("bitpack: invalid field width")
)

func check(width, lsb uint) {
	if width > wordSize || width+lsb > wordSize {
		panic(fmt.Errorf("%w: width %d, lsb %d", ErrInvalidWidth, width, lsb))
	}
}

// Returns a mask of the lowest width bits
func mask(width uint) uint64 {
	if width == 0 {
		return 0
	}
	return ^uint64(0) >> (wordSize - width)
}

// FitsU reports whether n can be represented in width unsigned bits.
func FitsU(n uint64, width uint) bool {
	check(width, 0)

	switch width {
	case 0:
		return false
	case wordSize:
		return true
	default:
		return n>>width == 0
	}
}

// FitsS reports whether n can be represented in width bits using two's
// complement.
func FitsS(n int64, width uint) bool {
	check(width, 0)

	switch width {
	case 0:
		return false
	case wordSize:
		return true
	default:
		limit := int64(1) << (width - 1)
		return n >= -limit && n < limit
	}
}

// GetU returns the unsigned field of width bits starting at lsb.
func GetU(word uint64, width, lsb uint) uint64 {
	check(width, lsb)

	if width == 0 {
		return 0
	}
	return word >> lsb & mask(width)
}

// GetS returns the field of width bits starting at lsb, sign-extended from
// its most significant bit.
func GetS(word uint64, width, lsb uint) int64 {
	check(width, lsb)

	if width == 0 {
		return 0
	}
	shift := wordSize - width
	return int64(GetU(word, width, lsb)<<shift) >> shift
}

// NewU returns word with the field of width bits starting at lsb replaced by
// value. ErrOverflow is returned if value does not fit.
func NewU(word uint64, width, lsb uint, value uint64) (uint64, error) {
	check(width, lsb)

	if !FitsU(value, width) {
		return 0, fmt.Errorf("%w: %d in %d unsigned bits", ErrOverflow, value, width)
	}
	return replace(word, width, lsb, value), nil
}

// NewS returns word with the field of width bits starting at lsb replaced by
// the two's complement representation of value. ErrOverflow is returned if
// value does not fit.
func NewS(word uint64, width, lsb uint, value int64) (uint64, error) {
	check(width, lsb)

	if !FitsS(value, width) {
		return 0, fmt.Errorf("%w: %d in %d signed bits", ErrOverflow, value, width)
	}
	return replace(word, width, lsb, uint64(value)&mask(width)), nil
}

func replace(word uint64, width, lsb uint, value uint64) uint64 {
	m := mask(width) << lsb
	return word&^m | value<<lsb&m
}
