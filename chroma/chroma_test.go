package chroma

import (
	"testing"

	"github.com/bodgit/comp40/colorspace"
	"github.com/stretchr/testify/assert"
)

func TestIndexOf(t *testing.T) {
	tables := []struct {
		x     float32
		index uint8
	}{
		{-0.5, 0},
		{-0.35, 0},
		{-0.3, 0},
		{-0.26, 1},
		{-0.2, 1},
		{-0.012, 7},
		{0, 8},
		{0.012, 8},
		{0.09, 12},
		{0.3, 15},
		{0.5, 15},
	}

	for _, table := range tables {
		assert.Equal(t, table.index, IndexOf(table.x), "%v", table.x)
	}
}

func TestIndexOfEveryEntry(t *testing.T) {
	for i := uint8(0); i < Size; i++ {
		assert.Equal(t, i, IndexOf(ValueOf(i)))
	}
}

func TestValueOfIsMonotonic(t *testing.T) {
	for i := uint8(1); i < Size; i++ {
		assert.True(t, ValueOf(i-1) < ValueOf(i))
	}
}

func TestQuantize(t *testing.T) {
	b := colorspace.Block{
		{Pb: 0.1, Pr: -0.4},
		{Pb: 0.1, Pr: -0.4},
		{Pb: 0.2, Pr: -0.4},
		{Pb: 0.2, Pr: -0.4},
	}

	pb, pr := Quantize(b)
	assert.Equal(t, uint8(13), pb)
	assert.Equal(t, uint8(0), pr)

	pbv, prv := Dequantize(pb, pr)
	assert.Equal(t, float32(0.15), pbv)
	assert.Equal(t, float32(-0.35), prv)
}

func TestQuantizeClampsAverage(t *testing.T) {
	b := colorspace.Block{
		{Pb: 2, Pr: -2},
		{Pb: 2, Pr: -2},
		{Pb: 2, Pr: -2},
		{Pb: 2, Pr: -2},
	}

	pb, pr := Quantize(b)
	assert.Equal(t, uint8(Size-1), pb)
	assert.Equal(t, uint8(0), pr)
}
