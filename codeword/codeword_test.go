package codeword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackLayout(t *testing.T) {
	tables := []struct {
		cw   Codeword
		word uint32
	}{
		{Codeword{}, 0x00000000},
		{Codeword{Pr: 0xf}, 0x0000000f},
		{Codeword{Pb: 0xf}, 0x000000f0},
		{Codeword{D: -1}, 0x00003f00},
		{Codeword{C: -1}, 0x000fc000},
		{Codeword{B: -1}, 0x03f00000},
		{Codeword{A: 63}, 0xfc000000},
		{Codeword{A: 32, Pb: 7, Pr: 8}, 0x80000078},
		{Codeword{A: 1, B: 1, C: 1, D: 1, Pb: 1, Pr: 1}, 0x04104111},
	}

	for _, table := range tables {
		assert.Equal(t, table.word, table.cw.Pack(), "%+v", table.cw)
		assert.Equal(t, table.cw, Unpack(table.word), "%#08x", table.word)
	}
}

func TestRoundTrip(t *testing.T) {
	for a := 0; a <= 63; a += 7 {
		for b := -30; b <= 30; b += 5 {
			for c := -30; c <= 30; c += 6 {
				for d := -30; d <= 30; d += 10 {
					for i := 0; i <= 15; i += 3 {
						cw := Codeword{
							A:  uint8(a),
							B:  int8(b),
							C:  int8(c),
							D:  int8(d),
							Pb: uint8(i),
							Pr: uint8(15 - i),
						}
						assert.Equal(t, cw, Unpack(cw.Pack()))
					}
				}
			}
		}
	}
}

func TestPackOverflow(t *testing.T) {
	assert.Panics(t, func() { Codeword{A: 64}.Pack() })
	assert.Panics(t, func() { Codeword{B: 32}.Pack() })
	assert.Panics(t, func() { Codeword{D: -33}.Pack() })
	assert.Panics(t, func() { Codeword{Pb: 16}.Pack() })
}
