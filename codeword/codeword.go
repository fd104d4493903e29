/*
Package codeword implements the fixed-field representation of one 2 by 2
block of a COMP40 image and its packing into a 32-bit word.

From the least significant bit the word holds the Pr chroma index (4 bits),
the Pb chroma index (4 bits), then the signed d, c and b luma detail terms
(6 bits each) and finally the unsigned a luma average (6 bits).
*/
package codeword

import "github.com/bodgit/comp40/bitpack"

const (
	indexWidth  = 4
	detailWidth = 6
	avgWidth    = 6

	prLSB = 0
	pbLSB = prLSB + indexWidth
	dLSB  = pbLSB + indexWidth
	cLSB  = dLSB + detailWidth
	bLSB  = cLSB + detailWidth
	aLSB  = bLSB + detailWidth
)

// Codeword is the compressed form of one block.
type Codeword struct {
	A       uint8 // luma average, 0 to 63
	B, C, D int8  // luma detail, -30 to 30
	Pb, Pr  uint8 // chroma table indices, 0 to 15
}

// Pack returns the 32-bit word encoding cw. A field that does not fit its
// width means the producer broke its range guarantee so Pack panics.
func (cw Codeword) Pack() uint32 {
	var word uint64
	word = mustU(word, indexWidth, prLSB, uint64(cw.Pr))
	word = mustU(word, indexWidth, pbLSB, uint64(cw.Pb))
	word = mustS(word, detailWidth, dLSB, int64(cw.D))
	word = mustS(word, detailWidth, cLSB, int64(cw.C))
	word = mustS(word, detailWidth, bLSB, int64(cw.B))
	word = mustU(word, avgWidth, aLSB, uint64(cw.A))
	return uint32(word)
}

// Unpack returns the Codeword encoded in word.
func Unpack(word uint32) Codeword {
	w := uint64(word)
	return Codeword{
		A:  uint8(bitpack.GetU(w, avgWidth, aLSB)),
		B:  int8(bitpack.GetS(w, detailWidth, bLSB)),
		C:  int8(bitpack.GetS(w, detailWidth, cLSB)),
		D:  int8(bitpack.GetS(w, detailWidth, dLSB)),
		Pb: uint8(bitpack.GetU(w, indexWidth, pbLSB)),
		Pr: uint8(bitpack.GetU(w, indexWidth, prLSB)),
	}
}

func mustU(word uint64, width, lsb uint, value uint64) uint64 {
	w, err := bitpack.NewU(word, width, lsb, value)
	if err != nil {
		panic(err)
	}
	return w
}

func mustS(word uint64, width, lsb uint, value int64) uint64 {
	w, err := bitpack.NewS(word, width, lsb, value)
	if err != nil {
		panic(err)
	}
	return w
}
