package comp40

import (
	"io"

	"github.com/bodgit/comp40/chroma"
	"github.com/bodgit/comp40/codeword"
	"github.com/bodgit/comp40/colorspace"
	"github.com/bodgit/comp40/dct"
	"github.com/bodgit/comp40/ppm"
)

// Drop the last column and/or row so both dimensions are even
func trim(m *ppm.Image) *ppm.Image {
	width, height := m.Width&^1, m.Height&^1
	if width == m.Width && height == m.Height {
		return m
	}

	dst := ppm.New(width, height, m.Denominator)
	for y := 0; y < height; y++ {
		copy(dst.Pix[y*width:(y+1)*width], m.Pix[y*m.Width:])
	}
	return dst
}

// Encode compresses m. Odd dimensions are trimmed to the next even size
// down.
func Encode(m *ppm.Image) *Compressed {
	m = trim(m)

	plane := colorspace.Convert(m)

	c := &Compressed{
		Width:  m.Width,
		Height: m.Height,
		Words:  make([]uint32, 0, (m.Width/2)*(m.Height/2)),
	}

	for y := 0; y < plane.Height; y += 2 {
		for x := 0; x < plane.Width; x += 2 {
			block := plane.Block(x, y)

			var cw codeword.Codeword
			cw.Pb, cw.Pr = chroma.Quantize(block)
			cw.A, cw.B, cw.C, cw.D = dct.Forward(block.Luma())

			c.Words = append(c.Words, cw.Pack())
		}
	}

	return c
}

// Decode reconstructs the image held in c. The result always has a
// denominator of colorspace.Denominator.
func (c *Compressed) Decode() (*ppm.Image, error) {
	if len(c.Words) != c.blocks() {
		return nil, ErrWordCount
	}

	plane := colorspace.NewPlane(c.Width, c.Height)

	i := 0
	for y := 0; y < plane.Height; y += 2 {
		for x := 0; x < plane.Width; x += 2 {
			cw := codeword.Unpack(c.Words[i])
			i++

			pb, pr := chroma.Dequantize(cw.Pb, cw.Pr)
			luma := dct.Inverse(cw.A, cw.B, cw.C, cw.D)

			var block colorspace.Block
			for j := range block {
				block[j] = colorspace.YPbPr{Y: luma[j], Pb: pb, Pr: pr}
			}
			plane.SetBlock(x, y, block)
		}
	}

	return plane.Image(), nil
}

// Compress writes m to w in COMP40 format.
func Compress(w io.Writer, m *ppm.Image) error {
	_, err := Encode(m).WriteTo(w)
	return err
}

// Decompress reads a COMP40 image from r and returns the reconstructed
// pixels.
func Decompress(r io.Reader) (*ppm.Image, error) {
	c, err := ReadCompressed(r)
	if err != nil {
		return nil, err
	}
	return c.Decode()
}
