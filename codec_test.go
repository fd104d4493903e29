package comp40

import (
	"bytes"
	"testing"

	"github.com/bodgit/comp40/codeword"
	"github.com/bodgit/comp40/colorspace"
	"github.com/bodgit/comp40/ppm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(width, height, denominator int, c ppm.RGB) *ppm.Image {
	m := ppm.New(width, height, denominator)
	for i := range m.Pix {
		m.Pix[i] = c
	}
	return m
}

func gradient(width, height int) *ppm.Image {
	m := ppm.New(width, height, 255)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetRGB(x, y, ppm.RGB{
				R: uint16(80 + 4*x),
				G: uint16(90 + 2*y),
				B: uint16(100 + x + y),
			})
		}
	}
	return m
}

func TestEncodeGray(t *testing.T) {
	c := Encode(fill(2, 2, 200, ppm.RGB{R: 100, G: 100, B: 100}))

	assert.Equal(t, 2, c.Width)
	assert.Equal(t, 2, c.Height)
	require.Len(t, c.Words, 1)

	cw := codeword.Unpack(c.Words[0])
	assert.Equal(t, uint8(32), cw.A)
	assert.Equal(t, int8(0), cw.B)
	assert.Equal(t, int8(0), cw.C)
	assert.Equal(t, int8(0), cw.D)

	m, err := c.Decode()
	require.NoError(t, err)
	assert.Equal(t, colorspace.Denominator, m.Denominator)
	for _, p := range m.Pix {
		assert.InDelta(t, 100, p.R, 6)
		assert.InDelta(t, 100, p.G, 6)
		assert.InDelta(t, 100, p.B, 6)
	}
}

func TestEncodeTrim(t *testing.T) {
	m := gradient(5, 3)

	b := new(bytes.Buffer)
	require.NoError(t, Compress(b, m))
	assert.True(t, bytes.HasPrefix(b.Bytes(), []byte(magic+"4 2\n")))
	assert.Equal(t, len(magic)+len("4 2\n")+2*wordSize, b.Len())

	// Trimming drops the last column and row, the rest must be untouched
	even := ppm.New(4, 2, 255)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			even.SetRGB(x, y, m.RGBAt(x, y))
		}
	}
	assert.Equal(t, Encode(even), Encode(m))
}

func TestEncodeTooSmall(t *testing.T) {
	for _, m := range []*ppm.Image{
		ppm.New(0, 0, 255),
		ppm.New(1, 1, 255),
		ppm.New(1, 8, 255),
	} {
		c := Encode(m)
		assert.Equal(t, 0, c.Width*c.Height)
		assert.Len(t, c.Words, 0)

		d, err := c.Decode()
		require.NoError(t, err)
		assert.Len(t, d.Pix, 0)
	}
}

func TestRoundTrip(t *testing.T) {
	m := gradient(8, 6)

	b := new(bytes.Buffer)
	require.NoError(t, Compress(b, m))

	d, err := Decompress(b)
	require.NoError(t, err)

	assert.Equal(t, 8, d.Width)
	assert.Equal(t, 6, d.Height)
	assert.Equal(t, colorspace.Denominator, d.Denominator)

	rms, err := Diff(m, d)
	require.NoError(t, err)
	assert.True(t, rms < 0.05, "rms difference %f", rms)
}

func TestRecompress(t *testing.T) {
	// A second generation loses far less than the first
	m := gradient(8, 6)

	first, err := Encode(m).Decode()
	require.NoError(t, err)

	second, err := Encode(first).Decode()
	require.NoError(t, err)

	rms, err := Diff(first, second)
	require.NoError(t, err)
	assert.True(t, rms < 0.03, "rms difference %f", rms)
}

func TestDecodeWordCount(t *testing.T) {
	c := &Compressed{Width: 4, Height: 2, Words: []uint32{0}}
	_, err := c.Decode()
	assert.Equal(t, ErrWordCount, err)
}

func TestDecompressError(t *testing.T) {
	_, err := Decompress(bytes.NewBufferString("P6\n2 2\n255\n"))
	assert.Error(t, err)
}
