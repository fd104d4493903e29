package colorspace

import (
	"math/rand"
	"testing"

	"github.com/bodgit/comp40/ppm"
	"github.com/stretchr/testify/assert"
)

func TestFromRGB(t *testing.T) {
	tables := []struct {
		name        string
		c           ppm.RGB
		denominator int
		want        YPbPr
	}{
		{"black", ppm.RGB{R: 0, G: 0, B: 0}, 255, YPbPr{0, 0, 0}},
		{"white", ppm.RGB{R: 255, G: 255, B: 255}, 255, YPbPr{1, 0, 0}},
		{"gray", ppm.RGB{R: 100, G: 100, B: 100}, 200, YPbPr{0.5, 0, 0}},
		{"red", ppm.RGB{R: 200, G: 0, B: 0}, 200, YPbPr{0.299, -0.168736, 0.5}},
		{"blue", ppm.RGB{R: 0, G: 0, B: 1}, 1, YPbPr{0.114, 0.5, -0.081312}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			got := FromRGB(table.c, table.denominator)
			assert.InDelta(t, table.want.Y, got.Y, 1e-6)
			assert.InDelta(t, table.want.Pb, got.Pb, 1e-6)
			assert.InDelta(t, table.want.Pr, got.Pr, 1e-6)
		})
	}
}

func TestGrayLumaIsExact(t *testing.T) {
	// Rounding to float32 on storage makes mid-gray exactly one half
	assert.Equal(t, float32(0.5), FromRGB(ppm.RGB{R: 100, G: 100, B: 100}, 200).Y)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		c := ppm.RGB{
			R: uint16(r.Intn(Denominator + 1)),
			G: uint16(r.Intn(Denominator + 1)),
			B: uint16(r.Intn(Denominator + 1)),
		}
		got := FromRGB(c, Denominator).RGB()

		// Truncation can lose at most one step per channel
		assert.InDelta(t, c.R, got.R, 1, "%v", c)
		assert.InDelta(t, c.G, got.G, 1, "%v", c)
		assert.InDelta(t, c.B, got.B, 1, "%v", c)
	}
}

func TestClamp(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		s := YPbPr{
			Y:  (r.Float32() - 0.5) * 100,
			Pb: (r.Float32() - 0.5) * 100,
			Pr: (r.Float32() - 0.5) * 100,
		}
		got := s.RGB()
		for _, v := range []uint16{got.R, got.G, got.B} {
			assert.True(t, v <= Denominator, "%v -> %v", s, got)
		}
	}

	assert.Equal(t, ppm.RGB{R: Denominator, G: Denominator, B: Denominator}, YPbPr{Y: 3}.RGB())
	assert.Equal(t, ppm.RGB{}, YPbPr{Y: -3}.RGB())
}

func TestPlane(t *testing.T) {
	m := ppm.New(4, 2, 200)
	for i := range m.Pix {
		v := uint16(i * 25)
		m.Pix[i] = ppm.RGB{R: v, G: v, B: v}
	}

	p := Convert(m)
	assert.Equal(t, 4, p.Width)
	assert.Equal(t, 2, p.Height)

	b := p.Block(2, 0)
	assert.Equal(t, p.At(2, 0), b[0])
	assert.Equal(t, p.At(3, 0), b[1])
	assert.Equal(t, p.At(2, 1), b[2])
	assert.Equal(t, p.At(3, 1), b[3])

	q := NewPlane(4, 2)
	q.SetBlock(2, 0, b)
	assert.Equal(t, b, q.Block(2, 0))
	assert.Equal(t, Block{}, q.Block(0, 0))

	out := p.Image()
	assert.Equal(t, Denominator, out.Denominator)
	for i := range m.Pix {
		assert.InDelta(t, m.Pix[i].R, out.Pix[i].R, 1)
	}
}
