package colorspace

import "github.com/bodgit/comp40/ppm"

// Block is a 2 by 2 group of samples ordered top-left, top-right,
// bottom-left, bottom-right.
type Block [4]YPbPr

// Luma returns the four luma values of the block in block order.
func (b Block) Luma() [4]float32 {
	return [4]float32{b[0].Y, b[1].Y, b[2].Y, b[3].Y}
}

// Plane is a grid of samples stored in row-major order.
type Plane struct {
	Width, Height int
	Pix           []YPbPr
}

// NewPlane returns a plane of the given size.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]YPbPr, width*height),
	}
}

// Convert returns the component video plane for m.
func Convert(m *ppm.Image) *Plane {
	p := NewPlane(m.Width, m.Height)
	for i, c := range m.Pix {
		p.Pix[i] = FromRGB(c, m.Denominator)
	}
	return p
}

// Image converts the plane back to RGB pixels scaled to Denominator.
func (p *Plane) Image() *ppm.Image {
	m := ppm.New(p.Width, p.Height, Denominator)
	for i, s := range p.Pix {
		m.Pix[i] = s.RGB()
	}
	return m
}

// At returns the sample at column x, row y.
func (p *Plane) At(x, y int) YPbPr {
	return p.Pix[y*p.Width+x]
}

// Set sets the sample at column x, row y.
func (p *Plane) Set(x, y int, s YPbPr) {
	p.Pix[y*p.Width+x] = s
}

// Block returns the block whose top-left sample is at column x, row y.
func (p *Plane) Block(x, y int) Block {
	return Block{
		p.At(x, y),
		p.At(x+1, y),
		p.At(x, y+1),
		p.At(x+1, y+1),
	}
}

// SetBlock writes b with its top-left sample at column x, row y.
func (p *Plane) SetBlock(x, y int, b Block) {
	p.Set(x, y, b[0])
	p.Set(x+1, y, b[1])
	p.Set(x, y+1, b[2])
	p.Set(x+1, y+1, b[3])
}
