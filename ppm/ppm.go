/*
Package ppm implements a decoder and encoder for the portable pixmap format.

Both the binary (P6) and plain (P3) variants are read; images are always
written as P6. Samples are kept exactly as stored, alongside the maximum
sample value, rather than being rescaled to 8 or 16 bits.
*/
package ppm

import (
	"image"
	"image/color"
)

const (
	magicBinary = "P6"
	magicPlain  = "P3"
	maxMaxValue = 0xffff

	maxInt      = int(^uint(0) >> 1)
	maxPrealloc = 1 << 20
)

// RGB is a single pixel with each channel in the range 0 to the owning
// image's Denominator.
type RGB struct {
	R, G, B uint16
}

// Image is a grid of RGB pixels stored in row-major order.
type Image struct {
	Width, Height int
	Denominator   int
	Pix           []RGB
}

// New returns an image of the given size with every pixel black.
func New(width, height, denominator int) *Image {
	return &Image{
		Width:       width,
		Height:      height,
		Denominator: denominator,
		Pix:         make([]RGB, width*height),
	}
}

// RGBAt returns the pixel at column x, row y.
func (m *Image) RGBAt(x, y int) RGB {
	return m.Pix[y*m.Width+x]
}

// SetRGB sets the pixel at column x, row y.
func (m *Image) SetRGB(x, y int, c RGB) {
	m.Pix[y*m.Width+x] = c
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.RGBA64Model
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *Image) scale(v uint16) uint16 {
	return uint16(uint32(v) * 0xffff / uint32(m.Denominator))
}

// At implements image.Image, scaling each channel to 16 bits.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.RGBA64{}
	}
	c := m.RGBAt(x, y)
	return color.RGBA64{
		R: m.scale(c.R),
		G: m.scale(c.G),
		B: m.scale(c.B),
		A: 0xffff,
	}
}

// FromImage converts m to an Image with a denominator of 255. If m is
// already an *Image it is returned as-is.
func FromImage(m image.Image) *Image {
	if pm, ok := m.(*Image); ok {
		return pm
	}

	b := m.Bounds()
	dst := New(b.Dx(), b.Dy(), 0xff)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := m.At(x, y).RGBA()
			dst.SetRGB(x-b.Min.X, y-b.Min.Y, RGB{
				R: uint16(r >> 8),
				G: uint16(g >> 8),
				B: uint16(bl >> 8),
			})
		}
	}
	return dst
}
