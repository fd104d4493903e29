package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

var (
	// ErrFormat is returned when the input is not a pixmap.
	ErrFormat = errors.New("ppm: invalid format")
	// ErrMaxValue is returned when the maximum sample value is out of range.
	ErrMaxValue = errors.New("ppm: invalid maximum value")
	// ErrNotEnough is returned when the raster is truncated.
	ErrNotEnough = errors.New("ppm: not enough image data")
	// ErrSample is returned when a sample exceeds the maximum value.
	ErrSample = errors.New("ppm: sample out of range")
)

func init() {
	image.RegisterFormat("ppm", magicBinary, decodeImage, DecodeConfig)
	image.RegisterFormat("ppm", magicPlain, decodeImage, DecodeConfig)
}

func decodeImage(r io.Reader) (image.Image, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

type decoder struct {
	r *bufio.Reader

	magic                   string
	width, height, maxValue int
	image                   *Image
}

// Skip whitespace and comments, which run to the end of the line
func (d *decoder) skip() error {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			if _, err := d.r.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(b):
		default:
			return d.r.UnreadByte()
		}
	}
}

func (d *decoder) token() (string, error) {
	if err := d.skip(); err != nil {
		return "", err
	}
	var tok []byte
	for {
		b, err := d.r.ReadByte()
		if err == io.EOF && len(tok) > 0 {
			return string(tok), nil
		}
		if err != nil {
			return "", err
		}
		if isSpace(b) || b == '#' {
			return string(tok), d.r.UnreadByte()
		}
		tok = append(tok, b)
	}
}

func (d *decoder) number() (int, error) {
	tok, err := d.token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	n, err := strconv.ParseUint(tok, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", ErrFormat, tok)
	}
	return int(n), nil
}

func (d *decoder) readHeader() error {
	var magic [2]byte
	if _, err := io.ReadFull(d.r, magic[:]); err != nil {
		return ErrFormat
	}
	d.magic = string(magic[:])
	if d.magic != magicBinary && d.magic != magicPlain {
		return fmt.Errorf("%w: bad magic %q", ErrFormat, d.magic)
	}

	var err error
	if d.width, err = d.number(); err != nil {
		return err
	}
	if d.height, err = d.number(); err != nil {
		return err
	}
	if d.maxValue, err = d.number(); err != nil {
		return err
	}
	if d.maxValue < 1 || d.maxValue > maxMaxValue {
		return fmt.Errorf("%w: %d", ErrMaxValue, d.maxValue)
	}
	if d.width > 0 && d.height > maxInt/6/d.width {
		return fmt.Errorf("%w: %dx%d is too large", ErrFormat, d.width, d.height)
	}

	if d.magic == magicBinary {
		// Exactly one whitespace character separates the header from
		// the raster
		b, err := d.r.ReadByte()
		if err != nil {
			return io.ErrUnexpectedEOF
		}
		if !isSpace(b) {
			return fmt.Errorf("%w: missing raster separator", ErrFormat)
		}
	}

	return nil
}

func (d *decoder) readBinary() error {
	size := 1
	if d.maxValue > 0xff {
		size = 2
	}

	var buf [6]byte
	pixel := buf[:3*size]
	sample := func(i int) uint16 {
		if size == 1 {
			return uint16(pixel[i])
		}
		return uint16(pixel[i*2])<<8 | uint16(pixel[i*2+1])
	}

	for i := 0; i < d.width*d.height; i++ {
		if _, err := io.ReadFull(d.r, pixel); err != nil {
			return err
		}
		if err := d.add(RGB{sample(0), sample(1), sample(2)}); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readPlain() error {
	for i := 0; i < d.width*d.height; i++ {
		var s [3]uint16
		for j := range s {
			n, err := d.number()
			if err != nil {
				return err
			}
			if n > maxMaxValue {
				return ErrSample
			}
			s[j] = uint16(n)
		}
		if err := d.add(RGB{s[0], s[1], s[2]}); err != nil {
			return err
		}
	}
	return nil
}

// Append the next pixel in raster order
func (d *decoder) add(c RGB) error {
	if int(c.R) > d.maxValue || int(c.G) > d.maxValue || int(c.B) > d.maxValue {
		i := len(d.image.Pix)
		return fmt.Errorf("%w: (%d, %d)", ErrSample, i%d.width, i/d.width)
	}
	d.image.Pix = append(d.image.Pix, c)
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return ErrNotEnough
		}
		return err
	}

	if configOnly {
		return nil
	}

	// The raster grows as pixels arrive so a lying header can't force a
	// huge allocation
	d.image = &Image{
		Width:       d.width,
		Height:      d.height,
		Denominator: d.maxValue,
		Pix:         make([]RGB, 0, minInt(d.width*d.height, maxPrealloc)),
	}

	var err error
	switch d.magic {
	case magicBinary:
		err = d.readBinary()
	default:
		err = d.readPlain()
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrNotEnough
	}
	return err
}

// Decode reads a pixmap from r.
func Decode(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a pixmap without
// decoding the raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBA64Model,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
