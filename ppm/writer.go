package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) encode(m *Image) error {
	if _, err := fmt.Fprintf(e.w, "%s\n%d %d\n%d\n", magicBinary, m.Width, m.Height, m.Denominator); err != nil {
		return err
	}

	wide := m.Denominator > 0xff
	for _, c := range m.Pix {
		for _, s := range [3]uint16{c.R, c.G, c.B} {
			if wide {
				if err := e.w.WriteByte(byte(s >> 8)); err != nil {
					return err
				}
			}
			if err := e.w.WriteByte(byte(s)); err != nil {
				return err
			}
		}
	}

	return e.w.Flush()
}

// Encode writes the Image m to w in binary pixmap format.
func Encode(w io.Writer, m *Image) error {
	if m.Denominator < 1 || m.Denominator > maxMaxValue {
		return fmt.Errorf("%w: %d", ErrMaxValue, m.Denominator)
	}
	if len(m.Pix) != m.Width*m.Height {
		return errors.New("ppm: image is wrong size")
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(m)
}
