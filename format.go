package comp40

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	magic    = "COMP40 Compressed image format 2\n"
	wordSize = 4

	maxPrealloc = 1 << 20
)

// Compressed is a COMP40 image: the trimmed dimensions and one packed
// codeword per 2 by 2 block in row-major order. It implements the
// encoding.BinaryMarshaler, encoding.BinaryUnmarshaler and io.WriterTo
// interfaces.
type Compressed struct {
	Width, Height int
	Words         []uint32
}

func (c *Compressed) blocks() int {
	return (c.Width / 2) * (c.Height / 2)
}

// WriteTo writes the header followed by each word in big-endian byte order.
func (c *Compressed) WriteTo(w io.Writer) (int64, error) {
	if len(c.Words) != c.blocks() {
		return 0, ErrWordCount
	}

	bw := bufio.NewWriter(w)

	n, err := fmt.Fprintf(bw, "%s%d %d\n", magic, c.Width, c.Height)
	if err != nil {
		return int64(n), err
	}

	var tmp [wordSize]byte
	for _, word := range c.Words {
		binary.BigEndian.PutUint32(tmp[:], word)
		m, err := bw.Write(tmp[:])
		n += m
		if err != nil {
			return int64(n), err
		}
	}

	return int64(n), bw.Flush()
}

// MarshalBinary encodes the image into its file form and returns the result.
func (c *Compressed) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if _, err := c.WriteTo(b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// UnmarshalBinary decodes the image from its file form.
func (c *Compressed) UnmarshalBinary(b []byte) error {
	return c.read(bytes.NewReader(b))
}

// ReadCompressed reads a COMP40 image from r. The whole of r is consumed;
// anything after the last word is an error.
func ReadCompressed(r io.Reader) (*Compressed, error) {
	c := new(Compressed)
	if err := c.read(r); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Compressed) read(r io.Reader) error {
	br := bufio.NewReader(r)

	if err := c.readHeader(br); err != nil {
		return err
	}

	// Capacity is capped, the rest grows as words are read
	blocks := c.blocks()
	c.Words = make([]uint32, 0, minInt(blocks, maxPrealloc))

	var tmp [wordSize]byte
	for i := 0; i < blocks; i++ {
		if _, err := io.ReadFull(br, tmp[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return fmt.Errorf("%w: read %d of %d words", ErrTruncated, i, blocks)
			}
			return err
		}
		c.Words = append(c.Words, binary.BigEndian.Uint32(tmp[:]))
	}

	if _, err := br.ReadByte(); err != io.EOF {
		if err != nil {
			return err
		}
		return ErrTrailing
	}

	return nil
}

func (c *Compressed) readHeader(br *bufio.Reader) error {
	line, err := br.ReadString('\n')
	if err != nil || line != magic {
		return fmt.Errorf("%w: bad magic", ErrHeader)
	}

	line, err = br.ReadString('\n')
	if err != nil {
		return fmt.Errorf("%w: missing dimensions", ErrHeader)
	}

	// Exactly "<width> <height>\n"
	fields := strings.Split(strings.TrimSuffix(line, "\n"), " ")
	if len(fields) != 2 {
		return fmt.Errorf("%w: bad dimensions %q", ErrHeader, strings.TrimSpace(line))
	}

	dims := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return fmt.Errorf("%w: bad dimension %q", ErrHeader, f)
		}
		dims[i] = int(n)
	}
	c.Width, c.Height = dims[0], dims[1]

	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, c.Width, c.Height)
	}

	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
