/*
Package comp40 is a library for the COMP40 lossy image format.

Each 2 by 2 block of pixels is converted to component video, its chroma
averaged and quantized to a pair of 4-bit table indices and its four luma
values transformed into an average and three detail terms. The six values
are packed into one 32-bit codeword. A compressed file is a short text header
giving the dimensions followed by the codewords in big-endian byte order:

	COMP40 Compressed image format 2
	<width> <height>
	<width/2 * height/2 codewords>

Reconstructed images always have a maximum channel value of 200.

An Archive stores compressed images in a SQLite database and can import a
whole directory tree at once.
*/
package comp40

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/bodgit/comp40/ppm"
	"github.com/bodgit/comp40/store"
)

// Archive is a collection of compressed images.
type Archive struct {
	db      *store.DB
	logger  *log.Logger
	workers int
}

// Open opens the archive database in file.
func Open(file string, logger *log.Logger) (*Archive, error) {
	db, err := store.Open(file)
	if err != nil {
		return nil, err
	}
	return New(db, logger), nil
}

// New returns an Archive backed by db.
func New(db *store.DB, logger *log.Logger) *Archive {
	return &Archive{
		db:      db,
		logger:  logger,
		workers: defaultWorkers,
	}
}

// SetWorkers sets the number of images compressed concurrently by Import.
func (a *Archive) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	a.workers = n
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// List returns every archived image without its data.
func (a *Archive) List() ([]store.Entry, error) {
	return a.db.List()
}

// Load returns the compressed image stored under name.
func (a *Archive) Load(name string) (*Compressed, error) {
	e, err := a.db.Find(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	c := new(Compressed)
	if err := c.UnmarshalBinary(e.Data); err != nil {
		return nil, err
	}
	return c, nil
}

// ExportCompressed writes the COMP40 file stored under name to w.
func (a *Archive) ExportCompressed(name string, w io.Writer) error {
	c, err := a.Load(name)
	if err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

// Export decompresses the image stored under name and writes it to w as a
// pixmap.
func (a *Archive) Export(name string, w io.Writer) error {
	m, err := a.Image(name)
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	if err := ppm.Encode(b, m); err != nil {
		return err
	}
	_, err = b.WriteTo(w)
	return err
}

// Image decompresses the image stored under name.
func (a *Archive) Image(name string) (*ppm.Image, error) {
	c, err := a.Load(name)
	if err != nil {
		return nil, err
	}
	a.logger.Printf("Decompressing \"%s\" (%dx%d)\n", name, c.Width, c.Height)
	return c.Decode()
}

// Delete removes the image stored under name.
func (a *Archive) Delete(name string) error {
	ok, err := a.db.Delete(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	a.logger.Printf("Deleted \"%s\"\n", name)
	return nil
}
