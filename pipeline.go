package comp40

import (
	"bytes"
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/comp40/ppm"
)

const defaultWorkers = 10

// Extensions of files considered by Import. Decoders for anything other than
// pixmaps must be registered by the caller.
var importExtensions = map[string]struct{}{
	".ppm":  {},
	".pnm":  {},
	".png":  {},
	".gif":  {},
	".jpg":  {},
	".jpeg": {},
}

type compressed struct {
	name string
	sha  string
	data *Compressed
}

func (a *Archive) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := importExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func compressFile(file string) (string, *Compressed, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", file, err)
	}
	// Drain anything the decoder didn't need so the hash covers the file
	if _, err := io.Copy(h, f); err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), Encode(ppm.FromImage(m)), nil
}

func (a *Archive) compressWorker(ctx context.Context, wg *sync.WaitGroup, base string, in <-chan string, out chan<- compressed) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for file := range in {
			name, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			sha, c, err := compressFile(file)
			if err != nil {
				errc <- err
				return
			}
			a.logger.Printf("Compressed \"%s\" to %dx%d, %d words\n", file, c.Width, c.Height, len(c.Words))

			select {
			case out <- compressed{name: filepath.ToSlash(name), sha: sha, data: c}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func (a *Archive) storeWorker(ctx context.Context, in <-chan compressed) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for c := range in {
			b := new(bytes.Buffer)
			if _, err := c.data.WriteTo(b); err != nil {
				errc <- err
				return
			}
			if _, err := a.db.Add(c.name, c.sha, c.data.Width, c.data.Height, b.Bytes()); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import compresses every image found under path and adds it to the archive,
// named by its path relative to path. Hidden files and directories are
// skipped. Images are compressed concurrently but each one is still
// processed as a single synchronous pass.
func (a *Archive) Import(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := a.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	results := make(chan compressed)

	var wg sync.WaitGroup
	wg.Add(a.workers)
	for i := 0; i < a.workers; i++ {
		errc, err := a.compressWorker(ctx, &wg, dir, files, results)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	// Close results once every compression worker has returned
	go func() {
		wg.Wait()
		close(results)
	}()

	errc, err = a.storeWorker(ctx, results)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	return waitForPipeline(errcList...)
}
