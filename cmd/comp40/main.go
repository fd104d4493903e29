package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/comp40"
	"github.com/bodgit/comp40/ppm"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB = "comp40.db"
	stdio     = "-"
)

var errFormat = errors.New("unknown output format")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openInput(file string) (io.ReadCloser, error) {
	if file == "" || file == stdio {
		return ioutil.NopCloser(os.Stdin), nil
	}
	return os.Open(file)
}

func writeOutput(file string, b *bytes.Buffer) error {
	if file == "" || file == stdio {
		_, err := b.WriteTo(os.Stdout)
		return err
	}
	return ioutil.WriteFile(file, b.Bytes(), 0644)
}

func readImage(file string) (*ppm.Image, error) {
	r, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ppm.FromImage(m), nil
}

func encodeImage(w io.Writer, m *ppm.Image, format string) error {
	switch format {
	case "ppm":
		return ppm.Encode(w, m)
	case "png":
		return png.Encode(w, m)
	case "gif":
		return gif.Encode(w, m, &gif.Options{
			NumColors: 256,
			Quantizer: &quantize.MedianCutQuantizer{},
		})
	default:
		return fmt.Errorf("%w: %s", errFormat, format)
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   stdio,
		Usage:   "write to `FILE` instead of standard output",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: "ppm",
		Usage: "output image format, one of ppm, png or gif",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "comp40"
	app.Usage = "COMP40 lossy image compression utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"COMP40_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "compress",
			Aliases:     []string{"c"},
			Usage:       "Compress an image",
			Description: "Reads a PPM, PNG, GIF or JPEG image, from standard input if FILE is omitted, and writes it in COMP40 format.",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				outputFlag(),
			},
			Action: func(c *cli.Context) error {
				m, err := readImage(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b := new(bytes.Buffer)
				if err := comp40.Compress(b, m); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutput(c.String("output"), b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decompress",
			Aliases:     []string{"d"},
			Usage:       "Decompress an image",
			Description: "Reads a COMP40 image, from standard input if FILE is omitted, and writes the reconstructed image.",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				outputFlag(),
				formatFlag(),
			},
			Action: func(c *cli.Context) error {
				r, err := openInput(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer r.Close()

				m, err := comp40.Decompress(r)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b := new(bytes.Buffer)
				if err := encodeImage(b, m, c.String("format")); err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutput(c.String("output"), b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "diff",
			Usage:       "Compare two images",
			Description: "Prints the root mean square difference between two images, either of which may be - for standard input.",
			ArgsUsage:   "FILE1 FILE2",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				if c.Args().Get(0) == stdio && c.Args().Get(1) == stdio {
					return cli.NewExitError("at most one image can be read from standard input", 1)
				}

				a, err := readImage(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := readImage(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				d, err := comp40.Diff(a, b)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("%f\n", d)

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Compress a directory of images into the database",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "number of images to compress concurrently",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				a, err := comp40.Open(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer a.Close()

				a.SetWorkers(c.Int("workers"))

				if err := a.Import(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Export an image from the database",
			Description: "",
			ArgsUsage:   "NAME",
			Flags: []cli.Flag{
				outputFlag(),
				formatFlag(),
				&cli.BoolFlag{
					Name:  "raw",
					Usage: "write the stored COMP40 image without decompressing it",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				a, err := comp40.Open(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer a.Close()

				b := new(bytes.Buffer)
				if c.Bool("raw") {
					if err := a.ExportCompressed(c.Args().First(), b); err != nil {
						return cli.NewExitError(err, 1)
					}
				} else {
					m, err := a.Image(c.Args().First())
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := encodeImage(b, m, c.String("format")); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				if err := writeOutput(c.String("output"), b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "delete",
			Usage:       "Remove an image from the database",
			Description: "",
			ArgsUsage:   "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				a, err := comp40.Open(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer a.Close()

				if err := a.Delete(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List the images in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				a, err := comp40.Open(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer a.Close()

				entries, err := a.List()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Printf("%s\t%dx%d\t%s\n", e.SHA1, e.Width, e.Height, e.Name)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
