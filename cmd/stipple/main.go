// seehuhn.de/go/plot - pen plotter route synthesis
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command stipple turns an image into a pen plotter drawing made of small
// clusters of strokes.
//
// Without -image, a radial density centred on the page is drawn.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/plot"
	"seehuhn.de/go/plot/pen"
	"seehuhn.de/go/plot/preview"
	"seehuhn.de/go/plot/sample"
	"seehuhn.de/go/plot/stipple"
)

func main() {
	var (
		seed    = flag.Int("seed", 10, "random seed (0-255)")
		imgName = flag.String("image", "", "density image (PNG, JPEG, BMP, TIFF or WebP)")
		cfgName = flag.String("config", "", "JSON configuration file")
		svgName = flag.String("svg", "image.svg", "SVG output file")
		pdfName = flag.String("pdf", "", "PDF output file")
		pngName = flag.String("png", "", "PNG preview file")
		dpmm    = flag.Float64("dpmm", 4, "preview resolution in pixels per millimetre")
		verbose = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	plot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, *seed, *imgName, *cfgName, *svgName, *pdfName, *pngName, *dpmm)
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, seed int, imgName, cfgName, svgName, pdfName, pngName string, dpmm float64) error {
	if seed < 0 || seed > 255 {
		return fmt.Errorf("seed %d: %w", seed, plot.ErrInvalidInput)
	}

	cfg := stipple.DefaultConfig()
	if cfgName != "" {
		var err error
		cfg, err = stipple.LoadConfig(cfgName)
		if err != nil {
			return err
		}
	}

	density := sample.Field(stipple.Radial)
	if imgName != "" {
		img, err := loadImage(imgName)
		if err != nil {
			return err
		}
		density = stipple.ImageDensity(img)
	}

	routes, err := stipple.Run(ctx, cfg, density, sample.SeedFromByte(byte(seed)))
	if err != nil {
		return err
	}
	doc := stipple.Document(cfg, routes)

	if svgName != "" {
		if err := writeSVG(svgName, doc); err != nil {
			return err
		}
	}
	if pdfName != "" {
		if err := pen.WritePDF(pdfName, doc); err != nil {
			return fmt.Errorf("%s: %w", pdfName, err)
		}
	}
	if pngName != "" {
		if err := writePNG(pngName, doc, dpmm); err != nil {
			return err
		}
	}
	return nil
}

func loadImage(fname string) (image.Image, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, format, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	b := img.Bounds()
	plot.Logger().Debug("loaded image", "file", fname, "format", format,
		"width", b.Dx(), "height", b.Dy())
	return img, nil
}

func writeSVG(fname string, doc pen.Document) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = pen.WriteSVG(fd, doc)
	if err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", fname, err)
	}
	return fd.Close()
}

func writePNG(fname string, doc pen.Document, dpmm float64) error {
	img, err := preview.Render(doc, dpmm)
	if err != nil {
		return err
	}
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	if err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", fname, err)
	}
	return fd.Close()
}
