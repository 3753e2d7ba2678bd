// Command mergetiles stitches tiles rendered with -grid/-tile back into one
// image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/echoflaresat/whitted/imageio"
)

func main() {
	scale := flag.Float64("scale", 1.0, "Resample the merged image by this factor")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-scale f] <cols>x<rows> <output> <tile0> <tile1> ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		os.Exit(1)
	}

	cols, rows, err := parseLayout(args[0])
	if err != nil {
		log.Fatal(err)
	}
	output := args[1]
	inputFiles := args[2:]
	if len(inputFiles) != cols*rows {
		log.Fatalf("Expected %d input files, got %d", cols*rows, len(inputFiles))
	}

	tiles := make([]image.Image, len(inputFiles))
	for i, path := range inputFiles {
		fmt.Printf("Processing %s\n", path)
		tiles[i], err = imageio.Load(path)
		if err != nil {
			log.Fatalf("Could not load input file %q: %v", path, err)
		}
	}

	canvas, err := mergeTiles(cols, rows, tiles)
	if err != nil {
		log.Fatal(err)
	}

	var out image.Image = canvas
	if *scale != 1.0 {
		out = resample(canvas, *scale)
	}

	fmt.Printf("-> creating %s\n", output)
	if err := imageio.Save(output, out); err != nil {
		log.Fatalf("Could not write %s: %v", output, err)
	}
}

func parseLayout(s string) (cols, rows int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid tile format: %s (expected NxM)", s)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid cols: %w", err)
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid rows: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid tile format: %s (expected at least 1x1)", s)
	}
	return cols, rows, nil
}

// mergeTiles places equally sized tiles, given row by row, on one canvas.
func mergeTiles(cols, rows int, tiles []image.Image) (*image.NRGBA, error) {
	if len(tiles) == 0 || len(tiles) != cols*rows {
		return nil, errors.New("tile count does not match the layout")
	}
	tileW := tiles[0].Bounds().Dx()
	tileH := tiles[0].Bounds().Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))

	for idx, tile := range tiles {
		b := tile.Bounds()
		if b.Dx() != tileW || b.Dy() != tileH {
			return nil, fmt.Errorf("tile %d size mismatch: expected %dx%d, got %dx%d",
				idx, tileW, tileH, b.Dx(), b.Dy())
		}
		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, b.Min, draw.Src)
	}
	return canvas, nil
}

func resample(src image.Image, factor float64) *image.NRGBA {
	b := src.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
