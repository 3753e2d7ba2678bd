package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/echoflaresat/whitted/imageio"
	"github.com/echoflaresat/whitted/render"
	"github.com/echoflaresat/whitted/texture"
	"github.com/echoflaresat/whitted/vectors"
)

type config struct {
	width, height *int
	depth         *int
	workers       *int
	eye, target   *string
	fov           *float64
	env           *string
	timeStr       *string
	lat, lon      *float64
	wall          *bool
	grid          *string
	tile          *int
	out           *string
	quiet         *bool
	showHelp      *bool
}

func defineFlags() config {
	return config{
		width:   flag.Int("width", 640, "Output image width in pixels"),
		height:  flag.Int("height", 480, "Output image height in pixels"),
		depth:   flag.Int("depth", 6, "Maximum number of reflection/refraction bounces"),
		workers: flag.Int("workers", runtime.NumCPU(), "Number of image rows traced in parallel"),

		eye:    flag.String("eye", "16,-14,7", "Camera position as x,y,z"),
		target: flag.String("target", "0,2,0", "Point the camera looks at as x,y,z"),
		fov:    flag.Float64("fov", 60.0, "Horizontal field of view in degrees"),

		env:     flag.String("env", "", "Longitude/latitude environment map (TIFF, PNG, JPEG, BMP, WebP or PPM); empty uses a checkered sky"),
		timeStr: flag.String("time", "", "Light the scene with the sun at this RFC3339 time instead of the overhead light"),
		lat:     flag.Float64("lat", 47.4979, "Observer latitude in degrees, used with -time"),
		lon:     flag.Float64("lon", 19.0402, "Observer longitude in degrees, used with -time"),
		wall:    flag.Bool("wall", false, "Add a mirrored building wall on the left"),

		grid: flag.String("grid", "", "Split the frame into <cols>x<rows> tiles and render only -tile"),
		tile: flag.Int("tile", 0, "Row-major index of the tile to render, used with -grid"),

		out:   flag.String("out", "whitted.png", "Output image path (.png, .jpg or .ppm)"),
		quiet: flag.Bool("q", false, "Do not print the progress bar"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Whitted Ray Tracer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Camera Options", []string{"eye", "target", "fov"})
	printGroup("Rendering Options", []string{"width", "height", "depth", "workers", "grid", "tile"})
	printGroup("Scene Options", []string{"env", "time", "lat", "lon", "wall"})
	printGroup("Output", []string{"out", "q"})
	printGroup("Misc", []string{"h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}

	eye, err := parseVec(*cfg.eye)
	if err != nil {
		log.Fatalf("Invalid -eye: %v", err)
	}
	target, err := parseVec(*cfg.target)
	if err != nil {
		log.Fatalf("Invalid -target: %v", err)
	}

	opts := sceneOptions{Wall: *cfg.wall}
	if *cfg.timeStr != "" {
		t, err := time.Parse(time.RFC3339, *cfg.timeStr)
		if err != nil {
			log.Fatalf("Invalid time format: %v", err)
		}
		opts.Sun = &sunPosition{Time: t, Lat: *cfg.lat, Lon: *cfg.lon}
	}
	s, err := buildScene(opts)
	if err != nil {
		log.Fatal(err)
	}

	var bg render.Background = render.CheckerSky{}
	if *cfg.env != "" {
		tex, err := texture.Load(*cfg.env)
		if err != nil {
			log.Fatalf("Failed to load environment map: %v", err)
		}
		defer tex.Close()
		bg = render.Environment{Texture: tex}
	}

	r := &render.Renderer{
		Scene:      s,
		Camera:     render.NewLookAtCamera(eye, target, vectors.New(0, 0, 1), *cfg.fov, float64(*cfg.width)/float64(*cfg.height)),
		Background: bg,
		Width:      *cfg.width,
		Height:     *cfg.height,
		MaxDepth:   *cfg.depth,
	}

	region := image.Rect(0, 0, r.Width, r.Height)
	if *cfg.grid != "" {
		cols, rows, err := parseGrid(*cfg.grid)
		if err != nil {
			log.Fatalf("Invalid -grid: %v", err)
		}
		region, err = tileRect(r.Width, r.Height, cols, rows, *cfg.tile)
		if err != nil {
			log.Fatal(err)
		}
	}

	var progress *render.Progress
	if !*cfg.quiet {
		progress = render.NewProgress(os.Stdout)
	}

	slog.Info("rendering", "out", *cfg.out, "region", region, "depth", r.MaxDepth, "workers", *cfg.workers)
	start := time.Now()
	img, err := r.RenderRegion(region, *cfg.workers, progress)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("rendered", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := imageio.Save(*cfg.out, img); err != nil {
		log.Fatalf("Failed to write image: %v", err)
	}
}

func parseVec(s string) (vectors.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vectors.Vec3{}, fmt.Errorf("%q: expected x,y,z", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return vectors.Vec3{}, fmt.Errorf("%q: %w", s, err)
		}
		xyz[i] = v
	}
	return vectors.New(xyz[0], xyz[1], xyz[2]), nil
}

func parseGrid(s string) (cols, rows int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q: expected <cols>x<rows>", s)
	}
	if cols, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid cols: %w", err)
	}
	if rows, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid rows: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%q: grid must be at least 1x1", s)
	}
	return cols, rows, nil
}

// tileRect returns the pixels of tile idx in a cols×rows split of the frame.
// Tiles are numbered row by row, the way mergetiles expects them.
func tileRect(width, height, cols, rows, idx int) (image.Rectangle, error) {
	if width%cols != 0 || height%rows != 0 {
		return image.Rectangle{}, fmt.Errorf("image %dx%d does not split evenly into %dx%d tiles", width, height, cols, rows)
	}
	if idx < 0 || idx >= cols*rows {
		return image.Rectangle{}, fmt.Errorf("tile %d out of range [0,%d)", idx, cols*rows)
	}
	tw, th := width/cols, height/rows
	x, y := (idx%cols)*tw, (idx/cols)*th
	return image.Rect(x, y, x+tw, y+th), nil
}
