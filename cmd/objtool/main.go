// objtool is a CLI utility for inspecting and rendering Wavefront OBJ models.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/objviewer/internal/app"
	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/screenshot"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/model"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "normalize", "norm":
		cmdNormalize(args)
	case "snapshot", "snap":
		cmdSnapshot(args)
	case "view":
		cmdView(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ model utility

Usage:
  objtool <command> [options]

Commands:
  info <file.obj>                   Show counts, bounds and polygon sizes
  normalize <file.obj>              Show bounds before and after normalization
  snapshot [options] <file.obj>     Render the wireframe to a PNG file
  view [options] <file.obj>         Open a window with keyboard controls

Examples:
  objtool info teapot.obj
  objtool snapshot -o teapot.png -size 512 -ry 30 teapot.obj
  objtool view -watch teapot.obj`)
}

// loadModel parses path or exits with an error message.
func loadModel(path string) *model.Model {
	var m model.Model
	if err := formats.ParseOBJFile(path, &m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return &m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	m := loadModel(args[0])

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", m.VertexCount)
	fmt.Printf("Polygons:  %d\n", m.PolygonCount)
	fmt.Printf("Indices:   %d\n", m.FaceCount)
	fmt.Printf("Edges:     %d\n", m.EdgeCount())
	printBounds("Bounds", m.Bounds)

	hist := polygonSizes(m)
	if len(hist) == 0 {
		return
	}
	sizes := make([]int, 0, len(hist))
	for n := range hist {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)

	fmt.Println("\nPolygon sizes:")
	for _, n := range sizes {
		fmt.Printf("  %4d-gon  %d\n", n, hist[n])
	}
}

// polygonSizes counts polygons by their number of vertices.
func polygonSizes(m *model.Model) map[int]int {
	hist := make(map[int]int)
	for _, n := range m.NumVerticesInPolygon {
		hist[int(n)]++
	}
	return hist
}

func printBounds(label string, b model.AABB) {
	size := b.Size()
	fmt.Printf("%s:\n", label)
	fmt.Printf("  min   (%.6g, %.6g, %.6g)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("  max   (%.6g, %.6g, %.6g)\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Printf("  size  (%.6g, %.6g, %.6g)\n", size.X, size.Y, size.Z)
}

func cmdNormalize(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool normalize <file.obj>")
		os.Exit(1)
	}

	m := loadModel(args[0])
	printBounds("Before", m.ComputeBounds())
	m.Normalize()
	printBounds("After", m.ComputeBounds())
}

// viewOptions are the flags shared by snapshot and view.
type viewOptions struct {
	settings string
	rx, ry   float64
	rz       float64
	scale    float64
	debug    bool
}

func (o *viewOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.settings, "settings", "", "Path to settings.conf (default: user config dir)")
	fs.Float64Var(&o.rx, "rx", 0, "Rotate about X by degrees before rendering")
	fs.Float64Var(&o.ry, "ry", 0, "Rotate about Y by degrees before rendering")
	fs.Float64Var(&o.rz, "rz", 0, "Rotate about Z by degrees before rendering")
	fs.Float64Var(&o.scale, "scale", 1, "Scale factor applied after normalization")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
}

// settingsPath resolves the settings file from the flag or the config dir.
func (o *viewOptions) settingsPath() string {
	if o.settings != "" {
		return o.settings
	}
	path, err := config.Default().SettingsPath()
	if err != nil {
		return ""
	}
	return path
}

func (o *viewOptions) initLogger() {
	level := "warn"
	if o.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
}

// openInApp loads the model and applies the initial transforms.
func (o *viewOptions) openInApp(a *app.App, path string) {
	if err := a.Open(path); err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	v := a.Viewer()
	v.Rotate(o.rx, o.ry, o.rz)
	if o.scale != 1 {
		v.Scale(o.scale)
	}
}

func cmdSnapshot(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	output := fs.String("o", "", "Output PNG path (default: <file>.png)")
	size := fs.Int("size", config.Default().Viewer.ViewportSize, "Image width and height in pixels")
	var opts viewOptions
	opts.register(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool snapshot [options] <file.obj>")
		os.Exit(1)
	}
	if *size < 1 {
		fmt.Fprintln(os.Stderr, "Error: -size must be positive")
		os.Exit(1)
	}

	input := fs.Arg(0)
	if *output == "" {
		*output = replaceExt(input, ".png")
	}

	opts.initLogger()
	defer logger.Sync()

	// Settings are read but not written back; a snapshot must not change them.
	a, err := app.New(app.Config{
		Title:  "objtool snapshot",
		Width:  *size,
		Height: *size,
		Hidden: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if path := opts.settingsPath(); path != "" {
		_ = a.Viewer().LoadSettings(path)
	}
	opts.openInApp(a, input)

	pixels, err := a.RenderPixels(*size, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img, err := screenshot.PixelsToImage(pixels, *size, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := screenshot.WritePNG(*output, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", *output, *size, *size)
}

func cmdView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	width := fs.Int("width", 1024, "Window width")
	height := fs.Int("height", 768, "Window height")
	watchFile := fs.Bool("watch", false, "Reload the model when the file changes")
	var opts viewOptions
	opts.register(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool view [options] <file.obj>")
		os.Exit(1)
	}

	opts.initLogger()
	defer logger.Sync()

	defaults := config.Default().Viewer
	a, err := app.New(app.Config{
		Title:         "objtool",
		Width:         *width,
		Height:        *height,
		VSync:         true,
		Watch:         *watchFile,
		SettingsPath:  opts.settingsPath(),
		ScreenshotDir: defaults.ScreenshotDir,
		Steps: app.Steps{
			Move:   defaults.MoveStep,
			Rotate: defaults.RotateStep,
			Scale:  defaults.ScaleStep,
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	opts.openInApp(a, fs.Arg(0))

	fmt.Println("Arrows/PgUp/PgDn rotate, WASD move, +/- scale, P projection, L dashed, V vertices, R reload, F12 screenshot, Esc quit")
	if err := a.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
