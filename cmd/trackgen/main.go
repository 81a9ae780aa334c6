// Command trackgen is a CLI tool for generating and exporting racetracks.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ha1tch/track-toolkit/pkg/codegen"
	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
	"github.com/ha1tch/track-toolkit/pkg/trackfile"
)

const usage = `trackgen - Procedural racetrack toolkit

Usage:
  trackgen <command> [options]

Commands:
  generate   Generate a new track
  render     Render a track file to SVG or PNG
  export     Export a track file as C, Go or Rust source
  info       Show track information
  validate   Re-check a track file against the geometric rules

Examples:
  trackgen generate -n 6 -o circuit.json
  trackgen generate -n 4 --seed 42 -o circuit.svg
  trackgen render circuit.json -o circuit.png -t "Circuit"
  trackgen export circuit.json --lang c -o circuit.h
  trackgen info circuit.json

Use "trackgen <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "generate":
		cmdGenerate(args)
	case "render":
		cmdRender(args)
	case "export":
		cmdExport(args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func cmdGenerate(args []string) {
	sections := 4
	var output, name string
	var seed int64 = -1
	width := 0.0
	widthRange := ""
	pretty := false
	timeout := 30 * time.Second

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n", "--sections":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid section count: %s\n", args[i+1])
					os.Exit(1)
				}
				sections = n
				i++
			}
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--seed":
			if i+1 < len(args) {
				s, err := strconv.ParseInt(args[i+1], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid seed: %s\n", args[i+1])
					os.Exit(1)
				}
				seed = s
				i++
			}
		case "--width":
			if i+1 < len(args) {
				w, err := strconv.ParseFloat(args[i+1], 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid width: %s\n", args[i+1])
					os.Exit(1)
				}
				width = w
				i++
			}
		case "--width-range":
			if i+1 < len(args) {
				widthRange = args[i+1]
				i++
			}
		case "--timeout":
			if i+1 < len(args) {
				d, err := time.ParseDuration(args[i+1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid timeout: %s\n", args[i+1])
					os.Exit(1)
				}
				timeout = d
				i++
			}
		case "--pretty":
			pretty = true
		case "-h", "--help":
			fmt.Fprintln(os.Stderr, "Usage: trackgen generate [-n sections] [-o output] [--seed N] [--width W] [--width-range MIN:MAX] [--name NAME] [--timeout D] [--pretty]")
			return
		}
	}

	cfg := track.DefaultConfig()
	if seed >= 0 {
		cfg.Rand = rand.New(rand.NewSource(seed))
	}
	if width > 0 {
		cfg.TrackWidth = width
	}
	if widthRange != "" {
		parts := strings.SplitN(widthRange, ":", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "Invalid width range: %s (want MIN:MAX)\n", widthRange)
			os.Exit(1)
		}
		min, err1 := strconv.ParseFloat(parts[0], 64)
		max, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			fmt.Fprintf(os.Stderr, "Invalid width range: %s\n", widthRange)
			os.Exit(1)
		}
		cfg.WidthRange = track.Range{Min: min, Max: max}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	b := track.NewBuilder(cfg)
	t, err := b.MakeTrack(ctx, sections)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if output == "" {
		data, err := trackfile.ToJSON(t, name, pretty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding track: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if err := writeTrack(t, output, name, pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", output)
}

func cmdRender(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen render <input.json> [-o output] [-t title] [--no-centreline]")
		os.Exit(1)
	}

	input := args[0]
	var output, title string
	showCenter := true

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "-t", "--title":
			if i+1 < len(args) {
				title = args[i+1]
				i++
			}
		case "--no-centreline":
			showCenter = false
		}
	}

	t, name, err := loadTrack(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	if title == "" {
		title = name
	}

	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + ".svg"
	}

	switch filepath.Ext(output) {
	case ".svg":
		opts := trackfile.DefaultSVGOptions()
		opts.Title = title
		opts.ShowCenter = showCenter
		err = os.WriteFile(output, []byte(trackfile.GenerateSVG(t, opts)), 0644)
	case ".png":
		opts := trackfile.DefaultPNGOptions()
		opts.Title = title
		opts.ShowCenter = showCenter
		var file *os.File
		file, err = os.Create(output)
		if err == nil {
			err = trackfile.RenderPNG(t, file, opts)
			file.Close()
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format: %s\n", filepath.Ext(output))
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", output)
}

func cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen export <input.json> [--lang c|go|rust] [-o output] [--name NAME] [--pkg PACKAGE]")
		os.Exit(1)
	}

	input := args[0]
	lang := "c"
	var output, name, pkg string

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--lang", "-l":
			if i+1 < len(args) {
				lang = args[i+1]
				i++
			}
		case "-o", "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--pkg":
			if i+1 < len(args) {
				pkg = args[i+1]
				i++
			}
		}
	}

	t, loadedName, err := loadTrack(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	if name == "" {
		name = loadedName
	}
	if name == "" {
		ext := filepath.Ext(input)
		name = strings.TrimSuffix(filepath.Base(input), ext)
	}

	var code string
	switch lang {
	case "c":
		code = codegen.GenerateC(t, name)
	case "go":
		code = codegen.GenerateGo(t, name, pkg)
	case "rust":
		code = codegen.GenerateRust(t, name)
	default:
		fmt.Fprintf(os.Stderr, "Unknown language: %s (want c, go or rust)\n", lang)
		os.Exit(1)
	}

	if output == "" {
		fmt.Print(code)
		return
	}
	if err := os.WriteFile(output, []byte(code), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("Written: %s\n", output)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen info <input.json>")
		os.Exit(1)
	}

	input := args[0]
	t, name, err := loadTrack(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}

	total := 0.0
	curves := 0
	for _, s := range t {
		total += s.Center.Length()
		curves += len(s.Curves())
	}
	box := geom.BBoxOf(t.Curves())

	if name != "" {
		fmt.Printf("Name:      %s\n", name)
	}
	fmt.Printf("Sections:  %d\n", len(t))
	fmt.Printf("Curves:    %d\n", curves)
	fmt.Printf("Length:    %.3f\n", total)
	fmt.Printf("Bounds:    [%.3f, %.3f] - [%.3f, %.3f]\n", box.MinX, box.MinY, box.MaxX, box.MaxY)
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: trackgen validate <input.json>")
		os.Exit(1)
	}

	input := args[0]
	t, _, err := loadTrack(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}

	if err := track.Check(t, track.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: valid track with %d sections\n", input, len(t))
}

// writeTrack writes the track in the format implied by the output extension.
func writeTrack(t track.Track, output, name string, pretty bool) error {
	switch filepath.Ext(output) {
	case ".json":
		data, err := trackfile.ToJSON(t, name, pretty)
		if err != nil {
			return err
		}
		return os.WriteFile(output, data, 0644)
	case ".svg":
		opts := trackfile.DefaultSVGOptions()
		opts.Title = name
		return os.WriteFile(output, []byte(trackfile.GenerateSVG(t, opts)), 0644)
	case ".png":
		opts := trackfile.DefaultPNGOptions()
		opts.Title = name
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		return trackfile.RenderPNG(t, file, opts)
	default:
		return fmt.Errorf("unknown output format: %s", filepath.Ext(output))
	}
}

func loadTrack(path string) (track.Track, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return trackfile.ParseJSON(data)
}
