// Command trackview is a TUI viewer for procedural track generation.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/ha1tch/track-toolkit/pkg/track"
	"github.com/ha1tch/track-toolkit/pkg/trackfile"
)

const usage = `trackview - watch tracks being generated

Usage:
  trackview [options] [input.json]

Options:
  -n, --sections N   number of sections to generate (default 4)
  --seed N           random seed (default: time-based)
  --width W          track width

Keys:
  r        regenerate
  + / -    more / fewer sections, then regenerate
  c        toggle centreline
  j        save as JSON
  v        save as SVG
  p        save as PNG
  q / Esc  quit
`

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Viewer holds all viewer state
type Viewer struct {
	screen tcell.Screen
	cfg    track.Config

	mu       sync.Mutex
	track    track.Track
	building bool

	sections   int
	seed       int64
	showCenter bool
	saveCount  int

	message     string
	messageType MessageType

	cancelBuild context.CancelFunc
}

func main() {
	v := &Viewer{
		cfg:        track.DefaultConfig(),
		sections:   4,
		seed:       -1,
		showCenter: true,
	}
	var input string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n", "--sections":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Invalid section count: %s\n", args[i+1])
					os.Exit(1)
				}
				v.sections = n
				i++
			}
		case "--seed":
			if i+1 < len(args) {
				s, err := strconv.ParseInt(args[i+1], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid seed: %s\n", args[i+1])
					os.Exit(1)
				}
				v.seed = s
				i++
			}
		case "--width":
			if i+1 < len(args) {
				w, err := strconv.ParseFloat(args[i+1], 64)
				if err != nil || w <= 0 {
					fmt.Fprintf(os.Stderr, "Invalid width: %s\n", args[i+1])
					os.Exit(1)
				}
				v.cfg.TrackWidth = w
				i++
			}
		case "-h", "--help":
			fmt.Print(usage)
			return
		default:
			input = args[i]
		}
	}

	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
			os.Exit(1)
		}
		t, _, err := trackfile.ParseJSON(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", input, err)
			os.Exit(1)
		}
		v.track = t
		v.sections = len(t)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initialising screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v.screen = screen

	if v.track == nil {
		v.regenerate()
	} else {
		v.setMessage(fmt.Sprintf("Loaded %s (%d sections)", input, len(v.track)), MsgInfo)
	}

	v.run()
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventInterrupt:
			// A fresh snapshot arrived from the build goroutine.
		case *tcell.EventKey:
			if v.handleKey(ev) {
				v.stopBuild()
				return
			}
		}
	}
}

// handleKey processes one key event; returns true to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case 'r', 'R':
		v.regenerate()
	case '+', '=':
		v.sections++
		v.regenerate()
	case '-', '_':
		if v.sections > 1 {
			v.sections--
			v.regenerate()
		}
	case 'c', 'C':
		v.showCenter = !v.showCenter
	case 'j', 'J':
		v.save("json")
	case 'v', 'V':
		v.save("svg")
	case 'p', 'P':
		v.save("png")
	}
	return false
}

// regenerate discards any running build and starts a fresh one. Snapshots
// stream back through the subscription so the viewer shows the track growing
// and backtracking.
func (v *Viewer) regenerate() {
	v.stopBuild()

	cfg := v.cfg
	if v.seed >= 0 {
		cfg.Rand = rand.New(rand.NewSource(v.seed))
	} else {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancelBuild = cancel

	v.mu.Lock()
	v.building = true
	v.track = nil
	v.mu.Unlock()
	v.setMessage(fmt.Sprintf("Generating %d sections...", v.sections), MsgInfo)

	b := track.NewBuilder(cfg)
	b.Subscribe(func(t track.Track) {
		v.mu.Lock()
		v.track = t
		v.mu.Unlock()
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		// Slow the stream down enough to watch.
		time.Sleep(15 * time.Millisecond)
	})

	sections := v.sections
	go func() {
		t, err := b.MakeTrack(ctx, sections)

		v.mu.Lock()
		v.building = false
		if err == nil {
			v.track = t
		}
		v.mu.Unlock()

		if err != nil {
			if ctx.Err() == nil {
				v.setMessage(fmt.Sprintf("Generation failed: %v", err), MsgError)
			}
		} else {
			v.setMessage(fmt.Sprintf("Done: %d sections", len(t)), MsgSuccess)
		}
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
}

func (v *Viewer) stopBuild() {
	if v.cancelBuild != nil {
		v.cancelBuild()
		v.cancelBuild = nil
	}
}

// snapshot returns the track to draw and whether a build is in progress.
func (v *Viewer) snapshot() (track.Track, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.track, v.building
}

func (v *Viewer) setMessage(msg string, mt MessageType) {
	v.mu.Lock()
	v.message = msg
	v.messageType = mt
	v.mu.Unlock()
}

func (v *Viewer) save(format string) {
	t, building := v.snapshot()
	if building || len(t) == 0 {
		v.setMessage("Nothing to save yet", MsgError)
		return
	}

	v.saveCount++
	name := fmt.Sprintf("track-%d.%s", v.saveCount, format)
	var err error

	switch format {
	case "json":
		var data []byte
		data, err = trackfile.ToJSON(t, "", true)
		if err == nil {
			err = os.WriteFile(name, data, 0644)
		}
	case "svg":
		opts := trackfile.DefaultSVGOptions()
		opts.ShowCenter = v.showCenter
		err = os.WriteFile(name, []byte(trackfile.GenerateSVG(t, opts)), 0644)
	case "png":
		opts := trackfile.DefaultPNGOptions()
		opts.ShowCenter = v.showCenter
		var file *os.File
		file, err = os.Create(name)
		if err == nil {
			err = trackfile.RenderPNG(t, file, opts)
			file.Close()
		}
	}

	if err != nil {
		v.setMessage(fmt.Sprintf("Save failed: %v", err), MsgError)
		return
	}
	v.setMessage(fmt.Sprintf("Written: %s", name), MsgSuccess)
}
