package trackfile

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

// SVGOptions controls native SVG rendering.
type SVGOptions struct {
	Width       int     // canvas width in pixels
	Height      int     // canvas height in pixels
	Title       string  // diagram title
	TitleSize   int     // font size for title (0 = 18)
	Padding     int     // padding around edges
	StrokeWidth float64 // edge stroke width in pixels
	ShowCenter  bool    // draw the centreline as a dashed path
}

// DefaultSVGOptions returns sensible defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:       800,
		Height:      600,
		TitleSize:   18,
		Padding:     40,
		StrokeWidth: 2,
		ShowCenter:  true,
	}
}

// viewTransform maps track coordinates onto a canvas: uniform scale to fit,
// content centred in the available area, Y flipped so the track is drawn with
// Y increasing upward.
type viewTransform struct {
	scale            float64
	offsetX, offsetY float64
}

func (v viewTransform) apply(p geom.Point) (float64, float64) {
	return p.X*v.scale + v.offsetX, -p.Y*v.scale + v.offsetY
}

// fitTransform computes the transform that fits box into a width x height
// area with the given padding on every side and extra space at the top.
func fitTransform(box geom.Box, width, height, padding int, topSpace float64) viewTransform {
	contentW := box.MaxX - box.MinX
	contentH := box.MaxY - box.MinY
	// Degenerate extents still need a finite scale.
	if contentW < 1e-9 {
		contentW = 1e-9
	}
	if contentH < 1e-9 {
		contentH = 1e-9
	}

	availW := float64(width - 2*padding)
	availH := float64(height-2*padding) - topSpace
	scale := math.Min(availW/contentW, availH/contentH)

	offsetX := float64(padding) + (availW-contentW*scale)/2 - box.MinX*scale
	// Y is flipped: the box's MaxY lands at the top of the content area.
	offsetY := float64(padding) + topSpace + (availH-contentH*scale)/2 + box.MaxY*scale
	return viewTransform{scale: scale, offsetX: offsetX, offsetY: offsetY}
}

// trackBBox returns the bounding box over every curve of every section.
func trackBBox(t track.Track) geom.Box {
	return geom.BBoxOf(t.Curves())
}

// GenerateSVG renders a track to SVG without external dependencies.
func GenerateSVG(t track.Track, opts SVGOptions) string {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 600
	}
	if opts.TitleSize == 0 {
		opts.TitleSize = 18
	}
	if opts.Padding == 0 {
		opts.Padding = 40
	}
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = 2
	}

	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 35
	}
	view := fitTransform(trackBBox(t), opts.Width, opts.Height, opts.Padding, titleSpace)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<style>
  .edge { fill: none; stroke: #333; stroke-width: %.1f; stroke-linecap: round; }
  .centreline { fill: none; stroke: #999; stroke-width: %.1f; stroke-dasharray: 6 6; }
  .title { font-family: sans-serif; font-size: %dpx; font-weight: bold; text-anchor: middle; }
</style>
<rect width="%d" height="%d" fill="white"/>
`, opts.Width, opts.Height, opts.Width, opts.Height,
		opts.StrokeWidth, opts.StrokeWidth/2, opts.TitleSize, opts.Width, opts.Height))

	if opts.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="25" class="title">%s</text>
`, opts.Width/2, html.EscapeString(opts.Title)))
	}

	for _, s := range t {
		writeChainPath(&sb, s.LeftEdge, view, "edge")
		writeChainPath(&sb, s.RightEdge, view, "edge")
	}
	if opts.ShowCenter {
		for _, s := range t {
			writeChainPath(&sb, []geom.Cubic{s.Center}, view, "centreline")
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// writeChainPath emits one <path> for a chain of cubics, moving between
// curves so small seams in the chain stay visible rather than being bridged.
func writeChainPath(sb *strings.Builder, chain []geom.Cubic, view viewTransform, class string) {
	if len(chain) == 0 {
		return
	}
	var d strings.Builder
	for i, c := range chain {
		x0, y0 := view.apply(c.P0)
		x1, y1 := view.apply(c.P1)
		x2, y2 := view.apply(c.P2)
		x3, y3 := view.apply(c.P3)
		if i == 0 {
			d.WriteString(fmt.Sprintf("M%.2f,%.2f ", x0, y0))
		} else {
			prevX, prevY := view.apply(chain[i-1].P3)
			if math.Hypot(x0-prevX, y0-prevY) > 0.01 {
				d.WriteString(fmt.Sprintf("M%.2f,%.2f ", x0, y0))
			}
		}
		d.WriteString(fmt.Sprintf("C%.2f,%.2f %.2f,%.2f %.2f,%.2f ", x1, y1, x2, y2, x3, y3))
	}
	sb.WriteString(fmt.Sprintf(`<path d="%s" class="%s"/>
`, strings.TrimSpace(d.String()), class))
}
