// Native PNG rendering for tracks.
// Mirrors the SVG renderer output using Go's image packages.

package trackfile

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width      int
	Height     int
	Padding    int
	Title      string
	ShowCenter bool
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Width:      800,
		Height:     600,
		Padding:    40,
		ShowCenter: true,
	}
}

// Colors used in rendering
var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{51, 51, 51, 255}    // #333
	colorGray  = color.RGBA{153, 153, 153, 255} // #999
)

// renderContext holds rendering parameters including scale
type renderContext struct {
	img       *image.RGBA
	scale     float64   // multiplier for line thickness
	lineWidth float64   // base line width (scaled)
	face      font.Face // font face for text rendering
}

func newRenderContext(img *image.RGBA, scale int) *renderContext {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // should never happen with embedded font
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(18 * scale),
		DPI:     72,
		Hinting: font.HintingNone, // No hinting - we'll supersample instead
	})
	if err != nil {
		panic(err)
	}

	return &renderContext{
		img:       img,
		scale:     float64(scale),
		lineWidth: float64(scale) * 2, // 2px base line width
		face:      face,
	}
}

// RenderPNG renders a track to PNG format.
// Uses 4x supersampling for smoother output.
func RenderPNG(t track.Track, w io.Writer, opts PNGOptions) error {
	if opts.Width == 0 {
		opts.Width = 800
	}
	if opts.Height == 0 {
		opts.Height = 600
	}
	if opts.Padding == 0 {
		opts.Padding = 40
	}

	// Render at 4x size for supersampling
	scale := 4
	largeOpts := opts
	largeOpts.Width = opts.Width * scale
	largeOpts.Height = opts.Height * scale
	largeOpts.Padding = opts.Padding * scale

	largeImg := renderPNGInternal(t, largeOpts, scale)

	// Downsample to target size using high-quality interpolation
	finalImg := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(finalImg, finalImg.Bounds(), largeImg, largeImg.Bounds(), draw.Over, nil)

	return png.Encode(w, finalImg)
}

// renderPNGInternal renders the track to an image at the specified size.
func renderPNGInternal(t track.Track, opts PNGOptions, scale int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	ctx := newRenderContext(img, scale)

	// Fill background white
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			img.Set(x, y, colorWhite)
		}
	}

	titleSpace := 0.0
	if opts.Title != "" {
		titleSpace = 35 * ctx.scale
	}
	view := fitTransform(trackBBox(t), opts.Width, opts.Height, opts.Padding, titleSpace)

	if opts.Title != "" {
		drawTextCentered(ctx, opts.Width/2, 25*scale, opts.Title, colorBlack)
	}

	for _, s := range t {
		for _, c := range s.LeftEdge {
			drawCubic(ctx, c, view, colorBlack, ctx.lineWidth)
		}
		for _, c := range s.RightEdge {
			drawCubic(ctx, c, view, colorBlack, ctx.lineWidth)
		}
	}
	if opts.ShowCenter {
		for _, s := range t {
			drawCubicDashed(ctx, s.Center, view, colorGray, ctx.lineWidth/2)
		}
	}

	return img
}

// drawCubic draws a cubic curve by flattening it into short line segments.
func drawCubic(ctx *renderContext, c geom.Cubic, view viewTransform, col color.Color, width float64) {
	const steps = 100
	var prevX, prevY float64
	for i := 0; i <= steps; i++ {
		x, y := view.apply(c.At(float64(i) / steps))
		if i > 0 {
			drawLine(ctx, prevX, prevY, x, y, col, width)
		}
		prevX, prevY = x, y
	}
}

// drawCubicDashed draws a cubic as alternating drawn and skipped runs.
func drawCubicDashed(ctx *renderContext, c geom.Cubic, view viewTransform, col color.Color, width float64) {
	const steps = 100
	const dashRun = 5
	var prevX, prevY float64
	for i := 0; i <= steps; i++ {
		x, y := view.apply(c.At(float64(i) / steps))
		if i > 0 && (i/dashRun)%2 == 0 {
			drawLine(ctx, prevX, prevY, x, y, col, width)
		}
		prevX, prevY = x, y
	}
}

// drawLine draws a line between two points with the given thickness.
func drawLine(ctx *renderContext, x1, y1, x2, y2 float64, c color.Color, thickness float64) {
	img := ctx.img

	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}

	halfThick := thickness / 2

	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t

		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// drawTextCentered draws text centered at the given position using Go Regular font.
func drawTextCentered(ctx *renderContext, x, y int, text string, c color.Color) {
	width := font.MeasureString(ctx.face, text).Ceil()

	metrics := ctx.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	baselineY := y + int(float64(ascent)*0.15)

	point := fixed.Point26_6{
		X: fixed.I(x - width/2),
		Y: fixed.I(baselineY),
	}

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: ctx.face,
		Dot:  point,
	}
	d.DrawString(text)
}
