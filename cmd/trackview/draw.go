package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleEdge       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCentre     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Pixel classes in the plot buffer. Edges win over the centreline when both
// land in the same cell.
const (
	pixEmpty = iota
	pixCentre
	pixEdge
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	t, building := v.snapshot()
	plotH := h - 2
	if plotH > 0 && len(t) > 0 {
		v.drawTrack(t, w, plotH)
	}

	v.drawStatusBar(w, h, len(t), building)
}

// drawTrack plots the track onto the cell grid using half-block characters,
// doubling the vertical resolution.
func (v *Viewer) drawTrack(t track.Track, w, h int) {
	pixW := w
	pixH := h * 2
	if pixW < 4 || pixH < 4 {
		return
	}

	pixels := make([]uint8, pixW*pixH)
	box := geom.BBoxOf(t.Curves())

	contentW := box.MaxX - box.MinX
	contentH := box.MaxY - box.MinY
	if contentW < 1e-9 {
		contentW = 1e-9
	}
	if contentH < 1e-9 {
		contentH = 1e-9
	}

	// Terminal cells are roughly twice as tall as wide; with half blocks the
	// pixel aspect is close to square, so a uniform scale keeps the shape.
	const pad = 2
	availW := float64(pixW - 2*pad)
	availH := float64(pixH - 2*pad)
	scale := availW / contentW
	if s := availH / contentH; s < scale {
		scale = s
	}
	offX := float64(pad) + (availW-contentW*scale)/2 - box.MinX*scale
	offY := float64(pad) + (availH-contentH*scale)/2 + box.MaxY*scale

	plot := func(c geom.Cubic, class uint8) {
		const steps = 400
		for i := 0; i <= steps; i++ {
			p := c.At(float64(i) / steps)
			x := int(p.X*scale + offX)
			y := int(-p.Y*scale + offY)
			if x < 0 || x >= pixW || y < 0 || y >= pixH {
				continue
			}
			if pixels[y*pixW+x] < class {
				pixels[y*pixW+x] = class
			}
		}
	}

	if v.showCenter {
		for _, s := range t {
			plot(s.Center, pixCentre)
		}
	}
	for _, s := range t {
		for _, c := range s.LeftEdge {
			plot(c, pixEdge)
		}
		for _, c := range s.RightEdge {
			plot(c, pixEdge)
		}
	}

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < pixW; cx++ {
			top := pixels[(cy*2)*pixW+cx]
			bottom := pixels[(cy*2+1)*pixW+cx]
			if top == pixEmpty && bottom == pixEmpty {
				continue
			}

			style := styleCentre
			if top == pixEdge || bottom == pixEdge {
				style = styleEdge
			}

			var ch rune
			switch {
			case top != pixEmpty && bottom != pixEmpty:
				ch = '█'
			case top != pixEmpty:
				ch = '▀'
			default:
				ch = '▄'
			}
			v.screen.SetContent(cx, cy, ch, nil, style)
		}
	}
}

func (v *Viewer) drawStatusBar(w, h, sections int, building bool) {
	if h < 2 {
		return
	}

	v.mu.Lock()
	message := v.message
	messageType := v.messageType
	v.mu.Unlock()

	state := fmt.Sprintf(" %d/%d sections ", sections, v.sections)
	if building {
		state += "[generating] "
	}

	msgStyle := styleMsgInfo
	switch messageType {
	case MsgError:
		msgStyle = styleMsgError
	case MsgSuccess:
		msgStyle = styleMsgSuccess
	}

	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-2, ' ', nil, styleStatus)
	}
	v.drawString(0, h-2, state, styleStatus)
	v.drawString(len(state)+1, h-2, message, msgStyle)

	help := " r regenerate  +/- sections  c centreline  j/v/p save  q quit"
	v.drawString(0, h-1, help, styleHelp)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
