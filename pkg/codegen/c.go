// Package codegen generates embeddable source code from track definitions.
package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

// layout flattens a track into one curve table plus per-section indices, the
// shape all three backends emit.
type layout struct {
	curves   []geom.Cubic
	sections []sectionIndex
}

// sectionIndex addresses a section's curves inside the flat table. The centre
// curve is one entry; each edge is a contiguous run.
type sectionIndex struct {
	center                 int
	leftStart, leftCount   int
	rightStart, rightCount int
}

func flatten(t track.Track) layout {
	var l layout
	for _, s := range t {
		var idx sectionIndex
		idx.center = len(l.curves)
		l.curves = append(l.curves, s.Center)
		idx.leftStart = len(l.curves)
		idx.leftCount = len(s.LeftEdge)
		l.curves = append(l.curves, s.LeftEdge...)
		idx.rightStart = len(l.curves)
		idx.rightCount = len(s.RightEdge)
		l.curves = append(l.curves, s.RightEdge...)
		l.sections = append(l.sections, idx)
	}
	return l
}

// curveRow returns the eight coordinates of a cubic in control point order.
func curveRow(c geom.Cubic) [8]float64 {
	return [8]float64{c.P0.X, c.P0.Y, c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y}
}

// GenerateC generates a C header with the track as static data.
func GenerateC(t track.Track, trackName string) string {
	var sb strings.Builder
	name := sanitizeName(trackName)
	if name == "" {
		name = "track"
	}
	NAME := strings.ToUpper(name)
	l := flatten(t)

	sb.WriteString(fmt.Sprintf(`// Generated track: %s

#ifndef %s_TRACK_H
#define %s_TRACK_H

#include <stdint.h>

`, trackName, NAME, NAME))

	sb.WriteString("// Counts\n")
	sb.WriteString(fmt.Sprintf("#define %s_SECTION_COUNT %d\n", NAME, len(l.sections)))
	sb.WriteString(fmt.Sprintf("#define %s_CURVE_COUNT %d\n\n", NAME, len(l.curves)))

	sb.WriteString("// Cubic Bezier curves: x0,y0, x1,y1, x2,y2, x3,y3\n")
	sb.WriteString(fmt.Sprintf("static const float %s_curves[%s_CURVE_COUNT][8] = {\n", name, NAME))
	for _, c := range l.curves {
		row := curveRow(c)
		sb.WriteString("    {")
		for i, v := range row {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%gf", v))
		}
		sb.WriteString("},\n")
	}
	sb.WriteString("};\n\n")

	sb.WriteString("// Section: centre curve index plus edge runs in the curve table\n")
	sb.WriteString("typedef struct {\n")
	sb.WriteString("    uint16_t center;\n")
	sb.WriteString("    uint16_t left_start;\n")
	sb.WriteString("    uint16_t left_count;\n")
	sb.WriteString("    uint16_t right_start;\n")
	sb.WriteString("    uint16_t right_count;\n")
	sb.WriteString(fmt.Sprintf("} %s_section_t;\n\n", name))

	sb.WriteString(fmt.Sprintf("static const %s_section_t %s_sections[%s_SECTION_COUNT] = {\n", name, name, NAME))
	for _, s := range l.sections {
		sb.WriteString(fmt.Sprintf("    {%d, %d, %d, %d, %d},\n",
			s.center, s.leftStart, s.leftCount, s.rightStart, s.rightCount))
	}
	sb.WriteString("};\n\n")

	sb.WriteString(fmt.Sprintf("#endif // %s_TRACK_H\n", NAME))
	return sb.String()
}

// sanitizeName converts a name to a valid C identifier.
func sanitizeName(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
			sb.WriteRune(unicode.ToLower(r))
		} else if r == ' ' || r == '-' {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
