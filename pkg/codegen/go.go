package codegen

import (
	"fmt"
	"strings"

	"github.com/ha1tch/track-toolkit/pkg/track"
)

// GenerateGo generates Go code with the track as package data.
// The generated code is compatible with both standard Go and TinyGo.
func GenerateGo(t track.Track, trackName, packageName string) string {
	var sb strings.Builder
	typeName := toPascalCase(sanitizeName(trackName))
	if typeName == "" {
		typeName = "Track"
	}
	if packageName == "" {
		packageName = "trackdata"
	}
	l := flatten(t)

	sb.WriteString(fmt.Sprintf(`// Code generated from a track definition. DO NOT EDIT.
// Track: %s

package %s

`, trackName, packageName))

	sb.WriteString(fmt.Sprintf("// %sCurve is a cubic Bezier: x0,y0, x1,y1, x2,y2, x3,y3.\n", typeName))
	sb.WriteString(fmt.Sprintf("type %sCurve [8]float64\n\n", typeName))

	sb.WriteString(fmt.Sprintf("// %sSection addresses one section's curves in the curve table.\n", typeName))
	sb.WriteString(fmt.Sprintf("type %sSection struct {\n", typeName))
	sb.WriteString("\tCenter     int\n")
	sb.WriteString("\tLeftStart  int\n")
	sb.WriteString("\tLeftCount  int\n")
	sb.WriteString("\tRightStart int\n")
	sb.WriteString("\tRightCount int\n")
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("var %sCurves = [...]%sCurve{\n", typeName, typeName))
	for _, c := range l.curves {
		row := curveRow(c)
		sb.WriteString("\t{")
		for i, v := range row {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%g", v))
		}
		sb.WriteString("},\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("var %sSections = [...]%sSection{\n", typeName, typeName))
	for _, s := range l.sections {
		sb.WriteString(fmt.Sprintf("\t{Center: %d, LeftStart: %d, LeftCount: %d, RightStart: %d, RightCount: %d},\n",
			s.center, s.leftStart, s.leftCount, s.rightStart, s.rightCount))
	}
	sb.WriteString("}\n")

	return sb.String()
}

// toPascalCase converts a sanitized name to PascalCase.
func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
