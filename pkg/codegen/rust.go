package codegen

import (
	"fmt"
	"strings"

	"github.com/ha1tch/track-toolkit/pkg/track"
)

// GenerateRust generates Rust code with the track as const data.
func GenerateRust(t track.Track, trackName string) string {
	var sb strings.Builder
	name := sanitizeName(trackName)
	if name == "" {
		name = "track"
	}
	NAME := strings.ToUpper(name)
	l := flatten(t)

	sb.WriteString(fmt.Sprintf(`//! Generated track: %s

`, trackName))

	sb.WriteString("/// Cubic Bezier: x0,y0, x1,y1, x2,y2, x3,y3.\n")
	sb.WriteString("pub type Curve = [f64; 8];\n\n")

	sb.WriteString("/// One section's curves, addressed into the curve table.\n")
	sb.WriteString("#[derive(Debug, Clone, Copy)]\n")
	sb.WriteString("pub struct Section {\n")
	sb.WriteString("    pub center: usize,\n")
	sb.WriteString("    pub left_start: usize,\n")
	sb.WriteString("    pub left_count: usize,\n")
	sb.WriteString("    pub right_start: usize,\n")
	sb.WriteString("    pub right_count: usize,\n")
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("pub const %s_CURVES: [Curve; %d] = [\n", NAME, len(l.curves)))
	for _, c := range l.curves {
		row := curveRow(c)
		sb.WriteString("    [")
		for i, v := range row {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatRustFloat(v))
		}
		sb.WriteString("],\n")
	}
	sb.WriteString("];\n\n")

	sb.WriteString(fmt.Sprintf("pub const %s_SECTIONS: [Section; %d] = [\n", NAME, len(l.sections)))
	for _, s := range l.sections {
		sb.WriteString(fmt.Sprintf("    Section { center: %d, left_start: %d, left_count: %d, right_start: %d, right_count: %d },\n",
			s.center, s.leftStart, s.leftCount, s.rightStart, s.rightCount))
	}
	sb.WriteString("];\n")

	return sb.String()
}

// formatRustFloat renders a float with a decimal point, which Rust requires
// for f64 literals.
func formatRustFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
