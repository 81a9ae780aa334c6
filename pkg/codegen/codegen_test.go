package codegen

import (
	"strings"
	"testing"

	"github.com/ha1tch/track-toolkit/pkg/geom"
	"github.com/ha1tch/track-toolkit/pkg/track"
)

func testTrack() track.Track {
	return track.Track{
		&track.Section{
			Center: geom.Cubic{
				P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 1, Y: 1},
				P2: geom.Point{X: 2, Y: 1}, P3: geom.Point{X: 3, Y: 0},
			},
			LeftEdge: []geom.Cubic{
				geom.Line(geom.Point{X: 0, Y: 0.5}, geom.Point{X: 3, Y: 0.5}),
				geom.Line(geom.Point{X: 3, Y: 0.5}, geom.Point{X: 4, Y: 0.5}),
			},
			RightEdge: []geom.Cubic{
				geom.Line(geom.Point{X: 0, Y: -0.5}, geom.Point{X: 3, Y: -0.5}),
			},
		},
		&track.Section{
			Center: geom.Line(geom.Point{X: 3, Y: 0}, geom.Point{X: 6, Y: 0}),
			LeftEdge: []geom.Cubic{
				geom.Line(geom.Point{X: 3, Y: 0.5}, geom.Point{X: 6, Y: 0.5}),
			},
			RightEdge: []geom.Cubic{
				geom.Line(geom.Point{X: 3, Y: -0.5}, geom.Point{X: 6, Y: -0.5}),
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	l := flatten(testTrack())

	if len(l.curves) != 7 {
		t.Fatalf("expected 7 curves, got %d", len(l.curves))
	}
	if len(l.sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(l.sections))
	}

	s0 := l.sections[0]
	if s0.center != 0 || s0.leftStart != 1 || s0.leftCount != 2 || s0.rightStart != 3 || s0.rightCount != 1 {
		t.Errorf("section 0 indices wrong: %+v", s0)
	}
	s1 := l.sections[1]
	if s1.center != 4 || s1.leftStart != 5 || s1.rightStart != 6 {
		t.Errorf("section 1 indices wrong: %+v", s1)
	}
}

func TestGenerateC(t *testing.T) {
	out := GenerateC(testTrack(), "Monza Short")

	for _, want := range []string{
		"#ifndef MONZA_SHORT_TRACK_H",
		"#define MONZA_SHORT_SECTION_COUNT 2",
		"#define MONZA_SHORT_CURVE_COUNT 7",
		"static const float monza_short_curves[MONZA_SHORT_CURVE_COUNT][8]",
		"monza_short_section_t",
		"{0, 1, 2, 3, 1},",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("C output missing %q", want)
		}
	}
}

func TestGenerateGo(t *testing.T) {
	out := GenerateGo(testTrack(), "Monza Short", "circuits")

	for _, want := range []string{
		"package circuits",
		"type MonzaShortCurve [8]float64",
		"type MonzaShortSection struct",
		"var MonzaShortCurves = [...]MonzaShortCurve{",
		"{Center: 0, LeftStart: 1, LeftCount: 2, RightStart: 3, RightCount: 1},",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Go output missing %q", want)
		}
	}
}

func TestGenerateRust(t *testing.T) {
	out := GenerateRust(testTrack(), "Monza Short")

	for _, want := range []string{
		"pub type Curve = [f64; 8];",
		"pub const MONZA_SHORT_CURVES: [Curve; 7]",
		"pub const MONZA_SHORT_SECTIONS: [Section; 2]",
		"Section { center: 0, left_start: 1, left_count: 2, right_start: 3, right_count: 1 },",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Rust output missing %q", want)
		}
	}
}

func TestFormatRustFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{-3, "-3.0"},
		{1e21, "1e+21"},
	}
	for _, tc := range tests {
		if got := formatRustFloat(tc.in); got != tc.want {
			t.Errorf("formatRustFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Monza Short", "monza_short"},
		{"spa-francorchamps", "spa_francorchamps"},
		{"track 2", "track_2"},
		{"123", "23"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
