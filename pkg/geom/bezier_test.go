package geom

import (
	"math"
	"testing"
)

// The three regression curves below are pathological or near-pathological
// offset cases collected from generation runs; the expected values were
// computed with an independent numerical evaluation of the same offsetting
// scheme.

var (
	curveA = Cubic{
		Point{26.7647, 14.5081}, Point{26.7496, 15.7505},
		Point{26.7601, 14.6120}, Point{27.9975, 15.6740},
	}
	curveB = Cubic{
		Point{0, 0}, Point{1, 1}, Point{0, 1}, Point{0, 0.5},
	}
	curveC = Cubic{
		Point{-6.2699, -1.1923}, Point{-6.9787, -1.7832},
		Point{-6.3156, -0.6205}, Point{-6.9416, -0.5133},
	}
)

func outlineGaps(outline []Cubic) []float64 {
	gaps := make([]float64, len(outline))
	for i := range outline {
		next := outline[(i+1)%len(outline)]
		gaps[i] = outline[i].P3.Distance(next.P0)
	}
	return gaps
}

func totalLength(curves []Cubic) float64 {
	sum := 0.0
	for _, c := range curves {
		sum += c.Length()
	}
	return sum
}

func TestAtAndDerivative(t *testing.T) {
	line := Line(Point{0, 0}, Point{2, 0})

	if got := line.At(0.5); math.Abs(got.X-1) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("At(0.5): expected (1,0), got (%v,%v)", got.X, got.Y)
	}
	// A straight cubic with third-point controls has a constant derivative
	// equal to the chord.
	d := line.Derivative(0.3)
	if math.Abs(d.X-2) > 1e-12 || math.Abs(d.Y) > 1e-12 {
		t.Errorf("Derivative: expected (2,0), got (%v,%v)", d.X, d.Y)
	}
}

func TestLength(t *testing.T) {
	line := Line(Point{0, 0}, Point{3, 4})
	if got := line.Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected length 5, got %v", got)
	}

	// Arc length can only exceed the chord.
	if curveB.Length() < curveB.P0.Distance(curveB.P3) {
		t.Error("curve length shorter than its chord")
	}
}

func TestLinear(t *testing.T) {
	if !Line(Point{0, 0}, Point{1, 1}).Linear() {
		t.Error("straight cubic not reported linear")
	}
	if curveB.Linear() {
		t.Error("bent cubic reported linear")
	}
}

func TestSplitContinuity(t *testing.T) {
	left, right := curveB.Split(0.37)
	if left.P3 != right.P0 {
		t.Error("split halves do not share the cut point")
	}
	want := curveB.At(0.37)
	if left.P3.Distance(want) > 1e-12 {
		t.Errorf("cut point off-curve by %v", left.P3.Distance(want))
	}
}

func TestBBoxContainsCurve(t *testing.T) {
	box := curveB.BBox()
	for i := 0; i <= 20; i++ {
		p := curveB.At(float64(i) / 20)
		if p.X < box.MinX-1e-9 || p.X > box.MaxX+1e-9 ||
			p.Y < box.MinY-1e-9 || p.Y > box.MaxY+1e-9 {
			t.Errorf("point at t=%v outside bbox", float64(i)/20)
		}
	}
}

func TestProject(t *testing.T) {
	line := Line(Point{0, 0}, Point{2, 0})
	tt, dist := line.Project(Point{1, 1})
	if math.Abs(tt-0.5) > 1e-3 {
		t.Errorf("expected t=0.5, got %v", tt)
	}
	if math.Abs(dist-1) > 1e-3 {
		t.Errorf("expected distance 1, got %v", dist)
	}

	tt, dist = curveB.Project(Point{0.5, 1.2})
	if math.Abs(tt-0.518) > 1e-3 {
		t.Errorf("expected t=0.518, got %v", tt)
	}
	if math.Abs(dist-0.40600) > 1e-4 {
		t.Errorf("expected distance 0.40600, got %v", dist)
	}
}

func TestReduceCounts(t *testing.T) {
	tests := []struct {
		name  string
		curve Cubic
		want  int
	}{
		{"curve A", curveA, 4},
		{"curve B", curveB, 6},
		{"curve C", curveC, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.curve.Reduce()
			if len(got) != tc.want {
				t.Errorf("expected %d segments, got %d", tc.want, len(got))
			}
			for _, seg := range got {
				if !seg.Curve.Simple() {
					t.Errorf("segment [%v,%v] not simple", seg.T1, seg.T2)
				}
			}
		})
	}
}

func TestReduceCoversWholeCurve(t *testing.T) {
	segs := curveB.Reduce()
	if segs[0].T1 != 0 {
		t.Errorf("first segment starts at %v, expected 0", segs[0].T1)
	}
	if segs[len(segs)-1].T2 != 1 {
		t.Errorf("last segment ends at %v, expected 1", segs[len(segs)-1].T2)
	}
	for i := 1; i < len(segs); i++ {
		if math.Abs(segs[i].T1-segs[i-1].T2) > 1e-12 {
			t.Errorf("segments %d and %d not contiguous", i-1, i)
		}
	}
}

func TestScaleOffsetsByDistance(t *testing.T) {
	segs := curveB.Reduce()
	scaled, err := segs[0].Curve.Scale(0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Endpoints move exactly d along the end normals.
	if got := scaled.P0.Distance(segs[0].Curve.P0); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("start moved %v, expected 0.1", got)
	}
	if got := scaled.P3.Distance(segs[0].Curve.P3); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("end moved %v, expected 0.1", got)
	}
}

func TestScaleDegenerateLine(t *testing.T) {
	// End normals of a straight segment are parallel, so there is no pivot.
	if _, err := Line(Point{0, 0}, Point{1, 0}).Scale(0.1); err != ErrDegenerateCurve {
		t.Errorf("expected ErrDegenerateCurve, got %v", err)
	}
}

func TestOutlineScenarioA(t *testing.T) {
	const halfWidth = 0.0718
	outline, err := curveA.Outline(halfWidth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 10 {
		t.Fatalf("expected 10 outline curves, got %d", len(outline))
	}
	for i, g := range outlineGaps(outline) {
		if g > 0.0001 {
			t.Errorf("gap %v after curve %d", g, i)
		}
	}
	// The offset comes out far too short for this curve: the outline,
	// caps included, should be roughly twice the centre length plus the
	// cap widths, and here it is well under twice.
	if got, want := totalLength(outline), 2*curveA.Length(); got >= want {
		t.Errorf("expected abnormally short outline, got %v >= %v", got, want)
	}
}

func TestOutlineScenarioB(t *testing.T) {
	outline, err := curveB.Outline(0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 14 {
		t.Fatalf("expected 14 outline curves, got %d", len(outline))
	}
	for i, g := range outlineGaps(outline) {
		if g > 0.0001 {
			t.Errorf("gap %v after curve %d", g, i)
		}
	}
	if got, want := totalLength(outline), 2*curveB.Length(); got <= want {
		t.Errorf("outline unexpectedly short: %v <= %v", got, want)
	}
}

func TestOutlineScenarioC(t *testing.T) {
	outline, err := curveC.Outline(0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline) != 12 {
		t.Fatalf("expected 12 outline curves, got %d", len(outline))
	}
	var broken []int
	for i, g := range outlineGaps(outline) {
		if g > 0.001 {
			broken = append(broken, i)
		}
	}
	if len(broken) != 2 {
		t.Fatalf("expected exactly 2 gaps over 0.001, got %d at %v", len(broken), broken)
	}
	if broken[0] != 3 || broken[1] != 8 {
		t.Errorf("expected gaps after curves 3 and 8, got %v", broken)
	}
}

func TestOutlineCapsAreLines(t *testing.T) {
	outline, err := curveB.Outline(0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First curve and the curve past the forward chain are the caps.
	capIdx := []int{0, len(outline) / 2}
	for _, i := range capIdx {
		if !outline[i].Linear() {
			t.Errorf("cap at index %d not linear", i)
		}
		if got := outline[i].Length(); math.Abs(got-0.2) > 1e-9 {
			t.Errorf("cap at index %d has length %v, expected 0.2", i, got)
		}
	}
}
