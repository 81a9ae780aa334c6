package geom

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	a := Line(Point{0, 0}, Point{1, 1})
	b := Line(Point{0, 1}, Point{1, 0})
	c := Line(Point{5, 5}, Point{6, 6})

	if !Overlaps(a, b) {
		t.Error("crossing curves should overlap")
	}
	if Overlaps(a, c) {
		t.Error("distant curves should not overlap")
	}
}

func TestIntersectionsCrossingLines(t *testing.T) {
	a := Line(Point{0, 0}, Point{1, 1})
	b := Line(Point{0, 1}, Point{1, 0})

	pairs := Intersections(a, b, 0.001)
	if len(pairs) == 0 {
		t.Fatal("expected an intersection")
	}
	for _, p := range pairs {
		if math.Abs(p.T1-0.5) > 0.01 || math.Abs(p.T2-0.5) > 0.01 {
			t.Errorf("expected crossing near t=0.5/0.5, got %v/%v", p.T1, p.T2)
		}
	}
}

func TestIntersectionsDisjoint(t *testing.T) {
	a := Line(Point{0, 0}, Point{1, 0})
	b := Line(Point{0, 1}, Point{1, 1})
	if pairs := Intersections(a, b, 0.001); len(pairs) != 0 {
		t.Errorf("expected no intersections, got %v", pairs)
	}
}

func TestIntersectionsCurveAgainstLine(t *testing.T) {
	// A horizontal chord at y=0.8 crosses curve B twice.
	chord := Line(Point{-0.5, 0.8}, Point{1.5, 0.8})
	pairs := Intersections(curveB, chord, 0.001)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 intersections, got %d: %v", len(pairs), pairs)
	}
	want := []float64{0.47155, 0.70312}
	for i, p := range pairs {
		if math.Abs(p.T1-want[i]) > 0.002 {
			t.Errorf("intersection %d at t=%v, expected ~%v", i, p.T1, want[i])
		}
	}
}

func TestSelfIntersections(t *testing.T) {
	loop := Cubic{Point{0, 0}, Point{2, 1}, Point{-1, 1}, Point{1, 0}}
	pairs := SelfIntersections(loop, 0.001)
	if len(pairs) == 0 {
		t.Fatal("expected the loop to self-intersect")
	}
	for _, p := range pairs {
		if math.Abs(p.T1-0.1126) > 0.002 || math.Abs(p.T2-0.8873) > 0.002 {
			t.Errorf("expected crossing near 0.1126/0.8873, got %v/%v", p.T1, p.T2)
		}
	}
}

func TestSelfIntersectionsSimpleArc(t *testing.T) {
	if pairs := SelfIntersections(curveB, 0.001); len(pairs) != 0 {
		t.Errorf("expected no self-intersections, got %v", pairs)
	}
}

func TestLineIntersections(t *testing.T) {
	hits := LineIntersections(Point{-0.5, 0.8}, Point{1.5, 0.8}, curveB)
	if len(hits) != 2 {
		t.Fatalf("expected 2 crossings, got %d: %v", len(hits), hits)
	}
	want := []float64{0.47155, 0.70318}
	for i, h := range hits {
		if math.Abs(h-want[i]) > 1e-4 {
			t.Errorf("crossing %d at t=%v, expected ~%v", i, h, want[i])
		}
	}
}

func TestLineIntersectionsBoundedToSegment(t *testing.T) {
	// The same chord shifted away: the infinite line still crosses, the
	// segment does not.
	hits := LineIntersections(Point{2, 0.8}, Point{3, 0.8}, curveB)
	if len(hits) != 0 {
		t.Errorf("expected no crossings within the segment, got %v", hits)
	}
}

func TestLineIntersectionsMiss(t *testing.T) {
	hits := LineIntersections(Point{-0.5, 2}, Point{1.5, 2}, curveB)
	if len(hits) != 0 {
		t.Errorf("expected no crossings, got %v", hits)
	}
}

func TestBBoxOf(t *testing.T) {
	curves := []Cubic{
		Line(Point{0, 0}, Point{1, 1}),
		Line(Point{-1, 2}, Point{0.5, 3}),
	}
	box := BBoxOf(curves)
	if box.MinX != -1 || box.MinY != 0 || box.MaxX != 1 || box.MaxY != 3 {
		t.Errorf("unexpected union box: %+v", box)
	}
}
