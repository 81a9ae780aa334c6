// Curve-curve, curve-self and line-curve intersection.

package geom

import (
	"math"
	"sort"
)

// TPair is one intersection, as parameters on each of the two curves.
type TPair struct {
	T1, T2 float64
}

// Overlaps is the broad-phase check: do the bounding boxes of two curves
// intersect at all.
func Overlaps(a, b Cubic) bool {
	return a.BBox().Overlaps(b.BBox())
}

// Intersections returns the intersections between two curves. Both curves
// are reduced to simple segments and overlapping segment pairs are refined
// by recursive box subdivision until both boxes shrink below threshold.
func Intersections(a, b Cubic, threshold float64) []TPair {
	return segmentIntersections(a.Reduce(), b.Reduce(), threshold)
}

// SelfIntersections returns the parameter pairs where a curve crosses
// itself. Adjacent reduced segments share an endpoint and are skipped.
func SelfIntersections(c Cubic, threshold float64) []TPair {
	reduced := c.Reduce()
	var out []TPair
	for i := 0; i+2 < len(reduced); i++ {
		out = append(out, segmentIntersections(reduced[i:i+1], reduced[i+2:], threshold)...)
	}
	return out
}

// segmentIntersections collects intersections between two segment sets.
func segmentIntersections(s1, s2 []Segment, threshold float64) []TPair {
	seen := make(map[TPair]bool)
	var out []TPair
	for _, a := range s1 {
		for _, b := range s2 {
			if !a.Curve.BBox().Overlaps(b.Curve.BBox()) {
				continue
			}
			pairIteration(a, b, threshold, seen, &out)
		}
	}
	return out
}

// pairIteration recursively halves both segments, keeping only pairs whose
// boxes still overlap, until both boxes are smaller than threshold.
func pairIteration(a, b Segment, threshold float64, seen map[TPair]bool, out *[]TPair) {
	ba := a.Curve.BBox()
	bb := b.Curve.BBox()
	if ba.size() < threshold && bb.size() < threshold {
		pair := TPair{
			T1: quantize((a.T1 + a.T2) / 2),
			T2: quantize((b.T1 + b.T2) / 2),
		}
		if !seen[pair] {
			seen[pair] = true
			*out = append(*out, pair)
		}
		return
	}
	a1, a2 := splitSegment(a)
	b1, b2 := splitSegment(b)
	for _, p := range [4][2]Segment{{a1, b1}, {a1, b2}, {a2, b1}, {a2, b2}} {
		if p[0].Curve.BBox().Overlaps(p[1].Curve.BBox()) {
			pairIteration(p[0], p[1], threshold, seen, out)
		}
	}
}

// splitSegment halves a segment, mapping the parameter ranges onto the
// source curve.
func splitSegment(s Segment) (Segment, Segment) {
	left, right := s.Curve.Split(0.5)
	mid := (s.T1 + s.T2) / 2
	return Segment{left, s.T1, mid}, Segment{right, mid, s.T2}
}

// quantize snaps t to five decimal places so near-identical hits from
// neighbouring recursion branches collapse into one.
func quantize(t float64) float64 {
	return math.Floor(1e5*t) / 1e5
}

// LineIntersections returns the curve parameters where c crosses the
// segment p1-p2. The curve is rotated onto the segment's axis and the
// resulting cubic is solved directly; hits outside the segment's bounding
// box are dropped.
func LineIntersections(p1, p2 Point, c Cubic) []float64 {
	const eps = 1e-6
	minX := math.Min(p1.X, p2.X) - eps
	maxX := math.Max(p1.X, p2.X) + eps
	minY := math.Min(p1.Y, p2.Y) - eps
	maxY := math.Max(p1.Y, p2.Y) + eps

	var out []float64
	for _, t := range alignedCubicRoots(c.points(), p1, p2) {
		p := c.At(t)
		if p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY {
			out = append(out, t)
		}
	}
	sort.Float64s(out)
	return out
}

// alignedCubicRoots aligns the control points to the line p1-p2 and returns
// the parameters in [0,1] where the aligned Y coordinate is zero, via
// Cardano's method.
func alignedCubicRoots(points [4]Point, p1, p2 Point) []float64 {
	aligned := alignTo(points, p1, p2)
	pa := aligned[0].Y
	pb := aligned[1].Y
	pc := aligned[2].Y
	pd := aligned[3].Y

	inUnit := func(t float64) bool { return t >= 0 && t <= 1 }
	approxZero := func(v float64) bool { return math.Abs(v) < 1e-6 }

	d := -pa + 3*pb - 3*pc + pd
	a := 3*pa - 6*pb + 3*pc
	b := -3*pa + 3*pb
	cc := pa

	if approxZero(d) {
		// Not cubic: quadratic or lower.
		if approxZero(a) {
			if approxZero(b) {
				return nil
			}
			t := -cc / b
			if inUnit(t) {
				return []float64{t}
			}
			return nil
		}
		disc := b*b - 4*a*cc
		if disc < 0 {
			return nil
		}
		q := math.Sqrt(disc)
		var out []float64
		for _, t := range []float64{(q - b) / (2 * a), (-b - q) / (2 * a)} {
			if inUnit(t) {
				out = append(out, t)
			}
		}
		return out
	}

	a /= d
	b /= d
	cc /= d

	p := (3*b - a*a) / 3
	p3 := p / 3
	q := (2*a*a*a - 9*a*b + 27*cc) / 27
	q2 := q / 2
	disc := q2*q2 + p3*p3*p3

	var roots []float64
	switch {
	case disc < 0:
		mp3 := -p / 3
		r := math.Sqrt(mp3 * mp3 * mp3)
		t := -q / (2 * r)
		if t > 1 {
			t = 1
		}
		if t < -1 {
			t = -1
		}
		phi := math.Acos(t)
		t1 := 2 * math.Cbrt(r)
		roots = []float64{
			t1*math.Cos(phi/3) - a/3,
			t1*math.Cos((phi+2*math.Pi)/3) - a/3,
			t1*math.Cos((phi+4*math.Pi)/3) - a/3,
		}
	case disc == 0:
		u1 := math.Cbrt(-q2)
		if q2 >= 0 {
			u1 = -math.Cbrt(q2)
		}
		roots = []float64{2*u1 - a/3, -u1 - a/3}
	default:
		sd := math.Sqrt(disc)
		roots = []float64{math.Cbrt(-q2+sd) - math.Cbrt(q2+sd) - a/3}
	}

	var out []float64
	for _, t := range roots {
		if inUnit(t) {
			out = append(out, t)
		}
	}
	return out
}
