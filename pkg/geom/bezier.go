// Cubic Bezier primitives: evaluation, arc length, reduction into simple
// segments, and constant-distance offsetting with end caps.

package geom

import (
	"errors"
	"math"
	"sort"
)

// ErrDegenerateCurve is returned when a curve cannot be offset, typically
// because its end normals are parallel or a control projection collapses.
var ErrDegenerateCurve = errors.New("geom: curve too degenerate to offset")

// linearTolerance bounds the summed chord-aligned deviation below which a
// curve counts as a straight segment.
const linearTolerance = 0.0001

// reduceStep is the parameter step used when cutting a curve into simple
// segments.
const reduceStep = 0.01

// Cubic is a cubic Bezier curve defined by four control points.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// Line returns a straight cubic from p1 to p2, with the interior control
// points placed at the third points of the chord.
func Line(p1, p2 Point) Cubic {
	return Cubic{p1, lerp(p1, p2, 1.0/3.0), lerp(p1, p2, 2.0/3.0), p2}
}

// Reversed returns the curve traversed end to start.
func (c Cubic) Reversed() Cubic {
	return Cubic{c.P3, c.P2, c.P1, c.P0}
}

// points returns the control points in order.
func (c Cubic) points() [4]Point {
	return [4]Point{c.P0, c.P1, c.P2, c.P3}
}

// At evaluates the curve at parameter t.
func (c Cubic) At(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return Point{
		a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// dpoints returns the control points of the first derivative (a quadratic).
func (c Cubic) dpoints() [3]Point {
	return [3]Point{
		c.P1.Sub(c.P0).Mul(3),
		c.P2.Sub(c.P1).Mul(3),
		c.P3.Sub(c.P2).Mul(3),
	}
}

// Derivative evaluates the tangent vector at parameter t. The result is not
// unit-normalised.
func (c Cubic) Derivative(t float64) Point {
	d := c.dpoints()
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	cc := t * t
	return Point{
		a*d[0].X + b*d[1].X + cc*d[2].X,
		a*d[0].Y + b*d[1].Y + cc*d[2].Y,
	}
}

// Normal returns the unit normal at parameter t, the tangent rotated a
// quarter turn clockwise.
func (c Cubic) Normal(t float64) Point {
	d := c.Derivative(t)
	q := d.Length()
	return Point{d.Y / q, -d.X / q}
}

// Length returns the arc length, computed with 24-point Legendre-Gauss
// quadrature over the derivative magnitude.
func (c Cubic) Length() float64 {
	const z = 0.5
	sum := 0.0
	for i := 0; i < len(lgAbscissae); i++ {
		t := z*lgAbscissae[i] + z
		sum += lgWeights[i] * c.Derivative(t).Length()
	}
	return z * sum
}

// Linear reports whether the curve is effectively a straight segment.
func (c Cubic) Linear() bool {
	aligned := alignTo(c.points(), c.P0, c.P3)
	sum := 0.0
	for _, p := range aligned {
		sum += math.Abs(p.Y)
	}
	return sum < linearTolerance
}

// Split cuts the curve at t using de Casteljau subdivision.
func (c Cubic) Split(t float64) (left, right Cubic) {
	p := c.points()
	a := lerp(p[0], p[1], t)
	b := lerp(p[1], p[2], t)
	d := lerp(p[2], p[3], t)
	ab := lerp(a, b, t)
	bd := lerp(b, d, t)
	mid := lerp(ab, bd, t)
	left = Cubic{p[0], a, ab, mid}
	right = Cubic{mid, bd, d, p[3]}
	return left, right
}

// Slice returns the sub-curve over [t1, t2]. t2 may exceed 1; the curve is
// extrapolated in that case, which the reduction pass relies on.
func (c Cubic) Slice(t1, t2 float64) Cubic {
	if t1 == 0 {
		left, _ := c.Split(t2)
		return left
	}
	if t2 == 1 {
		_, right := c.Split(t1)
		return right
	}
	_, right := c.Split(t1)
	sub, _ := right.Split((t2 - t1) / (1 - t1))
	return sub
}

// Extrema returns the sorted curve parameters in [0,1] where either
// coordinate of the first or second derivative has a root.
func (c Cubic) Extrema() []float64 {
	d1 := c.dpoints()
	d2 := [2]Point{
		d1[1].Sub(d1[0]).Mul(2),
		d1[2].Sub(d1[1]).Mul(2),
	}
	seen := make(map[float64]bool)
	var out []float64
	add := func(t float64) {
		if t >= 0 && t <= 1 && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, r := range quadRoots(d1[0].X, d1[1].X, d1[2].X) {
		add(r)
	}
	for _, r := range quadRoots(d1[0].Y, d1[1].Y, d1[2].Y) {
		add(r)
	}
	for _, r := range linRoots(d2[0].X, d2[1].X) {
		add(r)
	}
	for _, r := range linRoots(d2[0].Y, d2[1].Y) {
		add(r)
	}
	sort.Float64s(out)
	return out
}

// BBox returns the axis-aligned bounding box, evaluated at the curve ends
// and all extrema.
func (c Cubic) BBox() Box {
	ts := append([]float64{0, 1}, c.Extrema()...)
	p := c.At(ts[0])
	box := Box{p.X, p.Y, p.X, p.Y}
	for _, t := range ts[1:] {
		p = c.At(t)
		if p.X < box.MinX {
			box.MinX = p.X
		}
		if p.X > box.MaxX {
			box.MaxX = p.X
		}
		if p.Y < box.MinY {
			box.MinY = p.Y
		}
		if p.Y > box.MaxY {
			box.MaxY = p.Y
		}
	}
	return box
}

// Project returns the parameter of the closest point on the curve to p and
// the distance to it. A 100-step lookup table bounds the search, followed by
// a fine scan around the best entry.
func (c Cubic) Project(p Point) (t, dist float64) {
	const steps = 100
	mdist := math.MaxFloat64
	mpos := 0
	for i := 0; i <= steps; i++ {
		d := c.At(float64(i) / steps).Distance(p)
		if d < mdist {
			mdist = d
			mpos = i
		}
	}
	t1 := float64(mpos-1) / steps
	t2 := float64(mpos+1) / steps
	const step = 0.1 / steps
	mdist++
	ft := t1
	for tt := t1; tt < t2+step; tt += step {
		d := c.At(tt).Distance(p)
		if d < mdist {
			mdist = d
			ft = tt
		}
	}
	if ft < 0 {
		ft = 0
	}
	if ft > 1 {
		ft = 1
	}
	return ft, mdist
}

// Simple reports whether the curve is simple enough to offset in one piece:
// both control points on the same side of the chord, and end normals within
// sixty degrees of each other.
func (c Cubic) Simple() bool {
	a1 := angleAt(c.P0, c.P3, c.P1)
	a2 := angleAt(c.P0, c.P3, c.P2)
	if (a1 > 0 && a2 < 0) || (a1 < 0 && a2 > 0) {
		return false
	}
	n1 := c.Normal(0)
	n2 := c.Normal(1)
	s := n1.X*n2.X + n1.Y*n2.Y
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return math.Abs(math.Acos(s)) < math.Pi/3
}

// Segment is a sub-curve carrying its parameter range on the source curve.
type Segment struct {
	Curve  Cubic
	T1, T2 float64
}

// Reduce cuts the curve into simple segments: a first pass splits at the
// extrema, a second pass walks each piece in small parameter steps and cuts
// just before the segment stops being simple. A piece that cannot make
// progress within one step contributes nothing.
func (c Cubic) Reduce() []Segment {
	extrema := c.Extrema()
	hasZero, hasOne := false, false
	for _, e := range extrema {
		if e == 0 {
			hasZero = true
		}
		if e == 1 {
			hasOne = true
		}
	}
	if !hasZero {
		extrema = append([]float64{0}, extrema...)
	}
	if !hasOne {
		extrema = append(extrema, 1)
	}

	var pass1 []Segment
	t1 := extrema[0]
	for _, t2 := range extrema[1:] {
		pass1 = append(pass1, Segment{c.Slice(t1, t2), t1, t2})
		t1 = t2
	}

	var pass2 []Segment
	for _, p1 := range pass1 {
		t1, t2 := 0.0, 0.0
		stuck := false
		for t2 <= 1 && !stuck {
			for t2 = t1 + reduceStep; t2 <= 1+reduceStep; t2 += reduceStep {
				seg := p1.Curve.Slice(t1, t2)
				if !seg.Simple() {
					t2 -= reduceStep
					if math.Abs(t1-t2) < reduceStep {
						stuck = true
						break
					}
					seg = p1.Curve.Slice(t1, t2)
					pass2 = append(pass2, Segment{seg, mapRange(t1, p1.T1, p1.T2), mapRange(t2, p1.T1, p1.T2)})
					t1 = t2
					break
				}
			}
		}
		if !stuck && t1 < 1 {
			pass2 = append(pass2, Segment{p1.Curve.Slice(t1, 1), mapRange(t1, p1.T1, p1.T2), p1.T2})
		}
	}
	return pass2
}

// Scale offsets the curve by distance d along its normals. The curve must be
// simple; the offset pivots around the intersection of the two end normals.
func (c Cubic) Scale(d float64) (Cubic, error) {
	v0 := c.At(0)
	n0 := c.Normal(0)
	v1 := c.At(1)
	n1 := c.Normal(1)

	origin, ok := lineIntersection(v0.Add(n0.Mul(10)), v0, v1.Add(n1.Mul(10)), v1)
	if !ok {
		return Cubic{}, ErrDegenerateCurve
	}

	var np [4]Point
	np[0] = c.P0.Add(n0.Mul(d))
	np[3] = c.P3.Add(n1.Mul(d))

	d0 := c.Derivative(0)
	p1, ok := lineIntersection(np[0], np[0].Add(d0), origin, c.P1)
	if !ok {
		return Cubic{}, ErrDegenerateCurve
	}
	np[1] = p1

	d1 := c.Derivative(1)
	p2, ok := lineIntersection(np[3], np[3].Add(d1), origin, c.P2)
	if !ok {
		return Cubic{}, ErrDegenerateCurve
	}
	np[2] = p2

	return Cubic{np[0], np[1], np[2], np[3]}, nil
}

// Outline returns the closed offset boundary of the curve at distance d on
// each side: a start cap, the forward offset chain, an end cap, and the
// backward offset chain in reverse order. The caps are straight segments.
func (c Cubic) Outline(d float64) ([]Cubic, error) {
	reduced := c.Reduce()
	if len(reduced) == 0 {
		return nil, ErrDegenerateCurve
	}

	fcurves := make([]Cubic, 0, len(reduced))
	bcurves := make([]Cubic, 0, len(reduced))
	for _, seg := range reduced {
		f, err := seg.Curve.Scale(d)
		if err != nil {
			return nil, err
		}
		b, err := seg.Curve.Scale(-d)
		if err != nil {
			return nil, err
		}
		fcurves = append(fcurves, f)
		bcurves = append(bcurves, b)
	}

	// Reverse each backward curve and their order so the loop runs
	// end-to-start along the far side.
	for i, j := 0, len(bcurves)-1; i < j; i, j = i+1, j-1 {
		bcurves[i], bcurves[j] = bcurves[j], bcurves[i]
	}
	for i := range bcurves {
		bcurves[i] = bcurves[i].Reversed()
	}

	fs := fcurves[0].P0
	fe := fcurves[len(fcurves)-1].P3
	bs := bcurves[len(bcurves)-1].P3
	be := bcurves[0].P0

	outline := make([]Cubic, 0, 2+len(fcurves)+len(bcurves))
	outline = append(outline, Line(bs, fs))
	outline = append(outline, fcurves...)
	outline = append(outline, Line(fe, be))
	outline = append(outline, bcurves...)
	return outline, nil
}

// alignTo rotates and translates points so the p1-p2 chord lies on the
// positive X axis.
func alignTo(points [4]Point, p1, p2 Point) [4]Point {
	a := -math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	sin, cos := math.Sin(a), math.Cos(a)
	var out [4]Point
	for i, p := range points {
		out[i] = Point{
			(p.X-p1.X)*cos - (p.Y-p1.Y)*sin,
			(p.X-p1.X)*sin + (p.Y-p1.Y)*cos,
		}
	}
	return out
}

// angleAt returns the signed angle between the rays o->v1 and o->v2.
func angleAt(o, v1, v2 Point) float64 {
	d1 := v1.Sub(o)
	d2 := v2.Sub(o)
	cross := d1.X*d2.Y - d1.Y*d2.X
	dot := d1.X*d2.X + d1.Y*d2.Y
	return math.Atan2(cross, dot)
}

// lineIntersection returns the intersection of the infinite lines p1-p2 and
// p3-p4. ok is false when the lines are parallel.
func lineIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y
	x4, y4 := p4.X, p4.Y
	nx := (x1*y2-y1*x2)*(x3-x4) - (x1-x2)*(x3*y4-y3*x4)
	ny := (x1*y2-y1*x2)*(y3-y4) - (y1-y2)*(x3*y4-y3*x4)
	d := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if d == 0 {
		return Point{}, false
	}
	return Point{nx / d, ny / d}, true
}

// mapRange maps v from [0,1] onto [ts,te].
func mapRange(v, ts, te float64) float64 {
	return ts + (te-ts)*v
}

// quadRoots returns the roots of a quadratic in Bernstein form with
// coefficients a, b, c.
func quadRoots(a, b, c float64) []float64 {
	d := a - 2*b + c
	if d != 0 {
		disc := b*b - a*c
		if disc < 0 {
			return nil
		}
		m1 := -math.Sqrt(disc)
		m2 := -a + b
		return []float64{-(m1 + m2) / d, -(-m1 + m2) / d}
	}
	if b != c {
		return []float64{(2*b - c) / (2 * (b - c))}
	}
	return nil
}

// linRoots returns the root of a linear Bernstein pair a, b.
func linRoots(a, b float64) []float64 {
	if a == b {
		return nil
	}
	return []float64{a / (a - b)}
}
