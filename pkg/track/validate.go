// Geometric acceptance tests for candidate sections.

package track

import (
	"math"

	"github.com/ha1tch/track-toolkit/pkg/geom"
)

// validator bundles the predicates with the tolerances they run under.
type validator struct {
	cfg Config
}

// interior reports whether an intersection lies somewhere other than a
// shared endpoint: at least one of its parameters must fall strictly inside
// (eps, 1-eps).
func (v validator) interior(p geom.TPair) bool {
	eps := v.cfg.EndpointEpsilon
	return (p.T1 > eps && p.T1 < 1-eps) || (p.T2 > eps && p.T2 < 1-eps)
}

// hasIntersections reports whether any curve in newCurves crosses itself,
// another new curve, or one of the existing curves away from a shared joint.
func (v validator) hasIntersections(newCurves, existing []geom.Cubic) bool {
	thr := v.cfg.IntersectionThreshold
	for i, a := range newCurves {
		for _, p := range geom.SelfIntersections(a, thr) {
			if v.interior(p) {
				return true
			}
		}
		for _, b := range newCurves[i+1:] {
			if !geom.Overlaps(a, b) {
				continue
			}
			for _, p := range geom.Intersections(a, b, thr) {
				if v.interior(p) {
					return true
				}
			}
		}
		for _, b := range existing {
			if !geom.Overlaps(a, b) {
				continue
			}
			for _, p := range geom.Intersections(a, b, thr) {
				if v.interior(p) {
					return true
				}
			}
		}
	}
	return false
}

// findEndCaps returns the outline indices that look like end caps: straight
// segments whose arc length is within the configured tolerance of the track
// width.
func (v validator) findEndCaps(outline []geom.Cubic, width float64) []int {
	var caps []int
	for i, c := range outline {
		if !c.Linear() {
			continue
		}
		if math.Abs(c.Length()-width) <= v.cfg.CapLengthTolerance*width {
			caps = append(caps, i)
		}
	}
	return caps
}

// capPinchesCenter reports whether either endpoint of an end cap projects
// onto the centre curve closer than the proximity bound. Tight curvature
// folds the offset boundary against the centreline; this catches it.
func (v validator) capPinchesCenter(cap, center geom.Cubic, width float64) bool {
	bound := v.cfg.CapProximityFactor * width / 2
	for _, p := range []geom.Point{cap.P0, cap.P3} {
		if _, d := center.Project(p); d < bound {
			return true
		}
	}
	return false
}

// hasGaps reports whether any consecutive pair of outline curves, the
// wraparound pair included, fails to join within the gap tolerance. An
// offset can come out short on one end without the kernel reporting an
// error; this is the safety net.
func (v validator) hasGaps(outline []geom.Cubic) bool {
	for i := range outline {
		next := outline[(i+1)%len(outline)]
		if outline[i].P3.Distance(next.P0) > v.cfg.GapTolerance {
			return true
		}
	}
	return false
}

// outlineTooShort reports whether the outline's total arc length falls
// below twice the centre curve's. A healthy outline runs both sides of the
// centre plus two caps, so anything under that signals a collapsed offset.
func (v validator) outlineTooShort(outline []geom.Cubic, center geom.Cubic) bool {
	sum := 0.0
	for _, c := range outline {
		sum += c.Length()
	}
	return sum < 2*center.Length()
}

// mostlyEnclosed reports whether p is boxed in by existing centre curves:
// rays are cast outward in evenly spaced directions and a ray counts as
// blocked when it crosses any section's centre curve, scanning the newest
// sections first.
func (v validator) mostlyEnclosed(p geom.Point, sections Track) bool {
	if len(sections) == 0 || v.cfg.RayCount == 0 {
		return false
	}
	blocked := 0
	for i := 0; i < v.cfg.RayCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(v.cfg.RayCount)
		end := geom.Point{
			X: p.X + v.cfg.RayLength*math.Cos(angle),
			Y: p.Y + v.cfg.RayLength*math.Sin(angle),
		}
	scan:
		for j := len(sections) - 1; j >= 0; j-- {
			if len(geom.LineIntersections(p, end, sections[j].Center)) > 0 {
				blocked++
				break scan
			}
		}
	}
	return float64(blocked)/float64(v.cfg.RayCount) > v.cfg.EnclosureRatio
}
