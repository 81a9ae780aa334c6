// Section generation: one candidate centre curve plus its offset boundary,
// retried with fresh randomness until every acceptance test passes.

package track

import (
	"math"
	"math/rand"

	"github.com/ha1tch/track-toolkit/pkg/geom"
)

// Section is one accepted piece of track: a centre curve and the offset
// edge chains on either side. Sections are built atomically and never
// mutated afterwards.
type Section struct {
	Center    geom.Cubic
	LeftEdge  []geom.Cubic
	RightEdge []geom.Cubic

	// outline is the raw offset boundary the edges were cut from, kept
	// so an accepted section can be re-validated as produced.
	outline []geom.Cubic
}

// Curves returns the centre curve and both edge chains as one flat set.
func (s *Section) Curves() []geom.Cubic {
	out := make([]geom.Cubic, 0, 1+len(s.LeftEdge)+len(s.RightEdge))
	out = append(out, s.Center)
	out = append(out, s.LeftEdge...)
	out = append(out, s.RightEdge...)
	return out
}

// Outline returns the section's raw offset boundary in loop order.
func (s *Section) Outline() []geom.Cubic {
	return s.outline
}

// Track is an ordered chain of sections. Adjacent centre curves are
// end-to-start continuous.
type Track []*Section

// Curves returns every curve of every section as one flat set.
func (t Track) Curves() []geom.Cubic {
	var out []geom.Cubic
	for _, s := range t {
		out = append(out, s.Curves()...)
	}
	return out
}

// Snapshot returns a copy of the section chain. Sections themselves are
// immutable, so copying the slice is enough to decouple observers from the
// builder's ongoing mutation.
func (t Track) Snapshot() Track {
	out := make(Track, len(t))
	copy(out, t)
	return out
}

// Generator produces candidate sections. It is stateless between calls
// apart from its randomness source.
type Generator struct {
	cfg Config
	val validator
	rng *rand.Rand
}

// NewGenerator returns a generator using the given configuration.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg, val: validator{cfg}, rng: cfg.rng()}
}

// randomPoint draws a uniform point spanning the domain's extent,
// optionally widened by a random spread factor.
func (g *Generator) randomPoint() geom.Point {
	w := g.cfg.Domain.MaxX - g.cfg.Domain.MinX
	h := g.cfg.Domain.MaxY - g.cfg.Domain.MinY
	p := geom.Point{X: g.rng.Float64() * w, Y: g.rng.Float64() * h}
	if g.cfg.Spread.Max > g.cfg.Spread.Min {
		f := g.cfg.Spread.Min + g.rng.Float64()*(g.cfg.Spread.Max-g.cfg.Spread.Min)
		p = p.Mul(f)
	}
	return p
}

// diagonal is the length of the domain's diagonal, the upper bound for the
// tangent walk that places the first control point of a continuation.
func (g *Generator) diagonal() float64 {
	w := g.cfg.Domain.MaxX - g.cfg.Domain.MinX
	h := g.cfg.Domain.MaxY - g.cfg.Domain.MinY
	return math.Sqrt(w*w + h*h)
}

// Generate builds one valid section. prev, when non-nil, fixes the start
// point and start tangent for continuity; existing supplies the accepted
// sections used by the enclosure check. Geometric rejections retry
// internally with fresh randomness up to the configured attempt budget;
// ErrCapConvention aborts immediately.
func (g *Generator) Generate(prev *Section, width float64, existing Track) (*Section, error) {
	last := ReasonNone
	for attempt := 0; attempt < g.cfg.SectionAttempts; attempt++ {
		s, reason, err := g.tryOnce(prev, width, existing)
		if err != nil {
			return nil, err
		}
		if reason != ReasonNone {
			last = reason
			continue
		}
		return s, nil
	}
	return nil, &SectionError{Attempts: g.cfg.SectionAttempts, Last: last}
}

// tryOnce runs one pass of the construction and validation pipeline. A
// non-nil error is fatal; otherwise a reason other than ReasonNone asks the
// caller to retry.
func (g *Generator) tryOnce(prev *Section, width float64, existing Track) (*Section, Reason, error) {
	origin := geom.Point{X: g.cfg.Domain.MinX, Y: g.cfg.Domain.MinY}
	if prev != nil {
		origin = prev.Center.P3.Sub(g.randomPoint())
	}

	var start, control1 geom.Point
	if prev != nil {
		start = prev.Center.P3
		tangent := prev.Center.Derivative(1)
		step, err := tangent.ScaleToLength(g.rng.Float64() * g.diagonal())
		if err != nil {
			// A zero end tangent cannot seed a continuation at all.
			return nil, ReasonDeadTangent, nil
		}
		control1 = start.Add(step)
	} else {
		start = origin.Add(g.randomPoint())
		control1 = origin.Add(g.randomPoint())
	}
	control2 := origin.Add(g.randomPoint())
	end := origin.Add(g.randomPoint())

	// Cheap early-out before any curve math: do not start a section
	// whose far end is already boxed in.
	if len(existing) > 0 && g.val.mostlyEnclosed(end, existing) {
		return nil, ReasonEnclosed, nil
	}

	center := geom.Cubic{P0: start, P1: control1, P2: control2, P3: end}
	if g.val.hasIntersections([]geom.Cubic{center}, nil) {
		return nil, ReasonSelfIntersects, nil
	}

	outline, err := center.Outline(width / 2)
	if err != nil {
		// Kernel degeneracy is just another rejection; fresh randomness
		// will produce an offsettable curve.
		return nil, ReasonDegenerateOutline, nil
	}

	caps := g.val.findEndCaps(outline, width)
	if len(caps) != 2 {
		return nil, ReasonCapCount, nil
	}
	if caps[0] != 0 {
		return nil, ReasonNone, ErrCapConvention
	}
	for _, i := range caps {
		if g.val.capPinchesCenter(outline[i], center, width) {
			return nil, ReasonCapProximity, nil
		}
	}
	if g.val.hasGaps(outline) {
		return nil, ReasonOutlineGaps, nil
	}
	if g.val.outlineTooShort(outline, center) {
		return nil, ReasonOutlineShort, nil
	}

	// First cap sits at index 0: the curves up to the second cap run
	// forward along one side, the rest run back along the other.
	right := append([]geom.Cubic(nil), outline[1:caps[1]]...)
	left := append([]geom.Cubic(nil), outline[caps[1]+1:]...)

	all := make([]geom.Cubic, 0, 1+len(left)+len(right))
	all = append(all, center)
	all = append(all, left...)
	all = append(all, right...)
	if g.val.hasIntersections(all, nil) {
		return nil, ReasonSelfIntersects, nil
	}

	return &Section{
		Center:    center,
		LeftEdge:  left,
		RightEdge: right,
		outline:   outline,
	}, ReasonNone, nil
}
