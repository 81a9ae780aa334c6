// Generation parameters and geometric tolerances for track building.

package track

import (
	"math/rand"

	"github.com/ha1tch/track-toolkit/pkg/geom"
)

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

// Config carries every tunable used by the section generator and the track
// builder. Tests tighten or loosen individual tolerances; everything else
// should start from DefaultConfig.
type Config struct {
	// Domain is the region random points are drawn from, conventionally
	// the unit square.
	Domain geom.Box

	// TrackWidth is the full width of the track ribbon. Ignored when
	// WidthRange is set.
	TrackWidth float64

	// WidthRange, when set, draws the track width once per track,
	// uniformly from [Min, Max].
	WidthRange Range

	// IntersectionThreshold is the box size below which the curve-curve
	// intersection recursion terminates.
	IntersectionThreshold float64

	// EndpointEpsilon excludes intersections at shared joints: a crossing
	// counts only if at least one of its parameters lies strictly inside
	// (EndpointEpsilon, 1-EndpointEpsilon).
	EndpointEpsilon float64

	// GapTolerance is the largest end-to-start distance allowed between
	// consecutive outline curves.
	GapTolerance float64

	// CapLengthTolerance is the relative tolerance when matching an
	// outline curve's arc length against the track width to identify an
	// end cap.
	CapLengthTolerance float64

	// CapProximityFactor rejects a section when a cap endpoint projects
	// onto the centre curve closer than factor * (width/2).
	CapProximityFactor float64

	// Enclosure detection: RayCount rays of RayLength are cast from a
	// candidate point; when more than EnclosureRatio of them hit existing
	// centre curves the point counts as mostly enclosed.
	RayCount       int
	RayLength      float64
	EnclosureRatio float64

	// Spread, when Max > Min, multiplies every random point by a factor
	// drawn from [Min, Max], widening the spatial distribution.
	Spread Range

	// SectionAttempts bounds the generator's internal retry loop for one
	// candidate section.
	SectionAttempts int

	// SectionRetries is the builder's per-index budget before it
	// backtracks over the previously accepted section.
	SectionRetries int

	// MaxAttempts is the global candidate budget for one MakeTrack call.
	MaxAttempts int

	// Rand is the randomness source. Seed it for reproducible tracks.
	Rand *rand.Rand
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	cfg := Config{
		Domain:                geom.Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		TrackWidth:            0.1,
		IntersectionThreshold: 0.001,
		EndpointEpsilon:       0.01,
		GapTolerance:          0.0001,
		CapLengthTolerance:    0.05,
		CapProximityFactor:    0.99,
		RayCount:              10,
		RayLength:             50,
		EnclosureRatio:        0.6,
		SectionAttempts:       256,
		SectionRetries:        3,
		MaxAttempts:           10000,
	}
	return cfg
}

// rng returns the configured randomness source, falling back to the global
// one.
func (c Config) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
