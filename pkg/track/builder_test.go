package track

import (
	"context"
	"errors"
	"testing"

	"github.com/ha1tch/track-toolkit/pkg/geom"
)

func TestMakeTrackSmall(t *testing.T) {
	cfg := seededConfig(11)
	b := NewBuilder(cfg)

	var snapshots []Track
	cancel := b.Subscribe(func(tr Track) { snapshots = append(snapshots, tr) })
	defer cancel()

	track, err := b.MakeTrack(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(track) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(track))
	}

	for i := 1; i < len(track); i++ {
		if track[i].Center.P0 != track[i-1].Center.P3 {
			t.Errorf("section %d does not continue from its predecessor", i)
		}
	}

	// Every accepted section must still pass the intersection check against
	// everything built before it.
	v := validator{cfg}
	for i, s := range track {
		if v.hasIntersections(s.Curves(), track[:i].Curves()) {
			t.Errorf("accepted section %d intersects earlier sections", i)
		}
	}

	if len(snapshots) == 0 {
		t.Fatal("no progress snapshots delivered")
	}
	last := snapshots[len(snapshots)-1]
	if len(last) != len(track) {
		t.Fatalf("last snapshot has %d sections, track has %d", len(last), len(track))
	}
	for i := range last {
		if last[i] != track[i] {
			t.Errorf("last snapshot diverges from the finished track at %d", i)
		}
	}
}

func TestMakeTrackInvalidCount(t *testing.T) {
	b := NewBuilder(seededConfig(1))
	for _, n := range []int{0, -1} {
		if _, err := b.MakeTrack(context.Background(), n); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("count %d: expected ErrInvalidConfig, got %v", n, err)
		}
	}
}

func TestMakeTrackBadWidth(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative range minimum", func(c *Config) { c.WidthRange = Range{Min: -1, Max: 1} }},
		{"inverted range", func(c *Config) { c.WidthRange = Range{Min: 2, Max: 1} }},
		{"zero fixed width", func(c *Config) { c.TrackWidth = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := seededConfig(1)
			tc.mod(&cfg)
			b := NewBuilder(cfg)
			if _, err := b.MakeTrack(context.Background(), 1); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMakeTrackWidthRange(t *testing.T) {
	cfg := seededConfig(5)
	cfg.WidthRange = Range{Min: 0.05, Max: 0.15}
	b := NewBuilder(cfg)

	track, err := b.MakeTrack(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cap := track[0].Outline()[0]
	w := cap.Length()
	if w < 0.05*(1-cfg.CapLengthTolerance) || w > 0.15*(1+cfg.CapLengthTolerance) {
		t.Errorf("cap length %v outside the configured width range", w)
	}
}

func TestMakeTrackCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(seededConfig(1))
	if _, err := b.MakeTrack(ctx, 4); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMakeTrackExhausted(t *testing.T) {
	// A zero-area domain makes every attempt fail, so the global budget is
	// the only way out.
	cfg := seededConfig(1)
	cfg.Domain = geom.Box{}
	cfg.SectionAttempts = 2
	cfg.MaxAttempts = 5
	b := NewBuilder(cfg)

	_, err := b.MakeTrack(context.Background(), 2)
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

// scriptedGenerator serves canned sections keyed by chain position and fails
// on demand, so builder control flow can be tested without real geometry.
type scriptedGenerator struct {
	sections      []*Section
	failRemaining map[int]int
	calls         int
}

func (g *scriptedGenerator) Generate(prev *Section, width float64, existing Track) (*Section, error) {
	g.calls++
	i := len(existing)
	if g.failRemaining[i] > 0 {
		g.failRemaining[i]--
		return nil, &SectionError{Attempts: 1, Last: ReasonSelfIntersects}
	}
	return g.sections[i], nil
}

func TestMakeTrackBacktracks(t *testing.T) {
	// Disjoint horizontal strips: never intersect, so acceptance is purely
	// up to the script.
	s0 := &Section{Center: geom.Line(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})}
	s1 := &Section{Center: geom.Line(geom.Point{X: 0, Y: 1}, geom.Point{X: 1, Y: 1})}

	cfg := seededConfig(1)
	cfg.SectionRetries = 3
	b := NewBuilder(cfg)
	gen := &scriptedGenerator{
		sections:      []*Section{s0, s1},
		failRemaining: map[int]int{1: 3},
	}
	b.gen = gen

	var lengths []int
	cancel := b.Subscribe(func(tr Track) { lengths = append(lengths, len(tr)) })
	defer cancel()

	track, err := b.MakeTrack(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(track) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(track))
	}

	// Index 0 succeeds, index 1 burns its three retries, the builder pops
	// index 0 and rebuilds both: six generator calls in total.
	if gen.calls != 6 {
		t.Errorf("expected 6 generator calls, got %d", gen.calls)
	}

	// The pop must be visible to observers as a snapshot shorter than its
	// predecessor.
	shrank := false
	for i := 1; i < len(lengths); i++ {
		if lengths[i] < lengths[i-1] {
			shrank = true
		}
	}
	if !shrank {
		t.Errorf("no shrinking snapshot observed; lengths %v", lengths)
	}
}

func TestSubscribeCancel(t *testing.T) {
	s0 := &Section{Center: geom.Line(geom.Point{X: 0, Y: 0}, geom.Point{X: 1, Y: 0})}

	b := NewBuilder(seededConfig(1))
	b.gen = &scriptedGenerator{sections: []*Section{s0}}

	calls := 0
	cancel := b.Subscribe(func(Track) { calls++ })
	cancel()

	if _, err := b.MakeTrack(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("cancelled observer received %d snapshots", calls)
	}
}
