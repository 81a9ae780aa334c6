package track

import (
	"fmt"
)

// Check re-validates an assembled track: sections must be present, adjacent
// centre curves must join end to start, and no curve may cross another away
// from a shared joint. Used on tracks loaded from files, where only the
// centre and edge curves survive.
func Check(t Track, cfg Config) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: track has no sections", ErrInvalidConfig)
	}
	v := validator{cfg}

	for i, s := range t {
		if i > 0 && s.Center.P0.Distance(t[i-1].Center.P3) > cfg.GapTolerance {
			return fmt.Errorf("section %d does not continue from section %d", i, i-1)
		}
		if len(s.LeftEdge) == 0 || len(s.RightEdge) == 0 {
			return fmt.Errorf("section %d is missing an edge chain", i)
		}
		if v.hasIntersections(s.Curves(), t[:i].Curves()) {
			return fmt.Errorf("section %d intersects itself or an earlier section", i)
		}
	}
	return nil
}
