// Track assembly: sequential section generation with per-index retry
// budgets, backtracking over dead-end predecessors, and progress snapshots
// for every attempt.

package track

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

// sectionGenerator is the seam between the builder and the generator.
type sectionGenerator interface {
	Generate(prev *Section, width float64, existing Track) (*Section, error)
}

// Builder drives track generation. It is not safe for concurrent use; one
// MakeTrack call owns the track under construction from start to finish.
type Builder struct {
	cfg Config
	gen sectionGenerator
	val validator
	rng *rand.Rand

	observers map[int]func(Track)
	nextID    int
}

// NewBuilder returns a builder using the given configuration.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		cfg:       cfg,
		gen:       NewGenerator(cfg),
		val:       validator{cfg},
		rng:       cfg.rng(),
		observers: make(map[int]func(Track)),
	}
}

// Subscribe registers fn to receive a snapshot of the track so far after
// every generation attempt, accepted or not. The returned function cancels
// the subscription.
func (b *Builder) Subscribe(fn func(Track)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.observers[id] = fn
	return func() { delete(b.observers, id) }
}

func (b *Builder) notify(t Track) {
	for _, fn := range b.observers {
		fn(t)
	}
}

// MakeTrack generates a track of exactly sections sections. Progress
// snapshots are delivered to subscribers in attempt order; the returned
// track equals the last snapshot that was not subsequently discarded.
func (b *Builder) MakeTrack(ctx context.Context, sections int) (Track, error) {
	if sections <= 0 {
		return nil, fmt.Errorf("%w: section count %d, want a positive integer", ErrInvalidConfig, sections)
	}
	width, err := b.pickWidth()
	if err != nil {
		return nil, err
	}

	track := Track{}
	tries := make([]int, sections)
	attempts := 0

	for len(track) < sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempts >= b.cfg.MaxAttempts {
			return nil, fmt.Errorf("%w: %d attempts for %d sections", ErrExhausted, attempts, sections)
		}

		i := len(track)
		if i > 0 && tries[i] >= b.cfg.SectionRetries {
			// This predecessor is a dead end: rebuild it too.
			track = track[:i-1]
			tries[i] = 0
			tries[i-1]++
			b.notify(track.Snapshot())
			continue
		}

		var prev *Section
		if i > 0 {
			prev = track[i-1]
		}
		attempts++
		tries[i]++

		candidate, err := b.gen.Generate(prev, width, track)
		if err != nil {
			var sErr *SectionError
			if errors.As(err, &sErr) {
				// Counts as a failed attempt at this index; the retry
				// budget above decides whether to backtrack.
				b.notify(track.Snapshot())
				continue
			}
			return nil, err
		}

		// Speculative preview: observers see the candidate before it is
		// accepted.
		preview := append(track.Snapshot(), candidate)
		b.notify(preview)

		if b.val.hasIntersections(candidate.Curves(), track.Curves()) {
			continue
		}
		track = append(track, candidate)
	}

	return track, nil
}

// pickWidth resolves the track width for one run, drawing it from the
// configured range when one is set.
func (b *Builder) pickWidth() (float64, error) {
	r := b.cfg.WidthRange
	if r.Min != 0 || r.Max != 0 {
		if r.Min <= 0 || r.Max < r.Min {
			return 0, fmt.Errorf("%w: width range [%v, %v]", ErrInvalidConfig, r.Min, r.Max)
		}
		return r.Min + b.rng.Float64()*(r.Max-r.Min), nil
	}
	if b.cfg.TrackWidth <= 0 {
		return 0, fmt.Errorf("%w: track width %v", ErrInvalidConfig, b.cfg.TrackWidth)
	}
	return b.cfg.TrackWidth, nil
}
