package track

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig reports a non-retryable configuration problem, such as a
// non-positive section count or an inverted width range.
var ErrInvalidConfig = errors.New("track: invalid configuration")

// ErrExhausted reports that the global generation budget ran out before a
// complete track was found.
var ErrExhausted = errors.New("track: generation budget exhausted")

// ErrCapConvention reports that an outline's first end cap was not at index
// zero. The cap/splitting convention has broken down for some curve shape;
// retrying cannot fix that, so generation aborts.
var ErrCapConvention = errors.New("track: outline cap convention violated")

// Reason identifies why a candidate section was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEnclosed
	ReasonSelfIntersects
	ReasonDegenerateOutline
	ReasonCapCount
	ReasonCapProximity
	ReasonOutlineGaps
	ReasonOutlineShort
	ReasonDeadTangent
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEnclosed:
		return "end point mostly enclosed"
	case ReasonSelfIntersects:
		return "self-intersection"
	case ReasonDegenerateOutline:
		return "outline could not be offset"
	case ReasonCapCount:
		return "end cap count not two"
	case ReasonCapProximity:
		return "end cap pinches centre curve"
	case ReasonOutlineGaps:
		return "outline has gaps"
	case ReasonOutlineShort:
		return "outline abnormally short"
	case ReasonDeadTangent:
		return "previous section has zero end tangent"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// SectionError reports that one section could not be generated within its
// attempt budget. Last is the rejection seen on the final attempt.
type SectionError struct {
	Attempts int
	Last     Reason
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("track: no valid section after %d attempts (last rejection: %s)", e.Attempts, e.Last)
}

func (e *SectionError) Unwrap() error { return ErrExhausted }
