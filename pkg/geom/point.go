// Vector math for track geometry.
// Points double as vectors anchored at the origin.

package geom

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when a zero-length vector cannot be rescaled.
var ErrDegenerateVector = errors.New("geom: cannot rescale a zero-length vector")

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Invert negates both axes.
func (p Point) Invert() Point {
	return Point{-p.X, -p.Y}
}

// Mul scales both axes by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Length returns the Euclidean magnitude of p treated as a vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Add(q.Invert()).Length()
}

// ScaleToLength rescales p to the given magnitude, preserving direction.
// Returns ErrDegenerateVector if p has zero length.
func (p Point) ScaleToLength(l float64) (Point, error) {
	m := p.Length()
	if m == 0 {
		return Point{}, ErrDegenerateVector
	}
	return p.Mul(l / m), nil
}

// lerp interpolates between a and b at ratio t.
func lerp(a, b Point, t float64) Point {
	return Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
}
