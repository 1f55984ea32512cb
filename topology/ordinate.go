// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

// Package topology implements the interval and piecewise-mapping calculus
// over scalar time ordinates: Ordinate, ContinuousInterval, Mapping (Affine,
// LinearMonotonic, Bezier, Empty), Topology, and SampleIndexGenerator.
package topology

import "math"

// Ordinate is a scalar time value expressed in seconds. It is a float64
// newtype rather than a tagged float/rational union: a rational value is
// represented by constructing an Ordinate from num/den and recovering an
// approximate rational form with Rational, which mirrors opentime's
// RationalTime.ValueRescaledTo bridge without carrying a second representation
// through every arithmetic operation.
type Ordinate float64

// EPSILON is the default tolerance used by ApproxEqAbs and by every
// relational helper in this package that is not an exact comparison.
const EPSILON Ordinate = 1e-9

// Zero and One are the canonical Ordinate constants.
const (
	Zero Ordinate = 0
	One  Ordinate = 1
)

// FromRational builds an Ordinate from a rational num/den pair (den != 0).
func FromRational(num, den int64) Ordinate {
	return Ordinate(float64(num) / float64(den))
}

// Rational returns a best-effort (num, den) pair for this Ordinate, found by
// scaling to an integer numerator at the given denominator (e.g. 24 for a
// 24fps-derived value). It is a convenience bridge, not an exact rational
// reconstruction.
func (o Ordinate) Rational(den int64) (num, den2 int64) {
	return int64(math.Round(float64(o) * float64(den))), den
}

// Add returns o + other.
func (o Ordinate) Add(other Ordinate) Ordinate { return o + other }

// Sub returns o - other.
func (o Ordinate) Sub(other Ordinate) Ordinate { return o - other }

// Mul returns o * other.
func (o Ordinate) Mul(other Ordinate) Ordinate { return o * other }

// Div returns o / other. Division by zero follows float64 semantics (+-Inf
// or NaN); callers operating near domain boundaries should check first.
func (o Ordinate) Div(other Ordinate) Ordinate { return o / other }

// Neg returns -o.
func (o Ordinate) Neg() Ordinate { return -o }

// Min returns the smaller of o and other.
func (o Ordinate) Min(other Ordinate) Ordinate {
	if o < other {
		return o
	}
	return other
}

// Max returns the larger of o and other.
func (o Ordinate) Max(other Ordinate) Ordinate {
	if o > other {
		return o
	}
	return other
}

// ApproxEqAbs reports whether o and other differ by no more than epsilon.
// All inter-ordinate comparisons in this package and its callers should go
// through this (or an exact ==) rather than comparing raw float64 values.
func (o Ordinate) ApproxEqAbs(other Ordinate, epsilon Ordinate) bool {
	d := o - other
	if d < 0 {
		d = -d
	}
	return d <= epsilon
}

// Less reports whether o < other (exact comparison).
func (o Ordinate) Less(other Ordinate) bool { return o < other }

// LessEq reports whether o <= other (exact comparison).
func (o Ordinate) LessEq(other Ordinate) bool { return o <= other }
