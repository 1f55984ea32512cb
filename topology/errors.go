// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package topology

import (
	"errors"
	"fmt"
)

// Sentinel errors for the topology package's algorithmic and domain error
// kinds (see the error taxonomy in SPEC_FULL.md §7).
var (
	ErrMoreThanOneCurveIsNotImplemented = errors.New("more than one curve is not implemented")
	ErrNoInvertedTopologies             = errors.New("topology has no inverse")
	ErrNoSplitForLinearization          = errors.New("bezier mapping is not monotonic; caller must split before inverting")
)

// OutOfBoundsError reports that an ordinate falls outside a mapping's or
// topology's input bounds.
type OutOfBoundsError struct {
	Ordinate Ordinate
	Bounds   ContinuousInterval
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("ordinate %v out of bounds %v", float64(e.Ordinate), e.Bounds)
}

// newOutOfBounds builds an *OutOfBoundsError for t against bounds.
func newOutOfBounds(t Ordinate, bounds ContinuousInterval) error {
	return &OutOfBoundsError{Ordinate: t, Bounds: bounds}
}
