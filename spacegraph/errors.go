// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package spacegraph

import "errors"

// Sentinel errors for the structural error kinds of SPEC_FULL.md §7 that
// originate in this package.
var (
	ErrSourceNotInMap      = errors.New("source space not in map")
	ErrDestinationNotInMap = errors.New("destination space not in map")
	ErrSpaceNotInMap       = errors.New("space not in map")
	ErrTreeCodeNotInMap    = errors.New("treecode not in map")
	ErrNoPathBetweenSpaces = errors.New("no path between spaces")
)
