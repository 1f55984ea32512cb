// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package projection

import "errors"

// Sentinel errors for the domain and algorithmic error kinds of
// SPEC_FULL.md §7 that originate in this package. Structural errors
// (SourceNotInMap, DestinationNotInMap, NoPathBetweenSpaces) are the
// spacegraph package's own sentinels, surfaced unchanged by Build.
var (
	ErrNoDiscreteInfoForSpace = errors.New("no discrete info for space")
	ErrNoProjectionResult     = errors.New("projection produced no result")
)
