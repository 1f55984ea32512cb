// SPDX-License-Identifier: Apache-2.0
// Copyright Contributors to the OpenTimelineIO project

package composition

// Color is an RGBA color, used for the optional display color on an Item.
type Color struct {
	R, G, B, A float64
}

// NewColor builds a Color.
func NewColor(r, g, b, a float64) *Color {
	return &Color{R: r, G: g, B: b, A: a}
}

// NewColorRGB builds an opaque (A=1.0) Color.
func NewColorRGB(r, g, b float64) *Color {
	return &Color{R: r, G: g, B: b, A: 1.0}
}
