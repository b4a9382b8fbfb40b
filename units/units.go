/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package units defines render units, map unit scales and the size and
// geometry primitives shared by diagrams, symbols and render contexts.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RenderUnit is the unit a size or width is expressed in.
type RenderUnit int

// Supported render units.
const (
	Millimeters RenderUnit = iota
	MapUnits
	Pixels
	Percentage
	Points
	Inches
	Unknown
)

var renderUnitNames = map[RenderUnit]string{
	Millimeters: "MM",
	MapUnits:    "MapUnit",
	Pixels:      "Pixel",
	Percentage:  "Percentage",
	Points:      "Point",
	Inches:      "Inch",
}

// String returns the persisted name of the unit, or "" for Unknown.
func (u RenderUnit) String() string {
	return renderUnitNames[u]
}

// DecodeRenderUnit decodes a persisted unit name, case-insensitively.  The
// legacy "MapUnits" spelling decodes to MapUnits.  ok is false, and Unknown
// is returned, for any other string.
func DecodeRenderUnit(s string) (u RenderUnit, ok bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "MapUnits") {
		return MapUnits, true
	}
	for unit, name := range renderUnitNames {
		if strings.EqualFold(s, name) {
			return unit, true
		}
	}
	return Unknown, false
}

// MapUnitScale bounds the rendered size of map-unit quantities.  MinScale and
// MaxScale are scales (1/denominator), zero meaning unbounded.
type MapUnitScale struct {
	MinScale, MaxScale float64
	MinSizeMMEnabled   bool
	MinSizeMM          float64
	MaxSizeMMEnabled   bool
	MaxSizeMM          float64
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Encode returns the persisted `3x:min,max,e,mm,e,mm` form of s.
func (s MapUnitScale) Encode() string {
	return "3x:" + strings.Join([]string{
		formatFloat(s.MinScale),
		formatFloat(s.MaxScale),
		formatBool(s.MinSizeMMEnabled),
		formatFloat(s.MinSizeMM),
		formatBool(s.MaxSizeMMEnabled),
		formatFloat(s.MaxSizeMM),
	}, ",")
}

// DecodeMapUnitScale decodes an encoded MapUnitScale.  The legacy form
// `minDenominator,maxDenominator` is converted to scales.  Empty or short
// input decodes to the zero MapUnitScale.
func DecodeMapUnitScale(s string) (MapUnitScale, error) {
	var ret MapUnitScale
	v3 := strings.HasPrefix(s, "3x:")
	fields := strings.Split(strings.TrimPrefix(s, "3x:"), ",")
	if len(fields) < 2 {
		return ret, nil
	}
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return MapUnitScale{}, fmt.Errorf("invalid map unit scale '%s': %w", s, err)
		}
		nums = append(nums, n)
	}
	ret.MinScale, ret.MaxScale = nums[0], nums[1]
	if !v3 {
		ret.MinScale, ret.MaxScale = invert(ret.MinScale), invert(ret.MaxScale)
	}
	if len(nums) >= 6 {
		ret.MinSizeMMEnabled = nums[2] != 0
		ret.MinSizeMM = nums[3]
		ret.MaxSizeMMEnabled = nums[4] != 0
		ret.MaxSizeMM = nums[5]
	}
	return ret, nil
}

func invert(denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return 1 / denominator
}

// Size is a two-dimensional extent.
type Size struct {
	Width, Height float64
}

// IsValid returns true if both dimensions are positive.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0
}

// IsEmpty returns true if either dimension is not positive.
func (s Size) IsEmpty() bool {
	return !s.IsValid()
}

// Scaled returns s with both dimensions multiplied by f.
func (s Size) Scaled(f float64) Size {
	return Size{s.Width * f, s.Height * f}
}

// Max returns the larger dimension.
func (s Size) Max() float64 {
	return math.Max(s.Width, s.Height)
}

// Transposed returns s with width and height swapped.
func (s Size) Transposed() Size {
	return Size{s.Height, s.Width}
}

// Point is a position in painter or map coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle with its origin at the top left.
type Rect struct {
	X, Y, Width, Height float64
}

// RectAt returns the Rect of the given size whose top left is at p.
func RectAt(p Point, s Size) Rect {
	return Rect{p.X, p.Y, s.Width, s.Height}
}

// Center returns the center of r.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}
