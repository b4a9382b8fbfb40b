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

// Package diagram describes the charts drawn on map features: the static
// visual settings of a diagram, the interpolation of diagram sizes from a
// classification value, and the pie, text and histogram drawing strategies.
package diagram

import (
	"fmt"
	"slices"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/units"
)

// LabelPlacement selects the baseline rule of text diagram labels.
type LabelPlacement int

const (
	Height LabelPlacement = iota
	XHeight
)

// Orientation is the direction histogram bars grow in.
type Orientation int

const (
	Up Orientation = iota
	Down
	Left
	Right
)

var orientationNames = map[Orientation]string{
	Up:    "Up",
	Down:  "Down",
	Left:  "Left",
	Right: "Right",
}

func (o Orientation) String() string {
	return orientationNames[o]
}

// Vertical reports whether bars grow along the y axis.
func (o Orientation) Vertical() bool {
	return o == Up || o == Down
}

// LegendType selects how the size legend is drawn.
type LegendType int

const (
	ConcentricBottom LegendType = iota
	ConcentricCenter
	ConcentricTop
	Multiple
)

var legendTypeNames = map[LegendType]string{
	ConcentricBottom: "ConcentricBottom",
	ConcentricCenter: "ConcentricCenter",
	ConcentricTop:    "ConcentricTop",
	Multiple:         "Multiple",
}

func (lt LegendType) String() string {
	return legendTypeNames[lt]
}

// Category is one attribute, or expression, contributing a slice, bar or
// text line to a diagram.
type Category struct {
	Attribute string
	Color     color.Color
	Label     string
}

// Settings are the static visual parameters of a diagram.
type Settings struct {
	Enabled         bool
	Font            Font
	BackgroundColor color.Color
	PenColor        color.Color
	PenWidth        float64
	// Transparency is 0 (opaque) to 255.
	Transparency int

	// Size is the nominal diagram size, in SizeType.
	Size      units.Size
	SizeType  units.RenderUnit
	SizeScale units.MapUnitScale

	LineSizeUnit  units.RenderUnit
	LineSizeScale units.MapUnitScale

	MinScaleDenominator  float64
	MaxScaleDenominator  float64
	ScaleBasedVisibility bool

	LabelPlacementMethod LabelPlacement
	Orientation          Orientation
	// ScaleByArea interpolates sizes so that diagram area, rather than
	// diameter, is proportional to the classification value.
	ScaleByArea bool
	BarWidth    float64
	// AngleOffset is the pie start angle in 1/16 degree.
	AngleOffset int
	MinimumSize float64

	SizeAttributeLabel string
	SizeLegendType     LegendType
	// SizeRules are the values shown by the size legend.  When empty, round
	// values spanning the interpolation range are used.
	SizeRules  []float64
	Categories []Category
}

// NewSettings returns Settings with the defaults of a new diagram.
func NewSettings() *Settings {
	return &Settings{
		Enabled:              true,
		Font:                 DefaultFont(),
		BackgroundColor:      color.White,
		PenColor:             color.Black,
		SizeType:             units.Millimeters,
		LineSizeUnit:         units.Millimeters,
		MinScaleDenominator:  -1,
		MaxScaleDenominator:  -1,
		LabelPlacementMethod: XHeight,
		Orientation:          Up,
		ScaleByArea:          true,
		BarWidth:             5,
		AngleOffset:          90 * 16,
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	ret := *s
	ret.SizeRules = slices.Clone(s.SizeRules)
	ret.Categories = slices.Clone(s.Categories)
	return &ret
}

// Attributes returns the attribute or expression of each category.
func (s *Settings) Attributes() []string {
	ret := make([]string, len(s.Categories))
	for i, c := range s.Categories {
		ret[i] = c.Attribute
	}
	return ret
}

// Visible reports whether diagrams are drawn at the provided scale
// denominator.  Non-positive denominators do not limit visibility.
func (s *Settings) Visible(scale float64) bool {
	if !s.ScaleBasedVisibility {
		return true
	}
	if s.MinScaleDenominator > 0 && scale < s.MinScaleDenominator {
		return false
	}
	if s.MaxScaleDenominator > 0 && scale > s.MaxScaleDenominator {
		return false
	}
	return true
}

// LegendItems returns one color swatch entry per category.
func (s *Settings) LegendItems() []legend.Node {
	ret := make([]legend.Node, len(s.Categories))
	for i, c := range s.Categories {
		ret[i] = legend.NewSwatchNode(fmt.Sprintf("diagram_%d", i), c.Label, c.Color)
	}
	return ret
}
