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

// Package symbol implements the marker symbols used to illustrate diagram
// sizes in legends: a simple marker, and a concentric composite of nested
// marker rings.
package symbol

import (
	"io"
	"math"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/color"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// DefaultSize is the size, in millimeters, of a new simple marker.
const DefaultSize = 2.0

// Symbol is a marker that can be sized, rendered and persisted.
type Symbol interface {
	// Clone returns a deep copy.
	Clone() Symbol
	Size() float64
	SetSize(size float64)
	SizeUnit() units.RenderUnit
	SetSizeUnit(unit units.RenderUnit)
	SizeMapUnitScale() units.MapUnitScale
	SetSizeMapUnitScale(scale units.MapUnitScale)
	// Render draws the symbol centered on center.
	Render(p rendercontext.Painter, center units.Point, rc *rendercontext.Context)
	// PreviewSVG writes a width x height SVG icon of the symbol.
	PreviewSVG(w io.Writer, width, height int) error
	// WriteXML appends a <symbol> element named name to parent.
	WriteXML(parent *etree.Element, name string) *etree.Element
}

// Shape is the outline of a simple marker.
type Shape int

// Marker shapes.
const (
	Circle Shape = iota
	Square
	Diamond
	Triangle
)

var shapeNames = map[Shape]string{
	Circle:   "circle",
	Square:   "square",
	Diamond:  "diamond",
	Triangle: "triangle",
}

func (s Shape) String() string {
	return shapeNames[s]
}

// DecodeShape decodes a persisted shape name.
func DecodeShape(name string) (Shape, bool) {
	for s, n := range shapeNames {
		if n == name {
			return s, true
		}
	}
	return Circle, false
}

// Marker is a simple marker symbol.
type Marker struct {
	Shape           Shape
	Fill            color.Color
	Stroke          color.Color
	StrokeWidth     float64
	StrokeWidthUnit units.RenderUnit
	// Angle rotates polygonal shapes clockwise, in degrees.
	Angle     float64
	Opacity   float64
	size      float64
	sizeUnit  units.RenderUnit
	sizeScale units.MapUnitScale
}

// NewSimpleMarker returns a red circle of DefaultSize millimeters with a
// black hairline stroke.
func NewSimpleMarker() *Marker {
	return &Marker{
		Shape:   Circle,
		Fill:    color.Red,
		Stroke:  color.Black,
		Opacity: 1,
		size:    DefaultSize,
	}
}

func (m *Marker) Clone() Symbol {
	ret := *m
	return &ret
}

func (m *Marker) Size() float64 {
	return m.size
}

func (m *Marker) SetSize(size float64) {
	m.size = size
}

func (m *Marker) SizeUnit() units.RenderUnit {
	return m.sizeUnit
}

func (m *Marker) SetSizeUnit(u units.RenderUnit) {
	m.sizeUnit = u
}

func (m *Marker) SizeMapUnitScale() units.MapUnitScale {
	return m.sizeScale
}

func (m *Marker) SetSizeMapUnitScale(s units.MapUnitScale) {
	m.sizeScale = s
}

func (m *Marker) applyStyle(p rendercontext.Painter, rc *rendercontext.Context) {
	alpha := func(c color.Color) color.Color {
		return c.WithAlpha(uint8(math.Round(float64(c.A) * m.Opacity)))
	}
	p.SetPen(alpha(m.Stroke), rc.ConvertToPainterUnits(m.StrokeWidth, m.StrokeWidthUnit, units.MapUnitScale{}))
	p.SetBrush(alpha(m.Fill))
}

// Render draws the marker at its own size.
func (m *Marker) Render(p rendercontext.Painter, center units.Point, rc *rendercontext.Context) {
	m.renderAt(p, center, rc.ConvertToPainterUnits(m.size, m.sizeUnit, m.sizeScale), rc)
}

// renderAt draws the marker with a diameter of d painter units.
func (m *Marker) renderAt(p rendercontext.Painter, center units.Point, d float64, rc *rendercontext.Context) {
	m.applyStyle(p, rc)
	r := d / 2
	switch m.Shape {
	case Circle:
		p.DrawEllipse(units.Rect{X: center.X - r, Y: center.Y - r, Width: d, Height: d})
	case Square:
		if m.Angle == 0 {
			p.DrawRect(units.Rect{X: center.X - r, Y: center.Y - r, Width: d, Height: d})
			return
		}
		p.DrawPolygon(m.polygon(center, r, 4, 45))
	case Diamond:
		p.DrawPolygon(m.polygon(center, r, 4, 0))
	case Triangle:
		p.DrawPolygon(m.polygon(center, r, 3, 0))
	}
}

// polygon returns the vertices of a regular polygon inscribed in radius r,
// the first vertex pointing up before rotation by offset and m.Angle.
func (m *Marker) polygon(center units.Point, r float64, n int, offset float64) []units.Point {
	if n == 4 && offset == 45 {
		r *= math.Sqrt2
	}
	ret := make([]units.Point, n)
	for i := range ret {
		deg := offset + m.Angle + float64(i)*360/float64(n)
		rad := deg * math.Pi / 180
		ret[i] = units.Point{
			X: center.X + r*math.Sin(rad),
			Y: center.Y - r*math.Cos(rad),
		}
	}
	return ret
}

// PreviewSVG writes an icon of the marker, shrunk to fit if necessary.
func (m *Marker) PreviewSVG(w io.Writer, width, height int) error {
	return preview(w, width, height, m.Title(), func(p rendercontext.Painter, rc *rendercontext.Context, box float64) {
		d := math.Min(rc.ConvertToPainterUnits(m.size, m.sizeUnit, m.sizeScale), box)
		m.renderAt(p, units.Point{X: float64(width) / 2, Y: float64(height) / 2}, d, rc)
	})
}

// Title describes the marker.
func (m *Marker) Title() string {
	return m.Shape.String() + " marker"
}

func (m *Marker) WriteXML(parent *etree.Element, name string) *etree.Element {
	return writeMarker(parent, name, m)
}
