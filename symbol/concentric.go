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

package symbol

import (
	"io"
	"slices"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/color"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Anchor is the edge of a concentric symbol's bounding box its rings touch.
type Anchor int

// Ring anchors.
const (
	AnchorBottom Anchor = iota
	AnchorCenter
	AnchorTop
)

// LabelValue is one ring of a concentric symbol: its label and its size in
// the symbol's unit.
type LabelValue struct {
	Label string
	Size  float64
}

// labelGap is the distance, in pixels, between the largest ring and the ring
// labels.
const labelGap = 4

// Concentric is a composite symbol nesting one ring per illustrated value
// inside a bounding box of MaxSize.  Rings are drawn largest first so that
// smaller rings stay visible.
type Concentric struct {
	base      *Marker
	values    []LabelValue
	unit      units.RenderUnit
	sizeScale units.MapUnitScale
	maxSize   float64
	anchor    Anchor
}

// NewConcentric returns a concentric symbol drawing rings in the style of
// base.  values need not be sorted.
func NewConcentric(base *Marker, values []LabelValue, unit units.RenderUnit, maxSize float64, anchor Anchor) *Concentric {
	if base == nil {
		base = NewSimpleMarker()
	}
	return &Concentric{
		base:    base.Clone().(*Marker),
		values:  slices.Clone(values),
		unit:    unit,
		maxSize: maxSize,
		anchor:  anchor,
	}
}

// Base returns the marker rings are drawn with.
func (c *Concentric) Base() *Marker {
	return c.base
}

// Anchor returns the anchor of the rings.
func (c *Concentric) Anchor() Anchor {
	return c.anchor
}

// Rings returns the rings, largest first.
func (c *Concentric) Rings() []LabelValue {
	ret := slices.Clone(c.values)
	slices.SortStableFunc(ret, func(a, b LabelValue) int {
		switch {
		case a.Size > b.Size:
			return -1
		case a.Size < b.Size:
			return 1
		}
		return 0
	})
	return ret
}

func (c *Concentric) Clone() Symbol {
	ret := *c
	ret.base = c.base.Clone().(*Marker)
	ret.values = slices.Clone(c.values)
	return &ret
}

// Size returns the size of the bounding box.
func (c *Concentric) Size() float64 {
	return c.maxSize
}

// SetSize resizes the bounding box, scaling every ring with it.
func (c *Concentric) SetSize(size float64) {
	if c.maxSize > 0 {
		f := size / c.maxSize
		for i := range c.values {
			c.values[i].Size *= f
		}
	}
	c.maxSize = size
}

func (c *Concentric) SizeUnit() units.RenderUnit {
	return c.unit
}

func (c *Concentric) SetSizeUnit(u units.RenderUnit) {
	c.unit = u
}

func (c *Concentric) SizeMapUnitScale() units.MapUnitScale {
	return c.sizeScale
}

func (c *Concentric) SetSizeMapUnitScale(s units.MapUnitScale) {
	c.sizeScale = s
}

// Render draws the rings inside a bounding box centered on center, with a
// leader line and label to the right of each ring's top.
func (c *Concentric) Render(p rendercontext.Painter, center units.Point, rc *rendercontext.Context) {
	box := rc.ConvertToPainterUnits(c.maxSize, c.unit, c.sizeScale)
	c.render(p, center, box, 1, rc)
}

// render draws with the bounding box side box, scaling ring sizes by f.
func (c *Concentric) render(p rendercontext.Painter, center units.Point, box, f float64, rc *rendercontext.Context) {
	top, bottom := center.Y-box/2, center.Y+box/2
	labelX := center.X + box/2 + labelGap
	for _, ring := range c.Rings() {
		d := rc.ConvertToPainterUnits(ring.Size, c.unit, c.sizeScale) * f
		var cy float64
		switch c.anchor {
		case AnchorBottom:
			cy = bottom - d/2
		case AnchorTop:
			cy = top + d/2
		default:
			cy = center.Y
		}
		c.base.renderAt(p, units.Point{X: center.X, Y: cy}, d, rc)
		if ring.Label == "" {
			continue
		}
		ringTop := cy - d/2
		p.SetPen(c.base.Stroke, 1)
		p.DrawLine(units.Point{X: center.X, Y: ringTop}, units.Point{X: labelX, Y: ringTop})
		p.SetBrush(color.Transparent)
		p.DrawText(units.Point{X: labelX + 2, Y: ringTop + 4}, ring.Label, 10)
	}
}

// PreviewSVG writes an icon of the symbol, with rings shrunk to fit if
// necessary.  Labels are drawn to the right of the rings.
func (c *Concentric) PreviewSVG(w io.Writer, width, height int) error {
	return preview(w, width, height, "concentric size legend", func(p rendercontext.Painter, rc *rendercontext.Context, box float64) {
		natural := rc.ConvertToPainterUnits(c.maxSize, c.unit, c.sizeScale)
		f := 1.0
		if natural > box && natural > 0 {
			f = box / natural
		}
		side := natural * f
		c.render(p, units.Point{X: side/2 + 1, Y: float64(height) / 2}, side, f, rc)
	})
}

// WriteXML persists the base marker; rings are derived data, rebuilt by the
// owning renderer on load.
func (c *Concentric) WriteXML(parent *etree.Element, name string) *etree.Element {
	return c.base.WriteXML(parent, name)
}
