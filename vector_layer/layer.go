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

// Package vectorlayer provides an in-memory vector layer: a named set of
// fields and point features, optionally decorated with diagrams.
package vectorlayer

import (
	"slices"

	"github.com/aclements/go-moremath/stats"

	diagramrenderer "github.com/ilhamster/diagramviz/diagram_renderer"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/properties"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Layer is a vector layer.
type Layer struct {
	ID, Name string
	fields   []string
	features []*feature.Feature
	diagrams *diagramrenderer.LayerSettings
	repaints int
}

// New returns an empty layer with the provided fields.
func New(id, name string, fields ...string) *Layer {
	return &Layer{
		ID:     id,
		Name:   name,
		fields: slices.Clone(fields),
	}
}

// Fields returns the layer's field names, in order.
func (l *Layer) Fields() []string {
	return slices.Clone(l.fields)
}

// FieldIndex returns the index of the named field, or -1.
func (l *Layer) FieldIndex(name string) int {
	return slices.Index(l.fields, name)
}

// AddFeature appends f.  Attributes not named by a field are kept but are
// not persisted.
func (l *Layer) AddFeature(f *feature.Feature) {
	l.features = append(l.features, f)
}

func (l *Layer) Features() []*feature.Feature {
	return l.features
}

// DiagramSettings returns the layer's diagram settings, or nil if the layer
// has no diagrams.
func (l *Layer) DiagramSettings() *diagramrenderer.LayerSettings {
	return l.diagrams
}

// SetDiagramSettings replaces the layer's diagram settings.
func (l *Layer) SetDiagramSettings(ls *diagramrenderer.LayerSettings) {
	l.diagrams = ls
}

// DiagramRenderer returns the layer's diagram renderer, or nil.
func (l *Layer) DiagramRenderer() diagramrenderer.Renderer {
	if l.diagrams == nil {
		return nil
	}
	return l.diagrams.Renderer()
}

// SetDiagramRenderer installs r, creating default diagram settings if the
// layer has none.
func (l *Layer) SetDiagramRenderer(r diagramrenderer.Renderer) {
	if l.diagrams == nil {
		l.diagrams = diagramrenderer.NewLayerSettings()
	}
	l.diagrams.SetRenderer(r)
}

// TriggerRepaint requests that the layer be redrawn.
func (l *Layer) TriggerRepaint() {
	l.repaints++
}

// RepaintCount returns the number of repaints requested so far.
func (l *Layer) RepaintCount() int {
	return l.repaints
}

// MaximumValue returns the largest numeric value of the named field.  ok is
// false if no feature holds a numeric value for it.
func (l *Layer) MaximumValue(field string) (float64, bool) {
	var values []float64
	for _, f := range l.features {
		if v, ok := f.Double(field); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0, false
	}
	_, hi := stats.Bounds(values)
	return hi, true
}

// ReferencedFields returns the fields diagrams need.
func (l *Layer) ReferencedFields() []string {
	if l.diagrams == nil {
		return nil
	}
	return l.diagrams.ReferencedFields()
}

// RenderDiagrams draws the diagram of every visible feature with rc's
// Painter.  origin is the map position of the painter's top left corner.
// Features are positioned by their coordinates, unless overridden by the
// data-defined position properties; a diagram is centered on its position.
// It returns the number of diagrams drawn.
func (l *Layer) RenderDiagrams(rc *rendercontext.Context, origin units.Point) int {
	r := l.DiagramRenderer()
	if r == nil || r.Settings() == nil || rc.Painter == nil || rc.MapUnitsPerPixel <= 0 {
		return 0
	}
	if !r.Settings().Enabled || !r.Settings().Visible(rc.RendererScale) {
		return 0
	}
	props := l.diagrams.Properties
	drawn := 0
	for _, f := range l.features {
		ectx := rc.ExpressionContext().WithFeature(f)
		if show, _ := props.ValueAsBool(properties.Show, rc, ectx, true); !show {
			continue
		}
		s, ok := r.DiagramSettings(f, rc)
		if !ok || !s.Size.IsValid() {
			continue
		}
		x, _ := props.ValueAsDouble(properties.PositionX, rc, ectx, f.X)
		y, _ := props.ValueAsDouble(properties.PositionY, rc, ectx, f.Y)
		size := rc.ConvertSizeToPainterUnits(s.Size, s.SizeType, s.SizeScale)
		center := units.Point{
			X: (x - origin.X) / rc.MapUnitsPerPixel,
			Y: (origin.Y - y) / rc.MapUnitsPerPixel,
		}
		pos := units.Point{X: center.X - size.Width/2, Y: center.Y + size.Height/2}
		r.RenderDiagram(f, rc, pos, props)
		drawn++
	}
	return drawn
}
