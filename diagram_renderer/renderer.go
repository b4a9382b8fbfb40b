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

// Package diagramrenderer decides, per feature, how a layer's diagrams are
// sized and styled, and enumerates the legend entries explaining them.
//
// Two renderers are provided.  SingleCategory draws every feature's diagram
// with the same settings.  LinearlyInterpolated sizes each diagram by
// interpolating a classification value, read from a field or an expression,
// between two (value, size) anchors, and can illustrate that mapping with a
// size legend.
//
// A layer owns at most one Renderer through its LayerSettings, which also
// carry the placement options and the data-defined overrides applied when
// diagrams are drawn.
package diagramrenderer

import (
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/diagram"
	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/properties"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/symbol"
	"github.com/ilhamster/diagramviz/units"
)

// Persisted renderer element tags.
const (
	SingleCategoryTag       = "SingleCategoryDiagramRenderer"
	LinearlyInterpolatedTag = "LinearlyInterpolatedDiagramRenderer"
)

const sizeSymbolName = "sizeSymbol"

// Renderer computes diagram settings and sizes for features, draws their
// diagrams, and lists the legend entries describing them.
type Renderer interface {
	// Tag returns the persisted element tag of the renderer.
	Tag() string
	// Clone returns a deep copy, including the diagram and size legend
	// symbol.
	Clone() Renderer

	Diagram() diagram.Diagram
	SetDiagram(d diagram.Diagram)
	// Settings returns the stored settings.  It may be nil.
	Settings() *diagram.Settings
	SetSettings(s *diagram.Settings)
	ShowAttributeLegend() bool
	SetShowAttributeLegend(show bool)
	ShowSizeLegend() bool
	SetShowSizeLegend(show bool)
	SizeLegendSymbol() *symbol.Marker
	SetSizeLegendSymbol(m *symbol.Marker)

	// DiagramSettings returns the settings in effect for f.  ok is false if
	// the renderer has no settings, in which case f's diagram must not be
	// drawn.  The returned Settings are owned by the caller.
	DiagramSettings(f *feature.Feature, rc *rendercontext.Context) (s *diagram.Settings, ok bool)
	// DiagramSize returns the size of f's diagram, in the settings' size
	// unit.  The size is empty if it cannot be determined.
	DiagramSize(f *feature.Feature, rc *rendercontext.Context) units.Size
	// RenderDiagram draws f's diagram at pos with rc's Painter, after
	// applying props' data-defined overrides.
	RenderDiagram(f *feature.Feature, rc *rendercontext.Context, pos units.Point, props *properties.Collection)
	// SizeMapUnits returns the size of f's diagram in map units.
	SizeMapUnits(f *feature.Feature, rc *rendercontext.Context) units.Size
	// ReferencedFields returns the sorted names of the fields needed to
	// size and draw diagrams.
	ReferencedFields() []string
	// LegendItems returns the renderer's legend nodes.  Values shown in the
	// legend are formatted with fmtr.
	LegendItems(fmtr *legend.Formatter) []legend.Node

	// WriteXML appends the renderer's element to parent.
	WriteXML(parent *etree.Element) *etree.Element
}

// base holds the state and behavior shared by both renderers.
type base struct {
	diagram             diagram.Diagram
	settings            *diagram.Settings
	showAttributeLegend bool
	showSizeLegend      bool
	sizeSymbol          *symbol.Marker
}

func newBase() base {
	return base{
		settings:            diagram.NewSettings(),
		showAttributeLegend: true,
		sizeSymbol:          symbol.NewSimpleMarker(),
	}
}

func (b *base) clone() base {
	ret := *b
	if b.diagram != nil {
		ret.diagram = b.diagram.Clone()
	}
	if b.settings != nil {
		ret.settings = b.settings.Clone()
	}
	if b.sizeSymbol != nil {
		ret.sizeSymbol = b.sizeSymbol.Clone().(*symbol.Marker)
	}
	return ret
}

func (b *base) Diagram() diagram.Diagram {
	return b.diagram
}

// SetDiagram attaches d, replacing any previous diagram.  A nil d detaches
// the diagram; nothing is drawn until another is attached.
func (b *base) SetDiagram(d diagram.Diagram) {
	b.diagram = d
}

func (b *base) Settings() *diagram.Settings {
	return b.settings
}

func (b *base) SetSettings(s *diagram.Settings) {
	b.settings = s
}

func (b *base) ShowAttributeLegend() bool {
	return b.showAttributeLegend
}

func (b *base) SetShowAttributeLegend(show bool) {
	b.showAttributeLegend = show
}

func (b *base) ShowSizeLegend() bool {
	return b.showSizeLegend
}

func (b *base) SetShowSizeLegend(show bool) {
	b.showSizeLegend = show
}

func (b *base) SizeLegendSymbol() *symbol.Marker {
	return b.sizeSymbol
}

func (b *base) SetSizeLegendSymbol(m *symbol.Marker) {
	b.sizeSymbol = m
}

// settingsFunc resolves the effective settings of a feature.
type settingsFunc func(f *feature.Feature, rc *rendercontext.Context) (*diagram.Settings, bool)

// applyOverrides applies props' data-defined overrides to s.  Each override
// sees the value it replaces as @value.
func applyOverrides(s *diagram.Settings, f *feature.Feature, rc *rendercontext.Context, props *properties.Collection) {
	if !props.HasActiveProperties() {
		return
	}
	ectx := rc.ExpressionContext().WithFeature(f)
	s.BackgroundColor, _ = props.ValueAsColor(properties.BackgroundColor, rc, ectx.WithOriginalValue(s.BackgroundColor.Encode()), s.BackgroundColor)
	s.PenColor, _ = props.ValueAsColor(properties.StrokeColor, rc, ectx.WithOriginalValue(s.PenColor.Encode()), s.PenColor)
	s.PenWidth, _ = props.ValueAsDouble(properties.StrokeWidth, rc, ectx.WithOriginalValue(s.PenWidth), s.PenWidth)
	angle := float64(s.AngleOffset) / 16
	angle, _ = props.ValueAsDouble(properties.StartAngle, rc, ectx.WithOriginalValue(angle), angle)
	s.AngleOffset = int(math.Round(angle * 16))
}

func (b *base) render(resolve settingsFunc, f *feature.Feature, rc *rendercontext.Context, pos units.Point, props *properties.Collection) {
	if b.diagram == nil {
		return
	}
	s, ok := resolve(f, rc)
	if !ok {
		return
	}
	applyOverrides(s, f, rc, props)
	b.diagram.Render(f, rc, s, pos)
}

// sizeMapUnits converts size, in s's size unit, to map units.  The aspect
// ratio is kept.
func sizeMapUnits(size units.Size, s *diagram.Settings, rc *rendercontext.Context) units.Size {
	if !size.IsValid() {
		return units.Size{}
	}
	width := rc.ConvertToMapUnits(size.Width, s.SizeType, s.SizeScale)
	return units.Size{Width: width, Height: size.Height * width / size.Width}
}

// referencedFields returns the fields read by the category attributes.
func (b *base) referencedFields() map[string]struct{} {
	ret := map[string]struct{}{}
	if b.diagram == nil || b.settings == nil {
		return ret
	}
	for _, attr := range b.settings.Attributes() {
		e, err := expression.Parse(attr)
		if err != nil {
			log.Printf("skipping unparseable diagram attribute: %s", err)
			continue
		}
		for _, col := range e.ReferencedColumns() {
			ret[col] = struct{}{}
		}
	}
	return ret
}

func sortedFields(fields map[string]struct{}) []string {
	ret := make([]string, 0, len(fields))
	for f := range fields {
		ret = append(ret, f)
	}
	slices.Sort(ret)
	return ret
}

func (b *base) attributeLegend() []legend.Node {
	if !b.showAttributeLegend || b.settings == nil {
		return nil
	}
	return b.settings.LegendItems()
}

func (b *base) readXML(el *etree.Element) {
	b.diagram = nil
	if d, ok := diagram.New(el.SelectAttrValue("diagramType", "")); ok {
		b.diagram = d
	}
	b.showAttributeLegend = el.SelectAttrValue("attributeLegend", "1") != "0"
	b.showSizeLegend = el.SelectAttrValue("sizeLegend", "0") != "0"
	if symEl := el.SelectElement("symbol"); symEl != nil && symEl.SelectAttrValue("name", "") == sizeSymbolName {
		m, err := symbol.LoadXML(symEl)
		if err != nil {
			log.Printf("keeping the default size legend symbol: %s", err)
			return
		}
		b.sizeSymbol = m
	}
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (b *base) writeXML(el *etree.Element) {
	if b.diagram != nil {
		el.CreateAttr("diagramType", b.diagram.Name())
	}
	el.CreateAttr("attributeLegend", boolAttr(b.showAttributeLegend))
	el.CreateAttr("sizeLegend", boolAttr(b.showSizeLegend))
	if b.sizeSymbol != nil {
		symbol.SaveXML(el, sizeSymbolName, b.sizeSymbol)
	}
}

// ReadXML reads a renderer from its persisted element.  fields names the
// layer's fields, for upgrading projects that refer to fields by index.
func ReadXML(el *etree.Element, fields []string) (Renderer, error) {
	var r interface {
		Renderer
		ReadXML(el *etree.Element, fields []string)
	}
	switch el.Tag {
	case SingleCategoryTag:
		r = NewSingleCategory()
	case LinearlyInterpolatedTag:
		r = NewLinearlyInterpolated()
	default:
		return nil, fmt.Errorf("unsupported diagram renderer <%s>", el.Tag)
	}
	r.ReadXML(el, fields)
	return r, nil
}

// FindXML returns the first renderer element among parent's children, or nil.
func FindXML(parent *etree.Element) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == SingleCategoryTag || child.Tag == LinearlyInterpolatedTag {
			return child
		}
	}
	return nil
}
