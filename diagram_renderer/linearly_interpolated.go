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

package diagramrenderer

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/diagram"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/properties"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// LinearlyInterpolated sizes each feature's diagram by interpolating its
// classification value between the anchors of its InterpolationSettings.
type LinearlyInterpolated struct {
	base
	interpolation diagram.InterpolationSettings
}

// NewLinearlyInterpolated returns a LinearlyInterpolated renderer with
// default settings, no diagram, and zeroed interpolation settings.
func NewLinearlyInterpolated() *LinearlyInterpolated {
	return &LinearlyInterpolated{base: newBase()}
}

func (r *LinearlyInterpolated) Tag() string {
	return LinearlyInterpolatedTag
}

func (r *LinearlyInterpolated) Clone() Renderer {
	return &LinearlyInterpolated{
		base:          r.base.clone(),
		interpolation: r.interpolation,
	}
}

// Interpolation returns a copy of the interpolation settings.
func (r *LinearlyInterpolated) Interpolation() diagram.InterpolationSettings {
	return r.interpolation
}

func (r *LinearlyInterpolated) SetInterpolation(is diagram.InterpolationSettings) {
	r.interpolation = is
}

// DiagramSettings returns a copy of the stored settings with the size
// replaced by f's interpolated size.
func (r *LinearlyInterpolated) DiagramSettings(f *feature.Feature, rc *rendercontext.Context) (*diagram.Settings, bool) {
	if r.settings == nil {
		return nil, false
	}
	s := r.settings.Clone()
	s.Size = r.DiagramSize(f, rc)
	return s, true
}

// DiagramSize returns f's interpolated size.  It is empty if f has no
// usable classification value or the interpolation range is degenerate.
func (r *LinearlyInterpolated) DiagramSize(f *feature.Feature, rc *rendercontext.Context) units.Size {
	if r.diagram == nil || r.settings == nil {
		return units.Size{}
	}
	size, err := r.diagram.InterpolatedSize(f, rc, r.settings, &r.interpolation)
	if err != nil {
		return units.Size{}
	}
	return size
}

func (r *LinearlyInterpolated) RenderDiagram(f *feature.Feature, rc *rendercontext.Context, pos units.Point, props *properties.Collection) {
	r.render(r.DiagramSettings, f, rc, pos, props)
}

func (r *LinearlyInterpolated) SizeMapUnits(f *feature.Feature, rc *rendercontext.Context) units.Size {
	s, ok := r.DiagramSettings(f, rc)
	if !ok {
		return units.Size{}
	}
	return sizeMapUnits(s.Size, s, rc)
}

// ReferencedFields returns the category fields together with the fields the
// classification value is read from.
func (r *LinearlyInterpolated) ReferencedFields() []string {
	fields := r.referencedFields()
	for _, f := range r.interpolation.ReferencedFields() {
		fields[f] = struct{}{}
	}
	return sortedFields(fields)
}

// LegendItems returns the attribute legend, if shown, followed by the size
// legend, if shown: a full-width caption, then either one concentric symbol
// or one symbol per illustrated value.
func (r *LinearlyInterpolated) LegendItems(fmtr *legend.Formatter) []legend.Node {
	nodes := r.attributeLegend()
	if !r.showSizeLegend || r.diagram == nil || r.sizeSymbol == nil || r.settings == nil {
		return nodes
	}
	nodes = append(nodes, legend.NewSimpleNode(r.settings.SizeAttributeLabel).SetFullWidth(true))
	return append(nodes, r.sizeLegend(fmtr)...)
}

// classificationFieldAttr returns the value of the classificationField
// attribute.  Some older projects wrote the attribute name with trailing
// whitespace.
func classificationFieldAttr(el *etree.Element) string {
	for _, attr := range el.Attr {
		if strings.TrimSpace(attr.Key) == "classificationField" {
			return attr.Value
		}
	}
	return ""
}

func floatAttr(el *etree.Element, name string) float64 {
	f, _ := strconv.ParseFloat(el.SelectAttrValue(name, ""), 64)
	return f
}

// ReadXML replaces r with the renderer persisted in el.  fields resolves the
// field index written by older projects.
func (r *LinearlyInterpolated) ReadXML(el *etree.Element, fields []string) {
	r.base = newBase()
	is := diagram.InterpolationSettings{
		LowerValue: floatAttr(el, "lowerValue"),
		UpperValue: floatAttr(el, "upperValue"),
		LowerSize:  units.Size{Width: floatAttr(el, "lowerWidth"), Height: floatAttr(el, "lowerHeight")},
		UpperSize:  units.Size{Width: floatAttr(el, "upperWidth"), Height: floatAttr(el, "upperHeight")},
	}
	if expr := el.SelectAttr("classificationAttributeExpression"); expr != nil {
		is.ClassificationAttributeIsExpression = true
		is.ClassificationAttributeExpression = expr.Value
	} else if idx := el.SelectAttr("classificationAttribute"); idx != nil {
		if i, err := strconv.Atoi(idx.Value); err == nil && i >= 0 && i < len(fields) {
			is.ClassificationField = fields[i]
		}
	} else {
		is.ClassificationField = classificationFieldAttr(el)
	}
	r.interpolation = is
	if cat := el.SelectElement(diagram.CategoryTag); cat != nil {
		r.settings.ReadXML(cat)
	}
	r.readXML(el)
}

func (r *LinearlyInterpolated) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(LinearlyInterpolatedTag)
	is := r.interpolation
	for _, kv := range []struct {
		name  string
		value float64
	}{
		{"lowerValue", is.LowerValue},
		{"upperValue", is.UpperValue},
		{"lowerWidth", is.LowerSize.Width},
		{"lowerHeight", is.LowerSize.Height},
		{"upperWidth", is.UpperSize.Width},
		{"upperHeight", is.UpperSize.Height},
	} {
		el.CreateAttr(kv.name, strconv.FormatFloat(kv.value, 'g', -1, 64))
	}
	if is.ClassificationAttributeIsExpression {
		el.CreateAttr("classificationAttributeExpression", is.ClassificationAttributeExpression)
	} else {
		el.CreateAttr("classificationField", is.ClassificationField)
	}
	if r.settings != nil {
		r.settings.WriteXML(el)
	}
	r.writeXML(el)
	return el
}
