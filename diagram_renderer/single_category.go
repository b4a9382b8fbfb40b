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
	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/diagram"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/properties"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// SingleCategory draws every feature's diagram with the same settings.
type SingleCategory struct {
	base
}

// NewSingleCategory returns a SingleCategory renderer with default settings
// and no diagram.
func NewSingleCategory() *SingleCategory {
	return &SingleCategory{base: newBase()}
}

func (r *SingleCategory) Tag() string {
	return SingleCategoryTag
}

func (r *SingleCategory) Clone() Renderer {
	return &SingleCategory{base: r.base.clone()}
}

// DiagramSettings returns a copy of the stored settings, whatever f is.
func (r *SingleCategory) DiagramSettings(f *feature.Feature, rc *rendercontext.Context) (*diagram.Settings, bool) {
	if r.settings == nil {
		return nil, false
	}
	return r.settings.Clone(), true
}

func (r *SingleCategory) DiagramSize(f *feature.Feature, rc *rendercontext.Context) units.Size {
	if r.diagram == nil || r.settings == nil {
		return units.Size{}
	}
	return r.diagram.Size(f, rc, r.settings)
}

func (r *SingleCategory) RenderDiagram(f *feature.Feature, rc *rendercontext.Context, pos units.Point, props *properties.Collection) {
	r.render(r.DiagramSettings, f, rc, pos, props)
}

func (r *SingleCategory) SizeMapUnits(f *feature.Feature, rc *rendercontext.Context) units.Size {
	s, ok := r.DiagramSettings(f, rc)
	if !ok {
		return units.Size{}
	}
	return sizeMapUnits(r.DiagramSize(f, rc), s, rc)
}

func (r *SingleCategory) ReferencedFields() []string {
	return sortedFields(r.referencedFields())
}

// LegendItems returns one swatch per category if the attribute legend is
// shown.  Fixed-size diagrams have no size legend.
func (r *SingleCategory) LegendItems(fmtr *legend.Formatter) []legend.Node {
	return r.attributeLegend()
}

// ReadXML replaces r with the renderer persisted in el.  Settings are left
// at their defaults if el has no <DiagramCategory> child.
func (r *SingleCategory) ReadXML(el *etree.Element, fields []string) {
	r.base = newBase()
	if cat := el.SelectElement(diagram.CategoryTag); cat != nil {
		r.settings.ReadXML(cat)
	}
	r.readXML(el)
}

func (r *SingleCategory) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(SingleCategoryTag)
	if r.settings != nil {
		r.settings.WriteXML(el)
	}
	r.writeXML(el)
	return el
}
