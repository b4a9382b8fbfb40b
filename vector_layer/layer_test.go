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

package vectorlayer

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/diagram"
	diagramrenderer "github.com/ilhamster/diagramviz/diagram_renderer"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/properties"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

func towns() *Layer {
	l := New("towns_1", "Towns", "name", "pop", "area", "visible")
	for _, f := range []*feature.Feature{
		{ID: 1, X: 10, Y: 20, Attributes: map[string]any{"name": "Ashby", "pop": 1200.0, "area": int64(4), "visible": true}},
		{ID: 2, X: 30, Y: 40, Attributes: map[string]any{"name": "Brill", "pop": 5400.0, "area": int64(9), "visible": false}},
		{ID: 3, X: 50, Y: 10, Attributes: map[string]any{"name": "Crewe", "pop": nil, "area": "unknown", "visible": true}},
	} {
		l.AddFeature(f)
	}
	return l
}

func TestMaximumValue(t *testing.T) {
	l := towns()
	for _, test := range []struct {
		field  string
		want   float64
		wantOK bool
	}{
		{"pop", 5400, true},
		{"area", 9, true},
		{"name", 0, false},
		{"missing", 0, false},
	} {
		t.Run(test.field, func(t *testing.T) {
			got, ok := l.MaximumValue(test.field)
			if got != test.want || ok != test.wantOK {
				t.Errorf("MaximumValue(%q) = %v, %t, want %v, %t", test.field, got, ok, test.want, test.wantOK)
			}
		})
	}
}

func pieRenderer() *diagramrenderer.SingleCategory {
	r := diagramrenderer.NewSingleCategory()
	r.SetDiagram(&diagram.Pie{})
	s := diagram.NewSettings()
	s.Size = units.Size{Width: 4, Height: 4}
	s.Categories = []diagram.Category{{Attribute: "pop", Color: color.Red, Label: "Population"}}
	r.SetSettings(s)
	return r
}

func TestLayerXMLRoundTrip(t *testing.T) {
	want := towns()
	ls := diagramrenderer.NewLayerSettings()
	ls.Properties.Set(properties.Show, properties.FromField("visible"))
	ls.SetRenderer(pieRenderer())
	want.SetDiagramSettings(ls)

	doc := etree.NewDocument()
	got, err := ReadXML(want.WriteXML(&doc.Element))
	if err != nil {
		t.Fatalf("ReadXML() yielded unexpected error %s", err)
	}
	if got.ID != want.ID || got.Name != want.Name {
		t.Errorf("ReadXML() = %s/%s, want %s/%s", got.ID, got.Name, want.ID, want.Name)
	}
	if diff := cmp.Diff(want.Fields(), got.Fields()); diff != "" {
		t.Errorf("Fields() diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff(want.Features(), got.Features()); diff != "" {
		t.Errorf("Features() diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff(want.ReferencedFields(), got.ReferencedFields()); diff != "" {
		t.Errorf("ReferencedFields() diff (-want +got) %s", diff)
	}
	if got.DiagramRenderer() == nil || got.DiagramRenderer().Tag() != diagramrenderer.SingleCategoryTag {
		t.Errorf("DiagramRenderer() = %v, want a single category renderer", got.DiagramRenderer())
	}
}

func TestReadXMLErrors(t *testing.T) {
	for _, test := range []struct {
		description string
		xml         string
	}{
		{"wrong element", `<layer/>`},
		{"bad feature id", `<maplayer><features><feature id="x"/></features></maplayer>`},
		{"bad attribute type", `<maplayer><features><feature id="1"><attr name="a" type="blob">0</attr></feature></features></maplayer>`},
		{"bad attribute value", `<maplayer><features><feature id="1"><attr name="a" type="double">many</attr></feature></features></maplayer>`},
	} {
		t.Run(test.description, func(t *testing.T) {
			doc := etree.NewDocument()
			if err := doc.ReadFromString(test.xml); err != nil {
				t.Fatalf("failed to parse XML: %s", err)
			}
			if _, err := ReadXML(doc.Root()); err == nil {
				t.Errorf("ReadXML() succeeded, want an error")
			}
		})
	}
}

func TestRenderDiagrams(t *testing.T) {
	for _, test := range []struct {
		description string
		configure   func(l *Layer)
		wantRects   []units.Rect
	}{{
		description: "all features",
		configure:   func(l *Layer) {},
		wantRects: []units.Rect{
			{X: 8, Y: 18, Width: 4, Height: 4},
			{X: 28, Y: -2, Width: 4, Height: 4},
		},
	}, {
		description: "hidden by property",
		configure: func(l *Layer) {
			l.DiagramSettings().Properties.Set(properties.Show, properties.FromField("visible"))
		},
		wantRects: []units.Rect{{X: 8, Y: 18, Width: 4, Height: 4}},
	}, {
		description: "positioned by property",
		configure: func(l *Layer) {
			l.DiagramSettings().Properties.
				Set(properties.PositionX, properties.FromValue(0.0)).
				Set(properties.PositionY, properties.FromValue(40.0))
		},
		wantRects: []units.Rect{
			{X: -2, Y: -2, Width: 4, Height: 4},
			{X: -2, Y: -2, Width: 4, Height: 4},
		},
	}, {
		description: "disabled",
		configure: func(l *Layer) {
			l.DiagramRenderer().Settings().Enabled = false
		},
	}, {
		description: "out of scale range",
		configure: func(l *Layer) {
			s := l.DiagramRenderer().Settings()
			s.ScaleBasedVisibility = true
			s.MinScaleDenominator, s.MaxScaleDenominator = 1, 1000
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			l := towns()
			l.SetDiagramRenderer(pieRenderer())
			test.configure(l)
			rc := rendercontext.New(rendercontext.MMPerInch, 1, 5000)
			rec := rendercontext.NewRecorder()
			rc.Painter = rec
			// Crewe has no population, so its pie is drawn as an empty ellipse.
			drawn := l.RenderDiagrams(rc, units.Point{X: 0, Y: 40})
			var got []units.Rect
			for _, op := range rec.Ops {
				if op.Kind == "ellipse" && op.Brush != color.Transparent {
					got = append(got, op.Rect)
				}
			}
			if diff := cmp.Diff(test.wantRects, got); diff != "" {
				t.Errorf("RenderDiagrams() diagrams diff (-want +got) %s", diff)
			}
			if drawn < len(test.wantRects) {
				t.Errorf("RenderDiagrams() = %d, want at least %d", drawn, len(test.wantRects))
			}
		})
	}
}

func TestRepaint(t *testing.T) {
	l := towns()
	l.TriggerRepaint()
	l.TriggerRepaint()
	if got := l.RepaintCount(); got != 2 {
		t.Errorf("RepaintCount() = %d, want 2", got)
	}
	if l.FieldIndex("area") != 2 || l.FieldIndex("missing") != -1 {
		t.Errorf("FieldIndex() is wrong")
	}
}
