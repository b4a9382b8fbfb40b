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

package diagramproperties

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/diagram"
	diagramrenderer "github.com/ilhamster/diagramviz/diagram_renderer"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/project"
	"github.com/ilhamster/diagramviz/properties"
	"github.com/ilhamster/diagramviz/symbol"
	"github.com/ilhamster/diagramviz/units"
	vectorlayer "github.com/ilhamster/diagramviz/vector_layer"
)

var formCmpOpts = []cmp.Option{
	cmp.AllowUnexported(properties.Collection{}, symbol.Marker{}),
}

func towns() *vectorlayer.Layer {
	l := vectorlayer.New("towns_1", "Towns", "name", "pop", "area")
	l.AddFeature(feature.New(1, map[string]any{"name": "Ash", "pop": 120.0, "area": 3.0}))
	l.AddFeature(feature.New(2, map[string]any{"name": "Elm", "pop": 45.0, "area": 1.5}))
	l.AddFeature(feature.New(3, map[string]any{"name": "Oak", "area": 9.0}))
	return l
}

func editedForm() *Form {
	f := NewForm()
	f.Enabled = true
	f.Type = diagram.TextName
	f.BackgroundColor = color.MustParse("#ffeecc")
	f.PenWidth = 0.4
	f.TransparencyPercent = 50
	f.Attributes = []Attribute{
		{Expression: `"pop"`, Color: color.MustParse("#3366cc"), Label: "pop"},
		{Expression: `"area" * 2`, Color: color.MustParse("#dc3912"), Label: "double area"},
	}
	f.FixedSize = false
	f.Size = 8
	f.MaxValue = 100
	f.InterpolatedSize = 12
	f.SizeField = "pop"
	f.IncreaseSmall = true
	f.MinimumSize = 2
	f.Orientation = diagram.Left
	f.SizeLegendCaption = "Population"
	f.LegendType = diagram.Multiple
	f.SizeRules = []string{"1", "2.5", "10"}
	f.ShowSizeLegend = true
	f.Placement = diagramrenderer.Line
	f.LineOn = false
	f.LineAbove = true
	f.OrientationDep = true
	f.Distance = 1.5
	f.Priority = 7
	f.ZIndex = 3
	f.ShowAll = false
	f.Properties.Set(properties.Show, properties.FromField("visible"))
	return f
}

func TestGuessLegendText(t *testing.T) {
	for _, test := range []struct {
		expr string
		want string
	}{
		{`"pop"`, "pop"},
		{`pop`, "pop"},
		{`"pop" * 2`, `pop" * 2`},
		{`"`, ""},
		{``, ""},
	} {
		t.Run(test.expr, func(t *testing.T) {
			if got := GuessLegendText(test.expr); got != test.want {
				t.Errorf("GuessLegendText(%q) = %q, want %q", test.expr, got, test.want)
			}
		})
	}
}

func TestAddAttribute(t *testing.T) {
	f := NewForm()
	f.AddAttribute(`"pop_2020"`, rand.New(rand.NewSource(3)))
	want := []Attribute{{
		Expression: `"pop_2020"`,
		Color:      color.Random(rand.New(rand.NewSource(3))),
		Label:      "pop_2020",
	}}
	if diff := cmp.Diff(want, f.Attributes); diff != "" {
		t.Errorf("AddAttribute() diff (-want +got) %s", diff)
	}
}

func TestSettings(t *testing.T) {
	s, err := editedForm().Settings(nil)
	if err != nil {
		t.Fatalf("Settings() yielded unexpected error %s", err)
	}
	if s.Transparency != 127 {
		t.Errorf("Transparency = %d, want 127", s.Transparency)
	}
	if got := s.Categories[0].Color.A; got != 128 {
		t.Errorf("category alpha = %d, want 128", got)
	}
	if diff := cmp.Diff([]float64{1, 2.5, 10}, s.SizeRules); diff != "" {
		t.Errorf("SizeRules diff (-want +got) %s", diff)
	}
	if diff := cmp.Diff(units.Size{Width: 8, Height: 8}, s.Size); diff != "" {
		t.Errorf("Size diff (-want +got) %s", diff)
	}
	f := editedForm()
	f.IncreaseSmall = false
	if s, _ := f.Settings(nil); s.MinimumSize != 0 {
		t.Errorf("MinimumSize = %v without IncreaseSmall, want 0", s.MinimumSize)
	}
	f.SizeRules = []string{"ten"}
	if _, err := f.Settings(nil); err == nil {
		t.Errorf("Settings() with an invalid size rule succeeded")
	}
}

func TestApplyAndLoad(t *testing.T) {
	p := project.New("Counties")
	l := towns()
	if err := p.AddLayer(l); err != nil {
		t.Fatalf("AddLayer() yielded unexpected error %s", err)
	}
	p.SetDirty(false)
	want := editedForm()
	warnings, err := want.Apply(p, l, nil)
	if err != nil {
		t.Fatalf("Apply() yielded unexpected error %s", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Apply() yielded warnings %v", warnings)
	}
	if !p.IsDirty() || l.RepaintCount() != 1 {
		t.Errorf("after Apply(), dirty %t and %d repaints, want dirty and 1 repaint", p.IsDirty(), l.RepaintCount())
	}
	li, ok := l.DiagramRenderer().(*diagramrenderer.LinearlyInterpolated)
	if !ok {
		t.Fatalf("Apply() installed %T, want a linearly interpolated renderer", l.DiagramRenderer())
	}
	if got := li.Interpolation().UpperSize; got != (units.Size{Width: 12, Height: 12}) {
		t.Errorf("UpperSize = %v, want 12x12", got)
	}
	if got := l.DiagramSettings().LinePlacementFlags; got != diagramrenderer.AboveLine {
		t.Errorf("LinePlacementFlags = %v, want AboveLine", got)
	}

	got, warnings := Load(l, nil)
	if len(warnings) != 0 {
		t.Errorf("Load() yielded warnings %v", warnings)
	}
	if diff := cmp.Diff(want, got, formCmpOpts...); diff != "" {
		t.Errorf("Load() diff (-want +got) %s", diff)
	}
}

func TestApplyWarnings(t *testing.T) {
	for _, test := range []struct {
		description  string
		enabled      bool
		attributes   []Attribute
		wantWarnings int
	}{
		{"enabled without attributes", true, nil, 1},
		{"disabled without attributes", false, nil, 0},
		{"enabled with attributes", true, []Attribute{{Expression: "pop", Color: color.Red}}, 0},
	} {
		t.Run(test.description, func(t *testing.T) {
			f := NewForm()
			f.Enabled = test.enabled
			f.Attributes = test.attributes
			l := towns()
			warnings, err := f.Apply(nil, l, nil)
			if err != nil {
				t.Fatalf("Apply() yielded unexpected error %s", err)
			}
			if len(warnings) != test.wantWarnings {
				t.Errorf("Apply() yielded warnings %v, want %d", warnings, test.wantWarnings)
			}
			if _, ok := l.DiagramRenderer().(*diagramrenderer.SingleCategory); !ok {
				t.Errorf("Apply() installed %T, want a single category renderer", l.DiagramRenderer())
			}
		})
	}
}

func TestApplyInvalidSizeRule(t *testing.T) {
	f := editedForm()
	f.SizeRules = []string{"1", "many"}
	l := towns()
	if _, err := f.Apply(nil, l, nil); err == nil {
		t.Fatalf("Apply() succeeded, want an error")
	}
	if l.DiagramRenderer() != nil || l.RepaintCount() != 0 {
		t.Errorf("failed Apply() modified the layer")
	}
}

type stacked struct {
	*diagram.Pie
}

func (stacked) Name() string {
	return "Stacked"
}

func TestLoad(t *testing.T) {
	l := towns()
	if diff := cmp.Diff(NewForm(), mustLoad(t, l, 0), formCmpOpts...); diff != "" {
		t.Errorf("Load() without diagrams diff (-want +got) %s", diff)
	}

	r := diagramrenderer.NewSingleCategory()
	r.SetSettings(diagram.NewSettings())
	r.SetDiagram(stacked{&diagram.Pie{}})
	l.SetDiagramRenderer(r)
	if got := mustLoad(t, l, 1).Type; got != diagram.PieName {
		t.Errorf("Load() of an unknown diagram type selected %q, want %q", got, diagram.PieName)
	}
}

func mustLoad(t *testing.T, l *vectorlayer.Layer, wantWarnings int) *Form {
	t.Helper()
	f, warnings := Load(l, nil)
	if len(warnings) != wantWarnings {
		t.Errorf("Load() yielded warnings %v, want %d", warnings, wantWarnings)
	}
	return f
}

func TestFindMaximumValue(t *testing.T) {
	for _, test := range []struct {
		description  string
		fieldOrExpr  string
		isExpression bool
		want         float64
	}{
		{"field", "pop", false, 120},
		{"field with only negative values", "change", false, -4},
		{"expression over negative values", `"change"`, true, 0},
		{"field without values", "name", false, 0},
		{"missing field", "height", false, 0},
		{"expression", `"area" * 2`, true, 18},
		{"expression skipping failed features", `"pop" / 10`, true, 12},
		{"negative values", `-"area"`, true, 0},
		{"unparsable expression", `"pop" *`, true, 0},
	} {
		t.Run(test.description, func(t *testing.T) {
			l := towns()
			l.AddFeature(feature.New(4, map[string]any{"name": "Fir", "change": -4.0}))
			l.AddFeature(feature.New(5, map[string]any{"name": "Yew", "change": -7.5}))
			if got := FindMaximumValue(l, test.fieldOrExpr, test.isExpression); got != test.want {
				t.Errorf("FindMaximumValue(%q) = %v, want %v", test.fieldOrExpr, got, test.want)
			}
		})
	}
}
