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

package diagram

import (
	"sort"

	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Diagram is a diagram drawing strategy.
type Diagram interface {
	// Name returns the persisted name of the strategy.
	Name() string
	Clone() Diagram
	// Size returns the diagram size of f for fixed-size rendering, in
	// s.SizeType.
	Size(f *feature.Feature, rc *rendercontext.Context, s *Settings) units.Size
	// InterpolatedSize returns the diagram size of f when sizes are
	// interpolated with is.  An empty size is returned if f has no usable
	// classification value.
	InterpolatedSize(f *feature.Feature, rc *rendercontext.Context, s *Settings, is *InterpolationSettings) (units.Size, error)
	// LegendSize returns the symbol size illustrating value v in a size
	// legend.
	LegendSize(v float64, s *Settings, is *InterpolationSettings) (float64, error)
	// Render draws f's diagram with rc's Painter.  pos is the bottom-left
	// corner of the diagram, in painter units.
	Render(f *feature.Feature, rc *rendercontext.Context, s *Settings, pos units.Point)
}

// Strategy names.
const (
	PieName       = "Pie"
	TextName      = "Text"
	HistogramName = "Histogram"
)

var registry = map[string]func() Diagram{
	PieName:       func() Diagram { return &Pie{} },
	TextName:      func() Diagram { return &Text{} },
	HistogramName: func() Diagram { return &Histogram{} },
}

// New returns a new strategy with the provided persisted name.
func New(name string) (Diagram, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names returns the names of all strategies, sorted.
func Names() []string {
	ret := make([]string, 0, len(registry))
	for name := range registry {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func featureContext(f *feature.Feature, rc *rendercontext.Context) *expression.Context {
	return rc.ExpressionContext().WithFeature(f)
}

// categoryValues evaluates each category of s against f.  Values that fail
// to evaluate or are not numeric are 0.
func categoryValues(f *feature.Feature, rc *rendercontext.Context, s *Settings) []float64 {
	ectx := featureContext(f, rc)
	ret := make([]float64, len(s.Categories))
	for i, c := range s.Categories {
		v, err := rc.Evaluate(c.Attribute, ectx)
		if err != nil {
			continue
		}
		ret[i], _ = feature.ToDouble(v)
	}
	return ret
}

// sizePainterUnits converts a length in s.SizeType to painter units.
func sizePainterUnits(v float64, s *Settings, rc *rendercontext.Context) float64 {
	return rc.ConvertToPainterUnits(v, s.SizeType, s.SizeScale)
}

func penWidth(s *Settings, rc *rendercontext.Context) float64 {
	return rc.ConvertToPainterUnits(s.PenWidth, s.LineSizeUnit, s.LineSizeScale)
}

// circularSize interpolates the size of f's classification value, shared
// by strategies drawn within an ellipse.
func circularSize(f *feature.Feature, rc *rendercontext.Context, s *Settings, is *InterpolationSettings) (units.Size, error) {
	if err := is.validate(); err != nil {
		return units.Size{}, err
	}
	v, ok := is.Value(f, rc)
	if !ok {
		return units.Size{}, nil
	}
	return is.SizeForValue(v, s)
}

func circularLegendSize(v float64, s *Settings, is *InterpolationSettings) (float64, error) {
	size, err := is.SizeForValue(v, s)
	if err != nil {
		return 0, err
	}
	return size.Max(), nil
}
