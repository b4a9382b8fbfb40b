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
	"errors"
	"log"
	"slices"

	"github.com/ilhamster/diagramviz/diagram"
	"github.com/ilhamster/diagramviz/legend"
	prettybreaks "github.com/ilhamster/diagramviz/pretty_breaks"
	"github.com/ilhamster/diagramviz/symbol"
)

// sizeLegendClasses is the number of classes requested when the illustrated
// values are chosen automatically.
const sizeLegendClasses = 4

// SizeLegendValues returns the values the size legend illustrates: the
// size rules if any are set, or else pretty breaks over the interpolation
// range.
func (r *LinearlyInterpolated) SizeLegendValues() []float64 {
	if r.settings != nil && len(r.settings.SizeRules) > 0 {
		return slices.Clone(r.settings.SizeRules)
	}
	return prettybreaks.Compute(r.interpolation.LowerValue, r.interpolation.UpperValue, sizeLegendClasses)
}

// ErrNoDiagram is returned when a size legend is requested from a renderer
// without a diagram or settings.
var ErrNoDiagram = errors.New("no diagram configured")

var anchors = map[diagram.LegendType]symbol.Anchor{
	diagram.ConcentricBottom: symbol.AnchorBottom,
	diagram.ConcentricCenter: symbol.AnchorCenter,
	diagram.ConcentricTop:    symbol.AnchorTop,
}

// ConcentricSymbol returns the composite size legend symbol: one ring per
// illustrated value, drawn in the style of the size legend symbol, inside a
// box sized for the upper interpolation value.
func (r *LinearlyInterpolated) ConcentricSymbol(fmtr *legend.Formatter) (*symbol.Concentric, error) {
	s := r.settings
	if r.diagram == nil || s == nil {
		return nil, ErrNoDiagram
	}
	var rings []symbol.LabelValue
	for _, v := range r.SizeLegendValues() {
		size, err := r.diagram.LegendSize(v, s, &r.interpolation)
		if err != nil {
			return nil, err
		}
		rings = append(rings, symbol.LabelValue{Label: fmtr.Format(v), Size: size})
	}
	maxSize, err := r.diagram.LegendSize(r.interpolation.UpperValue, s, &r.interpolation)
	if err != nil {
		return nil, err
	}
	ret := symbol.NewConcentric(r.sizeSymbol, rings, s.SizeType, maxSize, anchors[s.SizeLegendType])
	ret.SetSizeMapUnitScale(s.SizeScale)
	return ret, nil
}

// multipleSymbols returns one symbol node per illustrated value, each a copy
// of the size legend symbol sized for its value.
func (r *LinearlyInterpolated) multipleSymbols(fmtr *legend.Formatter) ([]legend.Node, error) {
	s := r.settings
	var ret []legend.Node
	for _, v := range r.SizeLegendValues() {
		size, err := r.diagram.LegendSize(v, s, &r.interpolation)
		if err != nil {
			return nil, err
		}
		m := r.sizeSymbol.Clone()
		m.SetSize(size)
		m.SetSizeUnit(s.SizeType)
		m.SetSizeMapUnitScale(s.SizeScale)
		ret = append(ret, legend.NewSymbolNode("", fmtr.Format(v), m))
	}
	return ret, nil
}

// sizeLegend returns the size legend nodes following the caption.  Nothing
// is returned if the sizes cannot be interpolated.
func (r *LinearlyInterpolated) sizeLegend(fmtr *legend.Formatter) []legend.Node {
	if r.settings.SizeLegendType == diagram.Multiple {
		nodes, err := r.multipleSymbols(fmtr)
		if err != nil {
			log.Printf("skipping size legend: %s", err)
			return nil
		}
		return nodes
	}
	sym, err := r.ConcentricSymbol(fmtr)
	if err != nil {
		log.Printf("skipping size legend: %s", err)
		return nil
	}
	return []legend.Node{legend.NewSymbolNode("", "", sym).SetFullWidth(true)}
}
