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
	"math"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Pie draws one slice per category, sized by the category's share of the
// feature's total.
type Pie struct{}

func (*Pie) Name() string {
	return PieName
}

func (*Pie) Clone() Diagram {
	return &Pie{}
}

func (*Pie) Size(f *feature.Feature, rc *rendercontext.Context, s *Settings) units.Size {
	return s.Size
}

func (*Pie) InterpolatedSize(f *feature.Feature, rc *rendercontext.Context, s *Settings, is *InterpolationSettings) (units.Size, error) {
	return circularSize(f, rc, s, is)
}

func (*Pie) LegendSize(v float64, s *Settings, is *InterpolationSettings) (float64, error) {
	return circularLegendSize(v, s, is)
}

func (*Pie) Render(f *feature.Feature, rc *rendercontext.Context, s *Settings, pos units.Point) {
	p := rc.Painter
	if p == nil {
		return
	}
	values := categoryValues(f, rc, s)
	sum, nonZero := 0.0, 0
	for _, v := range values {
		sum += v
		if v != 0 {
			nonZero++
		}
	}
	size := rc.ConvertSizeToPainterUnits(s.Size, s.SizeType, s.SizeScale)
	box := units.Rect{X: pos.X, Y: pos.Y - size.Height, Width: size.Width, Height: size.Height}
	p.SetPen(s.PenColor, penWidth(s, rc))
	if sum <= 0 {
		p.SetBrush(color.Transparent)
		p.DrawEllipse(box)
		return
	}
	total := 0.0
	for i, v := range values {
		if v == 0 {
			continue
		}
		p.SetBrush(s.Categories[i].Color)
		if nonZero == 1 {
			p.DrawEllipse(box)
			continue
		}
		span := v / sum * 360 * 16
		start := int(math.Round(total))
		p.DrawPie(box, start+s.AngleOffset, int(math.Round(total+span))-start)
		total += span
	}
}
