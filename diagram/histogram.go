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
	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Histogram draws one bar per category, bar lengths proportional to the
// category values.
type Histogram struct{}

func (*Histogram) Name() string {
	return HistogramName
}

func (*Histogram) Clone() Diagram {
	return &Histogram{}
}

// orient returns a size with breadth across and length along the bars.
func orient(o Orientation, breadth, length float64) units.Size {
	if o.Vertical() {
		return units.Size{Width: breadth, Height: length}
	}
	return units.Size{Width: length, Height: breadth}
}

func (*Histogram) Size(f *feature.Feature, rc *rendercontext.Context, s *Settings) units.Size {
	if f == nil || len(f.Attributes) == 0 {
		return units.Size{}
	}
	length := s.Size.Height
	if !s.Orientation.Vertical() {
		length = s.Size.Width
	}
	return orient(s.Orientation, s.BarWidth*float64(len(s.Categories)), length)
}

// lengthScale returns the bar length per unit of value.
func lengthScale(is *InterpolationSettings) (float64, error) {
	if err := is.validate(); err != nil {
		return 0, err
	}
	return (is.UpperSize.Width - is.LowerSize.Width) / (is.UpperValue - is.LowerValue), nil
}

func maxValue(values []float64) float64 {
	ret := 0.0
	for _, v := range values {
		ret = max(ret, v)
	}
	return ret
}

func (*Histogram) InterpolatedSize(f *feature.Feature, rc *rendercontext.Context, s *Settings, is *InterpolationSettings) (units.Size, error) {
	scale, err := lengthScale(is)
	if err != nil {
		return units.Size{}, err
	}
	if f == nil || len(f.Attributes) == 0 {
		return units.Size{}, nil
	}
	longest := max(maxValue(categoryValues(f, rc, s)), s.MinimumSize)
	return orient(s.Orientation, s.BarWidth*float64(len(s.Categories)), longest*scale), nil
}

func (*Histogram) LegendSize(v float64, s *Settings, is *InterpolationSettings) (float64, error) {
	scale, err := lengthScale(is)
	if err != nil {
		return 0, err
	}
	return max(v, s.MinimumSize) * scale, nil
}

func (*Histogram) Render(f *feature.Feature, rc *rendercontext.Context, s *Settings, pos units.Point) {
	p := rc.Painter
	if p == nil {
		return
	}
	values := categoryValues(f, rc, s)
	longest := maxValue(values)
	extent := s.Size.Height
	if !s.Orientation.Vertical() {
		extent = s.Size.Width
	}
	maxLength := sizePainterUnits(extent, s, rc)
	barWidth := sizePainterUnits(s.BarWidth, s, rc)
	p.SetPen(s.PenColor, penWidth(s, rc))
	offset := 0.0
	for i, v := range values {
		length := 0.0
		if longest > 0 {
			length = v / longest * maxLength
		}
		p.SetBrush(s.Categories[i].Color)
		var bar units.Rect
		switch s.Orientation {
		case Up:
			bar = units.Rect{X: pos.X + offset, Y: pos.Y - length, Width: barWidth, Height: length}
		case Down:
			bar = units.Rect{X: pos.X + offset, Y: pos.Y - maxLength, Width: barWidth, Height: length}
		case Right:
			bar = units.Rect{X: pos.X, Y: pos.Y - offset - barWidth, Width: length, Height: barWidth}
		case Left:
			bar = units.Rect{X: pos.X + maxLength - length, Y: pos.Y - offset - barWidth, Width: length, Height: barWidth}
		}
		p.DrawRect(bar)
		offset += barWidth
	}
}
