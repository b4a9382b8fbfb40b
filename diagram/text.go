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
	"unicode/utf8"

	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// Approximate glyph metrics, as fractions of the pixel size.
const (
	glyphWidth  = 0.6
	lineHeight  = 1.2
	xHeightFrac = 0.5
)

// Text draws an ellipse split into one horizontal band per category, each
// band holding the category's value in the category color.
type Text struct{}

func (*Text) Name() string {
	return TextName
}

func (*Text) Clone() Diagram {
	return &Text{}
}

func (*Text) Size(f *feature.Feature, rc *rendercontext.Context, s *Settings) units.Size {
	return s.Size
}

func (*Text) InterpolatedSize(f *feature.Feature, rc *rendercontext.Context, s *Settings, is *InterpolationSettings) (units.Size, error) {
	return circularSize(f, rc, s, is)
}

func (*Text) LegendSize(v float64, s *Settings, is *InterpolationSettings) (float64, error) {
	return circularLegendSize(v, s, is)
}

// fontPixelSize returns the pixel size of s.Font.  The point size is
// interpreted in s.SizeType, so text scales with the diagram.
func fontPixelSize(s *Settings, rc *rendercontext.Context) float64 {
	return sizePainterUnits(s.Font.PointSize/rendercontext.PointsPerMM, s, rc)
}

// baselineOffset returns the distance from a band's center to its text
// baseline.
func baselineOffset(s *Settings, pixelSize float64) float64 {
	if s.LabelPlacementMethod == Height {
		return pixelSize * lineHeight / 2
	}
	return pixelSize * xHeightFrac
}

func (*Text) Render(f *feature.Feature, rc *rendercontext.Context, s *Settings, pos units.Point) {
	p := rc.Painter
	if p == nil {
		return
	}
	n := len(s.Categories)
	size := rc.ConvertSizeToPainterUnits(s.Size, s.SizeType, s.SizeScale)
	w, h := size.Width, size.Height
	baseX, baseY := pos.X, pos.Y-h
	p.SetPen(s.PenColor, penWidth(s, rc))
	p.SetBrush(s.BackgroundColor)
	p.DrawEllipse(units.Rect{X: baseX, Y: baseY, Width: w, Height: h})
	if n == 0 {
		return
	}

	center := units.Point{X: baseX + w/2, Y: baseY + h/2}
	rx, ry := w/2, h/2
	band := h / float64(n)
	for i := 1; i < n; i++ {
		y := baseY + band*float64(i)
		dy := (y - center.Y) / ry
		if dy*dy >= 1 {
			continue
		}
		dx := rx * math.Sqrt(1-dy*dy)
		p.DrawLine(units.Point{X: center.X - dx, Y: y}, units.Point{X: center.X + dx, Y: y})
	}

	ectx := featureContext(f, rc)
	pixelSize := fontPixelSize(s, rc)
	offset := baselineOffset(s, pixelSize)
	for i, c := range s.Categories {
		text := ""
		if v, err := rc.Evaluate(c.Attribute, ectx); err == nil {
			text = feature.ToString(v)
		}
		textWidth := float64(utf8.RuneCountInString(text)) * pixelSize * glyphWidth
		mid := units.Point{X: center.X, Y: baseY + band*float64(i) + band/2}
		p.SetPen(c.Color, penWidth(s, rc))
		p.DrawText(units.Point{X: mid.X - textWidth/2, Y: mid.Y + offset}, text, pixelSize)
	}
}
