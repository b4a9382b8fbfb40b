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

// Package diagramproperties is the model behind a layer's diagram editor.
// A Form is loaded from a layer, edited, and applied back, replacing the
// layer's renderer and diagram layer settings.
package diagramproperties

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/diagram"
	diagramrenderer "github.com/ilhamster/diagramviz/diagram_renderer"
	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/feature"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/project"
	"github.com/ilhamster/diagramviz/properties"
	"github.com/ilhamster/diagramviz/symbol"
	"github.com/ilhamster/diagramviz/units"
	vectorlayer "github.com/ilhamster/diagramviz/vector_layer"
)

// Attribute is one row of the form's attribute list.
type Attribute struct {
	// Expression is the field name or expression supplying the value.
	Expression string
	// Color is shown opaque; Apply adds the form's transparency.
	Color color.Color
	Label string
}

// Form holds the editable state of a layer's diagrams.
type Form struct {
	// Enabled is false when "no diagrams" is selected.
	Enabled bool
	// Type is the diagram strategy name.
	Type string

	Font            diagram.Font
	BackgroundColor color.Color
	PenColor        color.Color
	PenWidth        float64
	// TransparencyPercent is 0 (opaque) to 100.
	TransparencyPercent int
	Attributes          []Attribute

	// FixedSize selects the single category renderer; otherwise sizes are
	// interpolated from the size field.
	FixedSize     bool
	Size          float64
	SizeUnit      units.RenderUnit
	SizeScale     units.MapUnitScale
	LineSizeUnit  units.RenderUnit
	LineSizeScale units.MapUnitScale

	// MaxValue and InterpolatedSize are the upper end of the interpolation
	// range; the lower end is always 0.
	MaxValue          float64
	InterpolatedSize  float64
	SizeField         string
	SizeIsExpression  bool
	ScaleByArea       bool
	IncreaseSmall     bool
	MinimumSize       float64
	LabelPlacement    diagram.LabelPlacement
	Orientation       diagram.Orientation
	BarWidth          float64
	AngleOffset       int
	ScaleVisibility   bool
	MinScale          float64
	MaxScale          float64
	SizeLegendCaption string
	LegendType        diagram.LegendType
	// SizeRules are locale-formatted legend values.
	SizeRules []string

	ShowAttributeLegend bool
	ShowSizeLegend      bool
	SizeLegendSymbol    *symbol.Marker

	Placement      diagramrenderer.Placement
	LineOn         bool
	LineAbove      bool
	LineBelow      bool
	OrientationDep bool
	Distance       float64
	Priority       int
	ZIndex         float64
	ShowAll        bool
	Properties     *properties.Collection
}

// NewForm returns the form shown for a layer without diagrams.
func NewForm() *Form {
	return &Form{
		Type:                diagram.PieName,
		Font:                diagram.DefaultFont(),
		BackgroundColor:     color.White,
		PenColor:            color.Black,
		FixedSize:           true,
		Size:                15,
		SizeUnit:            units.Millimeters,
		LineSizeUnit:        units.Millimeters,
		ScaleByArea:         true,
		LabelPlacement:      diagram.XHeight,
		BarWidth:            5,
		AngleOffset:         90 * 16,
		MinScale:            -1,
		MaxScale:            -1,
		ShowAttributeLegend: true,
		SizeLegendSymbol:    symbol.NewSimpleMarker(),
		Placement:           diagramrenderer.AroundPoint,
		LineOn:              true,
		Priority:            5,
		ShowAll:             true,
		Properties:          properties.NewCollection(),
	}
}

// GuessLegendText returns the legend label proposed for an attribute: the
// expression with a leading and a trailing double quote removed.
func GuessLegendText(expr string) string {
	text := expr
	if len(text) > 0 && text[0] == '"' {
		text = text[1:]
	}
	if len(text) > 0 && text[len(text)-1] == '"' {
		text = text[:len(text)-1]
	}
	return text
}

// AddAttribute appends an attribute row for expr, with a guessed label and
// a color drawn from r.
func (f *Form) AddAttribute(expr string, r *rand.Rand) {
	f.Attributes = append(f.Attributes, Attribute{
		Expression: expr,
		Color:      color.Random(r),
		Label:      GuessLegendText(expr),
	})
}

// Load fills a Form from l's diagram renderer and layer settings.  It
// returns warnings about settings the form cannot represent.
func Load(l *vectorlayer.Layer, fmtr *legend.Formatter) (*Form, []string) {
	f := NewForm()
	r := l.DiagramRenderer()
	if r == nil || r.Settings() == nil {
		return f, nil
	}
	var warnings []string
	s := r.Settings()
	_, interpolated := r.(*diagramrenderer.LinearlyInterpolated)
	f.FixedSize = !interpolated
	f.ShowAttributeLegend = r.ShowAttributeLegend()
	f.ShowSizeLegend = r.ShowSizeLegend()
	if m := r.SizeLegendSymbol(); m != nil {
		f.SizeLegendSymbol = m.Clone().(*symbol.Marker)
	}

	f.Enabled = s.Enabled
	f.Font = s.Font
	f.BackgroundColor = s.BackgroundColor
	f.PenColor = s.PenColor
	f.PenWidth = s.PenWidth
	f.TransparencyPercent = int(math.Round(float64(s.Transparency) * 100 / 255))
	f.Size = (s.Size.Width + s.Size.Height) / 2
	f.SizeUnit, f.SizeScale = s.SizeType, s.SizeScale
	f.LineSizeUnit, f.LineSizeScale = s.LineSizeUnit, s.LineSizeScale
	f.ScaleVisibility = s.ScaleBasedVisibility
	f.MinScale, f.MaxScale = s.MinScaleDenominator, s.MaxScaleDenominator
	f.SizeLegendCaption = s.SizeAttributeLabel
	f.LegendType = s.SizeLegendType
	f.SizeRules = nil
	for _, rule := range s.SizeRules {
		f.SizeRules = append(f.SizeRules, fmtr.Format(rule))
	}
	f.LabelPlacement = s.LabelPlacementMethod
	f.AngleOffset = s.AngleOffset
	f.Orientation = s.Orientation
	f.BarWidth = s.BarWidth
	f.IncreaseSmall = s.MinimumSize != 0
	f.MinimumSize = s.MinimumSize
	f.ScaleByArea = s.ScaleByArea
	f.Attributes = nil
	for _, cat := range s.Categories {
		f.Attributes = append(f.Attributes, Attribute{
			Expression: cat.Attribute,
			Color:      cat.Color.WithAlpha(255),
			Label:      cat.Label,
		})
	}

	if li, ok := r.(*diagramrenderer.LinearlyInterpolated); ok {
		is := li.Interpolation()
		f.MaxValue = is.UpperValue
		f.InterpolatedSize = (is.UpperSize.Width + is.UpperSize.Height) / 2
		f.SizeIsExpression = is.ClassificationAttributeIsExpression
		if f.SizeIsExpression {
			f.SizeField = is.ClassificationAttributeExpression
		} else {
			f.SizeField = is.ClassificationField
		}
	}

	if ls := l.DiagramSettings(); ls != nil {
		f.Distance = ls.Distance
		f.Priority = ls.Priority
		f.ZIndex = ls.ZIndex
		f.Placement = ls.Placement
		f.LineAbove = ls.LinePlacementFlags&diagramrenderer.AboveLine != 0
		f.LineBelow = ls.LinePlacementFlags&diagramrenderer.BelowLine != 0
		f.LineOn = ls.LinePlacementFlags&diagramrenderer.OnLine != 0
		f.OrientationDep = ls.LinePlacementFlags&diagramrenderer.MapOrientation == 0
		f.ShowAll = ls.ShowAll
		f.Properties = ls.Properties.Clone()
	}

	if d := r.Diagram(); d != nil {
		if _, ok := diagram.New(d.Name()); ok {
			f.Type = d.Name()
		} else {
			warnings = append(warnings, fmt.Sprintf("the diagram type '%s' is unknown; a default type is selected", d.Name()))
			f.Type = diagram.PieName
		}
	}
	for _, w := range warnings {
		log.Printf("layer %s: %s", l.ID, w)
	}
	return f, warnings
}

// Settings returns the diagram settings described by f.  Size rules are
// parsed with fmtr and sorted.
func (f *Form) Settings(fmtr *legend.Formatter) (*diagram.Settings, error) {
	s := diagram.NewSettings()
	s.Enabled = f.Enabled
	s.Font = f.Font
	s.Transparency = f.TransparencyPercent * 255 / 100
	s.Categories = nil
	for _, a := range f.Attributes {
		s.Categories = append(s.Categories, diagram.Category{
			Attribute: a.Expression,
			Color:     a.Color.WithAlpha(uint8(255 - s.Transparency)),
			Label:     a.Label,
		})
	}
	s.Size = units.Size{Width: f.Size, Height: f.Size}
	s.SizeType, s.SizeScale = f.SizeUnit, f.SizeScale
	s.LineSizeUnit, s.LineSizeScale = f.LineSizeUnit, f.LineSizeScale
	s.LabelPlacementMethod = f.LabelPlacement
	s.ScaleByArea = f.ScaleByArea
	s.SizeAttributeLabel = f.SizeLegendCaption
	s.SizeLegendType = f.LegendType
	s.SizeRules = nil
	for _, text := range f.SizeRules {
		v, err := fmtr.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("invalid size rule '%s': %w", text, err)
		}
		s.SizeRules = append(s.SizeRules, v)
	}
	slices.Sort(s.SizeRules)
	if f.IncreaseSmall {
		s.MinimumSize = f.MinimumSize
	} else {
		s.MinimumSize = 0
	}
	s.BackgroundColor = f.BackgroundColor
	s.PenColor = f.PenColor
	s.PenWidth = f.PenWidth
	s.MinScaleDenominator, s.MaxScaleDenominator = f.MinScale, f.MaxScale
	s.ScaleBasedVisibility = f.ScaleVisibility
	s.AngleOffset = f.AngleOffset
	s.Orientation = f.Orientation
	s.BarWidth = f.BarWidth
	return s, nil
}

// Renderer returns the renderer described by f.
func (f *Form) Renderer(fmtr *legend.Formatter) (diagramrenderer.Renderer, error) {
	s, err := f.Settings(fmtr)
	if err != nil {
		return nil, err
	}
	var r diagramrenderer.Renderer
	if f.FixedSize {
		r = diagramrenderer.NewSingleCategory()
	} else {
		li := diagramrenderer.NewLinearlyInterpolated()
		is := diagram.InterpolationSettings{
			UpperValue:                          f.MaxValue,
			UpperSize:                           units.Size{Width: f.InterpolatedSize, Height: f.InterpolatedSize},
			ClassificationAttributeIsExpression: f.SizeIsExpression,
		}
		if f.SizeIsExpression {
			is.ClassificationAttributeExpression = f.SizeField
		} else {
			is.ClassificationField = f.SizeField
		}
		li.SetInterpolation(is)
		r = li
	}
	d, ok := diagram.New(f.Type)
	if !ok {
		d, _ = diagram.New(diagram.HistogramName)
	}
	r.SetDiagram(d)
	r.SetSettings(s)
	r.SetShowAttributeLegend(f.ShowAttributeLegend)
	r.SetShowSizeLegend(f.ShowSizeLegend)
	if f.SizeLegendSymbol != nil {
		r.SetSizeLegendSymbol(f.SizeLegendSymbol.Clone().(*symbol.Marker))
	}
	return r, nil
}

// LayerSettings returns the diagram layer settings described by f.
func (f *Form) LayerSettings() *diagramrenderer.LayerSettings {
	ls := diagramrenderer.NewLayerSettings()
	if f.Properties != nil {
		ls.Properties = f.Properties.Clone()
	}
	ls.Distance = f.Distance
	ls.Priority = f.Priority
	ls.ZIndex = f.ZIndex
	ls.ShowAll = f.ShowAll
	ls.Placement = f.Placement
	var flags diagramrenderer.LinePlacementFlags
	if f.LineAbove {
		flags |= diagramrenderer.AboveLine
	}
	if f.LineBelow {
		flags |= diagramrenderer.BelowLine
	}
	if f.LineOn {
		flags |= diagramrenderer.OnLine
	}
	if !f.OrientationDep {
		flags |= diagramrenderer.MapOrientation
	}
	ls.LinePlacementFlags = flags
	return ls
}

// Apply installs f's renderer and layer settings on l, marks p dirty and
// requests a repaint of l.  p may be nil.  It returns warnings about
// questionable but accepted settings.
func (f *Form) Apply(p *project.Project, l *vectorlayer.Layer, fmtr *legend.Formatter) ([]string, error) {
	var warnings []string
	if f.Enabled && len(f.Attributes) == 0 {
		warnings = append(warnings, "no attributes added: specify the attributes to visualize on the diagrams or disable diagrams")
	}
	r, err := f.Renderer(fmtr)
	if err != nil {
		return nil, err
	}
	ls := f.LayerSettings()
	ls.SetRenderer(r)
	l.SetDiagramSettings(ls)
	if p != nil {
		p.SetDirty(true)
	}
	l.TriggerRepaint()
	for _, w := range warnings {
		log.Printf("layer %s: %s", l.ID, w)
	}
	return warnings, nil
}

// FindMaximumValue returns the largest value of the size field, or 0 if
// the field holds no numeric values. For a size expression the scan over
// l's features starts at 0, and features for which the expression cannot
// be evaluated are skipped.
func FindMaximumValue(l *vectorlayer.Layer, fieldOrExpr string, isExpression bool) float64 {
	if !isExpression {
		v, _ := l.MaximumValue(fieldOrExpr)
		return v
	}
	expr, err := expression.Parse(fieldOrExpr)
	if err != nil {
		log.Printf("layer %s: %s", l.ID, err)
		return 0
	}
	ctx := expression.NewContext(nil)
	var values []float64
	for _, feat := range l.Features() {
		res, err := expr.Evaluate(ctx.WithFeature(feat))
		if err != nil {
			continue
		}
		if v, ok := feature.ToDouble(res); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return 0
	}
	_, hi := stats.Bounds(values)
	return math.Max(hi, 0)
}
