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

// Package legendsource serves the diagram legends and per-feature diagram
// sizes of a project's layers as legend response data series.
package legendsource

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/legend"
	"github.com/ilhamster/diagramviz/project"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/util"
)

// Query names.
const (
	LegendQuery = "diagram_legend"
	SizesQuery  = "diagram_sizes"
)

// Request keys.
const (
	// LayerKey is the series option naming the layer, by ID or name.
	LayerKey = "layer"
	// ScaleKey is an optional series option overriding the map scale
	// denominator of a diagram_sizes query.
	ScaleKey = "scale"
	// LocaleKey is an optional global filter holding a BCP 47 tag, used to
	// format size legend values.
	LocaleKey = "locale"
)

const (
	featureIDKey     = "feature_id"
	diagramWidthKey  = "diagram_width"
	diagramHeightKey = "diagram_height"
)

// Source answers legend queries against a project.
type Source struct {
	project *project.Project
	// DPI, MapUnitsPerPixel and Scale describe the map that per-feature
	// sizes are computed for.
	DPI              float64
	MapUnitsPerPixel float64
	Scale            float64
}

// New returns a Source serving p.
func New(p *project.Project, dpi, mapUnitsPerPixel, scale float64) *Source {
	return &Source{
		project:          p,
		DPI:              dpi,
		MapUnitsPerPixel: mapUnitsPerPixel,
		Scale:            scale,
	}
}

func (s *Source) SupportedDataSeriesQueries() []string {
	return []string{LegendQuery, SizesQuery}
}

// Formatter returns the legend value formatter selected by globalState's
// locale, or nil, formatting in English, if there is none.
func Formatter(globalState map[string]*util.V) (*legend.Formatter, error) {
	v, ok := globalState[LocaleKey]
	if !ok {
		return nil, nil
	}
	tagStr, err := util.ExpectStringValue(v)
	if err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", LocaleKey, err)
	}
	tag, err := language.Parse(tagStr)
	if err != nil {
		return nil, fmt.Errorf("global filter '%s': %w", LocaleKey, err)
	}
	return legend.NewFormatter(tag), nil
}

// LegendNodes returns the diagram legend of the named layer.  A layer
// without diagrams has an empty legend.
func (s *Source) LegendNodes(layer string, fmtr *legend.Formatter) ([]legend.Node, error) {
	l, err := s.project.Layer(layer)
	if err != nil {
		return nil, err
	}
	r := l.DiagramRenderer()
	if r == nil {
		return nil, nil
	}
	return r.LegendItems(fmtr), nil
}

// RenderContext returns a render context for the source's map.
func (s *Source) RenderContext() *rendercontext.Context {
	return rendercontext.New(s.DPI, s.MapUnitsPerPixel, s.Scale)
}

func layerOption(req *util.DataSeriesRequest) (string, error) {
	v, ok := req.Options[LayerKey]
	if !ok {
		return "", fmt.Errorf("query '%s' requires option '%s'", req.QueryName, LayerKey)
	}
	return util.ExpectStringValue(v)
}

func (s *Source) handleLegend(drb *util.DataResponseBuilder, req *util.DataSeriesRequest, fmtr *legend.Formatter) error {
	layer, err := layerOption(req)
	if err != nil {
		return err
	}
	nodes, err := s.LegendNodes(layer, fmtr)
	if err != nil {
		return err
	}
	series := drb.DataSeries(req)
	for _, node := range nodes {
		node.Write(series.Child())
	}
	return nil
}

func (s *Source) handleSizes(ctx context.Context, drb *util.DataResponseBuilder, req *util.DataSeriesRequest) error {
	layer, err := layerOption(req)
	if err != nil {
		return err
	}
	l, err := s.project.Layer(layer)
	if err != nil {
		return err
	}
	rc := s.RenderContext()
	if v, ok := req.Options[ScaleKey]; ok {
		if rc.RendererScale, err = util.ExpectDoubleValue(v); err != nil {
			return fmt.Errorf("option '%s': %w", ScaleKey, err)
		}
	}
	series := drb.DataSeries(req)
	r := l.DiagramRenderer()
	if r == nil || r.Settings() == nil {
		return nil
	}
	settings := r.Settings()
	if !settings.Enabled || !settings.Visible(rc.RendererScale) {
		return nil
	}
	for _, f := range l.Features() {
		if err := ctx.Err(); err != nil {
			return err
		}
		size := r.SizeMapUnits(f, rc)
		if !size.IsValid() {
			continue
		}
		series.Child().With(
			util.IntegerProperty(featureIDKey, f.ID),
			util.DoubleProperty(diagramWidthKey, size.Width),
			util.DoubleProperty(diagramHeightKey, size.Height),
			color.Secondary(settings.BackgroundColor),
			color.Stroke(settings.PenColor),
		)
	}
	return nil
}

// HandleDataSeriesRequests builds one data series per request.
func (s *Source) HandleDataSeriesRequests(ctx context.Context, globalState map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	fmtr, err := Formatter(globalState)
	if err != nil {
		return err
	}
	for _, req := range reqs {
		switch req.QueryName {
		case LegendQuery:
			err = s.handleLegend(drb, req, fmtr)
		case SizesQuery:
			err = s.handleSizes(ctx, drb, req)
		default:
			err = fmt.Errorf("unsupported data query `%s`", req.QueryName)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
