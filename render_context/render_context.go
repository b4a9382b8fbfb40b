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

// Package rendercontext carries the state of a single rendering pass: the
// output resolution and map scale, the expression environment, and the
// Painter diagrams are drawn with.
package rendercontext

import (
	"math"

	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/units"
)

// PointsPerMM converts typographic points to millimeters.
const PointsPerMM = 2.83464567

// MMPerInch converts inches to millimeters.
const MMPerInch = 25.4

// Context is the environment of one rendering pass.
type Context struct {
	// ScaleFactor is the number of painter units (pixels) per millimeter.
	ScaleFactor float64
	// MapUnitsPerPixel is the map extent covered by one pixel.
	MapUnitsPerPixel float64
	// RendererScale is the current map scale denominator.
	RendererScale float64
	// Expressions is the expression environment for the pass.  Renderers
	// derive per-feature contexts from it.
	Expressions *expression.Context
	// ExpressionCache, if not nil, caches parsed expressions across features.
	ExpressionCache *expression.Cache
	Painter         Painter
}

// New returns a Context for output at dpi dots per inch, with the provided
// map units per pixel and scale denominator.
func New(dpi, mapUnitsPerPixel, scale float64) *Context {
	return &Context{
		ScaleFactor:      dpi / MMPerInch,
		MapUnitsPerPixel: mapUnitsPerPixel,
		RendererScale:    scale,
		Expressions:      expression.NewContext(nil),
		ExpressionCache:  expression.NewCache(0),
	}
}

// ExpressionContext returns the pass's expression context, never nil.
func (c *Context) ExpressionContext() *expression.Context {
	if c == nil || c.Expressions == nil {
		return expression.NewContext(nil)
	}
	return c.Expressions
}

// Evaluate evaluates text against ectx, through the expression cache if one
// is configured.
func (c *Context) Evaluate(text string, ectx *expression.Context) (any, error) {
	if c == nil {
		return expression.Evaluate(text, ectx)
	}
	return c.ExpressionCache.Evaluate(text, ectx)
}

// mapUnitsPerPixel returns the map units per pixel, adjusted so that map
// unit sizes stop scaling beyond the scale limits of s.
func (c *Context) mapUnitsPerPixel(s units.MapUnitScale) float64 {
	mup := c.MapUnitsPerPixel
	if c.RendererScale <= 0 {
		return mup
	}
	if s.MaxScale != 0 {
		mup = math.Min(mup/(s.MaxScale*c.RendererScale), mup)
	}
	if s.MinScale != 0 {
		mup = math.Max(mup/(s.MinScale*c.RendererScale), mup)
	}
	return mup
}

// ConvertToPainterUnits converts size, in unit, to painter units.
// Percentages and unknown units convert to 0.
func (c *Context) ConvertToPainterUnits(size float64, unit units.RenderUnit, s units.MapUnitScale) float64 {
	switch unit {
	case units.Millimeters:
		return size * c.ScaleFactor
	case units.Points:
		return size / PointsPerMM * c.ScaleFactor
	case units.Inches:
		return size * MMPerInch * c.ScaleFactor
	case units.Pixels:
		return size
	case units.MapUnits:
		mup := c.mapUnitsPerPixel(s)
		if mup <= 0 {
			return 0
		}
		ret := size / mup
		if s.MinSizeMMEnabled {
			ret = math.Max(ret, s.MinSizeMM*c.ScaleFactor)
		}
		if s.MaxSizeMMEnabled {
			ret = math.Min(ret, s.MaxSizeMM*c.ScaleFactor)
		}
		return ret
	}
	return 0
}

// ConvertToMapUnits converts size, in unit, to map units.  Percentages and
// unknown units convert to 0.
func (c *Context) ConvertToMapUnits(size float64, unit units.RenderUnit, s units.MapUnitScale) float64 {
	mup := c.MapUnitsPerPixel
	switch unit {
	case units.Millimeters:
		return size * c.ScaleFactor * mup
	case units.Points:
		return size / PointsPerMM * c.ScaleFactor * mup
	case units.Inches:
		return size * MMPerInch * c.ScaleFactor * mup
	case units.Pixels:
		return size * mup
	case units.MapUnits:
		ret := size
		if s.MinSizeMMEnabled {
			ret = math.Max(ret, s.MinSizeMM*c.ScaleFactor*mup)
		}
		if s.MaxSizeMMEnabled {
			ret = math.Min(ret, s.MaxSizeMM*c.ScaleFactor*mup)
		}
		return ret
	}
	return 0
}

// ConvertSizeToPainterUnits converts both dimensions of size.
func (c *Context) ConvertSizeToPainterUnits(size units.Size, unit units.RenderUnit, s units.MapUnitScale) units.Size {
	return units.Size{
		Width:  c.ConvertToPainterUnits(size.Width, unit, s),
		Height: c.ConvertToPainterUnits(size.Height, unit, s),
	}
}
