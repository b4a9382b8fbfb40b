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

package symbol

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/units"
)

const (
	symbolTag        = "symbol"
	layerTag         = "layer"
	propTag          = "prop"
	simpleMarkerName = "SimpleMarker"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeMarker(parent *etree.Element, name string, m *Marker) *etree.Element {
	el := parent.CreateElement(symbolTag)
	el.CreateAttr("type", "marker")
	el.CreateAttr("name", name)
	el.CreateAttr("alpha", formatFloat(m.Opacity))
	el.CreateAttr("clip_to_extent", "1")
	layer := el.CreateElement(layerTag)
	layer.CreateAttr("class", simpleMarkerName)
	layer.CreateAttr("enabled", "1")
	layer.CreateAttr("pass", "0")
	layer.CreateAttr("locked", "0")
	for _, kv := range [][2]string{
		{"angle", formatFloat(m.Angle)},
		{"color", m.Fill.Encode()},
		{"name", m.Shape.String()},
		{"outline_color", m.Stroke.Encode()},
		{"outline_width", formatFloat(m.StrokeWidth)},
		{"outline_width_unit", m.StrokeWidthUnit.String()},
		{"size", formatFloat(m.size)},
		{"size_map_unit_scale", m.sizeScale.Encode()},
		{"size_unit", m.sizeUnit.String()},
	} {
		prop := layer.CreateElement(propTag)
		prop.CreateAttr("k", kv[0])
		prop.CreateAttr("v", kv[1])
	}
	return el
}

// SaveXML appends s to parent as a <symbol> element named name.
func SaveXML(parent *etree.Element, name string, s Symbol) *etree.Element {
	return s.WriteXML(parent, name)
}

// LoadXML reads a marker from a <symbol type="marker"> element.  Properties
// that are missing or malformed keep their NewSimpleMarker defaults; a
// symbol whose first layer is not a simple marker yields the default marker.
func LoadXML(el *etree.Element) (*Marker, error) {
	if el == nil || el.Tag != symbolTag {
		return nil, fmt.Errorf("expected a <%s> element", symbolTag)
	}
	if t := el.SelectAttrValue("type", "marker"); t != "marker" {
		return nil, fmt.Errorf("expected a marker symbol, got '%s'", t)
	}
	m := NewSimpleMarker()
	if alpha, err := strconv.ParseFloat(el.SelectAttrValue("alpha", "1"), 64); err == nil {
		m.Opacity = alpha
	}
	layer := el.SelectElement(layerTag)
	if layer == nil || layer.SelectAttrValue("class", "") != simpleMarkerName {
		return m, nil
	}
	props := map[string]string{}
	for _, prop := range layer.SelectElements(propTag) {
		props[prop.SelectAttrValue("k", "")] = prop.SelectAttrValue("v", "")
	}
	parseFloat := func(key string, into *float64) {
		if f, err := strconv.ParseFloat(props[key], 64); err == nil {
			*into = f
		}
	}
	parseColor := func(key string, into *color.Color) {
		if c, err := color.Parse(props[key]); err == nil {
			*into = c
		}
	}
	parseUnit := func(key string, into *units.RenderUnit) {
		if u, ok := units.DecodeRenderUnit(props[key]); ok {
			*into = u
		}
	}
	if shape, ok := DecodeShape(props["name"]); ok {
		m.Shape = shape
	}
	parseFloat("angle", &m.Angle)
	parseColor("color", &m.Fill)
	parseColor("outline_color", &m.Stroke)
	parseFloat("outline_width", &m.StrokeWidth)
	parseUnit("outline_width_unit", &m.StrokeWidthUnit)
	parseFloat("size", &m.size)
	parseUnit("size_unit", &m.sizeUnit)
	if s, err := units.DecodeMapUnitScale(props["size_map_unit_scale"]); err == nil {
		m.sizeScale = s
	}
	return m, nil
}
