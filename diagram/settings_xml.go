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
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/units"
)

// CategoryTag is the element holding a diagram's Settings.
const CategoryTag = "DiagramCategory"

const (
	sizeRuleTag  = "diagramSizeLegendRule"
	attributeTag = "attribute"
)

func attrFloat(el *etree.Element, name string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(el.SelectAttrValue(name, "")), 64)
	if err != nil {
		return def
	}
	return f
}

func attrInt(el *etree.Element, name string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(el.SelectAttrValue(name, "")))
	if err != nil {
		return def
	}
	return i
}

func attrBool(el *etree.Element, name string, def bool) bool {
	v := el.SelectAttr(name)
	if v == nil {
		return def
	}
	return v.Value != "0"
}

// decodeUnit decodes a persisted unit, defaulting to millimeters.
func decodeUnit(name string) units.RenderUnit {
	if u, ok := units.DecodeRenderUnit(name); ok {
		return u
	}
	return units.Millimeters
}

// parseColor parses a color name, yielding black for unparseable names.
func parseColor(name string) color.Color {
	c, err := color.Parse(name)
	if err != nil {
		return color.Black
	}
	return c
}

func clampAlpha(a int) uint8 {
	switch {
	case a < 0:
		return 0
	case a > 255:
		return 255
	}
	return uint8(a)
}

// ReadXML replaces s with the settings held in el, a <DiagramCategory>
// element.  Missing or malformed attributes take their persisted defaults,
// and older attribute forms are upgraded.
func (s *Settings) ReadXML(el *etree.Element) {
	*s = Settings{Font: DefaultFont()}
	s.Enabled = attrBool(el, "enabled", true)
	if f, ok := readFontXML(el); ok {
		s.Font = f
	}
	s.BackgroundColor = parseColor(el.SelectAttrValue("backgroundColor", "")).
		WithAlpha(clampAlpha(attrInt(el, "backgroundAlpha", 0)))
	s.Size = units.Size{
		Width:  attrFloat(el, "width", 0),
		Height: attrFloat(el, "height", 0),
	}
	s.Transparency = attrInt(el, "transparency", 0)
	s.PenColor = parseColor(el.SelectAttrValue("penColor", "")).
		WithAlpha(clampAlpha(attrInt(el, "penAlpha", 255)))
	s.PenWidth = attrFloat(el, "penWidth", 0)

	s.MinScaleDenominator = attrFloat(el, "minScaleDenominator", -1)
	s.MaxScaleDenominator = attrFloat(el, "maxScaleDenominator", -1)
	if el.SelectAttr("scaleBasedVisibility") != nil {
		s.ScaleBasedVisibility = attrBool(el, "scaleBasedVisibility", true)
	} else {
		s.ScaleBasedVisibility = s.MinScaleDenominator >= 0 && s.MaxScaleDenominator >= 0
	}

	// decodeUnit accepts the older "MapUnits" spelling.
	s.SizeType = decodeUnit(el.SelectAttrValue("sizeType", ""))
	s.SizeScale, _ = units.DecodeMapUnitScale(el.SelectAttrValue("sizeScale", ""))
	s.LineSizeUnit = decodeUnit(el.SelectAttrValue("lineSizeType", ""))
	s.LineSizeScale, _ = units.DecodeMapUnitScale(el.SelectAttrValue("lineSizeScale", ""))

	if el.SelectAttrValue("labelPlacementMethod", "") == "Height" {
		s.LabelPlacementMethod = Height
	} else {
		s.LabelPlacementMethod = XHeight
	}
	switch el.SelectAttrValue("diagramOrientation", "") {
	case "Left":
		s.Orientation = Left
	case "Right":
		s.Orientation = Right
	case "Down":
		s.Orientation = Down
	default:
		s.Orientation = Up
	}
	s.ScaleByArea = el.SelectAttrValue("scaleDependency", "") != "Diameter"

	s.BarWidth = attrFloat(el, "barWidth", 0)
	s.AngleOffset = attrInt(el, "angleOffset", 0)
	s.MinimumSize = attrFloat(el, "minimumSize", 0)
	s.SizeAttributeLabel = el.SelectAttrValue("sizeAttributeLabel", "")
	switch el.SelectAttrValue("sizeDiagramLegendType", "") {
	case "ConcentricCenter":
		s.SizeLegendType = ConcentricCenter
	case "ConcentricTop":
		s.SizeLegendType = ConcentricTop
	case "Multiple":
		s.SizeLegendType = Multiple
	default:
		s.SizeLegendType = ConcentricBottom
	}

	for _, rule := range el.FindElements(".//" + sizeRuleTag) {
		s.SizeRules = append(s.SizeRules, attrFloat(rule, "value", 0))
	}

	alpha := clampAlpha(255 - s.Transparency)
	if attrs := el.FindElements(".//" + attributeTag); len(attrs) > 0 {
		for _, attr := range attrs {
			c := Category{
				Attribute: attr.SelectAttrValue("field", ""),
				Color:     parseColor(attr.SelectAttrValue("color", "")).WithAlpha(alpha),
				Label:     attr.SelectAttrValue("label", ""),
			}
			if c.Label == "" {
				c.Label = c.Attribute
			}
			s.Categories = append(s.Categories, c)
		}
		return
	}
	// Older projects store parallel slash-separated lists.
	colors := splitList(el.SelectAttrValue("colors", ""))
	attributes := splitList(el.SelectAttrValue("categories", ""))
	for i := 0; i < min(len(colors), len(attributes)); i++ {
		s.Categories = append(s.Categories, Category{
			Attribute: attributes[i],
			Color:     parseColor(colors[i]).WithAlpha(alpha),
			Label:     attributes[i],
		})
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// WriteXML appends a <DiagramCategory> element describing s to parent.
func (s *Settings) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(CategoryTag)
	el.CreateAttr("enabled", formatBool(s.Enabled))
	s.Font.writeXML(el)
	el.CreateAttr("backgroundColor", s.BackgroundColor.Name())
	el.CreateAttr("backgroundAlpha", strconv.Itoa(int(s.BackgroundColor.A)))
	el.CreateAttr("width", formatFloat(s.Size.Width))
	el.CreateAttr("height", formatFloat(s.Size.Height))
	el.CreateAttr("penColor", s.PenColor.Name())
	el.CreateAttr("penAlpha", strconv.Itoa(int(s.PenColor.A)))
	el.CreateAttr("penWidth", formatFloat(s.PenWidth))
	el.CreateAttr("scaleBasedVisibility", formatBool(s.ScaleBasedVisibility))
	el.CreateAttr("minScaleDenominator", formatFloat(s.MinScaleDenominator))
	el.CreateAttr("maxScaleDenominator", formatFloat(s.MaxScaleDenominator))
	el.CreateAttr("transparency", strconv.Itoa(s.Transparency))
	el.CreateAttr("sizeType", s.SizeType.String())
	el.CreateAttr("sizeScale", s.SizeScale.Encode())
	el.CreateAttr("lineSizeType", s.LineSizeUnit.String())
	el.CreateAttr("lineSizeScale", s.LineSizeScale.Encode())
	if s.LabelPlacementMethod == Height {
		el.CreateAttr("labelPlacementMethod", "Height")
	} else {
		el.CreateAttr("labelPlacementMethod", "XHeight")
	}
	if s.ScaleByArea {
		el.CreateAttr("scaleDependency", "Area")
	} else {
		el.CreateAttr("scaleDependency", "Diameter")
	}
	orientation := s.Orientation.String()
	if orientation == "" {
		orientation = Up.String()
	}
	el.CreateAttr("diagramOrientation", orientation)
	el.CreateAttr("barWidth", formatFloat(s.BarWidth))
	el.CreateAttr("minimumSize", formatFloat(s.MinimumSize))
	el.CreateAttr("angleOffset", strconv.Itoa(s.AngleOffset))
	el.CreateAttr("sizeAttributeLabel", s.SizeAttributeLabel)
	if lt := s.SizeLegendType.String(); lt != "" {
		el.CreateAttr("sizeDiagramLegendType", lt)
	}
	for _, v := range s.SizeRules {
		el.CreateElement(sizeRuleTag).CreateAttr("value", formatFloat(v))
	}
	for _, c := range s.Categories {
		attr := el.CreateElement(attributeTag)
		attr.CreateAttr("field", c.Attribute)
		attr.CreateAttr("color", c.Color.Name())
		attr.CreateAttr("label", c.Label)
	}
	return el
}
