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
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Font weights.
const (
	WeightNormal = 50
	WeightBold   = 75
)

// Font describes the typeface of text diagrams.
type Font struct {
	Family    string
	PointSize float64
	Weight    int
	Italic    bool
	// Style is a named style, such as "Condensed Bold", overriding Weight
	// and Italic where the family provides it.
	Style string
}

// DefaultFont returns the font of a new diagram.
func DefaultFont() Font {
	return Font{
		Family:    "Sans Serif",
		PointSize: 10,
		Weight:    WeightNormal,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// String returns the comma-separated description of f:
// family, point size, pixel size, style hint, weight, italic, underline,
// strikeout, fixed pitch and raw mode.
func (f Font) String() string {
	return fmt.Sprintf("%s,%s,-1,5,%d,%s,0,0,0,0", f.Family, formatFloat(f.PointSize), f.Weight, formatBool(f.Italic))
}

// ParseFont parses a font description produced by Font.String.  Trailing
// fields may be omitted.
func ParseFont(desc string) (Font, bool) {
	fields := strings.Split(desc, ",")
	if len(fields) < 2 || fields[0] == "" {
		return Font{}, false
	}
	ret := DefaultFont()
	ret.Family = fields[0]
	pt, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || pt <= 0 {
		return Font{}, false
	}
	ret.PointSize = pt
	if len(fields) > 4 {
		if w, err := strconv.Atoi(fields[4]); err == nil {
			ret.Weight = w
		}
	}
	if len(fields) > 5 {
		ret.Italic = fields[5] != "0"
	}
	return ret, true
}

const fontPropertiesTag = "fontProperties"

func (f Font) writeXML(parent *etree.Element) {
	el := parent.CreateElement(fontPropertiesTag)
	el.CreateAttr("description", f.String())
	el.CreateAttr("style", f.Style)
}

// readFontXML reads the <fontProperties> child of el, or failing that the
// older font attribute.
func readFontXML(el *etree.Element) (Font, bool) {
	if fp := el.SelectElement(fontPropertiesTag); fp != nil {
		if f, ok := ParseFont(fp.SelectAttrValue("description", "")); ok {
			f.Style = fp.SelectAttrValue("style", "")
			return f, true
		}
	}
	return ParseFont(el.SelectAttrValue("font", ""))
}
