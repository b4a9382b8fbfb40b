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

// Package style supports describing how a legend symbol is painted.
//
// A Style instance maps SVG presentation attribute names, such as `fill` or
// `stroke-width`, to string values.  A Style may be attached to a response
// Datum via the `Define()` method; clients drawing legend symbols themselves
// read them back from the `style_`-prefixed properties.
package style

import (
	"fmt"
	"sort"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/util"
)

const (
	keyPrefix = "style_"
)

// Style defines a set of styles that can be attached to a Datum.
type Style struct {
	attrs map[string]string
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
	}
}

// Define returns a PropertyUpdate defining the receiver into a Datum.
func (s *Style) Define() util.PropertyUpdate {
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	ret := make([]util.PropertyUpdate, len(names))
	for i, name := range names {
		ret[i] = util.StringProperty(keyPrefix+name, s.attrs[name])
	}
	return util.Chain(ret...)
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

// With sets the specified attribute type and value in the receiver.
func (s *Style) With(attrType string, attrVal string) *Style {
	s.attrs[attrType] = attrVal
	return s
}

// Fill sets the fill color, and its opacity if c is translucent.
func (s *Style) Fill(c color.Color) *Style {
	s.With("fill", c.Name())
	if c.A != 255 {
		s.With("fill-opacity", fmt.Sprintf("%.3f", c.Opacity()))
	}
	return s
}

// Stroke sets the stroke color and width.
func (s *Style) Stroke(c color.Color, widthPx float64) *Style {
	s.With("stroke", c.Name())
	return s.With("stroke-width", Px(widthPx))
}

// Get returns the value of the specified attribute.
func (s *Style) Get(attrType string) (string, bool) {
	v, ok := s.attrs[attrType]
	return v, ok
}
