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

// Package feature defines the map features diagrams are drawn for.
package feature

import (
	"strconv"
	"strings"
)

// Feature is a single map feature: an identifier, a position and a set of
// named attribute values.  Attribute values are nil (NULL), float64, int64,
// string or bool.
type Feature struct {
	ID         int64
	X, Y       float64
	Attributes map[string]any
}

// New returns a Feature with the provided ID and attributes.
func New(id int64, attrs map[string]any) *Feature {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return &Feature{ID: id, Attributes: attrs}
}

// Attribute returns the named attribute's value.  ok is false if the feature
// has no such attribute.
func (f *Feature) Attribute(name string) (v any, ok bool) {
	if f == nil {
		return nil, false
	}
	v, ok = f.Attributes[name]
	return v, ok
}

// Double returns the named attribute as a float64.  ok is false if the
// attribute is missing, NULL or not numeric.
func (f *Feature) Double(name string) (float64, bool) {
	v, ok := f.Attribute(name)
	if !ok {
		return 0, false
	}
	return ToDouble(v)
}

// ToDouble converts an attribute or expression value to a float64.  Numeric
// strings convert; NULL and other strings do not.
func ToDouble(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// ToString converts a value to its string form.  NULL converts to "".
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
