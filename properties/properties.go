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

// Package properties implements data-defined properties: per-feature
// overrides of static diagram settings, given as a constant, an attribute
// field or an expression.
package properties

import (
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/feature"
)

// Key identifies an overridable diagram property.
type Key int

// Overridable diagram properties.
const (
	BackgroundColor Key = iota
	StrokeColor
	StrokeWidth
	PositionX
	PositionY
	Distance
	Priority
	ZIndex
	IsObstacle
	Show
	AlwaysShow
	StartAngle
)

// ValueType describes the values a property accepts.
type ValueType int

// Property value types.
const (
	ColorWithAlpha ValueType = iota
	StrokeWidthValue
	Double
	DoublePositive
	Boolean
	Rotation
)

// Definition describes one Key.
type Definition struct {
	Name        string
	Description string
	Type        ValueType
}

// Definitions describes every Key.
var Definitions = map[Key]Definition{
	BackgroundColor: {"backgroundColor", "Background color", ColorWithAlpha},
	StrokeColor:     {"strokeColor", "Stroke color", ColorWithAlpha},
	StrokeWidth:     {"strokeWidth", "Stroke width", StrokeWidthValue},
	PositionX:       {"positionX", "Position (X)", Double},
	PositionY:       {"positionY", "Position (Y)", Double},
	Distance:        {"distance", "Placement distance", DoublePositive},
	Priority:        {"priority", "Placement priority", DoublePositive},
	ZIndex:          {"zIndex", "Diagram z-index", Double},
	IsObstacle:      {"isObstacle", "Diagram is an obstacle", Boolean},
	Show:            {"show", "Show diagram", Boolean},
	AlwaysShow:      {"alwaysShow", "Always show diagram", Boolean},
	StartAngle:      {"startAngle", "Pie chart start angle", Rotation},
}

// Name returns the persisted name of k.
func (k Key) Name() string {
	return Definitions[k].Name
}

// KeyByName returns the Key with the provided persisted name.
func KeyByName(name string) (Key, bool) {
	for k, def := range Definitions {
		if def.Name == name {
			return k, true
		}
	}
	return 0, false
}

// Kind is the source of a Property's value.
type Kind int

// Property kinds.
const (
	Invalid Kind = iota
	Static
	Field
	Expression
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	Static:     "static",
	Field:      "field",
	Expression: "expression",
}

func (k Kind) String() string {
	return kindNames[k]
}

func kindByName(name string) Kind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return Invalid
}

// Property is a single data-defined property.
type Property struct {
	Kind   Kind
	Active bool
	// Value is the constant of a Static property.
	Value any
	// Field is the attribute read by a Field property.
	Field string
	// Expression is the text of an Expression property.
	Expression string
}

// FromValue returns an active static Property.
func FromValue(v any) Property {
	return Property{Kind: Static, Active: true, Value: v}
}

// FromField returns an active Property reading the named field.
func FromField(name string) Property {
	return Property{Kind: Field, Active: true, Field: name}
}

// FromExpression returns an active Property evaluating text.
func FromExpression(text string) Property {
	return Property{Kind: Expression, Active: true, Expression: text}
}

// IsActive returns true if p has a source and is active.
func (p Property) IsActive() bool {
	return p.Active && p.Kind != Invalid
}

// Evaluator evaluates expression text.  *expression.Cache and
// *rendercontext.Context are Evaluators.
type Evaluator interface {
	Evaluate(text string, ectx *expression.Context) (any, error)
}

func (p Property) value(ev Evaluator, ectx *expression.Context) (any, bool, error) {
	if !p.IsActive() {
		return nil, false, nil
	}
	switch p.Kind {
	case Static:
		return p.Value, true, nil
	case Field:
		if ectx == nil {
			return nil, false, nil
		}
		v, ok := ectx.Feature.Attribute(p.Field)
		return v, ok, nil
	case Expression:
		var v any
		var err error
		if ev == nil {
			v, err = expression.Evaluate(p.Expression, ectx)
		} else {
			v, err = ev.Evaluate(p.Expression, ectx)
		}
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return nil, false, nil
}

// referencedFields adds the fields p reads to into.
func (p Property) referencedFields(into map[string]struct{}) {
	if !p.IsActive() {
		return
	}
	switch p.Kind {
	case Field:
		into[p.Field] = struct{}{}
	case Expression:
		e, err := expression.Parse(p.Expression)
		if err != nil {
			log.Printf("skipping unparseable property expression: %s", err)
			return
		}
		for _, col := range e.ReferencedColumns() {
			into[col] = struct{}{}
		}
	}
}

// Collection is a set of data-defined properties keyed by Key.
type Collection struct {
	props map[Key]Property
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{props: map[Key]Property{}}
}

// Set sets the property for k.
func (c *Collection) Set(k Key, p Property) *Collection {
	c.props[k] = p
	return c
}

// Property returns the property for k; the zero Property if unset.
func (c *Collection) Property(k Key) Property {
	if c == nil {
		return Property{}
	}
	return c.props[k]
}

// IsActive returns true if the property for k is active.
func (c *Collection) IsActive(k Key) bool {
	return c.Property(k).IsActive()
}

// HasActiveProperties returns true if any property is active.
func (c *Collection) HasActiveProperties() bool {
	if c == nil {
		return false
	}
	for _, p := range c.props {
		if p.IsActive() {
			return true
		}
	}
	return false
}

// Keys returns the keys with properties set, in Key order.
func (c *Collection) Keys() []Key {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.props))
}

// Clone returns a deep copy of c.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return NewCollection()
	}
	return &Collection{props: maps.Clone(c.props)}
}

// Value returns the value of the property for k.  ok is false if the
// property is inactive or could not be evaluated; evaluation failures are
// logged.
func (c *Collection) Value(k Key, ev Evaluator, ectx *expression.Context) (v any, ok bool) {
	v, ok, err := c.Property(k).value(ev, ectx)
	if err != nil {
		log.Printf("data-defined %s: %s", k.Name(), err)
		return nil, false
	}
	return v, ok && v != nil
}

// ValueAsColor returns the property for k as a color, or def.
func (c *Collection) ValueAsColor(k Key, ev Evaluator, ectx *expression.Context, def color.Color) (color.Color, bool) {
	v, ok := c.Value(k, ev, ectx)
	if !ok {
		return def, false
	}
	if col, isColor := v.(color.Color); isColor {
		return col, true
	}
	col, err := color.Parse(feature.ToString(v))
	if err != nil {
		return def, false
	}
	return col, true
}

// ValueAsDouble returns the property for k as a float64, or def.
func (c *Collection) ValueAsDouble(k Key, ev Evaluator, ectx *expression.Context, def float64) (float64, bool) {
	v, ok := c.Value(k, ev, ectx)
	if !ok {
		return def, false
	}
	f, ok := feature.ToDouble(v)
	if !ok {
		return def, false
	}
	return f, true
}

// ValueAsBool returns the property for k as a bool, or def.
func (c *Collection) ValueAsBool(k Key, ev Evaluator, ectx *expression.Context, def bool) (bool, bool) {
	v, ok := c.Value(k, ev, ectx)
	if !ok {
		return def, false
	}
	if s, isString := v.(string); isString {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
		return def, false
	}
	f, ok := feature.ToDouble(v)
	if !ok {
		return def, false
	}
	return f != 0, true
}

// ReferencedFields returns the sorted fields read by active properties.
func (c *Collection) ReferencedFields() []string {
	fields := map[string]struct{}{}
	if c != nil {
		for _, p := range c.props {
			p.referencedFields(fields)
		}
	}
	return slices.Sorted(maps.Keys(fields))
}
