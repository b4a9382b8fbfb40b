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

package expression

import (
	"maps"

	"github.com/ilhamster/diagramviz/feature"
)

// OriginalValueVariable names the variable holding the static value a
// data-defined override replaces.
const OriginalValueVariable = "value"

// Context is the environment an expression is evaluated in: the current
// feature and a set of named variables.  Contexts are immutable; the With
// methods return derived copies.
type Context struct {
	Feature   *feature.Feature
	variables map[string]any
}

// NewContext returns a Context for the provided feature, which may be nil.
func NewContext(f *feature.Feature) *Context {
	return &Context{Feature: f}
}

func (c *Context) derive() *Context {
	if c == nil {
		return &Context{variables: map[string]any{}}
	}
	ret := &Context{Feature: c.Feature, variables: maps.Clone(c.variables)}
	if ret.variables == nil {
		ret.variables = map[string]any{}
	}
	return ret
}

// WithFeature returns a copy of c evaluating against f.
func (c *Context) WithFeature(f *feature.Feature) *Context {
	ret := c.derive()
	ret.Feature = f
	return ret
}

// WithVariable returns a copy of c with the named variable set.
func (c *Context) WithVariable(name string, v any) *Context {
	ret := c.derive()
	ret.variables[name] = v
	return ret
}

// WithOriginalValue returns a copy of c whose @value is v.
func (c *Context) WithOriginalValue(v any) *Context {
	return c.WithVariable(OriginalValueVariable, v)
}

// Variable returns the named variable.  Unset variables are NULL.
func (c *Context) Variable(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.variables[name]
	return v, ok
}
