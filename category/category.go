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

// Package category supports declaring the attribute categories of a diagram
// legend.  Each category is one attribute or expression contributing a
// slice, bar or text line to a diagram; its legend entry is keyed by the
// category's ID, and the category may name the field or expression it
// draws from.
package category

import (
	"github.com/ilhamster/diagramviz/util"
)

const (
	categoryIDKey        = "category_id"
	categoryLabelKey     = "category_label"
	categoryAttributeKey = "category_attribute"
)

// Category defines a legend category.
type Category struct {
	id, label, attribute string
}

// New returns a new Category with the provided ID and label.  attribute may
// be empty when the source of the category is unknown.
func New(id, label, attribute string) *Category {
	return &Category{
		id:        id,
		label:     label,
		attribute: attribute,
	}
}

// Define defines a category.  If multiple categories are Defined on the same
// DataBuilder, only the last takes effect.
func (c *Category) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(categoryIDKey, c.id),
		util.StringProperty(categoryLabelKey, c.label),
		util.If(c.attribute != "", util.StringProperty(categoryAttributeKey, c.attribute)),
	)
}

// ID returns the category's ID.
func (c *Category) ID() string {
	return c.id
}

// Label returns the category's label.
func (c *Category) Label() string {
	return c.label
}
