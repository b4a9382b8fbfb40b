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

package properties

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/feature"
)

// ElementName is the tag of a persisted Collection.
const ElementName = "properties"

// WriteXML appends a <properties> element describing c to parent.  Only
// properties with a source are written.
func (c *Collection) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(ElementName)
	for _, k := range c.Keys() {
		p := c.props[k]
		if p.Kind == Invalid {
			continue
		}
		pel := el.CreateElement("property")
		pel.CreateAttr("key", k.Name())
		pel.CreateAttr("type", p.Kind.String())
		pel.CreateAttr("active", boolAttr(p.Active))
		switch p.Kind {
		case Static:
			pel.CreateAttr("value", feature.ToString(p.Value))
		case Field:
			pel.CreateAttr("field", p.Field)
		case Expression:
			pel.CreateAttr("expression", p.Expression)
		}
	}
	return el
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ReadXML reads a Collection from a <properties> element.  Properties with
// unknown keys or kinds are skipped.  A nil element yields an empty
// Collection.
func ReadXML(el *etree.Element) (*Collection, error) {
	ret := NewCollection()
	if el == nil {
		return ret, nil
	}
	if el.Tag != ElementName {
		return nil, fmt.Errorf("expected <%s>, got <%s>", ElementName, el.Tag)
	}
	for _, pel := range el.SelectElements("property") {
		k, ok := KeyByName(pel.SelectAttrValue("key", ""))
		if !ok {
			continue
		}
		p := Property{
			Kind:   kindByName(pel.SelectAttrValue("type", "")),
			Active: pel.SelectAttrValue("active", "1") != "0",
		}
		switch p.Kind {
		case Static:
			p.Value = pel.SelectAttrValue("value", "")
		case Field:
			p.Field = pel.SelectAttrValue("field", "")
		case Expression:
			p.Expression = pel.SelectAttrValue("expression", "")
		default:
			continue
		}
		ret.props[k] = p
	}
	return ret, nil
}
