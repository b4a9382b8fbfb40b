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

package vectorlayer

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	diagramrenderer "github.com/ilhamster/diagramviz/diagram_renderer"
	"github.com/ilhamster/diagramviz/feature"
)

// Persisted element tags.
const (
	LayerTag    = "maplayer"
	idTag       = "id"
	nameTag     = "layername"
	fieldsTag   = "fields"
	fieldTag    = "field"
	featuresTag = "features"
	featureTag  = "feature"
	attrTag     = "attr"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// encodeValue returns the persisted type and text of an attribute value.
func encodeValue(v any) (typ, text string) {
	switch t := v.(type) {
	case nil:
		return "null", ""
	case float64:
		return "double", formatFloat(t)
	case int64:
		return "int", strconv.FormatInt(t, 10)
	case int:
		return "int", strconv.Itoa(t)
	case bool:
		return "bool", strconv.FormatBool(t)
	case string:
		return "string", t
	}
	return "string", feature.ToString(v)
}

func decodeValue(typ, text string) (any, error) {
	switch typ {
	case "null":
		return nil, nil
	case "double":
		return strconv.ParseFloat(text, 64)
	case "int":
		return strconv.ParseInt(text, 10, 64)
	case "bool":
		return strconv.ParseBool(text)
	case "string", "":
		return text, nil
	}
	return nil, fmt.Errorf("unsupported attribute type '%s'", typ)
}

// WriteXML appends a <maplayer> element describing l, its features and its
// diagrams to parent.
func (l *Layer) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(LayerTag)
	el.CreateAttr("type", "vector")
	el.CreateElement(idTag).SetText(l.ID)
	el.CreateElement(nameTag).SetText(l.Name)
	fields := el.CreateElement(fieldsTag)
	for _, name := range l.fields {
		fields.CreateElement(fieldTag).CreateAttr("name", name)
	}
	features := el.CreateElement(featuresTag)
	for _, f := range l.features {
		fel := features.CreateElement(featureTag)
		fel.CreateAttr("id", strconv.FormatInt(f.ID, 10))
		fel.CreateAttr("x", formatFloat(f.X))
		fel.CreateAttr("y", formatFloat(f.Y))
		for _, name := range l.fields {
			v, ok := f.Attribute(name)
			if !ok {
				continue
			}
			typ, text := encodeValue(v)
			ael := fel.CreateElement(attrTag)
			ael.CreateAttr("name", name)
			ael.CreateAttr("type", typ)
			ael.SetText(text)
		}
	}
	if l.diagrams != nil {
		l.diagrams.WriteLayerXML(el)
	}
	return el
}

func childText(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

// ReadXML reads a layer from a <maplayer> element.
func ReadXML(el *etree.Element) (*Layer, error) {
	if el.Tag != LayerTag {
		return nil, fmt.Errorf("expected <%s>, got <%s>", LayerTag, el.Tag)
	}
	l := New(childText(el, idTag), childText(el, nameTag))
	if fields := el.SelectElement(fieldsTag); fields != nil {
		for _, fel := range fields.SelectElements(fieldTag) {
			l.fields = append(l.fields, fel.SelectAttrValue("name", ""))
		}
	}
	if features := el.SelectElement(featuresTag); features != nil {
		for _, fel := range features.SelectElements(featureTag) {
			id, err := strconv.ParseInt(fel.SelectAttrValue("id", ""), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("layer %s: invalid feature id: %w", l.ID, err)
			}
			f := feature.New(id, nil)
			f.X, _ = strconv.ParseFloat(fel.SelectAttrValue("x", "0"), 64)
			f.Y, _ = strconv.ParseFloat(fel.SelectAttrValue("y", "0"), 64)
			for _, ael := range fel.SelectElements(attrTag) {
				v, err := decodeValue(ael.SelectAttrValue("type", ""), ael.Text())
				if err != nil {
					return nil, fmt.Errorf("layer %s, feature %d: %w", l.ID, id, err)
				}
				f.Attributes[ael.SelectAttrValue("name", "")] = v
			}
			l.features = append(l.features, f)
		}
	}
	ls, ok, err := diagramrenderer.ReadLayerXML(el, l.fields)
	if err != nil {
		return nil, fmt.Errorf("layer %s: %w", l.ID, err)
	}
	if ok {
		l.diagrams = ls
	}
	return l, nil
}
