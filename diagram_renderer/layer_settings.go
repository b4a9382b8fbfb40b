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

package diagramrenderer

import (
	"log"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ilhamster/diagramviz/properties"
)

// LayerSettingsTag is the element holding a layer's LayerSettings.
const LayerSettingsTag = "DiagramLayerSettings"

// Placement is the placement of diagrams relative to their features.
type Placement int

// Placements.
const (
	AroundPoint Placement = iota
	OverPoint
	Line
	Curved
	Horizontal
	Free
)

// LinePlacementFlags refine Line and Curved placement.
type LinePlacementFlags int

// Line placement flags.
const (
	OnLine         LinePlacementFlags = 1
	AboveLine      LinePlacementFlags = 2
	BelowLine      LinePlacementFlags = 4
	MapOrientation LinePlacementFlags = 8
)

// LayerSettings holds a layer's diagram placement options, its data-defined
// overrides, and its Renderer.
type LayerSettings struct {
	Placement          Placement
	LinePlacementFlags LinePlacementFlags
	Priority           int
	ZIndex             float64
	Obstacle           bool
	// Distance separates diagrams from their features, in millimeters.
	Distance float64
	// ShowAll draws diagrams even where they would overlap.
	ShowAll    bool
	Properties *properties.Collection
	renderer   Renderer
}

// NewLayerSettings returns LayerSettings with no renderer.
func NewLayerSettings() *LayerSettings {
	return &LayerSettings{
		Placement:          AroundPoint,
		LinePlacementFlags: OnLine,
		Priority:           5,
		ShowAll:            true,
		Properties:         properties.NewCollection(),
	}
}

// Renderer returns the layer's renderer, or nil.
func (ls *LayerSettings) Renderer() Renderer {
	return ls.renderer
}

// SetRenderer installs r, replacing any previous renderer.
func (ls *LayerSettings) SetRenderer(r Renderer) {
	ls.renderer = r
}

// Clone returns a deep copy of ls, including its renderer.
func (ls *LayerSettings) Clone() *LayerSettings {
	ret := *ls
	ret.Properties = ls.Properties.Clone()
	if ls.renderer != nil {
		ret.renderer = ls.renderer.Clone()
	}
	return &ret
}

// ReferencedFields returns the sorted fields read by the renderer and the
// data-defined overrides.
func (ls *LayerSettings) ReferencedFields() []string {
	fields := map[string]struct{}{}
	if ls.renderer != nil {
		for _, f := range ls.renderer.ReferencedFields() {
			fields[f] = struct{}{}
		}
	}
	for _, f := range ls.Properties.ReferencedFields() {
		fields[f] = struct{}{}
	}
	return sortedFields(fields)
}

func intAttr(el *etree.Element, name string) int {
	i, _ := strconv.Atoi(el.SelectAttrValue(name, ""))
	return i
}

// fieldByIndex returns the name of the field at the index held in attribute
// name of el.
func fieldByIndex(el *etree.Element, name string, fields []string) (string, bool) {
	attr := el.SelectAttr(name)
	if attr == nil {
		return "", false
	}
	i, err := strconv.Atoi(attr.Value)
	if err != nil || i < 0 || i >= len(fields) {
		return "", false
	}
	return fields[i], true
}

// ReadXML replaces ls with the settings persisted in el, a
// <DiagramLayerSettings> element.  The renderer is not changed.  fields names
// the layer's fields, for upgrading the column indexes written by older
// projects.
func (ls *LayerSettings) ReadXML(el *etree.Element, fields []string) {
	props, err := properties.ReadXML(el.FindElement(".//" + properties.ElementName))
	if err != nil {
		log.Printf("ignoring diagram properties: %s", err)
		props = properties.NewCollection()
	}
	ls.Properties = props
	ls.Placement = Placement(intAttr(el, "placement"))
	ls.LinePlacementFlags = LinePlacementFlags(intAttr(el, "linePlacementFlags"))
	ls.Priority = intAttr(el, "priority")
	ls.ZIndex = floatAttr(el, "zIndex")
	ls.Obstacle = intAttr(el, "obstacle") != 0
	ls.Distance = floatAttr(el, "dist")
	for _, upgrade := range []struct {
		attr string
		key  properties.Key
	}{
		{"xPosColumn", properties.PositionX},
		{"yPosColumn", properties.PositionY},
		{"showColumn", properties.Show},
	} {
		if name, ok := fieldByIndex(el, upgrade.attr, fields); ok {
			ls.Properties.Set(upgrade.key, properties.FromField(name))
		}
	}
	ls.ShowAll = el.SelectAttrValue("showAll", "0") != "0"
}

// WriteXML appends a <DiagramLayerSettings> element describing ls to
// parent.  The renderer is not written.
func (ls *LayerSettings) WriteXML(parent *etree.Element) *etree.Element {
	el := parent.CreateElement(LayerSettingsTag)
	ls.Properties.WriteXML(el)
	el.CreateAttr("placement", strconv.Itoa(int(ls.Placement)))
	el.CreateAttr("linePlacementFlags", strconv.Itoa(int(ls.LinePlacementFlags)))
	el.CreateAttr("priority", strconv.Itoa(ls.Priority))
	el.CreateAttr("zIndex", strconv.FormatFloat(ls.ZIndex, 'g', -1, 64))
	el.CreateAttr("obstacle", boolAttr(ls.Obstacle))
	el.CreateAttr("dist", strconv.FormatFloat(ls.Distance, 'g', -1, 64))
	el.CreateAttr("showAll", boolAttr(ls.ShowAll))
	return el
}

// ReadLayerXML reads the diagram renderer and layer settings persisted under
// layerEl, a layer element.  ok is false if layerEl holds neither.  A
// <properties> element inside the renderer element is used when the layer
// settings define no properties.
func ReadLayerXML(layerEl *etree.Element, fields []string) (ls *LayerSettings, ok bool, err error) {
	rendererEl := FindXML(layerEl)
	settingsEl := layerEl.SelectElement(LayerSettingsTag)
	if rendererEl == nil && settingsEl == nil {
		return nil, false, nil
	}
	ls = NewLayerSettings()
	if settingsEl != nil {
		ls.ReadXML(settingsEl, fields)
	}
	if rendererEl == nil {
		return ls, true, nil
	}
	r, err := ReadXML(rendererEl, fields)
	if err != nil {
		return nil, false, err
	}
	ls.renderer = r
	if len(ls.Properties.Keys()) == 0 {
		if propsEl := rendererEl.SelectElement(properties.ElementName); propsEl != nil {
			props, err := properties.ReadXML(propsEl)
			if err != nil {
				return nil, false, err
			}
			ls.Properties = props
		}
	}
	return ls, true, nil
}

// WriteLayerXML appends ls's renderer, if any, and ls itself to layerEl.
func (ls *LayerSettings) WriteLayerXML(layerEl *etree.Element) {
	if ls.renderer != nil {
		ls.renderer.WriteXML(layerEl)
	}
	ls.WriteXML(layerEl)
}
