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
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/diagram"
	"github.com/ilhamster/diagramviz/properties"
)

var layerSettingsCmpOpts = append([]cmp.Option{
	cmp.AllowUnexported(LayerSettings{}, properties.Collection{}),
}, rendererCmpOpts...)

func TestLayerSettingsXMLRoundTrip(t *testing.T) {
	ls := NewLayerSettings()
	ls.Placement = Line
	ls.LinePlacementFlags = AboveLine | MapOrientation
	ls.Priority = 8
	ls.ZIndex = 2.5
	ls.Obstacle = true
	ls.Distance = 1.25
	ls.ShowAll = false
	ls.Properties.
		Set(properties.PositionX, properties.FromField("x")).
		Set(properties.StartAngle, properties.FromExpression(`"heading" * 2`))
	ls.SetRenderer(newLinear(&diagram.Pie{}))

	doc := etree.NewDocument()
	layer := doc.CreateElement("maplayer")
	ls.WriteLayerXML(layer)
	got, ok, err := ReadLayerXML(layer, nil)
	if err != nil || !ok {
		t.Fatalf("ReadLayerXML() = %v, %t, %v", got, ok, err)
	}
	if diff := cmp.Diff(ls, got, layerSettingsCmpOpts...); diff != "" {
		t.Errorf("round trip diff (-want +got) %s", diff)
	}
}

func TestReadLayerXML(t *testing.T) {
	fields := []string{"id", "x", "y", "visible"}
	for _, test := range []struct {
		description  string
		xml          string
		wantOK       bool
		wantProps    map[properties.Key]properties.Property
		wantRenderer string
		wantShowAll  bool
	}{{
		description: "no diagrams",
		xml:         `<maplayer><id>roads</id></maplayer>`,
	}, {
		description: "legacy column indexes",
		xml: `<maplayer>
			<SingleCategoryDiagramRenderer diagramType="Pie"/>
			<DiagramLayerSettings xPosColumn="1" yPosColumn="2" showColumn="9" showAll="1"/>
		</maplayer>`,
		wantOK: true,
		wantProps: map[properties.Key]properties.Property{
			properties.PositionX: properties.FromField("x"),
			properties.PositionY: properties.FromField("y"),
		},
		wantRenderer: SingleCategoryTag,
		wantShowAll:  true,
	}, {
		description: "properties inside the renderer",
		xml: `<maplayer>
			<LinearlyInterpolatedDiagramRenderer diagramType="Text">
				<properties><property key="backgroundColor" type="field" field="fill" active="1"/></properties>
			</LinearlyInterpolatedDiagramRenderer>
			<DiagramLayerSettings/>
		</maplayer>`,
		wantOK: true,
		wantProps: map[properties.Key]properties.Property{
			properties.BackgroundColor: properties.FromField("fill"),
		},
		wantRenderer: LinearlyInterpolatedTag,
	}, {
		description: "layer settings properties take precedence",
		xml: `<maplayer>
			<LinearlyInterpolatedDiagramRenderer diagramType="Text">
				<properties><property key="backgroundColor" type="field" field="fill" active="1"/></properties>
			</LinearlyInterpolatedDiagramRenderer>
			<DiagramLayerSettings>
				<properties><property key="show" type="field" field="visible" active="1"/></properties>
			</DiagramLayerSettings>
		</maplayer>`,
		wantOK: true,
		wantProps: map[properties.Key]properties.Property{
			properties.Show: properties.FromField("visible"),
		},
		wantRenderer: LinearlyInterpolatedTag,
	}, {
		description:  "renderer without layer settings",
		xml:          `<maplayer><SingleCategoryDiagramRenderer/></maplayer>`,
		wantOK:       true,
		wantRenderer: SingleCategoryTag,
		wantShowAll:  true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			ls, ok, err := ReadLayerXML(parseElement(t, test.xml), fields)
			if err != nil {
				t.Fatalf("ReadLayerXML() yielded unexpected error %s", err)
			}
			if ok != test.wantOK {
				t.Fatalf("ReadLayerXML() ok = %t, want %t", ok, test.wantOK)
			}
			if !ok {
				return
			}
			gotProps := map[properties.Key]properties.Property{}
			for _, k := range ls.Properties.Keys() {
				gotProps[k] = ls.Properties.Property(k)
			}
			if test.wantProps == nil {
				test.wantProps = map[properties.Key]properties.Property{}
			}
			if diff := cmp.Diff(test.wantProps, gotProps); diff != "" {
				t.Errorf("Properties diff (-want +got) %s", diff)
			}
			if ls.Renderer() == nil || ls.Renderer().Tag() != test.wantRenderer {
				t.Errorf("Renderer() = %v, want a %s", ls.Renderer(), test.wantRenderer)
			}
			if ls.ShowAll != test.wantShowAll {
				t.Errorf("ShowAll = %t, want %t", ls.ShowAll, test.wantShowAll)
			}
		})
	}
}

func TestLayerSettingsReferencedFields(t *testing.T) {
	ls := NewLayerSettings()
	ls.Properties.
		Set(properties.Show, properties.FromField("visible")).
		Set(properties.StrokeWidth, properties.FromExpression(`"lanes" / 2`))
	if diff := cmp.Diff([]string{"lanes", "visible"}, ls.ReferencedFields()); diff != "" {
		t.Errorf("ReferencedFields() without renderer diff (-want +got) %s", diff)
	}
	ls.SetRenderer(newLinear(&diagram.Pie{}))
	if diff := cmp.Diff([]string{"lanes", "pop", "pop_2010", "pop_2020", "visible"}, ls.ReferencedFields()); diff != "" {
		t.Errorf("ReferencedFields() diff (-want +got) %s", diff)
	}
}

func TestLayerSettingsClone(t *testing.T) {
	ls := NewLayerSettings()
	ls.SetRenderer(newSingle(&diagram.Pie{}))
	c := ls.Clone()
	c.Properties.Set(properties.Show, properties.FromValue(false))
	c.Renderer().Settings().Enabled = false
	if ls.Properties.IsActive(properties.Show) || !ls.Renderer().Settings().Enabled {
		t.Errorf("mutating a clone changed the original")
	}
}
