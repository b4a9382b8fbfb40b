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

// Package project holds a set of vector layers and persists them as a
// project document.
package project

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"

	vectorlayer "github.com/ilhamster/diagramviz/vector_layer"
)

// ErrNoLayer is returned when a requested layer is not in the project.
var ErrNoLayer = errors.New("no such layer")

const (
	rootTag   = "qgis"
	titleTag  = "title"
	layersTag = "projectlayers"
	version   = "2.99.0"
)

// Project is an ordered set of layers.
type Project struct {
	Title  string
	layers []*vectorlayer.Layer
	dirty  bool
}

// New returns an empty project.
func New(title string) *Project {
	return &Project{Title: title}
}

// AddLayer appends l.  Layer IDs must be unique.
func (p *Project) AddLayer(l *vectorlayer.Layer) error {
	if _, err := p.Layer(l.ID); err == nil {
		return fmt.Errorf("duplicate layer ID '%s'", l.ID)
	}
	p.layers = append(p.layers, l)
	p.dirty = true
	return nil
}

// Layer returns the layer with the provided ID or, failing that, name.
func (p *Project) Layer(idOrName string) (*vectorlayer.Layer, error) {
	for _, l := range p.layers {
		if l.ID == idOrName {
			return l, nil
		}
	}
	for _, l := range p.layers {
		if l.Name == idOrName {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrNoLayer, idOrName)
}

// Layers returns the project's layers, in order.
func (p *Project) Layers() []*vectorlayer.Layer {
	return p.layers
}

// SetDirty marks the project as modified, or not.
func (p *Project) SetDirty(dirty bool) {
	p.dirty = dirty
}

// IsDirty returns true if the project was modified since it was read or
// written.
func (p *Project) IsDirty() bool {
	return p.dirty
}

// Write writes p as a project document to w, and marks it clean.
func (p *Project) Write(w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(rootTag)
	root.CreateAttr("version", version)
	root.CreateAttr("projectname", p.Title)
	root.CreateElement(titleTag).SetText(p.Title)
	layers := root.CreateElement(layersTag)
	layers.CreateAttr("layercount", fmt.Sprint(len(p.layers)))
	for _, l := range p.layers {
		l.WriteXML(layers)
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	p.dirty = false
	return nil
}

// Read reads a project document from r.
func Read(r io.Reader) (*Project, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return nil, fmt.Errorf("not a project document")
	}
	p := New(root.SelectAttrValue("projectname", ""))
	if title := root.SelectElement(titleTag); title != nil {
		p.Title = title.Text()
	}
	if layers := root.SelectElement(layersTag); layers != nil {
		for _, el := range layers.SelectElements(vectorlayer.LayerTag) {
			l, err := vectorlayer.ReadXML(el)
			if err != nil {
				return nil, err
			}
			if err := p.AddLayer(l); err != nil {
				return nil, err
			}
		}
	}
	p.dirty = false
	return p, nil
}
