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

// Package legend defines the legend entries produced by diagram renderers,
// and their encodings: the structured response consumed by legend clients,
// and a standalone SVG legend graphic.
package legend

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/ilhamster/diagramviz/category"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/label"
	"github.com/ilhamster/diagramviz/magnitude"
	"github.com/ilhamster/diagramviz/payload"
	"github.com/ilhamster/diagramviz/style"
	"github.com/ilhamster/diagramviz/symbol"
	"github.com/ilhamster/diagramviz/util"
)

// SwatchSize is the edge length, in pixels, of category color swatches.
const SwatchSize = 16

const (
	nodeKindKey = "legend_node"
	iconKey     = "legend_icon"

	simpleKind = "simple"
	symbolKind = "symbol"

	// RingsPayloadType tags the payload listing the rings of a concentric
	// size legend.
	RingsPayloadType = "concentric_rings"
)

// Node is one entry of a layer's legend.
type Node interface {
	// Key identifies the entry within its layer.  It may be empty.
	Key() string
	Label() string
	// FullWidth reports whether the entry spans the whole legend row.
	FullWidth() bool
	// Write writes the entry into db.
	Write(db util.DataBuilder)
}

// SimpleNode is a legend entry showing a label and an optional icon.
type SimpleNode struct {
	key, label string
	icon       image.Image
	swatch     *color.Color
	fullWidth  bool
}

// NewSimpleNode returns a label-only entry.
func NewSimpleNode(label string) *SimpleNode {
	return &SimpleNode{label: label}
}

// NewSwatchNode returns an entry labeled label and showing a solid swatch of
// c, keyed key.
func NewSwatchNode(key, label string, c color.Color) *SimpleNode {
	icon := image.NewNRGBA(image.Rect(0, 0, SwatchSize, SwatchSize))
	draw.Draw(icon, icon.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
	return &SimpleNode{
		key:    key,
		label:  label,
		icon:   icon,
		swatch: &c,
	}
}

func (n *SimpleNode) Key() string {
	return n.key
}

func (n *SimpleNode) Label() string {
	return n.label
}

func (n *SimpleNode) FullWidth() bool {
	return n.fullWidth
}

// SetFullWidth sets whether the entry spans the whole legend row.
func (n *SimpleNode) SetFullWidth(fullWidth bool) *SimpleNode {
	n.fullWidth = fullWidth
	return n
}

// Icon returns the entry's icon, or nil if it has none.
func (n *SimpleNode) Icon() image.Image {
	return n.icon
}

// Swatch returns the swatch color, if the entry has one.
func (n *SimpleNode) Swatch() (color.Color, bool) {
	if n.swatch == nil {
		return color.Color{}, false
	}
	return *n.swatch, true
}

// IconDataURI returns the icon as a base64 PNG data URI.
func IconDataURI(icon image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, icon); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (n *SimpleNode) Write(db util.DataBuilder) {
	updates := []util.PropertyUpdate{
		util.StringProperty(nodeKindKey, simpleKind),
		label.Text(n.label),
		util.If(n.fullWidth, label.FullWidth()),
	}
	if n.swatch != nil {
		updates = append(updates,
			category.New(n.key, n.label, "").Define(),
			color.Primary(*n.swatch),
			color.Opacity(*n.swatch),
		)
	}
	if n.icon != nil {
		uri, err := IconDataURI(n.icon)
		updates = append(updates, util.IfElse(err == nil,
			util.StringProperty(iconKey, uri),
			util.ErrorProperty(err)))
	}
	db.With(updates...)
}

// SymbolNode is a legend entry showing a symbol and a label.
type SymbolNode struct {
	key, label string
	symbol     symbol.Symbol
	fullWidth  bool
}

// NewSymbolNode returns an entry showing a copy of s.
func NewSymbolNode(key, label string, s symbol.Symbol) *SymbolNode {
	return &SymbolNode{
		key:    key,
		label:  label,
		symbol: s.Clone(),
	}
}

func (n *SymbolNode) Key() string {
	return n.key
}

func (n *SymbolNode) Label() string {
	return n.label
}

func (n *SymbolNode) FullWidth() bool {
	return n.fullWidth
}

// SetFullWidth sets whether the entry spans the whole legend row.
func (n *SymbolNode) SetFullWidth(fullWidth bool) *SymbolNode {
	n.fullWidth = fullWidth
	return n
}

// Symbol returns the entry's symbol.
func (n *SymbolNode) Symbol() symbol.Symbol {
	return n.symbol
}

func markerStyle(m *symbol.Marker) *style.Style {
	return style.New().
		Fill(m.Fill.WithAlpha(uint8(float64(m.Fill.A)*m.Opacity+0.5))).
		Stroke(m.Stroke, m.StrokeWidth).
		With("shape", m.Shape.String())
}

type payloader struct {
	db util.DataBuilder
}

func (p payloader) Payload() util.DataBuilder {
	return p.db.Child()
}

func (n *SymbolNode) Write(db util.DataBuilder) {
	db.With(
		util.StringProperty(nodeKindKey, symbolKind),
		label.Text(n.label),
		util.If(n.fullWidth, label.FullWidth()),
		util.If(n.key != "", util.StringProperty("legend_key", n.key)),
		magnitude.Size(n.symbol.Size(), n.symbol.SizeUnit()),
	)
	switch s := n.symbol.(type) {
	case *symbol.Marker:
		db.With(markerStyle(s).Define())
	case *symbol.Concentric:
		db.With(markerStyle(s.Base()).Define())
		rings := payload.New(payloader{db}, RingsPayloadType)
		for _, ring := range s.Rings() {
			rings.Child().With(
				label.Text(ring.Label),
				magnitude.Size(ring.Size, s.SizeUnit()),
			)
		}
	}
}
