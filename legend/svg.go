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

package legend

import (
	"bufio"
	"io"
	"math"
	"unicode/utf8"

	"github.com/ilhamster/diagramviz/color"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/symbol"
	"github.com/ilhamster/diagramviz/units"
)

const (
	padding    = 4
	rowGap     = 4
	labelGap   = 6
	fontPx     = 10
	charWidth  = 6
	ringGutter = 6
)

func textWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s) * charWidth)
}

type row struct {
	node          Node
	icon          units.Size
	height, width float64
}

func iconSize(n Node, rc *rendercontext.Context) units.Size {
	switch n := n.(type) {
	case *SimpleNode:
		if n.icon != nil {
			return units.Size{Width: SwatchSize, Height: SwatchSize}
		}
	case *SymbolNode:
		s := n.symbol
		side := rc.ConvertToPainterUnits(s.Size(), s.SizeUnit(), s.SizeMapUnitScale())
		ret := units.Size{Width: side, Height: side}
		if c, ok := s.(*symbol.Concentric); ok {
			widest := 0.0
			for _, ring := range c.Rings() {
				widest = math.Max(widest, textWidth(ring.Label))
			}
			ret.Width += ringGutter + widest
		}
		return ret
	}
	return units.Size{}
}

// WriteSVG draws nodes, one per row, as an SVG legend graphic.  Symbol
// sizes are converted to pixels with rc.
func WriteSVG(w io.Writer, title string, nodes []Node, rc *rendercontext.Context) error {
	rows := make([]row, len(nodes))
	iconColumn := 0.0
	for i, n := range nodes {
		r := row{node: n, icon: iconSize(n, rc)}
		r.height = math.Max(r.icon.Height, fontPx)
		if !n.FullWidth() {
			iconColumn = math.Max(iconColumn, r.icon.Width)
		}
		rows[i] = r
	}
	width, height := 0.0, 0.0
	for i := range rows {
		r := &rows[i]
		switch {
		case r.node.FullWidth():
			r.width = fullWidthLabelX(r) + textWidth(r.node.Label())
		default:
			r.width = iconColumn + labelGap + textWidth(r.node.Label())
		}
		width = math.Max(width, r.width)
		height += r.height
	}
	if len(rows) > 1 {
		height += float64(len(rows)-1) * rowGap
	}

	bw := bufio.NewWriter(w)
	p := rendercontext.NewSVGPainter(bw, int(math.Ceil(width))+2*padding, int(math.Ceil(height))+2*padding)
	p.Title(title)
	y := float64(padding)
	for _, r := range rows {
		drawRow(p, r, iconColumn, y, rc)
		y += r.height + rowGap
	}
	p.Close()
	return bw.Flush()
}

// fullWidthLabelX returns the label offset of a full-width row.
func fullWidthLabelX(r *row) float64 {
	if r.icon.Width == 0 {
		return 0
	}
	return r.icon.Width + labelGap
}

func drawLabel(p rendercontext.Painter, x, y float64, text string) {
	if text == "" {
		return
	}
	p.SetPen(color.Black, 1)
	p.SetBrush(color.Transparent)
	p.DrawText(units.Point{X: x, Y: y}, text, fontPx)
}

func drawRow(p rendercontext.Painter, r row, iconColumn, top float64, rc *rendercontext.Context) {
	x := float64(padding)
	baseline := top + r.height/2 + fontPx/3
	labelX := x + iconColumn + labelGap
	if r.node.FullWidth() {
		labelX = x + fullWidthLabelX(&r)
	}
	switch n := r.node.(type) {
	case *SimpleNode:
		if c, ok := n.Swatch(); ok {
			p.SetPen(c, 0)
			p.SetBrush(c)
			p.DrawRect(units.Rect{X: x, Y: top + (r.height-SwatchSize)/2, Width: SwatchSize, Height: SwatchSize})
		}
	case *SymbolNode:
		side := r.icon.Height
		n.symbol.Render(p, units.Point{X: x + side/2, Y: top + r.height/2}, rc)
	}
	drawLabel(p, labelX, baseline, r.node.Label())
}
