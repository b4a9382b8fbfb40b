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

package rendercontext

import (
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/units"
)

// Painter draws primitives in painter units.  Angles are in sixteenths of a
// degree, counterclockwise from three o'clock.
type Painter interface {
	SetPen(c color.Color, width float64)
	SetBrush(c color.Color)
	DrawEllipse(r units.Rect)
	DrawPie(r units.Rect, startAngle, spanAngle int)
	DrawRect(r units.Rect)
	DrawLine(from, to units.Point)
	DrawPolygon(points []units.Point)
	DrawText(at units.Point, text string, pixelSize float64)
}

// Op is a single recorded drawing operation.
type Op struct {
	Kind       string
	Rect       units.Rect
	StartAngle int
	SpanAngle  int
	From, To   units.Point
	Points     []units.Point
	Text       string
	PixelSize  float64
	Pen, Brush color.Color
	PenWidth   float64
}

// Recorder is a Painter that records the operations it is asked to perform.
type Recorder struct {
	Ops      []Op
	pen      color.Color
	penWidth float64
	brush    color.Color
}

// NewRecorder returns an empty Recorder with a black pen and transparent
// brush.
func NewRecorder() *Recorder {
	return &Recorder{pen: color.Black, penWidth: 1, brush: color.Transparent}
}

func (r *Recorder) record(op Op) {
	op.Pen, op.PenWidth, op.Brush = r.pen, r.penWidth, r.brush
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) SetPen(c color.Color, width float64) {
	r.pen, r.penWidth = c, width
}

func (r *Recorder) SetBrush(c color.Color) {
	r.brush = c
}

func (r *Recorder) DrawEllipse(rect units.Rect) {
	r.record(Op{Kind: "ellipse", Rect: rect})
}

func (r *Recorder) DrawPie(rect units.Rect, startAngle, spanAngle int) {
	r.record(Op{Kind: "pie", Rect: rect, StartAngle: startAngle, SpanAngle: spanAngle})
}

func (r *Recorder) DrawRect(rect units.Rect) {
	r.record(Op{Kind: "rect", Rect: rect})
}

func (r *Recorder) DrawLine(from, to units.Point) {
	r.record(Op{Kind: "line", From: from, To: to})
}

func (r *Recorder) DrawPolygon(points []units.Point) {
	r.record(Op{Kind: "polygon", Points: append([]units.Point(nil), points...)})
}

func (r *Recorder) DrawText(at units.Point, text string, pixelSize float64) {
	r.record(Op{Kind: "text", From: at, Text: text, PixelSize: pixelSize})
}

// Kinds returns the kinds of the recorded operations, in order.
func (r *Recorder) Kinds() []string {
	ret := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		ret[i] = op.Kind
	}
	return ret
}
