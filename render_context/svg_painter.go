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
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/units"
)

// SVGPainter is a Painter writing an SVG document.  Coordinates are rounded
// to whole pixels, except for pie slices.
type SVGPainter struct {
	canvas   *svg.SVG
	pen      color.Color
	penWidth float64
	brush    color.Color
}

// NewSVGPainter starts an SVG document of the provided pixel size on w.  The
// caller must call Close to complete the document.
func NewSVGPainter(w io.Writer, width, height int) *SVGPainter {
	canvas := svg.New(w)
	canvas.Start(width, height)
	return &SVGPainter{
		canvas:   canvas,
		pen:      color.Black,
		penWidth: 1,
		brush:    color.Transparent,
	}
}

// Close completes the SVG document.
func (p *SVGPainter) Close() {
	p.canvas.End()
}

// Title sets the document title.
func (p *SVGPainter) Title(title string) {
	p.canvas.Title(title)
}

func (p *SVGPainter) SetPen(c color.Color, width float64) {
	p.pen, p.penWidth = c, width
}

func (p *SVGPainter) SetBrush(c color.Color) {
	p.brush = c
}

func (p *SVGPainter) style() string {
	fill := "none"
	if p.brush.A != 0 {
		fill = p.brush.Name()
	}
	stroke := "none"
	if p.pen.A != 0 && p.penWidth > 0 {
		stroke = p.pen.Name()
	}
	return fmt.Sprintf("fill:%s;fill-opacity:%.3g;stroke:%s;stroke-opacity:%.3g;stroke-width:%.3g",
		fill, p.brush.Opacity(), stroke, p.pen.Opacity(), p.penWidth)
}

func round(f float64) int {
	return int(math.Round(f))
}

func (p *SVGPainter) DrawEllipse(r units.Rect) {
	c := r.Center()
	p.canvas.Ellipse(round(c.X), round(c.Y), round(r.Width/2), round(r.Height/2), p.style())
}

// DrawPie draws a slice as a path.  SVG's y axis points down, so positive
// angles sweep counterclockwise on screen.
func (p *SVGPainter) DrawPie(r units.Rect, startAngle, spanAngle int) {
	c := r.Center()
	rx, ry := r.Width/2, r.Height/2
	at := func(angle16 int) (float64, float64) {
		rad := float64(angle16) / 16 * math.Pi / 180
		return c.X + rx*math.Cos(rad), c.Y - ry*math.Sin(rad)
	}
	x1, y1 := at(startAngle)
	x2, y2 := at(startAngle + spanAngle)
	large, sweep := 0, 0
	if abs(spanAngle) > 180*16 {
		large = 1
	}
	if spanAngle < 0 {
		sweep = 1
	}
	p.canvas.Path(fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d,%d %.2f,%.2f Z",
		c.X, c.Y, x1, y1, rx, ry, large, sweep, x2, y2), p.style())
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (p *SVGPainter) DrawRect(r units.Rect) {
	p.canvas.Rect(round(r.X), round(r.Y), round(r.Width), round(r.Height), p.style())
}

func (p *SVGPainter) DrawLine(from, to units.Point) {
	p.canvas.Line(round(from.X), round(from.Y), round(to.X), round(to.Y), p.style())
}

func (p *SVGPainter) DrawPolygon(points []units.Point) {
	xs, ys := make([]int, len(points)), make([]int, len(points))
	for i, pt := range points {
		xs[i], ys[i] = round(pt.X), round(pt.Y)
	}
	p.canvas.Polygon(xs, ys, p.style())
}

func (p *SVGPainter) DrawText(at units.Point, text string, pixelSize float64) {
	p.canvas.Text(round(at.X), round(at.Y), text,
		fmt.Sprintf("font-size:%.3gpx;fill:%s", pixelSize, p.pen.Name()))
}
