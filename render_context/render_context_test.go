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
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/units"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConvertToPainterUnits(t *testing.T) {
	ctx := New(25.4, 2, 1000) // 1 px per mm
	for _, test := range []struct {
		description string
		size        float64
		unit        units.RenderUnit
		scale       units.MapUnitScale
		want        float64
	}{{
		description: "millimeters",
		size:        10,
		unit:        units.Millimeters,
		want:        10,
	}, {
		description: "inches",
		size:        1,
		unit:        units.Inches,
		want:        25.4,
	}, {
		description: "points",
		size:        PointsPerMM,
		unit:        units.Points,
		want:        1,
	}, {
		description: "pixels",
		size:        7,
		unit:        units.Pixels,
		want:        7,
	}, {
		description: "map units",
		size:        10,
		unit:        units.MapUnits,
		want:        5,
	}, {
		description: "map units clamped to minimum mm",
		size:        10,
		unit:        units.MapUnits,
		scale:       units.MapUnitScale{MinSizeMMEnabled: true, MinSizeMM: 8},
		want:        8,
	}, {
		description: "map units clamped to maximum mm",
		size:        10,
		unit:        units.MapUnits,
		scale:       units.MapUnitScale{MaxSizeMMEnabled: true, MaxSizeMM: 3},
		want:        3,
	}, {
		description: "map units stop growing past the max scale",
		size:        10,
		unit:        units.MapUnits,
		scale:       units.MapUnitScale{MaxScale: 1.0 / 500},
		want:        10,
	}, {
		description: "percentage",
		size:        50,
		unit:        units.Percentage,
		want:        0,
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := ctx.ConvertToPainterUnits(test.size, test.unit, test.scale); !approxEqual(got, test.want) {
				t.Errorf("ConvertToPainterUnits(%f, %v) = %f, want %f", test.size, test.unit, got, test.want)
			}
		})
	}
}

func TestConvertToMapUnits(t *testing.T) {
	ctx := New(25.4, 2, 1000)
	for _, test := range []struct {
		description string
		size        float64
		unit        units.RenderUnit
		scale       units.MapUnitScale
		want        float64
	}{{
		description: "millimeters",
		size:        10,
		unit:        units.Millimeters,
		want:        20,
	}, {
		description: "pixels",
		size:        3,
		unit:        units.Pixels,
		want:        6,
	}, {
		description: "map units",
		size:        3,
		unit:        units.MapUnits,
		want:        3,
	}, {
		description: "map units clamped to minimum mm",
		size:        3,
		unit:        units.MapUnits,
		scale:       units.MapUnitScale{MinSizeMMEnabled: true, MinSizeMM: 4},
		want:        8,
	}, {
		description: "unknown",
		size:        3,
		unit:        units.Unknown,
		want:        0,
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := ctx.ConvertToMapUnits(test.size, test.unit, test.scale); !approxEqual(got, test.want) {
				t.Errorf("ConvertToMapUnits(%f, %v) = %f, want %f", test.size, test.unit, got, test.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.SetPen(color.Red, 2)
	r.SetBrush(color.White)
	r.DrawPie(units.Rect{Width: 10, Height: 10}, 90*16, 180*16)
	r.SetBrush(color.Transparent)
	r.DrawText(units.Point{X: 1, Y: 2}, "label", 12)
	want := []Op{{
		Kind:       "pie",
		Rect:       units.Rect{Width: 10, Height: 10},
		StartAngle: 1440,
		SpanAngle:  2880,
		Pen:        color.Red,
		PenWidth:   2,
		Brush:      color.White,
	}, {
		Kind:      "text",
		From:      units.Point{X: 1, Y: 2},
		Text:      "label",
		PixelSize: 12,
		Pen:       color.Red,
		PenWidth:  2,
		Brush:     color.Transparent,
	}}
	if diff := cmp.Diff(want, r.Ops); diff != "" {
		t.Errorf("recorded ops diff (-want +got) %s", diff)
	}
}

func TestSVGPainter(t *testing.T) {
	var buf bytes.Buffer
	p := NewSVGPainter(&buf, 20, 20)
	p.SetBrush(color.Red)
	p.DrawEllipse(units.Rect{X: 0, Y: 0, Width: 20, Height: 10})
	p.DrawPie(units.Rect{Width: 20, Height: 20}, 0, 90*16)
	p.DrawText(units.Point{X: 2, Y: 18}, "pop", 8)
	p.Close()
	got := buf.String()
	for _, want := range []string{
		`<svg`,
		`<ellipse cx="10" cy="5" rx="10" ry="5"`,
		`fill:#ff0000`,
		`M10.00,10.00 L20.00,10.00 A10.00,10.00 0 0,0 10.00,0.00 Z`,
		`>pop</text>`,
		`</svg>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("SVG output missing %q:\n%s", want, got)
		}
	}
}
