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

// Package color supports parsing, formatting and annotating with colors.
//
// A Color is an 8-bit RGBA value.  Colors are parsed from, and formatted to,
// the encodings found in persisted projects:
//
//   - hex names, "#rrggbb" or "#rgb", as written for diagram background,
//     pen and category colors;
//   - SVG color names such as "red" or "cornflowerblue";
//   - comma-separated "r,g,b" or "r,g,b,a" components, as written for
//     static data-defined property values.
//
// Within a legend response, a Datum may be annotated with a primary color
// (the dominant fill, e.g. a category swatch) and a stroke color (outlines
// and text):
//
//	node.With(
//	  color.Primary(cat.Color),
//	  color.Stroke(settings.PenColor),
//	)
package color

import (
	"fmt"
	imagecolor "image/color"
	"math/rand"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGBA returns the color with the given components.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// FromImageColor converts any image/color.Color.
func FromImageColor(c imagecolor.Color) Color {
	n := imagecolor.NRGBAModel.Convert(c).(imagecolor.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

// Parse parses a hex name, an SVG color name, or "r,g,b[,a]" components.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Color{}, fmt.Errorf("empty color")
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.Contains(s, ","):
		return parseComponents(s)
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromImageColor(named), nil
	}
	return Color{}, fmt.Errorf("unrecognized color '%s'", s)
}

func parseHex(s string) (Color, error) {
	var alpha uint8 = 255
	// #aarrggbb carries a leading alpha byte.
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color '%s': %w", s, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{r, g, b, alpha}, nil
}

func parseComponents(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid color '%s': want 3 or 4 components", s)
	}
	comps := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color '%s': %w", s, err)
		}
		comps[i] = uint8(v)
	}
	return Color{comps[0], comps[1], comps[2], comps[3]}, nil
}

// MustParse is Parse, panicking on error.  For use with constant inputs.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) colorful() colorful.Color {
	cf, _ := colorful.MakeColor(imagecolor.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return cf
}

// Name returns the "#rrggbb" name of c.  Alpha is not included.
func (c Color) Name() string {
	return c.colorful().Hex()
}

// Encode returns the "r,g,b,a" encoding of c.
func (c Color) Encode() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// NRGBA returns c as an image/color.NRGBA.
func (c Color) NRGBA() imagecolor.NRGBA {
	return imagecolor.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opacity returns the alpha channel as a fraction in [0, 1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255
}

// Random returns a saturated, opaque color drawn from r.
func Random(r *rand.Rand) Color {
	cf := colorful.Hsv(r.Float64()*360, 0.5+r.Float64()*0.5, 0.6+r.Float64()*0.4)
	red, g, b := cf.Clamped().RGB255()
	return Color{red, g, b, 255}
}
