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

package symbol

import (
	"bufio"
	"io"
	"math"

	rendercontext "github.com/ilhamster/diagramviz/render_context"
)

// previewDPI is the resolution symbol previews are drawn at.
const previewDPI = 96

// preview draws an SVG icon through draw, which receives the largest
// extent, in pixels, that fits the icon.
func preview(w io.Writer, width, height int, title string, draw func(p rendercontext.Painter, rc *rendercontext.Context, box float64)) error {
	bw := bufio.NewWriter(w)
	p := rendercontext.NewSVGPainter(bw, width, height)
	p.Title(title)
	rc := rendercontext.New(previewDPI, 1, 0)
	draw(p, rc, math.Min(float64(width), float64(height))-2)
	p.Close()
	return bw.Flush()
}
