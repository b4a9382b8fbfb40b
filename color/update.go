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

package color

import "github.com/ilhamster/diagramviz/util"

const (
	primaryColorKey   = "primary_color"
	secondaryColorKey = "secondary_color"
	strokeColorKey    = "stroke_color"
	opacityKey        = "opacity"
)

// Primary annotates a Datum with the specified primary color.
func Primary(c Color) util.PropertyUpdate {
	return util.StringProperty(primaryColorKey, c.Name())
}

// Secondary annotates a Datum with the specified secondary color.
func Secondary(c Color) util.PropertyUpdate {
	return util.StringProperty(secondaryColorKey, c.Name())
}

// Stroke annotates a Datum with the specified stroke color.
func Stroke(c Color) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, c.Name())
}

// Opacity annotates a Datum with the opacity of c, if it is not opaque.
func Opacity(c Color) util.PropertyUpdate {
	return util.If(c.A != 255, util.DoubleProperty(opacityKey, c.Opacity()))
}
