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

// Package magnitude supports attaching symbol sizes to legend entries.
package magnitude

import (
	"github.com/ilhamster/diagramviz/units"
	"github.com/ilhamster/diagramviz/util"
)

const (
	sizeKey     = "symbol_size"
	sizeUnitKey = "symbol_size_unit"
)

// Size annotates a symbol size in unit.
func Size(size float64, unit units.RenderUnit) util.PropertyUpdate {
	return util.Chain(
		util.DoubleProperty(sizeKey, size),
		util.StringProperty(sizeUnitKey, unit.String()),
	)
}
