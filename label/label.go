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

// Package label supports labeling legend entries.
package label

import "github.com/ilhamster/diagramviz/util"

const (
	textKey      = "label"
	fullWidthKey = "label_full_width"
)

// Text returns a PropertyUpdate labeling with the provided text.
func Text(text string) util.PropertyUpdate {
	return util.StringProperty(textKey, text)
}

// FullWidth marks an entry whose label, or symbol, spans the whole legend
// row instead of sitting beside an icon.
func FullWidth() util.PropertyUpdate {
	return util.IntegerProperty(fullWidthKey, 1)
}
