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

// Package payload facilitates attaching payloads of arbitrary data to legend
// entries.
//
// A legend entry is a flat set of properties, but some entries carry further
// structured data.  A concentric size legend, for example, is one entry
// drawn as several labeled rings; the rings travel as an embedded payload
// under the entry so that clients unaware of the payload type can still show
// the entry itself.  Any type into which payloads may be embedded should
// implement the Payloader interface.
package payload

import "github.com/ilhamster/diagramviz/util"

const (
	// TypeKey, if present in a Datum's properties, marks that datum as an
	// embedded payload; its value names the payload type.
	TypeKey = "payload_type"
)

// Payloader is implemented by types able to accept payloads.
type Payloader interface {
	// Payload implementations should add a child to the receiver and return
	// that child.
	Payload() util.DataBuilder
}

// New creates and returns a payload of the specified type under the provided
// parent.
func New(parent Payloader, payloadType string) util.DataBuilder {
	return parent.Payload().With(
		util.StringProperty(TypeKey, payloadType),
	)
}
