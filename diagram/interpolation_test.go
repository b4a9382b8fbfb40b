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

package diagram

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// mmContext returns a render context with one pixel per millimeter and one
// map unit per pixel.
func mmContext() *rendercontext.Context {
	return rendercontext.New(rendercontext.MMPerInch, 1, 0)
}

func popInterpolation() *InterpolationSettings {
	return &InterpolationSettings{
		LowerValue:          0,
		UpperValue:          100,
		UpperSize:           units.Size{Width: 10, Height: 10},
		ClassificationField: "pop",
	}
}

func TestSizeForValue(t *testing.T) {
	for _, test := range []struct {
		description string
		is          *InterpolationSettings
		value       float64
		byArea      bool
		minimumSize float64
		want        units.Size
		wantErr     error
	}{{
		description: "by area",
		is:          popInterpolation(),
		value:       25,
		byArea:      true,
		want:        units.Size{Width: 5, Height: 5},
	}, {
		description: "by diameter",
		is:          popInterpolation(),
		value:       25,
		want:        units.Size{Width: 2.5, Height: 2.5},
	}, {
		description: "lower bound",
		is:          popInterpolation(),
		value:       0,
		byArea:      true,
		want:        units.Size{},
	}, {
		description: "below range clamps",
		is:          popInterpolation(),
		value:       -50,
		byArea:      true,
		want:        units.Size{},
	}, {
		description: "above range clamps",
		is:          popInterpolation(),
		value:       400,
		byArea:      true,
		want:        units.Size{Width: 10, Height: 10},
	}, {
		description: "minimum size",
		is:          popInterpolation(),
		value:       1,
		byArea:      true,
		minimumSize: 4,
		want:        units.Size{Width: 4, Height: 4},
	}, {
		description: "minimum size smaller than the result",
		is:          popInterpolation(),
		value:       100,
		byArea:      true,
		minimumSize: 4,
		want:        units.Size{Width: 10, Height: 10},
	}, {
		description: "reversed range",
		is: &InterpolationSettings{
			LowerValue: 100,
			UpperValue: 0,
			UpperSize:  units.Size{Width: 10, Height: 20},
		},
		value: 25,
		want:  units.Size{Width: 7.5, Height: 15},
	}, {
		description: "degenerate range",
		is: &InterpolationSettings{
			LowerValue: 10,
			UpperValue: 10,
			UpperSize:  units.Size{Width: 10, Height: 10},
		},
		value:   10,
		byArea:  true,
		wantErr: ErrInvalidInterpolationRange,
	}} {
		t.Run(test.description, func(t *testing.T) {
			s := NewSettings()
			s.ScaleByArea = test.byArea
			s.MinimumSize = test.minimumSize
			got, err := test.is.SizeForValue(test.value, s)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("SizeForValue() yielded error %v, want %v", err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("SizeForValue() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestApplyMinimumSize(t *testing.T) {
	for _, test := range []struct {
		description string
		size        units.Size
		want        units.Size
	}{
		{"empty", units.Size{}, units.Size{Width: 4, Height: 4}},
		{"zero height", units.Size{Width: 2}, units.Size{Width: 4, Height: 4}},
		{"zero width", units.Size{Height: 3}, units.Size{Width: 4, Height: 4}},
		{"wide", units.Size{Width: 2, Height: 1}, units.Size{Width: 4, Height: 2}},
		{"tall", units.Size{Width: 1, Height: 2}, units.Size{Width: 2, Height: 4}},
		{"square", units.Size{Width: 3, Height: 3}, units.Size{Width: 4, Height: 4}},
		{"one dimension larger", units.Size{Width: 5, Height: 1}, units.Size{Width: 5, Height: 1}},
	} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, applyMinimumSize(test.size, 4)); diff != "" {
				t.Errorf("applyMinimumSize() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestClassificationValue(t *testing.T) {
	f := feature.New(1, map[string]any{"pop": 25.0, "name": "Springfield"})
	for _, test := range []struct {
		description string
		is          *InterpolationSettings
		want        float64
		wantOK      bool
		wantFields  []string
	}{{
		description: "field",
		is:          &InterpolationSettings{ClassificationField: "pop"},
		want:        25,
		wantOK:      true,
		wantFields:  []string{"pop"},
	}, {
		description: "missing field",
		is:          &InterpolationSettings{ClassificationField: "area"},
		wantFields:  []string{"area"},
	}, {
		description: "non-numeric field",
		is:          &InterpolationSettings{ClassificationField: "name"},
		wantFields:  []string{"name"},
	}, {
		description: "no field",
		is:          &InterpolationSettings{},
	}, {
		description: "expression",
		is: &InterpolationSettings{
			ClassificationAttributeIsExpression: true,
			ClassificationAttributeExpression:   `"pop" * 4`,
		},
		want:       100,
		wantOK:     true,
		wantFields: []string{"pop"},
	}, {
		description: "expression is preferred over field",
		is: &InterpolationSettings{
			ClassificationAttributeIsExpression: true,
			ClassificationField:                 "area",
			ClassificationAttributeExpression:   `max("pop", 40)`,
		},
		want:       40,
		wantOK:     true,
		wantFields: []string{"pop"},
	}, {
		description: "unparseable expression",
		is: &InterpolationSettings{
			ClassificationAttributeIsExpression: true,
			ClassificationAttributeExpression:   `("pop"`,
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, ok := test.is.Value(f, mmContext())
			if ok != test.wantOK || got != test.want {
				t.Errorf("Value() = %v, %t, want %v, %t", got, ok, test.want, test.wantOK)
			}
			if diff := cmp.Diff(test.wantFields, test.is.ReferencedFields(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ReferencedFields() diff (-want +got) %s", diff)
			}
		})
	}
}
