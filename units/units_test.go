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

package units

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderUnitEncoding(t *testing.T) {
	for _, test := range []struct {
		description string
		in          string
		want        RenderUnit
		wantOK      bool
	}{{
		description: "millimeters",
		in:          "MM",
		want:        Millimeters,
		wantOK:      true,
	}, {
		description: "case-insensitive",
		in:          "pixel",
		want:        Pixels,
		wantOK:      true,
	}, {
		description: "legacy map units",
		in:          "MapUnits",
		want:        MapUnits,
		wantOK:      true,
	}, {
		description: "current map units",
		in:          "MapUnit",
		want:        MapUnits,
		wantOK:      true,
	}, {
		description: "unknown",
		in:          "furlong",
		want:        Unknown,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, ok := DecodeRenderUnit(test.in)
			if got != test.want || ok != test.wantOK {
				t.Errorf("DecodeRenderUnit(%q) = %v, %t, want %v, %t", test.in, got, ok, test.want, test.wantOK)
			}
			if ok {
				if rt, _ := DecodeRenderUnit(got.String()); rt != got {
					t.Errorf("DecodeRenderUnit(%q.String()) = %v, want %v", got.String(), rt, got)
				}
			}
		})
	}
}

func TestMapUnitScale(t *testing.T) {
	for _, test := range []struct {
		description string
		in          string
		want        MapUnitScale
		wantEncoded string
	}{{
		description: "current format",
		in:          "3x:0.001,0.5,1,2.5,0,0",
		want: MapUnitScale{
			MinScale:         0.001,
			MaxScale:         0.5,
			MinSizeMMEnabled: true,
			MinSizeMM:        2.5,
		},
		wantEncoded: "3x:0.001,0.5,1,2.5,0,0",
	}, {
		description: "legacy denominators",
		in:          "1000,2",
		want: MapUnitScale{
			MinScale: 0.001,
			MaxScale: 0.5,
		},
		wantEncoded: "3x:0.001,0.5,0,0,0,0",
	}, {
		description: "empty",
		in:          "",
		wantEncoded: "3x:0,0,0,0,0,0",
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := DecodeMapUnitScale(test.in)
			if err != nil {
				t.Fatalf("DecodeMapUnitScale() yielded unexpected error %s", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("DecodeMapUnitScale(%q) = %v, diff (-want +got) %s", test.in, got, diff)
			}
			if enc := got.Encode(); enc != test.wantEncoded {
				t.Errorf("Encode() = %q, want %q", enc, test.wantEncoded)
			}
		})
	}
	if _, err := DecodeMapUnitScale("3x:a,b"); err == nil {
		t.Errorf("DecodeMapUnitScale() of garbage should fail")
	}
}

func TestSize(t *testing.T) {
	if (Size{0, 3}).IsValid() {
		t.Errorf("zero-width size should be invalid")
	}
	if !(Size{1, 3}).IsValid() {
		t.Errorf("positive size should be valid")
	}
	if got, want := (Size{2, 3}).Scaled(2), (Size{4, 6}); got != want {
		t.Errorf("Scaled() = %v, want %v", got, want)
	}
	if got := (Size{2, 3}).Max(); got != 3 {
		t.Errorf("Max() = %f, want 3", got)
	}
	if got := (Rect{0, 0, 4, 2}).Center(); got != (Point{2, 1}) {
		t.Errorf("Center() = %v, want (2, 1)", got)
	}
}
