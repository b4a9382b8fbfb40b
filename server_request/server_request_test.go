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

package serverrequest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func env(vars map[string]string) func(string) string {
	return func(name string) string {
		return vars[name]
	}
}

func TestMethods(t *testing.T) {
	for _, test := range []struct {
		name   string
		want   Method
		wantOK bool
	}{
		{"GET", GetMethod, true},
		{"post", PostMethod, true},
		{"Patch", PatchMethod, true},
		{"TRACE", GetMethod, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, ok := ParseMethod(test.name)
			if got != test.want || ok != test.wantOK {
				t.Errorf("ParseMethod(%q) = %v, %t, want %v, %t", test.name, got, ok, test.want, test.wantOK)
			}
		})
	}
	if got := DeleteMethod.String(); got != "DELETE" {
		t.Errorf("DeleteMethod.String() = %q, want DELETE", got)
	}
}

func TestParameters(t *testing.T) {
	r, err := New("http://maps.example.com/ows?service=WMS&Layers=towns&format=", GetMethod, nil)
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff(map[string]string{"SERVICE": "WMS", "LAYERS": "towns", "FORMAT": ""}, r.Parameters()); diff != "" {
		t.Errorf("Parameters() diff (-want +got) %s", diff)
	}
	for _, test := range []struct {
		key, def, want string
	}{
		{"layers", "", "towns"},
		{"LAYERS", "", "towns"},
		{"format", "image/svg+xml", "image/svg+xml"},
		{"width", "64", "64"},
	} {
		if got := r.Parameter(test.key, test.def); got != test.want {
			t.Errorf("Parameter(%q, %q) = %q, want %q", test.key, test.def, got, test.want)
		}
	}

	r.SetParameter("request", "GetLegendGraphic")
	r.RemoveParameter("format")
	r.RemoveParameter("service")
	if got, want := r.URL().RawQuery, "LAYERS=towns&REQUEST=GetLegendGraphic"; got != want {
		t.Errorf("URL().RawQuery = %q, want %q", got, want)
	}
	if got, want := r.OriginalURL().RawQuery, "service=WMS&Layers=towns&format="; got != want {
		t.Errorf("OriginalURL().RawQuery = %q, want %q", got, want)
	}
	if got := r.QueryParameter("REQUEST", "none"); got != "GetLegendGraphic" {
		t.Errorf("QueryParameter(REQUEST) = %q, want GetLegendGraphic", got)
	}
	if got := r.QueryParameter("request", "none"); got != "none" {
		t.Errorf("QueryParameter(request) = %q, want none", got)
	}
}

func TestWellKnownHeaders(t *testing.T) {
	r, err := New("http://localhost/ows", GetMethod, map[string]string{"x-forwarded-proto": "https"})
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	r.Getenv = env(map[string]string{
		"HTTP_X_FORWARDED_PROTO": "http",
		"HTTP_X_SERVICE_URL":     "https://maps.example.com/ows",
		"SCRIPT_NAME":            "/cgi-bin/diagramviz",
	})
	for _, test := range []struct {
		header Header
		want   string
	}{
		{XForwardedProto, "https"},
		{XServiceURL, "https://maps.example.com/ows"},
		{Forwarded, ""},
	} {
		t.Run(string(test.header), func(t *testing.T) {
			if got := r.WellKnownHeader(test.header); got != test.want {
				t.Errorf("WellKnownHeader(%s) = %q, want %q", test.header, got, test.want)
			}
		})
	}
	if got := r.ScriptName(); got != "/cgi-bin/diagramviz" {
		t.Errorf("ScriptName() = %q", got)
	}
	r.RemoveHeader("X-Forwarded-Proto")
	r.SetHeader("Host", "maps.example.com")
	if diff := cmp.Diff(map[string]string{"Host": "maps.example.com"}, r.Headers()); diff != "" {
		t.Errorf("Headers() diff (-want +got) %s", diff)
	}
}

func TestFromHTTP(t *testing.T) {
	hr := httptest.NewRequest("POST", "/ows?layers=towns", strings.NewReader("<GetMap/>"))
	hr.Header.Set("Forwarded", "for=192.0.2.60")
	r, err := FromHTTP(hr)
	if err != nil {
		t.Fatalf("FromHTTP() yielded unexpected error %s", err)
	}
	if r.Method() != PostMethod {
		t.Errorf("Method() = %v, want POST", r.Method())
	}
	if got, want := r.URL().String(), "http://example.com/ows?layers=towns"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
	if got := string(r.Data()); got != "<GetMap/>" {
		t.Errorf("Data() = %q", got)
	}
	if got := r.WellKnownHeader(Forwarded); got != "for=192.0.2.60" {
		t.Errorf("WellKnownHeader(Forwarded) = %q", got)
	}
	if _, err := FromHTTP(httptest.NewRequest("TRACE", "/ows", nil)); err == nil {
		t.Errorf("FromHTTP() of a TRACE request succeeded")
	}
}
