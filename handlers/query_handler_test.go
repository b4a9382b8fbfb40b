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

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/color"
	"github.com/ilhamster/diagramviz/legend"
	querydispatcher "github.com/ilhamster/diagramviz/query_dispatcher"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/util"
)

type fakeSource struct{}

func (fakeSource) LegendNodes(layer string, fmtr *legend.Formatter) ([]legend.Node, error) {
	if layer != "Towns" && layer != "Roads" {
		return nil, errors.New("no such layer")
	}
	return []legend.Node{
		legend.NewSimpleNode(layer).SetFullWidth(true),
		legend.NewSwatchNode("diagram_0", fmtr.Format(2010.5), color.Red),
	}, nil
}

func (fakeSource) RenderContext() *rendercontext.Context {
	return rendercontext.New(96, 1, 0)
}

func (fakeSource) SupportedDataSeriesQueries() []string {
	return []string{"diagram_legend"}
}

func (fs fakeSource) HandleDataSeriesRequests(ctx context.Context, globalState map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	for _, req := range reqs {
		nodes, err := fs.LegendNodes(req.SeriesName, nil)
		if err != nil {
			return err
		}
		series := drb.DataSeries(req)
		for _, node := range nodes {
			node.Write(series.Child())
		}
	}
	return nil
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	qd, err := querydispatcher.New(fakeSource{})
	if err != nil {
		t.Fatalf("querydispatcher.New() yielded unexpected error %s", err)
	}
	mux := http.NewServeMux()
	h := NewQueryHandler(qd, fakeSource{}).Wrap(func(next HandlerFunc) HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Wrapped", "1")
			next(w, req)
		}
	})
	for path, handler := range h.HandlersByPath() {
		mux.HandleFunc(path, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %s", rawURL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %s", err)
	}
	return resp, string(body)
}

func seriesSummary(t *testing.T, body string) map[string]int {
	t.Helper()
	data := &util.Data{}
	if err := json.Unmarshal([]byte(body), data); err != nil {
		t.Fatalf("failed to parse response %q: %s", body, err)
	}
	ret := map[string]int{}
	for _, series := range data.DataSeries {
		ret[series.SeriesName] = len(series.Root.Children)
	}
	return ret
}

func TestGetLegendGraphic(t *testing.T) {
	srv := testServer(t)
	for _, test := range []struct {
		description     string
		query           string
		wantStatus      int
		wantContentType string
		wantSeries      map[string]int
		wantBody        string
	}{{
		description:     "json",
		query:           "layers=Towns,Roads",
		wantStatus:      http.StatusOK,
		wantContentType: JSONFormat,
		wantSeries:      map[string]int{"Towns": 2, "Roads": 2},
	}, {
		description:     "svg",
		query:           "LAYERS=Towns&FORMAT=image/svg%2Bxml&LOCALE=de",
		wantStatus:      http.StatusOK,
		wantContentType: SVGFormat,
		wantBody:        "2010,5",
	}, {
		description: "missing layers",
		query:       "format=application/json",
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "unknown layer",
		query:       "layers=Rivers",
		wantStatus:  http.StatusNotFound,
	}, {
		description: "unsupported format",
		query:       "layers=Towns&format=image/png",
		wantStatus:  http.StatusBadRequest,
	}, {
		description: "bad locale",
		query:       "layers=Towns&locale=not+a+locale!",
		wantStatus:  http.StatusBadRequest,
	}} {
		t.Run(test.description, func(t *testing.T) {
			resp, body := get(t, srv.URL+legendGraphicMethod+"?"+test.query)
			if resp.StatusCode != test.wantStatus {
				t.Fatalf("status = %d (%s), want %d", resp.StatusCode, body, test.wantStatus)
			}
			if resp.Header.Get("X-Wrapped") != "1" {
				t.Errorf("response was not wrapped")
			}
			if test.wantStatus != http.StatusOK {
				return
			}
			if got := resp.Header.Get("Content-Type"); got != test.wantContentType {
				t.Errorf("Content-Type = %q, want %q", got, test.wantContentType)
			}
			if test.wantSeries != nil {
				if diff := cmp.Diff(test.wantSeries, seriesSummary(t, body)); diff != "" {
					t.Errorf("series diff (-want +got) %s", diff)
				}
			}
			if !strings.Contains(body, test.wantBody) {
				t.Errorf("body %q does not contain %q", body, test.wantBody)
			}
		})
	}
}

func TestGetData(t *testing.T) {
	srv := testServer(t)
	request := func(query string) string {
		req := &util.DataRequest{
			SeriesRequests: []*util.DataSeriesRequest{{QueryName: query, SeriesName: "Towns"}},
		}
		j, err := json.Marshal(req)
		if err != nil {
			t.Fatalf("failed to marshal request: %s", err)
		}
		return url.QueryEscape(string(j))
	}
	resp, body := get(t, srv.URL+dataMethod+"?req="+request("diagram_legend"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d (%s), want 200", resp.StatusCode, body)
	}
	if diff := cmp.Diff(map[string]int{"Towns": 2}, seriesSummary(t, body)); diff != "" {
		t.Errorf("series diff (-want +got) %s", diff)
	}
	if resp, _ := get(t, srv.URL+dataMethod+"?req="+request("diagram_colors")); resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("unsupported query status = %d, want 500", resp.StatusCode)
	}
	if resp, _ := get(t, srv.URL+dataMethod+"?req=%7B"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed request status = %d, want 400", resp.StatusCode)
	}
}
