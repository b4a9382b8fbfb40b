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

// Package handlers exposes legend queries over HTTP.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/ilhamster/diagramviz/legend"
	querydispatcher "github.com/ilhamster/diagramviz/query_dispatcher"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	serverrequest "github.com/ilhamster/diagramviz/server_request"
	"github.com/ilhamster/diagramviz/util"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes a set of HTTP handlers.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// QueryHandler is a Handler for legend queries.  It supports a Wrap method
// that wraps all handlers, e.g. adding cookies.
type QueryHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

// LegendGraphicSource supplies the legend entries of layers.
type LegendGraphicSource interface {
	LegendNodes(layer string, fmtr *legend.Formatter) ([]legend.Node, error)
	RenderContext() *rendercontext.Context
}

// Legend graphic formats.
const (
	JSONFormat = "application/json"
	SVGFormat  = "image/svg+xml"
)

const (
	dataMethod          = "/GetData"
	legendGraphicMethod = "/GetLegendGraphic"

	layersParam = "LAYERS"
	formatParam = "FORMAT"
	localeParam = "LOCALE"
)

// sendJSONResponse serializes resp and sends it along w.  Any failures
// during serialization yield an HTTP internal status error.
func sendJSONResponse(resp any, w http.ResponseWriter) {
	respBytes, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", JSONFormat)
	w.Write(respBytes)
}

type queryHandler struct {
	qd       *querydispatcher.QueryDispatcher
	lgs      LegendGraphicSource
	wrappers []WrapFunc
}

// NewQueryHandler returns a new Handler serving data requests through qd
// and, if lgs is not nil, legend graphics from lgs.
func NewQueryHandler(qd *querydispatcher.QueryDispatcher, lgs LegendGraphicSource) QueryHandler {
	return &queryHandler{
		qd:  qd,
		lgs: lgs,
	}
}

type contextKey string

var (
	httpReqKey contextKey = "diagramviz_http_req"
)

// RequestOf returns the http Request attached to the provided Context, or nil
// if no Request is attached.  Returns an error if something other than a
// Request is stored in the Context.
func RequestOf(ctx context.Context) (*http.Request, error) {
	reqIf := ctx.Value(httpReqKey)
	if reqIf == nil {
		return nil, nil
	}
	req, ok := reqIf.(*http.Request)
	if !ok {
		return nil, fmt.Errorf("expected *http.Request to be stored in context, but got something else")
	}
	return req, nil
}

func (qh *queryHandler) Wrap(wrappers ...WrapFunc) Handler {
	qh.wrappers = append(qh.wrappers, wrappers...)
	return qh
}

func (qh *queryHandler) wrap(h HandlerFunc) HandlerFunc {
	for _, wrapper := range qh.wrappers {
		h = wrapper(h)
	}
	return h
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (qh *queryHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := map[string]func(http.ResponseWriter, *http.Request){
		dataMethod: qh.wrap(qh.getDataHandler),
	}
	if qh.lgs != nil {
		ret[legendGraphicMethod] = qh.wrap(qh.getLegendGraphicHandler)
	}
	return ret
}

func (qh *queryHandler) getDataHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	dataReq, err := util.DataRequestFromJSON([]byte(req.Form.Get("req")))
	if err != nil {
		http.Error(w, "Failed to parse DataRequest: "+err.Error(), http.StatusBadRequest)
		return
	}
	resp, err := qh.qd.HandleDataRequest(context.WithValue(req.Context(), httpReqKey, req), dataReq)
	if err != nil {
		http.Error(w, "DataRequest failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSONResponse(resp, w)
}

func (qh *queryHandler) getLegendGraphicHandler(w http.ResponseWriter, hr *http.Request) {
	req, err := serverrequest.FromHTTP(hr)
	if err != nil {
		http.Error(w, err.Error(), http.StatusMethodNotAllowed)
		return
	}
	var layers []string
	for _, layer := range strings.Split(req.Parameter(layersParam, ""), ",") {
		if layer = strings.TrimSpace(layer); layer != "" {
			layers = append(layers, layer)
		}
	}
	if len(layers) == 0 {
		http.Error(w, "Missing parameter "+layersParam, http.StatusBadRequest)
		return
	}
	var fmtr *legend.Formatter
	if locale := req.Parameter(localeParam, ""); locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			http.Error(w, "Invalid "+localeParam+": "+err.Error(), http.StatusBadRequest)
			return
		}
		fmtr = legend.NewFormatter(tag)
	}
	nodesByLayer := make([][]legend.Node, len(layers))
	for i, layer := range layers {
		if nodesByLayer[i], err = qh.lgs.LegendNodes(layer, fmtr); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	switch format := req.Parameter(formatParam, JSONFormat); format {
	case JSONFormat:
		drb := util.NewDataResponseBuilder()
		for i, layer := range layers {
			series := drb.DataSeries(&util.DataSeriesRequest{SeriesName: layer})
			for _, node := range nodesByLayer[i] {
				node.Write(series.Child())
			}
		}
		data, err := drb.Data()
		if err != nil {
			http.Error(w, "Failed to build legend: "+err.Error(), http.StatusInternalServerError)
			return
		}
		sendJSONResponse(data, w)
	case SVGFormat:
		var nodes []legend.Node
		for _, layerNodes := range nodesByLayer {
			nodes = append(nodes, layerNodes...)
		}
		var buf bytes.Buffer
		if err := legend.WriteSVG(&buf, strings.Join(layers, ", "), nodes, qh.lgs.RenderContext()); err != nil {
			log.Printf("failed to draw legend graphic: %s", err)
			http.Error(w, "Failed to draw legend: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Add("Content-Type", SVGFormat)
		w.Write(buf.Bytes())
	default:
		http.Error(w, "Unsupported "+formatParam+" "+format, http.StatusBadRequest)
	}
}
