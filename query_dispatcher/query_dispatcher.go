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

// Package querydispatcher provides QueryDispatcher, which routes the data
// series of a legend request to the sources answering them.
package querydispatcher

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ilhamster/diagramviz/util"
)

// dataSource answers one or more named series queries.  dataSource
// instances must support concurrent HandleDataSeriesRequests calls.
type dataSource interface {
	// SupportedDataSeriesQueries returns the query names this dataSource
	// handles.  Query names must be unique across a QueryDispatcher's
	// sources.
	SupportedDataSeriesQueries() []string
	// HandleDataSeriesRequests adds one series per request to drb.  Any
	// returned error fails the entire request.
	HandleDataSeriesRequests(ctx context.Context, globalState map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error
}

// QueryDispatcher multiplexes several data sources, for instance one per
// project, behind a single request entry point.
type QueryDispatcher struct {
	dataSources []dataSource
	// Maps query names to indices, in dataSources, of their handlers.
	handlers map[string]int
}

// New returns a *QueryDispatcher wrapping the provided dataSources.
func New(dss ...dataSource) (*QueryDispatcher, error) {
	qd := &QueryDispatcher{
		handlers: map[string]int{},
	}
	for dsIdx, ds := range dss {
		qd.dataSources = append(qd.dataSources, ds)
		for _, queryName := range ds.SupportedDataSeriesQueries() {
			if _, ok := qd.handlers[queryName]; ok {
				return nil, fmt.Errorf("multiple data sources handle query `%s`", queryName)
			}
			qd.handlers[queryName] = dsIdx
		}
	}
	return qd, nil
}

// Queries returns the supported query names, sorted.
func (qd *QueryDispatcher) Queries() []string {
	ret := make([]string, 0, len(qd.handlers))
	for name := range qd.handlers {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// HandleDataRequest groups req's series by data source, has each source
// build its series concurrently, and assembles the results.
func (qd *QueryDispatcher) HandleDataRequest(ctx context.Context, req *util.DataRequest) (*util.Data, error) {
	drb := util.NewDataResponseBuilder()
	groupedReqs := map[int][]*util.DataSeriesRequest{}
	for _, seriesReq := range req.SeriesRequests {
		dsIdx, ok := qd.handlers[seriesReq.QueryName]
		if !ok {
			return nil, fmt.Errorf("unsupported data query `%s`", seriesReq.QueryName)
		}
		groupedReqs[dsIdx] = append(groupedReqs[dsIdx], seriesReq)
	}
	errg, ctx := errgroup.WithContext(ctx)
	for dsIdx, seriesReqs := range groupedReqs {
		ds := qd.dataSources[dsIdx]
		errg.Go(func() error {
			return ds.HandleDataSeriesRequests(ctx, req.GlobalFilters, drb, seriesReqs)
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return drb.Data()
}
