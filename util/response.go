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

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Datum is a single node in a data series response: a set of properties
// keyed by string-table index, and an ordered list of children.
type Datum struct {
	Properties map[int64]*V
	Children   []*Datum
}

func (d *Datum) sortedKeys() []int64 {
	keys := make([]int64, 0, len(d.Properties))
	for k := range d.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// PrettyPrint returns the receiver deterministically prettyprinted, with
// properties in alphabetical key order.  Only for use in tests.
func (d *Datum) PrettyPrint(indent string, st []string) string {
	keys := d.sortedKeys()
	slices.SortFunc(keys, func(a, b int64) int {
		return strings.Compare(st[a], st[b])
	})
	ret := make([]string, 0, len(keys)+2*len(d.Children))
	for _, k := range keys {
		ret = append(ret,
			fmt.Sprintf("%sProp '%s': %s", indent, st[k], d.Properties[k].PrettyPrint(st)),
		)
	}
	for _, child := range d.Children {
		ret = append(ret,
			indent+"Child:",
			child.PrettyPrint(indent+"  ", st),
		)
	}
	return strings.Join(ret, "\n")
}

// MarshalJSON encodes a Datum as `[[[key, V]...], [Datum...]]`, with
// properties in increasing key order.
func (d *Datum) MarshalJSON() ([]byte, error) {
	keys := d.sortedKeys()
	props := make([]any, len(keys))
	for idx, k := range keys {
		props[idx] = []any{k, d.Properties[k]}
	}
	children := make([]any, len(d.Children))
	for idx, child := range d.Children {
		children[idx] = child
	}
	return json.Marshal([]any{props, children})
}

func (d *Datum) fromAny(sd []any) error {
	if len(sd) != 2 {
		return fmt.Errorf("datum must have exactly two elements, got %d", len(sd))
	}
	props, _ := sd[0].([]any)
	children, _ := sd[1].([]any)
	d.Properties = make(map[int64]*V, len(props))
	d.Children = make([]*Datum, len(children))
	for _, prop := range props {
		kv, ok := prop.([]any)
		if !ok || len(kv) != 2 {
			return fmt.Errorf("malformed datum property %v", prop)
		}
		k, err := kv[0].(json.Number).Int64()
		if err != nil {
			return err
		}
		v := &V{}
		if err := v.fromAny(kv[1].([]any)); err != nil {
			return err
		}
		d.Properties[k] = v
	}
	for idx, c := range children {
		child := &Datum{}
		if err := child.fromAny(c.([]any)); err != nil {
			return err
		}
		d.Children[idx] = child
	}
	return nil
}

// UnmarshalJSON decodes the provided JSON bytes into the receiving Datum.
func (d *Datum) UnmarshalJSON(data []byte) error {
	var sd []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&sd); err != nil {
		return err
	}
	return d.fromAny(sd)
}

// DataSeriesRequest asks for a single named data series.
type DataSeriesRequest struct {
	QueryName  string
	SeriesName string
	Options    map[string]*V
}

// DataSeries is the response to a single DataSeriesRequest.
type DataSeries struct {
	SeriesName string
	Root       *Datum
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (ds *DataSeries) PrettyPrint(indent string, st []string) string {
	return strings.Join([]string{
		fmt.Sprintf("%sSeries %s", indent, ds.SeriesName),
		indent + "  Root:",
		ds.Root.PrettyPrint(indent+"    ", st),
	}, "\n")
}

// DataRequest is a request for one or more data series.  GlobalFilters apply
// to every series; the legend service reads the layer and locale from them.
type DataRequest struct {
	GlobalFilters  map[string]*V
	SeriesRequests []*DataSeriesRequest
}

// DataRequestFromJSON attempts to construct a DataRequest from the provided
// JSON.
func DataRequestFromJSON(j []byte) (*DataRequest, error) {
	ret := &DataRequest{}
	err := json.Unmarshal(j, ret)
	return ret, err
}

// Data is a complete response: a shared string table and one DataSeries per
// request.
type Data struct {
	StringTable []string
	DataSeries  []*DataSeries
}

// PrettyPrint returns the receiver deterministically prettyprinted.
// Only for use in tests.
func (d *Data) PrettyPrint() string {
	ret := []string{"Data:"}
	for _, series := range d.DataSeries {
		ret = append(ret, series.PrettyPrint("  ", d.StringTable))
	}
	return strings.Join(ret, "\n")
}

// stringTable interns strings to dense indices.  It is thread-safe.
type stringTable struct {
	mu        sync.RWMutex
	indices   map[string]int64
	byIndex   []string
}

func newStringTable(strs ...string) *stringTable {
	ret := &stringTable{
		indices: map[string]int64{},
	}
	for _, str := range strs {
		ret.stringIndex(str)
	}
	return ret
}

func (st *stringTable) lookup(str string) (int64, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	idx, ok := st.indices[str]
	return idx, ok
}

// stringIndex returns the index of str, interning it if necessary.
func (st *stringTable) stringIndex(str string) int64 {
	if idx, ok := st.lookup(str); ok {
		return idx
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	// Another writer may have won the race between lookup and Lock.
	if idx, ok := st.indices[str]; ok {
		return idx
	}
	idx := int64(len(st.byIndex))
	st.byIndex = append(st.byIndex, str)
	st.indices[str] = idx
	return idx
}

func (st *stringTable) strings() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return slices.Clone(st.byIndex)
}

// errorSet collects errors raised by concurrently-built series.
type errorSet struct {
	mu   sync.Mutex
	errs []error
}

func (es *errorSet) add(err error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	es.errs = append(es.errs, err)
}

func (es *errorSet) failed() bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	return len(es.errs) > 0
}

func (es *errorSet) err() error {
	es.mu.Lock()
	defer es.mu.Unlock()
	return errors.Join(es.errs...)
}

// DataResponseBuilder assembles a Data response out of concurrently-built
// data series.
type DataResponseBuilder struct {
	st   *stringTable
	errs *errorSet
	mu   sync.Mutex
	d    *Data
}

// NewDataResponseBuilder returns a new, empty DataResponseBuilder.
func NewDataResponseBuilder() *DataResponseBuilder {
	return &DataResponseBuilder{
		st:   newStringTable(),
		errs: &errorSet{},
		d: &Data{
			StringTable: []string{},
			DataSeries:  []*DataSeries{},
		},
	}
}

// DataBuilder is implemented by types that can assemble response Datums.
type DataBuilder interface {
	With(updates ...PropertyUpdate) DataBuilder
	Child() DataBuilder
}

// DataSeries returns a DataBuilder for the root of the response to req.  It
// is safe for concurrent use.
func (drb *DataResponseBuilder) DataSeries(req *DataSeriesRequest) DataBuilder {
	ret := newDatumBuilder(drb.errs, drb.st)
	drb.mu.Lock()
	defer drb.mu.Unlock()
	drb.d.DataSeries = append(drb.d.DataSeries, &DataSeries{
		SeriesName: req.SeriesName,
		Root:       ret.d,
	})
	return ret
}

// Data completes and returns the Data under construction, or every error
// raised while building it.
func (drb *DataResponseBuilder) Data() (*Data, error) {
	if err := drb.errs.err(); err != nil {
		return nil, err
	}
	drb.d.StringTable = drb.st.strings()
	return drb.d, nil
}

// datumBuilder assembles a single Datum.
type datumBuilder struct {
	errs *errorSet
	st   *stringTable
	d    *Datum
}

func newDatumBuilder(errs *errorSet, st *stringTable) *datumBuilder {
	return &datumBuilder{
		errs: errs,
		st:   st,
		d: &Datum{
			Properties: map[int64]*V{},
			Children:   []*Datum{},
		},
	}
}

// With applies the provided PropertyUpdates in order, stopping at the first
// error.  Once any error has been recorded, With does nothing.
func (db *datumBuilder) With(updates ...PropertyUpdate) DataBuilder {
	if db.errs.failed() {
		return db
	}
	for _, update := range updates {
		if update == nil {
			continue
		}
		if err := update(db); err != nil {
			db.errs.add(err)
			break
		}
	}
	return db
}

func (db *datumBuilder) Child() DataBuilder {
	child := newDatumBuilder(db.errs, db.st)
	db.d.Children = append(db.d.Children, child.d)
	return child
}

func (db *datumBuilder) set(key string, v *V) {
	db.d.Properties[db.st.stringIndex(key)] = v
}

func (db *datumBuilder) get(key string) (*V, bool) {
	v, ok := db.d.Properties[db.st.stringIndex(key)]
	return v, ok
}

func (db *datumBuilder) indices(strs []string) []int64 {
	ret := make([]int64, len(strs))
	for i, s := range strs {
		ret[i] = db.st.stringIndex(s)
	}
	return ret
}
