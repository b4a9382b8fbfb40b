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

// Package testutil provides helpers for testing legend response
// construction.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/util"
)

// UpdateComparator checks that a set of PropertyUpdates under test yields the
// same Datum as a set of expected PropertyUpdates.
type UpdateComparator struct {
	got, want []util.PropertyUpdate
}

// NewUpdateComparator returns a new, empty UpdateComparator.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates sets the PropertyUpdates under test.
func (uc *UpdateComparator) WithTestUpdates(got ...util.PropertyUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates sets the expected PropertyUpdates.
func (uc *UpdateComparator) WithWantUpdates(want ...util.PropertyUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare applies both update sets to sibling Datums and returns a diff
// message and true if they differ.  String-table ordering is not significant;
// slice ordering is.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	series.Child().With(uc.got...)
	series.Child().With(uc.want...)
	data, err := drb.Data()
	if err != nil {
		t.Fatalf("failed to build comparison data: %s", err)
	}
	children := data.DataSeries[0].Root.Children
	if diff := cmp.Diff(
		children[1].PrettyPrint("", data.StringTable),
		children[0].PrettyPrint("", data.StringTable),
	); diff != "" {
		return fmt.Sprintf("Got series %s, diff (-want +got):\n%s",
			data.DataSeries[0].PrettyPrint("", data.StringTable), diff), true
	}
	return "", false
}

// TreeBuilder fluently assembles expected response trees in tests.
type TreeBuilder interface {
	With(updates ...util.PropertyUpdate) TreeBuilder
	Child() TreeBuilder
	AndChild() TreeBuilder
	Parent() TreeBuilder
}

type treeBuilder struct {
	db     util.DataBuilder
	parent *treeBuilder
}

func (tb *treeBuilder) With(updates ...util.PropertyUpdate) TreeBuilder {
	tb.db.With(updates...)
	return tb
}

func (tb *treeBuilder) Child() TreeBuilder {
	return &treeBuilder{
		db:     tb.db.Child(),
		parent: tb,
	}
}

// AndChild adds a sibling of the receiver, or a child if the receiver is the
// root.
func (tb *treeBuilder) AndChild() TreeBuilder {
	if tb.parent == nil {
		return tb.Child()
	}
	return tb.parent.Child()
}

func (tb *treeBuilder) Parent() TreeBuilder {
	if tb.parent == nil {
		return tb
	}
	return tb.parent
}

func build(t *testing.T, fn any) *util.DataResponseBuilder {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	switch build := fn.(type) {
	case func(util.DataBuilder):
		build(series)
	case func(TreeBuilder):
		build(&treeBuilder{db: series})
	default:
		t.Fatalf("builder must be a func(util.DataBuilder) or a func(testutil.TreeBuilder), got %T", fn)
	}
	return drb
}

// CompareResponses builds one data series with each of buildGot and
// buildWant, each a func(util.DataBuilder) or a func(TreeBuilder), and
// reports a test error if their prettyprinted forms differ.  Build failures
// are returned.
func CompareResponses(t *testing.T, buildGot, buildWant any) error {
	t.Helper()
	got, err := build(t, buildGot).Data()
	if err != nil {
		return err
	}
	want, err := build(t, buildWant).Data()
	if err != nil {
		return err
	}
	if diff := cmp.Diff(want.PrettyPrint(), got.PrettyPrint()); diff != "" {
		t.Errorf("Got data %s, diff (-want +got) %s", got.PrettyPrint(), diff)
	}
	return nil
}
