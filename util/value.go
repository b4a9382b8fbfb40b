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

// Package util defines the response format shared by the diagram legend
// service and its clients:
//
// {type}Value functions (type={String, StringIndex, Strings, StringIndices,
// Integer, Double}) construct Values of the specified type, and
// Expect{type}Value functions retrieve them, returning an error on a type
// mismatch;
//
// DataResponseBuilder and DataBuilder assemble responses, one DataSeries per
// DataSeriesRequest, out of PropertyUpdates.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type valueType int

// Enumerated value types.
const (
	unsetValue valueType = iota
	StringValueType
	StringIndexValueType
	StringsValueType
	StringIndicesValueType
	IntegerValueType
	DoubleValueType
)

// V is a single typed value in a request or response.
type V struct {
	V any
	T valueType
}

// PrettyPrint returns the receiver, deterministically prettyprinted.
// String-index values print like the literal strings they index.  Only for
// use in tests.
func (v *V) PrettyPrint(st []string) string {
	var ret string
	var err error
	switch v.T {
	case unsetValue:
		ret = "unset"
	case StringValueType:
		ret, err = ExpectStringValue(v)
		ret = "'" + ret + "'"
	case StringIndexValueType:
		var idx int64
		if idx, err = expectStringIndexValue(v); err == nil {
			ret = "'" + st[idx] + "'"
		}
	case StringsValueType:
		var strs []string
		strs, err = ExpectStringsValue(v)
		ret = "[ '" + strings.Join(strs, "', '") + "' ]"
	case StringIndicesValueType:
		var idxs []int64
		if idxs, err = expectStringIndicesValue(v); err == nil {
			strs := make([]string, len(idxs))
			for i, idx := range idxs {
				strs[i] = st[idx]
			}
			ret = "[ '" + strings.Join(strs, "', '") + "' ]"
		}
	case IntegerValueType:
		var i int64
		if i, err = ExpectIntegerValue(v); err == nil {
			ret = strconv.FormatInt(i, 10)
		}
	case DoubleValueType:
		var d float64
		if d, err = ExpectDoubleValue(v); err == nil {
			ret = fmt.Sprintf("%.6f", d)
		}
	}
	if err != nil {
		return "error: " + err.Error()
	}
	return ret
}

// MarshalJSON encodes a V as the two-element array `[type, value]`, where
// value is null if unset, a string, a number (integers, string indices and
// doubles), or an array of strings or numbers.
func (v *V) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{v.T, v.V})
}

func (v *V) fromAny(got []any) error {
	if len(got) != 2 {
		return fmt.Errorf("value must have exactly two elements, got %d", len(got))
	}
	t, err := got[0].(json.Number).Int64()
	if err != nil {
		return err
	}
	v.T = valueType(t)
	raw := got[1]
	switch v.T {
	case StringIndexValueType, IntegerValueType:
		v.V, err = raw.(json.Number).Int64()
	case DoubleValueType:
		v.V, err = raw.(json.Number).Float64()
	case StringsValueType:
		items := raw.([]any)
		strs := make([]string, len(items))
		for i, item := range items {
			if strs[i], err = url.QueryUnescape(item.(string)); err != nil {
				return err
			}
		}
		v.V = strs
	case StringIndicesValueType:
		items := raw.([]any)
		idxs := make([]int64, len(items))
		for i, item := range items {
			if idxs[i], err = item.(json.Number).Int64(); err != nil {
				return err
			}
		}
		v.V = idxs
	default:
		v.V = raw
	}
	return err
}

// UnmarshalJSON decodes the provided JSON bytes into the receiving V.
func (v *V) UnmarshalJSON(data []byte) error {
	var got []any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	return v.fromAny(got)
}

// StringValue returns a new Value wrapping the provided string.
func StringValue(str string) *V {
	return &V{V: str, T: StringValueType}
}

// StringIndexValue returns a new Value wrapping the provided string index.
func StringIndexValue(idx int64) *V {
	return &V{V: idx, T: StringIndexValueType}
}

// StringsValue returns a new Value wrapping the provided strings.
func StringsValue(strs ...string) *V {
	return &V{V: strs, T: StringsValueType}
}

// StringIndicesValue returns a new Value wrapping the provided string
// indices.
func StringIndicesValue(idxs ...int64) *V {
	return &V{V: idxs, T: StringIndicesValueType}
}

// IntegerValue returns a new Value wrapping the provided int64.
func IntegerValue(i int64) *V {
	return &V{V: i, T: IntegerValueType}
}

// DoubleValue returns a new Value wrapping the provided float64.
func DoubleValue(f float64) *V {
	return &V{V: f, T: DoubleValueType}
}

// ExpectStringValue returns the string held by val, or an error if val is
// not a string.
func ExpectStringValue(val *V) (string, error) {
	if val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str'")
	}
	return url.QueryUnescape(val.V.(string))
}

func expectStringIndexValue(val *V) (int64, error) {
	if val.T != StringIndexValueType {
		return 0, fmt.Errorf("expected value type 'str_idx'")
	}
	return val.V.(int64), nil
}

// ExpectStringsValue returns the strings held by val, or an error if val is
// not a string slice.
func ExpectStringsValue(val *V) ([]string, error) {
	if val.T != StringsValueType {
		return nil, fmt.Errorf("expected value type 'strs'")
	}
	return val.V.([]string), nil
}

func expectStringIndicesValue(val *V) ([]int64, error) {
	if val.T != StringIndicesValueType {
		return nil, fmt.Errorf("expected value type 'str_idxs'")
	}
	return val.V.([]int64), nil
}

// ExpectIntegerValue returns the integer held by val, or an error if val is
// not an integer.
func ExpectIntegerValue(val *V) (int64, error) {
	if val.T != IntegerValueType {
		return 0, fmt.Errorf("expected value type 'int'")
	}
	return val.V.(int64), nil
}

// ExpectDoubleValue returns the float64 held by val, or an error if val is
// not a double.
func ExpectDoubleValue(val *V) (float64, error) {
	if val.T != DoubleValueType {
		return 0, fmt.Errorf("expected value type 'dbl'")
	}
	return val.V.(float64), nil
}
