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

// PropertyUpdate updates a Datum under construction.  A nil PropertyUpdate
// does nothing.
type PropertyUpdate func(db *datumBuilder) error

// Value is a property value whose key is not yet known.
type Value func(key string) PropertyUpdate

// EmptyUpdate is a PropertyUpdate that does nothing.
var EmptyUpdate PropertyUpdate = nil

// ErrorProperty fails the response under construction with err.
func ErrorProperty(err error) PropertyUpdate {
	return func(db *datumBuilder) error {
		return err
	}
}

// If applies du only if predicate is true.
func If(predicate bool, du PropertyUpdate) PropertyUpdate {
	if predicate {
		return du
	}
	return EmptyUpdate
}

// IfElse applies t if predicate is true, and f otherwise.
func IfElse(predicate bool, t, f PropertyUpdate) PropertyUpdate {
	if predicate {
		return t
	}
	return f
}

// Chain applies the provided updates in order.
func Chain(updates ...PropertyUpdate) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.With(updates...)
		return nil
	}
}

// Nothing is a Value that sets nothing.
var Nothing Value = func(key string) PropertyUpdate {
	return EmptyUpdate
}

// String produces a Value setting the specified string.
func String(value string) Value {
	return func(key string) PropertyUpdate {
		return StringProperty(key, value)
	}
}

// Strings produces a Value setting the specified strings.
func Strings(values ...string) Value {
	return func(key string) PropertyUpdate {
		return StringsProperty(key, values...)
	}
}

// Integer produces a Value setting the specified int64.
func Integer(value int64) Value {
	return func(key string) PropertyUpdate {
		return IntegerProperty(key, value)
	}
}

// Double produces a Value setting the specified float64.
func Double(value float64) Value {
	return func(key string) PropertyUpdate {
		return DoubleProperty(key, value)
	}
}

// Error produces a Value which fails the response with err.
func Error(err error) Value {
	return func(key string) PropertyUpdate {
		return ErrorProperty(err)
	}
}

// StringProperty sets a string property.  The string is interned in the
// response's string table.
func StringProperty(key, value string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndexValue(db.st.stringIndex(value)))
		return nil
	}
}

// StringsProperty sets a string slice property.
func StringsProperty(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, StringIndicesValue(db.indices(values)...))
		return nil
	}
}

// StringsPropertyExtended appends to a string slice property, creating it if
// needed.
func StringsPropertyExtended(key string, values ...string) PropertyUpdate {
	return func(db *datumBuilder) error {
		v, ok := db.get(key)
		if !ok {
			db.set(key, StringIndicesValue(db.indices(values)...))
			return nil
		}
		idxs, err := expectStringIndicesValue(v)
		if err != nil {
			return err
		}
		v.V = append(idxs, db.indices(values)...)
		return nil
	}
}

// IntegerProperty sets an integer property.
func IntegerProperty(key string, value int64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, IntegerValue(value))
		return nil
	}
}

// DoubleProperty sets a double property.
func DoubleProperty(key string, value float64) PropertyUpdate {
	return func(db *datumBuilder) error {
		db.set(key, DoubleValue(value))
		return nil
	}
}
