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

package expression

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/diagramviz/feature"
)

func TestEvaluate(t *testing.T) {
	f := feature.New(1, map[string]any{
		"pop":        int64(400),
		"area":       25.0,
		"name":       "Springfield",
		"empty":      nil,
		"two words":  "x",
		"population": "1200",
	})
	ctx := NewContext(f).WithOriginalValue(7.0)
	for _, test := range []struct {
		description string
		expr        string
		want        any
		wantErr     error
	}{{
		description: "number",
		expr:        "3.5",
		want:        3.5,
	}, {
		description: "precedence",
		expr:        "1 + 2 * 3 - 4 / 2",
		want:        5.0,
	}, {
		description: "parentheses and unary minus",
		expr:        "-(1 + 2) * 2",
		want:        -6.0,
	}, {
		description: "bare field",
		expr:        "pop / 4",
		want:        100.0,
	}, {
		description: "quoted field",
		expr:        `"two words"`,
		want:        "x",
	}, {
		description: "numeric string field",
		expr:        "population * 2",
		want:        2400.0,
	}, {
		description: "string concatenation",
		expr:        "name + '!'",
		want:        "Springfield!",
	}, {
		description: "escaped quote",
		expr:        "'it''s'",
		want:        "it's",
	}, {
		description: "original value variable",
		expr:        "@value * 2",
		want:        14.0,
	}, {
		description: "unset variable is null",
		expr:        "@nothing",
		want:        nil,
	}, {
		description: "null propagates",
		expr:        "empty + 1",
		want:        nil,
	}, {
		description: "division by zero is null",
		expr:        "1 / 0",
		want:        nil,
	}, {
		description: "coalesce",
		expr:        "coalesce(empty, NULL, area)",
		want:        25.0,
	}, {
		description: "sqrt and abs",
		expr:        "sqrt(abs(-area))",
		want:        5.0,
	}, {
		description: "min and max skip null",
		expr:        "max(1, empty, pop) - min(area, 3)",
		want:        397.0,
	}, {
		description: "to_real",
		expr:        "to_real('2.5')",
		want:        2.5,
	}, {
		description: "missing field",
		expr:        "missing + 1",
		wantErr:     ErrEval,
	}, {
		description: "non-numeric operand",
		expr:        "name * 2",
		wantErr:     ErrEval,
	}, {
		description: "sqrt of negative",
		expr:        "sqrt(-1)",
		wantErr:     ErrEval,
	}, {
		description: "unknown function",
		expr:        "frobnicate(1)",
		wantErr:     ErrParse,
	}, {
		description: "unbalanced parentheses",
		expr:        "(1 + 2",
		wantErr:     ErrParse,
	}, {
		description: "trailing tokens",
		expr:        "1 2",
		wantErr:     ErrParse,
	}, {
		description: "unterminated string",
		expr:        "'abc",
		wantErr:     ErrParse,
	}, {
		description: "bad character",
		expr:        "1 # 2",
		wantErr:     ErrParse,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := Evaluate(test.expr, ctx)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Evaluate(%q) yielded error %v, want %v", test.expr, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q) yielded unexpected error %s", test.expr, err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Evaluate(%q) = %v, diff (-want +got) %s", test.expr, got, diff)
			}
		})
	}
}

func TestReferencedColumns(t *testing.T) {
	for _, test := range []struct {
		description string
		expr        string
		want        []string
		wantField   string
	}{{
		description: "single field",
		expr:        `"pop"`,
		want:        []string{"pop"},
		wantField:   "pop",
	}, {
		description: "nested and repeated",
		expr:        `coalesce(b, a) + sqrt("b") * @value`,
		want:        []string{"a", "b"},
	}, {
		description: "none",
		expr:        "1 + @value",
		want:        []string{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			e, err := Parse(test.expr)
			if err != nil {
				t.Fatalf("Parse(%q) yielded unexpected error %s", test.expr, err)
			}
			if diff := cmp.Diff(test.want, e.ReferencedColumns()); diff != "" {
				t.Errorf("ReferencedColumns() diff (-want +got) %s", diff)
			}
			field, ok := e.Field()
			if field != test.wantField || ok != (test.wantField != "") {
				t.Errorf("Field() = %q, %t, want %q", field, ok, test.wantField)
			}
		})
	}
}

func TestContextDerivation(t *testing.T) {
	base := NewContext(nil)
	derived := base.WithOriginalValue(1.0)
	if _, ok := base.Variable(OriginalValueVariable); ok {
		t.Errorf("WithOriginalValue() mutated its receiver")
	}
	if v, _ := derived.Variable(OriginalValueVariable); v != 1.0 {
		t.Errorf("derived @value = %v, want 1", v)
	}
	again := derived.WithOriginalValue(2.0)
	if v, _ := derived.Variable(OriginalValueVariable); v != 1.0 {
		t.Errorf("second derivation changed first: @value = %v", v)
	}
	if v, _ := again.Variable(OriginalValueVariable); v != 2.0 {
		t.Errorf("again @value = %v, want 2", v)
	}
	if _, err := Evaluate("pop", base); !errors.Is(err, ErrEval) {
		t.Errorf("field reference without feature yielded %v, want ErrEval", err)
	}
}

func TestCache(t *testing.T) {
	c := NewCache(2)
	first, err := c.Parse("1 + 1")
	if err != nil {
		t.Fatalf("Parse() yielded unexpected error %s", err)
	}
	second, _ := c.Parse("1 + 1")
	if first != second {
		t.Errorf("cached Parse() returned a different expression")
	}
	if _, err := c.Parse("1 +"); !errors.Is(err, ErrParse) {
		t.Errorf("Parse('1 +') yielded %v, want ErrParse", err)
	}
	c.Parse("2")
	c.Parse("3")
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if v, err := c.Evaluate("2 * 3", nil); err != nil || v != 6.0 {
		t.Errorf("Evaluate() = %v, %v, want 6", v, err)
	}
}
