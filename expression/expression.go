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

// Package expression implements the small expression language used for
// data-defined diagram properties, classification values and category
// attributes.
//
// An expression combines numbers, single-quoted strings, field references
// (bare or double-quoted names), @variables, unary minus, the arithmetic
// operators + - * /, parentheses, and the functions coalesce, abs, sqrt,
// min, max and to_real.  Values are NULL (nil), float64 or string.  Any NULL
// operand of an operator yields NULL.
//
// Evaluation never panics: parse and evaluation failures are reported as
// errors wrapping ErrParse and ErrEval respectively.
package expression

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrParse is wrapped by all parse failures.
	ErrParse = errors.New("expression parse error")
	// ErrEval is wrapped by all evaluation failures.
	ErrEval = errors.New("expression evaluation error")
)

// Expression is a parsed expression.  It is immutable and safe for
// concurrent evaluation.
type Expression struct {
	text string
	root node
}

// Parse parses text into an Expression.
func Parse(text string) (*Expression, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected '%s' at offset %d in '%s'", ErrParse, tok.text, tok.pos, text)
	}
	return &Expression{text: text, root: root}, nil
}

// Text returns the source text of the expression.
func (e *Expression) Text() string {
	return e.text
}

// Evaluate evaluates the expression against ctx.
func (e *Expression) Evaluate(ctx *Context) (any, error) {
	v, err := e.root.eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluating '%s': %w", e.text, err)
	}
	return v, nil
}

// ReferencedColumns returns the sorted, distinct field names the expression
// reads.
func (e *Expression) ReferencedColumns() []string {
	cols := map[string]struct{}{}
	e.root.columns(cols)
	ret := make([]string, 0, len(cols))
	for col := range cols {
		ret = append(ret, col)
	}
	slices.Sort(ret)
	return ret
}

// Field returns the referenced field name and true if the whole expression
// is a single field reference.
func (e *Expression) Field() (string, bool) {
	if f, ok := e.root.(fieldNode); ok {
		return string(f), true
	}
	return "", false
}

// Evaluate parses and evaluates text in one step.
func Evaluate(text string, ctx *Context) (any, error) {
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx)
}
