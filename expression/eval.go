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
	"fmt"
	"math"

	"github.com/ilhamster/diagramviz/feature"
)

type node interface {
	eval(ctx *Context) (any, error)
	columns(into map[string]struct{})
}

type literalNode struct {
	v any
}

func (n literalNode) eval(*Context) (any, error) { return n.v, nil }

func (n literalNode) columns(map[string]struct{}) {}

type fieldNode string

func (n fieldNode) eval(ctx *Context) (any, error) {
	if ctx == nil || ctx.Feature == nil {
		return nil, fmt.Errorf("%w: no feature for field '%s'", ErrEval, string(n))
	}
	v, ok := ctx.Feature.Attribute(string(n))
	if !ok {
		return nil, fmt.Errorf("%w: field '%s' not found", ErrEval, string(n))
	}
	return v, nil
}

func (n fieldNode) columns(into map[string]struct{}) {
	into[string(n)] = struct{}{}
}

type variableNode string

func (n variableNode) eval(ctx *Context) (any, error) {
	v, _ := ctx.Variable(string(n))
	return v, nil
}

func (n variableNode) columns(map[string]struct{}) {}

type negNode struct {
	operand node
}

func (n negNode) eval(ctx *Context) (any, error) {
	v, err := n.operand.eval(ctx)
	if err != nil || v == nil {
		return nil, err
	}
	f, err := number(v)
	if err != nil {
		return nil, err
	}
	return -f, nil
}

func (n negNode) columns(into map[string]struct{}) {
	n.operand.columns(into)
}

type binaryNode struct {
	op       byte
	lhs, rhs node
}

func (n binaryNode) eval(ctx *Context) (any, error) {
	l, err := n.lhs.eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.rhs.eval(ctx)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}
	if n.op == '+' {
		ls, lok := l.(string)
		rs, rok := r.(string)
		if lok && rok {
			return ls + rs, nil
		}
	}
	lf, err := number(l)
	if err != nil {
		return nil, err
	}
	rf, err := number(r)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case '+':
		return lf + rf, nil
	case '-':
		return lf - rf, nil
	case '*':
		return lf * rf, nil
	case '/':
		if rf == 0 {
			return nil, nil
		}
		return lf / rf, nil
	}
	return nil, fmt.Errorf("%w: unknown operator '%c'", ErrEval, n.op)
}

func (n binaryNode) columns(into map[string]struct{}) {
	n.lhs.columns(into)
	n.rhs.columns(into)
}

type callNode struct {
	name string
	fn   function
	args []node
}

func (n callNode) eval(ctx *Context) (any, error) {
	args := make([]any, len(n.args))
	for i, arg := range n.args {
		v, err := arg.eval(ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := n.fn.impl(args)
	if err != nil {
		return nil, fmt.Errorf("%s(): %w", n.name, err)
	}
	return v, nil
}

func (n callNode) columns(into map[string]struct{}) {
	for _, arg := range n.args {
		arg.columns(into)
	}
}

func number(v any) (float64, error) {
	f, ok := feature.ToDouble(v)
	if !ok {
		return 0, fmt.Errorf("%w: cannot convert '%v' to a number", ErrEval, v)
	}
	return f, nil
}

type function struct {
	minArgs, maxArgs int
	impl             func(args []any) (any, error)
}

// numeric wraps a one-argument numeric function; NULL maps to NULL.
func numeric(fn func(float64) (float64, error)) function {
	return function{1, 1, func(args []any) (any, error) {
		if args[0] == nil {
			return nil, nil
		}
		f, err := number(args[0])
		if err != nil {
			return nil, err
		}
		ret, err := fn(f)
		if err != nil {
			return nil, err
		}
		return ret, nil
	}}
}

// extremum folds non-NULL numeric arguments with pick.
func extremum(pick func(a, b float64) float64) function {
	return function{1, -1, func(args []any) (any, error) {
		var ret any
		for _, arg := range args {
			if arg == nil {
				continue
			}
			f, err := number(arg)
			if err != nil {
				return nil, err
			}
			if ret == nil {
				ret = f
			} else {
				ret = pick(ret.(float64), f)
			}
		}
		return ret, nil
	}}
}

var functions = map[string]function{
	"coalesce": {1, -1, func(args []any) (any, error) {
		for _, arg := range args {
			if arg != nil {
				return arg, nil
			}
		}
		return nil, nil
	}},
	"abs": numeric(func(f float64) (float64, error) {
		return math.Abs(f), nil
	}),
	"sqrt": numeric(func(f float64) (float64, error) {
		if f < 0 {
			return 0, fmt.Errorf("%w: square root of negative value %g", ErrEval, f)
		}
		return math.Sqrt(f), nil
	}),
	"to_real": numeric(func(f float64) (float64, error) {
		return f, nil
	}),
	"min": extremum(math.Min),
	"max": extremum(math.Max),
}
