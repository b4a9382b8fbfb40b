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
	"strconv"
	"strings"
)

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrParse, fmt.Sprintf(format, args...), tok.pos)
}

// expr := term (('+' | '-') term)*
func (p *parser) parseExpr() (node, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for tok := p.peek(); tok.kind == tokOp && (tok.text == "+" || tok.text == "-"); tok = p.peek() {
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = binaryNode{op: tok.text[0], lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

// term := unary (('*' | '/') unary)*
func (p *parser) parseTerm() (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for tok := p.peek(); tok.kind == tokOp && (tok.text == "*" || tok.text == "/"); tok = p.peek() {
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = binaryNode{op: tok.text[0], lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

// unary := '-' unary | primary
func (p *parser) parseUnary() (node, error) {
	if tok := p.peek(); tok.kind == tokOp && tok.text == "-" {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negNode{operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid number '%s'", tok.text)
		}
		return literalNode{f}, nil
	case tokString:
		return literalNode{tok.text}, nil
	case tokField:
		return fieldNode(tok.text), nil
	case tokVariable:
		return variableNode(tok.text), nil
	case tokIdent:
		if strings.EqualFold(tok.text, "NULL") {
			return literalNode{nil}, nil
		}
		if p.peek().kind != tokLParen {
			return fieldNode(tok.text), nil
		}
		return p.parseCall(tok)
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected ')', got '%s'", closing.text)
		}
		return inner, nil
	}
	return nil, p.errorf(tok, "unexpected '%s'", tok.text)
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := functions[strings.ToLower(name.text)]
	if !ok {
		return nil, p.errorf(name, "unknown function '%s'", name.text)
	}
	p.next() // '('
	var args []node
	if p.peek().kind == tokRParen {
		p.next()
	} else {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			sep := p.next()
			if sep.kind == tokRParen {
				break
			}
			if sep.kind != tokComma {
				return nil, p.errorf(sep, "expected ',' or ')', got '%s'", sep.text)
			}
		}
	}
	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		return nil, p.errorf(name, "wrong number of arguments to %s: %d", name.text, len(args))
	}
	return callNode{name: strings.ToLower(name.text), fn: fn, args: args}, nil
}
