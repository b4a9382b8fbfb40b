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
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokField
	tokIdent
	tokVariable
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func lex(text string) ([]token, error) {
	rs := []rune(text)
	var toks []token
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			start := i
			for i < len(rs) && (unicode.IsDigit(rs[i]) || rs[i] == '.') {
				i++
			}
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				i++
				if i < len(rs) && (rs[i] == '+' || rs[i] == '-') {
					i++
				}
				for i < len(rs) && unicode.IsDigit(rs[i]) {
					i++
				}
			}
			toks = append(toks, token{tokNumber, string(rs[start:i]), start})
		case r == '\'' || r == '"':
			start := i
			str, next, err := lexQuoted(rs, i)
			if err != nil {
				return nil, fmt.Errorf("%w: %s in '%s'", ErrParse, err, text)
			}
			kind := tokString
			if r == '"' {
				kind = tokField
			}
			toks = append(toks, token{kind, str, start})
			i = next
		case r == '@':
			start := i
			i++
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			if i == start+1 {
				return nil, fmt.Errorf("%w: empty variable name at offset %d in '%s'", ErrParse, start, text)
			}
			toks = append(toks, token{tokVariable, string(rs[start+1 : i]), start})
		case isIdentStart(r):
			start := i
			for i < len(rs) && isIdentPart(rs[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, string(rs[start:i]), start})
		case strings.ContainsRune("+-*/", r):
			toks = append(toks, token{tokOp, string(r), i})
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected '%c' at offset %d in '%s'", ErrParse, r, i, text)
		}
	}
	return append(toks, token{tokEOF, "end of input", len(rs)}), nil
}

// lexQuoted reads a quoted run starting at rs[start], where a doubled quote
// escapes itself.  It returns the unquoted text and the index after the
// closing quote.
func lexQuoted(rs []rune, start int) (string, int, error) {
	q := rs[start]
	var sb strings.Builder
	for i := start + 1; i < len(rs); i++ {
		if rs[i] != q {
			sb.WriteRune(rs[i])
			continue
		}
		if i+1 < len(rs) && rs[i+1] == q {
			sb.WriteRune(q)
			i++
			continue
		}
		return sb.String(), i + 1, nil
	}
	return "", 0, fmt.Errorf("unterminated quote at offset %d", start)
}
