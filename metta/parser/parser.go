// Copyright 2026 The MeTTa-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser converts source text to atoms. The surface syntax is
// s-expressions: symbols, $-prefixed variables, numeric and quoted
// string literals, True and False, and parenthesized expressions.
// Comments run from ';' to end of line.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"mettalang.org/go/metta/atom"
)

// ErrIncomplete reports source text that ends inside an expression or
// string literal. An interactive front end can treat it as a prompt to
// read more input rather than as a syntax error.
var ErrIncomplete = errors.New("incomplete input")

// IsIncomplete reports whether err indicates truncated input.
func IsIncomplete(err error) bool { return errors.Is(err, ErrIncomplete) }

// A Position is a line:column location in the source, 1-based.
type Position struct {
	Line, Col int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// A Statement is one top-level form of a program. Forms prefixed with
// '!' are evaluation directives; unprefixed forms are facts to be added
// to the space.
type Statement struct {
	Atom atom.Atom
	Eval bool
	Pos  Position
}

type parser struct {
	src  string
	off  int
	line int
	col  int
}

func newParser(src string) *parser {
	return &parser{src: src, line: 1, col: 1}
}

// ParseAtom parses exactly one atom from src. Trailing content other
// than whitespace and comments is an error.
func ParseAtom(src string) (atom.Atom, error) {
	p := newParser(src)
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("%v: %w", p.pos(), ErrIncomplete)
	}
	a, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, fmt.Errorf("%v: unexpected input after atom", p.pos())
	}
	return a, nil
}

// ParseProgram parses a sequence of top-level statements.
func ParseProgram(src string) ([]Statement, error) {
	p := newParser(src)
	var stmts []Statement
	for {
		p.skipSpace()
		if p.eof() {
			return stmts, nil
		}
		pos := p.pos()
		eval := false
		if p.peek() == '!' {
			p.next()
			eval = true
			p.skipSpace()
			if p.eof() {
				return nil, fmt.Errorf("%v: %w", pos, ErrIncomplete)
			}
		}
		a, err := p.parse()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, Statement{Atom: a, Eval: eval, Pos: pos})
	}
}

func (p *parser) eof() bool { return p.off >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.off] }

func (p *parser) next() byte {
	c := p.src[p.off]
	p.off++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return c
}

func (p *parser) pos() Position { return Position{Line: p.line, Col: p.col} }

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		case ';':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

func (p *parser) parse() (atom.Atom, error) {
	pos := p.pos()
	switch c := p.peek(); c {
	case '(':
		return p.parseExpression()
	case ')':
		return nil, fmt.Errorf("%v: unexpected ')'", pos)
	case '"':
		return p.parseString()
	case '$':
		p.next()
		name := p.scanToken()
		if name == "" {
			return nil, fmt.Errorf("%v: '$' must be followed by a variable name", pos)
		}
		return atom.NewVariable(name), nil
	default:
		tok := p.scanToken()
		return p.classify(tok, pos)
	}
}

func (p *parser) parseExpression() (atom.Atom, error) {
	open := p.pos()
	p.next() // consume '('
	var elems []atom.Atom
	for {
		p.skipSpace()
		if p.eof() {
			return nil, fmt.Errorf("%v: expression opened here is never closed: %w", open, ErrIncomplete)
		}
		if p.peek() == ')' {
			p.next()
			return atom.NewExpression(elems...), nil
		}
		a, err := p.parse()
		if err != nil {
			return nil, err
		}
		elems = append(elems, a)
	}
}

func (p *parser) parseString() (atom.Atom, error) {
	open := p.pos()
	p.next() // consume '"'
	var b strings.Builder
	for {
		if p.eof() {
			return nil, fmt.Errorf("%v: string opened here is never closed: %w", open, ErrIncomplete)
		}
		c := p.next()
		switch c {
		case '"':
			return atom.NewString(b.String()), nil
		case '\\':
			if p.eof() {
				return nil, fmt.Errorf("%v: string opened here is never closed: %w", open, ErrIncomplete)
			}
			esc := p.next()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteByte(esc)
			default:
				return nil, fmt.Errorf("%v: unknown escape '\\%c'", p.pos(), esc)
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (p *parser) scanToken() string {
	start := p.off
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n', '(', ')', ';', '"':
			return p.src[start:p.off]
		}
		p.next()
	}
	return p.src[start:p.off]
}

// classify decides whether a bare token is a literal or a symbol. A
// token that looks numeric but does not parse, like 1.2.3, is an
// error rather than a symbol.
func (p *parser) classify(tok string, pos Position) (atom.Atom, error) {
	switch tok {
	case "True":
		return atom.NewBool(true), nil
	case "False":
		return atom.NewBool(false), nil
	}
	if looksNumeric(tok) {
		n, err := atom.ParseNumber(tok)
		if err != nil {
			return nil, fmt.Errorf("%v: %v", pos, err)
		}
		return n, nil
	}
	return atom.NewSymbol(tok), nil
}

func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '+' || tok[0] == '-' {
		if len(tok) == 1 {
			return false
		}
		i = 1
	}
	return tok[i] >= '0' && tok[i] <= '9'
}
