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

// Package atom defines the value type of the language: symbols,
// variables, expressions, and grounded values.
//
// Atoms are immutable once constructed. All transformations produce new
// atoms; an atom may be shared freely between rules, space entries, and
// in-flight evaluation state.
package atom

import (
	"strings"
	"sync/atomic"
)

// An Atom is any node in the term language.
type Atom interface {
	Kind() Kind
	String() string
	atomNode() // enforce internal.
}

// A Symbol is a plain named constant. Two symbols are equal iff their
// names are equal.
type Symbol struct {
	Name string
}

func NewSymbol(name string) *Symbol { return &Symbol{Name: name} }

func (x *Symbol) Kind() Kind     { return SymbolKind }
func (x *Symbol) String() string { return x.Name }

// A Variable is a named placeholder. Variables are alpha-distinguished
// by ID: two variables with the same name but different IDs are
// distinct. ID 0 is reserved for variables as written in source text;
// renamed copies carry a generated nonzero ID.
type Variable struct {
	Name string
	ID   uint64
}

func NewVariable(name string) *Variable { return &Variable{Name: name} }

var varID atomic.Uint64

// FreshVariable returns a variable with the given name and a globally
// unique ID, distinct from any other variable in the process.
func FreshVariable(name string) *Variable {
	return &Variable{Name: name, ID: varID.Add(1)}
}

func (x *Variable) Kind() Kind     { return VariableKind }
func (x *Variable) String() string { return "$" + x.Name }

// An Expression is an ordered sequence of child atoms.
type Expression struct {
	Elems []Atom
}

func NewExpression(elems ...Atom) *Expression { return &Expression{Elems: elems} }

func (x *Expression) Kind() Kind { return ExpressionKind }

func (x *Expression) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range x.Elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Head returns the first child, or nil for the empty expression.
func (x *Expression) Head() Atom {
	if len(x.Elems) == 0 {
		return nil
	}
	return x.Elems[0]
}

// Args returns the children after the head.
func (x *Expression) Args() []Atom {
	if len(x.Elems) == 0 {
		return nil
	}
	return x.Elems[1:]
}

// A Value is an externally implemented value embedded in an atom. It
// carries its own equality and printed form.
type Value interface {
	TypeName() string
	Equal(Value) bool
	String() string
}

// A Grounded atom wraps a Value. Grounded atoms never match
// structurally against expressions; two grounded atoms match iff their
// values have the same type and are equal by that type's equality.
type Grounded struct {
	Value Value
}

func NewGrounded(v Value) *Grounded { return &Grounded{Value: v} }

func (x *Grounded) Kind() Kind     { return GroundedKind }
func (x *Grounded) String() string { return x.Value.String() }

func (*Symbol) atomNode()     {}
func (*Variable) atomNode()   {}
func (*Expression) atomNode() {}
func (*Grounded) atomNode()   {}

// Equal reports whether a and b are structurally equal. Variables are
// equal iff both name and ID are equal.
func Equal(a, b Atom) bool {
	switch x := a.(type) {
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name && x.ID == y.ID
	case *Expression:
		y, ok := b.(*Expression)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i, e := range x.Elems {
			if !Equal(e, y.Elems[i]) {
				return false
			}
		}
		return true
	case *Grounded:
		y, ok := b.(*Grounded)
		return ok && x.Value.TypeName() == y.Value.TypeName() && x.Value.Equal(y.Value)
	}
	return false
}
