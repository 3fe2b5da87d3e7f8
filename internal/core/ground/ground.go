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

// Package ground implements grounded operations: callable behaviors
// that atoms of grounded kind may invoke, and the registry that binds
// them to reserved symbol names.
package ground

import (
	"errors"
	"fmt"
	"io"

	"mettalang.org/go/metta/atom"
)

// A Function is a grounded value that can be applied to argument
// atoms. A call returns zero or more result atoms; the interpreter
// pushes each as a pending alternative.
type Function interface {
	atom.Value
	Call(args []atom.Atom) ([]atom.Atom, error)
}

// ErrNotApplicable is returned by a Function that cannot reduce its
// arguments. The interpreter treats the call as a stuck term and
// yields it unchanged; it is not an error surfaced to user code.
var ErrNotApplicable = errors.New("ground: operation not applicable")

// Variadic marks an operation that accepts any number of arguments.
const Variadic = -1

// An Op is a named grounded operation backed by a native function.
type Op struct {
	Name  string
	Arity int // number of arguments, or Variadic

	// Eager declares applicative argument semantics: the interpreter
	// fully evaluates reducible arguments before invoking the
	// operation. Non-eager operations receive their arguments
	// unevaluated, per normal-order semantics.
	Eager bool

	Fn func(args []atom.Atom) ([]atom.Atom, error)
}

func (o *Op) TypeName() string { return "Function" }
func (o *Op) String() string   { return o.Name }

// Equal is identity: every registered operation is its own value.
func (o *Op) Equal(v atom.Value) bool {
	p, ok := v.(*Op)
	return ok && p == o
}

func (o *Op) Call(args []atom.Atom) ([]atom.Atom, error) {
	if o.Arity != Variadic && len(args) != o.Arity {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", o.Name, o.Arity, len(args))
	}
	return o.Fn(args)
}

// A Registry maps reserved symbol names to grounded operations. The
// front end substitutes registered symbols with their operation atoms
// before evaluation, in the way a tokenizer would.
type Registry struct {
	ops map[string]*atom.Grounded
	out io.Writer // sink for println!
}

// NewRegistry returns a registry preloaded with the stock operations.
// out receives println! output.
func NewRegistry(out io.Writer) *Registry {
	r := &Registry{ops: map[string]*atom.Grounded{}, out: out}
	r.registerStock()
	return r
}

// Register installs op under its name, replacing any previous binding.
func (r *Registry) Register(op *Op) {
	r.ops[op.Name] = atom.NewGrounded(op)
}

// RegisterFunc installs a host-provided native function.
func (r *Registry) RegisterFunc(name string, arity int, fn func(args []atom.Atom) ([]atom.Atom, error)) {
	r.Register(&Op{Name: name, Arity: arity, Eager: true, Fn: fn})
}

// Lookup returns the operation atom registered under name.
func (r *Registry) Lookup(name string) (*atom.Grounded, bool) {
	g, ok := r.ops[name]
	return g, ok
}

// Resolve returns a copy of a in which every symbol registered in r is
// replaced by its operation atom. Unregistered symbols pass through.
func (r *Registry) Resolve(a atom.Atom) atom.Atom {
	switch x := a.(type) {
	case *atom.Symbol:
		if g, ok := r.ops[x.Name]; ok {
			return g
		}
	case *atom.Expression:
		changed := false
		elems := make([]atom.Atom, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = r.Resolve(e)
			if elems[i] != e {
				changed = true
			}
		}
		if changed {
			return atom.NewExpression(elems...)
		}
	}
	return a
}
