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

// Package metta is the entry point for embedding the evaluator: it
// ties together spaces, grounded operations, and the interpreter
// behind a small host-facing API.
package metta

import (
	"io"
	"os"

	"mettalang.org/go/internal/core/ground"
	"mettalang.org/go/internal/core/ground/wasmfn"
	"mettalang.org/go/internal/core/interp"
	"mettalang.org/go/internal/core/match"
	"mettalang.org/go/internal/core/space"
	"mettalang.org/go/metta/atom"
	"mettalang.org/go/metta/parser"
	"mettalang.org/go/metta/stats"
)

// An Option configures a Context.
type Option func(*Context)

// MaxDepth bounds the rewrite depth of a single evaluation
// alternative. The default is interp.DefaultMaxDepth.
func MaxDepth(n int) Option {
	return func(c *Context) { c.cfg.MaxDepth = n }
}

// LogEval enables a trace of evaluation steps at the given verbosity.
func LogEval(n int) Option {
	return func(c *Context) { c.cfg.LogEval = n }
}

// Stdout redirects println! output, which defaults to os.Stdout.
func Stdout(w io.Writer) Option {
	return func(c *Context) { c.out = w }
}

// A Context holds the grounded-operation registry and evaluator
// configuration shared by the spaces created from it. It is not safe
// for concurrent use.
type Context struct {
	reg  *ground.Registry
	cfg  interp.Config
	out  io.Writer
	wasm *wasmfn.Runtime
}

func NewContext(opts ...Option) *Context {
	c := &Context{out: os.Stdout}
	for _, o := range opts {
		o(c)
	}
	c.reg = ground.NewRegistry(c.out)
	return c
}

// RegisterFunc installs a host-provided operation under the given
// symbol name, available to all spaces of this context.
func (c *Context) RegisterFunc(name string, arity int, fn func(args []atom.Atom) ([]atom.Atom, error)) {
	c.reg.RegisterFunc(name, arity, fn)
}

// LoadWasm registers the eligible exported functions of the Wasm
// module at path as grounded operations, returning their names.
func (c *Context) LoadWasm(path string) ([]string, error) {
	if c.wasm == nil {
		c.wasm = wasmfn.New()
	}
	return c.wasm.LoadFile(c.reg, path)
}

// Close releases resources held by the context, such as loaded Wasm
// modules. The context must not be used afterwards.
func (c *Context) Close() error {
	if c.wasm != nil {
		return c.wasm.Close()
	}
	return nil
}

// A Space is an atom space bound to a context, with an interpreter
// evaluating against it. The reserved symbol &self denotes the space
// itself, so programs can pass their own space to space operations.
type Space struct {
	ctx    *Context
	space  *space.Space
	handle atom.Atom
	in     *interp.Interpreter
}

func (c *Context) NewSpace() *Space {
	s := space.New()
	return &Space{
		ctx:    c,
		space:  s,
		handle: space.NewHandle(s, "self"),
		in:     interp.New(s, c.cfg),
	}
}

// resolve substitutes registered operation symbols and &self, the way
// a tokenizer binds reserved names before evaluation.
func (s *Space) resolve(a atom.Atom) atom.Atom {
	return s.ctx.reg.Resolve(substituteSelf(a, s.handle))
}

func substituteSelf(a atom.Atom, handle atom.Atom) atom.Atom {
	switch x := a.(type) {
	case *atom.Symbol:
		if x.Name == "&self" {
			return handle
		}
	case *atom.Expression:
		changed := false
		elems := make([]atom.Atom, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = substituteSelf(e, handle)
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

// Add stores an atom, typically a fact or an (= pattern result) rule.
func (s *Space) Add(a atom.Atom) error {
	return s.space.Add(s.resolve(a))
}

// Remove removes one structurally equal atom, reporting whether a
// removal occurred.
func (s *Space) Remove(a atom.Atom) (bool, error) {
	return s.space.Remove(s.resolve(a))
}

// Replace substitutes one occurrence of old with new, reporting
// whether the replacement occurred. A failed replacement leaves the
// space untouched and does not add new.
func (s *Space) Replace(old, new atom.Atom) (bool, error) {
	return s.space.Replace(s.resolve(old), s.resolve(new))
}

// A Match pairs a stored atom with the bindings under which it matched
// a query pattern. Atom is the stored atom itself, so it can be handed
// back to Remove or Replace.
type Match struct {
	Atom     atom.Atom
	Bindings Bindings
}

// Bindings maps a pattern's variables to the subterms they matched.
type Bindings struct {
	b match.Bindings
}

// Lookup returns the atom bound to the pattern variable with the given
// name, without the $ prefix.
func (b Bindings) Lookup(name string) (atom.Atom, bool) {
	return b.b.Lookup(atom.NewVariable(name))
}

// Resolve substitutes bound variables in a, recursively. Unbound
// variables are left in place.
func (b Bindings) Resolve(a atom.Atom) atom.Atom { return b.b.Resolve(a) }

// Query returns a match for every stored atom that structurally
// matches the pattern, without evaluating anything. Unlike the match
// operation it exposes the bindings themselves rather than an
// instantiated template. The order of matches is unspecified.
func (s *Space) Query(pattern atom.Atom) ([]Match, error) {
	ms, err := s.space.Query(s.resolve(pattern))
	if err != nil {
		return nil, err
	}
	out := make([]Match, len(ms))
	for i, m := range ms {
		out[i] = Match{Atom: m.Atom, Bindings: Bindings{b: m.Bindings}}
	}
	return out, nil
}

// Len returns the number of stored atoms, counting multiplicity.
func (s *Space) Len() int { return s.space.Len() }

// Evaluate reduces a to its set of results. The order of results is
// unspecified.
func (s *Space) Evaluate(a atom.Atom) ([]atom.Atom, error) {
	return s.in.Evaluate(s.resolve(a))
}

// EvaluateString parses one atom from src and evaluates it.
func (s *Space) EvaluateString(src string) ([]atom.Atom, error) {
	a, err := parser.ParseAtom(src)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(a)
}

// A Directive records the results of one '!' statement of a program.
type Directive struct {
	Pos     parser.Position
	Input   atom.Atom
	Results []atom.Atom
}

// RunProgram parses and runs a program: plain statements are added to
// the space, '!' statements are evaluated in order. It returns the
// directive results. A failing directive stops the run.
func (s *Space) RunProgram(src string) ([]Directive, error) {
	stmts, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	var dirs []Directive
	for _, st := range stmts {
		if !st.Eval {
			if err := s.Add(st.Atom); err != nil {
				return dirs, err
			}
			continue
		}
		rs, err := s.Evaluate(st.Atom)
		if err != nil {
			return dirs, err
		}
		dirs = append(dirs, Directive{Pos: st.Pos, Input: st.Atom, Results: rs})
	}
	return dirs, nil
}

// Export returns every stored atom, for snapshotting. The order is
// unspecified.
func (s *Space) Export() []atom.Atom { return s.space.Export() }

// Import bulk-inserts atoms, for restoring a snapshot.
func (s *Space) Import(atoms []atom.Atom) error { return s.space.Import(atoms) }

// Stats returns evaluation counters accumulated by this space's
// interpreter.
func (s *Space) Stats() stats.Counts { return s.in.Stats() }
