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

// Package match implements structural unification of atoms and the
// binding sets it produces.
package match

import (
	"fmt"
	"sort"
	"strings"

	"mettalang.org/go/metta/atom"
)

type varKey struct {
	name string
	id   uint64
}

func keyOf(v *atom.Variable) varKey { return varKey{name: v.Name, id: v.ID} }

// Bindings is a mapping from variables to atoms. A Bindings value is
// immutable: Bind and Merge return new values and never modify their
// receiver. The zero value is the empty binding set.
type Bindings struct {
	m map[varKey]atom.Atom
}

// New returns an empty binding set.
func New() Bindings { return Bindings{} }

func (b Bindings) Len() int { return len(b.m) }

// Lookup returns the atom bound to v, if any.
func (b Bindings) Lookup(v *atom.Variable) (atom.Atom, bool) {
	a, ok := b.m[keyOf(v)]
	return a, ok
}

func (b Bindings) clone() Bindings {
	m := make(map[varKey]atom.Atom, len(b.m)+1)
	for k, v := range b.m {
		m[k] = v
	}
	return Bindings{m: m}
}

// Bind returns b extended with v -> a. It fails if v is already bound
// to a different atom: a binding set is consistent iff no variable maps
// to two different atoms.
func (b Bindings) Bind(v *atom.Variable, a atom.Atom) (Bindings, bool) {
	if old, ok := b.m[keyOf(v)]; ok {
		if atom.Equal(old, a) {
			return b, true
		}
		return Bindings{}, false
	}
	nb := b.clone()
	nb.m[keyOf(v)] = a
	return nb, true
}

// Merge combines two binding sets. It fails (returns false) if the sets
// are inconsistent with each other.
func (b Bindings) Merge(o Bindings) (Bindings, bool) {
	if len(o.m) == 0 {
		return b, true
	}
	if len(b.m) == 0 {
		return o, true
	}
	nb := b.clone()
	for k, v := range o.m {
		if old, ok := nb.m[k]; ok {
			if !atom.Equal(old, v) {
				return Bindings{}, false
			}
			continue
		}
		nb.m[k] = v
	}
	return Bindings{m: nb.m}, true
}

// Resolve substitutes bound variables in a, recursively, producing a
// new atom. Unbound variables are left in place. Resolution through a
// cyclic binding stops at the repeated variable instead of recursing
// forever; cyclic sets are expected to have been filtered by HasCycle
// before use.
func (b Bindings) Resolve(a atom.Atom) atom.Atom {
	if len(b.m) == 0 {
		return a
	}
	return b.resolve(a, map[varKey]bool{})
}

func (b Bindings) resolve(a atom.Atom, busy map[varKey]bool) atom.Atom {
	switch x := a.(type) {
	case *atom.Variable:
		k := keyOf(x)
		bound, ok := b.m[k]
		if !ok || busy[k] {
			return x
		}
		busy[k] = true
		r := b.resolve(bound, busy)
		delete(busy, k)
		return r
	case *atom.Expression:
		changed := false
		elems := make([]atom.Atom, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = b.resolve(e, busy)
			if elems[i] != e {
				changed = true
			}
		}
		if !changed {
			return x
		}
		return atom.NewExpression(elems...)
	}
	return a
}

// HasCycle reports whether some variable is transitively bound to an
// atom containing itself.
func (b Bindings) HasCycle() bool {
	for k := range b.m {
		if b.reaches(k, b.m[k], map[varKey]bool{}) {
			return true
		}
	}
	return false
}

func (b Bindings) reaches(target varKey, a atom.Atom, seen map[varKey]bool) bool {
	switch x := a.(type) {
	case *atom.Variable:
		k := keyOf(x)
		if k == target {
			return true
		}
		if seen[k] {
			return false
		}
		seen[k] = true
		if bound, ok := b.m[k]; ok {
			return b.reaches(target, bound, seen)
		}
	case *atom.Expression:
		for _, e := range x.Elems {
			if b.reaches(target, e, seen) {
				return true
			}
		}
	}
	return false
}

// String renders the binding set with keys in sorted order, for
// debugging and test output.
func (b Bindings) String() string {
	keys := make([]varKey, 0, len(b.m))
	for k := range b.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].id < keys[j].id
	})
	var s strings.Builder
	s.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			s.WriteString(", ")
		}
		fmt.Fprintf(&s, "$%s <- %v", k.name, b.m[k])
	}
	s.WriteString("}")
	return s.String()
}
