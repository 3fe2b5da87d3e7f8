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

package match

import "mettalang.org/go/metta/atom"

// Unify returns the binding sets under which a and b are structurally
// equal. Variables may occur on either side. A failed unification and a
// binding set containing a cycle both yield no results; neither is an
// error.
func Unify(a, b atom.Atom) []Bindings {
	return UnifyIn(a, b, New())
}

// UnifyIn unifies a and b under a set of pre-existing bindings. The
// returned sets extend base.
func UnifyIn(a, b atom.Atom, base Bindings) []Bindings {
	bnd, ok := unify(a, b, base)
	if !ok || bnd.HasCycle() {
		return nil
	}
	return []Bindings{bnd}
}

// deref follows variable bindings at the top level only. Substitution
// inside expressions happens lazily as unification descends.
func deref(a atom.Atom, b Bindings) atom.Atom {
	for {
		v, ok := a.(*atom.Variable)
		if !ok {
			return a
		}
		bound, ok := b.Lookup(v)
		if !ok || bound == a {
			return a
		}
		a = bound
	}
}

func unify(a, b atom.Atom, bnd Bindings) (Bindings, bool) {
	a = deref(a, bnd)
	b = deref(b, bnd)

	if av, ok := a.(*atom.Variable); ok {
		if bv, ok := b.(*atom.Variable); ok && keyOf(av) == keyOf(bv) {
			return bnd, true
		}
		return bnd.Bind(av, b)
	}
	if bv, ok := b.(*atom.Variable); ok {
		return bnd.Bind(bv, a)
	}

	switch x := a.(type) {
	case *atom.Symbol:
		y, ok := b.(*atom.Symbol)
		return bnd, ok && x.Name == y.Name
	case *atom.Grounded:
		y, ok := b.(*atom.Grounded)
		return bnd, ok && x.Value.TypeName() == y.Value.TypeName() && x.Value.Equal(y.Value)
	case *atom.Expression:
		y, ok := b.(*atom.Expression)
		if !ok || len(x.Elems) != len(y.Elems) {
			return bnd, false
		}
		for i := range x.Elems {
			var ok bool
			bnd, ok = unify(x.Elems[i], y.Elems[i], bnd)
			if !ok {
				return bnd, false
			}
		}
		return bnd, true
	}
	return bnd, false
}

// RenameVars returns a copy of a in which every variable carries a
// fresh uniqueness tag, consistently within a. Renaming stored atoms
// before matching keeps rule variables from being captured across
// repeated instantiations of the same rule.
func RenameVars(a atom.Atom) atom.Atom {
	return renameVars(a, map[varKey]*atom.Variable{})
}

func renameVars(a atom.Atom, seen map[varKey]*atom.Variable) atom.Atom {
	switch x := a.(type) {
	case *atom.Variable:
		k := keyOf(x)
		if v, ok := seen[k]; ok {
			return v
		}
		v := atom.FreshVariable(x.Name)
		seen[k] = v
		return v
	case *atom.Expression:
		changed := false
		elems := make([]atom.Atom, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = renameVars(e, seen)
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
