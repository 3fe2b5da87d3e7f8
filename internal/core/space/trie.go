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

package space

import "mettalang.org/go/metta/atom"

// The index is a prefix trie over flattened atom shapes. An atom is
// serialized to a token path in pre-order: a symbol or grounded value
// is one token, an expression is an arity-carrying token followed by
// the paths of its children. All variables map to a single wildcard
// token; alpha-distinction is irrelevant for indexing.
//
// The trie is conservative: descent prunes branches that cannot match,
// and the full matcher runs on every surviving leaf. False positives
// are acceptable, missed atoms are not.

type tokenKind uint8

const (
	tokSymbol tokenKind = iota
	tokVariable
	tokGrounded
	tokExpr
)

type token struct {
	kind  tokenKind
	text  string // symbol name or grounded key; empty otherwise
	arity int    // tokExpr only
}

var wildcard = token{kind: tokVariable}

func tokenize(a atom.Atom, dst []token) []token {
	switch x := a.(type) {
	case *atom.Symbol:
		return append(dst, token{kind: tokSymbol, text: x.Name})
	case *atom.Variable:
		return append(dst, wildcard)
	case *atom.Grounded:
		// The key need not be injective: collisions only cost an
		// extra matcher call on the leaf.
		return append(dst, token{kind: tokGrounded, text: x.Value.TypeName() + "/" + x.Value.String()})
	case *atom.Expression:
		dst = append(dst, token{kind: tokExpr, arity: len(x.Elems)})
		for _, e := range x.Elems {
			dst = tokenize(e, dst)
		}
		return dst
	}
	panic("space: unknown atom kind")
}

// skipTokens returns the index just past the single whole atom whose
// path starts at i.
func skipTokens(toks []token, i int) int {
	pending := 1
	for pending > 0 {
		t := toks[i]
		i++
		pending--
		if t.kind == tokExpr {
			pending += t.arity
		}
	}
	return i
}

type entry struct {
	atom  atom.Atom
	count int // multiset multiplicity
}

type trieNode struct {
	children map[token]*trieNode
	leaves   []entry // atoms whose token path terminates here
}

func (n *trieNode) child(t token, create bool) *trieNode {
	if c, ok := n.children[t]; ok {
		return c
	}
	if !create {
		return nil
	}
	if n.children == nil {
		n.children = map[token]*trieNode{}
	}
	c := &trieNode{}
	n.children[t] = c
	return c
}

func (n *trieNode) insert(toks []token, a atom.Atom) {
	for _, t := range toks {
		n = n.child(t, true)
	}
	for i := range n.leaves {
		if atom.Equal(n.leaves[i].atom, a) {
			n.leaves[i].count++
			return
		}
	}
	n.leaves = append(n.leaves, entry{atom: a, count: 1})
}

// remove deletes one occurrence of a. It reports whether an occurrence
// was found, and whether this subtree became empty and can be pruned.
func (n *trieNode) remove(toks []token, a atom.Atom) (removed, empty bool) {
	if len(toks) == 0 {
		for i := range n.leaves {
			if atom.Equal(n.leaves[i].atom, a) {
				n.leaves[i].count--
				if n.leaves[i].count == 0 {
					n.leaves = append(n.leaves[:i], n.leaves[i+1:]...)
				}
				removed = true
				break
			}
		}
		return removed, len(n.leaves) == 0 && len(n.children) == 0
	}
	c := n.child(toks[0], false)
	if c == nil {
		return false, false
	}
	removed, childEmpty := c.remove(toks[1:], a)
	if childEmpty {
		delete(n.children, toks[0])
	}
	return removed, removed && len(n.leaves) == 0 && len(n.children) == 0
}

// search visits every node that may hold an atom matching the pattern
// token path starting at i.
func (n *trieNode) search(toks []token, i int, visit func(*trieNode)) {
	if i == len(toks) {
		visit(n)
		return
	}
	t := toks[i]
	if t.kind == tokVariable {
		// A pattern variable spans one whole stored atom.
		n.skipAtom(1, func(m *trieNode) {
			m.search(toks, i+1, visit)
		})
		return
	}
	if c := n.child(t, false); c != nil {
		c.search(toks, i+1, visit)
	}
	// A stored variable matches one whole pattern atom.
	if c := n.child(wildcard, false); c != nil {
		c.search(toks, skipTokens(toks, i), visit)
	}
}

// skipAtom visits every node reachable by consuming exactly count
// whole stored atoms from n.
func (n *trieNode) skipAtom(count int, visit func(*trieNode)) {
	if count == 0 {
		visit(n)
		return
	}
	for t, c := range n.children {
		if t.kind == tokExpr {
			c.skipAtom(count-1+t.arity, visit)
		} else {
			c.skipAtom(count-1, visit)
		}
	}
}

// walk visits every stored entry in trie-traversal order. The order
// is unspecified and callers must not rely on it.
func (n *trieNode) walk(visit func(entry)) {
	for _, e := range n.leaves {
		visit(e)
	}
	for _, c := range n.children {
		c.walk(visit)
	}
}
