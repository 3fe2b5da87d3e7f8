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

// Package space implements the atom space: a mutable collection of
// atoms backed by a structural trie index, supporting insert, remove,
// replace, and pattern query with observer notification.
package space

import (
	"errors"

	"github.com/google/uuid"

	"mettalang.org/go/internal/core/match"
	"mettalang.org/go/metta/atom"
)

// ErrBusy is returned when a mutation is attempted while the space is
// in the middle of another operation, such as from an observer callback
// or a grounded equality hook reached during a query. The space is a
// single-writer structure; reentrant mutation is a caller error, but a
// recoverable one.
var ErrBusy = errors.New("space: mutation during in-progress operation")

// An EventKind discriminates space mutation events.
type EventKind uint8

const (
	EventAdd EventKind = iota
	EventRemove
	EventReplace
)

// An Event describes one successful mutation.
type Event struct {
	Kind  EventKind
	Space uuid.UUID
	Atom  atom.Atom // the added, removed, or new atom
	Old   atom.Atom // EventReplace only
}

// An Observer is notified synchronously, in registration order, on
// every successful mutation, before the mutating call returns.
// Observers must not mutate the space they observe; doing so returns
// ErrBusy.
type Observer interface {
	SpaceChanged(Event)
}

// A Match pairs a stored atom with the bindings under which it matches
// a query pattern. Atom is the stored atom itself, so it can be handed
// back to Remove or Replace; the bindings are over the pattern's
// variables, with any variables of the stored atom freshly renamed.
type Match struct {
	Atom     atom.Atom
	Bindings match.Bindings
}

// A Space is a mutable, queryable store of atoms and rewrite rules.
// It is not safe for concurrent use; a single logical thread of
// control is assumed, and the space boundary is the natural
// synchronization point for any multi-threaded extension.
type Space struct {
	id        uuid.UUID
	root      trieNode
	size      int
	observers []Observer
	busy      bool
}

func New() *Space {
	return &Space{id: uuid.New()}
}

// ID returns the identity of the space, fixed at creation.
func (s *Space) ID() uuid.UUID { return s.id }

// Len returns the number of stored atoms, counting multiplicity.
func (s *Space) Len() int { return s.size }

// Register adds an observer. Observers are notified in registration
// order.
func (s *Space) Register(o Observer) {
	s.observers = append(s.observers, o)
}

// Unregister removes a previously registered observer.
func (s *Space) Unregister(o Observer) {
	for i, reg := range s.observers {
		if reg == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

func (s *Space) notify(ev Event) {
	ev.Space = s.id
	for _, o := range s.observers {
		o.SpaceChanged(ev)
	}
}

// Add inserts an atom. Adding a structurally equal atom again raises
// its multiplicity but does not change query answers.
func (s *Space) Add(a atom.Atom) error {
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	s.root.insert(tokenize(a, nil), a)
	s.size++
	s.notify(Event{Kind: EventAdd, Atom: a})
	return nil
}

// Remove removes exactly one structurally equal atom, if present, and
// reports whether a removal occurred. Observers are notified only on
// success.
func (s *Space) Remove(a atom.Atom) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	removed, _ := s.root.remove(tokenize(a, nil), a)
	if removed {
		s.size--
		s.notify(Event{Kind: EventRemove, Atom: a})
	}
	return removed, nil
}

// Replace substitutes one occurrence of old with new as a single index
// operation, and reports whether the replacement occurred. It is not
// atomic with respect to observers: they see one Replace event, but a
// failed removal leaves the space untouched and new is not added.
func (s *Space) Replace(old, new atom.Atom) (bool, error) {
	if s.busy {
		return false, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	removed, _ := s.root.remove(tokenize(old, nil), old)
	if !removed {
		return false, nil
	}
	s.root.insert(tokenize(new, nil), new)
	s.notify(Event{Kind: EventReplace, Atom: new, Old: old})
	return true, nil
}

// Query returns a match for every stored atom that structurally
// matches the pattern. The pattern may contain variables; so may
// stored atoms, whose variables are freshly renamed before matching so
// that rule instantiations cannot capture each other.
//
// The result order is unspecified and must not be relied upon. The
// result is a point-in-time snapshot: it is fully materialized before
// Query returns, and later mutations do not alter it.
func (s *Space) Query(pattern atom.Atom) ([]Match, error) {
	if s.busy {
		return nil, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	var out []Match
	s.root.search(tokenize(pattern, nil), 0, func(n *trieNode) {
		for _, e := range n.leaves {
			stored := match.RenameVars(e.atom)
			for _, b := range match.Unify(pattern, stored) {
				out = append(out, Match{Atom: e.atom, Bindings: b})
			}
		}
	})
	return out, nil
}

// Export returns every stored atom, multiplicities expanded, in
// internal traversal order. Together with Import it is the contract
// surface for snapshot and restore; this package knows nothing about
// file formats.
func (s *Space) Export() []atom.Atom {
	out := make([]atom.Atom, 0, s.size)
	s.root.walk(func(e entry) {
		for i := 0; i < e.count; i++ {
			out = append(out, e.atom)
		}
	})
	return out
}

// Import bulk-inserts atoms. Observers are not notified: a restore is
// not a mutation of live state.
func (s *Space) Import(atoms []atom.Atom) error {
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	for _, a := range atoms {
		s.root.insert(tokenize(a, nil), a)
		s.size++
	}
	return nil
}
