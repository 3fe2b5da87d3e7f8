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

import (
	"sort"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"mettalang.org/go/metta/atom"
)

func sym(s string) atom.Atom         { return atom.NewSymbol(s) }
func v(s string) *atom.Variable      { return atom.NewVariable(s) }
func expr(as ...atom.Atom) atom.Atom { return atom.NewExpression(as...) }

// queryStrings runs a query and returns the matched atoms' printed
// forms, sorted. Query order is unspecified by contract, so tests only
// ever compare as sets.
func queryStrings(t *testing.T, s *Space, pattern atom.Atom) []string {
	t.Helper()
	ms, err := s.Query(pattern)
	qt.Assert(t, qt.IsNil(err))
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Atom.String()
	}
	sort.Strings(out)
	return out
}

func TestAddQueryRoundTrip(t *testing.T) {
	s := New()
	a := expr(sym("fact"), sym("sky"), sym("blue"))
	qt.Assert(t, qt.IsNil(s.Add(a)))

	got := queryStrings(t, s, expr(sym("fact"), sym("sky"), v("x")))
	qt.Assert(t, qt.DeepEquals(got, []string{"(fact sky blue)"}))

	// The bindings identify the matched fragment.
	ms, err := s.Query(expr(sym("fact"), sym("sky"), v("x")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ms, 1))
	bound, ok := ms[0].Bindings.Lookup(v("x"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(atom.Equal(bound, sym("blue"))))
}

func TestQueryPrunesByHead(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.Add(expr(sym("a"), sym("one")))))
	qt.Assert(t, qt.IsNil(s.Add(expr(sym("a"), sym("two")))))
	qt.Assert(t, qt.IsNil(s.Add(expr(sym("b"), sym("one")))))
	qt.Assert(t, qt.IsNil(s.Add(sym("loose"))))

	got := queryStrings(t, s, expr(sym("a"), v("x")))
	qt.Assert(t, qt.DeepEquals(got, []string{"(a one)", "(a two)"}))

	got = queryStrings(t, s, v("anything"))
	qt.Assert(t, qt.DeepEquals(got, []string{"(a one)", "(a two)", "(b one)", "loose"}))
}

func TestQueryStoredVariables(t *testing.T) {
	s := New()
	// A stored rule head with a variable must be found by a concrete
	// pattern.
	qt.Assert(t, qt.IsNil(s.Add(expr(sym("="), expr(sym("double"), v("x")),
		expr(sym("*"), v("x"), atom.NewInt(2))))))

	ms, err := s.Query(expr(sym("="), expr(sym("double"), atom.NewInt(7)), v("out")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ms, 1))
	out, ok := ms[0].Bindings.Lookup(v("out"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ms[0].Bindings.Resolve(out).String(), "(* 7 2)"))
}

func TestQueryRenamesStoredVariables(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.Add(expr(sym("p"), v("x")))))

	// Two successive queries must not leak the same rule variable:
	// matching against $x from the pattern side must succeed even if
	// the pattern reuses the stored variable's name.
	for i := 0; i < 2; i++ {
		ms, err := s.Query(expr(sym("p"), v("x")))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.HasLen(ms, 1))
	}
}

func TestQueryReturnsStoredAtom(t *testing.T) {
	s := New()
	rule := expr(sym("p"), v("x"))
	qt.Assert(t, qt.IsNil(s.Add(rule)))

	ms, err := s.Query(expr(sym("p"), sym("a")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ms, 1))
	// The match carries the atom as stored, not its renamed copy, so it
	// can be fed back to Remove and Replace.
	qt.Assert(t, qt.IsTrue(atom.Equal(ms[0].Atom, rule)))

	removed, err := s.Remove(ms[0].Atom)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(removed))
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestAddIdempotentForQueries(t *testing.T) {
	s := New()
	a := expr(sym("f"), sym("a"))
	qt.Assert(t, qt.IsNil(s.Add(a)))
	qt.Assert(t, qt.IsNil(s.Add(a)))
	qt.Assert(t, qt.Equals(s.Len(), 2))

	// Duplicates are stored, but query answers do not multiply.
	got := queryStrings(t, s, expr(sym("f"), v("x")))
	qt.Assert(t, qt.DeepEquals(got, []string{"(f a)"}))
}

func TestRemove(t *testing.T) {
	s := New()
	a := expr(sym("f"), sym("a"))
	qt.Assert(t, qt.IsNil(s.Add(a)))
	qt.Assert(t, qt.IsNil(s.Add(a)))

	ok, err := s.Remove(a)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
	// One occurrence remains.
	qt.Assert(t, qt.DeepEquals(queryStrings(t, s, expr(sym("f"), v("x"))), []string{"(f a)"}))

	ok, err = s.Remove(a)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(queryStrings(t, s, expr(sym("f"), v("x"))), 0))

	ok, err = s.Remove(a)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestReplace(t *testing.T) {
	s := New()
	old := expr(sym("counter"), atom.NewInt(1))
	qt.Assert(t, qt.IsNil(s.Add(old)))

	ok, err := s.Replace(old, expr(sym("counter"), atom.NewInt(2)))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(queryStrings(t, s, expr(sym("counter"), v("n"))),
		[]string{"(counter 2)"}))

	// Replacing a missing atom changes nothing and does not add new.
	ok, err = s.Replace(expr(sym("counter"), atom.NewInt(9)), expr(sym("counter"), atom.NewInt(3)))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.Equals(s.Len(), 1))
}

type recorder struct {
	name   string
	events *[]string
}

func (r *recorder) SpaceChanged(ev Event) {
	kind := map[EventKind]string{EventAdd: "add", EventRemove: "remove", EventReplace: "replace"}[ev.Kind]
	*r.events = append(*r.events, r.name+":"+kind+":"+ev.Atom.String())
}

func TestObserversInRegistrationOrder(t *testing.T) {
	s := New()
	var events []string
	s.Register(&recorder{name: "first", events: &events})
	s.Register(&recorder{name: "second", events: &events})

	qt.Assert(t, qt.IsNil(s.Add(sym("a"))))
	_, err := s.Remove(sym("a"))
	qt.Assert(t, qt.IsNil(err))
	// A failed removal must not notify.
	_, err = s.Remove(sym("a"))
	qt.Assert(t, qt.IsNil(err))

	want := []string{
		"first:add:a", "second:add:a",
		"first:remove:a", "second:remove:a",
	}
	qt.Assert(t, qt.CmpEquals(events, want, cmp.Options{}))
}

type mutatingObserver struct {
	s   *Space
	err error
}

func (m *mutatingObserver) SpaceChanged(Event) {
	m.err = m.s.Add(sym("sneaky"))
}

func TestObserverMutationIsBusyError(t *testing.T) {
	s := New()
	m := &mutatingObserver{s: s}
	s.Register(m)

	qt.Assert(t, qt.IsNil(s.Add(sym("a"))))
	qt.Assert(t, qt.ErrorIs(m.err, ErrBusy))
	// The reentrant add must not have gone through.
	qt.Assert(t, qt.Equals(s.Len(), 1))
}

func TestExportImport(t *testing.T) {
	s := New()
	atoms := []atom.Atom{
		sym("a"),
		expr(sym("f"), sym("b")),
		expr(sym("f"), sym("b")), // duplicate survives the round trip
		atom.NewInt(42),
	}
	for _, a := range atoms {
		qt.Assert(t, qt.IsNil(s.Add(a)))
	}

	dump := s.Export()
	qt.Assert(t, qt.HasLen(dump, 4))

	restored := New()
	qt.Assert(t, qt.IsNil(restored.Import(dump)))
	qt.Assert(t, qt.Equals(restored.Len(), 4))
	qt.Assert(t, qt.DeepEquals(
		queryStrings(t, restored, v("x")),
		queryStrings(t, s, v("x"))))
}

func TestHandle(t *testing.T) {
	s1, s2 := New(), New()
	h1 := NewHandle(s1, "self")
	h1b := NewHandle(s1, "other-name")
	h2 := NewHandle(s2, "self")

	qt.Assert(t, qt.Equals(h1.String(), "&self"))
	// Equality follows the referenced space, not the name.
	qt.Assert(t, qt.IsTrue(atom.Equal(h1, h1b)))
	qt.Assert(t, qt.IsFalse(atom.Equal(h1, h2)))

	got, ok := HandleValue(h1)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, s1))

	_, ok = HandleValue(sym("x"))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestGroundedNeverMatchesExpression(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.Add(atom.NewInt(1))))
	qt.Assert(t, qt.IsNil(s.Add(expr(atom.NewInt(1)))))

	got := queryStrings(t, s, atom.NewInt(1))
	qt.Assert(t, qt.DeepEquals(got, []string{"1"}))
	got = queryStrings(t, s, expr(v("x")))
	qt.Assert(t, qt.DeepEquals(got, []string{"(1)"}))
}
