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

package ground

import (
	"sort"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"mettalang.org/go/internal/core/space"
	"mettalang.org/go/metta/atom"
)

func sym(s string) atom.Atom         { return atom.NewSymbol(s) }
func expr(as ...atom.Atom) atom.Atom { return atom.NewExpression(as...) }

// call invokes the named stock operation directly.
func call(t *testing.T, r *Registry, name string, args ...atom.Atom) ([]atom.Atom, error) {
	t.Helper()
	g, ok := r.Lookup(name)
	qt.Assert(t, qt.IsTrue(ok))
	return g.Value.(Function).Call(args)
}

func TestArithmetic(t *testing.T) {
	r := NewRegistry(nil)

	testCases := []struct {
		name string
		x, y int64
		want string
	}{
		{"+", 1, 2, "3"},
		{"-", 5, 7, "-2"},
		{"*", 3, 4, "12"},
		{"/", 9, 3, "3"},
		{"%", 7, 4, "3"},
	}
	for _, tc := range testCases {
		res, err := call(t, r, tc.name, atom.NewInt(tc.x), atom.NewInt(tc.y))
		qt.Assert(t, qt.IsNil(err))
		qt.Assert(t, qt.HasLen(res, 1))
		qt.Check(t, qt.Equals(res[0].String(), tc.want),
			qt.Commentf("(%s %d %d)", tc.name, tc.x, tc.y))
	}
}

func TestDivisionByZero(t *testing.T) {
	r := NewRegistry(nil)
	_, err := call(t, r, "/", atom.NewInt(1), atom.NewInt(0))
	qt.Assert(t, qt.ErrorMatches(err, "division by zero"))
}

func TestArithmeticNotApplicable(t *testing.T) {
	r := NewRegistry(nil)
	_, err := call(t, r, "+", atom.NewInt(1), sym("a"))
	qt.Assert(t, qt.ErrorIs(err, ErrNotApplicable))
}

func TestArityMismatch(t *testing.T) {
	r := NewRegistry(nil)
	_, err := call(t, r, "+", atom.NewInt(1))
	qt.Assert(t, qt.ErrorMatches(err, `\+ expects 2 arguments, got 1`))
}

func TestComparisonAndLogic(t *testing.T) {
	r := NewRegistry(nil)

	res, err := call(t, r, "<", atom.NewInt(1), atom.NewInt(2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "True"))

	res, err = call(t, r, ">=", atom.NewInt(1), atom.NewInt(2))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "False"))

	res, err = call(t, r, "==", expr(sym("f"), atom.NewInt(1)), expr(sym("f"), atom.NewInt(1)))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "True"))

	res, err = call(t, r, "and", atom.NewBool(true), atom.NewBool(false))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "False"))

	res, err = call(t, r, "not", atom.NewBool(false))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "True"))
}

func TestPrintln(t *testing.T) {
	var buf strings.Builder
	r := NewRegistry(&buf)
	res, err := call(t, r, "println!", atom.NewString("hello"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "()"))
	qt.Assert(t, qt.Equals(buf.String(), "\"hello\"\n"))
}

func TestErrorConstructor(t *testing.T) {
	r := NewRegistry(nil)
	res, err := call(t, r, "error", sym("x"), atom.NewString("boom"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(atom.IsError(res[0])))
	qt.Assert(t, qt.Equals(res[0].String(), `(Error x "boom")`))
}

func TestSpaceOps(t *testing.T) {
	r := NewRegistry(nil)
	s := space.New()
	h := space.NewHandle(s, "self")

	res, err := call(t, r, "add-atom", h, expr(sym("fact"), sym("a")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "()"))
	qt.Assert(t, qt.Equals(s.Len(), 1))

	// The atom argument is stored unevaluated.
	_, err = call(t, r, "add-atom", h, expr(sym("fact"), sym("b")))
	qt.Assert(t, qt.IsNil(err))

	res, err = call(t, r, "match", h, expr(sym("fact"), atom.NewVariable("x")), atom.NewVariable("x"))
	qt.Assert(t, qt.IsNil(err))
	got := make([]string, len(res))
	for i, a := range res {
		got[i] = a.String()
	}
	sort.Strings(got)
	qt.Assert(t, qt.DeepEquals(got, []string{"a", "b"}))

	res, err = call(t, r, "remove-atom", h, expr(sym("fact"), sym("a")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "True"))

	res, err = call(t, r, "remove-atom", h, expr(sym("fact"), sym("a")))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(res[0].String(), "False"))

	res, err = call(t, r, "get-atoms", h)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(res, 1))
	qt.Assert(t, qt.Equals(res[0].String(), "(fact b)"))

	// Not-a-space argument is a real error, not a silent failure.
	_, err = call(t, r, "add-atom", sym("nope"), sym("a"))
	qt.Assert(t, qt.ErrorMatches(err, "add-atom: first argument is not a space"))
}

func TestNewSpace(t *testing.T) {
	r := NewRegistry(nil)
	res, err := call(t, r, "new-space")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(res, 1))
	s, ok := space.HandleValue(res[0])
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s.Len(), 0))
}

func TestResolveSubstitutesRegisteredSymbols(t *testing.T) {
	r := NewRegistry(nil)
	in := expr(sym("+"), atom.NewInt(1), expr(sym("*"), atom.NewInt(2), atom.NewInt(3)))
	out := r.Resolve(in).(*atom.Expression)

	plus, ok := out.Elems[0].(*atom.Grounded)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(plus.String(), "+"))

	inner := out.Elems[2].(*atom.Expression)
	_, ok = inner.Elems[0].(*atom.Grounded)
	qt.Assert(t, qt.IsTrue(ok))

	// Unregistered symbols pass through untouched.
	passthrough := expr(sym("foo"), sym("bar"))
	qt.Assert(t, qt.Equals(r.Resolve(passthrough), atom.Atom(passthrough)))
}

func TestRegisterFunc(t *testing.T) {
	r := NewRegistry(nil)
	r.RegisterFunc("twice", 1, func(args []atom.Atom) ([]atom.Atom, error) {
		return []atom.Atom{args[0], args[0]}, nil
	})
	res, err := call(t, r, "twice", sym("a"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(res, 2))
}

func TestOpEquality(t *testing.T) {
	r := NewRegistry(nil)
	a, _ := r.Lookup("+")
	b, _ := r.Lookup("+")
	c, _ := r.Lookup("-")
	qt.Assert(t, qt.IsTrue(atom.Equal(a, b)))
	qt.Assert(t, qt.IsFalse(atom.Equal(a, c)))
}
