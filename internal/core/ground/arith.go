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
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"mettalang.org/go/metta/atom"
)

// numContext is the decimal context for all arithmetic. 34 digits of
// precision matches IEEE 754-2008 decimal128.
var numContext = apd.BaseContext.WithPrecision(34)

func numArgs(args []atom.Atom) (x, y *apd.Decimal, err error) {
	x, ok := atom.NumberValue(args[0])
	if !ok {
		return nil, nil, ErrNotApplicable
	}
	y, ok = atom.NumberValue(args[1])
	if !ok {
		return nil, nil, ErrNotApplicable
	}
	return x, y, nil
}

func arithOp(name string, f func(d, x, y *apd.Decimal) (apd.Condition, error)) *Op {
	return &Op{
		Name:  name,
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, y, err := numArgs(args)
			if err != nil {
				return nil, err
			}
			var d apd.Decimal
			if _, err := f(&d, x, y); err != nil {
				return nil, fmt.Errorf("%s: %v", name, err)
			}
			return []atom.Atom{atom.NewNumber(&d)}, nil
		},
	}
}

func compareOp(name string, ok func(cmp int) bool) *Op {
	return &Op{
		Name:  name,
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, y, err := numArgs(args)
			if err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewBool(ok(x.Cmp(y)))}, nil
		},
	}
}

func boolArg(a atom.Atom) (bool, error) {
	b, ok := atom.BoolValue(a)
	if !ok {
		return false, ErrNotApplicable
	}
	return b, nil
}

func (r *Registry) registerStock() {
	r.Register(arithOp("+", numContext.Add))
	r.Register(arithOp("-", numContext.Sub))
	r.Register(arithOp("*", numContext.Mul))
	r.Register(&Op{
		Name:  "/",
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, y, err := numArgs(args)
			if err != nil {
				return nil, err
			}
			if y.IsZero() {
				return nil, fmt.Errorf("division by zero")
			}
			var d apd.Decimal
			if _, err := numContext.Quo(&d, x, y); err != nil {
				return nil, fmt.Errorf("/: %v", err)
			}
			return []atom.Atom{atom.NewNumber(&d)}, nil
		},
	})
	r.Register(&Op{
		Name:  "%",
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, y, err := numArgs(args)
			if err != nil {
				return nil, err
			}
			if y.IsZero() {
				return nil, fmt.Errorf("division by zero")
			}
			var d apd.Decimal
			if _, err := numContext.Rem(&d, x, y); err != nil {
				return nil, fmt.Errorf("%%: %v", err)
			}
			return []atom.Atom{atom.NewNumber(&d)}, nil
		},
	})

	r.Register(compareOp("<", func(c int) bool { return c < 0 }))
	r.Register(compareOp("<=", func(c int) bool { return c <= 0 }))
	r.Register(compareOp(">", func(c int) bool { return c > 0 }))
	r.Register(compareOp(">=", func(c int) bool { return c >= 0 }))

	// == is structural equality over any pair of atoms, not just
	// numbers.
	r.Register(&Op{
		Name:  "==",
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			return []atom.Atom{atom.NewBool(atom.Equal(args[0], args[1]))}, nil
		},
	})

	r.Register(&Op{
		Name:  "not",
		Arity: 1,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			b, err := boolArg(args[0])
			if err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewBool(!b)}, nil
		},
	})
	r.Register(&Op{
		Name:  "and",
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, err := boolArg(args[0])
			if err != nil {
				return nil, err
			}
			y, err := boolArg(args[1])
			if err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewBool(x && y)}, nil
		},
	})
	r.Register(&Op{
		Name:  "or",
		Arity: 2,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			x, err := boolArg(args[0])
			if err != nil {
				return nil, err
			}
			y, err := boolArg(args[1])
			if err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewBool(x || y)}, nil
		},
	})

	// (error <atom> <why>) constructs the reserved Error expression.
	r.Register(&Op{
		Name:  "error",
		Arity: 2,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			return []atom.Atom{atom.NewError(args[0], args[1])}, nil
		},
	})

	r.Register(&Op{
		Name:  "println!",
		Arity: 1,
		Eager: true,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			if r.out != nil {
				fmt.Fprintln(r.out, args[0])
			}
			return []atom.Atom{atom.NewExpression()}, nil
		},
	})

	r.registerSpaceOps()
}
