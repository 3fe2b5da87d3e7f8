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

// Package interp implements the non-deterministic evaluator: a
// worklist of pending alternatives reduced against the equality rules
// of a space and the grounded operations reachable from the term.
package interp

import (
	"errors"

	"mettalang.org/go/internal/core/ground"
	"mettalang.org/go/internal/core/match"
	"mettalang.org/go/internal/core/space"
	"mettalang.org/go/metta/atom"
	"mettalang.org/go/metta/stats"
)

// Order selects which pending alternative the evaluator processes
// next. For pure programs the set of results is the same under either
// order; programs that mutate a space can observe the difference.
type Order uint8

const (
	// LIFO explores the most recently produced alternative first
	// (depth-first). This is the default.
	LIFO Order = iota

	// FIFO explores alternatives in production order (breadth-first).
	FIFO
)

// DefaultMaxDepth bounds rule-rewrite nesting when Config.MaxDepth is
// left zero.
const DefaultMaxDepth = 512

// Config parameterizes an Interpreter.
type Config struct {
	// MaxDepth bounds the rewrite depth of a single alternative.
	// An alternative exceeding it is abandoned; its siblings continue.
	MaxDepth int

	// Order selects the worklist discipline.
	Order Order

	// LogEval enables a numbered trace of evaluation steps when > 0.
	LogEval int
}

// An Interpreter evaluates atoms against a space. It is not safe for
// concurrent use.
type Interpreter struct {
	space *space.Space
	cfg   Config

	stats stats.Counts
	logID int
	nest  int
}

func New(s *space.Space, cfg Config) *Interpreter {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return &Interpreter{space: s, cfg: cfg}
}

// Stats returns the counters accumulated over all Evaluate calls so
// far.
func (in *Interpreter) Stats() stats.Counts { return in.stats }

// An item is one pending alternative: a term to reduce under a set of
// accumulated bindings, at a given rewrite depth.
type item struct {
	a     atom.Atom
	bind  match.Bindings
	depth int
}

// Evaluate reduces a to its set of results. Each result is either a
// fully reduced value, a stuck term that no rule or operation could
// reduce further, or an (Error ...) expression. The order of results
// is unspecified.
//
// An error return indicates a failure of the evaluation machinery
// itself, such as evaluating from inside a space observer; errors in
// the evaluated program surface as Error atoms, not as Go errors.
func (in *Interpreter) Evaluate(a atom.Atom) ([]atom.Atom, error) {
	return in.run(item{a: a, bind: match.New()})
}

func (in *Interpreter) run(root item) ([]atom.Atom, error) {
	plan := []item{root}
	in.stats.Branches++

	var results []atom.Atom
	for len(plan) > 0 {
		var it item
		if in.cfg.Order == FIFO {
			it = plan[0]
			plan = plan[1:]
		} else {
			it = plan[len(plan)-1]
			plan = plan[:len(plan)-1]
		}
		in.stats.Steps++

		pending, finished, err := in.step(it)
		if err != nil {
			return nil, err
		}
		results = append(results, finished...)
		plan = append(plan, pending...)
		in.stats.Branches += int64(len(pending))
		if n := int64(len(plan)); n > in.stats.MaxPlan {
			in.stats.MaxPlan = n
		}
	}
	return results, nil
}

// step processes one alternative, returning new pending alternatives
// and finished results.
func (in *Interpreter) step(it item) (pending []item, finished []atom.Atom, err error) {
	if it.depth > in.cfg.MaxDepth {
		in.stats.DepthAborts++
		in.Logf("abandon (depth %d): %v", it.depth, it.a)
		return nil, nil, nil
	}

	a := it.bind.Resolve(it.a)
	in.Logf("step: %v", a)

	switch x := a.(type) {
	case *atom.Variable, *atom.Grounded:
		return nil, []atom.Atom{a}, nil

	case *atom.Symbol:
		return in.reduce(a, it)

	case *atom.Expression:
		if len(x.Elems) == 0 {
			return nil, []atom.Atom{x}, nil
		}
		if h, ok := x.Head().(*atom.Symbol); ok {
			switch h.Name {
			case "superpose":
				return in.stepSuperpose(x, it)
			case "collapse":
				return in.stepCollapse(x, it)
			case "chain":
				return in.stepChain(x, it)
			case "unify":
				return in.stepUnify(x, it)
			case "if":
				return in.stepIf(x, it)
			case "let":
				return in.stepLet(x, it)
			case "quote", atom.ErrorSymbol:
				return nil, []atom.Atom{x}, nil
			}
		}
		if g, ok := x.Head().(*atom.Grounded); ok {
			if fn, ok := g.Value.(ground.Function); ok {
				return in.call(x, fn, it)
			}
		}
		return in.reduce(x, it)
	}
	return nil, []atom.Atom{a}, nil
}

// reduce rewrites a by the equality rules of the space: each stored
// (= <lhs> <rhs>) whose lhs matches a contributes one alternative. A
// term no rule matches is its own result.
func (in *Interpreter) reduce(a atom.Atom, it item) ([]item, []atom.Atom, error) {
	res := atom.FreshVariable("r")
	q := atom.NewExpression(atom.NewSymbol("="), a, res)

	in.stats.RuleQueries++
	ms, err := in.space.Query(q)
	if err != nil {
		return nil, nil, err
	}
	if len(ms) == 0 {
		return nil, []atom.Atom{a}, nil
	}

	var pending []item
	for _, m := range ms {
		in.stats.RuleMatches++
		merged, ok := it.bind.Merge(m.Bindings)
		if !ok || merged.HasCycle() {
			continue
		}
		pending = append(pending, item{a: res, bind: merged, depth: it.depth + 1})
	}
	if len(pending) == 0 {
		return nil, []atom.Atom{a}, nil
	}
	return pending, nil, nil
}

// (superpose (a1 ... an)) forks into one alternative per element.
func (in *Interpreter) stepSuperpose(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 2 {
		return nil, []atom.Atom{atom.NewErrorf(x, "superpose expects one expression argument")}, nil
	}
	arg, ok := x.Elems[1].(*atom.Expression)
	if !ok {
		return nil, []atom.Atom{atom.NewErrorf(x, "superpose expects one expression argument")}, nil
	}
	pending := make([]item, 0, len(arg.Elems))
	for _, e := range arg.Elems {
		pending = append(pending, item{a: e, bind: it.bind, depth: it.depth + 1})
	}
	return pending, nil, nil
}

// (collapse e) evaluates e to completion and packages all its results
// as a single expression.
func (in *Interpreter) stepCollapse(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 2 {
		return nil, []atom.Atom{atom.NewErrorf(x, "collapse expects one argument")}, nil
	}
	rs, err := in.subEval(x.Elems[1], it)
	if err != nil {
		return nil, nil, err
	}
	return nil, []atom.Atom{atom.NewExpression(rs...)}, nil
}

// (chain e $v t) evaluates e and, for each result, continues with t
// under $v bound to that result.
func (in *Interpreter) stepChain(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 4 {
		return nil, []atom.Atom{atom.NewErrorf(x, "chain expects three arguments")}, nil
	}
	v, ok := x.Elems[2].(*atom.Variable)
	if !ok {
		// A bound binder has been substituted away by Resolve.
		return nil, []atom.Atom{atom.NewErrorf(x, "chain binder must be an unbound variable")}, nil
	}
	rs, err := in.subEval(x.Elems[1], it)
	if err != nil {
		return nil, nil, err
	}
	var pending []item
	for _, r := range rs {
		nb, ok := it.bind.Bind(v, r)
		if !ok {
			continue
		}
		pending = append(pending, item{a: x.Elems[3], bind: nb, depth: it.depth + 1})
	}
	return pending, nil, nil
}

// (unify a b then else) continues with then under each binding set
// unifying a with b, or with else when they do not unify. Neither a
// nor b is evaluated first.
func (in *Interpreter) stepUnify(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 5 {
		return nil, []atom.Atom{atom.NewErrorf(x, "unify expects four arguments")}, nil
	}
	bs := match.UnifyIn(x.Elems[1], x.Elems[2], it.bind)
	if len(bs) == 0 {
		return []item{{a: x.Elems[4], bind: it.bind, depth: it.depth + 1}}, nil, nil
	}
	pending := make([]item, 0, len(bs))
	for _, b := range bs {
		pending = append(pending, item{a: x.Elems[3], bind: b, depth: it.depth + 1})
	}
	return pending, nil, nil
}

// (if c then else) evaluates c and branches on each True or False
// result. A condition result of any other shape is an error.
func (in *Interpreter) stepIf(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 4 {
		return nil, []atom.Atom{atom.NewErrorf(x, "if expects three arguments")}, nil
	}
	rs, err := in.subEval(x.Elems[1], it)
	if err != nil {
		return nil, nil, err
	}
	var pending []item
	var finished []atom.Atom
	for _, r := range rs {
		b, ok := atom.BoolValue(r)
		switch {
		case ok && b:
			pending = append(pending, item{a: x.Elems[2], bind: it.bind, depth: it.depth + 1})
		case ok:
			pending = append(pending, item{a: x.Elems[3], bind: it.bind, depth: it.depth + 1})
		default:
			finished = append(finished, atom.NewErrorf(r, "if condition is not True or False"))
		}
	}
	return pending, finished, nil
}

// (let p e t) evaluates e and, for each result unifying with the
// pattern p, continues with t under the resulting bindings. Results
// not matching p are dropped silently; let is a filter as much as a
// binder.
func (in *Interpreter) stepLet(x *atom.Expression, it item) ([]item, []atom.Atom, error) {
	if len(x.Elems) != 4 {
		return nil, []atom.Atom{atom.NewErrorf(x, "let expects three arguments")}, nil
	}
	rs, err := in.subEval(x.Elems[2], it)
	if err != nil {
		return nil, nil, err
	}
	var pending []item
	for _, r := range rs {
		for _, b := range match.UnifyIn(x.Elems[1], r, it.bind) {
			pending = append(pending, item{a: x.Elems[3], bind: b, depth: it.depth + 1})
		}
	}
	return pending, nil, nil
}

// call invokes a grounded operation. Eager operations get their
// reducible arguments evaluated first, forking once per combination of
// argument results, and an Error argument short-circuits its
// combination. Normal-order operations receive their arguments exactly
// as written, Error expressions included.
func (in *Interpreter) call(x *atom.Expression, fn ground.Function, it item) ([]item, []atom.Atom, error) {
	args := x.Args()
	combos := [][]atom.Atom{args}

	op, isOp := fn.(*ground.Op)
	eager := isOp && op.Eager
	if eager {
		combos = [][]atom.Atom{nil}
		for _, arg := range args {
			var rs []atom.Atom
			switch arg.(type) {
			case *atom.Expression, *atom.Symbol:
				var err error
				rs, err = in.subEval(arg, it)
				if err != nil {
					return nil, nil, err
				}
			default:
				rs = []atom.Atom{arg}
			}
			var next [][]atom.Atom
			for _, c := range combos {
				for _, r := range rs {
					nc := make([]atom.Atom, len(c), len(c)+1)
					copy(nc, c)
					next = append(next, append(nc, r))
				}
			}
			combos = next
		}
	}

	var pending []item
	var finished []atom.Atom
	for _, c := range combos {
		if eager {
			if e := firstError(c); e != nil {
				finished = append(finished, e)
				continue
			}
		}
		in.stats.GroundedCalls++
		rs, err := fn.Call(c)
		switch {
		case errors.Is(err, ground.ErrNotApplicable):
			elems := append([]atom.Atom{x.Head()}, c...)
			finished = append(finished, atom.NewExpression(elems...))
		case err != nil:
			elems := append([]atom.Atom{x.Head()}, c...)
			finished = append(finished, atom.NewErrorf(atom.NewExpression(elems...), err.Error()))
		default:
			for _, r := range rs {
				pending = append(pending, item{a: r, bind: it.bind, depth: it.depth + 1})
			}
		}
	}
	return pending, finished, nil
}

func firstError(atoms []atom.Atom) atom.Atom {
	for _, a := range atoms {
		if atom.IsError(a) {
			return a
		}
	}
	return nil
}

// subEval runs a nested evaluation to completion, for forms that need
// the full result set of a subterm before proceeding.
func (in *Interpreter) subEval(a atom.Atom, it item) ([]atom.Atom, error) {
	in.nest++
	defer func() { in.nest-- }()
	return in.run(item{a: a, bind: it.bind, depth: it.depth + 1})
}
