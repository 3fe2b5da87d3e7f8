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

	"mettalang.org/go/internal/core/space"
	"mettalang.org/go/metta/atom"
)

func spaceArg(name string, a atom.Atom) (*space.Space, error) {
	s, ok := space.HandleValue(a)
	if !ok {
		return nil, fmt.Errorf("%s: first argument is not a space", name)
	}
	return s, nil
}

// Space mutation primitives. These take their atom arguments
// unevaluated: (add-atom &s (foo)) stores the expression (foo), not
// its reduction. Mutations are visible immediately to the mutating
// alternative's subsequent steps.
func (r *Registry) registerSpaceOps() {
	r.Register(&Op{
		Name:  "add-atom",
		Arity: 2,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			s, err := spaceArg("add-atom", args[0])
			if err != nil {
				return nil, err
			}
			if err := s.Add(args[1]); err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewExpression()}, nil
		},
	})

	// remove-atom reports whether a removal occurred, unlike the
	// historical behavior of discarding the signal.
	r.Register(&Op{
		Name:  "remove-atom",
		Arity: 2,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			s, err := spaceArg("remove-atom", args[0])
			if err != nil {
				return nil, err
			}
			removed, err := s.Remove(args[1])
			if err != nil {
				return nil, err
			}
			return []atom.Atom{atom.NewBool(removed)}, nil
		},
	})

	// (match <space> <pattern> <template>) instantiates the template
	// once per stored atom matching the pattern. Zero matches produce
	// zero results, which is ordinary control flow.
	r.Register(&Op{
		Name:  "match",
		Arity: 3,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			s, err := spaceArg("match", args[0])
			if err != nil {
				return nil, err
			}
			ms, err := s.Query(args[1])
			if err != nil {
				return nil, err
			}
			out := make([]atom.Atom, 0, len(ms))
			for _, m := range ms {
				out = append(out, m.Bindings.Resolve(args[2]))
			}
			return out, nil
		},
	})

	// (get-atoms <space>) yields every stored atom as a separate
	// non-deterministic result.
	r.Register(&Op{
		Name:  "get-atoms",
		Arity: 1,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			s, err := spaceArg("get-atoms", args[0])
			if err != nil {
				return nil, err
			}
			return s.Export(), nil
		},
	})

	r.Register(&Op{
		Name:  "new-space",
		Arity: 0,
		Fn: func(args []atom.Atom) ([]atom.Atom, error) {
			return []atom.Atom{space.NewHandle(space.New(), "")}, nil
		},
	})
}
