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

// A Handle embeds a space reference in a grounded atom, so that
// grounded operations can receive the space to act on as an ordinary
// argument. Two handles are equal iff they reference the same space.
type Handle struct {
	S    *Space
	Name string // printed form; defaults to a short form of the space ID
}

func (h *Handle) TypeName() string { return "Space" }

func (h *Handle) Equal(v atom.Value) bool {
	o, ok := v.(*Handle)
	return ok && h.S == o.S
}

func (h *Handle) String() string {
	if h.Name != "" {
		return "&" + h.Name
	}
	return "&space-" + h.S.ID().String()[:8]
}

// NewHandle wraps s in a grounded handle atom.
func NewHandle(s *Space, name string) *atom.Grounded {
	return atom.NewGrounded(&Handle{S: s, Name: name})
}

// HandleValue returns the space behind a if it is a grounded handle.
func HandleValue(a atom.Atom) (*Space, bool) {
	g, ok := a.(*atom.Grounded)
	if !ok {
		return nil, false
	}
	h, ok := g.Value.(*Handle)
	if !ok {
		return nil, false
	}
	return h.S, true
}
