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

package atom

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Stock grounded value types. Numbers are arbitrary-precision decimals;
// an integer literal and the equal decimal compare equal.

// A Number is a numeric grounded value.
type Number struct {
	X apd.Decimal
}

func (n *Number) TypeName() string { return "Number" }
func (n *Number) String() string   { return n.X.String() }

func (n *Number) Equal(v Value) bool {
	m, ok := v.(*Number)
	return ok && n.X.Cmp(&m.X) == 0
}

// NewNumber wraps d in a grounded atom. The decimal is copied; the
// argument remains owned by the caller.
func NewNumber(d *apd.Decimal) *Grounded {
	n := &Number{}
	n.X.Set(d)
	return NewGrounded(n)
}

// NewInt returns a grounded integer atom.
func NewInt(i int64) *Grounded {
	n := &Number{}
	n.X.SetInt64(i)
	return NewGrounded(n)
}

// ParseNumber converts a numeric literal to a grounded atom.
func ParseNumber(s string) (*Grounded, error) {
	n := &Number{}
	if _, _, err := n.X.SetString(s); err != nil {
		return nil, fmt.Errorf("invalid number literal %q: %w", s, err)
	}
	return NewGrounded(n), nil
}

// A Str is a string grounded value. Its printed form is quoted.
type Str struct {
	S string
}

func (s *Str) TypeName() string { return "String" }
func (s *Str) String() string   { return strconv.Quote(s.S) }

func (s *Str) Equal(v Value) bool {
	t, ok := v.(*Str)
	return ok && s.S == t.S
}

func NewString(s string) *Grounded { return NewGrounded(&Str{S: s}) }

// A Bool is a boolean grounded value, printed True or False.
type Bool struct {
	B bool
}

func (b *Bool) TypeName() string { return "Bool" }

func (b *Bool) String() string {
	if b.B {
		return "True"
	}
	return "False"
}

func (b *Bool) Equal(v Value) bool {
	c, ok := v.(*Bool)
	return ok && b.B == c.B
}

func NewBool(b bool) *Grounded { return NewGrounded(&Bool{B: b}) }

// NumberValue returns the decimal behind a if it is a grounded Number.
func NumberValue(a Atom) (*apd.Decimal, bool) {
	g, ok := a.(*Grounded)
	if !ok {
		return nil, false
	}
	n, ok := g.Value.(*Number)
	if !ok {
		return nil, false
	}
	return &n.X, true
}

// BoolValue returns the boolean behind a if it is a grounded Bool.
func BoolValue(a Atom) (bool, bool) {
	g, ok := a.(*Grounded)
	if !ok {
		return false, false
	}
	b, ok := g.Value.(*Bool)
	if !ok {
		return false, false
	}
	return b.B, true
}

// StringValue returns the string behind a if it is a grounded Str.
func StringValue(a Atom) (string, bool) {
	g, ok := a.(*Grounded)
	if !ok {
		return "", false
	}
	s, ok := g.Value.(*Str)
	if !ok {
		return "", false
	}
	return s.S, true
}
