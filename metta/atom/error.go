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

// ErrorSymbol heads the reserved error expression (Error <atom> <why>).
// Error atoms are ordinary values: the evaluator never synthesizes one
// for a stuck term or a failed match, and an error in a result set
// propagates like any other atom unless user code inspects it.
const ErrorSymbol = "Error"

// NewError constructs (Error a why). why is typically a grounded
// string describing the problem.
func NewError(a Atom, why Atom) *Expression {
	return NewExpression(NewSymbol(ErrorSymbol), a, why)
}

// NewErrorf constructs (Error a "msg") with a string message.
func NewErrorf(a Atom, msg string) *Expression {
	return NewError(a, NewString(msg))
}

// IsError reports whether a is an error expression.
func IsError(a Atom) bool {
	x, ok := a.(*Expression)
	if !ok || len(x.Elems) == 0 {
		return false
	}
	s, ok := x.Elems[0].(*Symbol)
	return ok && s.Name == ErrorSymbol
}
