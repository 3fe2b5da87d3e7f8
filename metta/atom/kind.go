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

// Kind reports the variant of an Atom. Kinds form a bitset so that
// callers can test membership in a set of kinds with a single mask.
type Kind uint8

const (
	SymbolKind Kind = 1 << iota
	VariableKind
	ExpressionKind
	GroundedKind
)

func (k Kind) String() string {
	switch k {
	case SymbolKind:
		return "symbol"
	case VariableKind:
		return "variable"
	case ExpressionKind:
		return "expression"
	case GroundedKind:
		return "grounded"
	}
	return "unknown"
}
