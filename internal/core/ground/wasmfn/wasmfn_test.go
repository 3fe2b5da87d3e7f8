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

package wasmfn

import (
	"testing"

	"github.com/go-quicktest/qt"

	"mettalang.org/go/internal/core/ground"
	"mettalang.org/go/metta/atom"
)

// addModule is a minimal handwritten Wasm binary exporting a single
// function add: (i64, i64) -> i64.
var addModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, // magic, version
	0x01, 0x07, 0x01, 0x60, 0x02, 0x7e, 0x7e, 0x01, 0x7e, // type (i64,i64)->i64
	0x03, 0x02, 0x01, 0x00, // func 0 has type 0
	0x07, 0x07, 0x01, 0x03, 0x61, 0x64, 0x64, 0x00, 0x00, // export "add"
	0x0a, 0x09, 0x01, 0x07, 0x00, // code: 1 body, no locals
	0x20, 0x00, 0x20, 0x01, 0x7c, 0x0b, // local.get 0; local.get 1; i64.add; end
}

func TestLoadAndCall(t *testing.T) {
	r := New()
	defer r.Close()

	reg := ground.NewRegistry(nil)
	names, err := r.Load(reg, "add.wasm", addModule)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(names, []string{"add"}))

	g, ok := reg.Lookup("add")
	qt.Assert(t, qt.IsTrue(ok))
	fn := g.Value.(ground.Function)

	res, err := fn.Call([]atom.Atom{atom.NewInt(2), atom.NewInt(3)})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(res, 1))
	qt.Assert(t, qt.Equals(res[0].String(), "5"))
}

func TestNonIntegerArgumentNotApplicable(t *testing.T) {
	r := New()
	defer r.Close()

	reg := ground.NewRegistry(nil)
	_, err := r.Load(reg, "add.wasm", addModule)
	qt.Assert(t, qt.IsNil(err))

	g, _ := reg.Lookup("add")
	_, err = g.Value.(ground.Function).Call([]atom.Atom{atom.NewInt(1), atom.NewSymbol("x")})
	qt.Assert(t, qt.ErrorIs(err, ground.ErrNotApplicable))
}

func TestBadModule(t *testing.T) {
	r := New()
	defer r.Close()

	reg := ground.NewRegistry(nil)
	_, err := r.Load(reg, "bad.wasm", []byte{0x00, 0x01, 0x02})
	qt.Assert(t, qt.ErrorMatches(err, "can't compile Wasm module: .*"))
}
