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

// Package wasmfn loads WebAssembly modules and registers their
// exported functions as grounded operations. Only functions whose
// parameters and single result are all i64 are registered; integer
// arguments are passed through, anything else is not applicable.
package wasmfn

import (
	"context"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"mettalang.org/go/internal/core/ground"
	"mettalang.org/go/metta/atom"
)

// A Runtime owns a Wasm runtime and the modules loaded into it.
type Runtime struct {
	// ctx exists so that we have something to pass to Wazero
	// functions, but it's unused otherwise.
	ctx context.Context

	wazero.Runtime
}

func New() *Runtime {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	return &Runtime{
		ctx:     ctx,
		Runtime: r,
	}
}

// Close releases all modules loaded into the runtime.
func (r *Runtime) Close() error {
	return r.Runtime.Close(r.ctx)
}

// LoadFile compiles and instantiates the Wasm module at path and
// registers its eligible exports in reg. It returns the names
// registered.
func (r *Runtime) LoadFile(reg *ground.Registry, path string) ([]string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't load Wasm module: %w", err)
	}
	return r.Load(reg, path, buf)
}

// Load compiles and instantiates a Wasm module from source bytes and
// registers its eligible exports in reg under their export names.
func (r *Runtime) Load(reg *ground.Registry, name string, code []byte) ([]string, error) {
	compiled, err := r.Runtime.CompileModule(r.ctx, code)
	if err != nil {
		return nil, fmt.Errorf("can't compile Wasm module: %w", err)
	}

	cfg := wazero.NewModuleConfig().WithName(name)
	mod, err := r.Runtime.InstantiateModule(r.ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("can't instantiate Wasm module: %w", err)
	}

	var registered []string
	for export, def := range mod.ExportedFunctionDefinitions() {
		if !allI64(def.ParamTypes()) || len(def.ResultTypes()) != 1 ||
			def.ResultTypes()[0] != api.ValueTypeI64 {
			continue
		}
		fn := mod.ExportedFunction(export)
		reg.Register(&ground.Op{
			Name:  export,
			Arity: len(def.ParamTypes()),
			Eager: true,
			Fn:    r.call(export, fn),
		})
		registered = append(registered, export)
	}
	return registered, nil
}

func allI64(types []api.ValueType) bool {
	for _, t := range types {
		if t != api.ValueTypeI64 {
			return false
		}
	}
	return true
}

func (r *Runtime) call(name string, fn api.Function) func([]atom.Atom) ([]atom.Atom, error) {
	return func(args []atom.Atom) ([]atom.Atom, error) {
		params := make([]uint64, len(args))
		for i, a := range args {
			d, ok := atom.NumberValue(a)
			if !ok {
				return nil, ground.ErrNotApplicable
			}
			n, err := d.Int64()
			if err != nil {
				return nil, ground.ErrNotApplicable
			}
			params[i] = api.EncodeI64(n)
		}
		res, err := fn.Call(r.ctx, params...)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", name, err)
		}
		return []atom.Atom{atom.NewInt(int64(res[0]))}, nil
	}
}
