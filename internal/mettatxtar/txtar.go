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

// Package mettatxtar runs script tests stored in the txtar format: an
// input program plus a golden "out" section, compared and optionally
// rewritten in place.
package mettatxtar

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"
)

var update = flag.Bool("update", false, "update the golden files of failing txtar tests")

// A Test is a single test backed by one .txtar file. It embeds
// *testing.T for error reporting and is an io.Writer collecting the
// output to compare against the archive's "out" file.
type Test struct {
	*testing.T

	Archive *txtar.Archive

	path string
	buf  bytes.Buffer
}

func (t *Test) Write(b []byte) (int, error) {
	return t.buf.Write(b)
}

// ReadFile returns the named file from the archive. A missing file is
// a fatal test error.
func (t *Test) ReadFile(name string) string {
	for _, f := range t.Archive.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("file %q not found in %s", name, t.path)
	return ""
}

// Run runs f once per .txtar file under root. After f returns, the
// collected output is compared with the archive's "out" file; with
// -update, a differing archive is rewritten instead of failing.
func Run(t *testing.T, root string, f func(tc *Test)) {
	paths, err := filepath.Glob(filepath.Join(root, "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatalf("no txtar files in %s", root)
	}
	for _, path := range paths {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			a, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}
			tc := &Test{T: t, Archive: a, path: path}
			f(tc)

			got := tc.buf.String()
			want := ""
			out := -1
			for i, f := range a.Files {
				if f.Name == "out" {
					want = string(f.Data)
					out = i
				}
			}
			if got == want {
				return
			}
			if *update {
				if out < 0 {
					a.Files = append(a.Files, txtar.File{Name: "out"})
					out = len(a.Files) - 1
				}
				a.Files[out].Data = []byte(got)
				if err := os.WriteFile(path, txtar.Format(a), 0o666); err != nil {
					t.Fatal(err)
				}
				return
			}
			t.Errorf("output differs from golden file (-want +got):\n%s",
				cmp.Diff(want, got))
		})
	}
}
