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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.metta")
	src := "(= (double $x) (* $x 2))\n!(double 4)\n!(+ 1 2)\n"
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(src), 0o666)))

	got, err := runCommand(t, "run", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, "[8]\n[3]\n"))
}

func TestRunSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.metta")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte("!(oops"), 0o666)))

	_, err := runCommand(t, "run", path)
	qt.Assert(t, qt.ErrorMatches(err, ".*incomplete input.*"))
}

func TestRunMissingFile(t *testing.T) {
	_, err := runCommand(t, "run", filepath.Join(t.TempDir(), "nope.metta"))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestVersion(t *testing.T) {
	got, err := runCommand(t, "version")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Matches(got, `metta version .*\n`))
}
