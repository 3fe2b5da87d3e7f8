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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mettalang.org/go/metta/atom"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.metta>...",
		Short: "run program files",
		Long: `Run loads each file into a fresh space and runs it: plain
statements are added as facts and rules, statements prefixed with '!'
are evaluated and their results printed, one bracketed set per
statement.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := runFile(cmd, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runFile(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c, s, err := newSpace(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	dirs, err := s.RunProgram(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	out := cmd.OutOrStdout()
	for _, d := range dirs {
		fmt.Fprintln(out, formatResults(d.Results))
	}
	printStats(cmd, s)
	return nil
}

// formatResults renders a result set the way the evaluator produced
// it, without imposing an order.
func formatResults(results []atom.Atom) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
