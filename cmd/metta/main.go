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

// metta is a command-line interface to the evaluator: it runs program
// files and provides an interactive read-eval-print loop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mettalang.org/go/metta"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "metta:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metta",
		Short: "metta evaluates symbolic programs over atom spaces",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.Int("max-depth", 0, "maximum rewrite depth per alternative (0 for the default)")
	flags.Int("log-eval", 0, "trace evaluation steps at the given verbosity")
	flags.Bool("stats", false, "print evaluation statistics to stderr")
	flags.StringArray("wasm", nil, "load grounded operations from a WebAssembly module (repeatable)")

	cmd.AddCommand(
		newRunCmd(),
		newReplCmd(),
		newVersionCmd(),
	)
	return cmd
}

// newSpace builds a context and space configured by the persistent
// flags of cmd.
func newSpace(cmd *cobra.Command) (*metta.Context, *metta.Space, error) {
	flags := cmd.Flags()
	maxDepth, _ := flags.GetInt("max-depth")
	logEval, _ := flags.GetInt("log-eval")
	wasm, _ := flags.GetStringArray("wasm")

	var opts []metta.Option
	if maxDepth > 0 {
		opts = append(opts, metta.MaxDepth(maxDepth))
	}
	if logEval > 0 {
		opts = append(opts, metta.LogEval(logEval))
	}
	c := metta.NewContext(opts...)
	for _, path := range wasm {
		if _, err := c.LoadWasm(path); err != nil {
			c.Close()
			return nil, nil, err
		}
	}
	return c, c.NewSpace(), nil
}

func printStats(cmd *cobra.Command, s *metta.Space) {
	if on, _ := cmd.Flags().GetBool("stats"); on {
		fmt.Fprintln(cmd.ErrOrStderr(), s.Stats())
	}
}
