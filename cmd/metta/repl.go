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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"mettalang.org/go/metta"
	"mettalang.org/go/metta/parser"
)

const (
	historyFile = ".metta_history"
	promptMain  = "> "
	promptCont  = "... "
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive session",
		Long: `Repl reads statements interactively against one persistent space.
As in program files, plain statements are added to the space and '!'
statements are evaluated. Input continues on the next line until it
parses. Ctrl+D or :quit exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, s, err := newSpace(cmd)
			if err != nil {
				return err
			}
			defer c.Close()
			return repl(cmd, s)
		},
	}
}

func repl(cmd *cobra.Command, s *metta.Space) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	for {
		src, ok := readByParseProbe(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		}

		dirs, err := s.RunProgram(src)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		for _, d := range dirs {
			fmt.Fprintln(out, formatResults(d.Results))
		}
		printStats(cmd, s)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// readByParseProbe accumulates lines until the buffer parses as a
// program or fails with a non-incomplete error, which is reported by
// the evaluation attempt that follows.
func readByParseProbe(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := parser.ParseProgram(src); parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
