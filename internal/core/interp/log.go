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

package interp

import (
	"fmt"
	"log"
	"strings"
)

func init() {
	log.SetFlags(0)
}

// Logf writes a numbered trace line when tracing is enabled. Nested
// evaluations are indented by their nesting level.
func (in *Interpreter) Logf(format string, args ...interface{}) {
	if in.cfg.LogEval == 0 {
		return
	}
	w := &strings.Builder{}

	in.logID++
	fmt.Fprintf(w, "%3d ", in.logID)

	for i := 0; i < in.nest; i++ {
		w.WriteString("... ")
	}

	fmt.Fprintf(w, format, args...)
	_ = log.Output(2, w.String())
}
