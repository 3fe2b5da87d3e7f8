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

// Package stats provides counters for key events during an evaluation.
package stats

import (
	"strings"
	"sync"
	"text/template"
)

// Counts holds counters for one or more evaluation requests.
type Counts struct {
	// Steps counts worklist items popped and processed.
	Steps int64

	// RuleQueries counts equality-rule queries issued against a space.
	RuleQueries int64

	// RuleMatches counts rule alternatives produced by those queries.
	// RuleMatches much larger than RuleQueries indicates heavily
	// non-deterministic rule sets.
	RuleMatches int64

	// GroundedCalls counts invocations of grounded operations.
	GroundedCalls int64

	// Branches counts pending alternatives pushed onto the plan,
	// including the initial item of each request.
	Branches int64

	// DepthAborts counts alternatives abandoned for exceeding the
	// maximum nesting depth. Siblings of an aborted alternative
	// continue, so a nonzero count does not imply a failed request.
	DepthAborts int64

	// MaxPlan is the high-water mark of the plan stack.
	MaxPlan int64
}

func (c *Counts) Add(other Counts) {
	c.Steps += other.Steps
	c.RuleQueries += other.RuleQueries
	c.RuleMatches += other.RuleMatches
	c.GroundedCalls += other.GroundedCalls
	c.Branches += other.Branches
	c.DepthAborts += other.DepthAborts
	if other.MaxPlan > c.MaxPlan {
		c.MaxPlan = other.MaxPlan
	}
}

func (c Counts) Since(start Counts) Counts {
	c.Steps -= start.Steps
	c.RuleQueries -= start.RuleQueries
	c.RuleMatches -= start.RuleMatches
	c.GroundedCalls -= start.GroundedCalls
	c.Branches -= start.Branches
	c.DepthAborts -= start.DepthAborts

	// MaxPlan is a peak, not a delta; it remains as-is.

	return c
}

var stats = sync.OnceValue(func() *template.Template {
	return template.Must(template.New("stats").Parse(`{{"" -}}

Steps:         {{.Steps}}
RuleQueries:   {{.RuleQueries}}
RuleMatches:   {{.RuleMatches}}
GroundedCalls: {{.GroundedCalls}}
Branches:      {{.Branches}}
MaxPlan:       {{.MaxPlan}}{{if .DepthAborts}}
DepthAborts:   {{.DepthAborts}}{{end}}`))
})

func (c Counts) String() string {
	buf := &strings.Builder{}
	err := stats().Execute(buf, c)
	if err != nil {
		panic(err)
	}
	return buf.String()
}
