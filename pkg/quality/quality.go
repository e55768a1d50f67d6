// Copyright 2025 ScyllaDB
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

// Package quality runs statistical acceptance checks against uniform
// engines. A check consumes derived draws from a fresh engine and decides
// whether the stream looks uniform; the runner fans the full check-by-engine
// matrix out over a worker pool and aggregates the verdicts.
//
// Checks cannot prove an engine correct, only catch gross defects: a stuck
// state, a lost word in the 64-bit concatenation, a boundary leaking into an
// open interval. Thresholds are set wide enough that a healthy engine fails
// with negligible probability.
package quality

import (
	"context"
	"fmt"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// checkEvery bounds how many draws a check takes between context polls.
const checkEvery = 4096

type (
	// Result is one check verdict for one engine. Statistic and Threshold
	// explain the verdict; Passed is authoritative.
	Result struct {
		Check     string  `json:"check"`
		Engine    string  `json:"engine"`
		Detail    string  `json:"detail,omitempty"`
		Samples   int     `json:"samples"`
		Statistic float64 `json:"statistic"`
		Threshold float64 `json:"threshold"`
		Passed    bool    `json:"passed"`
	}

	// Check is a single statistical acceptance criterion. Run draws from
	// rand until the sample budget is exhausted or ctx is done; it returns
	// an error only for misconfiguration, never for a failed statistic.
	Check interface {
		Name() string
		Run(ctx context.Context, rand *uniform.Rand) (Result, error)
	}
)

func (r Result) String() string {
	verdict := "passed"
	if !r.Passed {
		verdict = "failed"
	}

	return fmt.Sprintf("%s on %s %s: statistic=%g threshold=%g samples=%d",
		r.Check, r.Engine, verdict, r.Statistic, r.Threshold, r.Samples)
}
