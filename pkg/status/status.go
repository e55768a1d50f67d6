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

// Package status aggregates check outcomes across all engines of a run and
// renders the final report.
package status

import (
	"encoding/json"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/scylladb/charybdis/pkg/metrics"
)

type Uint64 struct {
	atomic.Uint64
}

func (u *Uint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Load())
}

type RunStatus struct {
	Errors       *ErrorList `json:"errors,omitempty"`
	Draws        Uint64     `json:"draws"`
	ChecksPassed Uint64     `json:"checks_passed"`
	ChecksFailed Uint64     `json:"checks_failed"`
}

func NewRunStatus(limit int32) *RunStatus {
	return &RunStatus{
		Errors: NewErrorList(limit),
	}
}

func (rs *RunStatus) CheckPassed() {
	rs.ChecksPassed.Add(1)
}

func (rs *RunStatus) AddDraws(count uint64) {
	rs.Draws.Add(count)
}

func (rs *RunStatus) AddCheckError(err *CheckError) {
	rs.ChecksFailed.Add(1)
	rs.Errors.AddError(err)

	metrics.ErrorMessages.WithLabelValues("check", err.Error()).Inc()
}

func (rs *RunStatus) HasErrors() bool {
	return rs.ChecksFailed.Load() > 0
}

func (rs *RunStatus) HasReachedErrorCount() bool {
	return rs.ChecksFailed.Load() >= uint64(rs.Errors.Cap())
}

func (rs *RunStatus) String() string {
	return fmt.Sprintf("checks passed: %v | checks failed: %v | draws: %v",
		rs.ChecksPassed.Load(), rs.ChecksFailed.Load(), rs.Draws.Load())
}

func (rs *RunStatus) PrintResultAsJSON(w io.Writer, version string, versionData any, engines []string) error {
	result := map[string]any{
		"result":            rs,
		"charybdis_version": version,
		"version":           versionData,
		"engines":           engines,
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(" ", "    ")
	if err := encoder.Encode(result); err != nil {
		return errors.Wrap(err, "unable to create json from result")
	}

	return nil
}

//nolint:forbidigo
func (rs *RunStatus) PrintResult(w io.Writer, version string, versionData any, engines []string) {
	if err := rs.PrintResultAsJSON(w, version, versionData, engines); err != nil {
		// In case it has been a long run we want to display it anyway...
		fmt.Printf("Unable to print result as json, using plain text to stdout, error=%s\n", err)
		fmt.Printf("Charybdis version: %s\n", version)
		fmt.Printf("Results:\n")
		fmt.Printf("\tdraws:         %v\n", rs.Draws.Load())
		fmt.Printf("\tchecks passed: %v\n", rs.ChecksPassed.Load())
		fmt.Printf("\tchecks failed: %v\n", rs.ChecksFailed.Load())
		for i, checkErr := range rs.Errors.Errors() {
			fmt.Printf("Error %d: %s\n", i, checkErr)
		}
	}
}
