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

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scylladb/charybdis/pkg/quality"
	"github.com/scylladb/charybdis/pkg/status"
	"github.com/scylladb/charybdis/pkg/utils"
)

var checkCmd = &cobra.Command{
	Use:          "check",
	Short:        "Run the statistical acceptance suite over a set of engines.",
	RunE:         runCheck,
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	printed, err := printVersionJSON(cmd)
	if err != nil || printed {
		return err
	}

	ctx, cancel, logger := setup(cmd)
	defer cancel()
	defer utils.IgnoreError(logger.Sync)

	intSeed, err := parseSeed(seed)
	if err != nil {
		return errors.Wrap(err, "failed to parse --seed argument")
	}

	if samples < 2 {
		return errors.Errorf("--samples must be at least 2, got %d", samples)
	}

	engines, err := namedEngines(checkEngines)
	if err != nil {
		return err
	}

	outFile, err := createFile(outFileArg, os.Stdout)
	if err != nil {
		return err
	}
	defer utils.IgnoreError(outFile.Sync)

	runStatus := status.NewRunStatus(int32(maxErrorsToStore))

	checks := []quality.Check{
		quality.Frequency{Sides: sides, Samples: samples, Significance: significance},
		quality.OpenInterval{Samples: samples},
		quality.Distinct{Samples: samples},
		quality.Moments{Samples: samples},
	}

	printCheckSetup(intSeed, engines)

	runner := quality.NewRunner(
		logger.Named("quality"),
		runStatus,
		engines,
		checks,
		intSeed,
		workers,
		failFast,
	)

	results, err := runner.Run(ctx)
	if err != nil {
		logger.Error("check run aborted", zap.Error(err))
	}

	for _, res := range results {
		logger.Info(res.String())
	}

	logger.Info("check run finished", zap.String("status", runStatus.String()))

	runStatus.PrintResult(outFile, version, versionInfo, engineNames(engines))
	if runStatus.HasErrors() {
		return errors.Errorf("charybdis encountered errors, exiting with non zero status")
	}

	return err
}

func printCheckSetup(seedValue int64, engines []quality.NamedEngine) {
	tw := new(tabwriter.Writer)
	tw.Init(os.Stdout, 0, 8, 2, '\t', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "Seed:\t%d\n", seedValue)
	_, _ = fmt.Fprintf(tw, "Engines:\t%s\n", strings.Join(engineNames(engines), ","))
	_, _ = fmt.Fprintf(tw, "Samples per check:\t%d\n", samples)
	_, _ = fmt.Fprintf(tw, "Workers:\t%d\n", workers)
	if outFileArg == "" {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s\n", "<stdout>")
	} else {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s\n", outFileArg)
	}
	_ = tw.Flush()
}
