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

package quality

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/mo"
	"github.com/twmb/murmur3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scylladb/charybdis/pkg/metrics"
	"github.com/scylladb/charybdis/pkg/status"
	"github.com/scylladb/charybdis/pkg/uniform"
)

// NamedEngine couples an engine name with its constructor. The runner
// builds a fresh instance per (engine, check) pair, so engines are never
// shared between workers.
type NamedEngine struct {
	Name string
	New  func(seed int64) uniform.Engine
}

// Runner executes every check against every engine on a bounded worker
// pool and aggregates the verdicts into a RunStatus.
type Runner struct {
	logger   *zap.Logger
	status   *status.RunStatus
	engines  []NamedEngine
	checks   []Check
	seed     int64
	workers  int
	failFast bool
}

func NewRunner(
	logger *zap.Logger,
	runStatus *status.RunStatus,
	engines []NamedEngine,
	checks []Check,
	seed int64,
	workers int,
	failFast bool,
) *Runner {
	if workers < 1 {
		workers = 1
	}

	return &Runner{
		logger:   logger,
		status:   runStatus,
		engines:  engines,
		checks:   checks,
		seed:     seed,
		workers:  workers,
		failFast: failFast,
	}
}

// pairSeed mixes the murmur3 hash of the pair name into the base seed, so
// every (engine, check) pair draws from its own reproducible stream.
func (r *Runner) pairSeed(engine, check string) int64 {
	return r.seed ^ int64(murmur3.StringSum64(engine+"/"+check))
}

// Run fans the check matrix out, waits for every verdict, and returns the
// results sorted by engine and check. The returned error reports aborted
// execution (cancellation, misconfigured check, or the first failure in
// fail-fast mode); failed statistics alone are reported through the
// RunStatus, not the error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	total := len(r.engines) * len(r.checks)
	results := make(chan mo.Result[Result], total)

	r.logger.Info("starting quality checks",
		zap.Int("engines", len(r.engines)),
		zap.Int("checks", len(r.checks)),
		zap.Int("workers", r.workers),
		zap.Int64("seed", r.seed),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, engine := range r.engines {
		for _, check := range r.checks {
			g.Go(func() error {
				timer := metrics.ExecutionTimeStart("check_" + check.Name())
				defer timer.Record()

				rand := uniform.New(engine.New(r.pairSeed(engine.Name, check.Name())))

				res, err := check.Run(gCtx, rand)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return err
					}

					err = errors.Wrapf(err, "%s check on engine %s", check.Name(), engine.Name)
					results <- mo.Err[Result](err)

					return err
				}

				res.Engine = engine.Name
				results <- mo.Ok(res)

				if r.failFast && !res.Passed {
					return errors.Errorf("%s check failed on engine %s", check.Name(), engine.Name)
				}

				return nil
			})
		}
	}

	runErr := g.Wait()
	close(results)

	out := make([]Result, 0, total)
	for result := range results {
		res, err := result.Get()
		if err != nil {
			r.status.AddCheckError(&status.CheckError{
				Timestamp: time.Now(),
				Message:   err.Error(),
			})

			continue
		}

		r.status.AddDraws(uint64(res.Samples))

		outcome := "passed"
		if res.Passed {
			r.status.CheckPassed()
		} else {
			outcome = "failed"
			r.status.AddCheckError(&status.CheckError{
				Timestamp: time.Now(),
				Check:     res.Check,
				Engine:    res.Engine,
				Message: fmt.Sprintf("statistic %g breached threshold %g (%s)",
					res.Statistic, res.Threshold, res.Detail),
			})
			r.logger.Warn("check failed",
				zap.String("check", res.Check),
				zap.String("engine", res.Engine),
				zap.Float64("statistic", res.Statistic),
				zap.Float64("threshold", res.Threshold),
				zap.String("detail", res.Detail),
			)
		}
		metrics.CheckResults.WithLabelValues(res.Check, res.Engine, outcome).Inc()

		out = append(out, res)
	}

	slices.SortFunc(out, func(a, b Result) int {
		if c := strings.Compare(a.Engine, b.Engine); c != 0 {
			return c
		}

		return strings.Compare(a.Check, b.Check)
	})

	return out, runErr
}
