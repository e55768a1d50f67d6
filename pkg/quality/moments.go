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
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// Moments compares the sample mean and standard deviation of a Float64
// stream against the uniform references 1/2 and 1/sqrt(12). Deviations are
// normalized by six standard errors, so the statistic is the worst relative
// drift and the threshold is one. A stuck engine passes the mean and fails
// on the collapsed deviation.
type Moments struct {
	Samples int
}

func (Moments) Name() string {
	return "moments"
}

func (m Moments) Run(ctx context.Context, rand *uniform.Rand) (Result, error) {
	if m.Samples < 2 {
		return Result{}, errors.Errorf("moments check needs at least 2 samples, got %d", m.Samples)
	}

	values := make([]float64, m.Samples)
	for i := range values {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		values[i] = rand.Float64()
	}

	const (
		wantMean   = 0.5
		wantStdDev = 0.28867513459481287 // 1/sqrt(12)
	)

	mean := stat.Mean(values, nil)
	stdDev := stat.StdDev(values, nil)

	tolerance := 6 * wantStdDev / math.Sqrt(float64(m.Samples))
	statistic := math.Max(
		math.Abs(mean-wantMean)/tolerance,
		math.Abs(stdDev-wantStdDev)/tolerance,
	)

	return Result{
		Check:     m.Name(),
		Samples:   m.Samples,
		Statistic: statistic,
		Threshold: 1,
		Passed:    statistic < 1,
		Detail:    fmt.Sprintf("mean=%.6f stddev=%.6f", mean, stdDev),
	}, nil
}
