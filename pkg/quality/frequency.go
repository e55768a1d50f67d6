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

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// Frequency rolls an n-sided die and applies Pearson's chi-squared
// goodness-of-fit test to the side tallies. The critical value comes from
// the chi-squared distribution with Sides-1 degrees of freedom at the
// configured significance, so a fair engine fails with probability
// Significance per run.
type Frequency struct {
	Sides        int32
	Samples      int
	Significance float64
}

func (Frequency) Name() string {
	return "frequency"
}

func (f Frequency) Run(ctx context.Context, rand *uniform.Rand) (Result, error) {
	if f.Sides < 2 {
		return Result{}, errors.Errorf("frequency check needs at least 2 sides, got %d", f.Sides)
	}
	if f.Samples < 1 {
		return Result{}, errors.Errorf("frequency check needs a positive sample count, got %d", f.Samples)
	}
	if f.Significance <= 0 || f.Significance >= 1 {
		return Result{}, errors.Errorf("significance must lie in (0,1), got %f", f.Significance)
	}

	counts := make([]int, f.Sides)
	for i := range f.Samples {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		counts[rand.Roll(f.Sides)-1]++
	}

	expected := float64(f.Samples) / float64(f.Sides)
	chiSq := 0.0
	for _, n := range counts {
		diff := float64(n) - expected
		chiSq += diff * diff / expected
	}

	critical := distuv.ChiSquared{K: float64(f.Sides - 1)}.Quantile(1 - f.Significance)

	return Result{
		Check:     f.Name(),
		Samples:   f.Samples,
		Statistic: chiSq,
		Threshold: critical,
		Passed:    chiSq < critical,
		Detail: fmt.Sprintf("side counts min=%d max=%d expected=%.1f",
			slices.Min(counts), slices.Max(counts), expected),
	}, nil
}
