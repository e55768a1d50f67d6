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

	"github.com/scylladb/charybdis/pkg/uniform"
)

// OpenInterval verifies the conversion-layer boundary contracts against a
// live engine: every unit-interval draw stays strictly inside (0,1) in both
// precisions, and the degenerate integer ranges pin their single value. Any
// violation fails the check; the threshold is zero.
type OpenInterval struct {
	Samples int
}

func (OpenInterval) Name() string {
	return "open-interval"
}

func (o OpenInterval) Run(ctx context.Context, rand *uniform.Rand) (Result, error) {
	if o.Samples < 1 {
		return Result{}, errors.Errorf("open-interval check needs a positive sample count, got %d", o.Samples)
	}

	violations := 0
	for i := range o.Samples {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		if v := rand.Raw(); v <= 0 || v >= 1 {
			violations++
		}
		if v := rand.Float64(); v <= 0 || v >= 1 {
			violations++
		}
		if v := rand.Float32(); v <= 0 || v >= 1 {
			violations++
		}
	}

	for _, bound := range []int32{math.MinInt32, -5, 0, 1, math.MaxInt32} {
		if rand.Choose(bound, bound) != bound {
			violations++
		}
	}
	if rand.Roll(1) != 1 {
		violations++
	}
	if rand.Int32N(1) != 0 {
		violations++
	}

	return Result{
		Check:     o.Name(),
		Samples:   o.Samples,
		Statistic: float64(violations),
		Threshold: 0,
		Passed:    violations == 0,
		Detail:    fmt.Sprintf("%d draws per precision, %d boundary probes", o.Samples, 7),
	}, nil
}
