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
	"github.com/scylladb/go-set/u64set"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// Distinct collects 64-bit draws into a set and counts collisions. Over a
// uniform 64-bit space the birthday estimate n(n-1)/2^65 is far below one
// for any feasible sample count, so more than a stray collision means the
// engine is cycling or the word concatenation is dropping bits.
type Distinct struct {
	Samples int
}

func (Distinct) Name() string {
	return "distinct"
}

func (d Distinct) Run(ctx context.Context, rand *uniform.Rand) (Result, error) {
	if d.Samples < 1 {
		return Result{}, errors.Errorf("distinct check needs a positive sample count, got %d", d.Samples)
	}

	seen := u64set.NewWithSize(d.Samples)
	collisions := 0
	for i := range d.Samples {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		v := uint64(rand.Int64())
		if seen.Has(v) {
			collisions++
		} else {
			seen.Add(v)
		}
	}

	expected := float64(d.Samples) * float64(d.Samples-1) / math.Exp2(65)
	threshold := 4*expected + 1

	return Result{
		Check:     d.Name(),
		Samples:   d.Samples,
		Statistic: float64(collisions),
		Threshold: threshold,
		Passed:    float64(collisions) <= threshold,
		Detail:    fmt.Sprintf("%d distinct values, birthday estimate %.2g collisions", seen.Size(), expected),
	}, nil
}
