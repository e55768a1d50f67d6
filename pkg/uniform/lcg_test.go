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

package uniform_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/charybdis/pkg/uniform"
)

func TestLCGRecurrence(t *testing.T) {
	t.Parallel()

	engine := uniform.NewLCG(42)

	state := uint64(42)
	for i := range 1000 {
		state = state*6364136223846793005 + 1442695040888963407
		require.Equal(t, int32(state>>32), engine.Int32(), "step %d", i)
	}
}

func TestLCGSeeding(t *testing.T) {
	t.Parallel()

	draw := func(seed int64, n int) []int32 {
		engine := uniform.NewLCG(seed)
		out := make([]int32, 0, n)
		for range n {
			out = append(out, engine.Int32())
		}

		return out
	}

	require.Empty(t, cmp.Diff(draw(-1, 100), draw(-1, 100)))
	require.NotEqual(t, draw(1, 100), draw(2, 100))

	// Zero is a valid seed: the increment moves the state immediately.
	zero := uniform.NewLCG(0)
	require.Equal(t, int32(1442695040888963407>>32), zero.Int32())
}
