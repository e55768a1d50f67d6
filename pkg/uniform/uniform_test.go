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
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/scylladb/charybdis/pkg/testutils"
	"github.com/scylladb/charybdis/pkg/uniform"
)

func TestInt32(t *testing.T) {
	t.Parallel()

	engine := testutils.NewScriptedEngine(5, -7, math.MinInt32)
	r := uniform.New(engine)

	require.Equal(t, int32(5), r.Int32())
	require.Equal(t, int32(-7), r.Int32())
	require.Equal(t, int32(math.MinInt32), r.Int32())
}

func TestInt64(t *testing.T) {
	t.Parallel()

	data := []struct {
		name  string
		draws []int32
		want  int64
	}{
		{
			name:  "high word first",
			draws: []int32{0x00000001, 0x00000002},
			want:  0x0000000100000002,
		},
		{
			name:  "negative low word is not sign extended",
			draws: []int32{0, -1},
			want:  0x00000000ffffffff,
		},
		{
			name:  "negative high word keeps low word intact",
			draws: []int32{-1, 0},
			want:  -4294967296, // 0xffffffff00000000
		},
		{
			name:  "both words negative",
			draws: []int32{-1, -1},
			want:  -1,
		},
		{
			name:  "sign bit of the first draw tops the result",
			draws: []int32{math.MinInt32, math.MaxInt32},
			want:  -9223372034707292161, // 0x800000007fffffff
		},
		{
			name:  "zero draws give zero",
			draws: []int32{0, 0},
			want:  0,
		},
	}

	for _, item := range data {
		t.Run(item.name, func(t *testing.T) {
			t.Parallel()

			engine := testutils.NewScriptedEngine(item.draws...)
			got := uniform.New(engine).Int64()

			require.Equal(t, item.want, got)
			require.Equal(t, 2, engine.Drawn())
		})
	}
}

func TestRaw(t *testing.T) {
	t.Parallel()

	t.Run("discards zero draws", func(t *testing.T) {
		t.Parallel()

		engine := testutils.NewScriptedEngine(0, 5)
		got := uniform.New(engine).Raw()

		require.Equal(t, 5.0/(1<<32), got)
		require.Equal(t, 2, engine.Drawn())
	})

	t.Run("negative draw maps near one", func(t *testing.T) {
		t.Parallel()

		engine := testutils.NewScriptedEngine(-1)
		got := uniform.New(engine).Raw()

		require.Equal(t, float64(math.MaxUint32)/(1<<32), got)
		require.Less(t, got, 1.0)
	})

	t.Run("minimum accepted pattern", func(t *testing.T) {
		t.Parallel()

		engine := testutils.NewScriptedEngine(1)
		got := uniform.New(engine).Raw()

		require.Equal(t, 1.0/(1<<32), got)
		require.Greater(t, got, 0.0)
	})

	t.Run("stays inside the open interval", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(uniform.NewMersenne(5489))
		for range 100_000 {
			got := r.Raw()
			require.Greater(t, got, 0.0)
			require.Less(t, got, 1.0)
		}
	})
}

func TestFloat64(t *testing.T) {
	t.Parallel()

	t.Run("rejects the draw rounding up to one", func(t *testing.T) {
		t.Parallel()

		// First pair assembles math.MaxInt64, which rounds to exactly 1.0
		// and must be redrawn; the second pair assembles 1<<32.
		engine := testutils.NewScriptedEngine(math.MaxInt32, -1, 1, 0)
		got := uniform.New(engine).Float64()

		require.Equal(t, 0.5+1.0/(1<<32), got)
		require.Equal(t, 4, engine.Drawn())
	})

	t.Run("rejects the draw mapping to zero", func(t *testing.T) {
		t.Parallel()

		// First pair assembles math.MinInt64, which maps to exactly 0.0;
		// the second pair assembles 1, which re-centers to 0.5.
		engine := testutils.NewScriptedEngine(math.MinInt32, 0, 0, 1)
		got := uniform.New(engine).Float64()

		require.Equal(t, 0.5, got)
		require.Equal(t, 4, engine.Drawn())
	})

	t.Run("stays inside the open interval", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(uniform.NewMersenne(5489))
		for range 100_000 {
			got := r.Float64()
			require.Greater(t, got, 0.0)
			require.Less(t, got, 1.0)
		}
	})
}

func TestFloat32(t *testing.T) {
	t.Parallel()

	t.Run("rejects the draw narrowing to one", func(t *testing.T) {
		t.Parallel()

		// 1-2^-32 is inside (0,1) in double precision but narrows to 1.0f.
		engine := testutils.NewScriptedEngine(-1, 1)
		got := uniform.New(engine).Float32()

		require.Equal(t, float32(1.0/(1<<32)), got)
		require.Equal(t, 2, engine.Drawn())
	})

	t.Run("stays inside the open interval", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(uniform.NewXorshift(20250823))
		for range 100_000 {
			got := r.Float32()
			require.Greater(t, got, float32(0))
			require.Less(t, got, float32(1))
		}
	})
}

func TestChoose(t *testing.T) {
	t.Parallel()

	t.Run("degenerate range always returns lo", func(t *testing.T) {
		t.Parallel()

		for _, bound := range []int32{-5, 0, math.MaxInt32} {
			engine := testutils.NewScriptedEngine(123456789, -987654321, 42)
			r := uniform.New(engine)

			for range 3 {
				require.Equal(t, bound, r.Choose(bound, bound))
			}
		}
	})

	t.Run("full int32 span does not overflow", func(t *testing.T) {
		t.Parallel()

		data := []struct {
			name string
			draw int32
			want int32
		}{
			// The span widens to exactly 1<<32; the scaled offset is the
			// raw grid index itself, so the extreme draws pin both ends.
			{name: "maximum draw hits hi", draw: -1, want: math.MaxInt32},
			{name: "minimum draw lands one above lo", draw: 1, want: math.MinInt32 + 1},
			{name: "midpoint draw lands on zero", draw: math.MinInt32, want: 0},
		}

		for _, item := range data {
			t.Run(item.name, func(t *testing.T) {
				t.Parallel()

				r := uniform.New(testutils.NewScriptedEngine(item.draw))
				require.Equal(t, item.want, r.Choose(math.MinInt32, math.MaxInt32))
			})
		}
	})

	t.Run("offsets truncate toward lo", func(t *testing.T) {
		t.Parallel()

		// raw = 0.5 over [1,6] scales to 1 + trunc(3.0) = 4.
		r := uniform.New(testutils.NewScriptedEngine(math.MinInt32))
		require.Equal(t, int32(4), r.Choose(1, 6))
	})

	t.Run("single raw draw per call", func(t *testing.T) {
		t.Parallel()

		engine := testutils.NewScriptedEngine(42)
		_ = uniform.New(engine).Choose(-10, 10)
		require.Equal(t, 1, engine.Drawn())
	})
}

func TestRoll(t *testing.T) {
	t.Parallel()

	t.Run("one side always returns one", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(testutils.NewScriptedEngine(-1, 1, 77777))
		for range 3 {
			require.Equal(t, int32(1), r.Roll(1))
		}
	})

	t.Run("frequencies stay near uniform", func(t *testing.T) {
		t.Parallel()

		const (
			samples = 60_000
			sides   = 6
		)

		r := uniform.New(uniform.NewMersenne(5489))
		counts := make(map[int32]int, sides)

		for range samples {
			v := r.Roll(sides)
			require.GreaterOrEqual(t, v, int32(1))
			require.LessOrEqual(t, v, int32(sides))
			counts[v]++
		}

		require.Len(t, counts, sides)
		for side, count := range counts {
			require.InDelta(t, samples/sides, count, 800, "side %d drifted", side)
		}
	})
}

func TestInt32N(t *testing.T) {
	t.Parallel()

	t.Run("bound of one always returns zero", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(testutils.NewScriptedEngine(-1, 1, 424242))
		for range 3 {
			require.Equal(t, int32(0), r.Int32N(1))
		}
	})

	t.Run("stays below the bound", func(t *testing.T) {
		t.Parallel()

		r := uniform.New(uniform.NewLCG(1))
		for range 10_000 {
			v := r.Int32N(10)
			require.GreaterOrEqual(t, v, int32(0))
			require.Less(t, v, int32(10))
		}
	})
}

func drawAll(r *uniform.Rand) []any {
	return []any{
		r.Int32(),
		r.Int64(),
		r.Raw(),
		r.Float64(),
		r.Float32(),
		r.Choose(-3, 3),
		r.Roll(6),
		r.Int32N(10),
	}
}

func TestReplayDeterminism(t *testing.T) {
	t.Parallel()

	engine := testutils.NewScriptedEngine(
		3, -7, 11, math.MaxInt32, -1, 42, 5, 99, -123456, 2718281, 31415926, -27182818,
	)

	first := drawAll(uniform.New(engine))
	engine.Reset()
	second := drawAll(uniform.New(engine))

	require.Empty(t, cmp.Diff(first, second))
}

func TestClockSeed(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(0), uniform.ClockSeedAt(time.Unix(0, 0)))
	require.Equal(t, int64(1500), uniform.ClockSeedAt(time.Unix(1, 500_000_000)))
	require.Equal(t, int64(-1000), uniform.ClockSeedAt(time.Unix(-1, 0)))

	before := time.Now().UnixMilli()
	seed := uniform.ClockSeed()
	after := time.Now().UnixMilli()

	require.GreaterOrEqual(t, seed, before)
	require.LessOrEqual(t, seed, after)
}
