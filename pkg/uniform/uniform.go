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

// Package uniform defines the contract between pseudo-random bit generators
// and the code that consumes them. An engine implements a single primitive,
// a full-range uniform 32-bit draw; Rand layers every typed conversion on
// top of that primitive, so the bit-level arithmetic lives in one place and
// every engine inherits it unchanged.
//
// Engines are not safe for concurrent use and Rand adds no locking. Code
// that fans out across goroutines constructs one engine per worker.
package uniform

import (
	"math"
	"time"
)

// Engine is a uniform pseudo-random bit generator. Int32 returns values
// uniformly distributed over the closed interval [math.MinInt32,
// math.MaxInt32], both endpoints and zero included. It never fails, and the
// internal state it advances is invisible to the conversion layer.
//
// Concurrent calls on one instance may corrupt the generator state. No
// implementation in this package adds internal synchronization.
type Engine interface {
	Int32() int32
}

// Scale factors for the unit-interval conversions. Both are exact powers of
// two, so scaling an integer-valued float64 by them rounds at most once.
const (
	inv32 = 1.0 / (1 << 32)
	inv64 = 1.0 / (1 << 64)
)

// Rand derives every typed uniform draw from an engine's primitive. All
// methods are deterministic functions of the primitive draws they consume
// and introduce no entropy of their own: replaying an engine's output
// sequence replays every derived value.
type Rand struct {
	engine Engine
}

// New returns a Rand deriving from engine.
func New(engine Engine) *Rand {
	return &Rand{engine: engine}
}

// Int32 draws once from the underlying engine.
func (r *Rand) Int32() int32 {
	return r.engine.Int32()
}

// Int64 concatenates two primitive draws into a uniform 64-bit value, high
// word first. Each draw is reinterpreted as an unsigned 32-bit pattern
// before widening, so the sign bit of either draw cannot smear across the
// upper half of the result. Consumes exactly two draws in a fixed order.
func (r *Rand) Int64() int64 {
	hi := uint64(uint32(r.engine.Int32()))
	lo := uint64(uint32(r.engine.Int32()))

	return int64(hi<<32 | lo)
}

// Raw returns a uniform value in the open interval (0,1), on the grid of
// multiples of 2^-32. Draws equal to zero are discarded and redrawn, which
// is what keeps 0.0 itself out of the range: the minimum accepted pattern
// maps to 2^-32 and the maximum pattern maps just below 1.0.
func (r *Rand) Raw() float64 {
	for {
		if v := r.engine.Int32(); v != 0 {
			return float64(uint32(v)) * inv32
		}
	}
}

// Float64 maps a full 64-bit draw onto the open interval (0,1) through the
// affine transform (float64(v) - float64(math.MinInt64)) * 2^-64, keeping
// the original operation order so the boundary rounding is reproducible.
// Converting the draw to float64 rounds near the range extremes: draws next
// to math.MaxInt64 land on exactly 1.0 and math.MinInt64 lands on 0.0, so
// the conversion redraws until the result is strictly inside the interval.
func (r *Rand) Float64() float64 {
	for {
		v := (float64(r.Int64()) - math.MinInt64) * inv64
		if v > 0.0 && v < 1.0 {
			return v
		}
	}
}

// Float32 narrows Raw to single precision, redrawing whenever the narrowed
// value rounds up to 1.0. The result is strictly inside (0,1).
func (r *Rand) Float32() float32 {
	for {
		if v := float32(r.Raw()); v < 1.0 {
			return v
		}
	}
}

// Choose returns a uniform value from the inclusive range [lo, hi]. The
// caller must ensure lo <= hi. The span is widened to 64 bits before the +1
// so the full int32 range cannot overflow, and Raw() < 1 guarantees the
// scaled offset never reaches hi+1. When lo == hi the span degenerates to 1
// and lo is returned after a single Raw draw.
func (r *Rand) Choose(lo, hi int32) int32 {
	span := 1 + int64(hi) - int64(lo)

	return int32(int64(lo) + int64(float64(span)*r.Raw()))
}

// Roll returns a uniform value in [1, n], as a die with n sides. The caller
// must ensure n >= 1.
func (r *Rand) Roll(n int32) int32 {
	return r.Choose(1, n)
}

// Int32N returns a uniform value in [0, n). The caller must ensure n >= 1;
// Int32N(1) is always 0.
func (r *Rand) Int32N(n int32) int32 {
	return r.Choose(0, n-1)
}

// ClockSeed returns the current wall-clock time as a milliseconds-since-epoch
// seed. It is a convenience default for engine constructors, not part of any
// distribution contract, and is not reproducible across calls.
func ClockSeed() int64 {
	return ClockSeedAt(time.Now())
}

// ClockSeedAt returns t as a milliseconds-since-epoch seed.
func ClockSeedAt(t time.Time) int64 {
	return t.UnixMilli()
}
