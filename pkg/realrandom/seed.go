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

// Package realrandom produces non-reproducible seeds for engine
// constructors.
package realrandom

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/bits"
	"time"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// Seed returns a seed drawn from the operating system entropy pool, falling
// back to a clock-derived value when the pool cannot be read. It never
// fails.
func Seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(b[:]))
	}

	return clockSeed()
}

// clockSeed spreads the millisecond seed with the golden-gamma multiplier
// and folds in the nanosecond clock, so calls landing on the same
// millisecond still produce different seeds.
func clockSeed() int64 {
	now := time.Now()
	v := uint64(uniform.ClockSeedAt(now))*0x9e3779b97f4a7c15 ^ uint64(now.Nanosecond())

	return int64(bits.RotateLeft64(v, -int(v>>58)))
}
