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

package uniform

// Knuth's MMIX multiplier and increment.
const (
	lcgMult uint64 = 6364136223846793005
	lcgInc  uint64 = 1442695040888963407
)

// LCG is a 64-bit linear congruential generator with the MMIX constants.
// Each step emits the high word of the new state, where the recurrence
// mixes best; the low bits never leave the state.
type LCG struct {
	state uint64
}

var _ Engine = (*LCG)(nil)

// NewLCG returns an MMIX LCG engine. Every seed is valid, including zero.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

// Int32 implements Engine.
func (l *LCG) Int32() int32 {
	l.state = l.state*lcgMult + lcgInc

	return int32(l.state >> 32)
}
