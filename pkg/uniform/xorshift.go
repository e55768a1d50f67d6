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

const xorshiftMult uint64 = 2685821657736338717

// Xorshift is Marsaglia's xorshift64* generator: a 64-bit shift register
// scrambled by a fixed multiplier on output. The all-zero state is a fixed
// point of the register, so a zero seed is remapped to one.
type Xorshift struct {
	state uint64
}

var _ Engine = (*Xorshift)(nil)

// NewXorshift returns an xorshift64* engine.
func NewXorshift(seed int64) *Xorshift {
	if seed == 0 {
		seed = 1
	}

	return &Xorshift{state: uint64(seed)}
}

// Int32 implements Engine.
func (x *Xorshift) Int32() int32 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27

	return int32((x.state * xorshiftMult) >> 32)
}
