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

// MT19937 recurrence parameters.
const (
	mtStateLen  = 624
	mtShift     = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
	mtInitMult  = 1812433253
)

// Mersenne is the MT19937 generator. It regenerates its 624-word state in
// blocks and tempers each word on the way out, emitting the full 32-bit
// range. The zero value is not usable; construct with NewMersenne.
type Mersenne struct {
	index int
	state [mtStateLen]uint32
}

var _ Engine = (*Mersenne)(nil)

// NewMersenne returns an MT19937 engine. Only the low 32 bits of seed enter
// the state initializer.
func NewMersenne(seed int64) *Mersenne {
	m := &Mersenne{}
	m.reseed(uint32(seed))

	return m
}

// NewMersenneClock returns an MT19937 engine seeded from ClockSeed.
func NewMersenneClock() *Mersenne {
	return NewMersenne(ClockSeed())
}

func (m *Mersenne) reseed(seed uint32) {
	m.state[0] = seed
	for i := 1; i < mtStateLen; i++ {
		m.state[i] = mtInitMult*(m.state[i-1]^(m.state[i-1]>>30)) + uint32(i)
	}
	m.index = mtStateLen
}

// Int32 implements Engine.
func (m *Mersenne) Int32() int32 {
	if m.index >= mtStateLen {
		m.regenerate()
	}

	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return int32(y)
}

// regenerate advances the whole state block. Indexes past the write cursor
// wrap onto words already updated in this pass, matching the reference
// three-loop formulation.
func (m *Mersenne) regenerate() {
	for i := range mtStateLen {
		y := m.state[i]&mtUpperMask | m.state[(i+1)%mtStateLen]&mtLowerMask
		next := m.state[(i+mtShift)%mtStateLen] ^ (y >> 1)
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		m.state[i] = next
	}
	m.index = 0
}
