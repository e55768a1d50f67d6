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

import (
	"math/rand/v2"
)

// Source adapts an Engine to math/rand/v2. Uint64 concatenates two
// primitive draws high word first, the same layout as Rand.Int64, so a
// Source and a Rand sharing one engine interleave deterministically.
// The source inherits the engine's single-owner constraint.
type Source struct {
	engine Engine
}

var _ rand.Source = (*Source)(nil)

// NewSource returns a rand/v2 source backed by engine, for use with
// rand.New and any other Source consumer.
func NewSource(engine Engine) *Source {
	return &Source{engine: engine}
}

// Uint64 implements rand.Source. Consumes exactly two primitive draws.
func (s *Source) Uint64() uint64 {
	hi := uint64(uint32(s.engine.Int32()))
	lo := uint64(uint32(s.engine.Int32()))

	return hi<<32 | lo
}

type sourceEngine struct {
	src rand.Source
}

var _ Engine = (*sourceEngine)(nil)

// FromSource adapts a rand/v2 source into an Engine by keeping the high 32
// bits of each Uint64, so PCG or ChaCha8 state can drive the conversion
// layer. One primitive draw consumes one Uint64.
func FromSource(src rand.Source) Engine {
	return &sourceEngine{src: src}
}

// Int32 implements Engine.
func (s *sourceEngine) Int32() int32 {
	return int32(s.src.Uint64() >> 32)
}
