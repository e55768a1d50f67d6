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

// Package testutils provides deterministic engines and sources for tests.
package testutils

import (
	"github.com/scylladb/charybdis/pkg/uniform"
)

// ScriptedEngine replays a fixed sequence of primitive draws, wrapping back
// to the start once the script is exhausted. Constructed without a script it
// serves a weak embedded recurrence instead, so code that draws more than a
// test expected still terminates; assertions on exact values must consume
// scripted draws only.
type ScriptedEngine struct {
	values []int32
	index  int
	seed   uint64
}

var _ uniform.Engine = (*ScriptedEngine)(nil)

// NewScriptedEngine returns an engine replaying values in order.
func NewScriptedEngine(values ...int32) *ScriptedEngine {
	return &ScriptedEngine{
		values: values,
		index:  0,
		seed:   1,
	}
}

// Int32 implements uniform.Engine.
func (e *ScriptedEngine) Int32() int32 {
	if len(e.values) > 0 {
		if e.index >= len(e.values) {
			e.index = 0
		}
		v := e.values[e.index]
		e.index++

		return v
	}

	e.seed = (e.seed*1103515245 + 12345) & 0x7fffffff

	return int32(e.seed)
}

// Reset replays the script from the start.
func (e *ScriptedEngine) Reset() {
	e.index = 0
	e.seed = 1
}

// Drawn returns the position in the current script pass, i.e. how many
// draws have been served since the last wrap or Reset.
func (e *ScriptedEngine) Drawn() int {
	return e.index
}

// ConstEngine always returns the same primitive draw. Every uniformity
// property fails on it, which makes it the negative control for statistical
// checks.
type ConstEngine int32

var _ uniform.Engine = ConstEngine(0)

// Int32 implements uniform.Engine.
func (e ConstEngine) Int32() int32 {
	return int32(e)
}

// ConstSource is a math/rand/v2 source pinned to a single value.
type ConstSource uint64

// Uint64 implements rand.Source.
func (s ConstSource) Uint64() uint64 {
	return uint64(s)
}
