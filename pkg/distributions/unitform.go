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

package distributions

import (
	"github.com/scylladb/charybdis/pkg/uniform"
)

// Uniform rescales an engine's open-interval draw onto [Min, Max). Engine
// must be non-nil.
type Uniform struct {
	Engine uniform.Engine
	Min    float64
	Max    float64
}

// Rand draws one value. The underlying draw is strictly inside the unit
// interval, so Min itself is approached but returned only when the span
// collapses to zero width.
func (u Uniform) Rand() float64 {
	return uniform.New(u.Engine).Float64()*(u.Max-u.Min) + u.Min
}

// Uint64 truncates Rand to an unsigned integer.
func (u Uniform) Uint64() uint64 {
	return uint64(u.Rand())
}
