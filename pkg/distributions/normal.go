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
	"math/rand/v2"

	"github.com/scylladb/charybdis/pkg/uniform"
)

// Normal samples a gaussian with the given mean and deviation from a
// uniform engine. Engine must be non-nil: engines are single-owner values,
// so the package offers no hidden shared fallback.
type Normal struct {
	Engine uniform.Engine
	Mu     float64
	Sigma  float64
}

// Rand draws one normal deviate.
func (n Normal) Rand() float64 {
	return rand.New(uniform.NewSource(n.Engine)).NormFloat64()*n.Sigma + n.Mu
}

// Uint64 truncates Rand to an unsigned integer.
func (n Normal) Uint64() uint64 {
	return uint64(n.Rand())
}
