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

// Package distributions layers non-uniform distributions on top of a
// uniform engine: the engine supplies the raw bits, and every shape below
// is a deterministic transformation of those bits.
package distributions

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/scylladb/charybdis/pkg/uniform"
)

type (
	// Func samples one value from a derived distribution.
	Func func() float64
)

// New builds a sampler for the named distribution over engine. The engine
// becomes the sampler's single owner. size bounds the zipf and uniform
// shapes; mu and sigma parameterize the normal family and are ignored by
// the others.
func New(distribution string, engine uniform.Engine, size uint64, mu, sigma float64) (Func, error) {
	if engine == nil {
		return nil, errors.New("distribution requires an engine")
	}

	src := uniform.NewSource(engine)

	switch strings.ToLower(distribution) {
	case "zipf":
		zipf := rand.NewZipf(rand.New(src), 1.001, float64(size), size)

		return func() float64 {
			return float64(zipf.Uint64())
		}, nil
	case "lognormal":
		d := distuv.LogNormal{
			Src:   src,
			Mu:    mu,
			Sigma: sigma,
		}

		return d.Rand, nil
	case "normal":
		d := distuv.Normal{
			Src:   src,
			Mu:    mu,
			Sigma: sigma,
		}

		return d.Rand, nil
	case "uniform":
		d := Uniform{
			Engine: engine,
			Min:    0,
			Max:    float64(size),
		}

		return d.Rand, nil
	default:
		return nil, errors.Errorf("unsupported distribution: %s", distribution)
	}
}
