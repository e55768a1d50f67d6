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

package main

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/twmb/murmur3"

	"github.com/scylladb/charybdis/pkg/metrics"
	"github.com/scylladb/charybdis/pkg/quality"
	"github.com/scylladb/charybdis/pkg/realrandom"
	"github.com/scylladb/charybdis/pkg/uniform"
)

// goldenGamma derives the second pcg seed word, so a single --seed value
// covers both halves of its state.
const goldenGamma = 0x9e3779b97f4a7c15

func engineFactory(name string) (func(seed int64) uniform.Engine, error) {
	switch name {
	case "mersenne":
		return func(seed int64) uniform.Engine {
			return uniform.NewMersenne(seed)
		}, nil
	case "lcg":
		return func(seed int64) uniform.Engine {
			return uniform.NewLCG(seed)
		}, nil
	case "xorshift":
		return func(seed int64) uniform.Engine {
			return uniform.NewXorshift(seed)
		}, nil
	case "pcg":
		return func(seed int64) uniform.Engine {
			return uniform.FromSource(rand.NewPCG(uint64(seed), uint64(seed)*goldenGamma+1))
		}, nil
	case "chacha8":
		return func(seed int64) uniform.Engine {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(seed))

			return uniform.FromSource(rand.NewChaCha8(sha256.Sum256(buf[:])))
		}, nil
	default:
		return nil, errors.Errorf(
			"unknown engine %q, supported engines: mersenne|lcg|xorshift|pcg|chacha8", name)
	}
}

func newEngine(name string, seed int64) (uniform.Engine, error) {
	factory, err := engineFactory(name)
	if err != nil {
		return nil, err
	}

	return factory(seed), nil
}

// namedEngines resolves the --engines list into runner factories, each
// wrapped with the raw-draw counter for its name.
func namedEngines(names []string) ([]quality.NamedEngine, error) {
	out := make([]quality.NamedEngine, 0, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)

		factory, err := engineFactory(name)
		if err != nil {
			return nil, err
		}

		out = append(out, quality.NamedEngine{
			Name: name,
			New: func(seed int64) uniform.Engine {
				return metrics.InstrumentEngine(name, factory(seed))
			},
		})
	}

	return out, nil
}

func engineNames(engines []quality.NamedEngine) []string {
	names := make([]string, 0, len(engines))
	for _, engine := range engines {
		names = append(names, engine.Name)
	}

	return names
}

// parseSeed accepts a decimal number, the word "random" for an entropy-pool
// seed, or any other label, which is hashed so runs can be pinned to a
// memorable name.
func parseSeed(value string) (int64, error) {
	if value == "" {
		return 0, errors.New("seed cannot be empty")
	}

	if value == "random" {
		return realrandom.Seed(), nil
	}

	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v, nil
	}

	return int64(murmur3.StringSum64(value)), nil
}
