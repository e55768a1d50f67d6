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
	"github.com/spf13/cobra"
)

var (
	level            string
	bind             string
	profilingPort    int
	seed             string
	outFileArg       string
	engineName       string
	count            uint64
	kind             string
	lo               int32
	hi               int32
	sides            int32
	mu               float64
	sigma            float64
	distSize         uint64
	compression      string
	checkEngines     []string
	samples          int
	significance     float64
	workers          int
	failFast         bool
	maxErrorsToStore int
)

func setupRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		BoolP("version-json", "", false, "Print version information in JSON format")
	cmd.PersistentFlags().
		StringVarP(&level, "level", "", "info", "Specify the logging level, debug|info|warn|error|dpanic|panic|fatal")
	cmd.PersistentFlags().
		StringVarP(&bind, "bind", "b", "0.0.0.0:2112", "Specify the interface and port which to bind prometheus metrics on. Default is ':2112'")
	cmd.PersistentFlags().
		IntVarP(&profilingPort, "profiling-port", "", 0, "If non-zero starts pprof profiler on given port at 'http://0.0.0.0:<port>/profile'")
}

func setupSampleFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringVarP(&engineName, "engine", "e", "mersenne", "Engine to draw from: mersenne|lcg|xorshift|pcg|chacha8")
	cmd.Flags().
		StringVarP(&seed, "seed", "s", "random", "Engine seed: a number, 'random', or any other label which gets hashed")
	cmd.Flags().Uint64VarP(&count, "count", "c", 10, "Number of values to generate")
	cmd.Flags().
		StringVarP(&kind, "kind", "k", "int32", "Draw kind: int32|int64|raw|float64|float32|choose|roll|normal|lognormal|zipf|uniform")
	cmd.Flags().Int32VarP(&lo, "lo", "", 1, "Lower bound for --kind choose, inclusive")
	cmd.Flags().Int32VarP(&hi, "hi", "", 100, "Upper bound for --kind choose, inclusive")
	cmd.Flags().Int32VarP(&sides, "sides", "", 6, "Number of die sides for --kind roll")
	cmd.Flags().Float64VarP(&mu, "mu", "", 0, "Mean for --kind normal and lognormal")
	cmd.Flags().Float64VarP(&sigma, "sigma", "", 1, "Sigma for --kind normal and lognormal")
	cmd.Flags().
		Uint64VarP(&distSize, "dist-size", "", 100000, "Value range for --kind zipf and uniform")
	cmd.Flags().
		StringVarP(&outFileArg, "outfile", "", "", "Specify the name of the file where the values should go")
	cmd.Flags().
		StringVarP(&compression, "compression", "", "none", "Compression algorithm to use for the output file, none|zstd|gzip")
}

func setupCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(
		&checkEngines, "engines", "e", []string{"mersenne", "lcg", "xorshift"},
		"Engines to run the acceptance suite against")
	cmd.Flags().
		StringVarP(&seed, "seed", "s", "random", "Base seed: a number, 'random', or any other label which gets hashed")
	cmd.Flags().IntVarP(&samples, "samples", "", 100000, "Number of draws per check")
	cmd.Flags().
		Int32VarP(&sides, "sides", "", 6, "Number of die sides for the frequency check")
	cmd.Flags().
		Float64VarP(&significance, "significance", "", 0.01, "Significance level of the frequency check")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of checks to run concurrently")
	cmd.Flags().BoolVarP(&failFast, "fail-fast", "f", false, "Stop on the first failed check")
	cmd.Flags().
		IntVarP(&maxErrorsToStore, "max-errors-to-store", "", 1000, "Maximum number of errors to store and output at the end")
	cmd.Flags().
		StringVarP(&outFileArg, "outfile", "", "", "Specify the name of the file where the results should go")
}
