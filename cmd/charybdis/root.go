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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scylladb/charybdis/pkg/metrics"
)

var (
	rootCmd = &cobra.Command{
		Use:          "charybdis",
		Short:        "Charybdis drives uniform random engines and validates their derived draws.",
		SilenceUsage: true,
	}

	versionInfo VersionInfo
)

func init() {
	versionInfo = NewVersionInfo()
	rootCmd.Version = versionInfo.String()

	setupRootFlags(rootCmd)
	setupSampleFlags(sampleCmd)
	setupCheckFlags(checkCmd)

	rootCmd.AddCommand(sampleCmd, checkCmd)
}

// setup establishes what both subcommands share: a signal-aware context,
// the logger, the metrics endpoint and, when requested, the pprof endpoint.
func setup(cmd *cobra.Command) (context.Context, context.CancelFunc, *zap.Logger) {
	ctx, cancel := signal.NotifyContext(
		cmd.Context(),
		syscall.SIGTERM,
		syscall.SIGABRT,
		syscall.SIGINT,
	)

	logger := createLogger(level)

	metrics.StartMetricsServer(ctx, bind, logger.Named("metrics"))

	if profilingPort != 0 {
		go func() {
			mux := http.NewServeMux()

			mux.HandleFunc("GET /debug/pprof/", pprof.Index)
			mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
			mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
			mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
			mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

			log.Fatal(http.ListenAndServe("0.0.0.0:"+strconv.Itoa(profilingPort), mux))
		}()
	}

	return ctx, cancel, logger
}

// printVersionJSON handles the persistent --version-json flag. It reports
// whether the command should exit because the version was printed.
func printVersionJSON(cmd *cobra.Command) (bool, error) {
	val, err := cmd.Flags().GetBool("version-json")
	if err != nil {
		return false, err
	}

	if !val {
		return false, nil
	}

	data, err := json.MarshalIndent(versionInfo, "", "    ")
	if err != nil {
		return false, err
	}

	//nolint:forbidigo
	fmt.Println(string(data))

	return true, nil
}

func createLogger(level string) *zap.Logger {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.SetLevel(zap.InfoLevel)
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		lvl,
	))
	return logger
}

func createFile(fname string, def *os.File) (*os.File, error) {
	if fname == "" {
		return def, nil
	}

	f, err := os.Create(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open output file %s", fname)
	}

	return f, nil
}
