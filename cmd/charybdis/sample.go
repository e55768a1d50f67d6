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
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scylladb/charybdis/pkg/distributions"
	"github.com/scylladb/charybdis/pkg/metrics"
	"github.com/scylladb/charybdis/pkg/recorder"
	"github.com/scylladb/charybdis/pkg/uniform"
	"github.com/scylladb/charybdis/pkg/utils"
)

const progressEvery = 1_000_000

var sampleCmd = &cobra.Command{
	Use:          "sample",
	Short:        "Stream derived draws from one engine to a file or stdout.",
	RunE:         runSample,
	SilenceUsage: true,
}

func runSample(cmd *cobra.Command, _ []string) error {
	printed, err := printVersionJSON(cmd)
	if err != nil || printed {
		return err
	}

	ctx, cancel, logger := setup(cmd)
	defer cancel()
	defer utils.IgnoreError(logger.Sync)

	intSeed, err := parseSeed(seed)
	if err != nil {
		return errors.Wrap(err, "failed to parse --seed argument")
	}

	if kind == "choose" && lo > hi {
		return errors.Errorf("--lo %d must not exceed --hi %d", lo, hi)
	}
	if sides < 1 {
		return errors.Errorf("--sides must be positive, got %d", sides)
	}

	engine, err := newEngine(engineName, intSeed)
	if err != nil {
		return err
	}
	engine = metrics.InstrumentEngine(engineName, engine)

	draw, err := newDraw(kind, engine)
	if err != nil {
		return err
	}

	comp, err := recorder.ParseCompression(compression)
	if err != nil {
		return errors.Wrap(err, "failed to parse --compression argument")
	}

	sink, err := newValueSink(ctx, logger.Named("recorder"), comp)
	if err != nil {
		return err
	}

	printSampleSetup(intSeed)

	generated := metrics.GeneratedValues.WithLabelValues(engineName, kind)
	timer := metrics.ExecutionTimeStart("sample")
	scratch := make([]byte, 0, 32)

	var produced uint64
	for ; produced < count; produced++ {
		if ctx.Err() != nil {
			logger.Info("sampling interrupted", zap.Uint64("produced", produced))
			break
		}

		if err = sink.Record(utils.UnsafeBytes(draw(scratch))); err != nil {
			break
		}
		generated.Inc()

		if produced > 0 && produced%progressEvery == 0 {
			logger.Info("sampling progress",
				zap.Uint64("produced", produced),
				zap.Uint64("count", count),
			)
		}
	}

	timer.Record()

	if closeErr := sink.Close(); closeErr != nil {
		logger.Error("failed to close value sink", zap.Error(closeErr))
	}

	logger.Info("sampling finished",
		zap.Uint64("produced", produced),
		zap.String("engine", engineName),
		zap.String("kind", kind),
	)

	return err
}

// newDraw maps a --kind value onto a formatter over the engine's derived
// draws. The returned function reuses dst, so its result is only valid
// until the next call.
func newDraw(kind string, engine uniform.Engine) (func(dst []byte) string, error) {
	rnd := uniform.New(engine)

	switch kind {
	case "int32":
		return func(dst []byte) string {
			return utils.FormatString(dst, rnd.Int32())
		}, nil
	case "int64":
		return func(dst []byte) string {
			return utils.FormatString(dst, rnd.Int64())
		}, nil
	case "raw":
		return func(dst []byte) string {
			return formatFloat(dst, rnd.Raw(), 64)
		}, nil
	case "float64":
		return func(dst []byte) string {
			return formatFloat(dst, rnd.Float64(), 64)
		}, nil
	case "float32":
		return func(dst []byte) string {
			return formatFloat(dst, float64(rnd.Float32()), 32)
		}, nil
	case "choose":
		return func(dst []byte) string {
			return utils.FormatString(dst, rnd.Choose(lo, hi))
		}, nil
	case "roll":
		return func(dst []byte) string {
			return utils.FormatString(dst, rnd.Roll(sides))
		}, nil
	case "normal", "lognormal", "zipf", "uniform":
		dist, err := distributions.New(kind, engine, distSize, mu, sigma)
		if err != nil {
			return nil, err
		}

		return func(dst []byte) string {
			return formatFloat(dst, dist(), 64)
		}, nil
	default:
		return nil, errors.Errorf("unknown draw kind %q", kind)
	}
}

func formatFloat(dst []byte, v float64, bitSize int) string {
	return utils.UnsafeString(strconv.AppendFloat(dst[:0], v, 'g', -1, bitSize))
}

func newValueSink(ctx context.Context, logger *zap.Logger, comp recorder.Compression) (recorder.Sink, error) {
	if outFileArg == "" {
		return recorder.NewSink(logger, "stdout", os.Stdout, comp)
	}

	return recorder.NewFileSink(ctx, logger, outFileArg, comp)
}

func printSampleSetup(seedValue int64) {
	tw := new(tabwriter.Writer)
	tw.Init(os.Stdout, 0, 8, 2, '\t', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(tw, "Seed:\t%d\n", seedValue)
	_, _ = fmt.Fprintf(tw, "Engine:\t%s\n", engineName)
	_, _ = fmt.Fprintf(tw, "Kind:\t%s\n", kind)
	_, _ = fmt.Fprintf(tw, "Count:\t%d\n", count)
	if outFileArg == "" {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s\n", "<stdout>")
	} else {
		_, _ = fmt.Fprintf(tw, "Output file:\t%s\n", outFileArg)
	}
	_ = tw.Flush()
}
