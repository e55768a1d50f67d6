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

package metrics

import (
	"context"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scylladb/charybdis/pkg/uniform"
)

var registerer = prometheus.NewRegistry()

var (
	ExecutionTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "execution_time",
			Help:    "Time taken to execute a task.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000, 30000},
		},
		[]string{"task"},
	)

	RawDraws = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raw_draws",
			Help: "Primitive draws consumed, per engine.",
		},
		[]string{"engine"},
	)

	GeneratedValues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generated_values",
		},
		[]string{"engine", "kind"},
	)

	CheckResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "check_results",
		},
		[]string{"check", "engine", "result"},
	)

	MemoryMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "memory_footprint",
		},
		[]string{"type", "context"},
	)

	FileSizeMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "file_size_bytes",
		},
		[]string{"file"},
	)

	ErrorMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "errors",
	}, []string{"ty", "msg"})
)

func init() {
	r := prometheus.WrapRegistererWithPrefix("charybdis_", registerer)

	r.MustRegister(channelMetrics, ExecutionTime)

	r.MustRegister(
		RawDraws,
		GeneratedValues,
		CheckResults,
		MemoryMetrics,
		FileSizeMetrics,
		ErrorMessages,
	)

	r.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
			ReportErrors: true,
			PidFn: func() (int, error) {
				return os.Getpid(), nil
			},
		}),
		collectors.NewBuildInfoCollector(),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "go_goroutines_count",
			Help: "Number of goroutines currently active.",
		}, func() float64 {
			return float64(runtime.NumGoroutine())
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "go_gc_total_count",
			Help: "Total number of garbage collections.",
		}, func() float64 {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			return float64(m.NumGC)
		}),
	)
}

type instrumentedEngine struct {
	engine uniform.Engine
	draws  prometheus.Counter
}

// InstrumentEngine wraps engine so every primitive draw increments the
// RawDraws counter for name. The wrapper adds no synchronization and keeps
// the engine's single-owner constraint.
func InstrumentEngine(name string, engine uniform.Engine) uniform.Engine {
	return &instrumentedEngine{
		engine: engine,
		draws:  RawDraws.WithLabelValues(name),
	}
}

func (e *instrumentedEngine) Int32() int32 {
	e.draws.Inc()
	return e.engine.Int32()
}

func StartMetricsServer(ctx context.Context, bind string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		registerer, promhttp.HandlerFor(registerer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			Registry:          registerer,
			OfferedCompressions: []promhttp.Compression{
				promhttp.Zstd,
				promhttp.Gzip,
				promhttp.Identity,
			},
		}),
	))

	server := &http.Server{
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		WriteTimeout: 1 * time.Minute,
		Handler:      mux,
		Addr:         bind,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start metrics server", zap.String("bind", bind), zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

type RunningTime struct {
	start    time.Time
	observer prometheus.Observer
	task     string
}

func ExecutionTimeStart(task string) RunningTime {
	return RunningTime{
		start:    time.Now(),
		task:     task,
		observer: ExecutionTime.WithLabelValues(task),
	}
}

func (r RunningTime) Record() {
	r.observer.Observe(float64(time.Since(r.start).Microseconds()))
}

func ExecutionTimeWithError(task string, callback func() error) error {
	start := time.Now()
	err := callback()
	ExecutionTime.
		WithLabelValues(task).
		Observe(float64(time.Since(start).Nanoseconds()) / 1e3)

	return err
}
