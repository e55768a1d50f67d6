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

// Package recorder streams generated values to a file through a background
// committer so that sampling hot loops never wait on disk.
package recorder

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/scylladb/charybdis/pkg/metrics"
	"github.com/scylladb/charybdis/pkg/utils"
)

const (
	defaultChanSize   = 1024
	errorsOnFileLimit = 5
	flushEvery        = 1000
	bufioWriterSize   = 8192 * 4
)

type (
	flusher interface {
		io.Writer
		Flush() error
	}

	// Sink accepts one formatted value per Record call and writes it out on
	// its own goroutine. Records submitted after Close are silently dropped.
	Sink interface {
		Record(value []byte) error
		Close() error
	}

	recorder struct {
		channel chan []byte
		wg      *sync.WaitGroup
		metrics metrics.ChannelMetrics
		closers []io.Closer
		active  atomic.Bool
	}

	nopSink struct{}
)

// NewFileSink opens filename for writing and streams records into it,
// compressed as requested. An empty filename yields a sink that discards
// everything.
func NewFileSink(ctx context.Context, logger *zap.Logger, filename string, compression Compression) (Sink, error) {
	if filename == "" {
		return nopSink{}, nil
	}

	fd, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open output file %q", filename)
	}

	go fileSizeReporter(ctx, fd)

	return NewSink(logger, filename, fd, compression)
}

// NewSink wraps an arbitrary writer. When w is an io.Closer it is closed,
// after the compressor, as part of Close.
func NewSink(logger *zap.Logger, name string, w io.Writer, compression Compression) (Sink, error) {
	writer, compressorCloser, err := compression.newWriter(w)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create compression writer")
	}

	closers := make([]io.Closer, 0, 2)
	if compressorCloser != nil {
		closers = append(closers, compressorCloser)
	}

	if closer, ok := w.(io.Closer); ok {
		closers = append(closers, closer)
	}

	r := &recorder{
		channel: make(chan []byte, defaultChanSize),
		wg:      &sync.WaitGroup{},
		metrics: metrics.NewChannelMetrics("recorder", name),
		closers: closers,
	}

	r.active.Store(true)
	r.wg.Add(1)

	go committer(r.channel, r.wg, writer, r.metrics, logger)

	// Flush on process exit even when a caller abandons the sink. Close is
	// idempotent, so the usual deferred Close stays the primary path.
	utils.AddFinalizer(func() {
		utils.IgnoreError(r.Close)
	})

	return r, nil
}

func (r *recorder) Record(value []byte) error {
	if !r.active.Load() {
		return nil
	}

	data := make([]byte, 0, len(value)+1)
	data = append(data, value...)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	r.channel <- data
	r.metrics.Inc(len(data))

	return nil
}

func (r *recorder) Close() error {
	if !r.active.Swap(false) {
		return nil
	}

	close(r.channel)
	r.wg.Wait()

	var err error
	for _, closer := range r.closers {
		err = multierr.Append(err, closer.Close())
	}

	return err
}

func committer(ch chan []byte, wg *sync.WaitGroup, writer flusher, chMetrics metrics.ChannelMetrics, logger *zap.Logger) {
	defer wg.Done()

	errsAtRow := 0
	drain := func(rec []byte) {
		chMetrics.Dec(len(rec))

		if _, err := writer.Write(rec); err != nil {
			if errors.Is(err, os.ErrClosed) || errsAtRow > errorsOnFileLimit {
				return
			}

			errsAtRow++
			logger.Error("failed to write record", zap.Error(err))
		} else {
			errsAtRow = 0
		}
	}

	counter := 0
	for rec := range ch {
		drain(rec)

		if counter++; counter%flushEvery == 0 {
			if err := writer.Flush(); err != nil {
				logger.Error("failed to flush writer", zap.Error(err))
			}
		}
	}

	// Tail records since the last periodic flush.
	if err := writer.Flush(); err != nil {
		logger.Error("failed to flush writer", zap.Error(err))
	}
}

func fileSizeReporter(ctx context.Context, fd *os.File) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := fd.Stat()
			if err != nil {
				return
			}

			metrics.FileSizeMetrics.WithLabelValues(fd.Name()).Set(float64(info.Size()))
		}
	}
}

func (nopSink) Record([]byte) error { return nil }

func (nopSink) Close() error { return nil }
