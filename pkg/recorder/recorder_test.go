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

package recorder_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scylladb/charybdis/pkg/recorder"
	"github.com/scylladb/charybdis/pkg/utils"
)

func TestFileSink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ReadData    func(tb testing.TB, f io.Reader) string
		Compression recorder.Compression
	}{
		{
			Compression: recorder.NoCompression,
			ReadData: func(tb testing.TB, f io.Reader) string {
				tb.Helper()

				data, err := io.ReadAll(f)
				if err != nil {
					tb.Fatalf("Failed to read file: %s", err)
				}

				return string(data)
			},
		},
		{
			Compression: recorder.GZIPCompression,
			ReadData: func(tb testing.TB, f io.Reader) string {
				tb.Helper()

				reader, err := gzip.NewReader(f)
				if err != nil {
					tb.Fatalf("Failed to read file: %s", err)
				}

				data, err := io.ReadAll(reader)
				if err != nil {
					tb.Fatalf("Failed to read data from file: %s", err)
				}

				return string(data)
			},
		},
		{
			Compression: recorder.ZSTDCompression,
			ReadData: func(tb testing.TB, f io.Reader) string {
				tb.Helper()
				reader, err := zstd.NewReader(f)
				if err != nil {
					tb.Fatalf("Failed to read file: %s", err)
				}

				data, err := io.ReadAll(reader)
				if err != nil {
					tb.Fatalf("Failed to read data from file: %s", err)
				}

				return string(data)
			},
		},
	}

	for _, item := range tests {
		t.Run("Compression_"+item.Compression.String(), func(t *testing.T) {
			t.Parallel()

			file := filepath.Join(t.TempDir(), "values.log")

			sink, err := recorder.NewFileSink(context.Background(), zap.NewNop(), file, item.Compression)
			require.NoError(t, err)

			for _, value := range []string{"8319", "-22", "0.4482"} {
				require.NoError(t, sink.Record([]byte(value)))
			}

			require.NoError(t, sink.Close())

			data := item.ReadData(t, utils.Must(os.Open(file)))
			require.Equal(t, "8319\n-22\n0.4482\n", data)
		})
	}
}

func TestFileSinkWithoutFilename(t *testing.T) {
	t.Parallel()

	sink, err := recorder.NewFileSink(context.Background(), zap.NewNop(), "", recorder.NoCompression)
	require.NoError(t, err)

	require.NoError(t, sink.Record([]byte("dropped")))
	require.NoError(t, sink.Close())
}

func TestSinkKeepsTrailingNewline(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer

	sink, err := recorder.NewSink(zap.NewNop(), "buffer", &buffer, recorder.NoCompression)
	require.NoError(t, err)

	require.NoError(t, sink.Record([]byte("42\n")))
	require.NoError(t, sink.Record([]byte("43")))
	require.NoError(t, sink.Close())

	require.Equal(t, "42\n43\n", buffer.String())
}

func TestSinkAfterClose(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer

	sink, err := recorder.NewSink(zap.NewNop(), "buffer", &buffer, recorder.NoCompression)
	require.NoError(t, err)

	require.NoError(t, sink.Record([]byte("kept")))
	require.NoError(t, sink.Close())

	require.NoError(t, sink.Record([]byte("dropped")))
	require.NoError(t, sink.Close())

	require.Equal(t, "kept\n", buffer.String())
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected recorder.Compression
	}{
		{input: "", expected: recorder.NoCompression},
		{input: "none", expected: recorder.NoCompression},
		{input: "zstd", expected: recorder.ZSTDCompression},
		{input: "gzip", expected: recorder.GZIPCompression},
	}

	for _, item := range tests {
		compression, err := recorder.ParseCompression(item.input)
		require.NoError(t, err)
		require.Equal(t, item.expected, compression)
		require.Equal(t, item.expected.String(), recorder.MustParseCompression(item.expected.String()).String())
	}

	_, err := recorder.ParseCompression("lz77")
	require.Error(t, err)

	require.Panics(t, func() {
		recorder.MustParseCompression("lz77")
	})
}
