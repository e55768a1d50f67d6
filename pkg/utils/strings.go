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

package utils

import (
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// UnsafeString reinterprets data as a string without copying. The caller
// must not mutate data afterwards.
func UnsafeString(data []byte) string {
	return unsafe.String(unsafe.SliceData(data), len(data))
}

// UnsafeBytes reinterprets s as a byte slice without copying. The caller
// must not mutate the result.
func UnsafeBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// FormatString renders integer into dst and returns the backing bytes as a
// string. dst is reused from the start, so the result is only valid until
// the next call with the same buffer.
func FormatString[T constraints.Integer](dst []byte, integer T) string {
	dst = dst[:0]
	conv := strconv.AppendInt(dst, int64(integer), 10)

	return UnsafeString(conv)
}
