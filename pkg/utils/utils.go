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

// Must unwraps a value-and-error pair in places where the error cannot
// happen, such as test fixtures and compile-time-known inputs.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}

func IgnoreError(fn func() error) {
	_ = fn()
}
