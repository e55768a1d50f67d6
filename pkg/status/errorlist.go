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

package status

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"
)

type CheckError struct {
	Timestamp time.Time `json:"timestamp"`
	Check     string    `json:"check"`
	Engine    string    `json:"engine"`
	Message   string    `json:"message"`
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("CheckError(check=%s, engine=%s): %s time=%s",
		e.Check, e.Engine, e.Message, e.Timestamp.Format(time.RFC3339))
}

// ErrorList is a fixed-capacity list that multiple workers append to
// without locking. Slots are claimed with an atomic index and filled with
// atomic pointer stores; appends past the capacity are dropped.
type ErrorList struct {
	errors []*CheckError
	idx    atomic.Int32
	limit  int32
}

func NewErrorList(limit int32) *ErrorList {
	return &ErrorList{
		limit:  limit,
		errors: make([]*CheckError, limit),
	}
}

func (el *ErrorList) AddError(err *CheckError) {
	idx := el.idx.Add(1)
	if idx <= el.limit {
		atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(&el.errors[idx-1])), unsafe.Pointer(err))
	}
}

func (el *ErrorList) Errors() []*CheckError {
	out := make([]*CheckError, 0)
	for id := range el.errors {
		err := atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(&el.errors[id])))
		if err != nil {
			out = append(out, (*CheckError)(err))
		}
	}
	return out
}

func (el *ErrorList) Cap() int32 {
	return el.limit
}

func (el *ErrorList) MarshalJSON() ([]byte, error) {
	return json.Marshal(el.Errors())
}
