// Copyright 2025 Traversaal AI
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

package history

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/traversaal-ai/lennyhub-rag/core"
)

// QueryRecordMUS is the MUS binary serializer for core.QueryRecord.
// Timestamps travel as Unix micro values.
var QueryRecordMUS = queryRecordMUS{}

type queryRecordMUS struct{}

// Marshal writes the record into bs and returns the bytes written.
// bs must be at least Size(v) long.
func (s queryRecordMUS) Marshal(v core.QueryRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Question, bs[n:])
	n += ord.String.Marshal(v.Mode, bs[n:])
	n += ord.String.Marshal(v.Answer, bs[n:])
	n += varint.Int64.Marshal(int64(v.Duration), bs[n:])
	n += varint.Int64.Marshal(v.Timestamp.UnixMicro(), bs[n:])
	return
}

// Unmarshal reads a record from bs and returns it with the bytes consumed.
func (s queryRecordMUS) Unmarshal(bs []byte) (v core.QueryRecord, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)

	var n1 int
	v.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	v.Mode, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	v.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	var duration int64
	duration, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Duration = time.Duration(duration)

	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp = time.UnixMicro(micros).UTC()
	return
}

// Size returns the serialized length of the record.
func (s queryRecordMUS) Size(v core.QueryRecord) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.Question)
	size += ord.String.Size(v.Mode)
	size += ord.String.Size(v.Answer)
	size += varint.Int64.Size(int64(v.Duration))
	size += varint.Int64.Size(v.Timestamp.UnixMicro())
	return
}

// Skip advances past one serialized record and returns the bytes skipped.
func (s queryRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}

	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}

	for i := 0; i < 2; i++ {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// MarshalQueryRecord serializes a QueryRecord to bytes.
func MarshalQueryRecord(record *core.QueryRecord) []byte {
	buf := make([]byte, QueryRecordMUS.Size(*record))
	QueryRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalQueryRecord deserializes a QueryRecord from bytes.
func UnmarshalQueryRecord(data []byte) (*core.QueryRecord, error) {
	record, _, err := QueryRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
