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


package core

import (
	"fmt"
	"time"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Path must not be empty
//
// NOT validated:
//   - Status (owned by the scheduler, any lifecycle value is legal)
//   - file existence (checked when the scheduler reads the content)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocID)
	}

	if doc.Path == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyPath)
	}

	return nil
}

// ValidateQueryRecord validates a QueryRecord according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Timestamp must not be in the future
//
// NOT validated:
//   - Answer (a failed query persists with an empty answer)
//   - ID (0 means "derive from content on append")
func ValidateQueryRecord(record *QueryRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidQueryRecord)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, ErrEmptyQuestion)
	}

	if !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidQueryRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
