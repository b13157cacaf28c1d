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


package engine

import "errors"

var (
	// ErrInvalidMode is returned when a query mode string is not recognized.
	ErrInvalidMode = errors.New("invalid query mode (want hybrid, local, global or naive)")

	// ErrBaseURLRequired is returned when the engine base URL is missing.
	ErrBaseURLRequired = errors.New("engine config: BaseURL is required")

	// ErrInvalidTimeout is returned when a timeout is zero or negative.
	ErrInvalidTimeout = errors.New("engine config: timeouts must be positive")
)
