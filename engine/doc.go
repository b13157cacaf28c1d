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


// Package engine defines the narrow surface through which this repository
// talks to the external retrieval engine.
//
// The engine owns embedding, generation and the vector index; this package
// only abstracts the two operations the application needs:
//
//   - Inserter: index a document's text under a stable document ID
//   - Querier: answer a question, or return the raw retrieved context
//
// # Implementation Packages
//
//   - engine/lightrag: HTTP client for a LightRAG-compatible server
//   - engine/openai: one-shot credential probe for pre-flight checks
//   - engine/mock: test doubles with function-field behavior injection
//
// Production constructors (lightrag.NewClient) return the engine.Engine
// interface to keep callers decoupled from the concrete transport. Mock
// constructors return concrete types so tests can inspect call counts and
// inject behavior.
package engine
