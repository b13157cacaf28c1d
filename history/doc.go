// Package history persists the query log: every answered question, the
// retrieval mode used, the answer and how long it took.
//
// The log is append-only and read recent-first. Storage backends live in
// subpackages; history/badger provides the embedded default.
package history
