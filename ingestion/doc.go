// Package ingestion schedules transcript files into the retrieval engine.
//
// A run collects *.txt files from a data directory, skips documents the
// engine has already processed, caps the batch, and pushes the remainder
// through a bounded worker pool. Each scheduled document produces exactly
// one outcome, success or failure, and the outcomes fold into a report.
// A failing document never aborts the run.
package ingestion
