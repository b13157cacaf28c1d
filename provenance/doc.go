// Package provenance attributes retrieved context passages back to the
// transcripts they came from.
//
// The retrieval engine returns supporting context as delimiter-separated
// sections with no source markers. The resolver matches each section
// against the chunk side-table by substring containment, then walks the
// full-docs and doc-status tables to recover a display name for the
// originating transcript. Sections that match nothing carry the
// UnknownSource sentinel rather than being dropped.
package provenance
