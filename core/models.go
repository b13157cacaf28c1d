package core

import (
	"encoding/binary"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted records.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocIDPrefix is prepended to a transcript's file stem to form its document ID.
const DocIDPrefix = "transcript-"

// DocumentID derives the document identifier for a transcript file path.
// The ID depends only on the file stem, so moving a transcript between
// directories does not change its identity in the index.
func DocumentID(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return DocIDPrefix + stem
}

// DocumentStatus describes where a document is in its ingestion lifecycle.
type DocumentStatus int

const (
	// StatusUnseen means the document has not been scheduled yet.
	StatusUnseen DocumentStatus = iota
	// StatusProcessing means an insert attempt is in flight.
	StatusProcessing
	// StatusCompleted means the document was indexed successfully.
	StatusCompleted
	// StatusFailed means the last insert attempt failed.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s DocumentStatus) String() string {
	switch s {
	case StatusUnseen:
		return "unseen"
	case StatusProcessing:
		return "processing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Document is a single transcript file scheduled for ingestion.
// Content is read by the scheduler right before the insert call.
type Document struct {
	ID     string // derived from the file stem, see DocumentID
	Path   string
	Status DocumentStatus
}

// Outcome records the result of one insert attempt for one document.
// Exactly one Outcome is produced per scheduled document per run.
type Outcome struct {
	DocID     string
	Succeeded bool
	Error     string // original error text when Succeeded is false
}

// IngestReport aggregates the outcomes of one ingestion run.
// Invariant: Scheduled == Successful + Failed.
type IngestReport struct {
	Scheduled  int
	Successful int
	Failed     int
	Skipped    int // already present in the processed-set, never scheduled
	Duration   time.Duration
	Outcomes   []Outcome
}

// SecondsPerDocument returns the average wall-clock seconds spent per
// scheduled document, or 0 for an empty run.
func (r *IngestReport) SecondsPerDocument() float64 {
	if r.Scheduled == 0 {
		return 0
	}
	return r.Duration.Seconds() / float64(r.Scheduled)
}

// Passage is a single retrieved block of text returned by the engine as part
// of an answer's supporting context. Passages are transient: they exist only
// while a query's response is being produced.
type Passage struct {
	Content string
	ChunkID string // resolved chunk identifier, empty when unresolved
	Source  string // resolved source document display name, or "Unknown"
}

// SourceGroup collects the passages attributed to one source document.
type SourceGroup struct {
	Source   string
	Passages []Passage
}

// QueryRecord is one entry in the persisted query history.
type QueryRecord struct {
	Id        ID
	Question  string
	Mode      string
	Answer    string
	Duration  time.Duration
	Timestamp time.Time
}
