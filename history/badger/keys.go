package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/traversaal-ai/lennyhub-rag/core"
)

// Key prefixes for the query log
const (
	queryRecordPrefix     = "qryrec"
	queryRecordDatePrefix = "qryrecd"
)

// makeQueryRecordKey generates a key for a query record by ID.
func makeQueryRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queryRecordPrefix, id))
}

// makeQueryDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeQueryDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := queryRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// dateIndexPrefix returns the prefix shared by all date index keys.
func dateIndexPrefix() []byte {
	return []byte(queryRecordDatePrefix + ":")
}

// dateIndexSeekKey returns a key past every possible date index entry,
// used to start reverse iteration at the newest record.
func dateIndexSeekKey() []byte {
	prefix := dateIndexPrefix()
	seek := make([]byte, len(prefix)+16)
	copy(seek, prefix)
	for i := len(prefix); i < len(seek); i++ {
		seek[i] = 0xFF
	}
	return seek
}
