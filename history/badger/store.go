package badger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/history"
)

// Store implements history.Store on a badger backend.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

var _ history.Store = (*Store)(nil)

// NewStore creates a query log over the given backend.
//
// Returns history.Store to enforce abstraction.
func NewStore(backend *Backend) (history.Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend required")
	}
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "history-store"),
	}, nil
}

// Append adds a record to the log. The caller's record is not mutated: a
// zero timestamp and a zero Id are filled in on the stored copy.
func (s *Store) Append(ctx context.Context, record *core.QueryRecord) (*core.QueryRecord, error) {
	if record == nil {
		return nil, history.ErrRecordRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := *record
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}
	if stored.Id == 0 {
		// Question plus timestamp keeps repeated questions distinct.
		stored.Id = core.IDFromContent(
			stored.Question + "\n" + strconv.FormatInt(stored.Timestamp.UnixMicro(), 10))
	}

	if err := core.ValidateQueryRecord(&stored); err != nil {
		return nil, err
	}

	recordKey := makeQueryRecordKey(stored.Id)
	dateKey := makeQueryDateKey(stored.Timestamp, stored.Id)
	value := history.MarshalQueryRecord(&stored)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(recordKey, value); err != nil {
			return err
		}
		return tx.Set(dateKey, recordKey)
	}, true)
	if err != nil {
		return nil, fmt.Errorf("append query record: %w", err)
	}

	s.logger.Debug("appended query record", "id", stored.Id, "mode", stored.Mode)
	return &stored, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*core.QueryRecord, error) {
	if limit < 1 {
		return nil, history.ErrInvalidLimit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]*core.QueryRecord, 0, limit)

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = dateIndexPrefix()

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(dateIndexSeekKey()); it.Valid() && len(records) < limit; it.Next() {
			recordKey, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			item, err := tx.Get(recordKey)
			if err != nil {
				return fmt.Errorf("dangling index entry %q: %w", recordKey, err)
			}

			err = item.Value(func(val []byte) error {
				record, err := history.UnmarshalQueryRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("list query records: %w", err)
	}

	return records, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
