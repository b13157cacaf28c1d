package history

import "errors"

var (
	// ErrRecordRequired is returned when a nil record is appended.
	ErrRecordRequired = errors.New("record required")

	// ErrInvalidLimit is returned when a listing limit is not positive.
	ErrInvalidLimit = errors.New("limit must be positive")
)
