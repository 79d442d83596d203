package todos

import "errors"

var (
	// ErrDataNotAvailable is a normal negative result: the store has nothing for the query.
	ErrDataNotAvailable = errors.New("data not available")
	ErrItemNotFound     = errors.New("task not found")
	ErrEmptyItem        = errors.New("task title or description is required")
)
