package sqlite

import "errors"

var (
	// ErrInvalidAction indicates an action code outside the known set.
	ErrInvalidAction = errors.New("invalid action")
	// ErrClosed is returned when the storage has already been closed.
	ErrClosed = errors.New("storage closed")
)
