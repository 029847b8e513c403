package domain

import (
	"errors"
	"fmt"
)

// ErrStoreUnreadable is returned when the capability query denies access to the store
var ErrStoreUnreadable = errors.New("message store is not readable")

// ConnectionError means the message store could not be opened or is not a message store.
// It is fatal for the current run; the engine stays stopped until started again.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError means a single poll failed. The watermark is left untouched and
// the next tick retries.
type QueryError struct {
	Since int64
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query messages since %d: %v", e.Since, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NotificationError covers denied permission and delivery failures.
// It never affects the clipboard write or the watermark.
type NotificationError struct {
	Op  string // "authorize" or "deliver"
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s: %v", e.Op, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
