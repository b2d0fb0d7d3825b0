package sink

import "errors"

// ErrWriterClosed is returned when any operation is invoked on a writer that
// has been closed or deleted. This is a programming-error fault, not a
// condition to recover from.
var ErrWriterClosed = errors.New("sink: writer is closed")

// Writer is the shared contract of the persisted and the inert writer, so a
// pump's caller can swap persistence strategy without changing pump logic.
//
// Insert and InsertMany report whether the call triggered a threshold commit.
// Commit is a no-op on an empty buffer and safe to call at shutdown. Rows
// buffered but not committed when Close is called are lost; flushing them is
// the caller's responsibility. Delete abandons the output entirely.
type Writer interface {
	Insert(cells ...string) (bool, error)
	InsertMany(rows [][]string) (bool, error)
	Commit() error
	Delete() error
	Close() error
}
