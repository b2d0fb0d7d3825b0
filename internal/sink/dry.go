package sink

import "github.com/rs/zerolog/log"

// DryWriter implements the Writer contract without touching the filesystem.
// It tracks the most recently seen row and running totals, which is enough
// for dry runs that validate parsing without persisting anything.
type DryWriter struct {
	chunk   int
	verbose bool

	last    []string
	pending int
	total   int64
	batches int64
	closed  bool
}

var _ Writer = (*DryWriter)(nil)

// NewDryWriter mirrors NewChunkWriter's threshold semantics with no I/O.
func NewDryWriter(chunkSize int, verbose bool) *DryWriter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &DryWriter{chunk: chunkSize, verbose: verbose}
}

// Insert records the row as last-seen and bumps the counters.
func (w *DryWriter) Insert(cells ...string) (bool, error) {
	if w.closed {
		return false, ErrWriterClosed
	}
	w.last = cells
	w.pending++
	w.total++
	return w.maybeCommit()
}

// InsertMany records the final row of the slice as last-seen.
func (w *DryWriter) InsertMany(rows [][]string) (bool, error) {
	if w.closed {
		return false, ErrWriterClosed
	}
	if len(rows) > 0 {
		w.last = rows[len(rows)-1]
	}
	w.pending += len(rows)
	w.total += int64(len(rows))
	return w.maybeCommit()
}

func (w *DryWriter) maybeCommit() (bool, error) {
	if w.pending < w.chunk {
		return false, nil
	}
	if err := w.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Commit emits the last-seen row for inspection when verbose and resets the
// pending count.
func (w *DryWriter) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	if w.pending == 0 {
		return nil
	}
	if w.verbose {
		log.Debug().Strs("row", w.last).Msg("dry-run chunk")
	}
	w.batches++
	w.pending = 0
	return nil
}

// Delete closes the writer; there is no file to remove.
func (w *DryWriter) Delete() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	return nil
}

// Close closes the writer.
func (w *DryWriter) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	return nil
}

// Batches reports how many chunk boundaries have been crossed.
func (w *DryWriter) Batches() int64 { return w.batches }

// Rows reports the running insert count.
func (w *DryWriter) Rows() int64 { return w.total }

// Last returns the most recently inserted row.
func (w *DryWriter) Last() []string { return w.last }
