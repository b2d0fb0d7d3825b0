package sink

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog/log"
)

// DefaultChunkSize is the commit threshold used when none is configured.
const DefaultChunkSize = 1000

// ChunkWriter accumulates rows and commits them to a CSV file in fixed-size
// batches. Each batch is coerced to the schema's column types through an
// Arrow record batch: string columns take the cells verbatim, integer columns
// parse each cell and fall back to null. The header line is written exactly
// once, at creation, before any batch. Rows are appended in insertion order
// and are never reordered or dropped; a coercion failure degrades the cell,
// not the row.
//
// A ChunkWriter is not safe for concurrent use; one writer per pipeline.
type ChunkWriter struct {
	path    string
	schema  Schema
	chunk   int
	verbose bool

	file *os.File
	cw   *csv.Writer
	bldr *array.RecordBuilder
	rows [][]string

	batches int64
	total   int64
	closed  bool
}

var _ Writer = (*ChunkWriter)(nil)

// NewChunkWriter creates (or truncates) path and writes the header line.
// A non-positive chunkSize selects DefaultChunkSize. With verbose set, each
// commit is logged at debug level.
func NewChunkWriter(path string, schema Schema, chunkSize int, verbose bool) (*ChunkWriter, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("sink: empty schema")
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create sink: %w", err)
	}
	if _, err := f.WriteString(strings.Join(schema.Names(), ",") + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	as := schema.arrow()
	return &ChunkWriter{
		path:    path,
		schema:  schema,
		chunk:   chunkSize,
		verbose: verbose,
		file:    f,
		cw:      csv.NewWriter(f, as, csv.WithComma(','), csv.WithNullWriter("")),
		bldr:    array.NewRecordBuilder(memory.DefaultAllocator, as),
		rows:    make([][]string, 0, chunkSize),
	}, nil
}

// Insert appends one row. It reports true when the append filled the buffer
// to the threshold and the resulting commit succeeded.
func (w *ChunkWriter) Insert(cells ...string) (bool, error) {
	if w.closed {
		return false, ErrWriterClosed
	}
	if len(cells) != len(w.schema) {
		return false, fmt.Errorf("sink: row has %d cells, schema has %d columns", len(cells), len(w.schema))
	}
	w.rows = append(w.rows, cells)
	return w.maybeCommit()
}

// InsertMany appends rows in one buffer mutation; otherwise identical to
// repeated Insert.
func (w *ChunkWriter) InsertMany(rows [][]string) (bool, error) {
	if w.closed {
		return false, ErrWriterClosed
	}
	for _, r := range rows {
		if len(r) != len(w.schema) {
			return false, fmt.Errorf("sink: row has %d cells, schema has %d columns", len(r), len(w.schema))
		}
	}
	w.rows = append(w.rows, rows...)
	return w.maybeCommit()
}

func (w *ChunkWriter) maybeCommit() (bool, error) {
	if len(w.rows) < w.chunk {
		return false, nil
	}
	if err := w.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Commit coerces the buffered rows to typed columns and appends them to the
// file. An empty buffer is a no-op. On failure the buffer is left intact so
// the caller can retry or Delete.
func (w *ChunkWriter) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(w.rows) == 0 {
		return nil
	}
	for i, col := range w.schema {
		switch col.Type {
		case Int:
			b := w.bldr.Field(i).(*array.Int64Builder)
			for _, row := range w.rows {
				v, err := strconv.ParseInt(strings.TrimSpace(row[i]), 10, 64)
				if err != nil {
					b.AppendNull()
					continue
				}
				b.Append(v)
			}
		default:
			b := w.bldr.Field(i).(*array.StringBuilder)
			for _, row := range w.rows {
				b.Append(row[i])
			}
		}
	}
	rec := w.bldr.NewRecordBatch()
	defer rec.Release()
	if err := w.cw.Write(rec); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}
	if err := w.cw.Flush(); err != nil {
		return fmt.Errorf("flush chunk: %w", err)
	}
	w.batches++
	w.total += int64(len(w.rows))
	if w.verbose {
		log.Debug().
			Str("path", w.path).
			Int64("chunk", w.batches).
			Int("rows", len(w.rows)).
			Msg("committed chunk")
	}
	w.rows = w.rows[:0]
	return nil
}

// Delete closes the writer and removes the output file, abandoning a
// partially written sink. The writer is unusable afterwards.
func (w *ChunkWriter) Delete() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.bldr.Release()
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close sink: %w", err)
	}
	if err := os.Remove(w.path); err != nil {
		return fmt.Errorf("remove sink: %w", err)
	}
	return nil
}

// Close releases the file handle. Buffered rows that were never committed are
// lost; call Commit first.
func (w *ChunkWriter) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	w.bldr.Release()
	return w.file.Close()
}

// Batches reports how many chunks have been committed.
func (w *ChunkWriter) Batches() int64 { return w.batches }

// Rows reports how many rows have been committed.
func (w *ChunkWriter) Rows() int64 { return w.total }

// Buffered reports how many rows are pending in the current chunk.
func (w *ChunkWriter) Buffered() int { return len(w.rows) }
