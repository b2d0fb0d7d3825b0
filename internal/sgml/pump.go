package sgml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Transform converts one completed record element into a caller-defined
// value. The element is owned by the pump and is released as soon as the
// transform returns; implementations must not retain references to it.
type Transform[T any] func(el *Element, source string) T

// Pump drives the prologue reader and tag filter across one input and
// produces a lazy, forward-only sequence of transformed records. Use it like
// a bufio.Scanner:
//
//	p, err := sgml.Open(path, "us-patent-grant", transform)
//	...
//	defer p.Close()
//	for p.Next() {
//	    row := p.Record()
//	    ...
//	}
//	if err := p.Err(); err != nil { ... }
//
// A pump is single-use; reprocessing means constructing a new pump over a
// fresh input.
type Pump[T any] struct {
	f       *TagFilter
	fn      Transform[T]
	source  string
	cur     T
	err     error
	dropped int64
	file    io.Closer
	done    bool
}

// NewPump returns a pump over r. The source name is passed through to the
// transform, typically for provenance columns.
func NewPump[T any](r io.Reader, source, tag string, fn Transform[T]) *Pump[T] {
	p := &Pump[T]{fn: fn, source: source}
	p.f = NewTagFilter(newPrologueReader(r, &p.dropped), tag)
	return p
}

// Open opens path and returns a pump that owns the file handle. Close
// releases it whether or not the sequence was fully consumed.
func Open[T any](path, tag string, fn Transform[T]) (*Pump[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	p := NewPump(f, filepath.Base(path), tag, fn)
	p.file = f
	return p, nil
}

// Next advances to the next record, applying the transform. It returns false
// at end of input or on a read fault; consult Err afterwards.
func (p *Pump[T]) Next() bool {
	if p.done || p.err != nil {
		return false
	}
	el, err := p.f.Next()
	if err != nil {
		p.done = true
		if !errors.Is(err, io.EOF) {
			p.err = err
		}
		return false
	}
	p.cur = p.fn(el, p.source)
	return true
}

// Record returns the value produced by the last successful Next.
func (p *Pump[T]) Record() T { return p.cur }

// Err returns the first fault encountered, if any. Recoverable markup and
// decode conditions never surface here.
func (p *Pump[T]) Err() error { return p.err }

// DroppedBytes reports how many undecodable bytes were discarded so far.
func (p *Pump[T]) DroppedBytes() int64 { return p.dropped }

// Close releases the input handle for pumps constructed with Open. It is safe
// to call after partial consumption.
func (p *Pump[T]) Close() error {
	p.done = true
	if p.file != nil {
		f := p.file
		p.file = nil
		return f.Close()
	}
	return nil
}
