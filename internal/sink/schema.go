// Package sink persists extracted rows to an append-only delimited file in
// typed, fixed-size batches.
package sink

import "github.com/apache/arrow-go/v18/arrow"

// Type is the declared type of a column.
type Type int

const (
	// String cells are written verbatim; coercion never fails.
	String Type = iota
	// Int cells are nullable 64-bit integers; a cell that does not parse
	// degrades to null rather than failing the batch.
	Int
)

// Column pairs a name with its declared type.
type Column struct {
	Name string
	Type Type
}

// Schema is an ordered set of columns. Every row handed to a writer must
// have exactly one cell per column, positionally aligned.
type Schema []Column

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

func (s Schema) arrow() *arrow.Schema {
	fields := make([]arrow.Field, len(s))
	for i, c := range s {
		dt := arrow.DataType(arrow.BinaryTypes.String)
		if c.Type == Int {
			dt = arrow.PrimitiveTypes.Int64
		}
		fields[i] = arrow.Field{Name: c.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
