// Package inspect exposes read-only statistics about the data
// source an expectation suite describes. Renderers consult it to
// enrich blocks; they never mutate it.
package inspect

// Inspectable is the capability the renderer queries for
// contextual data. Every lookup reports whether a value was found.
type Inspectable interface {
	// ColumnStats returns the profiled statistics of a column.
	ColumnStats(column string) (ColumnStats, bool)

	// ColumnType returns a type hint for a column (e.g.,
	// "string", "int", "float", "categorical").
	ColumnType(column string) (string, bool)

	// TableStats returns table-wide statistics.
	TableStats() (TableStats, bool)
}

// ColumnStats holds profiled statistics for one column.
type ColumnStats struct {
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	RowCount      *int64 `json:"row_count,omitempty" yaml:"row_count,omitempty"`
	NullCount     *int64 `json:"null_count,omitempty" yaml:"null_count,omitempty"`
	DistinctCount *int64 `json:"distinct_count,omitempty" yaml:"distinct_count,omitempty"`
	Min           any    `json:"min,omitempty" yaml:"min,omitempty"`
	Max           any    `json:"max,omitempty" yaml:"max,omitempty"`
}

// TableStats holds statistics for the whole table.
type TableStats struct {
	RowCount    int64 `json:"row_count" yaml:"row_count"`
	ColumnCount int   `json:"column_count" yaml:"column_count"`
}

// Empty is an Inspectable with no data. Every lookup misses.
type Empty struct{}

// ColumnStats always misses.
func (Empty) ColumnStats(string) (ColumnStats, bool) { return ColumnStats{}, false }

// ColumnType always misses.
func (Empty) ColumnType(string) (string, bool) { return "", false }

// TableStats always misses.
func (Empty) TableStats() (TableStats, bool) { return TableStats{}, false }

// chain answers from the first Inspectable that has the value.
type chain []Inspectable

// Chain returns an Inspectable that tries primary first and then
// each auxiliary source in order. Nil sources are skipped.
func Chain(primary Inspectable, auxiliary ...Inspectable) Inspectable {
	c := make(chain, 0, 1+len(auxiliary))
	for _, in := range append([]Inspectable{primary}, auxiliary...) {
		if in != nil {
			c = append(c, in)
		}
	}
	if len(c) == 1 {
		return c[0]
	}
	return c
}

func (c chain) ColumnStats(column string) (ColumnStats, bool) {
	for _, in := range c {
		if s, ok := in.ColumnStats(column); ok {
			return s, true
		}
	}
	return ColumnStats{}, false
}

func (c chain) ColumnType(column string) (string, bool) {
	for _, in := range c {
		if t, ok := in.ColumnType(column); ok {
			return t, true
		}
	}
	return "", false
}

func (c chain) TableStats() (TableStats, bool) {
	for _, in := range c {
		if s, ok := in.TableStats(); ok {
			return s, true
		}
	}
	return TableStats{}, false
}
