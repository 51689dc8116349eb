// Package results models marathon result tables and the entities derived
// from their rows.
package results

import (
	"math"
	"strconv"
	"strings"

	"marathonviz/domain/core"
)

// Record is one row of a result table keyed by column header.
type Record map[string]string

// Get returns the value of column, or "" when the row has no such cell.
func (r Record) Get(column string) string {
	return r[column]
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is a header-ordered set of records.
type Table struct {
	Headers []string
	Rows    []Record

	// Numeric lists columns whose values are numbers, for sinks that keep
	// typed cells.
	Numeric map[string]bool

	// Document metadata, used by sinks that support it.
	Title      string
	Identifier string
}

// HasColumn reports whether column is part of the header.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Headers {
		if h == column {
			return true
		}
	}
	return false
}

// Require fails with core.ErrMissingColumn for the first absent column.
// Empty column names are skipped.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if c == "" {
			continue
		}
		if !t.HasColumn(c) {
			return core.NewMissingColumnError(c)
		}
	}
	return nil
}

// Cells returns the rows as ordered string slices following Headers.
func (t *Table) Cells() [][]string {
	out := make([][]string, len(t.Rows))
	for i, rec := range t.Rows {
		row := make([]string, len(t.Headers))
		for j, h := range t.Headers {
			row[j] = rec[h]
		}
		out[i] = row
	}
	return out
}

// FormatFloat renders a number the way the result tables have always been
// written: shortest representation with at least one decimal ("0.0", "42.2").
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
