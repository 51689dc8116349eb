package ports

import "marathonviz/domain/results"

// TableSource loads a result table from storage
type TableSource interface {
	Read(path string) (*results.Table, error)
}

// TableSink persists a result table. Implementations must not leave a
// partial file behind for a table they reject.
type TableSink interface {
	Write(path string, table *results.Table) error
}
