package animation

import (
	"sort"
)

// LongRow is one (entity, checkpoint) cell of the matrix in long form.
type LongRow struct {
	Entity     int // index into the entity slice handed to BuildMatrix
	Minute     int
	DistanceKm float64
}

// Melt turns the wide matrix into one row per entity per checkpoint.
// Entities are ordered ascending by id; equal ids keep their input order.
// Each entity's rows follow the checkpoint order.
func Melt(ids []string, grid Grid, m *Matrix) []LongRow {
	rows, cols := m.Dims()
	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ids[order[a]] < ids[order[b]]
	})

	out := make([]LongRow, 0, rows*cols)
	for _, i := range order {
		for j := 0; j < cols; j++ {
			out = append(out, LongRow{Entity: i, Minute: grid.At(j), DistanceKm: m.At(i, j)})
		}
	}
	return out
}
