package animation

import (
	"gonum.org/v1/gonum/mat"

	"marathonviz/domain/pace"
)

// Matrix holds the distance covered by each entity (row) at each checkpoint
// (column). Cells are within [0, race distance].
type Matrix struct {
	dense *mat.Dense
	rows  int
	cols  int
}

// BuildMatrix samples distance = speed * elapsed for every entity and
// checkpoint, rounded to 0.1 km and clamped to raceDistanceKm.
func BuildMatrix(kmPerHour []float64, grid Grid, raceDistanceKm float64) *Matrix {
	m := &Matrix{rows: len(kmPerHour), cols: grid.Len()}
	if m.rows == 0 || m.cols == 0 {
		return m
	}
	m.dense = mat.NewDense(m.rows, m.cols, nil)

	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.dense.Set(i, j, distanceAt(kmPerHour[i], grid.At(j), raceDistanceKm))
		}
	}
	return m
}

func distanceAt(kmPerHour float64, minute int, raceDistanceKm float64) float64 {
	if minute == 0 {
		return 0
	}
	d := pace.Round(kmPerHour*float64(minute)/60, 1)
	if d > raceDistanceKm {
		d = raceDistanceKm
	}
	return d
}

// Dims returns the number of entities and checkpoints.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the distance covered by entity i at checkpoint j.
func (m *Matrix) At(i, j int) float64 { return m.dense.At(i, j) }

// Row returns a copy of entity i's distances across all checkpoints.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.dense)
}
