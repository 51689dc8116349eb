// Package animation expands per-entity average speeds into a time-sampled
// distance matrix and reshapes it into long form.
//
// Every entity is sampled on one shared checkpoint grid that runs from minute
// zero to the first multiple of the animation interval at or after the
// slowest entity's finish. Distance grows linearly with elapsed time and is
// clamped to the race distance, so entities that finish early stay at the
// finish line for the remaining checkpoints:
//
//	grid, _ := animation.NewGrid(slowestSeconds, 3)
//	m := animation.BuildMatrix(speeds, grid, 42.2)
//	rows := animation.Melt(ids, grid, m)
package animation
