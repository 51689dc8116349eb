package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"marathonviz/domain/animation"
	"marathonviz/domain/core"
	"marathonviz/domain/pace"
	"marathonviz/domain/results"
	"marathonviz/domain/timing"
	"marathonviz/internal"
	"marathonviz/internal/errors"
)

// AnimationService turns a result table into the long-format animation
// dataset: annotate groups, inject median rows, derive pace and speed, build
// the distance matrix and reshape it.
type AnimationService struct {
	settings   results.Settings
	classifier results.Classifier
	logger     *internal.Logger
}

// DerivedEntity is an entity that survived the finish-time filter together
// with everything derived from its finish time.
type DerivedEntity struct {
	Entity   results.Entity
	ID       string
	Duration timing.Duration
	Pace     pace.Pace
}

// Result is the outcome of one pipeline run
type Result struct {
	RunID    core.RunID
	Variant  results.Variant
	Settings results.Settings
	Grid     animation.Grid
	Entities []DerivedEntity
	Matrix   *animation.Matrix
	Rows     []animation.LongRow
	Headers  []string // input headers plus the group column, in output order
	Excluded int      // rows dropped for a missing finish time
}

// NewAnimationService creates the pipeline. An AnimationInterval of zero in
// settings defers to each variant's own interval.
func NewAnimationService(settings results.Settings, classifier results.Classifier, logger *internal.Logger) (*AnimationService, error) {
	probe := settings
	if probe.AnimationInterval == 0 {
		probe.AnimationInterval = 1
	}
	if err := probe.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid run settings")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnimationService{settings: settings, classifier: classifier, logger: logger}, nil
}

// Run executes the pipeline for variant over table. The table is not modified.
func (s *AnimationService) Run(ctx context.Context, variant results.Variant, table *results.Table) (*Result, error) {
	startTime := time.Now()

	if err := variant.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid variant")
	}
	if err := table.Require(variant.IDColumn, variant.FinishTimeColumn, groupingSource(variant)); err != nil {
		return nil, errors.Wrapf(err, "input does not fit variant %q", variant.Name)
	}

	settings := s.settings
	settings.AnimationInterval = s.interval(variant)
	variant.Columns = variant.Columns.WithDefaults()

	result := &Result{
		RunID:    core.NewRunID(),
		Variant:  variant,
		Settings: settings,
		Headers:  outputHeaders(variant, table),
	}
	if settings.CompetitionName != "" {
		s.logger.Info("[%s] %s", variant.Name, settings.CompetitionName)
	}

	entities := s.annotate(variant, table)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("[%s] Calculating statistics", variant.Name)
	summaries, err := s.summarize(variant, entities)
	if err != nil {
		return nil, errors.Wrap(err, "median calculation failed")
	}
	entities = append(entities, summaries...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("[%s] Calculating speed", variant.Name)
	if err := s.derive(result, entities); err != nil {
		return nil, err
	}

	s.logger.Info("[%s] Building distance matrix", variant.Name)
	maxTotal := 0
	speeds := make([]float64, len(result.Entities))
	ids := make([]string, len(result.Entities))
	for i, e := range result.Entities {
		if e.Pace.TotalSeconds > maxTotal {
			maxTotal = e.Pace.TotalSeconds
		}
		speeds[i] = e.Pace.KmPerHour
		ids[i] = e.ID
	}
	grid, err := animation.NewGrid(maxTotal, settings.AnimationInterval)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build checkpoint grid")
	}
	result.Grid = grid
	result.Matrix = animation.BuildMatrix(speeds, grid, settings.RaceDistanceKm)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Rows = animation.Melt(ids, grid, result.Matrix)

	s.logger.Info("[%s] %d entities (%d median rows), %d checkpoints every %d min, %d rows in %v",
		variant.Name, len(result.Entities), len(summaries), grid.Len(), grid.Interval(),
		len(result.Rows), time.Since(startTime))
	return result, nil
}

func (s *AnimationService) interval(variant results.Variant) int {
	switch {
	case s.settings.AnimationInterval > 0:
		return s.settings.AnimationInterval
	case variant.AnimationInterval > 0:
		return variant.AnimationInterval
	default:
		return 1
	}
}

// annotate copies every input row and writes its group label.
func (s *AnimationService) annotate(variant results.Variant, table *results.Table) []results.Entity {
	entities := make([]results.Entity, 0, len(table.Rows)+len(variant.Medians))
	for i, row := range table.Rows {
		rec := row.Clone()
		if variant.GroupColumn != "" {
			label := variant.Grouping.Label(rec, variant.IDColumn, s.classifier)
			if label == "" && variant.Grouping.Strategy == results.GroupLookup {
				s.logger.Debug("[%s] no %s for %q", variant.Name, variant.GroupColumn, rec.Get(variant.IDColumn))
			}
			rec[variant.GroupColumn] = label
		}
		entities = append(entities, results.Observed{Row: rec, Line: i + 1})
	}
	return entities
}

// summarize builds one median row per requested group from the observed rows.
func (s *AnimationService) summarize(variant results.Variant, entities []results.Entity) ([]results.Entity, error) {
	if len(variant.Medians) == 0 {
		return nil, nil
	}

	samples := make([]timing.Sample, len(entities))
	for i, e := range entities {
		rec := e.Values()
		samples[i] = timing.Sample{Group: rec.Get(variant.GroupColumn), Value: rec.Get(variant.FinishTimeColumn)}
	}

	medians, err := timing.MedianByGroup(samples, variant.MedianKeys())
	if err != nil {
		return nil, err
	}

	summaries := make([]results.Entity, 0, len(variant.Medians))
	for _, m := range variant.Medians {
		row := m.Template.Clone()
		row[variant.FinishTimeColumn] = medians[m.Key]
		if variant.GroupColumn != "" && row.Get(variant.GroupColumn) == "" {
			row[variant.GroupColumn] = variant.Grouping.Label(row, variant.IDColumn, s.classifier)
		}
		summaries = append(summaries, results.Summary{Row: row, Group: m.Key, Size: groupSize(samples, m.Key)})
		s.logger.Debug("[%s] median of group %q: %s", variant.Name, m.Key, medians[m.Key])
	}
	return summaries, nil
}

func groupSize(samples []timing.Sample, group string) int {
	n := 0
	for _, smp := range samples {
		if (group == "" || smp.Group == group) && !timing.IsMissing(smp.Value) {
			n++
		}
	}
	return n
}

// derive parses finish times and computes pace for every entity that has one.
func (s *AnimationService) derive(result *Result, entities []results.Entity) error {
	variant := result.Variant
	kept := make([]DerivedEntity, 0, len(entities))
	for _, e := range entities {
		rec := e.Values()
		id := rec.Get(variant.IDColumn)
		raw := rec.Get(variant.FinishTimeColumn)
		if timing.IsMissing(raw) {
			result.Excluded++
			s.logger.Debug("[%s] %q has no finish time, skipped", variant.Name, id)
			continue
		}

		d, err := timing.ParseDuration(raw)
		if err != nil {
			return errors.Wrapf(err, "%s of %s", variant.FinishTimeColumn, describe(e, id))
		}
		kept = append(kept, DerivedEntity{
			Entity:   e,
			ID:       id,
			Duration: d,
			Pace:     pace.Derive(d.TotalSeconds(), result.Settings.RaceDistanceKm),
		})
	}
	result.Entities = kept
	return nil
}

func describe(e results.Entity, id string) string {
	switch v := e.(type) {
	case results.Observed:
		return fmt.Sprintf("row %d (%s)", v.Line, id)
	case results.Summary:
		return fmt.Sprintf("median row %q", v.Group)
	default:
		return id
	}
}

// groupingSource returns the column the grouping strategy reads, if any.
func groupingSource(variant results.Variant) string {
	switch variant.Grouping.Strategy {
	case results.GroupPrefix, results.GroupColumn:
		return variant.Grouping.Source
	case results.GroupLookup:
		if variant.Grouping.Source != "" {
			return variant.Grouping.Source
		}
		return variant.IDColumn
	default:
		return ""
	}
}

// outputHeaders places the group column before or after the input columns.
func outputHeaders(variant results.Variant, table *results.Table) []string {
	headers := make([]string, 0, len(table.Headers)+1)
	group := variant.GroupColumn
	if group == "" || table.HasColumn(group) {
		return append(headers, table.Headers...)
	}
	if variant.Grouping.Prepend {
		headers = append(headers, group)
		return append(headers, table.Headers...)
	}
	headers = append(headers, table.Headers...)
	return append(headers, group)
}

// Table renders the long rows: every input column, the derived pace columns,
// the checkpoint minute and the distance covered.
func (r *Result) Table() *results.Table {
	cols := r.Variant.Columns.WithDefaults()

	headers := append([]string(nil), r.Headers...)
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}
	for _, name := range cols.Names() {
		if !seen[name] {
			headers = append(headers, name)
			seen[name] = true
		}
	}

	rows := make([]results.Record, len(r.Rows))
	for k, lr := range r.Rows {
		e := r.Entities[lr.Entity]
		rec := e.Entity.Values().Clone()
		rec[cols.Hour] = strconv.Itoa(e.Duration.Hour)
		rec[cols.Minute] = strconv.Itoa(e.Duration.Minute)
		rec[cols.Second] = strconv.Itoa(e.Duration.Second)
		rec[cols.TotalSeconds] = strconv.Itoa(e.Pace.TotalSeconds)
		rec[cols.SecPerKm] = results.FormatFloat(e.Pace.SecPerKm)
		rec[cols.MinPerKm] = e.Pace.MinPerKm
		rec[cols.KmPerHour] = results.FormatFloat(e.Pace.KmPerHour)
		rec[cols.SortKey] = strconv.Itoa(e.Pace.SortKey)
		rec[cols.Checkpoint] = strconv.Itoa(lr.Minute)
		rec[cols.Distance] = results.FormatFloat(lr.DistanceKm)
		rows[k] = rec
	}

	numeric := map[string]bool{}
	for _, name := range []string{cols.Hour, cols.Minute, cols.Second, cols.TotalSeconds,
		cols.SecPerKm, cols.KmPerHour, cols.SortKey, cols.Checkpoint, cols.Distance} {
		numeric[name] = true
	}

	return &results.Table{
		Headers:    headers,
		Rows:       rows,
		Numeric:    numeric,
		Title:      r.Settings.CompetitionName,
		Identifier: r.RunID.String(),
	}
}

// Fingerprint hashes the rendered table; identical input gives the same value.
func (r *Result) Fingerprint() core.Hash {
	t := r.Table()
	return core.ComputeTableHash(t.Headers, t.Cells())
}

// Summaries returns the median rows that made it into the output.
func (r *Result) Summaries() []DerivedEntity {
	var out []DerivedEntity
	for _, e := range r.Entities {
		if e.Entity.IsSummary() {
			out = append(out, e)
		}
	}
	return out
}
