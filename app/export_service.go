package app

import (
	"context"

	"marathonviz/domain/results"
	"marathonviz/internal"
	"marathonviz/internal/errors"
	"marathonviz/ports"
)

// ExportService reads a result table, runs the animation pipeline and writes
// the long-format dataset
type ExportService struct {
	source    ports.TableSource
	sink      ports.TableSink
	animation *AnimationService
	logger    *internal.Logger
}

// NewExportService wires storage around an animation pipeline
func NewExportService(source ports.TableSource, sink ports.TableSink, animation *AnimationService, logger *internal.Logger) *ExportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ExportService{
		source:    source,
		sink:      sink,
		animation: animation,
		logger:    logger,
	}
}

// Export runs variant over the table at inPath and writes outPath. Nothing
// is written unless the whole pipeline succeeds.
func (s *ExportService) Export(ctx context.Context, variant results.Variant, inPath, outPath string) (*Result, error) {
	s.logger.Info("[%s] Reading data from %s", variant.Name, inPath)
	table, err := s.source.Read(inPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", inPath)
	}

	result, err := s.animation.Run(ctx, variant, table)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to process %s", inPath)
	}

	s.logger.Info("[%s] Writing data to %s", variant.Name, outPath)
	if err := s.sink.Write(outPath, result.Table()); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", outPath)
	}
	s.logger.Info("[%s] Done (run %s, fingerprint %s)", variant.Name, result.RunID, result.Fingerprint().String()[:12])
	return result, nil
}
