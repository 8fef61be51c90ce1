// Package pipeline drives a run: every input line is parsed into the
// registry, then each sensor is sorted and written to its own file.
//
// Malformed lines, lines for sensors beyond the registry limit, and sensors
// whose output file cannot be written are logged and skipped. Lines longer
// than the configured maximum are cut to that length. Read errors and
// allocation failures abort the run before any output is produced.
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/vjranagit/sensordat/internal/config"
	"github.com/vjranagit/sensordat/pkg/parser"
	"github.com/vjranagit/sensordat/pkg/storage"
)

// ErrRead is returned when reading or decoding the input stream fails
var ErrRead = errors.New("cannot read input")

// Pipeline turns one input stream into per-sensor output files
type Pipeline struct {
	cfg    *config.Config
	writer *storage.Writer
	logger *zap.Logger
}

// New creates a pipeline writing into cfg.Output.Dir on fs
func New(cfg *config.Config, fs afero.Fs, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		cfg:    cfg,
		writer: storage.NewWriter(fs, cfg.Output.Dir),
		logger: logger,
	}
}

// Run consumes r completely, then writes every sensor.
// A non-nil error means the run aborted (or the configuration is invalid)
// and no files were written.
func (p *Pipeline) Run(r io.Reader) (*Report, error) {
	report := &Report{}
	if err := p.cfg.Validate(); err != nil {
		return report, fmt.Errorf("invalid configuration: %w", err)
	}

	reg := storage.NewRegistry(p.cfg.ToStorageConfig())

	if err := p.ingest(r, reg, report); err != nil {
		return report, err
	}

	report.Sensors = reg.Len()
	report.Entries = reg.EntryCount()

	p.flush(reg, report)

	return report, nil
}

// ingest parses every line of r into reg
func (p *Pipeline) ingest(r io.Reader, reg *storage.Registry, report *Report) error {
	lines := newLineReader(r, p.cfg.Input.MaxLineBytes)
	lim := p.cfg.ToParserLimits()

	for {
		text, truncated, err := lines.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w after line %d: %w", ErrRead, report.Lines, err)
		}

		report.Lines++
		line := report.Lines

		if truncated {
			p.logger.Warn("line too long, keeping leading bytes",
				zap.Int("line", line),
				zap.Int("kept", len(text)))
			report.Truncated++
		}

		rec, err := parser.ParseLine(string(text), lim)
		if errors.Is(err, parser.ErrBlankLine) {
			report.Blank++
			continue
		}
		if err != nil {
			p.logger.Warn("skipping malformed line", zap.Int("line", line), zap.Error(err))
			report.Malformed++
			continue
		}

		s, err := reg.FindOrCreate(rec.SensorID, rec.Value)
		if errors.Is(err, storage.ErrRegistryFull) {
			p.logger.Warn("sensor limit reached, dropping line",
				zap.Int("line", line),
				zap.String("sensor", rec.SensorID))
			report.Rejected++
			continue
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if err := reg.Append(s, rec.Entry()); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// flush sorts and writes each sensor in first-seen order.
// A sensor that cannot be written is skipped.
func (p *Pipeline) flush(reg *storage.Registry, report *Report) {
	for s := range reg.All() {
		s.Sort()

		n, err := p.writer.Write(s)
		report.BytesWritten += n
		if err != nil {
			p.logger.Error("skipping sensor output", zap.String("sensor", s.ID), zap.Error(err))
			report.FilesFailed++
		} else {
			p.logger.Debug("wrote sensor",
				zap.String("sensor", s.ID),
				zap.Stringer("type", s.Type),
				zap.Int("entries", s.Len()),
				zap.String("path", p.writer.Path(s.ID)))
			report.FilesWritten++
		}

		reg.Release(s)
	}
}
