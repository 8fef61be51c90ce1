// Sensordat groups a log of timestamped sensor readings into one file per
// sensor, newest reading first.
//
// Usage: sensordat <input-file>
//
// Each input line has the form "<timestamp> <sensor_id> <value...>". The
// input may be plain text or zstd/gzip compressed. Output files are named
// <sensor_id>.dat and written to the current directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vjranagit/sensordat/internal/config"
	"github.com/vjranagit/sensordat/internal/logging"
	"github.com/vjranagit/sensordat/pkg/pipeline"
	"github.com/vjranagit/sensordat/pkg/source"
)

const (
	version = "0.1.0"
)

func main() {
	os.Exit(execute(os.Args[1:], afero.NewOsFs(), config.DefaultConfig(), os.Stdout, os.Stderr))
}

// execute runs the command and maps the outcome to a process exit code
func execute(args []string, fs afero.Fs, cfg *config.Config, stdout, stderr io.Writer) int {
	logger := logging.New(stderr, zapcore.InfoLevel)
	defer logger.Sync()

	cmd := newRootCmd(fs, cfg, logger, stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(fs afero.Fs, cfg *config.Config, logger *zap.Logger, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "sensordat <input-file>",
		Short:   "Split a sensor reading log into one sorted file per sensor",
		Version: version,
		Args:    cobra.ExactArgs(1),
		// Runtime failures are logged below; cobra only reports usage errors
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			if err := run(args[0], fs, cfg, logger); err != nil {
				logger.Error("processing failed", zap.Error(err))
				return err
			}

			fmt.Fprintln(stdout, "Processing complete.")
			return nil
		},
	}
}

func run(path string, fs afero.Fs, cfg *config.Config, logger *zap.Logger) error {
	if path == "" {
		return errors.New("input file name cannot be empty")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	in, err := source.Open(fs, path)
	if err != nil {
		return err
	}
	defer in.Close()

	logger.Debug("reading input", zap.String("path", path), zap.Stringer("format", in.Format))

	report, err := pipeline.New(cfg, fs, logger).Run(in)
	if err != nil {
		return err
	}

	logger.Info("run summary", report.Fields()...)

	return nil
}
