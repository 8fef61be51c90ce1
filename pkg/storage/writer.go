package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// FileExt is appended to the sensor id to name its output file
const FileExt = ".dat"

var (
	// ErrOutputOpen is returned when a sensor's output file cannot be created
	ErrOutputOpen = errors.New("cannot open output file")

	// ErrOutputWrite is returned when writing or closing an output file fails
	ErrOutputWrite = errors.New("cannot write output file")

	errUnsafeName = errors.New("sensor id is not a valid file name")
)

// OutputError reports a failure to persist one sensor.
// It matches ErrOutputOpen or ErrOutputWrite with errors.Is.
type OutputError struct {
	SensorID string
	Path     string
	Kind     error
	Err      error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%v for sensor %q (%s): %v", e.Kind, e.SensorID, e.Path, e.Err)
}

func (e *OutputError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Writer persists each series to <dir>/<id>.dat
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter creates a writer rooted at dir on fs
func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{fs: fs, dir: dir}
}

// Path returns the output path for a sensor id
func (w *Writer) Path(id string) string {
	return filepath.Join(w.dir, id+FileExt)
}

// Write truncates the sensor's output file and writes one
// "<timestamp> <value>" line per entry, in the order stored.
// It returns the number of bytes written.
func (w *Writer) Write(s *Series) (int64, error) {
	path := w.Path(s.ID)
	if !safeName(s.ID) {
		return 0, &OutputError{SensorID: s.ID, Path: path, Kind: ErrOutputOpen, Err: errUnsafeName}
	}

	f, err := w.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, &OutputError{SensorID: s.ID, Path: path, Kind: ErrOutputOpen, Err: err}
	}

	n, err := writeEntries(f, s)
	if err != nil {
		_ = f.Close()
		return n, &OutputError{SensorID: s.ID, Path: path, Kind: ErrOutputWrite, Err: err}
	}

	if err := f.Close(); err != nil {
		return n, &OutputError{SensorID: s.ID, Path: path, Kind: ErrOutputWrite, Err: err}
	}

	return n, nil
}

func writeEntries(f afero.File, s *Series) (int64, error) {
	bw := bufio.NewWriter(f)

	var (
		written int64
		line    []byte
	)
	for _, e := range s.entries {
		line = strconv.AppendInt(line[:0], e.Timestamp, 10)
		line = append(line, ' ')
		line = append(line, e.Value...)
		line = append(line, '\n')

		n, err := bw.Write(line)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write entry: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush: %w", err)
	}

	if err := f.Sync(); err != nil {
		return written, fmt.Errorf("failed to sync: %w", err)
	}

	return written, nil
}

// safeName rejects ids that would name a file outside the output directory.
// '/' is always refused; on Windows the native separator '\\' is too.
func safeName(id string) bool {
	return id != "" && !strings.ContainsRune(id, '/') && !strings.ContainsRune(id, filepath.Separator)
}
