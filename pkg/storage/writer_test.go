package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vjranagit/sensordat/pkg/types"
)

func newSeries(t *testing.T, id string, entries ...types.Entry) *Series {
	t.Helper()

	reg := NewRegistry(nil)
	s, err := reg.FindOrCreate(id, entries[0].Value)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, reg.Append(s, e))
	}
	return s
}

func TestWriterWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "out")
	require.NoError(t, fs.MkdirAll("out", 0755))

	s := newSeries(t, "tempA",
		types.Entry{Timestamp: 10, Value: "23.5"},
		types.Entry{Timestamp: -5, Value: "is open"},
	)

	n, err := w.Write(s)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "out/tempA.dat")
	require.NoError(t, err)
	assert.Equal(t, "10 23.5\n-5 is open\n", string(data))
	assert.Equal(t, int64(len(data)), n)
}

func TestWriterTruncatesExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "")
	require.NoError(t, afero.WriteFile(fs, "s.dat", []byte("stale content that is longer\n"), 0644))

	_, err := w.Write(newSeries(t, "s", types.Entry{Timestamp: 1, Value: "x"}))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "s.dat")
	require.NoError(t, err)
	assert.Equal(t, "1 x\n", string(data))
}

func TestWriterOpenError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	w := NewWriter(fs, ".")

	_, err := w.Write(newSeries(t, "s", types.Entry{Timestamp: 1, Value: "x"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputOpen)
	assert.NotErrorIs(t, err, ErrOutputWrite)

	var oerr *OutputError
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, "s", oerr.SensorID)
}

func TestWriterRejectsPathSeparators(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "out")

	for _, id := range []string{"../escape", "a/b", "/abs"} {
		_, err := w.Write(newSeries(t, id, types.Entry{Timestamp: 1, Value: "x"}))
		assert.ErrorIs(t, err, ErrOutputOpen, id)
	}

	_, err := fs.Stat("escape.dat")
	assert.True(t, os.IsNotExist(err))
}

func TestWriterBackslashID(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs, ".")

	_, err := w.Write(newSeries(t, `a\b`, types.Entry{Timestamp: 1, Value: "x"}))

	if filepath.Separator == '\\' {
		assert.ErrorIs(t, err, ErrOutputOpen)
		return
	}

	// A backslash is an ordinary file name byte on POSIX systems
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, `a\b.dat`)
	require.NoError(t, err)
	assert.Equal(t, "1 x\n", string(data))
}

func TestWriterPath(t *testing.T) {
	assert.Equal(t, "tempA.dat", NewWriter(afero.NewMemMapFs(), "").Path("tempA"))
	assert.Equal(t, "out/tempA.dat", NewWriter(afero.NewMemMapFs(), "out").Path("tempA"))
}
