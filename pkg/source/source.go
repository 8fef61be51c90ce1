// Package source opens sensor logs, decompressing zstd and gzip input on the fly.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// ErrOpen is returned when the input cannot be opened or decoded
var ErrOpen = errors.New("cannot open input")

// Format identifies the encoding of an input stream
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "plain"
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic = []byte{0x1f, 0x8b}
)

// Reader is a decoded input stream
type Reader struct {
	io.Reader
	Format  Format
	closers []func() error
}

// Open opens path on fs and detects its encoding from the leading bytes
func Open(fs afero.Fs, path string) (*Reader, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w %q: is a directory", ErrOpen, path)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
	}
	r.closers = append(r.closers, f.Close)

	return r, nil
}

// NewReader wraps src with a decoder matching its magic number.
// Streams with no recognised magic are passed through unchanged.
func NewReader(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	switch {
	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return &Reader{
			Reader:  dec,
			Format:  Zstd,
			closers: []func() error{func() error { dec.Close(); return nil }},
		}, nil

	case bytes.HasPrefix(magic, gzipMagic):
		dec, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip decoder: %w", err)
		}
		return &Reader{
			Reader:  dec,
			Format:  Gzip,
			closers: []func() error{dec.Close},
		}, nil
	}

	return &Reader{Reader: br, Format: Plain}, nil
}

// Close releases the decoder and the underlying file, in that order
func (r *Reader) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}
