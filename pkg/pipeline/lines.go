package pipeline

import (
	"bufio"
	"errors"
	"io"
)

// lineReader splits input into lines, keeping at most maxBytes bytes of each.
// The remainder of an over-long line is read and discarded, so the next
// call starts on the following line.
type lineReader struct {
	br  *bufio.Reader
	max int
	buf []byte
}

func newLineReader(r io.Reader, maxBytes int) *lineReader {
	return &lineReader{
		br:  bufio.NewReader(r),
		max: maxBytes,
	}
}

// next returns the next line without its terminator ("\n" or "\r\n") and
// whether it was cut short. It returns io.EOF once the input is exhausted.
// The returned slice is only valid until the following call.
func (lr *lineReader) next() ([]byte, bool, error) {
	lr.buf = lr.buf[:0]
	truncated := false
	read := false

	for {
		chunk, err := lr.br.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}

		part := chunk
		if err == nil {
			part = part[:len(part)-1]
		}
		if room := lr.max - len(lr.buf); len(part) > room {
			part = part[:room]
			truncated = true
		}
		lr.buf = append(lr.buf, part...)

		switch {
		case err == nil:
			return lr.line(truncated), truncated, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return nil, false, io.EOF
			}
			// Final line without a newline
			return lr.line(truncated), truncated, nil
		default:
			return nil, false, err
		}
	}
}

// line drops a trailing '\r'. A truncated line lost its real ending, so it
// is returned as is.
func (lr *lineReader) line(truncated bool) []byte {
	if !truncated && len(lr.buf) > 0 && lr.buf[len(lr.buf)-1] == '\r' {
		return lr.buf[:len(lr.buf)-1]
	}
	return lr.buf
}
