package pipeline

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readLine struct {
	text      string
	truncated bool
}

// readAll drains a reader with a 16-byte buffer so long lines span
// several reads
func readAll(t *testing.T, input string, maxBytes int) []readLine {
	t.Helper()

	lr := &lineReader{
		br:  bufio.NewReaderSize(strings.NewReader(input), 16),
		max: maxBytes,
	}

	var lines []readLine
	for {
		text, truncated, err := lr.next()
		if errors.Is(err, io.EOF) {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, readLine{string(text), truncated})
	}
}

func TestLineReader(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []readLine
	}{
		{"empty", "", nil},
		{"single newline", "\n", []readLine{{"", false}}},
		{"no final newline", "abc\ndef", []readLine{{"abc", false}, {"def", false}}},
		{"crlf", "abc\r\nde\r\n", []readLine{{"abc", false}, {"de", false}}},
		{"exactly max", "01234567\nx\n", []readLine{{"01234567", false}, {"x", false}}},
		{"max plus one", "012345678\nx\n", []readLine{{"01234567", true}, {"x", false}}},
		{"longer than buffer", strings.Repeat("z", 40) + "\nnext\n", []readLine{{"zzzzzzzz", true}, {"next", false}}},
		{"long final line", "0123456789", []readLine{{"01234567", true}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readAll(t, tc.input, 8))
		})
	}
}

func TestLineReaderReadError(t *testing.T) {
	boom := errors.New("boom")
	lr := newLineReader(io.MultiReader(strings.NewReader("1 a 1\n"), iotest.ErrReader(boom)), 64)

	text, _, err := lr.next()
	require.NoError(t, err)
	assert.Equal(t, "1 a 1", string(text))

	_, _, err = lr.next()
	assert.ErrorIs(t, err, boom)
}
