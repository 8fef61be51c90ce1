// Package parser decomposes raw log lines of the form
//
//	<timestamp> <sensor_id> <value...>
//
// into records. It performs no I/O; callers decide how to report errors.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vjranagit/sensordat/pkg/types"
)

var (
	// ErrBlankLine is returned for empty or whitespace-only lines.
	// It is not a parse failure and should be skipped silently.
	ErrBlankLine = errors.New("blank line")

	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrMissingID        = errors.New("missing sensor id")
	ErrMissingValue     = errors.New("missing sensor value")
)

// ParseError describes why a line was rejected.
// Err is one of ErrInvalidTimestamp, ErrMissingID or ErrMissingValue.
type ParseError struct {
	Err   error
	Token string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Limits bounds the stored length, in bytes, of ids and values.
// A zero limit disables truncation.
type Limits struct {
	MaxIDLen    int
	MaxValueLen int
}

// DefaultLimits returns the default field limits
func DefaultLimits() Limits {
	return Limits{
		MaxIDLen:    31,
		MaxValueLen: 16,
	}
}

// ParseLine parses one line with its trailing newline already removed.
// The value is everything after the sensor id, leading whitespace stripped;
// embedded and trailing whitespace is kept verbatim.
func ParseLine(line string, lim Limits) (types.Record, error) {
	rest := trimLeftSpace(line)
	if rest == "" {
		return types.Record{}, ErrBlankLine
	}

	tsToken, rest := nextToken(rest)
	ts, ok := parseTimestamp(tsToken)
	if !ok {
		return types.Record{}, &ParseError{Err: ErrInvalidTimestamp, Token: tsToken}
	}

	id, rest := nextToken(trimLeftSpace(rest))
	if id == "" {
		return types.Record{}, &ParseError{Err: ErrMissingID}
	}

	value := trimLeftSpace(rest)
	if value == "" {
		return types.Record{}, &ParseError{Err: ErrMissingValue}
	}

	return types.Record{
		Timestamp: ts,
		SensorID:  truncate(id, lim.MaxIDLen),
		Value:     truncate(value, lim.MaxValueLen),
	}, nil
}

// parseTimestamp accepts an optional '-' followed by decimal digits only.
// The syntax is checked before conversion so that forms strconv tolerates,
// such as a leading '+', are rejected. Values outside int64 are rejected.
func parseTimestamp(tok string) (int64, bool) {
	digits := tok
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	ts, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// nextToken splits s, which must not start with whitespace, at the first
// whitespace byte.
func nextToken(s string) (token, rest string) {
	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
