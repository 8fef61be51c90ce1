// Package inference classifies raw sensor values.
package inference

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vjranagit/sensordat/pkg/types"
)

// MaxStringLen is the longest value still classified as types.String
const MaxStringLen = 16

// Infer returns the data type of a raw value. Rules are checked in order:
// boolean literal, float (must contain '.'), integer, short alphanumeric
// string, unknown.
func Infer(value string) types.DataType {
	if value == "true" || value == "false" {
		return types.Boolean
	}

	if strings.Contains(value, ".") && isFloat(value) {
		return types.Float
	}

	if isInteger(value) {
		return types.Integer
	}

	if len(value) <= MaxStringLen && isAlphanumeric(value) {
		return types.String
	}

	return types.Unknown
}

// isFloat reports whether value is a complete decimal floating-point number.
// strconv also accepts "Inf", "NaN", hex mantissas and digit separators,
// none of which are decimal readings, so those are rejected up front.
func isFloat(value string) bool {
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9':
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}

	_, err := strconv.ParseFloat(value, 64)
	// Overflow still consumed the whole input
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func isInteger(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func isAlphanumeric(value string) bool {
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
