package query

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	quoteChar     = '\''
	currentMarker = '?'
	dynamicMarker = ':'
)

func quoteText(text string) string {
	return string(quoteChar) + strings.ReplaceAll(text, string(quoteChar), "''") + string(quoteChar)
}

func unquoteText(text string) (string, error) {
	last := len(text) - 1
	if last < 1 || text[0] != quoteChar || text[last] != quoteChar {
		return "", fmt.Errorf("%w: %q is not a valid string literal", ErrLiteral, text)
	}
	return strings.ReplaceAll(text[1:last], "''", string(quoteChar)), nil
}

// parseLiteral converts a raw token into its value. Checked in order:
// keywords, quoted string, integer when the token carries no dot,
// floating point otherwise.
func parseLiteral(token string) (any, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrLiteral)
	}
	switch strings.ToLower(token) {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if token[0] == quoteChar {
		return unquoteText(token)
	}
	if !strings.Contains(token, ".") {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrLiteral, token)
		}
		return float64(n), nil
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrLiteral, token)
	}
	return f, nil
}

// looksLiteral reports whether a token must be parsed as a literal
// instead of being resolved as a path.
func looksLiteral(token string) bool {
	if token == "" {
		return false
	}
	switch strings.ToLower(token) {
	case "null", "true", "false":
		return true
	}
	c := token[0]
	return c == quoteChar || c == '-' || (c >= '0' && c <= '9')
}
