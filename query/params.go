package query

import (
	"fmt"
	"strconv"
	"strings"
)

// getParamPath extracts the single optional path argument accepted by
// most array functions.
func getParamPath(args string) (string, error) {
	list, err := decomposeArgs(args, 0, 1)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", nil
	}
	return list[0], nil
}

// argValue resolves a single function argument: literal tokens are
// parsed, everything else is evaluated as a path against doc.
func argValue(doc any, token string) (any, error) {
	return argValueAt(doc, -1, token)
}

func argValueAt(doc any, at int, token string) (any, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty argument", ErrLiteral)
	}
	if looksLiteral(token) {
		return parseLiteral(token)
	}
	return evalPath(doc, at, token)
}

func argText(doc any, token string) (string, error) {
	v, err := argValue(doc, token)
	if err != nil {
		return "", err
	}
	if !hasValue(v) {
		return "", fmt.Errorf("%w: %q does not evaluate to a value", ErrLiteral, token)
	}
	return asText(v), nil
}

func argInt(doc any, token string) (int, error) {
	v, err := argValue(doc, token)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrLiteral, token)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a number", ErrLiteral, token)
	}
}

// hasValue reports whether v is a non null scalar.
func hasValue(v any) bool {
	switch v.(type) {
	case bool, float64, string:
		return true
	default:
		return false
	}
}

func asText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// element gives the node a function argument path resolves against:
// the array element under evaluation, or the document itself.
func element(doc any, at int) any {
	if at >= 0 {
		arr, ok := doc.([]any)
		if !ok || at >= len(arr) {
			return nil
		}
		return arr[at]
	}
	return doc
}
