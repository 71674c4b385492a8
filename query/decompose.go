package query

import (
	"fmt"
	"strings"
)

const maxNestingDepth = 64

// splitOutside splits text on sep, ignoring separators that appear
// inside quoted strings or inside parentheses and brackets. Unbalanced
// delimiters and unterminated strings are fatal.
func splitOutside(text string, sep rune) ([]string, error) {
	var (
		parts  []string
		stack  []rune
		quoted bool
		last   int
		rs     = []rune(text)
	)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		if quoted {
			if c == quoteChar {
				quoted = false
			}
			continue
		}
		switch c {
		case quoteChar:
			quoted = true
		case '(', '[':
			stack = append(stack, c)
			if len(stack) > maxNestingDepth {
				return nil, fmt.Errorf("%w: nesting too deep in %q", ErrSyntax, text)
			}
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return nil, fmt.Errorf("%w: unbalanced ')' in %q", ErrSyntax, text)
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return nil, fmt.Errorf("%w: unbalanced ']' in %q", ErrSyntax, text)
			}
			stack = stack[:len(stack)-1]
		case sep:
			if len(stack) == 0 {
				parts = append(parts, string(rs[last:i]))
				last = i + 1
			}
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unterminated string in %q", ErrSyntax, text)
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("%w: unbalanced %q in %q", ErrSyntax, string(stack[len(stack)-1]), text)
	}
	parts = append(parts, string(rs[last:]))
	return parts, nil
}

// decomposePath splits a path expression into its step tokens on dots
// that sit outside quotes and delimiters. An empty path yields no
// tokens.
func decomposePath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	parts, err := splitOutside(path, '.')
	if err != nil {
		return nil, err
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, fmt.Errorf("%w: empty step in %q", ErrSyntax, path)
		}
	}
	return parts, nil
}

// decomposeArgs splits a function argument string on top-level commas
// and checks the count against min and max. A max of -1 means
// unbounded. Empty tokens are kept so that callers can treat them as
// defaults.
func decomposeArgs(args string, min, max int) ([]string, error) {
	var parts []string
	if strings.TrimSpace(args) != "" {
		list, err := splitOutside(args, ',')
		if err != nil {
			return nil, err
		}
		for i := range list {
			list[i] = strings.TrimSpace(list[i])
		}
		parts = list
	}
	if len(parts) < min {
		return nil, fmt.Errorf("%w: expected at least %d argument(s), got %d", ErrArity, min, len(parts))
	}
	if max >= 0 && len(parts) > max {
		return nil, fmt.Errorf("%w: expected at most %d argument(s), got %d", ErrArity, max, len(parts))
	}
	return parts, nil
}
