package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Step is one elementary navigation applied to the current node.
type Step interface {
	apply(doc any) (any, error)
}

type field struct {
	name string
}

func (f field) String() string {
	return fmt.Sprintf("field(%s)", f.name)
}

func (f field) apply(doc any) (any, error) {
	switch v := doc.(type) {
	case map[string]any:
		return v[f.name], nil
	case []any:
		out := make([]any, len(v))
		for i := range v {
			a, err := f.apply(v[i])
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	default:
		return nil, nil
	}
}

type index struct {
	value int
}

func (x index) String() string {
	return fmt.Sprintf("index(%d)", x.value)
}

func (x index) apply(doc any) (any, error) {
	arr, ok := doc.([]any)
	if !ok {
		return nil, nil
	}
	at := x.value
	if at < 0 {
		at += len(arr)
	}
	if at < 0 || at >= len(arr) {
		return nil, nil
	}
	return arr[at], nil
}

type slicing struct {
	start, end, step int
	hasStart, hasEnd bool
}

func (s slicing) String() string {
	return fmt.Sprintf("slice(%d:%d:%d)", s.start, s.end, s.step)
}

func (s slicing) apply(doc any) (any, error) {
	arr, ok := doc.([]any)
	if !ok {
		return nil, nil
	}
	return sliceArray(arr, s)
}

func sliceArray(arr []any, s slicing) ([]any, error) {
	if s.step == 0 {
		return nil, fmt.Errorf("%w: slice step can not be zero", ErrSyntax)
	}
	var (
		start = 0
		end   = len(arr)
	)
	if s.hasStart {
		start = clampIndex(s.start, len(arr))
	}
	if s.hasEnd {
		end = clampIndex(s.end, len(arr))
	}
	out := make([]any, 0)
	if s.step > 0 {
		for i := start; i < end; i += s.step {
			out = append(out, arr[i])
		}
	} else {
		for i := end - 1; i >= start; i += s.step {
			out = append(out, arr[i])
		}
	}
	return out, nil
}

func clampIndex(at, size int) int {
	if at < 0 {
		at += size
	}
	if at < 0 {
		return 0
	}
	if at > size {
		return size
	}
	return at
}

type filter struct {
	expr string
}

func (f filter) String() string {
	return fmt.Sprintf("filter(%s)", f.expr)
}

func (f filter) apply(doc any) (any, error) {
	arr, ok := doc.([]any)
	if !ok {
		keep, err := evalStack(f.expr, []any{doc}, 0, 0)
		if err != nil {
			return nil, err
		}
		if keep {
			return doc, nil
		}
		return nil, nil
	}
	out := make([]any, 0)
	for i := range arr {
		keep, err := evalStack(f.expr, arr, i, 0)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, arr[i])
		}
	}
	return out, nil
}

type call struct {
	name string
	args string
}

func (c call) String() string {
	return fmt.Sprintf("call(%s)", c.name)
}

func (c call) apply(doc any) (any, error) {
	fn, err := lookupFunc(c.name)
	if err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if fn.ArrayAware || !ok {
		return fn.Do(doc, c.args)
	}
	out := make([]any, len(arr))
	for i := range arr {
		a, err := fn.Do(arr[i], c.args)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

type current struct{}

func (current) String() string {
	return "current"
}

func (current) apply(doc any) (any, error) {
	return doc, nil
}

// classify turns a single path token into one or more steps: an
// optional function call or field access followed by any number of
// bracket suffixes.
func classify(token string) ([]Step, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty step", ErrSyntax)
	}
	if token == string(currentMarker) {
		return []Step{current{}}, nil
	}
	if strings.HasPrefix(token, string(dynamicMarker)) {
		return nil, fmt.Errorf("%w: dynamic name %q only allowed as object key", ErrSyntax, token)
	}
	var (
		steps []Step
		rs    = []rune(token)
		n     = scanName(rs)
		name  = string(rs[:n])
		rest  = rs[n:]
	)
	if len(rest) > 0 && rest[0] == '(' {
		if name == "" {
			return nil, fmt.Errorf("%w: missing function name in %q", ErrSyntax, token)
		}
		at, err := matchDelim(rest, '(', ')', token)
		if err != nil {
			return nil, err
		}
		steps = append(steps, call{name: name, args: string(rest[1:at])})
		rest = rest[at+1:]
	} else if name != "" {
		steps = append(steps, field{name: name})
	}
	for len(rest) > 0 && rest[0] == '[' {
		at, err := matchDelim(rest, '[', ']', token)
		if err != nil {
			return nil, err
		}
		step, err := classifySuffix(strings.TrimSpace(string(rest[1:at])), token)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		rest = rest[at+1:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected %q in step %q", ErrSyntax, string(rest), token)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty step in %q", ErrSyntax, token)
	}
	return steps, nil
}

func classifySuffix(inner, token string) (Step, error) {
	if inner == "" {
		return nil, fmt.Errorf("%w: empty brackets in %q", ErrSyntax, token)
	}
	if n, err := strconv.Atoi(inner); err == nil {
		return index{value: n}, nil
	}
	parts, err := splitOutside(inner, ':')
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return filter{expr: inner}, nil
	}
	if len(parts) > 3 {
		return nil, fmt.Errorf("%w: invalid slice %q in %q", ErrSyntax, inner, token)
	}
	var s slicing
	s.step = 1
	if v := strings.TrimSpace(parts[0]); v != "" {
		s.start, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slice start %q", ErrSyntax, v)
		}
		s.hasStart = true
	}
	if v := strings.TrimSpace(parts[1]); v != "" {
		s.end, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slice end %q", ErrSyntax, v)
		}
		s.hasEnd = true
	}
	if len(parts) == 3 {
		if v := strings.TrimSpace(parts[2]); v != "" {
			s.step, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid slice step %q", ErrSyntax, v)
			}
			if s.step == 0 {
				return nil, fmt.Errorf("%w: slice step can not be zero", ErrSyntax)
			}
		}
	}
	return s, nil
}

func scanName(rs []rune) int {
	var i int
	for i < len(rs) {
		c := rs[i]
		if unicode.IsLetter(c) || c == '_' || (i > 0 && (unicode.IsDigit(c) || c == '-')) {
			i++
			continue
		}
		break
	}
	return i
}

// matchDelim returns the offset of the delimiter closing rs[0].
func matchDelim(rs []rune, open, close rune, text string) (int, error) {
	var (
		depth  int
		quoted bool
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unbalanced %q in %q", ErrSyntax, string(open), text)
}
