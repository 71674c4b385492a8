package query

import (
	"cmp"
	"fmt"
	"strings"
	"unicode"
)

type operator int8

const (
	opNone operator = iota
	opEq
	opNe
	opGt
	opGe
	opLt
	opLe
	opAnd
	opOr
)

type comparison struct {
	op    operator
	left  string
	right string
}

// opStep is one entry of the operation stack built from a filter
// expression: a logical relation to the previous entry plus an
// operand, which is either a plain term, a comparison or a
// parenthesized sub expression.
type opStep struct {
	op    operator
	not   bool
	text  string
	group bool
	cmp   *comparison
}

func parseStack(expr string) ([]*opStep, error) {
	var (
		rs    = []rune(expr)
		stack []*opStep
		next  operator
		i     int
	)
	skip := func() {
		for i < len(rs) && unicode.IsSpace(rs[i]) {
			i++
		}
	}
	for {
		skip()
		if i >= len(rs) {
			return nil, fmt.Errorf("%w: missing operand in filter %q", ErrSyntax, expr)
		}
		step := opStep{
			op: next,
		}
		for i < len(rs) && rs[i] == '!' && !(i+1 < len(rs) && rs[i+1] == '=') {
			step.not = !step.not
			i++
			skip()
		}
		if i < len(rs) && rs[i] == '(' {
			at, err := matchDelim(rs[i:], '(', ')', expr)
			if err != nil {
				return nil, err
			}
			step.group = true
			step.text = strings.TrimSpace(string(rs[i+1 : i+at]))
			if step.text == "" {
				return nil, fmt.Errorf("%w: empty group in filter %q", ErrSyntax, expr)
			}
			i += at + 1
		} else {
			str, at, err := scanOperand(rs, i, expr)
			if err != nil {
				return nil, err
			}
			if str == "" {
				return nil, fmt.Errorf("%w: missing operand in filter %q", ErrSyntax, expr)
			}
			step.text = str
			i = at
		}
		skip()
		if op, n := scanRelational(rs[i:]); op != opNone {
			if step.group {
				return nil, fmt.Errorf("%w: comparison on group in filter %q", ErrSyntax, expr)
			}
			i += n
			skip()
			str, at, err := scanOperand(rs, i, expr)
			if err != nil {
				return nil, err
			}
			if str == "" {
				return nil, fmt.Errorf("%w: dangling operator in filter %q", ErrSyntax, expr)
			}
			i = at
			step.cmp = &comparison{
				op:    op,
				left:  step.text,
				right: str,
			}
			step.text = ""
		}
		stack = append(stack, &step)
		skip()
		if i >= len(rs) {
			break
		}
		switch rs[i] {
		case '&':
			next = opAnd
		case '|':
			next = opOr
		default:
			return nil, fmt.Errorf("%w: unexpected %q in filter %q", ErrSyntax, string(rs[i]), expr)
		}
		i++
	}
	return stack, nil
}

func scanOperand(rs []rune, i int, expr string) (string, int, error) {
	var (
		depth  int
		quoted bool
		start  = i
	)
loop:
	for ; i < len(rs); i++ {
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
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return "", 0, fmt.Errorf("%w: unbalanced %q in filter %q", ErrSyntax, string(c), expr)
			}
		case '&', '|', '=', '<', '>', '!':
			if depth == 0 {
				break loop
			}
		}
	}
	if quoted {
		return "", 0, fmt.Errorf("%w: unterminated string in filter %q", ErrSyntax, expr)
	}
	if depth != 0 {
		return "", 0, fmt.Errorf("%w: unbalanced delimiter in filter %q", ErrSyntax, expr)
	}
	return strings.TrimSpace(string(rs[start:i])), i, nil
}

func scanRelational(rs []rune) (operator, int) {
	if len(rs) == 0 {
		return opNone, 0
	}
	switch rs[0] {
	case '=':
		return opEq, 1
	case '!':
		if len(rs) > 1 && rs[1] == '=' {
			return opNe, 2
		}
	case '>':
		if len(rs) > 1 && rs[1] == '=' {
			return opGe, 2
		}
		return opGt, 1
	case '<':
		if len(rs) > 1 && rs[1] == '=' {
			return opLe, 2
		}
		return opLt, 1
	}
	return opNone, 0
}

// evalStack evaluates a filter expression for element at of arr.
// Steps joined by & form a conjunction group; a group that is already
// true when an | is met short circuits the whole expression, and a
// failed group skips the remaining steps of that group.
func evalStack(expr string, arr []any, at, depth int) (bool, error) {
	if depth > maxNestingDepth {
		return false, fmt.Errorf("%w: nesting too deep in filter %q", ErrSyntax, expr)
	}
	stack, err := parseStack(expr)
	if err != nil {
		return false, err
	}
	group := true
	for i, step := range stack {
		if i > 0 && step.op == opOr {
			if group {
				return true, nil
			}
			group = true
		}
		if !group {
			continue
		}
		group, err = step.eval(arr, at, depth)
		if err != nil {
			return false, err
		}
	}
	return group, nil
}

func (s *opStep) eval(arr []any, at, depth int) (bool, error) {
	var (
		res bool
		err error
	)
	switch {
	case s.cmp != nil:
		var left, right any
		left, err = resolveOperand(arr, at, s.cmp.left)
		if err != nil {
			return false, err
		}
		right, err = resolveOperand(arr, at, s.cmp.right)
		if err != nil {
			return false, err
		}
		res = compareValues(s.cmp.op, left, right)
	case s.group:
		res, err = evalStack(s.text, arr, at, depth+1)
		if err != nil {
			return false, err
		}
	default:
		var v any
		v, err = resolveOperand(arr, at, s.text)
		if err != nil {
			return false, err
		}
		res = truthy(v)
	}
	if s.not {
		res = !res
	}
	return res, nil
}

func resolveOperand(arr []any, at int, token string) (any, error) {
	if looksLiteral(token) {
		return parseLiteral(token)
	}
	return evalPath(arr, at, token)
}

func typeRank(v any) int {
	switch v.(type) {
	case float64:
		return 0
	case string:
		return 1
	case bool:
		return 2
	default:
		return 3
	}
}

// orderValues gives the relative order of two values and whether they
// are of the same comparable kind. Mixed kinds order as number,
// string, boolean, then everything else.
func orderValues(left, right any) (int, bool) {
	lr, rr := typeRank(left), typeRank(right)
	if lr != rr {
		return cmp.Compare(lr, rr), false
	}
	switch lv := left.(type) {
	case float64:
		return cmp.Compare(lv, right.(float64)), true
	case string:
		return strings.Compare(lv, right.(string)), true
	case bool:
		rv := right.(bool)
		switch {
		case lv == rv:
			return 0, true
		case rv:
			return -1, true
		default:
			return 1, true
		}
	default:
		if left == nil && right == nil {
			return 0, true
		}
		return 0, false
	}
}

func compareValues(op operator, left, right any) bool {
	ord, same := orderValues(left, right)
	switch op {
	case opEq:
		return same && ord == 0
	case opNe:
		return !same || ord != 0
	case opGt:
		return ord > 0
	case opGe:
		return ord > 0 || (same && ord == 0)
	case opLt:
		return ord < 0
	case opLe:
		return ord < 0 || (same && ord == 0)
	default:
		return false
	}
}

func truthy(v any) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return strings.EqualFold(v, "true")
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return false
	}
}
