package query

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

func funcSort(doc any, args string) (any, error) {
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	toks, err := decomposeArgs(args, 0, 2)
	if err != nil {
		return nil, err
	}
	var (
		path string
		asc  = true
	)
	for _, tok := range toks {
		if looksLiteral(tok) {
			v, err := parseLiteral(tok)
			if err != nil {
				return nil, err
			}
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("%w: sort ordering should be a number", ErrLiteral)
			}
			asc = f >= 0
			continue
		}
		if path != "" {
			return nil, fmt.Errorf("%w: sort accepts a single path", ErrArity)
		}
		path = tok
	}
	var keyer *Path
	if path != "" {
		keyer, err = Parse(path)
		if err != nil {
			return nil, err
		}
	}
	list := slices.Clone(arr)
	slices.SortStableFunc(list, func(a, b any) int {
		if keyer != nil {
			if obj, ok := a.(map[string]any); ok {
				a, _ = keyer.Apply(obj)
			}
			if obj, ok := b.(map[string]any); ok {
				b, _ = keyer.Apply(obj)
			}
			if a == nil {
				return 1
			}
			if b == nil {
				return -1
			}
		}
		c := sortCompare(a, b)
		if !asc {
			c = -c
		}
		return c
	})
	return list, nil
}

// sortCompare orders values for sorting: numbers, then strings, then
// booleans with true first, everything else keeps its position.
func sortCompare(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch av := a.(type) {
	case float64:
		return cmp.Compare(av, b.(float64))
	case string:
		return strings.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case av:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

func funcDistinct(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	var (
		out  = make([]any, 0, len(arr))
		seen = make(map[any]struct{})
	)
	for i := range arr {
		switch arr[i].(type) {
		case bool, float64, string:
			if _, ok := seen[arr[i]]; ok {
				continue
			}
			seen[arr[i]] = struct{}{}
			out = append(out, arr[i])
		}
	}
	return out, nil
}

func funcReverse(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case []any:
		list := slices.Clone(v)
		slices.Reverse(list)
		return list, nil
	case string:
		rs := []rune(v)
		slices.Reverse(rs)
		return string(rs), nil
	default:
		return nil, nil
	}
}

func funcShuffle(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return nil, nil
	}
	list := slices.Clone(arr)
	rand.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
	return list, nil
}

func funcSlice(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 0, 3)
	if err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	var s slicing
	s.step = 1
	if len(toks) > 0 && toks[0] != "" {
		s.start, err = argInt(doc, toks[0])
		if err != nil {
			return nil, err
		}
		s.hasStart = true
	}
	if len(toks) > 1 && toks[1] != "" {
		s.end, err = argInt(doc, toks[1])
		if err != nil {
			return nil, err
		}
		s.hasEnd = true
	}
	if len(toks) > 2 && toks[2] != "" {
		s.step, err = argInt(doc, toks[2])
		if err != nil {
			return nil, err
		}
	}
	return sliceArray(arr, s)
}

func funcFlatten(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 0, 2)
	if err != nil {
		return nil, err
	}
	var (
		path   string
		levels = 1
	)
	switch len(toks) {
	case 1:
		if looksLiteral(toks[0]) {
			levels, err = argInt(doc, toks[0])
		} else {
			path = toks[0]
		}
	case 2:
		path = toks[0]
		levels, err = argInt(doc, toks[1])
	}
	if err != nil {
		return nil, err
	}
	if path != "" {
		doc, err = evalPath(doc, -1, path)
		if err != nil {
			return nil, err
		}
	}
	arr, ok := doc.([]any)
	if !ok || levels < 1 {
		return doc, nil
	}
	return flattenArray(arr, levels), nil
}

func flattenArray(arr []any, levels int) []any {
	out := make([]any, 0, len(arr))
	for i := range arr {
		sub, ok := arr[i].([]any)
		if ok && levels > 0 {
			out = append(out, flattenArray(sub, levels-1)...)
			continue
		}
		out = append(out, arr[i])
	}
	return out
}

func funcFirst(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return arr[0], nil
}

func funcLast(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	if len(arr) == 0 {
		return nil, nil
	}
	return arr[len(arr)-1], nil
}

func funcCount(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case []any:
		return float64(len(v)), nil
	case nil:
		return float64(0), nil
	default:
		return float64(1), nil
	}
}

func numericValues(doc any) ([]float64, bool) {
	arr, ok := doc.([]any)
	if !ok {
		return nil, false
	}
	list := make([]float64, 0, len(arr))
	for i := range arr {
		switch v := arr[i].(type) {
		case float64:
			list = append(list, v)
		case nil:
		default:
			return nil, false
		}
	}
	return list, true
}

func funcSum(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	list, ok := numericValues(doc)
	if !ok {
		return nil, nil
	}
	var total float64
	for _, v := range list {
		total += v
	}
	return total, nil
}

func funcAvg(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	list, ok := numericValues(doc)
	if !ok || len(list) == 0 {
		return nil, nil
	}
	var total float64
	for _, v := range list {
		total += v
	}
	return total / float64(len(list)), nil
}

func funcMin(doc any, args string) (any, error) {
	return extremum(doc, args, -1)
}

func funcMax(doc any, args string) (any, error) {
	return extremum(doc, args, 1)
}

func extremum(doc any, args string, dir int) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	arr, ok := doc.([]any)
	if !ok {
		return doc, nil
	}
	var best any
	for i := range arr {
		if !hasValue(arr[i]) {
			continue
		}
		if best == nil || sortCompare(arr[i], best)*dir > 0 {
			best = arr[i]
		}
	}
	return best, nil
}

func funcJoin(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 0, 1)
	if err != nil {
		return nil, err
	}
	var sep string
	if len(toks) == 1 {
		sep, err = argText(doc, toks[0])
		if err != nil {
			return nil, err
		}
	}
	arr, ok := doc.([]any)
	if !ok {
		return nil, nil
	}
	parts := make([]string, 0, len(arr))
	for i := range arr {
		if !hasValue(arr[i]) {
			continue
		}
		parts = append(parts, asText(arr[i]))
	}
	return strings.Join(parts, sep), nil
}
