package query

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/midbel/jsonq/json"
)

type namePath struct {
	name string
	path string
}

// parseNamePaths splits the arguments of map and field into name:path
// pairs. A bare path borrows the name of its last element, a name
// starting with the dynamic marker is resolved at evaluation time and
// the current marker merges the whole element.
func parseNamePaths(args string) ([]namePath, error) {
	toks, err := decomposeArgs(args, 1, -1)
	if err != nil {
		return nil, err
	}
	var list []namePath
	for _, tok := range toks {
		if tok == "" {
			return nil, fmt.Errorf("%w: empty argument", ErrSyntax)
		}
		if tok == string(currentMarker) {
			list = append(list, namePath{name: tok, path: tok})
			continue
		}
		name, path, ok := cutNamePath(tok)
		if !ok {
			name, err = lastElementName(tok)
			if err != nil {
				return nil, err
			}
			path = tok
		}
		list = append(list, namePath{name: name, path: path})
	}
	return list, nil
}

func cutNamePath(tok string) (string, string, bool) {
	var (
		rs     = []rune(tok)
		start  int
		depth  int
		quoted bool
	)
	if len(rs) > 0 && rs[0] == dynamicMarker {
		start = 1
	}
	for i := start; i < len(rs); i++ {
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
		case dynamicMarker:
			if depth == 0 {
				return strings.TrimSpace(string(rs[:i])), strings.TrimSpace(string(rs[i+1:])), true
			}
		}
	}
	return "", "", false
}

func lastElementName(path string) (string, error) {
	toks, err := decomposePath(path)
	if err != nil {
		return "", err
	}
	for i := len(toks) - 1; i >= 0; i-- {
		steps, err := classify(toks[i])
		if err != nil {
			return "", err
		}
		switch s := steps[0].(type) {
		case field:
			return s.name, nil
		case call:
			continue
		}
		break
	}
	return "", fmt.Errorf("%w: can not derive a name from %q", ErrSyntax, path)
}

func checkElementName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty element name", ErrSyntax)
	}
	if strings.Contains(name, ".") {
		return fmt.Errorf("%w: illegal '.' in element name %q", ErrSyntax, name)
	}
	return nil
}

// buildObject fills base from the given pairs, resolving paths
// against element at of doc. A pair with an empty path removes the
// key instead of setting it.
func buildObject(base map[string]any, doc any, at int, pairs []namePath) (map[string]any, error) {
	for _, pair := range pairs {
		name := pair.name
		if name == string(currentMarker) {
			if obj, ok := element(doc, at).(map[string]any); ok {
				maps.Copy(base, obj)
			}
			continue
		}
		if strings.HasPrefix(name, string(dynamicMarker)) {
			v, err := evalPath(doc, at, name[1:])
			if err != nil {
				return nil, err
			}
			if !hasValue(v) {
				return nil, fmt.Errorf("%w: dynamic name %q does not evaluate to a value", ErrSyntax, name)
			}
			name = asText(v)
		}
		if err := checkElementName(name); err != nil {
			return nil, err
		}
		if pair.path == "" {
			delete(base, name)
			continue
		}
		v, err := argValueAt(doc, at, pair.path)
		if err != nil {
			return nil, err
		}
		base[name] = v
	}
	return base, nil
}

func funcMap(doc any, args string) (any, error) {
	pairs, err := parseNamePaths(args)
	if err != nil {
		return nil, err
	}
	if arr, ok := doc.([]any); ok {
		out := make([]any, len(arr))
		for i := range arr {
			obj, err := buildObject(make(map[string]any), arr, i, pairs)
			if err != nil {
				return nil, err
			}
			out[i] = obj
		}
		return out, nil
	}
	return buildObject(make(map[string]any), doc, -1, pairs)
}

func funcField(doc any, args string) (any, error) {
	pairs, err := parseNamePaths(args)
	if err != nil {
		return nil, err
	}
	switch v := doc.(type) {
	case map[string]any:
		return buildObject(maps.Clone(v), doc, -1, pairs)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			obj, ok := v[i].(map[string]any)
			if !ok {
				continue
			}
			res, err := buildObject(maps.Clone(obj), v, i, pairs)
			if err != nil {
				return nil, err
			}
			out[i] = res
		}
		return out, nil
	default:
		return nil, nil
	}
}

func funcCoalesce(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 1, -1)
	if err != nil {
		return nil, err
	}
	if arr, ok := doc.([]any); ok {
		out := make([]any, len(arr))
		for i := range arr {
			out[i], err = coalesceValue(arr[i], toks)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return coalesceValue(doc, toks)
}

func coalesceValue(doc any, toks []string) (any, error) {
	if doc != nil {
		if _, ok := doc.(map[string]any); !ok {
			return doc, nil
		}
	}
	for _, tok := range toks {
		v, err := argValue(doc, tok)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func funcCsv(doc any, args string) (any, error) {
	path, err := getParamPath(args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		doc, err = evalPath(doc, -1, path)
		if err != nil {
			return nil, err
		}
	}
	switch doc.(type) {
	case []any, map[string]any:
	default:
		return nil, nil
	}
	var fields []string
	collectScalars(doc, func(v any) {
		fields = append(fields, csvQuote(asText(v)))
	})
	return strings.Join(fields, ","), nil
}

func collectScalars(doc any, keep func(any)) {
	switch v := doc.(type) {
	case []any:
		for i := range v {
			collectScalars(v[i], keep)
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			collectScalars(v[k], keep)
		}
	case nil:
	default:
		keep(v)
	}
}

func csvQuote(str string) string {
	if !strings.ContainsAny(str, ",\"\n\r") {
		return str
	}
	return "\"" + strings.ReplaceAll(str, "\"", "\"\"") + "\""
}

func funcToArray(doc any, args string) (any, error) {
	path, err := getParamPath(args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		doc, err = evalPath(doc, -1, path)
		if err != nil {
			return nil, err
		}
	}
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		out := make([]any, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			out = append(out, v[k])
		}
		return out, nil
	default:
		return nil, nil
	}
}

func funcJson(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	v, err := json.ParseString(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLiteral, err)
	}
	return v, nil
}

func funcKeys(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	var names []string
	switch v := doc.(type) {
	case map[string]any:
		names = slices.Sorted(maps.Keys(v))
	case []any:
		seen := make(map[string]struct{})
		for i := range v {
			obj, ok := v[i].(map[string]any)
			if !ok {
				continue
			}
			for k := range obj {
				seen[k] = struct{}{}
			}
		}
		names = slices.Sorted(maps.Keys(seen))
	default:
		return nil, nil
	}
	out := make([]any, len(names))
	for i := range names {
		out[i] = names[i]
	}
	return out, nil
}

func funcEntries(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, nil
	}
	out := make([]any, 0, len(obj))
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		out = append(out, map[string]any{
			"key":   k,
			"value": obj[k],
		})
	}
	return out, nil
}
