package query

import (
	"encoding/base64"
	"fmt"
	"strings"
)

func funcUpperCase(doc any, args string) (any, error) {
	return applyToText(doc, args, strings.ToUpper)
}

func funcLowerCase(doc any, args string) (any, error) {
	return applyToText(doc, args, strings.ToLower)
}

func funcTrim(doc any, args string) (any, error) {
	return applyToText(doc, args, strings.TrimSpace)
}

func applyToText(doc any, args string, do func(string) string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	return do(str), nil
}

func funcLength(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	return float64(len([]rune(str))), nil
}

func funcSubstr(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 1, 2)
	if err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	rs := []rune(str)
	beg, err := argInt(doc, toks[0])
	if err != nil {
		return nil, err
	}
	end := len(rs)
	if len(toks) == 2 {
		end, err = argInt(doc, toks[1])
		if err != nil {
			return nil, err
		}
	}
	beg = clampIndex(beg, len(rs))
	end = clampIndex(end, len(rs))
	if beg >= end {
		return "", nil
	}
	return string(rs[beg:end]), nil
}

func funcPrepend(doc any, args string) (any, error) {
	return affix(doc, args, true)
}

func funcAppend(doc any, args string) (any, error) {
	return affix(doc, args, false)
}

func affix(doc any, args string, before bool) (any, error) {
	toks, err := decomposeArgs(args, 1, 1)
	if err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	other, err := argText(doc, toks[0])
	if err != nil {
		return nil, err
	}
	if before {
		return other + str, nil
	}
	return str + other, nil
}

func funcSplit(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 0, 1)
	if err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	sep := " "
	if len(toks) == 1 {
		sep, err = argText(doc, toks[0])
		if err != nil {
			return nil, err
		}
	}
	var parts []string
	if sep == "" {
		parts = strings.Fields(str)
	} else {
		parts = strings.Split(str, sep)
	}
	out := make([]any, len(parts))
	for i := range parts {
		out[i] = parts[i]
	}
	return out, nil
}

func funcB64Encode(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	return base64.StdEncoding.EncodeToString([]byte(str)), nil
}

func funcB64Decode(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	str, ok := doc.(string)
	if !ok {
		return nil, nil
	}
	buf, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not valid base64", ErrLiteral, str)
	}
	return string(buf), nil
}

func funcNotBlank(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 1, -1)
	if err != nil {
		return nil, err
	}
	if str, ok := doc.(string); ok && strings.TrimSpace(str) != "" {
		return str, nil
	}
	for _, tok := range toks {
		v, err := argValue(doc, tok)
		if err != nil {
			return nil, err
		}
		if str, ok := v.(string); ok && strings.TrimSpace(str) != "" {
			return str, nil
		}
	}
	return nil, nil
}
