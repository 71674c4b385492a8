package query

import (
	"github.com/google/uuid"
)

func funcUuid(doc any, args string) (any, error) {
	if _, err := decomposeArgs(args, 0, 0); err != nil {
		return nil, err
	}
	return uuid.NewString(), nil
}

// funcIf evaluates its first argument as a filter expression and
// resolves the second or third argument accordingly. Without an else
// branch a false condition gives null.
func funcIf(doc any, args string) (any, error) {
	toks, err := decomposeArgs(args, 2, 3)
	if err != nil {
		return nil, err
	}
	ok, err := evalStack(toks[0], []any{doc}, 0, 0)
	if err != nil {
		return nil, err
	}
	if ok {
		return argValue(doc, toks[1])
	}
	if len(toks) == 3 {
		return argValue(doc, toks[2])
	}
	return nil, nil
}
