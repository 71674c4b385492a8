package query

import "errors"

var (
	ErrSyntax      = errors.New("syntax error")
	ErrArity       = errors.New("invalid number of arguments")
	ErrLiteral     = errors.New("malformed literal")
	ErrUnknownFunc = errors.New("unknown function")
)
