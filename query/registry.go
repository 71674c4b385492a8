package query

import (
	"fmt"

	"github.com/midbel/jsonq/environ"
)

// FuncImpl evaluates a function against the current node with its raw
// argument string.
type FuncImpl func(doc any, args string) (any, error)

// Func is a named query function. ArrayAware functions receive arrays
// whole; the others are applied to each element of an array context
// and the results collected.
type Func struct {
	Name       string
	ArrayAware bool
	Do         FuncImpl
}

var builtins = defaultBuiltins()

func defaultBuiltins() environ.Environ[Func] {
	env := environ.Empty[Func]()
	all := []Func{
		{Name: "sort", ArrayAware: true, Do: funcSort},
		{Name: "distinct", ArrayAware: true, Do: funcDistinct},
		{Name: "reverse", ArrayAware: true, Do: funcReverse},
		{Name: "shuffle", ArrayAware: true, Do: funcShuffle},
		{Name: "slice", ArrayAware: true, Do: funcSlice},
		{Name: "flatten", ArrayAware: true, Do: funcFlatten},
		{Name: "first", ArrayAware: true, Do: funcFirst},
		{Name: "last", ArrayAware: true, Do: funcLast},
		{Name: "count", ArrayAware: true, Do: funcCount},
		{Name: "sum", ArrayAware: true, Do: funcSum},
		{Name: "avg", ArrayAware: true, Do: funcAvg},
		{Name: "min", ArrayAware: true, Do: funcMin},
		{Name: "max", ArrayAware: true, Do: funcMax},
		{Name: "join", ArrayAware: true, Do: funcJoin},
		{Name: "map", ArrayAware: true, Do: funcMap},
		{Name: "field", ArrayAware: true, Do: funcField},
		{Name: "coalesce", ArrayAware: true, Do: funcCoalesce},
		{Name: "csv", ArrayAware: true, Do: funcCsv},
		{Name: "toArray", ArrayAware: true, Do: funcToArray},
		{Name: "keys", ArrayAware: true, Do: funcKeys},
		{Name: "entries", ArrayAware: true, Do: funcEntries},
		{Name: "json", Do: funcJson},
		{Name: "upperCase", Do: funcUpperCase},
		{Name: "lowerCase", Do: funcLowerCase},
		{Name: "trim", Do: funcTrim},
		{Name: "length", Do: funcLength},
		{Name: "substr", Do: funcSubstr},
		{Name: "prepend", Do: funcPrepend},
		{Name: "append", Do: funcAppend},
		{Name: "split", Do: funcSplit},
		{Name: "b64Encode", Do: funcB64Encode},
		{Name: "b64Decode", Do: funcB64Decode},
		{Name: "notBlank", Do: funcNotBlank},
		{Name: "uuid", ArrayAware: true, Do: funcUuid},
		{Name: "if", ArrayAware: true, Do: funcIf},
	}
	all = append(all, dateBuiltins()...)
	for _, fn := range all {
		env.Define(fn.Name, fn)
	}
	return env
}

// RegisterFunc makes fn available to every path evaluated afterwards.
// Register functions during program initialization: the registry is
// not synchronized.
func RegisterFunc(fn Func) {
	builtins.Define(fn.Name, fn)
}

// Functions returns the names of all registered functions in
// lexicographic order.
func Functions() []string {
	return builtins.Names()
}

func lookupFunc(name string) (Func, error) {
	fn, err := builtins.Resolve(name)
	if err != nil {
		return fn, fmt.Errorf("%w: %s", ErrUnknownFunc, name)
	}
	return fn, nil
}
