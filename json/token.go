package json

import "fmt"

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Literal string
	Type    rune
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case BegArr:
		return "<beg-arr>"
	case EndArr:
		return "<end-arr>"
	case BegObj:
		return "<beg-obj>"
	case EndObj:
		return "<end-obj>"
	case Comma:
		return "<comma>"
	case Colon:
		return "<colon>"
	case Null:
		return "<null>"
	case Boolean:
		prefix = "boolean"
	case String:
		prefix = "string"
	case Number:
		prefix = "number"
	case Ident:
		prefix = "identifier"
	case Comment:
		prefix = "comment"
	case Invalid:
		prefix = "invalid"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}

const (
	EOF = -(1 + iota)
	BegArr
	EndArr
	BegObj
	EndObj
	Comma
	Colon
	Boolean
	Null
	String
	Number
	Ident
	Comment
	Invalid
)
