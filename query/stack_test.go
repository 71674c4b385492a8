package query

import (
	"errors"
	"testing"
)

const record = `{
	"num": 10,
	"str": "abc",
	"flag": true,
	"none": null,
	"list": [1, 2],
	"empty": []
}`

func TestFilterExpr(t *testing.T) {
	tests := []struct {
		Expr string
		Want bool
	}{
		{Expr: "num = 10", Want: true},
		{Expr: "num != 10", Want: false},
		{Expr: "num > 5", Want: true},
		{Expr: "num >= 10", Want: true},
		{Expr: "num < 5", Want: false},
		{Expr: "num <= 10", Want: true},
		{Expr: "str = 'abc'", Want: true},
		{Expr: "str < 'abd'", Want: true},
		{Expr: "flag = true", Want: true},
		{Expr: "flag", Want: true},
		{Expr: "!flag", Want: false},
		{Expr: "none", Want: false},
		{Expr: "!none", Want: true},
		{Expr: "list", Want: true},
		{Expr: "empty", Want: false},
		{Expr: "str", Want: false},
		{Expr: "num", Want: true},
		{Expr: "missing", Want: false},
		{Expr: "num = '10'", Want: false},
		{Expr: "num != '10'", Want: true},
		{Expr: "num < 'abc'", Want: true},
		{Expr: "str < true", Want: true},
		{Expr: "none = null", Want: true},
		{Expr: "num = null", Want: false},
		{Expr: "none > num", Want: true},
		{Expr: "none < num", Want: false},
		{Expr: "num < none", Want: true},
		{Expr: "none > str", Want: true},
		{Expr: "none > flag", Want: true},
		{Expr: "missing > num", Want: true},
		{Expr: "num = 10 & flag", Want: true},
		{Expr: "num = 10 & !flag", Want: false},
		{Expr: "num = 99 | flag", Want: true},
		{Expr: "num = 99 | !flag", Want: false},
		{Expr: "num = 99 & flag | str = 'abc'", Want: true},
		{Expr: "num = 10 & flag | str = 'zzz'", Want: true},
		{Expr: "num = 99 | flag & str = 'abc'", Want: true},
		{Expr: "(num = 99 | flag) & str = 'abc'", Want: true},
		{Expr: "!(num = 10)", Want: false},
		{Expr: "!(num = 99 | str = 'zzz')", Want: true},
	}
	doc := parseDoc(t, record)
	for _, tt := range tests {
		got, err := evalStack(tt.Expr, []any{doc}, 0, 0)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Expr, err)
			continue
		}
		if got != tt.Want {
			t.Errorf("%s: got %t, want %t", tt.Expr, got, tt.Want)
		}
	}
}

func TestFilterShortCircuit(t *testing.T) {
	tests := []struct {
		Expr string
		Want bool
	}{
		// the right hand side would fail if it were evaluated
		{Expr: "num = 99 & nope()", Want: false},
		{Expr: "num = 10 | nope()", Want: true},
		{Expr: "num = 99 & nope() | flag", Want: true},
	}
	doc := parseDoc(t, record)
	for _, tt := range tests {
		got, err := evalStack(tt.Expr, []any{doc}, 0, 0)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Expr, err)
			continue
		}
		if got != tt.Want {
			t.Errorf("%s: got %t, want %t", tt.Expr, got, tt.Want)
		}
	}
	if _, err := evalStack("num = 10 & nope()", []any{doc}, 0, 0); !errors.Is(err, ErrUnknownFunc) {
		t.Errorf("want ErrUnknownFunc, got %v", err)
	}
}

func TestFilterMalformed(t *testing.T) {
	tests := []string{
		"",
		"num =",
		"= 10",
		"num = 10 &",
		"| flag",
		"(flag) ? flag",
		"()",
		"(num = 10",
		"'oops",
	}
	doc := parseDoc(t, record)
	for _, expr := range tests {
		if _, err := evalStack(expr, []any{doc}, 0, 0); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: want ErrSyntax, got %v", expr, err)
		}
	}
}
