package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/midbel/jsonq/json"
)

const document = `{
	"name": "  Hello  ",
	"active": true,
	"nums": [5, 1, 9, 3],
	"tags": ["b", "a", "c", "a"],
	"items": [
		{"label": "one", "price": 5, "qty": 2},
		{"label": "two", "price": 9, "qty": 1},
		{"label": "three", "price": 2}
	]
}`

func parseDoc(t *testing.T, str string) any {
	t.Helper()
	doc, err := json.ParseString(str)
	if err != nil {
		t.Fatalf("fail to parse document: %s", err)
	}
	return doc
}

func TestEval(t *testing.T) {
	tests := []struct {
		Path string
		Want any
	}{
		{
			Path: "name",
			Want: "  Hello  ",
		},
		{
			Path: "missing",
			Want: nil,
		},
		{
			Path: "name.missing",
			Want: nil,
		},
		{
			Path: "nums[1]",
			Want: 1.0,
		},
		{
			Path: "nums[-1]",
			Want: 3.0,
		},
		{
			Path: "nums[9]",
			Want: nil,
		},
		{
			Path: "nums[:]",
			Want: []any{5.0, 1.0, 9.0, 3.0},
		},
		{
			Path: "nums[1:3]",
			Want: []any{1.0, 9.0},
		},
		{
			Path: "nums[2:3:-1]",
			Want: []any{9.0},
		},
		{
			Path: "nums[::2]",
			Want: []any{5.0, 9.0},
		},
		{
			Path: "nums[::-1]",
			Want: []any{3.0, 9.0, 1.0, 5.0},
		},
		{
			Path: "items.label",
			Want: []any{"one", "two", "three"},
		},
		{
			Path: "items[1].price",
			Want: 9.0,
		},
		{
			Path: "items.price.sum()",
			Want: 16.0,
		},
		{
			Path: "nums[? > 3]",
			Want: []any{5.0, 9.0},
		},
		{
			Path: "items[price > 4].label",
			Want: []any{"one", "two"},
		},
		{
			Path: "items[qty = 1].label",
			Want: []any{"two"},
		},
		{
			Path: "items[price > 4 & qty = 1].label",
			Want: []any{"two"},
		},
		{
			Path: "items[price > 100 | qty = 1].label",
			Want: []any{"two"},
		},
		{
			Path: "items[missing].label",
			Want: []any{},
		},
		{
			Path: "name.trim()",
			Want: "Hello",
		},
		{
			Path: "items.label.upperCase()",
			Want: []any{"ONE", "TWO", "THREE"},
		},
		{
			Path: "active",
			Want: true,
		},
	}

	doc := parseDoc(t, document)
	for _, tt := range tests {
		got, err := Eval(doc, tt.Path)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Path, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.Want) {
			t.Errorf("%s: got %v, want %v", tt.Path, got, tt.Want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		Path string
		Want error
	}{
		{Path: "items[price", Want: ErrSyntax},
		{Path: "items..label", Want: ErrSyntax},
		{Path: "items.nope()", Want: ErrUnknownFunc},
		{Path: "name.substr()", Want: ErrArity},
		{Path: "items[price > 1x]", Want: ErrLiteral},
	}
	doc := parseDoc(t, document)
	for _, tt := range tests {
		if _, err := Eval(doc, tt.Path); !errors.Is(err, tt.Want) {
			t.Errorf("%s: want %v, got %v", tt.Path, tt.Want, err)
		}
	}
}

func TestEvalDoesNotMutate(t *testing.T) {
	paths := []string{
		"nums.sort()",
		"tags.reverse()",
		"tags.distinct()",
		"items.sort(price).label",
		"items.map(label, total:price)",
		"items.field(label:)",
		"nums[::-1]",
	}
	var (
		doc  = parseDoc(t, document)
		want = parseDoc(t, document)
	)
	for _, path := range paths {
		if _, err := Eval(doc, path); err != nil {
			t.Errorf("%s: unexpected error: %s", path, err)
			continue
		}
		if !reflect.DeepEqual(doc, want) {
			t.Fatalf("%s: document mutated", path)
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		Doc  string
		Path string
		Want any
	}{
		{
			Doc:  `{"a": [1, 2, 3]}`,
			Path: "a[2]",
			Want: 3.0,
		},
		{
			Doc:  `{"a": [1, 2, 3]}`,
			Path: "a[-1]",
			Want: 3.0,
		},
		{
			Doc:  `{"a": [1, 2, 3]}`,
			Path: "a[-1::-1]",
			Want: []any{3.0},
		},
		{
			Doc:  `{"list": [{"v": 5}, {"v": 1}, {"v": 9}]}`,
			Path: "list[v > 3].v",
			Want: []any{5.0, 9.0},
		},
		{
			Doc:  `["b", "a", "c"]`,
			Path: "sort()",
			Want: []any{"a", "b", "c"},
		},
		{
			Doc:  `["b", "a", "c"]`,
			Path: "sort(-1)",
			Want: []any{"c", "b", "a"},
		},
		{
			Doc:  `{"x": null, "y": "hi"}`,
			Path: "coalesce(x, y)",
			Want: "hi",
		},
	}
	for _, tt := range tests {
		doc := parseDoc(t, tt.Doc)
		got, err := Eval(doc, tt.Path)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Path, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.Want) {
			t.Errorf("%s: got %v, want %v", tt.Path, got, tt.Want)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	doc := parseDoc(t, document)
	once, err := Eval(doc, "items[price > 4]")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	twice, err := Eval(once, "[price > 4]")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("got %v, want %v", twice, once)
	}
}

func TestApplyAt(t *testing.T) {
	doc := parseDoc(t, document)
	items, err := Eval(doc, "items")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	path, err := Parse("label")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got, err := path.ApplyAt(items, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != "two" {
		t.Errorf("got %v, want two", got)
	}
	got, err = path.ApplyAt(items, 9)
	if err != nil || got != nil {
		t.Errorf("out of range: got %v (%v), want nil", got, err)
	}
}

func TestFind(t *testing.T) {
	got, err := Find(strings.NewReader(document), "items.count()")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 3.0 {
		t.Errorf("got %v, want 3", got)
	}
}
