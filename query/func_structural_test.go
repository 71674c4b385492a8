package query

import (
	"reflect"
	"testing"
)

const order = `{
	"ref": "ABC-123",
	"cache": null,
	"price": 10,
	"customer": {"name": "smith", "vip": true},
	"lines": [
		{"sku": "a1", "qty": 2, "unit": 5},
		{"sku": "b2", "qty": 1, "unit": 9}
	]
}`

func TestStructuralFuncs(t *testing.T) {
	tests := []struct {
		Path string
		Want any
	}{
		{
			Path: "map(ref, total:lines.unit.sum())",
			Want: map[string]any{"ref": "ABC-123", "total": 14.0},
		},
		{
			Path: "lines.map(sku, amount:unit)",
			Want: []any{
				map[string]any{"sku": "a1", "amount": 5.0},
				map[string]any{"sku": "b2", "amount": 9.0},
			},
		},
		{
			Path: "lines.map(:sku:qty)",
			Want: []any{
				map[string]any{"a1": 2.0},
				map[string]any{"b2": 1.0},
			},
		},
		{
			Path: "customer.map(?, level:'gold')",
			Want: map[string]any{"name": "smith", "vip": true, "level": "gold"},
		},
		{
			Path: "customer.field(name:name.upperCase())",
			Want: map[string]any{"name": "SMITH", "vip": true},
		},
		{
			Path: "customer.field(vip:)",
			Want: map[string]any{"name": "smith"},
		},
		{
			Path: "lines.field(amount:unit)",
			Want: []any{
				map[string]any{"sku": "a1", "qty": 2.0, "unit": 5.0, "amount": 5.0},
				map[string]any{"sku": "b2", "qty": 1.0, "unit": 9.0, "amount": 9.0},
			},
		},
		{
			Path: "cache.coalesce('none')",
			Want: "none",
		},
		{
			Path: "ref.coalesce('none')",
			Want: "ABC-123",
		},
		{
			Path: "coalesce(missing, ref, 'none')",
			Want: "ABC-123",
		},
		{
			Path: "coalesce(missing, 'none')",
			Want: "none",
		},
		{
			Path: "customer.csv()",
			Want: "smith,true",
		},
		{
			Path: "csv(lines[0])",
			Want: "2,a1,5",
		},
		{
			Path: "customer.toArray()",
			Want: []any{"smith", true},
		},
		{
			Path: "ref.toArray()",
			Want: nil,
		},
		{
			Path: "customer.keys()",
			Want: []any{"name", "vip"},
		},
		{
			Path: "lines.keys()",
			Want: []any{"qty", "sku", "unit"},
		},
		{
			Path: "customer.entries()",
			Want: []any{
				map[string]any{"key": "name", "value": "smith"},
				map[string]any{"key": "vip", "value": true},
			},
		},
	}
	doc := parseDoc(t, order)
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

func TestJsonFunc(t *testing.T) {
	doc := parseDoc(t, `{"raw": "{\"a\": 1}"}`)
	got, err := Eval(doc, "raw.json().a")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 1.0 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestCsvQuote(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{Input: "plain", Want: "plain"},
		{Input: "a,b", Want: "\"a,b\""},
		{Input: "say \"hi\"", Want: "\"say \"\"hi\"\"\""},
		{Input: "line\nbreak", Want: "\"line\nbreak\""},
	}
	for _, tt := range tests {
		if got := csvQuote(tt.Input); got != tt.Want {
			t.Errorf("%s: got %s, want %s", tt.Input, got, tt.Want)
		}
	}
}
