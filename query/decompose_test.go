package query

import (
	"errors"
	"slices"
	"testing"
)

func TestDecomposePath(t *testing.T) {
	tests := []struct {
		Path string
		Want []string
	}{
		{Path: "", Want: nil},
		{Path: "   ", Want: nil},
		{Path: "a", Want: []string{"a"}},
		{Path: "a.b.c", Want: []string{"a", "b", "c"}},
		{Path: "a[0].b", Want: []string{"a[0]", "b"}},
		{Path: "map(x.y).z", Want: []string{"map(x.y)", "z"}},
		{Path: "a['x.y'].b", Want: []string{"a['x.y']", "b"}},
		{Path: "items[price > 3].label", Want: []string{"items[price > 3]", "label"}},
	}
	for _, tt := range tests {
		got, err := decomposePath(tt.Path)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Path, err)
			continue
		}
		if !slices.Equal(got, tt.Want) {
			t.Errorf("%s: got %q, want %q", tt.Path, got, tt.Want)
		}
	}
}

func TestDecomposePathMalformed(t *testing.T) {
	tests := []string{
		"a[unclosed",
		"a)b",
		"a]b",
		"a.(b",
		"a.'oops",
		"a..b",
		".a",
		"a.",
	}
	for _, path := range tests {
		if _, err := decomposePath(path); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: want ErrSyntax, got %v", path, err)
		}
	}
}

func TestDecomposeArgs(t *testing.T) {
	tests := []struct {
		Args string
		Min  int
		Max  int
		Want []string
	}{
		{Args: "", Min: 0, Max: 2, Want: nil},
		{Args: "a", Min: 0, Max: 1, Want: []string{"a"}},
		{Args: "a, b", Min: 2, Max: 2, Want: []string{"a", "b"}},
		{Args: "'a,b', c", Min: 0, Max: -1, Want: []string{"'a,b'", "c"}},
		{Args: "f(x, y), z", Min: 0, Max: -1, Want: []string{"f(x, y)", "z"}},
		{Args: "1,,3", Min: 0, Max: 3, Want: []string{"1", "", "3"}},
	}
	for _, tt := range tests {
		got, err := decomposeArgs(tt.Args, tt.Min, tt.Max)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Args, err)
			continue
		}
		if !slices.Equal(got, tt.Want) {
			t.Errorf("%s: got %q, want %q", tt.Args, got, tt.Want)
		}
	}
}

func TestDecomposeArgsArity(t *testing.T) {
	tests := []struct {
		Args string
		Min  int
		Max  int
	}{
		{Args: "", Min: 1, Max: 1},
		{Args: "a, b", Min: 0, Max: 1},
		{Args: "a, b, c", Min: 1, Max: 2},
	}
	for _, tt := range tests {
		if _, err := decomposeArgs(tt.Args, tt.Min, tt.Max); !errors.Is(err, ErrArity) {
			t.Errorf("%s: want ErrArity, got %v", tt.Args, err)
		}
	}
}
