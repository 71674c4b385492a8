package query

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		Token string
		Want  string
	}{
		{Token: "name", Want: "[field(name)]"},
		{Token: "?", Want: "[current]"},
		{Token: "a[0]", Want: "[field(a) index(0)]"},
		{Token: "a[-2]", Want: "[field(a) index(-2)]"},
		{Token: "a[1:3]", Want: "[field(a) slice(1:3:1)]"},
		{Token: "a[::-1]", Want: "[field(a) slice(0:0:-1)]"},
		{Token: "a[price > 3]", Want: "[field(a) filter(price > 3)]"},
		{Token: "[price > 3]", Want: "[filter(price > 3)]"},
		{Token: "sort()", Want: "[call(sort)]"},
		{Token: "sort(price)[0]", Want: "[call(sort) index(0)]"},
		{Token: "a[0][1]", Want: "[field(a) index(0) index(1)]"},
		{Token: "a['x:y']", Want: "[field(a) filter('x:y')]"},
	}
	for _, tt := range tests {
		steps, err := classify(tt.Token)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Token, err)
			continue
		}
		if got := fmt.Sprint(steps); got != tt.Want {
			t.Errorf("%s: got %s, want %s", tt.Token, got, tt.Want)
		}
	}
}

func TestClassifyMalformed(t *testing.T) {
	tests := []string{
		":name",
		"a[]",
		"a[1:2:0]",
		"a[1:2:3:4]",
		"a[0]junk",
		"123abc",
		"(args)",
	}
	for _, tok := range tests {
		if _, err := classify(tok); !errors.Is(err, ErrSyntax) {
			t.Errorf("%s: want ErrSyntax, got %v", tok, err)
		}
	}
}
