package query

import (
	"errors"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		Token string
		Want  any
	}{
		{Token: "null", Want: nil},
		{Token: "true", Want: true},
		{Token: "false", Want: false},
		{Token: "42", Want: 42.0},
		{Token: "-7", Want: -7.0},
		{Token: "3.14", Want: 3.14},
		{Token: "'hello'", Want: "hello"},
		{Token: "''", Want: ""},
		{Token: "'it''s'", Want: "it's"},
	}
	for _, tt := range tests {
		got, err := parseLiteral(tt.Token)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", tt.Token, err)
			continue
		}
		if got != tt.Want {
			t.Errorf("%s: got %v, want %v", tt.Token, got, tt.Want)
		}
	}
}

func TestParseLiteralMalformed(t *testing.T) {
	tests := []string{
		"",
		"12x",
		"1.2.3",
		"'unterminated",
		"-abc",
	}
	for _, tok := range tests {
		if _, err := parseLiteral(tok); !errors.Is(err, ErrLiteral) {
			t.Errorf("%s: want ErrLiteral, got %v", tok, err)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	tests := []string{
		"plain",
		"",
		"it's",
		"''quoted''",
		"with.dots[and]brackets",
	}
	for _, str := range tests {
		got, err := unquoteText(quoteText(str))
		if err != nil {
			t.Errorf("%s: unexpected error: %s", str, err)
			continue
		}
		if got != str {
			t.Errorf("round trip: got %q, want %q", got, str)
		}
	}
}
