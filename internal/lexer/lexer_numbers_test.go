package lexer

import (
	"testing"

	"github.com/lucidlang/lucid/pkg/token"
)

func TestNumberSuffixes(t *testing.T) {
	l := New(`12B 3.14F 0xFF 100L 1.5`)
	want := []token.Token{
		token.New(token.Byte, "12", token.Position{}),
		token.New(token.Float, "3.14", token.Position{}),
		token.New(token.Hexadecimal, "FF", token.Position{}),
		token.New(token.Long, "100", token.Position{}),
		token.New(token.Double, "1.5", token.Position{}),
		token.Of(token.Finish, token.Position{}),
	}
	for i, w := range want {
		got := l.Next()
		if !got.Equal(w) {
			t.Fatalf("token %d = %s, want %s", i, got, w)
		}
	}
}

func TestInvalidFloatAsInt(t *testing.T) {
	l := New(`1.5I`)
	got := l.Next()
	if got.Kind != token.Unexpected {
		t.Fatalf("expected Unexpected, got %s", got)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(l.Errors()))
	}
}

func TestMultipleDotsIsUnexpected(t *testing.T) {
	l := New(`1.2.3`)
	got := l.Next()
	if got.Kind != token.Unexpected {
		t.Fatalf("expected Unexpected for multiple dots, got %s", got)
	}
}

func TestUnderscoreDigitSeparators(t *testing.T) {
	l := New(`1_000_000`)
	got := l.Next()
	if got.Kind != token.Integer || got.Value != "1000000" {
		t.Fatalf("got %s, want Integer |1000000|", got)
	}
}

func TestNumberDotThenJoinIsNotConsumed(t *testing.T) {
	l := New(`1.foo()`)
	got := l.Next()
	if got.Kind != token.Integer || got.Value != "1" {
		t.Fatalf("got %s, want Integer |1|", got)
	}
	dot := l.Next()
	if dot.Kind != token.Operator || dot.Value != "." {
		t.Fatalf("got %s, want Operator |.|", dot)
	}
}
