package lexer

import (
	"testing"

	"github.com/lucidlang/lucid/pkg/token"
)

func collectKinds(l *Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := l.Next()
		kinds = append(kinds, tok.Kind)
		if !tok.HasNext() {
			break
		}
	}
	return kinds
}

func TestKeywordClassification(t *testing.T) {
	tests := []struct {
		word string
		kind token.Kind
	}{
		{"class", token.Expression}, {"defer", token.Expression}, {"for", token.Expression},
		{"let", token.Type}, {"int", token.Type}, {"string", token.Type},
		{"public", token.Modifier}, {"static", token.Modifier},
		{"true", token.Boolean}, {"false", token.Boolean},
		{"package", token.Info}, {"import", token.Info},
		{"null", token.Null}, {"nullptr", token.Null},
		{"fooBar", token.Identifier},
	}
	for _, tt := range tests {
		l := New(tt.word)
		got := l.Next()
		if got.Kind != tt.kind || got.Value != tt.word {
			t.Errorf("New(%q).Next() = %s, want %s |%s|", tt.word, got, tt.kind, tt.word)
		}
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	l := New(`"hello\nworld"`)
	got := l.Next()
	if got.Kind != token.String || got.Value != "hello\nworld" {
		t.Fatalf("got %s", got)
	}
}

func TestUnterminatedStringIsUnexpected(t *testing.T) {
	l := New(`"hello`)
	got := l.Next()
	if got.Kind != token.Unexpected {
		t.Fatalf("expected Unexpected, got %s", got)
	}
}

func TestInvalidEscapeIsUnexpected(t *testing.T) {
	l := New(`"\q"`)
	got := l.Next()
	if got.Kind != token.Unexpected {
		t.Fatalf("expected Unexpected, got %s", got)
	}
}

func TestCharacterLiteral(t *testing.T) {
	l := New(`'A'`)
	got := l.Next()
	if got.Kind != token.Character || got.Value != "A" {
		t.Fatalf("got %s", got)
	}
}

func TestAnnotation(t *testing.T) {
	l := New(`@Override`)
	got := l.Next()
	if got.Kind != token.Annotation || got.Value != "Override" {
		t.Fatalf("got %s", got)
	}
}

func TestSeparatorsAndOperators(t *testing.T) {
	l := New(`(){}[];,:+-`)
	want := []token.Kind{
		token.Open, token.Close, token.Begin, token.End, token.Start, token.Stop,
		token.Semicolon, token.Comma, token.Colon, token.Operator, token.Operator,
		token.Finish,
	}
	for i, w := range want {
		got := l.Next()
		if got.Kind != w {
			t.Fatalf("token %d = %s, want kind %s", i, got, w)
		}
	}
}

func TestAutoSemicolonAfterIdentifier(t *testing.T) {
	l := New("let x = y\nlet z = w")
	kinds := collectKinds(l)
	count := 0
	for _, k := range kinds {
		if k == token.Semicolon {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one auto semicolon, got %d among %v", count, kinds)
	}
}

func TestNoAutoSemicolonAfterOperator(t *testing.T) {
	l := New("let x = 1 +\n2")
	kinds := collectKinds(l)
	for _, k := range kinds {
		if k == token.Semicolon {
			t.Fatalf("did not expect an auto semicolon after a trailing operator, got %v", kinds)
		}
	}
}

func TestAutoSemicolonAfterReturn(t *testing.T) {
	l := New("return\nx")
	kinds := collectKinds(l)
	if len(kinds) < 2 || kinds[1] != token.Semicolon {
		t.Fatalf("expected auto semicolon right after return, got %v", kinds)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	again := l.Peek(0)
	if !first.Equal(again) {
		t.Fatalf("Peek(0) changed between calls: %s vs %s", first, again)
	}
	next := l.Next()
	if !next.Equal(first) {
		t.Fatalf("Next() after Peek(0) = %s, want %s", next, first)
	}
	second := l.Next()
	if second.Value != "b" {
		t.Fatalf("expected second token b, got %s", second)
	}
}

// unlex renders a token back to source text, re-quoting the kinds whose
// Value doesn't already carry its own delimiters. Good enough to exercise
// the lex-unlex round trip invariant (spec §8); not a general pretty printer.
func unlex(tok token.Token) string {
	switch tok.Kind {
	case token.String:
		return `"` + tok.Value + `"`
	case token.Character:
		return `'` + tok.Value + `'`
	default:
		return tok.Value
	}
}

func TestLexUnlexRoundTrip(t *testing.T) {
	source := `let x = 1 + 2 * foo(true, "hi")`
	first := New(source)
	var kinds []token.Kind
	var rebuilt string
	for {
		tok := first.Next()
		if tok.Kind == token.NewLine || (tok.Kind == token.Semicolon && tok.Value == "auto") {
			continue
		}
		kinds = append(kinds, tok.Kind)
		if !tok.HasNext() {
			break
		}
		if rebuilt != "" {
			rebuilt += " "
		}
		rebuilt += unlex(tok)
	}

	second := New(rebuilt)
	for _, wantKind := range kinds {
		got := second.Next()
		if got.Kind == token.NewLine || (got.Kind == token.Semicolon && got.Value == "auto") {
			got = second.Next()
		}
		if got.Kind != wantKind {
			t.Fatalf("round trip kind mismatch: got %s want %s (rebuilt=%q)", got.Kind, wantKind, rebuilt)
		}
	}
}
