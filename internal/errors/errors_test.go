package errors

import (
	"strings"
	"testing"

	"github.com/lucidlang/lucid/pkg/token"
)

func TestDiagnosticFormatShortLine(t *testing.T) {
	d := New(Lex, "Unexpected char", token.Position{Line: 1, Column: 5}, "let x =@ 1;", "main.lc")
	out := d.Format(false)
	if !strings.Contains(out, "main.lc:1:5") {
		t.Errorf("expected file:line:col header, got %q", out)
	}
	if !strings.Contains(out, "let x =@ 1;") {
		t.Errorf("expected full short line to be preserved, got %q", out)
	}
	if !strings.Contains(out, "Unexpected char") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestDiagnosticTrimsLongLines(t *testing.T) {
	line := strings.Repeat("x", 20) + "@" + strings.Repeat("y", 20)
	d := New(Parse, "bad token", token.Position{Line: 1, Column: 21}, line, "")
	out := d.Format(false)
	lines := strings.Split(out, "\n")
	// lines[0] = header, lines[1] = trimmed source, lines[2] = caret
	if len([]rune(lines[1])) > 30 {
		t.Errorf("expected trimmed line length <= 30, got %d: %q", len([]rune(lines[1])), lines[1])
	}
	caretIdx := strings.Index(lines[2], "^")
	if caretIdx < 0 {
		t.Fatalf("expected a caret line, got %q", lines[2])
	}
	if rune(lines[1][caretIdx]) != '@' {
		t.Errorf("expected caret to point at '@', pointed at %q", string(lines[1][caretIdx]))
	}
}

func TestErrorsFormatsBatch(t *testing.T) {
	diags := []*Diagnostic{
		New(Lex, "first", token.Position{Line: 1, Column: 1}, "", ""),
		New(Parse, "second", token.Position{Line: 2, Column: 1}, "", ""),
	}
	out := Errors(diags, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected batch header, got %q", out)
	}
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both messages present, got %q", out)
	}
}

func TestErrorsEmpty(t *testing.T) {
	if got := Errors(nil, false); got != "" {
		t.Errorf("expected empty string for no diagnostics, got %q", got)
	}
}
