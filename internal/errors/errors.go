// Package errors provides the diagnostic formatting shared by the lexer's
// Unexpected token, the parser's fail-fast mismatched-token error, and the
// bytecode loader's parse errors. The package builder's duplicate-name
// error and the VM's class-redefinition, NoSuchClassException and
// NoSuchMethodException errors are plain Go errors and are not formatted
// through this package.
package errors

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/pkg/token"
)

// Phase names one of the pipeline stages a Diagnostic originated from.
type Phase string

const (
	Lex     Phase = "Lex"
	Parse   Phase = "Parse"
	Build   Phase = "Build"
	Load    Phase = "Load"
	Execute Phase = "Execute"
)

// maxErrorLineLength bounds how much of a source line is displayed around a
// syntax error, per spec §4.1: "the current line trimmed to at most 30
// characters centered near the offending column."
const maxErrorLineLength = 30

// Diagnostic is a single reported error with enough context to print a
// source line and a caret pointing at the offending column.
type Diagnostic struct {
	Phase   Phase
	Message string
	Source  string // full source text the position indexes into, if known
	File    string
	Pos     token.Position
}

// New creates a Diagnostic.
func New(phase Phase, message string, pos token.Position, source, file string) *Diagnostic {
	return &Diagnostic{Phase: phase, Message: message, Pos: pos, Source: source, File: file}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic: a header naming the phase, file and
// position, the trimmed source line (when available), a caret under the
// offending column, and the message. If color is true, ANSI codes are used.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "%sError in %s:%s\n", prefix(d.Phase), d.File, d.Pos)
	} else {
		fmt.Fprintf(&sb, "%sError at %s\n", prefix(d.Phase), d.Pos)
	}

	if line, ok := d.sourceLine(d.Pos.Line); ok {
		trimmed, caretCol := trimAroundColumn(line, d.Pos.Column)
		sb.WriteString(trimmed)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", caretCol))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func prefix(phase Phase) string {
	if phase == "" {
		return ""
	}
	return string(phase) + ": "
}

func (d *Diagnostic) sourceLine(lineNum int) (string, bool) {
	if d.Source == "" || lineNum < 1 {
		return "", false
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum > len(lines) {
		return "", false
	}
	return lines[lineNum-1], true
}

// trimAroundColumn trims line to at most maxErrorLineLength runes, centered
// near column (1-based), and returns the trimmed line together with the
// column index (0-based, within the trimmed line) the caret should point
// to.
func trimAroundColumn(line string, column int) (string, int) {
	runes := []rune(line)
	if len(runes) <= maxErrorLineLength || column < 1 {
		col := column - 1
		if col < 0 {
			col = 0
		}
		return line, col
	}

	// Keep a maxErrorLineLength-rune window centered on the column, shifted
	// inward when the column is near either end of the line.
	begin := column - 1 - maxErrorLineLength/2
	if begin > len(runes)-maxErrorLineLength {
		begin = len(runes) - maxErrorLineLength
	}
	if begin < 0 {
		begin = 0
	}
	end := begin + maxErrorLineLength

	trimmed := string(runes[begin:end])
	col := column - 1 - begin
	if col < 0 {
		col = 0
	}
	if col > len([]rune(trimmed)) {
		col = len([]rune(trimmed))
	}
	return trimmed, col
}

// Errors formats a batch of diagnostics, one per paragraph.
func Errors(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
