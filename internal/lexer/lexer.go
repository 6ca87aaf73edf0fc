// Package lexer converts raw source text into a classified token stream.
//
// # Positions
//
// Column positions are rune counts from the start of the line, not byte
// offsets and not display widths — a multi-byte rune (e.g. "中") counts as
// one column, same as the teacher toolchain this one is patterned after.
//
// # UTF-32 boundary
//
// The specified external interface is a UTF-32 byte string (see
// strutil.DecodeUTF32); NewFromUTF32 is the entry point for callers that
// still have the raw encoded bytes. New accepts an already-decoded Go
// string and is what the rest of the toolchain (and every test) uses.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lucidlang/lucid/internal/errors"
	"github.com/lucidlang/lucid/internal/strutil"
	"github.com/lucidlang/lucid/pkg/token"
)

// Lexer is a hand-written scanner producing one token.Token per call.
type Lexer struct {
	input       string
	file        string
	errors      []*errors.Diagnostic
	tokenBuffer []token.Token

	position     int // byte offset of ch
	readPosition int // byte offset of the rune after ch
	line         int
	column       int // rune count from start of current line
	ch           rune

	lastSignificant token.Kind
	lastKeyword     string
	haveLast        bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithFile attaches a file name used only for diagnostic messages.
func WithFile(name string) Option {
	return func(l *Lexer) { l.file = name }
}

// New creates a Lexer over an already-decoded Go string.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// NewFromUTF32 decodes a raw UTF-32 byte stream (the interface spec §6
// describes) and returns a Lexer over the resulting string.
func NewFromUTF32(data []byte, order strutil.ByteOrder, opts ...Option) (*Lexer, error) {
	decoded, err := strutil.DecodeUTF32(data, order)
	if err != nil {
		return nil, err
	}
	return New(decoded, opts...), nil
}

// Errors returns every Unexpected diagnostic produced so far.
func (l *Lexer) Errors() []*errors.Diagnostic {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) sourceLine(lineNum int) string {
	lines := strings.Split(l.input, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (l *Lexer) unexpected(message string, pos token.Position) token.Token {
	d := errors.New(errors.Lex, message, pos, l.input, l.file)
	l.errors = append(l.errors, d)
	return token.New(token.Unexpected, message, pos)
}

// Peek returns the token n positions ahead without consuming it.
// Peek(0) is the same token Next() would return.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.processedNext())
	}
	return l.tokenBuffer[n]
}

// Next returns and consumes the next token, after the auto-semicolon pass.
func (l *Lexer) Next() token.Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.processedNext()
}

// autoSemicolonTriggers is the set of kinds whose NewLine, per spec §4.2,
// terminates the preceding statement. This is the fixed rule set chosen to
// resolve the spec's open question on auto-semicolon insertion: it matches
// the "minimal viable" set the spec itself suggests.
var autoSemicolonTriggers = map[token.Kind]bool{
	token.Identifier: true,
	token.String:     true,
	token.Character:  true,
	token.Byte:       true,
	token.Short:      true,
	token.Integer:    true,
	token.Long:       true,
	token.Float:      true,
	token.Double:     true,
	token.Hexadecimal: true,
	token.Boolean:    true,
	token.Null:       true,
	token.Close:      true,
	token.Stop:       true,
	token.End:        true,
}

// autoSemicolonKeywords additionally triggers insertion when the preceding
// token is one of these specific Expression-keyword spellings.
var autoSemicolonKeywords = map[string]bool{
	"return": true, "defer": true, "break": true, "continue": true,
}

// processedNext implements the auto-semicolon transformation pass (spec
// §4.2) as a streaming filter over rawNext: a run of NewLine tokens either
// collapses into one synthetic Semicolon("auto") or is dropped, depending
// only on the kind/spelling of the most recent non-NewLine token.
func (l *Lexer) processedNext() token.Token {
	for {
		tok := l.rawNext()
		if tok.Kind != token.NewLine {
			l.lastSignificant = tok.Kind
			l.haveLast = true
			if tok.Kind == token.Expression {
				l.lastKeyword = tok.Value
			} else {
				l.lastKeyword = ""
			}
			return tok
		}
		if l.haveLast && (autoSemicolonTriggers[l.lastSignificant] || autoSemicolonKeywords[l.lastKeyword]) {
			l.haveLast = false
			return token.New(token.Semicolon, "auto", tok.Pos)
		}
		// drop the NewLine and keep scanning
	}
}

func (l *Lexer) isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func (l *Lexer) isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// rawNext implements the dispatch table of spec §4.1, producing exactly
// one token (including NewLine) per call.
func (l *Lexer) rawNext() token.Token {
	switch {
	case l.ch == '\n':
		pos := l.currentPos()
		l.line++
		l.column = 0
		l.readChar()
		return token.New(token.NewLine, "\n", pos)
	case isWhitespace(l.ch):
		l.readChar()
		return l.rawNext()
	case l.ch == 0:
		return token.Of(token.Finish, l.currentPos())
	case l.isIdentStart(l.ch):
		return l.readIdentifier()
	case strings.ContainsRune(operatorChars, l.ch):
		return l.readOperator()
	case strings.ContainsRune(separatorChars, l.ch):
		return l.readSeparator()
	case unicode.IsDigit(l.ch):
		return l.readNumber()
	case l.ch == '"':
		return l.readString()
	case l.ch == '\'':
		return l.readCharacter()
	case l.ch == '@':
		return l.readAnnotation()
	default:
		pos := l.currentPos()
		ch := l.ch
		l.readChar()
		return l.unexpected(fmt.Sprintf("unexpected character %q", ch), pos)
	}
}

const operatorChars = ".=+-*/<>?!^&~$|"
const separatorChars = ";:,{}()[]"

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

var expressionKeywords = map[string]bool{
	"new": true, "class": true, "struct": true, "enum": true, "interface": true,
	"for": true, "while": true, "repeat": true, "do": true, "if": true, "else": true,
	"switch": true, "case": true, "loop": true, "continue": true, "break": true,
	"return": true, "await": true, "goto": true, "is": true, "as": true, "where": true,
	"defer": true,
}

var typeKeywords = map[string]bool{
	"let": true, "byte": true, "short": true, "int": true, "double": true,
	"float": true, "long": true, "void": true, "bool": true, "char": true,
	"string": true,
}

var modifierKeywords = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true,
	"final": true, "native": true, "extern": true, "volatile": true,
	"transient": true, "synchronized": true, "async": true, "const": true,
	"unsafe": true, "weak": true, "strong": true, "default": true,
}

func (l *Lexer) readIdentifier() token.Token {
	pos := l.currentPos()
	start := l.position
	for l.isIdentPart(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.position]

	switch {
	case expressionKeywords[word]:
		return token.New(token.Expression, word, pos)
	case typeKeywords[word]:
		return token.New(token.Type, word, pos)
	case modifierKeywords[word]:
		return token.New(token.Modifier, word, pos)
	case word == "true" || word == "false":
		return token.New(token.Boolean, word, pos)
	case word == "package" || word == "import":
		return token.New(token.Info, word, pos)
	case word == "null" || word == "nullptr":
		return token.New(token.Null, word, pos)
	default:
		return token.New(token.Identifier, word, pos)
	}
}

func (l *Lexer) readOperator() token.Token {
	pos := l.currentPos()
	ch := l.ch
	l.readChar()
	return token.New(token.Operator, string(ch), pos)
}

func (l *Lexer) readSeparator() token.Token {
	pos := l.currentPos()
	ch := l.ch
	l.readChar()
	kind := map[rune]token.Kind{
		';': token.Semicolon, ':': token.Colon, ',': token.Comma,
		'{': token.Begin, '}': token.End, '(': token.Open, ')': token.Close,
		'[': token.Start, ']': token.Stop,
	}[ch]
	return token.New(kind, string(ch), pos)
}

// readNumber implements spec §4.1 step 6: hex literals, at most one dot,
// underscore digit separators, and a case-insensitive B/S/I/L/F/D suffix
// that both names the kind and, for the integral suffixes, rejects a
// fractional value.
func (l *Lexer) readNumber() token.Token {
	pos := l.currentPos()

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		start := l.position
		for isHexDigit(l.ch) {
			l.readChar()
		}
		return token.New(token.Hexadecimal, l.input[start:l.position], pos)
	}

	start := l.position
	dotSeen := false
	for unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.' {
		if l.ch == '.' {
			if dotSeen {
				l.readChar()
				return l.unexpected("multiple dot symbols in number literal", pos)
			}
			// Don't swallow a '.' that starts a join/method-call, e.g. "1.foo()".
			if !unicode.IsDigit(l.peekChar()) {
				break
			}
			dotSeen = true
		}
		l.readChar()
	}
	raw := l.input[start:l.position]
	value := strings.ReplaceAll(raw, "_", "")

	var suffix rune
	if isNumberSuffix(l.ch) {
		suffix = unicode.ToUpper(l.ch)
		l.readChar()
	}

	switch suffix {
	case 'B':
		if dotSeen {
			return l.unexpected("Byte cannot have a floating-point value.", pos)
		}
		return token.New(token.Byte, value, pos)
	case 'S':
		if dotSeen {
			return l.unexpected("Short cannot have a floating-point value.", pos)
		}
		return token.New(token.Short, value, pos)
	case 'I':
		if dotSeen {
			return l.unexpected("Integer cannot have a floating-point value.", pos)
		}
		return token.New(token.Integer, value, pos)
	case 'L':
		if dotSeen {
			return l.unexpected("Long cannot have a floating-point value.", pos)
		}
		return token.New(token.Long, value, pos)
	case 'F':
		return token.New(token.Float, value, pos)
	case 'D':
		return token.New(token.Double, value, pos)
	default:
		if dotSeen {
			return token.New(token.Double, value, pos)
		}
		return token.New(token.Integer, value, pos)
	}
}

func isHexDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}

func isNumberSuffix(r rune) bool {
	switch unicode.ToUpper(r) {
	case 'B', 'S', 'I', 'L', 'F', 'D':
		return true
	}
	return false
}

func (l *Lexer) readString() token.Token {
	pos := l.currentPos()
	l.readChar() // skip opening quote
	var sb strings.Builder
	for {
		switch {
		case l.ch == 0 || l.ch == '\n':
			return l.unexpected("unterminated string literal", pos)
		case l.ch == '"':
			l.readChar()
			return token.New(token.String, sb.String(), pos)
		case l.ch == '\\':
			l.readChar()
			escaped, ok := decodeEscape(l.ch)
			if !ok {
				return l.unexpected(fmt.Sprintf("invalid escape sequence \\%c", l.ch), pos)
			}
			sb.WriteRune(escaped)
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readCharacter() token.Token {
	pos := l.currentPos()
	l.readChar() // skip opening quote
	var value rune
	switch {
	case l.ch == 0 || l.ch == '\n':
		return l.unexpected("unterminated character literal", pos)
	case l.ch == '\\':
		l.readChar()
		escaped, ok := decodeEscape(l.ch)
		if !ok {
			return l.unexpected(fmt.Sprintf("invalid escape sequence \\%c", l.ch), pos)
		}
		value = escaped
		l.readChar()
	default:
		value = l.ch
		l.readChar()
	}
	if l.ch != '\'' {
		return l.unexpected("unterminated character literal", pos)
	}
	l.readChar()
	return token.New(token.Character, string(value), pos)
}

func decodeEscape(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	default:
		return 0, false
	}
}

func (l *Lexer) readAnnotation() token.Token {
	pos := l.currentPos()
	l.readChar() // skip '@'
	if !l.isIdentStart(l.ch) {
		return l.unexpected("expected identifier after '@'", pos)
	}
	start := l.position
	for l.isIdentPart(l.ch) {
		l.readChar()
	}
	return token.New(token.Annotation, l.input[start:l.position], pos)
}
