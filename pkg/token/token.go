// Package token defines the lexical token vocabulary shared by the lexer
// and parser: the closed TokenKind enumeration, the Token value itself, and
// source Position tracking.
package token

import "fmt"

// Kind is the closed set of lexical categories a Token can belong to.
// The ordering here is arbitrary; callers must not depend on numeric values
// surviving across versions, only on the named constants.
type Kind int

const (
	// None is the zero value, held only before the first token is produced.
	None Kind = iota

	String      // "text"
	Character   // 'A'
	Begin       // {
	End         // }
	Byte        // 12B
	Short       // 100S
	Double      // 3.0D, 3.0
	Float       // 1.5F
	Long        // 100L
	Integer     // 1337
	Hexadecimal // 0xFF
	Boolean     // true / false
	Semicolon   // ; or an inserted "auto" marker
	Expression  // new class struct enum interface for while repeat do if else ...
	Colon       // :
	Comma       // ,
	Open        // (
	Close       // )
	Identifier  // abc
	Operator    // + - * / . etc, one rune per token
	Type        // let byte short int double float long void bool char string
	Modifier    // public private static final ...
	Start       // [
	Stop        // ]
	Annotation  // @Link
	LineNumber  // reserved for line-marker tokens emitted by preprocessors
	Null        // null / nullptr
	Info        // package / import
	Finish      // content exhausted
	Unexpected  // lexical error, Value carries the diagnostic message
	NewLine     // raw newline, consumed by the auto-semicolon pass
)

var kindNames = [...]string{
	None:        "None",
	String:      "String",
	Character:   "Character",
	Begin:       "Begin",
	End:         "End",
	Byte:        "Byte",
	Short:       "Short",
	Double:      "Double",
	Float:       "Float",
	Long:        "Long",
	Integer:     "Integer",
	Hexadecimal: "Hexadecimal",
	Boolean:     "Boolean",
	Semicolon:   "Semicolon",
	Expression:  "Expression",
	Colon:       "Colon",
	Comma:       "Comma",
	Open:        "Open",
	Close:       "Close",
	Identifier:  "Identifier",
	Operator:    "Operator",
	Type:        "Type",
	Modifier:    "Modifier",
	Start:       "Start",
	Stop:        "Stop",
	Annotation:  "Annotation",
	LineNumber:  "LineNumber",
	Null:        "Null",
	Info:        "Info",
	Finish:      "Finish",
	Unexpected:  "Unexpected",
	NewLine:     "NewLine",
}

// String implements fmt.Stringer for Kind, returning the registered name or
// "Unknown" for an out-of-range value.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// Position locates a token within the original source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based rune column within the line
	Offset int // 0-based byte offset from the start of the file
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position has been set to a real location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// numberKinds is the closed set of token kinds that carry a numeric literal.
var numberKinds = map[Kind]bool{
	Byte: true, Short: true, Integer: true, Long: true,
	Float: true, Double: true, Hexadecimal: true,
}

// Token is an immutable (kind, value) pair carrying its source position.
// Tokens are produced by the lexer and consumed by the parser; nothing
// downstream mutates one once it leaves the lexer.
type Token struct {
	Kind  Kind
	Value string
	Pos   Position
}

// New creates a Token with an explicit value.
func New(kind Kind, value string, pos Position) Token {
	return Token{Kind: kind, Value: value, Pos: pos}
}

// Of creates a Token whose Value is the empty string, for kinds such as
// Finish or Begin/End whose identity is carried entirely by Kind.
func Of(kind Kind, pos Position) Token {
	return Token{Kind: kind, Pos: pos}
}

// Is reports whether the token has the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// IsAny reports whether the token has any of the given kinds.
func (t Token) IsAny(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// IsValue reports whether the token has the given kind and value.
func (t Token) IsValue(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// Equal reports whether two tokens carry the same (kind, value) pair. Per
// §3.1, token equality is defined over (kind, value) alone; position is not
// part of the identity.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Value == other.Value
}

// IsLiteral reports whether the token is a literal value: a string,
// character, number, boolean, or null.
func (t Token) IsLiteral() bool {
	return t.Kind == String || t.Kind == Character || t.Kind == Boolean || t.Kind == Null || t.IsNumber()
}

// IsNumber reports whether the token's kind is one of the numeric kinds.
func (t Token) IsNumber() bool {
	return numberKinds[t.Kind]
}

// HasNext reports whether more tokens may follow; false once the stream has
// reached Finish or produced an unrecoverable Unexpected token.
func (t Token) HasNext() bool {
	return t.Kind != Finish && t.Kind != Unexpected
}

// String renders the token for debugging: "Kind" alone, or "Kind |value|"
// when a value is present.
func (t Token) String() string {
	if t.Value == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s |%s|", t.Kind, t.Value)
}
