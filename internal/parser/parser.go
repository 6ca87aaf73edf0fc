// Package parser implements a hand-written recursive-descent parser with
// single-token lookahead, matching spec §4.3: peek() inspects the current
// token without consuming it, get() consumes and returns it.
//
// Unlike a Pratt parser, binary expressions are parsed precedence-blind:
// the right operand of an operator is a full recursive parse of everything
// that follows it, producing a right-leaning raw tree that fixOperationTree
// then rotates into shape one node at a time as the recursion unwinds. The
// precedence/associativity table is plain data (operatorInfo), not logic
// embedded in the recursive descent itself, per spec's design note in §9
// ("keep the precedence/associativity table as data").
package parser

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/internal/errors"
	"github.com/lucidlang/lucid/internal/lexer"
	"github.com/lucidlang/lucid/pkg/token"
)

// Parser consumes a lexer's token stream and produces one ast.Node per
// call to Next, until the stream is exhausted.
type Parser struct {
	lex  *lexer.Lexer
	tok  token.Token
	file string

	errs []*errors.Diagnostic

	// ignoreJoin suppresses re-entering join-operation parsing while a
	// join chain's own children are being reparsed (spec §4.3).
	ignoreJoin bool
}

// New creates a Parser over lex. file is used only for diagnostics.
func New(lex *lexer.Lexer, file string) *Parser {
	p := &Parser{lex: lex, file: file}
	p.tok = lex.Next()
	return p
}

// Errors returns every diagnostic accumulated so far. The parser is
// fail-fast (spec §4.3): at most one entry is ever appended, because the
// first error aborts parsing of the current file.
func (p *Parser) Errors() []*errors.Diagnostic {
	return p.errs
}

func (p *Parser) peek() token.Token {
	return p.tok
}

func (p *Parser) get() token.Token {
	t := p.tok
	p.tok = p.lex.Next()
	return t
}

// parseError is the sentinel wrapping a fail-fast diagnostic as it
// propagates up the recursive-descent call stack.
type parseError struct {
	diag *errors.Diagnostic
}

func (e *parseError) Error() string { return e.diag.Error() }

func (p *Parser) fail(pos token.Position, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	d := errors.New(errors.Parse, msg, pos, "", p.file)
	p.errs = append(p.errs, d)
	return &parseError{diag: d}
}

// expect consumes and returns the current token if it has one of kinds,
// otherwise reports the spec's exact diagnostic wording and aborts.
func (p *Parser) expect(kinds ...token.Kind) (token.Token, error) {
	t := p.peek()
	for _, k := range kinds {
		if t.Kind == k {
			return p.get(), nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return token.Token{}, p.fail(t.Pos, "Invalid token. Expected %s, but got %s", strings.Join(names, " or "), t)
}

func (p *Parser) expectValue(kind token.Kind, value string) (token.Token, error) {
	t := p.peek()
	if t.Kind == kind && t.Value == value {
		return p.get(), nil
	}
	return token.Token{}, p.fail(t.Pos, "Invalid token. Expected %s |%s|, but got %s", kind, value, t)
}

// skipOptionalSemicolon consumes a single optional semicolon before body
// openers such as '{', accepting both explicit ';' and the "auto" marker.
func (p *Parser) skipOptionalSemicolon() {
	if p.peek().Kind == token.Semicolon {
		p.get()
	}
}

// Next produces the next top-level node, or (nil, false) once the token
// stream is exhausted (spec §4.3: "one top-level node per call until
// Finish").
func (p *Parser) Next() (*ast.Node, bool) {
	for {
		if p.peek().Kind == token.Finish {
			return nil, false
		}
		if p.peek().Kind == token.Semicolon {
			p.get() // stray top-level semicolons are harmless noise
			continue
		}
		node, err := p.parseTopLevel()
		if err != nil {
			return &ast.Node{Kind: ast.KindError, Pos: p.peek().Pos, Error: &ast.ErrorNode{Message: err.Error()}}, false
		}
		return node, true
	}
}

// parseTopLevel implements the top-level recognitions of spec §4.3.
func (p *Parser) parseTopLevel() (*ast.Node, error) {
	t := p.peek()

	switch {
	case t.Kind == token.Info:
		return p.parsePackageOrImport()
	case t.Kind == token.Modifier:
		return p.parseModifierListOrBlock()
	case t.Kind == token.Expression && (t.Value == "class" || t.Value == "struct" || t.Value == "enum" || t.Value == "interface"):
		return p.parseTypeDeclaration()
	default:
		return p.parseMethodOrField()
	}
}

func (p *Parser) parsePackageOrImport() (*ast.Node, error) {
	kw := p.get()
	nameTok, err := p.expect(token.String, token.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	if kw.Value == "package" {
		return &ast.Node{Kind: ast.KindPackage, Pos: kw.Pos, PackageSet: &ast.PackageNode{Name: nameTok.Value}}, nil
	}
	return &ast.Node{Kind: ast.KindImport, Pos: kw.Pos, Import: &ast.ImportNode{Path: nameTok.Value}}, nil
}

// parseModifierListOrBlock gathers consecutive Modifier tokens; if a ':'
// follows, it's a ModifierBlock applying to the rest of the scope instead
// of only the next declaration (spec glossary).
func (p *Parser) parseModifierListOrBlock() (*ast.Node, error) {
	start := p.peek().Pos
	var mods []string
	for p.peek().Kind == token.Modifier {
		mods = append(mods, p.get().Value)
	}
	if p.peek().Kind == token.Colon {
		p.get()
		return &ast.Node{Kind: ast.KindModifierBlock, Pos: start, ModifierBlock: &ast.ModifierBlockNode{Names: mods}}, nil
	}
	return &ast.Node{Kind: ast.KindModifierList, Pos: start, ModifierList: &ast.ModifierListNode{Names: mods}}, nil
}
