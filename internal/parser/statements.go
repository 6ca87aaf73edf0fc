package parser

import (
	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/pkg/token"
)

// parseBlock parses a method/lambda/control-flow body: either `{ ... }` or
// a single expression (spec §4.3: "Bodies may be a single expression or
// { ... }").
func (p *Parser) parseBlock() ([]*ast.Node, error) {
	if p.peek().Kind != token.Begin {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipOptionalSemicolon()
		return []*ast.Node{expr}, nil
	}

	p.get() // '{'
	var body []*ast.Node
	for p.peek().Kind != token.End {
		if p.peek().Kind == token.Semicolon {
			p.get()
			continue
		}
		stmt, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipOptionalSemicolon()
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return body, nil
}

// parseIf handles `if (cond) body [else if ...] [else ...]`.
func (p *Parser) parseIf() (*ast.Node, error) {
	start := p.get().Pos // 'if'
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	ifNode := &ast.IfNode{Cond: cond, Body: body}

	for p.peek().Kind == token.Expression && p.peek().Value == "else" {
		p.get()
		if p.peek().Kind == token.Expression && p.peek().Value == "if" {
			elifStart := p.peek().Pos
			p.get()
			if _, err := p.expect(token.Open); err != nil {
				return nil, err
			}
			elifCond, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Close); err != nil {
				return nil, err
			}
			elifBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			ifNode.ElseIfs = append(ifNode.ElseIfs, &ast.Node{
				Kind: ast.KindElseIf, Pos: elifStart,
				ElseIf: &ast.ElseIfNode{Cond: elifCond, Body: elifBody},
			})
			continue
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifNode.Else = &ast.Node{Kind: ast.KindElse, Else: &ast.ElseNode{Body: elseBody}}
		break
	}

	return &ast.Node{Kind: ast.KindIf, Pos: start, If: ifNode}, nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	start := p.get().Pos // 'while'
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindWhile, Pos: start, While: &ast.WhileNode{Cond: cond, Body: body}}, nil
}

// parseDoWhile handles `do body while (cond)`.
func (p *Parser) parseDoWhile() (*ast.Node, error) {
	start := p.get().Pos // 'do'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectValue(token.Expression, "while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindDoWhile, Pos: start, DoWhile: &ast.DoWhileNode{Body: body, Cond: cond}}, nil
}

// parseFor handles both the C-style `for (init; cond; post) body` and the
// `for (name in iter) body` ForEach form, disambiguated by the `in` keyword.
func (p *Parser) parseFor() (*ast.Node, error) {
	start := p.get().Pos // 'for'
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}

	// Try ForEach first: `Type? name in expr`. Disambiguated with up to two
	// tokens of lookahead into the lexer's own buffer (lexer.Peek), beyond
	// the parser's single token of lookahead, rather than a full
	// backtracking parse.

	if node, ok, err := p.tryParseForEach(start); ok || err != nil {
		return node, err
	}

	var initNode *ast.Node
	if p.peek().Kind != token.Semicolon {
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		initNode = n
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	var condNode *ast.Node
	if p.peek().Kind != token.Semicolon {
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		condNode = n
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	var postNode *ast.Node
	if p.peek().Kind != token.Close {
		n, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		postNode = n
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindFor, Pos: start, For: &ast.ForNode{
		Init: initNode, Cond: condNode, Post: postNode, Body: body,
	}}, nil
}

// tryParseForEach recognizes `[Type] name in expr) body` immediately after
// the '(' of a for-loop, using the lexer's own multi-token Peek (beyond
// the parser's single token of lookahead) to decide *before* consuming
// anything — a C-style `for (int i = 0; ...)` also starts with a Type
// token, so only "Type identifier in" / "identifier in" commit to this
// form; anything else falls through unconsumed to the C-style clause list.
func (p *Parser) tryParseForEach(start token.Position) (*ast.Node, bool, error) {
	var varType string
	switch {
	case p.peek().Kind == token.Type &&
		p.lex.Peek(0).Kind == token.Identifier &&
		p.lex.Peek(1).IsValue(token.Identifier, "in"):
		varType = p.get().Value
	case p.peek().Kind == token.Identifier && p.lex.Peek(0).IsValue(token.Identifier, "in"):
		// fall through with varType == ""
	default:
		return nil, false, nil
	}

	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, true, err
	}
	p.get() // 'in', already confirmed present by the lookahead above
	iter, err := p.parseExpression()
	if err != nil {
		return nil, true, err
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, true, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, true, err
	}
	return &ast.Node{Kind: ast.KindForEach, Pos: start, ForEach: &ast.ForEachNode{
		VarName: nameTok.Value, VarType: varType, Iter: iter, Body: body,
	}}, true, nil
}
