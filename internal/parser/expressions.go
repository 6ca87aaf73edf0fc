package parser

import (
	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/pkg/token"
)

// operatorInfo is the precedence/associativity table as plain data (spec
// §9: "keep the precedence/associativity table as data, not embedded
// logic"). 0 = left associative, 1 = right associative.
type operatorInfo struct {
	precedence int
	assoc      int
}

var operatorTable = map[string]operatorInfo{
	"+": {1, 0}, "-": {1, 0},
	"*": {2, 0}, "/": {2, 0}, "%": {2, 0},
	"^": {3, 1},
	".": {4, 0},
}

func infoFor(op string) operatorInfo {
	if info, ok := operatorTable[op]; ok {
		return info
	}
	return operatorInfo{0, 0}
}

// twoOperandOperators is the fixed set of operator spellings parse_operator
// may merge into a binary operator (spec §4.3).
var twoOperandOperators = map[string]bool{
	"+": true, "+=": true, "-": true, "-=": true, "*": true, "*=": true,
	"/": true, "/=": true, "&": true, "&=": true, "|": true, "|=": true,
	"&&": true, "||": true, "::": true, "<": true, "<=": true, ">": true,
	">=": true, "==": true, ">>": true, ">>>": true, "<<": true, "??": true,
	"?.": true, "?": true, ":": true, ".": true, "^": true,
}

var leftUnaryOperators = map[string]bool{"!": true, "++": true, "--": true, "-": true}
var rightUnaryOperators = map[string]bool{"++": true, "--": true}

// parseOperator consumes consecutive Operator tokens and merges them into
// one spelling, stopping early at "&&"/"||" to avoid over-merging compound
// assignment with boolean operators (spec §4.3).
func (p *Parser) parseOperator() string {
	op := p.get().Value
	for p.peek().Kind == token.Operator {
		merged := op + p.peek().Value
		if merged == "&&" || merged == "||" {
			op = merged
			p.get()
			break
		}
		if !twoOperandOperators[merged] {
			break
		}
		op = merged
		p.get()
	}
	return op
}

// parseExpression produces one expression node, implementing the arms of
// spec §4.3's expression grammar.
func (p *Parser) parseExpression() (*ast.Node, error) {
	left, err := p.parsePrimaryOrUnary()
	if err != nil {
		return nil, err
	}
	return p.continueExpression(left)
}

// continueExpression mirrors the original parser's shape: the right operand
// of a binary operator is a full recursive parse of everything that
// follows it, so the raw tree comes out right-leaning, and fixOperationTree
// rebalances it in one pass per node as the recursion unwinds (spec §4.3
// "applied after each two-operand parse").
func (p *Parser) continueExpression(left *ast.Node) (*ast.Node, error) {
	if p.peek().Kind != token.Operator {
		return left, nil
	}
	startOp := p.peek().Value
	if !twoOperandOperators[startOp] {
		return left, nil
	}
	opPos := p.peek().Pos
	op := p.parseOperator()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Kind: ast.KindOperation, Pos: opPos, Operation: &ast.OperationNode{
		Operator: op, Left: left, Right: right,
	}}
	return fixOperationTree(node), nil
}

// hasPrecedence reports whether first binds tighter than second, or they're
// equal and first is left-associative (spec §4.3).
func hasPrecedence(first, second string) bool {
	fi, si := infoFor(first), infoFor(second)
	return fi.precedence > si.precedence || (fi.precedence == si.precedence && fi.assoc == 0)
}

// fixOperationTree is the tree-rotation rebalancer of spec §4.3: children are
// fixed first, then at most one rotation is applied at this level.
func fixOperationTree(n *ast.Node) *ast.Node {
	if n.Kind != ast.KindOperation {
		return n
	}
	op := n.Operation
	op.Left = fixOperationTree(op.Left)
	op.Right = fixOperationTree(op.Right)

	if op.Right.Kind == ast.KindOperation && hasPrecedence(op.Operator, op.Right.Operation.Operator) {
		return rotateRight(n)
	}
	if op.Left.Kind == ast.KindOperation && infoFor(op.Operator).assoc == 0 &&
		hasPrecedence(op.Operator, op.Left.Operation.Operator) {
		return rotateLeft(n)
	}
	return n
}

// rotateRight pulls n's right child up: n(L, R(RL, RR)) -> R(n(L, RL), RR).
func rotateRight(n *ast.Node) *ast.Node {
	r := n.Operation.Right
	n.Operation.Right = r.Operation.Left
	r.Operation.Left = n
	return r
}

// rotateLeft pulls n's left child up: n(L(LL, LR), R) -> L(LL, n(LR, R)).
func rotateLeft(n *ast.Node) *ast.Node {
	l := n.Operation.Left
	n.Operation.Left = l.Operation.Right
	l.Operation.Right = n
	return l
}

// parsePrimaryOrUnary dispatches the non-operator-continuation arms of
// spec §4.3's expression grammar.
func (p *Parser) parsePrimaryOrUnary() (*ast.Node, error) {
	t := p.peek()

	switch {
	case t.Kind == token.Operator && leftUnaryOperators[t.Value]:
		return p.parseSideOperation()
	case t.Kind == token.Type:
		return p.parseLocalDeclare()
	case t.Kind == token.Identifier:
		return p.parseIdentifierLed()
	case t.Kind == token.Open:
		return p.parseGroupOrTuple()
	case t.Kind == token.Operator && t.Value == "|":
		return p.parseLambda()
	case t.Kind == token.Operator && t.Value == "$":
		return p.parseTemplate()
	case t.IsLiteral():
		return p.parseValue()
	case t.Kind == token.Expression && t.Value == "return":
		return p.parseReturn()
	case t.Kind == token.Expression && t.Value == "defer":
		return p.parseDefer()
	case t.Kind == token.Expression && t.Value == "if":
		return p.parseIf()
	case t.Kind == token.Expression && t.Value == "while":
		return p.parseWhile()
	case t.Kind == token.Expression && t.Value == "do":
		return p.parseDoWhile()
	case t.Kind == token.Expression && t.Value == "for":
		return p.parseFor()
	case t.Kind == token.Expression && t.Value == "new":
		return p.parseNew()
	default:
		return nil, p.fail(t.Pos, "Invalid token. Expected expression, but got %s", t)
	}
}

func (p *Parser) parseValue() (*ast.Node, error) {
	t := p.get()
	return &ast.Node{Kind: ast.KindValue, Pos: t.Pos, Value: &ast.ValueNode{TokenKind: t.Kind, Text: t.Value}}, nil
}

// parseSideOperation handles a leading `!` or `-`. The lexer emits one rune
// per operator token and no merge happens here, so `--x` parses as two
// nested `-` operations and a leading `++` is rejected.
func (p *Parser) parseSideOperation() (*ast.Node, error) {
	opTok := p.get()
	operand, err := p.parsePrimaryOrUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindSideOperation, Pos: opTok.Pos, SideOperation: &ast.SideOperationNode{
		Operator: opTok.Value, Operand: operand, Prefix: true,
	}}, nil
}

// parseLocalDeclare handles `Type name [...]`, including tuple
// destructuring `let (a, b) = ...`, multi-local chaining, and `= expr`.
func (p *Parser) parseLocalDeclare() (*ast.Node, error) {
	typeTok := p.get()
	start := typeTok.Pos

	if p.peek().Kind == token.Open {
		return p.parseDestructure(start)
	}

	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	names := []string{nameTok.Value}
	for p.peek().Kind == token.Comma {
		p.get()
		n, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		names = append(names, n.Value)
	}

	if p.peek().Kind == token.Operator && p.peek().Value == "=" {
		p.get()
		if len(names) > 1 {
			return nil, p.fail(start, "multi-local declaration cannot have a single initializer")
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.KindLocalDeclareAssign, Pos: start, LocalDeclareAssign: &ast.LocalDeclareAssignNode{
			Type: typeTok.Value, Name: names[0], Value: value,
		}}, nil
	}

	if len(names) > 1 {
		return &ast.Node{Kind: ast.KindMultiLocalDeclare, Pos: start, MultiLocalDeclare: &ast.MultiLocalDeclareNode{
			Type: typeTok.Value, Names: names,
		}}, nil
	}
	return &ast.Node{Kind: ast.KindLocalDeclare, Pos: start, LocalDeclare: &ast.LocalDeclareNode{
		Type: typeTok.Value, Name: names[0],
	}}, nil
}

func (p *Parser) parseDestructure(start token.Position) (*ast.Node, error) {
	p.get() // '('
	var members []string
	for p.peek().Kind != token.Close {
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		members = append(members, nameTok.Value)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	if _, err := p.expectValue(token.Operator, "="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindLocalDeclareDestructure, Pos: start, LocalDestructure: &ast.LocalDeclareDestructureNode{
		Members: members, Value: value,
	}}, nil
}

// parseIdentifierLed handles every form that starts with a bare
// identifier: local declaration with a user type, assignment, call, index
// fetch/assign, or the head of a join chain.
func (p *Parser) parseIdentifierLed() (*ast.Node, error) {
	nameTok := p.get()
	start := nameTok.Pos

	// "Identifier Identifier" or "Identifier <" -> local declare with a
	// user-defined type.
	if p.peek().Kind == token.Identifier {
		return p.finishUserTypeDeclare(start, nameTok.Value)
	}
	if p.peek().Kind == token.Operator && p.peek().Value == "<" {
		if node, handled, err := p.tryUserTypeDeclareWithGenerics(start, nameTok.Value); handled || err != nil {
			return node, err
		}
	}

	// "Identifier =" (not "==") -> local assignment.
	if p.peek().Kind == token.Operator && p.peek().Value == "=" && !p.lex.Peek(0).IsValue(token.Operator, "=") {
		p.get()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.KindLocalAssign, Pos: start, LocalAssign: &ast.LocalAssignNode{
			Name: nameTok.Value, Value: value,
		}}, nil
	}

	head, err := p.finishIdentifierPrimary(start, nameTok.Value)
	if err != nil {
		return nil, err
	}
	if p.ignoreJoin {
		return head, nil
	}
	return p.parseJoinTail(start, head)
}

// finishIdentifierPrimary produces a Value/MethodCall/IndexFetch/
// IndexAssign node for a bare identifier already consumed.
func (p *Parser) finishIdentifierPrimary(start token.Position, name string) (*ast.Node, error) {
	switch p.peek().Kind {
	case token.Open:
		p.get()
		var args []*ast.Node
		for p.peek().Kind != token.Close {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Kind == token.Comma {
				p.get()
				continue
			}
			break
		}
		if _, err := p.expect(token.Close); err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.KindMethodCall, Pos: start, MethodCall: &ast.MethodCallNode{Name: name, Args: args}}, nil
	case token.Start:
		p.get()
		idx, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Stop); err != nil {
			return nil, err
		}
		target := &ast.Node{Kind: ast.KindValue, Pos: start, Value: &ast.ValueNode{TokenKind: token.Identifier, Text: name}}
		if p.peek().Kind == token.Operator && p.peek().Value == "=" {
			p.get()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.Node{Kind: ast.KindIndexAssign, Pos: start, IndexAssign: &ast.IndexAssignNode{
				Target: target, Index: idx, Value: value,
			}}, nil
		}
		return &ast.Node{Kind: ast.KindIndexFetch, Pos: start, IndexFetch: &ast.IndexFetchNode{Target: target, Index: idx}}, nil
	default:
		return &ast.Node{Kind: ast.KindValue, Pos: start, Value: &ast.ValueNode{TokenKind: token.Identifier, Text: name}}, nil
	}
}

// parseJoinTail parses a left-to-right chain a.b.c(...) as a JoinOperation
// whose children are each reparsed with ignoreJoin set, so a child doesn't
// recursively re-enter join parsing (spec §4.3). A trailing binary
// operator after the join re-enters ordinary precedence parsing.
func (p *Parser) parseJoinTail(start token.Position, target *ast.Node) (*ast.Node, error) {
	if !(p.peek().Kind == token.Operator && p.peek().Value == ".") {
		return p.continueExpression(target)
	}

	var children []*ast.Node
	for p.peek().Kind == token.Operator && p.peek().Value == "." {
		p.get()
		p.ignoreJoin = true
		child, err := p.parsePrimaryOrUnary()
		p.ignoreJoin = false
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	join := &ast.Node{Kind: ast.KindJoinOperation, Pos: start, JoinOperation: &ast.JoinOperationNode{
		Target: target, Children: children,
	}}
	return p.continueExpression(join)
}

// finishUserTypeDeclare handles "Identifier Identifier" (user type used as
// a local declaration's type).
func (p *Parser) finishUserTypeDeclare(start token.Position, typeName string) (*ast.Node, error) {
	nameTok := p.get()
	if p.peek().Kind == token.Operator && p.peek().Value == "=" {
		p.get()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Node{Kind: ast.KindLocalDeclareAssign, Pos: start, LocalDeclareAssign: &ast.LocalDeclareAssignNode{
			Type: typeName, Name: nameTok.Value, Value: value,
		}}, nil
	}
	return &ast.Node{Kind: ast.KindLocalDeclare, Pos: start, LocalDeclare: &ast.LocalDeclareNode{
		Type: typeName, Name: nameTok.Value,
	}}, nil
}

// tryUserTypeDeclareWithGenerics speculatively parses "Identifier<T> name"
// and falls back by signalling handled=false when what follows the
// closing '>' isn't an identifier (so the caller can instead treat '<' as
// the less-than operator).
func (p *Parser) tryUserTypeDeclareWithGenerics(start token.Position, typeName string) (*ast.Node, bool, error) {
	// p.peek() is the '<'; scan "Ident (, Ident)* > Ident" through the
	// lexer's lookahead before consuming anything.
	i := 0
	for p.lex.Peek(i).Kind == token.Identifier {
		i++
		if p.lex.Peek(i).Kind != token.Comma {
			break
		}
		i++
	}
	if i == 0 || !p.lex.Peek(i).IsValue(token.Operator, ">") || p.lex.Peek(i+1).Kind != token.Identifier {
		return nil, false, nil
	}
	if _, err := p.parseOptionalGenerics(); err != nil {
		return nil, true, err
	}
	node, err := p.finishUserTypeDeclare(start, typeName)
	if err != nil {
		return nil, true, err
	}
	return node, true, nil
}

func (p *Parser) parseGroupOrTuple() (*ast.Node, error) {
	start := p.get().Pos // '('
	var elems []*ast.Node
	for p.peek().Kind != token.Close {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return &ast.Node{Kind: ast.KindGroup, Pos: start, Group: &ast.GroupNode{Inner: elems[0]}}, nil
	}
	return &ast.Node{Kind: ast.KindTuple, Pos: start, Tuple: &ast.TupleNode{Elements: elems}}, nil
}

// parseLambda handles `|params| body`, enforcing that parameter types are
// either all present or all absent (spec §4.3).
func (p *Parser) parseLambda() (*ast.Node, error) {
	start := p.get().Pos // leading '|'
	var params []ast.Parameter
	haveTypes := false
	first := true
	for !(p.peek().Kind == token.Operator && p.peek().Value == "|") {
		if !first {
			if _, err := p.expect(token.Comma); err != nil {
				return nil, err
			}
		}
		first = false
		var param ast.Parameter
		typed := p.peek().Kind == token.Type
		if typed {
			param.Type = p.get().Value
		}
		if len(params) == 0 {
			haveTypes = typed
		}
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		param.Name = nameTok.Value
		if typed != haveTypes {
			return nil, p.fail(nameTok.Pos, "lambda parameters must be all typed or all untyped")
		}
		params = append(params, param)
	}
	if _, err := p.expectValue(token.Operator, "|"); err != nil {
		return nil, err
	}

	var body []*ast.Node
	if p.peek().Kind == token.Begin {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = []*ast.Node{expr}
	}
	return &ast.Node{Kind: ast.KindLambda, Pos: start, Lambda: &ast.LambdaNode{Params: params, Body: body}}, nil
}

// parseTemplate handles `$"..."` string templates. The template body is
// kept raw; interpolation expansion is left to a later compilation stage
// (spec confines parser scope to producing the node, §4.3).
func (p *Parser) parseTemplate() (*ast.Node, error) {
	start := p.get().Pos // '$'
	strTok, err := p.expect(token.String)
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindTemplate, Pos: start, Template: &ast.TemplateNode{Raw: strTok.Value}}, nil
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	start := p.get().Pos
	if p.peek().Kind == token.Semicolon || p.peek().Kind == token.End {
		return &ast.Node{Kind: ast.KindReturn, Pos: start, Return: &ast.ReturnNode{}}, nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindReturn, Pos: start, Return: &ast.ReturnNode{Value: value}}, nil
}

func (p *Parser) parseDefer() (*ast.Node, error) {
	start := p.get().Pos
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindDefer, Pos: start, Defer: &ast.DeferNode{Expr: expr}}, nil
}

// parseNew handles `new Ident [(args)] [{ initializer }]`.
func (p *Parser) parseNew() (*ast.Node, error) {
	start := p.get().Pos
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	n := &ast.NewNode{TypeName: nameTok.Value}

	if p.peek().Kind == token.Open {
		p.get()
		for p.peek().Kind != token.Close {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			n.Args = append(n.Args, arg)
			if p.peek().Kind == token.Comma {
				p.get()
				continue
			}
			break
		}
		if _, err := p.expect(token.Close); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.Begin {
		init, err := p.parseInitializator()
		if err != nil {
			return nil, err
		}
		n.Initializer = init
	}
	return &ast.Node{Kind: ast.KindNew, Pos: start, New: n}, nil
}

func (p *Parser) parseInitializator() (*ast.Node, error) {
	start := p.get().Pos // '{'
	init := &ast.InitializatorNode{Entries: map[string]*ast.Node{}}
	for p.peek().Kind != token.End {
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectValue(token.Operator, "="); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init.Entries[nameTok.Value] = value
		init.Order = append(init.Order, nameTok.Value)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindInitializator, Pos: start, Initializator: init}, nil
}
