package parser

import (
	"testing"

	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/internal/lexer"
)

func mustParseExpr(t *testing.T, src string) *ast.Node {
	t.Helper()
	p := New(lexer.New(src), "test.lc")
	node, err := p.parseExpression()
	if err != nil {
		t.Fatalf("parseExpression(%q) error: %v", src, err)
	}
	return node
}

// TestOperatorPrecedence exercises spec §8 scenario 3: "1 + 2 * 3 - 4"
// must rebalance to root '-', left '+' with right '*'(2,3), right Value(4).
func TestOperatorPrecedence(t *testing.T) {
	node := mustParseExpr(t, "1 + 2 * 3 - 4")
	if node.Kind != ast.KindOperation || node.Operation.Operator != "-" {
		t.Fatalf("root = %v, want Operation '-'", node)
	}
	right := node.Operation.Right
	if right.Kind != ast.KindValue || right.Value.Text != "4" {
		t.Fatalf("root.Right = %v, want Value(4)", right)
	}
	left := node.Operation.Left
	if left.Kind != ast.KindOperation || left.Operation.Operator != "+" {
		t.Fatalf("root.Left = %v, want Operation '+'", left)
	}
	innerRight := left.Operation.Right
	if innerRight.Kind != ast.KindOperation || innerRight.Operation.Operator != "*" {
		t.Fatalf("root.Left.Right = %v, want Operation '*'", innerRight)
	}
}

// TestRightAssociativity exercises spec §8 scenario 4: "2 ^ 3 ^ 2" must
// produce root '^' whose right child is '^'(3, 2).
func TestRightAssociativity(t *testing.T) {
	node := mustParseExpr(t, "2 ^ 3 ^ 2")
	if node.Kind != ast.KindOperation || node.Operation.Operator != "^" {
		t.Fatalf("root = %v, want Operation '^'", node)
	}
	left := node.Operation.Left
	if left.Kind != ast.KindValue || left.Value.Text != "2" {
		t.Fatalf("root.Left = %v, want Value(2)", left)
	}
	right := node.Operation.Right
	if right.Kind != ast.KindOperation || right.Operation.Operator != "^" {
		t.Fatalf("root.Right = %v, want Operation '^'", right)
	}
}

// TestTupleDestructuring exercises spec §8 scenario 5.
func TestTupleDestructuring(t *testing.T) {
	node := mustParseExpr(t, `let (a, b) = foo()`)
	if node.Kind != ast.KindLocalDeclareDestructure {
		t.Fatalf("got %v, want LocalDeclareDestructure", node.Kind)
	}
	d := node.LocalDestructure
	if len(d.Members) != 2 || d.Members[0] != "a" || d.Members[1] != "b" {
		t.Fatalf("members = %v, want [a b]", d.Members)
	}
	if d.Value.Kind != ast.KindMethodCall || d.Value.MethodCall.Name != "foo" {
		t.Fatalf("value = %v, want MethodCall(foo)", d.Value)
	}
}

func TestJoinOperationChain(t *testing.T) {
	node := mustParseExpr(t, "a.b.c()")
	if node.Kind != ast.KindJoinOperation {
		t.Fatalf("got %v, want JoinOperation", node.Kind)
	}
	j := node.JoinOperation
	if j.Target.Value.Text != "a" {
		t.Fatalf("target = %v, want a", j.Target)
	}
	if len(j.Children) != 2 {
		t.Fatalf("children = %v, want 2 entries", j.Children)
	}
	if j.Children[0].Value.Text != "b" {
		t.Fatalf("children[0] = %v, want b", j.Children[0])
	}
	if j.Children[1].Kind != ast.KindMethodCall || j.Children[1].MethodCall.Name != "c" {
		t.Fatalf("children[1] = %v, want MethodCall(c)", j.Children[1])
	}
}

func TestMissingTokenIsFailFast(t *testing.T) {
	p := New(lexer.New(`let x = `), "test.lc")
	_, err := p.parseExpression()
	if err == nil {
		t.Fatalf("expected a fail-fast error")
	}
	if len(p.Errors()) != 1 {
		t.Fatalf("expected exactly one accumulated diagnostic, got %d", len(p.Errors()))
	}
}

func TestMethodDeclaration(t *testing.T) {
	p := New(lexer.New("int add(int a, int b) { return a + b; }"), "test.lc")
	node, ok := p.Next()
	if !ok {
		t.Fatalf("expected a node")
	}
	if node.Kind != ast.KindMethod {
		t.Fatalf("got %v, want Method", node.Kind)
	}
	m := node.Method
	if m.Name != "add" || len(m.Params) != 2 || len(m.Returns) != 1 || m.Returns[0].Type != "int" {
		t.Fatalf("method = %+v", m)
	}
	if len(m.Body) != 1 || m.Body[0].Kind != ast.KindReturn {
		t.Fatalf("body = %+v, want single Return", m.Body)
	}
}

func TestClassWithSuperclassAndModifiers(t *testing.T) {
	p := New(lexer.New("public class Dog : Animal { int legs = 4; }"), "test.lc")
	node, ok := p.Next()
	if !ok {
		t.Fatalf("expected ModifierList first")
	}
	if node.Kind != ast.KindModifierList {
		t.Fatalf("got %v, want ModifierList", node.Kind)
	}
	node, ok = p.Next()
	if !ok || node.Kind != ast.KindClass {
		t.Fatalf("got %v, want Class", node.Kind)
	}
	if node.Class.Name != "Dog" || node.Class.Superclass != "Animal" {
		t.Fatalf("class = %+v", node.Class)
	}
	if len(node.Class.Members) != 1 || node.Class.Members[0].Kind != ast.KindField {
		t.Fatalf("members = %+v", node.Class.Members)
	}
}
