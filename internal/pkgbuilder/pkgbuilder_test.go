package pkgbuilder

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lucidlang/lucid/internal/ast"
)

func methodNode(name string, params ...ast.Parameter) *ast.Node {
	return &ast.Node{Kind: ast.KindMethod, Method: &ast.MethodNode{Name: name, Params: params}}
}

func classNode(name string, members ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.KindClass, Class: &ast.ClassNode{Name: name, Members: members}}
}

// TestDuplicateMethodIsRejected exercises spec §8 scenario 8: two methods
// with the same (name, parameter-type sequence) must fail to build.
func TestDuplicateMethodIsRejected(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(methodNode("foo", ast.Parameter{Type: "int"})); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := b.Add(methodNode("foo", ast.Parameter{Type: "int"}))
	if err == nil {
		t.Fatalf("expected a duplicate-method error")
	}
	if !strings.Contains(err.Error(), "foo(int)") {
		t.Fatalf("error %q does not name the colliding signature", err.Error())
	}
}

func TestDuplicateTypeIsRejected(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(classNode("Widget")); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := b.Add(classNode("Widget")); err == nil {
		t.Fatalf("expected a duplicate-type error")
	}
}

func TestDistinctParameterTypesAreNotDuplicates(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(methodNode("foo", ast.Parameter{Type: "int"})); err != nil {
		t.Fatalf("Add int overload: %v", err)
	}
	if err := b.Add(methodNode("foo", ast.Parameter{Type: "string"})); err != nil {
		t.Fatalf("Add string overload should not collide: %v", err)
	}
}

func TestPackageMethodsAreImplicitlyStatic(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(methodNode("run")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	m, ok := b.Package().GetMethod("run", nil)
	if !ok {
		t.Fatalf("method not found")
	}
	if !hasModifier(m.Method.Mods, "static") {
		t.Fatalf("expected package method to be implicitly static, got mods %v", m.Method.Mods)
	}
}

func TestModifierListAppliesToNextDeclarationOnly(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(&ast.Node{Kind: ast.KindModifierList, ModifierList: &ast.ModifierListNode{Names: []string{"public"}}}); err != nil {
		t.Fatalf("Add modifier list: %v", err)
	}
	if err := b.Add(classNode("A")); err != nil {
		t.Fatalf("Add A: %v", err)
	}
	if err := b.Add(classNode("B")); err != nil {
		t.Fatalf("Add B: %v", err)
	}
	a, _ := b.Package().GetType("A")
	bb, _ := b.Package().GetType("B")
	if !hasModifier(a.Class.Mods, "public") {
		t.Fatalf("expected A to carry the pending modifier list, got %v", a.Class.Mods)
	}
	if hasModifier(bb.Class.Mods, "public") {
		t.Fatalf("expected B to NOT carry the one-shot modifier list, got %v", bb.Class.Mods)
	}
}

func TestImportKeyedByLastPathComponent(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(&ast.Node{Kind: ast.KindImport, Import: &ast.ImportNode{Path: "std/collections.List"}}); err != nil {
		t.Fatalf("Add import: %v", err)
	}
	path, ok := b.Package().Imports["List"]
	if !ok || path != "std/collections.List" {
		t.Fatalf("Imports[%q] = (%q, %v), want (std/collections.List, true)", "List", path, ok)
	}
}

func TestCompileEmitsClassAndFreeMethodSections(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(&ast.Node{Kind: ast.KindPackage, PackageSet: &ast.PackageNode{Name: "demo"}}); err != nil {
		t.Fatalf("Add package: %v", err)
	}
	if err := b.Add(classNode("Widget", methodNode("tick"))); err != nil {
		t.Fatalf("Add Widget: %v", err)
	}
	if err := b.Add(methodNode("main")); err != nil {
		t.Fatalf("Add main: %v", err)
	}

	lines := b.Package().Compile()
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "cdef Widget") {
		t.Fatalf("expected a Widget class section, got:\n%s", joined)
	}
	if !strings.Contains(joined, "cdef <package>demo") {
		t.Fatalf("expected an anonymous package-methods class, got:\n%s", joined)
	}
	if !strings.Contains(joined, "mdef main") {
		t.Fatalf("expected the free method main to be emitted, got:\n%s", joined)
	}
}

// TestCompileBytecodeSnapshot snapshots the full textual bytecode outline
// for a small package, the way the teacher's fixture suite snapshots
// interpreter output (internal/interp/fixture_test.go).
func TestCompileBytecodeSnapshot(t *testing.T) {
	b := NewBuilder()
	_ = b.Add(&ast.Node{Kind: ast.KindPackage, PackageSet: &ast.PackageNode{Name: "demo"}})
	_ = b.Add(classNode("Widget",
		methodNode("tick"),
		&ast.Node{Kind: ast.KindField, Field: &ast.FieldNode{Type: "int", Name: "count"}},
	))
	_ = b.Add(methodNode("main"))

	snaps.MatchSnapshot(t, strings.Join(b.Package().Compile(), "\n"))
}
