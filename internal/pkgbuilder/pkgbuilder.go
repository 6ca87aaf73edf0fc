// Package pkgbuilder implements spec §4.4's Package / Node builder: it
// consumes the parser's top-level node stream, folds modifier lists into
// the next Modifiable node, and routes declarations into a Package's
// symbol tables, enforcing the uniqueness rules spec §4.4 names.
package pkgbuilder

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/internal/strutil"
)

// Package is one file's (or, once merged, one logical unit's) symbol
// table: its declared types, its free (implicitly static) methods, and its
// keyed imports.
type Package struct {
	Name string

	Imports map[string]string // keyed by strutil.LastPathComponent, per spec §4.4
	Types   map[string]*ast.Node
	Methods map[string]*ast.Node

	typeOrder   []string
	methodOrder []string
}

// NewPackage returns an empty Package ready to accept nodes via Builder.Add.
func NewPackage() *Package {
	return &Package{
		Imports: map[string]string{},
		Types:   map[string]*ast.Node{},
		Methods: map[string]*ast.Node{},
	}
}

// Builder folds the parser's flat top-level node stream into a Package,
// carrying the modifier-list/modifier-block state spec §3.2's glossary
// describes between calls to Add.
type Builder struct {
	pkg *Package

	// pendingList applies to exactly the next Modifiable node, then clears
	// (spec §3.2's ModifierList: "applies to the single next declaration").
	pendingList []string

	// blockMods applies to every following declaration in the current
	// scope. spec.md doesn't name an explicit terminator for a
	// ModifierBlock; this builder treats a second ModifierBlock as
	// replacing the first, and never clears on its own (an Open Question
	// decision — see DESIGN.md).
	blockMods []string
}

// NewBuilder returns a Builder over a fresh Package.
func NewBuilder() *Builder {
	return &Builder{pkg: NewPackage()}
}

// Package returns the Package accumulated so far.
func (b *Builder) Package() *Package {
	return b.pkg
}

// Add folds one top-level node into the Package (spec §4.4).
func (b *Builder) Add(n *ast.Node) error {
	switch n.Kind {
	case ast.KindPackage:
		b.pkg.Name = n.PackageSet.Name
		return nil
	case ast.KindImport:
		return b.addImport(n.Import)
	case ast.KindModifierList:
		b.pendingList = append([]string{}, n.ModifierList.Names...)
		return nil
	case ast.KindModifierBlock:
		b.blockMods = append([]string{}, n.ModifierBlock.Names...)
		return nil
	case ast.KindError:
		return fmt.Errorf("pkgbuilder: %s", n.Error.Message)
	default:
		return b.addDeclaration(n)
	}
}

// addImport keys the import by the final path component, splitting on '/'
// then '.' (spec §4.4).
func (b *Builder) addImport(imp *ast.ImportNode) error {
	key := strutil.LastPathComponent(imp.Path)
	if existing, exists := b.pkg.Imports[key]; exists && existing != imp.Path {
		return fmt.Errorf("pkgbuilder: import %q collides with already-imported %q under the same name %q",
			imp.Path, existing, key)
	}
	b.pkg.Imports[key] = imp.Path
	return nil
}

// addDeclaration folds any pending modifiers into n, then routes it into
// the Package's type or method table by the uniqueness key spec §4.4
// requires: name for types, (name, parameter-type sequence) for methods.
func (b *Builder) addDeclaration(n *ast.Node) error {
	if mods, ok := n.Modifiable(); ok {
		merged := mergeModifiers(b.blockMods, b.pendingList, mods.ModifierList())
		mods.SetModifierList(merged)
	}
	b.pendingList = nil

	switch n.Kind {
	case ast.KindClass, ast.KindStruct, ast.KindTupleStruct, ast.KindEnum, ast.KindInterface:
		return b.addType(n)
	case ast.KindMethod:
		return b.addMethod(n)
	case ast.KindField, ast.KindMultiField:
		return nil // top-level field declarations carry no name collision rule in spec §4.4
	default:
		return fmt.Errorf("pkgbuilder: unexpected top-level node kind %s", n.Kind)
	}
}

func (b *Builder) addType(n *ast.Node) error {
	name := typeName(n)
	if _, exists := b.pkg.Types[name]; exists {
		return fmt.Errorf("pkgbuilder: type %q already declared in package %q", name, b.pkg.Name)
	}
	b.pkg.Types[name] = n
	b.pkg.typeOrder = append(b.pkg.typeOrder, name)
	return nil
}

func (b *Builder) addMethod(n *ast.Node) error {
	// Package methods are implicitly static (spec §4.4).
	if !hasModifier(n.Method.Mods, "static") {
		n.Method.Mods = append(n.Method.Mods, "static")
	}
	key := methodKey(n.Method.Name, n.Method.Params)
	if _, exists := b.pkg.Methods[key]; exists {
		return fmt.Errorf("pkgbuilder: method %s already declared in package %q", key, b.pkg.Name)
	}
	b.pkg.Methods[key] = n
	b.pkg.methodOrder = append(b.pkg.methodOrder, key)
	return nil
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}

// mergeModifiers combines a scope-wide block list, a one-shot pending list,
// and whatever modifiers the node's own declaration already carries, in
// that order, without duplicating an entry present in more than one source.
func mergeModifiers(sets ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, set := range sets {
		for _, m := range set {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func typeName(n *ast.Node) string {
	switch n.Kind {
	case ast.KindClass:
		return n.Class.Name
	case ast.KindStruct:
		return n.Struct.Name
	case ast.KindTupleStruct:
		return n.TupleStruct.Name
	case ast.KindEnum:
		return n.Enum.Name
	case ast.KindInterface:
		return n.Interface.Name
	default:
		return ""
	}
}

// methodKey is the (name, parameter-type sequence) uniqueness key spec
// §4.4 requires, mirroring the key internal/bytecode derives from a
// compiled Method's parameter types.
func methodKey(name string, params []ast.Parameter) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Type)
		for range p.Generics {
			sb.WriteByte('*')
		}
		for d := 0; d < p.ArrayDims; d++ {
			sb.WriteString("[]")
		}
		if p.Variadic {
			sb.WriteString("...")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// GetType looks up a declared type by name (the original's Package::getType).
func (p *Package) GetType(name string) (*ast.Node, bool) {
	n, ok := p.Types[name]
	return n, ok
}

// GetMethod looks up a declared free method by (name, parameter-type
// sequence) (the original's Package::getMethod).
func (p *Package) GetMethod(name string, params []ast.Parameter) (*ast.Node, bool) {
	n, ok := p.Methods[methodKey(name, params)]
	return n, ok
}
