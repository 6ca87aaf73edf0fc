package parser

import (
	"github.com/lucidlang/lucid/internal/ast"
	"github.com/lucidlang/lucid/pkg/token"
)

// parseTypeDeclaration handles class/struct/enum/interface (spec §4.3).
// TupleStruct is recognized as a struct declaration whose body is a single
// parenthesized field list instead of a brace-delimited member list.
func (p *Parser) parseTypeDeclaration() (*ast.Node, error) {
	kw := p.get()
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return nil, err
	}

	switch kw.Value {
	case "class":
		return p.parseClassBody(kw, nameTok.Value, generics)
	case "struct":
		if p.peek().Kind == token.Open {
			return p.parseTupleStructBody(kw, nameTok.Value)
		}
		return p.parseStructBody(kw, nameTok.Value, generics)
	case "enum":
		return p.parseEnumBody(kw, nameTok.Value)
	default: // "interface"
		return p.parseInterfaceBody(kw, nameTok.Value)
	}
}

func (p *Parser) parseOptionalGenerics() ([]string, error) {
	if p.peek().Kind != token.Operator || p.peek().Value != "<" {
		return nil, nil
	}
	p.get()
	var names []string
	for {
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Value)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expectValue(token.Operator, ">"); err != nil {
		return nil, err
	}
	return names, nil
}

func (p *Parser) parseClassBody(kw token.Token, name string, generics []string) (*ast.Node, error) {
	cls := &ast.ClassNode{Name: name, Generics: generics, Superclass: "Object"}

	if p.peek().Kind == token.Colon {
		p.get()
		superTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		cls.Superclass = superTok.Value
		for p.peek().Kind == token.Comma {
			p.get()
			ifaceTok, err := p.expect(token.Identifier)
			if err != nil {
				return nil, err
			}
			cls.Interfaces = append(cls.Interfaces, ifaceTok.Value)
		}
	}

	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	cls.Members = members
	return &ast.Node{Kind: ast.KindClass, Pos: kw.Pos, Class: cls}, nil
}

func (p *Parser) parseStructBody(kw token.Token, name string, generics []string) (*ast.Node, error) {
	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindStruct, Pos: kw.Pos, Struct: &ast.StructNode{Name: name, Generics: generics, Members: members}}, nil
}

func (p *Parser) parseTupleStructBody(kw token.Token, name string) (*ast.Node, error) {
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	var fields []ast.Parameter
	for p.peek().Kind != token.Close {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		fields = append(fields, param)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindTupleStruct, Pos: kw.Pos, TupleStruct: &ast.TupleStructNode{Name: name, Fields: fields}}, nil
}

func (p *Parser) parseEnumBody(kw token.Token, name string) (*ast.Node, error) {
	if _, err := p.expect(token.Begin); err != nil {
		return nil, err
	}
	var members []string
	for p.peek().Kind != token.End {
		memberTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		members = append(members, memberTok.Value)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindEnum, Pos: kw.Pos, Enum: &ast.EnumNode{Name: name, Members: members}}, nil
}

func (p *Parser) parseInterfaceBody(kw token.Token, name string) (*ast.Node, error) {
	members, err := p.parseMemberBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindInterface, Pos: kw.Pos, Interface: &ast.InterfaceNode{Name: name, Methods: members}}, nil
}

// parseMemberBlock parses a `{ ... }` sequence of member declarations,
// folding each preceding ModifierList into the Modifiable member that
// follows it (the same capability the package builder applies at the
// top level, spec §4.4).
func (p *Parser) parseMemberBlock() ([]*ast.Node, error) {
	if _, err := p.expect(token.Begin); err != nil {
		return nil, err
	}
	var members []*ast.Node
	var pending []string
	for p.peek().Kind != token.End {
		if p.peek().Kind == token.Semicolon {
			p.get()
			continue
		}
		if p.peek().Kind == token.Modifier {
			node, err := p.parseModifierListOrBlock()
			if err != nil {
				return nil, err
			}
			if node.Kind == ast.KindModifierList {
				pending = node.ModifierList.Names
				continue
			}
		}
		member, err := p.parseMethodOrField()
		if err != nil {
			return nil, err
		}
		if mod, ok := member.Modifiable(); ok && pending != nil {
			mod.SetModifierList(pending)
			pending = nil
		}
		members = append(members, member)
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return members, nil
}

// parseMethodOrField disambiguates the two remaining top-level/member
// forms: `(Type...) name(...)` multi-return method, `Type name(...)`
// single-return method, and `Type name ('='|';'|',')` field/MultiField.
func (p *Parser) parseMethodOrField() (*ast.Node, error) {
	start := p.peek().Pos

	if p.peek().Kind == token.Open {
		return p.parseMultiReturnMethod(start)
	}

	typeTok, err := p.expect(token.Type, token.Identifier)
	if err != nil {
		return nil, err
	}
	typeName := typeTok.Value
	if typeTok.Kind == token.Identifier {
		// "Identifier <" is a generic user type used as a return/field type.
		if p.peek().Kind == token.Operator && p.peek().Value == "<" {
			generics, err := p.parseOptionalGenerics()
			if err != nil {
				return nil, err
			}
			_ = generics
		}
	}

	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.Open {
		return p.parseMethod(start, typeName, nameTok.Value)
	}

	return p.parseFieldTail(start, typeName, nameTok.Value)
}

func (p *Parser) parseMultiReturnMethod(start token.Position) (*ast.Node, error) {
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	var returns []ast.ReturnEntry
	for p.peek().Kind != token.Close {
		entry, err := p.parseReturnEntry()
		if err != nil {
			return nil, err
		}
		returns = append(returns, entry)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	return p.finishMethod(start, returns, nameTok.Value)
}

func (p *Parser) parseReturnEntry() (ast.ReturnEntry, error) {
	typeTok, err := p.expect(token.Type, token.Identifier)
	if err != nil {
		return ast.ReturnEntry{}, err
	}
	entry := ast.ReturnEntry{Type: typeTok.Value}
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return ast.ReturnEntry{}, err
	}
	entry.Generics = generics
	for p.peek().Kind == token.Start {
		p.get()
		if _, err := p.expect(token.Stop); err != nil {
			return ast.ReturnEntry{}, err
		}
		entry.ArrayDims++
	}
	if p.peek().Kind == token.Identifier {
		entry.Name = p.get().Value
	}
	return entry, nil
}

func (p *Parser) parseMethod(start token.Position, typeName, name string) (*ast.Node, error) {
	return p.finishMethod(start, []ast.ReturnEntry{{Type: typeName}}, name)
}

func (p *Parser) finishMethod(start token.Position, returns []ast.ReturnEntry, name string) (*ast.Node, error) {
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	p.skipOptionalSemicolon()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.KindMethod, Pos: start, Method: &ast.MethodNode{
		Name: name, Generics: generics, Returns: returns, Params: params, Body: body,
	}}, nil
}

func (p *Parser) parseParameterList() ([]ast.Parameter, error) {
	if _, err := p.expect(token.Open); err != nil {
		return nil, err
	}
	var params []ast.Parameter
	for p.peek().Kind != token.Close {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.peek().Kind == token.Comma {
			p.get()
			continue
		}
		break
	}
	if _, err := p.expect(token.Close); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParameter() (ast.Parameter, error) {
	typeTok, err := p.expect(token.Type, token.Identifier)
	if err != nil {
		return ast.Parameter{}, err
	}
	param := ast.Parameter{Type: typeTok.Value}
	generics, err := p.parseOptionalGenerics()
	if err != nil {
		return ast.Parameter{}, err
	}
	param.Generics = generics
	for p.peek().Kind == token.Start {
		p.get()
		if _, err := p.expect(token.Stop); err != nil {
			return ast.Parameter{}, err
		}
		param.ArrayDims++
	}
	if p.peek().Kind == token.Operator && p.peek().Value == "." {
		// variadic "..." lexes as three Operator "." tokens in sequence.
		p.get()
		if _, err := p.expectValue(token.Operator, "."); err != nil {
			return ast.Parameter{}, err
		}
		if _, err := p.expectValue(token.Operator, "."); err != nil {
			return ast.Parameter{}, err
		}
		param.Variadic = true
	}
	nameTok, err := p.expect(token.Identifier)
	if err != nil {
		return ast.Parameter{}, err
	}
	param.Name = nameTok.Value
	return param, nil
}

// parseFieldTail handles the remainder of `Type name` once it's known not
// to be a method: '=' initializer, ';' bare declaration, or ',' MultiField.
func (p *Parser) parseFieldTail(start token.Position, typeName, firstName string) (*ast.Node, error) {
	names := []string{firstName}
	for p.peek().Kind == token.Comma {
		p.get()
		nameTok, err := p.expect(token.Identifier)
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Value)
	}

	var value *ast.Node
	if p.peek().Kind == token.Operator && p.peek().Value == "=" {
		p.get()
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	if len(names) > 1 {
		return &ast.Node{Kind: ast.KindMultiField, Pos: start, MultiField: &ast.MultiFieldNode{
			Type: typeName, Names: names, Value: value,
		}}, nil
	}
	return &ast.Node{Kind: ast.KindField, Pos: start, Field: &ast.FieldNode{
		Type: typeName, Name: names[0], Value: value,
	}}, nil
}
