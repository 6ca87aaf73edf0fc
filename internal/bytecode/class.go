package bytecode

import (
	"fmt"
	"strings"
)

// Field is one class-level field slot (spec §6's class section grammar
// does not enumerate field directives explicitly beyond mdef/mparam; this
// mirrors the same Name/Type/Modifiers shape as Method for symmetry with
// the AST's FieldNode).
type Field struct {
	Name      string
	Type      Type
	Modifiers []string
}

// Method is one compiled method body plus enough metadata to resolve and
// invoke it (spec §4.5).
type Method struct {
	Owner     string
	Name      string
	Modifiers []string
	Params    []Type
	Return    Type
	Body      []Instruction
}

func (m *Method) IsStatic() bool {
	for _, mod := range m.Modifiers {
		if mod == "static" {
			return true
		}
	}
	return false
}

// Signature is the human-readable invocation name spec §4.5 step 1
// requires: "<Class>.<method>(<params>)<return>".
func (m *Method) Signature() string {
	var sb strings.Builder
	sb.WriteString(m.Owner)
	sb.WriteByte('.')
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	sb.WriteString(m.Return.String())
	return sb.String()
}

// methodKey identifies a method by (name, parameter-type sequence), the
// key spec §4.4 and §4.5 both use for lookup and uniqueness.
func methodKey(name string, params []Type) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(p.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Invoke runs m per spec §4.5's six invocation steps: a child Stack framed
// off caller, parameters popped off caller's typed sub-stacks into a fresh
// Storage (receiver first when non-static), a Context driving the
// fetch-execute-increment loop, and the result coerced back onto caller's
// matching sub-stack when the return type isn't void.
func (m *Method) Invoke(vm *VirtualMachine, receiver *Instance, caller *Stack) error {
	frame := NewStack(m.Signature(), caller)
	storage := NewStorage()

	if !m.IsStatic() {
		if _, err := storage.SetInstance(receiver); err != nil {
			return err
		}
	}
	for _, pt := range m.Params {
		v, err := caller.PopTyped(pt)
		if err != nil {
			return fmt.Errorf("invoking %s: %w", m.Signature(), err)
		}
		if _, err := storage.AppendTyped(pt, v); err != nil {
			return err
		}
	}

	ctx := &Context{Cursor: 0, Length: len(m.Body)}
	for ctx.Cursor < ctx.Length {
		instr := m.Body[ctx.Cursor]
		if err := instr.Execute(vm, ctx, frame, storage); err != nil {
			return err
		}
		ctx.Cursor++
	}

	if m.Return.Kind != KindVoid {
		return caller.PushTyped(m.Return, ctx.Result)
	}
	return nil
}

// Class is one loaded cdef/cbegin/cend section.
type Class struct {
	Name       string
	Modifiers  []string
	Superclass string
	Interfaces []string
	Methods    map[string]*Method
	Fields     map[string]*Field
}

// NewClass constructs a Class with the spec's default superclass (Object,
// per §4.5 step 3: "cext ... superclass (default Object)").
func NewClass(name string) *Class {
	return &Class{Name: name, Superclass: "Object", Methods: map[string]*Method{}, Fields: map[string]*Field{}}
}

// AddMethod registers m, keyed by (name, params). Returns an error if a
// method with the same signature is already present.
func (c *Class) AddMethod(m *Method) error {
	m.Owner = c.Name
	key := methodKey(m.Name, m.Params)
	if _, exists := c.Methods[key]; exists {
		return fmt.Errorf("class %s: method %s already defined", c.Name, m.Signature())
	}
	c.Methods[key] = m
	return nil
}

func (c *Class) AddField(f *Field) error {
	if _, exists := c.Fields[f.Name]; exists {
		return fmt.Errorf("class %s: field %q already defined", c.Name, f.Name)
	}
	c.Fields[f.Name] = f
	return nil
}

func (c *Class) FindMethod(name string, params []Type) (*Method, bool) {
	m, ok := c.Methods[methodKey(name, params)]
	return m, ok
}

// Context is one invocation's cursor/length/result, per spec §4.5 step 4.
type Context struct {
	Cursor int
	Length int
	Result any
}
