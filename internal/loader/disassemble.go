package loader

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/internal/bytecode"
)

// Disassemble renders every loaded class back out as textual bytecode,
// the same grammar Load parses (spec §6). It's a golden-file target: a
// Load(Disassemble(p)) round-trip should reproduce the same Classes.
func (p *Program) Disassemble() []string {
	var out []string
	for _, c := range p.Classes {
		disassembleClass(c, &out)
	}
	return out
}

func disassembleClass(c *bytecode.Class, out *[]string) {
	*out = append(*out, "cdef "+c.Name)
	if len(c.Modifiers) > 0 {
		*out = append(*out, "cmod "+strings.Join(c.Modifiers, " "))
	}
	if c.Superclass != "" && c.Superclass != "Object" {
		*out = append(*out, "cext "+c.Superclass)
	}
	if len(c.Interfaces) > 0 {
		*out = append(*out, "cimpl "+strings.Join(c.Interfaces, " "))
	}
	*out = append(*out, "cbegin")
	for _, name := range orderedMethodKeys(c) {
		disassembleMethod(c.Methods[name], out)
	}
	*out = append(*out, "cend")
}

// orderedMethodKeys gives a deterministic method order for disassembly;
// Go's map iteration order is randomized, but golden output must be stable.
func orderedMethodKeys(c *bytecode.Class) []string {
	keys := make([]string, 0, len(c.Methods))
	for k := range c.Methods {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func disassembleMethod(m *bytecode.Method, out *[]string) {
	*out = append(*out, "  mdef "+m.Name)
	if len(m.Modifiers) > 0 {
		*out = append(*out, "  mmod "+strings.Join(m.Modifiers, " "))
	}
	if len(m.Params) > 0 {
		types := make([]string, len(m.Params))
		for i, p := range m.Params {
			types[i] = p.String()
		}
		*out = append(*out, "  mparam "+strings.Join(types, " "))
	}
	*out = append(*out, "  mreturn "+m.Return.String())
	*out = append(*out, "  mbegin")
	for _, instr := range m.Body {
		*out = append(*out, "    "+disassembleInstruction(instr))
	}
	*out = append(*out, "  mend")
}

func disassembleInstruction(instr bytecode.Instruction) string {
	switch v := instr.(type) {
	case *bytecode.InvokeStatic:
		parts := []string{"invokestatic", v.ClassName, v.MethodName}
		for _, t := range v.ParamTypes {
			parts = append(parts, t.String())
		}
		return strings.Join(parts, " ")
	case *bytecode.UnimplementedInstruction:
		return strings.TrimSpace(fmt.Sprintf("%s %s", v.Mnemonic, strings.Join(v.Args, " ")))
	default:
		return fmt.Sprintf("; unknown instruction %T", instr)
	}
}
