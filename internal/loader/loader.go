// Package loader implements spec §4.5 step 1 / §6's Program loader: it turns
// one or more textual bytecode sources into bytecode.Class values ready to
// hand to a bytecode.VirtualMachine. It never walks a directory or expands a
// glob itself — file discovery is an external collaborator's job (spec §1's
// explicit non-goal), left to cmd/lucid.
package loader

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/internal/bytecode"
	"github.com/lucidlang/lucid/internal/errors"
	"github.com/lucidlang/lucid/internal/strutil"
	"github.com/lucidlang/lucid/pkg/token"
)

// Program is the result of loading one or more bytecode source files: the
// flattened list of classes found, the #define substitution table, and the
// #main directive's recorded entry point, if any.
type Program struct {
	Classes []*bytecode.Class
	Main    string
	Defines map[string]string
}

// New returns an empty Program ready to accumulate sources via Load.
func New() *Program {
	return &Program{Defines: map[string]string{}}
}

// line is one post-processed source line plus the file/line it came from,
// kept around only so load errors can point somewhere.
type line struct {
	text string
	file string
	num  int
}

// Load appends one named source's content to the Program: it strips blank
// and `;`-comment lines, trims leading whitespace, expands #define
// substitutions, records #main, and folds the remaining lines into the
// class/method scanner (spec §4.5 step 1).
func (p *Program) Load(file, src string) error {
	var lines []line
	for i, raw := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		switch {
		case strings.HasPrefix(trimmed, "#define "):
			rest := strings.TrimSpace(trimmed[len("#define "):])
			parts := strings.SplitN(rest, " ", 2)
			if len(parts) != 2 {
				return errors.New(errors.Load, fmt.Sprintf("malformed #define directive %q", trimmed),
					token.Position{Line: i + 1}, src, file)
			}
			p.Defines[parts[0]] = strings.TrimSpace(parts[1])
		case strings.HasPrefix(trimmed, "#main "):
			entry := strings.TrimSpace(trimmed[len("#main "):])
			if dot := strings.LastIndex(entry, "."); dot >= 0 {
				entry = p.expand(entry[:dot]) + "." + p.expand(entry[dot+1:])
			} else {
				entry = p.expand(entry)
			}
			p.Main = entry
		default:
			lines = append(lines, line{text: p.expand(trimmed), file: file, num: i + 1})
		}
	}
	return p.scan(lines, src)
}

// expand replaces any whitespace-delimited token in text that matches a
// #define key with its substitution (spec §4.5 step 1).
func (p *Program) expand(text string) string {
	if len(p.Defines) == 0 {
		return text
	}
	fields := strutil.Split(text, " ")
	for i, f := range fields {
		if sub, ok := p.Defines[f]; ok {
			fields[i] = sub
		}
	}
	return strutil.Join(fields, " ")
}

// scan walks the post-processed lines building one Class per top-level
// cdef...cbegin...cend block (spec §4.5 step 2).
func (p *Program) scan(lines []line, src string) error {
	i := 0
	for i < len(lines) {
		fields := strutil.Split(lines[i].text, " ")
		if len(fields) == 0 {
			i++
			continue
		}
		if fields[0] != "cdef" {
			return loadErr(lines[i], src, fmt.Sprintf("unexpected directive %q outside a class section", fields[0]))
		}
		cls, next, err := p.parseClass(lines, i, src)
		if err != nil {
			return err
		}
		p.Classes = append(p.Classes, cls)
		i = next
	}
	return nil
}

// parseClass parses one cdef block starting at lines[i], returning the
// built Class and the index just past its matching (outermost) cend. A
// nested cdef inside the body increments a depth counter and is parsed
// recursively, flattened into the same Program (spec §4.5 step 2: "only the
// outermost cend closes the current class").
func (p *Program) parseClass(lines []line, i int, src string) (*bytecode.Class, int, error) {
	fields := strutil.Split(lines[i].text, " ")
	if len(fields) < 2 {
		return nil, 0, loadErr(lines[i], src, "cdef: missing class name")
	}
	cls := bytecode.NewClass(fields[1])
	i++

	for i < len(lines) {
		fields = strutil.Split(lines[i].text, " ")
		if len(fields) == 0 {
			i++
			continue
		}
		switch fields[0] {
		case "cmod":
			cls.Modifiers = append(cls.Modifiers, strutil.SubList(fields, 1)...)
			i++
		case "cext":
			if len(fields) < 2 {
				return nil, 0, loadErr(lines[i], src, "cext: missing superclass name")
			}
			cls.Superclass = fields[1]
			i++
		case "cimpl":
			cls.Interfaces = append(cls.Interfaces, strutil.SubList(fields, 1)...)
			i++
		case "cbegin":
			i++
			return p.parseClassBody(cls, lines, i, src)
		default:
			return nil, 0, loadErr(lines[i], src, fmt.Sprintf("unexpected directive %q in class header", fields[0]))
		}
	}
	return nil, 0, loadErr(lines[len(lines)-1], src, fmt.Sprintf("class %q: missing cbegin", cls.Name))
}

// parseClassBody consumes mdef sections and nested cdef blocks until the
// matching cend, per spec §4.5 step 2's depth-counter rule.
func (p *Program) parseClassBody(cls *bytecode.Class, lines []line, i int, src string) (*bytecode.Class, int, error) {
	for i < len(lines) {
		fields := strutil.Split(lines[i].text, " ")
		if len(fields) == 0 {
			i++
			continue
		}
		switch fields[0] {
		case "mdef":
			m, next, err := parseMethod(lines, i, src)
			if err != nil {
				return nil, 0, err
			}
			if err := cls.AddMethod(m); err != nil {
				return nil, 0, errors.New(errors.Load, err.Error(), token.Position{Line: lines[i].num}, src, lines[i].file)
			}
			i = next
		case "cdef":
			nested, next, err := p.parseClass(lines, i, src)
			if err != nil {
				return nil, 0, err
			}
			p.Classes = append(p.Classes, nested)
			i = next
		case "cend":
			return cls, i + 1, nil
		default:
			return nil, 0, loadErr(lines[i], src, fmt.Sprintf("unexpected directive %q in class body", fields[0]))
		}
	}
	return nil, 0, loadErr(lines[len(lines)-1], src, fmt.Sprintf("class %q: missing cend", cls.Name))
}

// parseMethod parses one mdef...mend section.
func parseMethod(lines []line, i int, src string) (*bytecode.Method, int, error) {
	fields := strutil.Split(lines[i].text, " ")
	if len(fields) < 2 {
		return nil, 0, loadErr(lines[i], src, "mdef: missing method name")
	}
	m := &bytecode.Method{Name: fields[1]}
	i++

	for i < len(lines) {
		fields = strutil.Split(lines[i].text, " ")
		if len(fields) == 0 {
			i++
			continue
		}
		switch fields[0] {
		case "mmod":
			m.Modifiers = append(m.Modifiers, strutil.SubList(fields, 1)...)
			i++
		case "mparam":
			for _, a := range strutil.SubList(fields, 1) {
				t, err := bytecode.ParseType(a)
				if err != nil {
					return nil, 0, loadErr(lines[i], src, err.Error())
				}
				m.Params = append(m.Params, t)
			}
			i++
		case "mreturn":
			if len(fields) < 2 {
				return nil, 0, loadErr(lines[i], src, "mreturn: missing type")
			}
			t, err := bytecode.ParseType(fields[1])
			if err != nil {
				return nil, 0, loadErr(lines[i], src, err.Error())
			}
			m.Return = t
			i++
		case "mbegin":
			return parseMethodBody(m, lines, i+1, src)
		case "mend":
			return m, i + 1, nil
		default:
			return nil, 0, loadErr(lines[i], src, fmt.Sprintf("unexpected directive %q in method header", fields[0]))
		}
	}
	return nil, 0, loadErr(lines[len(lines)-1], src, fmt.Sprintf("method %q: missing mbegin/mend", m.Name))
}

// parseMethodBody consumes instruction lines until mend, building one
// Instruction per line: invokestatic gets its fully-specified type, every
// other mnemonic becomes an UnimplementedInstruction (spec §4.5's explicit
// scoping of VM semantics to invokestatic plus the framing opcodes).
func parseMethodBody(m *bytecode.Method, lines []line, i int, src string) (*bytecode.Method, int, error) {
	for i < len(lines) {
		fields := strutil.Split(lines[i].text, " ")
		if len(fields) == 0 {
			i++
			continue
		}
		if fields[0] == "mend" {
			return m, i + 1, nil
		}
		instr, err := buildInstruction(fields[0], strutil.SubList(fields, 1))
		if err != nil {
			return nil, 0, loadErr(lines[i], src, err.Error())
		}
		m.Body = append(m.Body, instr)
		i++
	}
	return nil, 0, loadErr(lines[len(lines)-1], src, fmt.Sprintf("method %q: missing mend", m.Name))
}

func buildInstruction(mnemonic string, args []string) (bytecode.Instruction, error) {
	switch mnemonic {
	case "invokestatic":
		instr := &bytecode.InvokeStatic{}
		if err := instr.Parse(args); err != nil {
			return nil, err
		}
		return instr, nil
	default:
		instr := &bytecode.UnimplementedInstruction{}
		if err := instr.Parse(args); err != nil {
			return nil, err
		}
		instr.Mnemonic = mnemonic
		return instr, nil
	}
}

func loadErr(l line, src, msg string) error {
	return errors.New(errors.Load, msg, token.Position{Line: l.num}, src, l.file)
}

// LoadInto registers every class the Program collected with vm, in order,
// then runs the VM's early-binding Initialize pass. Redefinition of an
// already-loaded class name surfaces here as a fatal load error (spec §4.5
// step 5), since VirtualMachine.DefineClass itself returns one.
func (p *Program) LoadInto(vm *bytecode.VirtualMachine) error {
	for _, c := range p.Classes {
		if err := vm.DefineClass(c); err != nil {
			return err
		}
	}
	return vm.Initialize()
}

// Entry splits the #main directive's recorded value ("Class.method", or a
// bare "Class" meaning its "main" method) into the (class, method) pair
// VirtualMachine.Run expects.
func (p *Program) Entry() (class, method string, err error) {
	if p.Main == "" {
		return "", "", fmt.Errorf("loader: no #main directive recorded")
	}
	if dot := strings.LastIndex(p.Main, "."); dot >= 0 {
		return p.Main[:dot], p.Main[dot+1:], nil
	}
	return p.Main, "main", nil
}
