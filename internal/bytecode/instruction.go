package bytecode

import "fmt"

// Instruction is one bytecode mnemonic: parsed once from its textual
// operands, given a chance to resolve deferred references once per load,
// and executed once per cursor visit (spec §4.5's Parse/Initialize/Execute
// split — "do not expose raw nullables to instruction authors; wrap in a
// resolver helper that atomically resolve-or-fail").
type Instruction interface {
	Parse(args []string) error
	Initialize(vm *VirtualMachine) error
	Execute(vm *VirtualMachine, ctx *Context, stack *Stack, storage *Storage) error
}

// UnimplementedInstruction stands in for every opcode besides invokestatic
// and the framing directives (cdef/mdef/...), which spec §4.5 explicitly
// scopes out ("the only opcode whose semantics are required in this spec
// is invokestatic"). It parses and initializes as a no-op, and fails
// loudly if ever actually executed, rather than silently doing nothing.
type UnimplementedInstruction struct {
	Mnemonic string
	Args     []string
}

func (i *UnimplementedInstruction) Parse(args []string) error {
	i.Args = args
	return nil
}

func (i *UnimplementedInstruction) Initialize(vm *VirtualMachine) error { return nil }

func (i *UnimplementedInstruction) Execute(vm *VirtualMachine, ctx *Context, stack *Stack, storage *Storage) error {
	return fmt.Errorf("instruction %q has no execution semantics in this build", i.Mnemonic)
}

// InvokeStatic implements spec §4.5's fully-specified opcode: parse
// `<className> <methodName> <paramType>*`, attempt early binding at
// Initialize, and retry once at Execute before raising a fatal exception.
type InvokeStatic struct {
	ClassName  string
	MethodName string
	ParamTypes []Type

	class  *Class
	method *Method
}

func (i *InvokeStatic) Parse(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("invokestatic: expected at least <className> <methodName>, got %v", args)
	}
	i.ClassName = args[0]
	i.MethodName = args[1]
	for _, a := range args[2:] {
		t, err := ParseType(a)
		if err != nil {
			return fmt.Errorf("invokestatic %s %s: %w", i.ClassName, i.MethodName, err)
		}
		i.ParamTypes = append(i.ParamTypes, t)
	}
	return nil
}

// resolve is the resolve-or-fail helper spec §9 asks for: it only ever
// writes i.class/i.method once each, and is safe to call repeatedly.
func (i *InvokeStatic) resolve(vm *VirtualMachine) {
	if i.class == nil {
		if c, ok := vm.FindClass(i.ClassName); ok {
			i.class = c
		}
	}
	if i.class != nil && i.method == nil {
		if m, ok := i.class.FindMethod(i.MethodName, i.ParamTypes); ok {
			i.method = m
		}
	}
}

func (i *InvokeStatic) Initialize(vm *VirtualMachine) error {
	i.resolve(vm)
	return nil
}

func (i *InvokeStatic) Execute(vm *VirtualMachine, ctx *Context, stack *Stack, storage *Storage) error {
	if i.class == nil || i.method == nil {
		i.resolve(vm)
	}
	if i.class == nil {
		return &NoSuchClassError{ClassName: i.ClassName}
	}
	if i.method == nil {
		return &NoSuchMethodError{ClassName: i.ClassName, Signature: methodKey(i.MethodName, i.ParamTypes)}
	}
	return i.method.Invoke(vm, nil, stack)
}
