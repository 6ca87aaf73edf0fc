package bytecode

import "fmt"

// NoSuchClassError is raised when invokestatic (or any other resolving
// instruction) cannot find its target class, even after a retry at
// execution time (spec §4.5/§7).
type NoSuchClassError struct {
	ClassName string
}

func (e *NoSuchClassError) Error() string {
	return fmt.Sprintf("NoSuchClassException: %s", e.ClassName)
}

// NoSuchMethodError is the method-resolution counterpart.
type NoSuchMethodError struct {
	ClassName string
	Signature string
}

func (e *NoSuchMethodError) Error() string {
	return fmt.Sprintf("NoSuchMethodException: %s.%s", e.ClassName, e.Signature)
}

// VirtualMachine owns every loaded Class for its entire lifetime (spec §5).
// Its class table is closed to further definitions once execution begins.
type VirtualMachine struct {
	classes   map[string]*Class
	executing bool
}

func NewVirtualMachine() *VirtualMachine {
	return &VirtualMachine{classes: map[string]*Class{}}
}

// DefineClass registers c. Redefining an already-loaded class name is a
// fatal load-time error (spec §4.5 step 5); defining any class after
// execution has begun is illegal (spec §5).
func (vm *VirtualMachine) DefineClass(c *Class) error {
	if vm.executing {
		return fmt.Errorf("cannot define class %q: execution has already begun", c.Name)
	}
	if _, exists := vm.classes[c.Name]; exists {
		return fmt.Errorf("class %q is already defined", c.Name)
	}
	vm.classes[c.Name] = c
	return nil
}

func (vm *VirtualMachine) FindClass(name string) (*Class, bool) {
	c, ok := vm.classes[name]
	return c, ok
}

// Initialize runs every method body's instructions' Initialize hook,
// attempting early binding of deferred references (spec §4.5 step 4).
func (vm *VirtualMachine) Initialize() error {
	for _, c := range vm.classes {
		for _, m := range c.Methods {
			for _, instr := range m.Body {
				if err := instr.Initialize(vm); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Run marks the VM as executing (closing the class table to further
// definitions, per spec §5) and invokes the named class's named static
// method with no arguments from a fresh root Stack — the shape `#main`
// entry points use (spec §6).
func (vm *VirtualMachine) Run(className, methodName string) error {
	vm.executing = true
	c, ok := vm.FindClass(className)
	if !ok {
		return &NoSuchClassError{ClassName: className}
	}
	m, ok := c.FindMethod(methodName, nil)
	if !ok {
		return &NoSuchMethodError{ClassName: className, Signature: methodName + "()"}
	}
	root := NewStack("<root>", nil)
	return m.Invoke(vm, nil, root)
}
