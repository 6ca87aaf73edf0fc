package loader

import (
	"testing"

	"github.com/lucidlang/lucid/internal/bytecode"
)

const mainSource = `
; a comment line is ignored
#define ENTRY entry
#main Main.ENTRY

cdef Main
cmod public
cbegin
  mdef ENTRY
  mmod static
  mreturn V
  mbegin
  mend
cend
`

func TestLoadClassAndMethod(t *testing.T) {
	p := New()
	if err := p.Load("main.lbc", mainSource); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(p.Classes))
	}
	cls := p.Classes[0]
	if cls.Name != "Main" {
		t.Fatalf("class name = %q, want Main", cls.Name)
	}
	m, ok := cls.FindMethod("entry", nil)
	if !ok {
		t.Fatalf("method %q not found after #define expansion", "entry")
	}
	if !m.IsStatic() {
		t.Fatalf("expected entry to be static")
	}
	if len(m.Body) != 0 {
		t.Fatalf("expected an empty body (mbegin immediately followed by mend), got %d instructions", len(m.Body))
	}

	class, method, err := p.Entry()
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if class != "Main" || method != "entry" {
		t.Fatalf("Entry() = (%q, %q), want (Main, entry)", class, method)
	}
}

func TestLoadInvokestaticBody(t *testing.T) {
	src := `
cdef Caller
cbegin
  mdef run
  mmod static
  mreturn V
  mbegin
    invokestatic Callee target
  mend
cend

cdef Callee
cbegin
  mdef target
  mmod static
  mreturn V
  mbegin
  mend
cend
`
	p := New()
	if err := p.Load("prog.lbc", src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	vm := bytecode.NewVirtualMachine()
	if err := p.LoadInto(vm); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}
	if err := vm.Run("Caller", "run"); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRedefinitionIsFatalAtLoad(t *testing.T) {
	src := `
cdef Dup
cbegin
cend

cdef Dup
cbegin
cend
`
	p := New()
	if err := p.Load("dup.lbc", src); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := p.LoadInto(bytecode.NewVirtualMachine()); err == nil {
		t.Fatalf("expected redefinition of Dup to be a fatal load error")
	}
}

func TestMalformedSectionIsRejected(t *testing.T) {
	p := New()
	err := p.Load("bad.lbc", "cdef Foo\ncbody bogus\ncend\n")
	if err == nil {
		t.Fatalf("expected an error for an unexpected directive in a class header")
	}
}
