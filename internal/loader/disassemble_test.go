package loader

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

const disassembleGolden = `cdef Caller
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
cend`

// TestDisassembleGoldenRoundTrip loads a small program and checks its
// disassembly against a golden text, diffing with go-difflib for a
// readable failure message on mismatch (SPEC_FULL.md's "golden bytecode
// disassembly snapshots for the VM loader, diffed with go-difflib").
func TestDisassembleGoldenRoundTrip(t *testing.T) {
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

	got := strings.Join(p.Disassemble(), "\n")
	want := disassembleGolden

	if got == want {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "golden",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("computing diff: %v", err)
	}
	t.Fatalf("disassembly mismatch:\n%s", diff)
}
