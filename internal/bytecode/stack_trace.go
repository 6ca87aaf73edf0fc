package bytecode

import (
	"fmt"
	"strings"

	"github.com/lucidlang/lucid/pkg/token"
)

// StackFrame is one call-stack entry: the invocation name Method.Invoke
// assigns a Stack (spec §4.5 step 1) plus the source position of the call
// site, when known.
type StackFrame struct {
	Name string
	Pos  *token.Position
}

func (sf StackFrame) String() string {
	if sf.Pos == nil {
		return sf.Name
	}
	return fmt.Sprintf("%s [line: %d, column: %d]", sf.Name, sf.Pos.Line, sf.Pos.Column)
}

// StackTrace is a call stack as a sequence of frames, child (most recent)
// first — the order spec §8's invariant requires: "child-first order, no
// cycles, monotonically decreasing depth offsets."
type StackTrace []StackFrame

func (st StackTrace) String() string {
	var sb strings.Builder
	for i, f := range st {
		sb.WriteString(f.String())
		if i < len(st)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a copy with frames in bottom-first order.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, f := range st {
		reversed[len(st)-1-i] = f
	}
	return reversed
}

func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

func (st StackTrace) Depth() int { return len(st) }

// Trace walks s and its ancestors, child-first; since every Stack's Parent
// was fixed at construction and a Stack is never shared across frames
// (spec §5: "no Stack is ever shared across frames concurrently"), this
// walk cannot cycle.
func (s *Stack) Trace() StackTrace {
	var frames StackTrace
	for cur := s; cur != nil; cur = cur.Parent {
		frames = append(frames, StackFrame{Name: cur.Name})
	}
	return frames
}
