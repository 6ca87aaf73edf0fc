package bytecode

import (
	"fmt"
	"strings"
)

// Kind is the primitive/reference family a value belongs to (spec §4.5's
// type prefixes: V B C S I J F D Z, plus class and array references).
type Kind int

const (
	KindVoid Kind = iota
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBoolean
	KindInstance
	KindArray
)

// Type is one parsed type descriptor: a bare primitive, `L<Name>;`, or
// `[<type>` for an array of some other type descriptor.
type Type struct {
	Kind    Kind
	Class   string
	Element *Type
}

func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "V"
	case KindByte:
		return "B"
	case KindChar:
		return "C"
	case KindShort:
		return "S"
	case KindInt:
		return "I"
	case KindLong:
		return "J"
	case KindFloat:
		return "F"
	case KindDouble:
		return "D"
	case KindBoolean:
		return "Z"
	case KindInstance:
		return "L" + t.Class + ";"
	case KindArray:
		return "[" + t.Element.String()
	}
	return "?"
}

// ParseType parses one complete type descriptor token, per spec §6's
// grammar: `V B C S I J F D Z`, class `L<Name>;`, array `[<type>`.
func ParseType(s string) (Type, error) {
	if s == "" {
		return Type{}, fmt.Errorf("empty type descriptor")
	}
	switch s[0] {
	case 'V':
		return Type{Kind: KindVoid}, nil
	case 'B':
		return Type{Kind: KindByte}, nil
	case 'C':
		return Type{Kind: KindChar}, nil
	case 'S':
		return Type{Kind: KindShort}, nil
	case 'I':
		return Type{Kind: KindInt}, nil
	case 'J':
		return Type{Kind: KindLong}, nil
	case 'F':
		return Type{Kind: KindFloat}, nil
	case 'D':
		return Type{Kind: KindDouble}, nil
	case 'Z':
		return Type{Kind: KindBoolean}, nil
	case 'L':
		if !strings.HasSuffix(s, ";") {
			return Type{}, fmt.Errorf("malformed class type descriptor %q: missing trailing ';'", s)
		}
		return Type{Kind: KindInstance, Class: s[1 : len(s)-1]}, nil
	case '[':
		elem, err := ParseType(s[1:])
		if err != nil {
			return Type{}, fmt.Errorf("malformed array type descriptor %q: %w", s, err)
		}
		return Type{Kind: KindArray, Element: &elem}, nil
	}
	return Type{}, fmt.Errorf("unknown type descriptor %q", s)
}
