// Package strutil holds the small text helpers shared across the lexer,
// package builder and bytecode loader: splitting/joining instruction lines and
// import paths, and converting between the UTF-32 byte interface the
// tokenizer is specified against (spec §6) and the UTF-8 Go strings it
// operates on internally.
package strutil

import (
	"strings"

	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// Split splits s on sep, dropping empty fields produced by repeated
// separators. Used for tokenizing bytecode instruction lines ("<opcode>
// <arg>*").
func Split(s string, sep string) []string {
	raw := strings.Split(s, sep)
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Join concatenates parts with sep, mirroring strings.Join; kept here so
// every join/split text operation in the module goes through one place.
func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// SubList returns a shallow copy of parts starting at from, or an empty
// slice if from is out of range. Mirrors the Lists::subList helper the
// bytecode loader uses to drop the opcode mnemonic from an argument list.
func SubList(parts []string, from int) []string {
	if from < 0 || from >= len(parts) {
		return nil
	}
	out := make([]string, len(parts)-from)
	copy(out, parts[from:])
	return out
}

// LastPathComponent returns the final component of a dotted/slashed import
// path, e.g. "a/b.C" -> "C". Used to key Package.Imports by short name.
func LastPathComponent(path string) string {
	path = strings.ReplaceAll(path, "/", ".")
	parts := strings.Split(path, ".")
	return parts[len(parts)-1]
}

// ByteOrder selects endianness when decoding/encoding a UTF-32 byte stream.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func utf32Encoding(order ByteOrder) *utf32.UTF32 {
	endian := utf32.BigEndian
	if order == LittleEndian {
		endian = utf32.LittleEndian
	}
	return utf32.UTF32(endian, utf32.IgnoreBOM)
}

// DecodeUTF32 converts a raw UTF-32 byte stream into a Go (UTF-8) string.
// This is the boundary described by spec §6 ("a UTF-32 string") and §4.1:
// callers that already have a decoded Go string should use it directly and
// never need this function.
func DecodeUTF32(data []byte, order ByteOrder) (string, error) {
	decoded, _, err := transform.Bytes(utf32Encoding(order).NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// EncodeUTF32 converts a Go string back into a raw UTF-32 byte stream, the
// inverse of DecodeUTF32. Primarily useful for tooling and round-trip
// tests that exercise the external UTF-32 interface end to end.
func EncodeUTF32(s string, order ByteOrder) ([]byte, error) {
	encoded, _, err := transform.Bytes(utf32Encoding(order).NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return encoded, nil
}
