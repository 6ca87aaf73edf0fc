package strutil

import "testing"

func TestSplitDropsEmptyFields(t *testing.T) {
	got := Split("invokestatic  Main   entry", " ")
	want := []string{"invokestatic", "Main", "entry"}
	if len(got) != len(want) {
		t.Fatalf("Split() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Split()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestJoinRoundTrip(t *testing.T) {
	parts := []string{"a", "b", "c"}
	if got := Join(parts, " "); got != "a b c" {
		t.Errorf("Join() = %q", got)
	}
}

func TestSubList(t *testing.T) {
	parts := []string{"invokestatic", "Main", "entry", "I"}
	got := SubList(parts, 1)
	want := []string{"Main", "entry", "I"}
	if len(got) != len(want) {
		t.Fatalf("SubList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SubList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := SubList(parts, 10); got != nil {
		t.Errorf("SubList() out of range = %v, want nil", got)
	}
}

func TestLastPathComponent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a/b.C", "C"},
		{"C", "C"},
		{"std/collections/List", "List"},
		{"pkg.sub.Type", "Type"},
	}
	for _, tt := range tests {
		if got := LastPathComponent(tt.in); got != tt.want {
			t.Errorf("LastPathComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUTF32RoundTrip(t *testing.T) {
	samples := []string{
		"",
		"package \"main\";",
		"let x = 1 + 2 * 3 - 4",
		"UTF-32 safe: éèê 中文",
	}
	for _, order := range []ByteOrder{BigEndian, LittleEndian} {
		for _, s := range samples {
			encoded, err := EncodeUTF32(s, order)
			if err != nil {
				t.Fatalf("EncodeUTF32(%q) error: %v", s, err)
			}
			decoded, err := DecodeUTF32(encoded, order)
			if err != nil {
				t.Fatalf("DecodeUTF32 error: %v", err)
			}
			if decoded != s {
				t.Errorf("round trip mismatch: got %q, want %q", decoded, s)
			}
		}
	}
}
