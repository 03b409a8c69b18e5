package simd

import "testing"

func TestFindByte(t *testing.T) {
	tests := []struct {
		haystack string
		b        byte
		want     int
	}{
		{"", 'a', -1},
		{"hello", 'h', 0},
		{"hello", 'o', 4},
		{"hello", 'z', -1},
		{"aaaaaaaaaaaaaaaaaaaaaaab", 'b', 23},
	}
	for _, tt := range tests {
		if got := FindByte([]byte(tt.haystack), tt.b); got != tt.want {
			t.Errorf("FindByte(%q, %q) = %d, want %d", tt.haystack, tt.b, got, tt.want)
		}
	}
}

func TestCountNewlines(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"no newline", 0},
		{"a\nb\nc\n", 3},
		{"\n\n\n\n\n\n\n\n\n\n", 10},
	}
	for _, tt := range tests {
		if got := CountNewlines([]byte(tt.s)); got != tt.want {
			t.Errorf("CountNewlines(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestFindSubstringBoundary(t *testing.T) {
	// Pattern spanning SWAR word boundaries (positions 14-17, 31 for width
	// 16) where a needle straddling two machine words must still be found.
	for _, pos := range []int{0, 7, 8, 14, 15, 16, 17, 31, 32} {
		haystack := make([]byte, pos+len("needle")+20)
		for i := range haystack {
			haystack[i] = 'x'
		}
		copy(haystack[pos:], "needle")
		got := FindSubstring(haystack, []byte("needle"))
		if got != pos {
			t.Errorf("FindSubstring at pos %d = %d, want %d", pos, got, pos)
		}
	}
}

func TestFindSubstringSoundness(t *testing.T) {
	// Literal scan soundness: found index must match exactly and be leftmost.
	haystack := []byte("abcabcabdabc")
	got := FindSubstring(haystack, []byte("abc"))
	if got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	got = FindSubstringFrom(haystack, []byte("abc"), 1)
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if FindSubstring(haystack, []byte("xyz")) != -1 {
		t.Fatal("expected no match")
	}
}

func TestFindSubstringSingleByteNeedle(t *testing.T) {
	if got := FindSubstring([]byte("hello"), []byte("l")); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestFindSubstringIgnoreCase(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             int
	}{
		{"Hello World", "WORLD", 6},
		{"Hello World", "hello", 0},
		{"HELLO AGAIN", "hello", 0},
		{"nope", "zzz", -1},
	}
	for _, tt := range tests {
		if got := FindSubstringIgnoreCase([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
			t.Errorf("FindSubstringIgnoreCase(%q,%q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

// FindSubstringIgnoreCase(h, n) == FindSubstring(lower(h), lower(n)) for ASCII.
func TestIgnoreCaseSymmetry(t *testing.T) {
	h := []byte("xXaBcDeXyZ")
	n := []byte("AbCdE")
	got := FindSubstringIgnoreCase(h, n)
	lowerH := toLowerASCII(h)
	lowerN := toLowerASCII(n)
	want := FindSubstring(lowerH, lowerN)
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func toLowerASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 0x20
		}
		out[i] = c
	}
	return out
}
