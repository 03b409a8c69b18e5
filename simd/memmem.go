package simd

// FindSubstring returns the index of the first occurrence of needle in
// haystack, or -1. For len(needle) == 1 this delegates to FindByte.
//
// The search uses a "packed-pair" two-byte fingerprint: the first and
// last byte of needle act as a cheap positional filter, and only candidate
// positions where both match are verified byte-by-byte.
func FindSubstring(haystack, needle []byte) int {
	return FindSubstringFrom(haystack, needle, 0)
}

// FindSubstringFrom behaves like FindSubstring over haystack[start:], with
// the returned offset (if any) measured from the start of haystack.
func FindSubstringFrom(haystack, needle []byte, start int) int {
	if len(needle) == 0 {
		if start > len(haystack) {
			return -1
		}
		return start
	}
	if len(needle) == 1 {
		return findByteFrom(haystack, needle[0], start)
	}
	if start < 0 {
		start = 0
	}
	n, m := len(haystack), len(needle)
	if m > n-start {
		return -1
	}
	first, last := needle[0], needle[m-1]
	off := m - 1

	p := start
	for {
		// Candidate filter: first byte of needle at p.
		rel := findByteFrom(haystack, first, p)
		if rel == -1 || rel+off >= n {
			return -1
		}
		p = rel
		if haystack[p+off] == last && verifyMiddle(haystack[p:p+m], needle) {
			return p
		}
		p++
	}
}

// FindSubstringIgnoreCase behaves like FindSubstring but matches ASCII
// case-insensitively: the first/last byte filter accepts either case, and
// the middle-byte verification folds case via bit 5 (restricted to A-Z/a-z).
func FindSubstringIgnoreCase(haystack, needle []byte) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) == 1 {
		return findByteCI(haystack, needle[0], 0)
	}
	n, m := len(haystack), len(needle)
	if m > n {
		return -1
	}
	first, last := needle[0], needle[m-1]
	off := m - 1

	p := 0
	for {
		rel := findByteCI(haystack, first, p)
		if rel == -1 || rel+off >= n {
			return -1
		}
		p = rel
		if eqFoldByte(haystack[p+off], last) && verifyMiddleFold(haystack[p:p+m], needle) {
			return p
		}
		p++
	}
}

func findByteCI(haystack []byte, b byte, start int) int {
	lo, up := foldPair(b)
	for i := start; i < len(haystack); i++ {
		if haystack[i] == lo || haystack[i] == up {
			return i
		}
	}
	return -1
}

// foldPair returns the lower- and upper-case forms of an ASCII letter byte;
// for non-letters both returned values equal b.
func foldPair(b byte) (byte, byte) {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20, b
	}
	if b >= 'a' && b <= 'z' {
		return b, b - 0x20
	}
	return b, b
}

func eqFoldByte(a, b byte) bool {
	if a == b {
		return true
	}
	if a >= 'A' && a <= 'Z' {
		a += 0x20
	}
	if b >= 'A' && b <= 'Z' {
		b += 0x20
	}
	return a == b
}

func verifyMiddle(window, needle []byte) bool {
	for i := 1; i < len(needle)-1; i++ {
		if window[i] != needle[i] {
			return false
		}
	}
	return true
}

func verifyMiddleFold(window, needle []byte) bool {
	for i := 0; i < len(needle); i++ {
		if !eqFoldByte(window[i], needle[i]) {
			return false
		}
	}
	return true
}
