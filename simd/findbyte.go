package simd

import (
	"encoding/binary"
	"math/bits"
)

// FindByte returns the index of the first occurrence of b in haystack, or
// -1 if b does not occur.
func FindByte(haystack []byte, b byte) int {
	return findByteFrom(haystack, b, 0)
}

func findByteFrom(haystack []byte, b byte, start int) int {
	n := len(haystack)
	if start >= n {
		return -1
	}
	i := start
	mask := uint64(b) * lo8

	if wideLane {
		for i+16 <= n {
			w0 := binary.LittleEndian.Uint64(haystack[i:])
			w1 := binary.LittleEndian.Uint64(haystack[i+8:])
			if hz := zeroBytes(w0 ^ mask); hz != 0 {
				return i + bits.TrailingZeros64(hz)/8
			}
			if hz := zeroBytes(w1 ^ mask); hz != 0 {
				return i + 8 + bits.TrailingZeros64(hz)/8
			}
			i += 16
		}
	}
	for i+8 <= n {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if hz := zeroBytes(w ^ mask); hz != 0 {
			return i + bits.TrailingZeros64(hz)/8
		}
		i += 8
	}
	for ; i < n; i++ {
		if haystack[i] == b {
			return i
		}
	}
	return -1
}

// FindNewline returns the index of the first '\n' in haystack, or -1.
func FindNewline(haystack []byte) int {
	return FindByte(haystack, '\n')
}

// CountNewlines returns the number of '\n' bytes in haystack.
func CountNewlines(haystack []byte) int {
	n := len(haystack)
	i, count := 0, 0
	mask := uint64('\n') * lo8
	const lo7 = 0x7F7F7F7F7F7F7F7F
	for i+8 <= n {
		x := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		// Exact per-byte zero test: unlike zeroBytes, a borrow out of a
		// zero byte cannot flag its neighbour, so each set bit is one '\n'.
		count += bits.OnesCount64(^(((x & lo7) + lo7) | x | lo7))
		i += 8
	}
	for ; i < n; i++ {
		if haystack[i] == '\n' {
			count++
		}
	}
	return count
}

// zeroBytes returns a mask with the high bit of every zero byte in v set.
// Classic Hacker's Delight zero-byte detection, the core of the SWAR
// memchr fallback.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) &^ v & hi8
}
