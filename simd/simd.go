// Package simd provides vectorized-style byte and substring scanning
// primitives used by the matcher and streaming reader.
//
// All scanners are pure functions: they never allocate and return either
// a valid in-range offset or a "not found" sentinel (-1), the standard
// memchr-family convention.
//
// True SIMD intrinsics require platform assembly that was not available to
// adapt (see DESIGN.md). Instead the byte scan behind FindByte, FindNewline
// and the case-sensitive substring search uses word-at-a-time (SWAR)
// techniques, processing a double-wide "lane" (two uint64 words per step)
// when the CPU advertises AVX2, and a single word otherwise. CountNewlines
// always processes one word per step, and the case-insensitive substring
// search compares byte by byte.
package simd

import "golang.org/x/sys/cpu"

// wideLane reports whether the double-word SWAR lane should be used.
// On AVX2-capable CPUs there is more register/cache bandwidth to spend on
// processing two words per iteration before falling back to the scalar tail.
var wideLane = cpu.X86.HasAVX2

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// laneWidth reports the stride, in bytes, of findByteFrom's SWAR loop.
func laneWidth() int {
	if wideLane {
		return 16
	}
	return 8
}
