// Package acmatch wraps github.com/coregx/ahocorasick with a
// case-insensitivity strategy tuned to haystack size: for haystacks <= 4096
// bytes, lowercase a heap-allocated copy of the haystack and run the
// automaton over it; for larger
// haystacks, folding the whole buffer up front costs more than it saves,
// so instead run simd.FindSubstringIgnoreCase per alternative and return
// the earliest starting position.
package acmatch

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/corgrep/simd"
)

// smallHaystackLimit is the threshold below which case-folding the whole
// haystack is cheaper than scanning per-alternative.
const smallHaystackLimit = 4096

// Match is a single match's byte-offset range.
type Match struct {
	Start int
	End   int
	Index int // index into the original pattern list; set only on the large-haystack ignore-case path, 0 otherwise
}

// Automaton is a built, read-only multi-pattern literal matcher.
type Automaton struct {
	auto       *ahocorasick.Automaton
	patterns   [][]byte // original-case patterns, for the large-haystack CI path
	ignoreCase bool
}

// Build compiles patterns into an Automaton. If ignoreCase is set, the
// automaton itself is built over lowercased copies of patterns (used on the
// small-haystack path); the originals are retained for the large-haystack
// path.
func Build(patterns [][]byte, ignoreCase bool) (*Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		if ignoreCase {
			builder.AddPattern(toLower(p))
		} else {
			builder.AddPattern(p)
		}
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	stored := make([][]byte, len(patterns))
	copy(stored, patterns)
	return &Automaton{auto: auto, patterns: stored, ignoreCase: ignoreCase}, nil
}

// Find returns the earliest match at or after start, or nil.
func (a *Automaton) Find(haystack []byte, start int) *Match {
	if !a.ignoreCase {
		return a.findDirect(haystack, start)
	}
	if len(haystack) <= smallHaystackLimit {
		return a.findDirect(toLower(haystack), start)
	}
	return a.findLargeIgnoreCase(haystack, start)
}

func (a *Automaton) findDirect(haystack []byte, start int) *Match {
	m := a.auto.Find(haystack, start)
	if m == nil {
		return nil
	}
	return &Match{Start: m.Start, End: m.End}
}

// findLargeIgnoreCase scans each alternative independently via SIMD and
// returns the earliest starting position across all of them.
func (a *Automaton) findLargeIgnoreCase(haystack []byte, start int) *Match {
	best := -1
	bestEnd := 0
	bestIdx := -1
	for i, p := range a.patterns {
		pos := simd.FindSubstringIgnoreCase(haystack[start:], p)
		if pos == -1 {
			continue
		}
		abs := start + pos
		if best == -1 || abs < best {
			best = abs
			bestEnd = abs + len(p)
			bestIdx = i
		}
	}
	if best == -1 {
		return nil
	}
	return &Match{Start: best, End: bestEnd, Index: bestIdx}
}

func toLower(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 0x20
		}
		out[i] = c
	}
	return out
}
