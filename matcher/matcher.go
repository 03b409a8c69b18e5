// Package matcher is the search façade: it selects one of three engines
// (Aho-Corasick, literal, NFA) from a pattern, and enforces word-boundary
// matching on top of whichever engine is active.
package matcher

import (
	"sync/atomic"

	"github.com/coregx/corgrep/acmatch"
	"github.com/coregx/corgrep/literal"
	"github.com/coregx/corgrep/nfa"
	"github.com/coregx/corgrep/simd"
)

// engineKind identifies which of the three active engines a Matcher uses.
type engineKind int

const (
	engineLiteral engineKind = iota
	engineAhoCorasick
	engineNFA
)

// Match is a single match's byte-offset range in haystack coordinates.
type Match struct {
	Start int
	End   int
}

// Stats are read-only atomic dispatch counters, useful for tests and
// introspection into which engine a pattern actually dispatched to.
type Stats struct {
	LiteralSearches     uint64
	AhoCorasickSearches uint64
	NFASearches         uint64
}

// Matcher owns pattern, flags, and exactly one active engine, built once
// and shared read-only across worker goroutines.
type Matcher struct {
	pattern       string
	ignoreCase    bool
	wordBoundary  bool
	kind          engineKind
	literalBytes  []byte // literal mode: possibly lowercased pattern
	ac            *acmatch.Automaton
	re            *nfa.NFA
	maxPatternLen int

	literalSearches     uint64
	ahoCorasickSearches uint64
	nfaSearches         uint64
}

// New builds a Matcher, selecting the engine by pattern shape:
//  1. pure-literal alternation -> Aho-Corasick
//  2. no metacharacters -> literal (SIMD find_substring)
//  3. otherwise -> compiled NFA regex
func New(pattern string, ignoreCase, wordBoundary bool) (*Matcher, error) {
	if pattern == "" {
		return nil, &CompileError{Kind: EmptyPattern}
	}
	m := &Matcher{pattern: pattern, ignoreCase: ignoreCase, wordBoundary: wordBoundary}

	info, alt := literal.Extract(pattern)
	if alt != nil {
		ac, err := acmatch.Build(alt.Literals, ignoreCase)
		if err != nil {
			return nil, err
		}
		m.kind = engineAhoCorasick
		m.ac = ac
		for _, l := range alt.Literals {
			if len(l) > m.maxPatternLen {
				m.maxPatternLen = len(l)
			}
		}
		return m, nil
	}

	if isPureLiteral(pattern) {
		m.kind = engineLiteral
		if ignoreCase {
			m.literalBytes = toLower([]byte(pattern))
		} else {
			m.literalBytes = []byte(pattern)
		}
		m.maxPatternLen = len(m.literalBytes)
		return m, nil
	}

	re, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	m.kind = engineNFA
	m.re = re
	if info != nil {
		m.maxPatternLen = len(info.Literal)
	}
	return m, nil
}

// MaxPatternLen returns the length of the longest literal this matcher can
// use as a filter (0 if none).
func (m *Matcher) MaxPatternLen() int { return m.maxPatternLen }

// FastLiteral reports whether this matcher is a plain literal search with no
// word-boundary enforcement, returning the (possibly lowercased) needle to
// use. Readers use this to route through the whole-buffer SIMD search
// instead of per-line matching.
func (m *Matcher) FastLiteral() (needle []byte, ignoreCase bool, ok bool) {
	if m.kind != engineLiteral || m.wordBoundary {
		return nil, false, false
	}
	return m.literalBytes, m.ignoreCase, true
}

// Stats returns a snapshot of the engine dispatch counters.
func (m *Matcher) Stats() Stats {
	return Stats{
		LiteralSearches:     atomic.LoadUint64(&m.literalSearches),
		AhoCorasickSearches: atomic.LoadUint64(&m.ahoCorasickSearches),
		NFASearches:         atomic.LoadUint64(&m.nfaSearches),
	}
}

// FindFirst returns the first match in haystack, honoring word-boundary
// enforcement if configured.
func (m *Matcher) FindFirst(haystack []byte) *Match {
	return m.FindFirstFrom(haystack, 0)
}

// FindFirstFrom dispatches to the active engine and returns {start,end} in
// haystack coordinates, retrying on word-boundary failure.
func (m *Matcher) FindFirstFrom(haystack []byte, offset int) *Match {
	pos := offset
	for {
		raw := m.rawFindFrom(haystack, pos)
		if raw == nil {
			return nil
		}
		if !m.wordBoundary || isWordBoundaryMatch(haystack, raw.Start, raw.End) {
			return raw
		}
		if m.kind == engineNFA && m.re.SuffixAnchored() {
			// Suffix-anchored retry: advance by end, not start+1. Greedy
			// ".*" pins the match start at 0, so a start+1 retry would hit
			// the same suffix occurrence again and never make progress;
			// restarting at end moves the suffix search past the
			// occurrence just rejected, and each later occurrence is still
			// tried with every start from 0.
			pos = raw.End
		} else {
			pos = raw.Start + 1
		}
		if pos > len(haystack) {
			return nil
		}
	}
}

func (m *Matcher) rawFindFrom(haystack []byte, pos int) *Match {
	switch m.kind {
	case engineAhoCorasick:
		atomic.AddUint64(&m.ahoCorasickSearches, 1)
		r := m.ac.Find(haystack, pos)
		if r == nil {
			return nil
		}
		return &Match{Start: r.Start, End: r.End}
	case engineLiteral:
		atomic.AddUint64(&m.literalSearches, 1)
		var hit int
		if m.ignoreCase {
			if pos > len(haystack) {
				return nil
			}
			rel := simd.FindSubstringIgnoreCase(haystack[pos:], m.literalBytes)
			if rel == -1 {
				return nil
			}
			hit = pos + rel
		} else {
			hit = simd.FindSubstringFrom(haystack, m.literalBytes, pos)
			if hit == -1 {
				return nil
			}
		}
		return &Match{Start: hit, End: hit + len(m.literalBytes)}
	default:
		atomic.AddUint64(&m.nfaSearches, 1)
		r := m.re.FindFrom(haystack, pos)
		if r == nil {
			return nil
		}
		return &Match{Start: r.Start, End: r.End}
	}
}

func isPureLiteral(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if isMetaChar(pattern[i]) {
			return false
		}
	}
	return true
}

func isMetaChar(c byte) bool {
	switch c {
	case '.', '*', '+', '?', '[', ']', '(', ')', '{', '}', '|', '^', '$', '\\':
		return true
	default:
		return false
	}
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

// isWord reports whether b is a word character: ASCII alphanumeric, '_', or
// has its high bit set (treated as word so UTF-8 continuation bytes don't
// trip a boundary mid-codepoint).
func isWord(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	default:
		return b >= 0x80
	}
}

func isWordBoundaryMatch(haystack []byte, start, end int) bool {
	before := start == 0 || !isWord(haystack[start-1])
	after := end == len(haystack) || !isWord(haystack[end])
	return before && after
}
