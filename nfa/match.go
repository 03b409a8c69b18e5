package nfa

import (
	"github.com/coregx/corgrep/literal"
	"github.com/coregx/corgrep/simd"
)

// Match is a single match's byte-offset range in haystack coordinates.
type Match struct {
	Start int
	End   int
}

// closure walks epsilon/split transitions, adding every reached state (and
// kindMatch) into set. Uses set itself to avoid revisiting a state.
func (n *NFA) closure(set *stateSet, stack []StateID, id StateID) []StateID {
	stack = append(stack[:0], id)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if set.has(s) {
			continue
		}
		set.add(s)
		st := n.states[s]
		switch st.kind {
		case kindEpsilon:
			stack = append(stack, st.out1)
		case kindSplit:
			stack = append(stack, st.out1, st.out2)
		}
	}
	return stack
}

// MatchAt runs the NFA starting at exactly input[start:] and returns the
// end offset, in input coordinates, of the longest prefix of input[start:]
// accepted by the pattern.
// No allocation: current/next are fixed 256-bit bit sets, and the
// epsilon-closure stack is a fixed array sized for the worst case.
func (n *NFA) MatchAt(input []byte, start int) (int, bool) {
	var cur, next stateSet
	// closure pushes at most 1 + 2*MaxStates entries (each state is added
	// once and pushes at most two successors), so append never outgrows it.
	var stackBuf [2*MaxStates + 1]StateID
	scratch := stackBuf[:0]

	scratch = n.closure(&cur, scratch, n.start)
	bestEnd := -1
	if cur.has(n.match) {
		bestEnd = start
	}

	pos := start
	for pos < len(input) && !cur.isEmpty() {
		next.clear()
		c := input[pos]
		cur.forEach(func(s StateID) {
			st := n.states[s]
			switch st.kind {
			case kindChar:
				if st.b == c {
					scratch = n.closure(&next, scratch, st.out1)
				}
			case kindAny:
				if c != '\n' {
					scratch = n.closure(&next, scratch, st.out1)
				}
			case kindClass:
				if st.class.Matches(c) {
					scratch = n.closure(&next, scratch, st.out1)
				}
			}
		})
		pos++
		cur, next = next, cur
		if cur.has(n.match) {
			bestEnd = pos
		}
	}
	if bestEnd == -1 {
		return 0, false
	}
	return bestEnd, true
}

// SuffixAnchored reports whether this NFA's prefilter literal is a Suffix,
// i.e. a pattern like ".*SUFFIX" where greedy ".*" pins start at 0. The
// matcher façade uses this to pick the correct word-boundary retry rule.
func (n *NFA) SuffixAnchored() bool {
	return n.literal != nil && n.literal.Position == literal.Suffix
}

// Find searches input from the beginning; see FindFrom.
func (n *NFA) Find(input []byte) *Match {
	return n.FindFrom(input, 0)
}

// FindFrom drives the search using whatever LiteralInfo was extracted at
// compile time:
//   - Prefix filter: scan for the prefix literal at increasing positions.
//   - Suffix filter: for each suffix hit at p, try match_at for every
//     start s in 0..=p, accepting only matches whose end >= p+len(suffix).
//   - Inner filter: for each hit at p, try starts in max(0,p-minOffset)..=p,
//     requiring end > p.
//   - No filter: brute force every start.
func (n *NFA) FindFrom(input []byte, from int) *Match {
	if n.literal == nil {
		return n.findBrute(input, from)
	}
	switch n.literal.Position {
	case literal.Prefix:
		return n.findPrefix(input, from)
	case literal.Suffix:
		return n.findSuffix(input, from)
	default:
		return n.findInner(input, from)
	}
}

func (n *NFA) findBrute(input []byte, from int) *Match {
	for start := from; start <= len(input); start++ {
		if end, ok := n.MatchAt(input, start); ok {
			return &Match{Start: start, End: end}
		}
	}
	return nil
}

func (n *NFA) findPrefix(input []byte, from int) *Match {
	pos := from
	for {
		hit := simd.FindSubstringFrom(input, n.literal.Literal, pos)
		if hit == -1 {
			return nil
		}
		if end, ok := n.MatchAt(input, hit); ok {
			return &Match{Start: hit, End: end}
		}
		pos = hit + 1
	}
}

func (n *NFA) findSuffix(input []byte, from int) *Match {
	pos := from
	lit := n.literal.Literal
	for {
		hit := simd.FindSubstringFrom(input, lit, pos)
		if hit == -1 {
			return nil
		}
		suffixEnd := hit + len(lit)
		// Bound the simulation to the candidate window: this is what
		// makes "accept only matches whose end >= p+|suffix|" meaningful
		// rather than always the globally-greedy end. It's also what
		// lets the word-boundary retry (restart search past this hit)
		// walk earlier suffix occurrences one at a time instead of
		// always re-deriving the same rightmost occurrence.
		window := input[:suffixEnd]
		for s := 0; s <= hit; s++ {
			if end, ok := n.MatchAt(window, s); ok && end >= suffixEnd {
				return &Match{Start: s, End: end}
			}
		}
		pos = hit + 1
	}
}

func (n *NFA) findInner(input []byte, from int) *Match {
	pos := from
	lit := n.literal.Literal
	for {
		hit := simd.FindSubstringFrom(input, lit, pos)
		if hit == -1 {
			return nil
		}
		lo := hit - n.literal.MinOffset
		if lo < 0 {
			lo = 0
		}
		for s := lo; s <= hit; s++ {
			if end, ok := n.MatchAt(input, s); ok && end > hit {
				return &Match{Start: s, End: end}
			}
		}
		pos = hit + 1
	}
}
