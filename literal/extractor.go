package literal

import "strings"

const metaChars = ".*+?[](){}|^$\\"

func isMeta(c byte) bool {
	return strings.IndexByte(metaChars, c) >= 0
}

// Extract derives at most one Info, or an Alternation if pattern is a
// top-level pure-literal alternation. Priority of single-literal
// extraction: Prefix -> Suffix -> Inner.
func Extract(pattern string) (*Info, *Alternation) {
	if alt, ok := detectAlternation(pattern); ok {
		return nil, alt
	}
	if lit, ok := extractPrefix(pattern); ok {
		return &Info{Literal: []byte(lit), Position: Prefix}, nil
	}
	if lit, ok := extractSuffix(pattern); ok {
		return &Info{Literal: []byte(lit), Position: Suffix}, nil
	}
	if best, ok := bestInner(pattern); ok {
		return &Info{Literal: []byte(best.lit), Position: Inner, MinOffset: best.minOffset}, nil
	}
	return nil, nil
}

// detectAlternation recognizes pattern == L1|L2|...|Ln at top level: no '('
// encountered, every Li pure literal and non-empty.
func detectAlternation(pattern string) (*Alternation, bool) {
	if strings.IndexByte(pattern, '(') >= 0 {
		return nil, false
	}
	if strings.IndexByte(pattern, '|') < 0 {
		return nil, false
	}
	parts := strings.Split(pattern, "|")
	lits := make([][]byte, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, false
		}
		for i := 0; i < len(part); i++ {
			if isMeta(part[i]) {
				return nil, false
			}
		}
		lits = append(lits, []byte(part))
	}
	return &Alternation{Literals: lits}, true
}

// hasTopLevelAlt reports whether pattern contains a '|' at depth 0 (outside
// character classes and groups), regardless of whether the alternatives are
// pure literals. Top-level alternation disables prefix extraction: a
// prefix literal from one branch would wrongly gate matches on the others.
func hasTopLevelAlt(pattern string) bool {
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == '|' && depth == 0:
			return true
		}
	}
	return false
}

// extractPrefix scans the longest run of non-metacharacter bytes at
// position 0, stopping at a metachar, or one byte short when the next
// metachar is '*' or '?' (making that byte optional).
func extractPrefix(pattern string) (string, bool) {
	if hasTopLevelAlt(pattern) {
		return "", false
	}
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if isMeta(c) {
			break
		}
		if i+1 < len(pattern) && (pattern[i+1] == '*' || pattern[i+1] == '?') {
			break
		}
		i++
	}
	if i >= 2 {
		return pattern[:i], true
	}
	return "", false
}

// extractSuffix is the symmetric scan from the end. Treats \X as a sealed
// escape: encountering an escaped byte while scanning backward stops the
// scan without including either byte of the escape.
func extractSuffix(pattern string) (string, bool) {
	i := len(pattern)
	for i > 0 {
		c := pattern[i-1]
		if isMeta(c) {
			break
		}
		if i-2 >= 0 && pattern[i-2] == '\\' {
			break
		}
		i--
	}
	lit := pattern[i:]
	if len(lit) >= 2 {
		return lit, true
	}
	return "", false
}

type innerCandidate struct {
	lit       string
	minOffset int
}

// bestInner scans the pattern maintaining an open literal run that
// terminates at any metachar, tracking min_chars_before, and returns the
// candidate (length >= 2) with the highest rarity score.
func bestInner(pattern string) (innerCandidate, bool) {
	cands := innerCandidates(pattern)
	if len(cands) == 0 {
		return innerCandidate{}, false
	}
	best := cands[0]
	bestScore := rarity(best.lit)
	for _, c := range cands[1:] {
		if s := rarity(c.lit); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, true
}

func innerCandidates(pattern string) []innerCandidate {
	var cands []innerCandidate
	minBefore := 0
	runStart := -1
	runMinBefore := 0

	// flush closes the open literal run ending at end. A run long enough
	// becomes a candidate, but every run - candidate or not - contributes
	// its full length to minBefore: those bytes are guaranteed to precede
	// whatever comes next, exactly like a required char class or escape.
	flush := func(end int) {
		if runStart >= 0 {
			if end-runStart >= 2 {
				cands = append(cands, innerCandidate{lit: pattern[runStart:end], minOffset: runMinBefore})
			}
			minBefore += end - runStart
		}
		runStart = -1
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case c == '.':
			flush(i)
			if i+1 < len(pattern) && (pattern[i+1] == '*' || pattern[i+1] == '?') {
				i += 2
			} else {
				minBefore++
				i++
			}
		case c == '[':
			flush(i)
			j := i + 1
			if j < len(pattern) && pattern[j] == '^' {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j < len(pattern) {
				j++ // include closing ']'
			}
			if j < len(pattern) && (pattern[j] == '*' || pattern[j] == '?') {
				j++
			} else {
				minBefore++
			}
			i = j
		case c == '\\':
			flush(i)
			step := 2
			if i+1 >= len(pattern) {
				step = 1
			}
			if i+step < len(pattern) && (pattern[i+step] == '*' || pattern[i+step] == '?') {
				step++
			} else {
				minBefore++
			}
			i += step
		case c == '*' || c == '?':
			if runStart >= 0 && i > runStart {
				flush(i - 1)
			} else {
				flush(i)
			}
			i++
		case c == '+':
			flush(i)
			i++
		case c == '(' || c == ')' || c == '{' || c == '}' || c == '^' || c == '$' || c == '|':
			flush(i)
			i++
		default:
			if runStart < 0 {
				runStart = i
				runMinBefore = minBefore
			}
			i++
		}
	}
	flush(len(pattern))
	return cands
}

// rarity scores a candidate literal: 10*len + sum of per-byte bonuses,
// favoring longer and less-common literals as prefilters.
func rarity(lit string) int {
	score := 10 * len(lit)
	for i := 0; i < len(lit); i++ {
		score += byteBonus(lit[i])
	}
	return score
}

func byteBonus(b byte) int {
	switch b {
	case '_', 'Q', 'X', 'Z', 'q', 'x', 'z':
		return 8
	}
	switch {
	case b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return 4
	case b >= 'a' && b <= 'z':
		switch b {
		case 'e', 't', 'a', 'o', 'i', 'n', 's', 'h', 'r':
			return 0
		default:
			return 1
		}
	case b == ' ':
		return 0
	default:
		return 2
	}
}
