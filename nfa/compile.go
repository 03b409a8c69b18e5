package nfa

import "github.com/coregx/corgrep/literal"

// maxGroupDepth bounds nested-group recursion; exceeding it reports
// OutOfMemory rather than overflowing the Go call stack.
const maxGroupDepth = 200

// Compile parses pattern (recursive descent) and emits a bounded Thompson
// NFA. Supported: literals, '.', character classes ([...]/[^...]/ranges),
// escapes (\n \r \t \s, and a generic \x -> literal x), concatenation,
// alternation '|', groups '(...)', quantifiers * + ?.
//
// Anchors '^' and '$' are parsed but compiled to an unconditional epsilon
// transition: this engine never tracks line/input boundaries, so enforcing
// position would require plumbing that through every state transition for
// a case none of the prefilter paths need.
func Compile(pattern string) (*NFA, error) {
	p := &parser{pat: pattern, b: newBuilder()}
	frag, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(pattern) {
		// Only reachable via a stray ')' that parseExpr's caller didn't
		// consume, i.e. an unmatched closing paren at top level.
		return nil, &CompileError{Kind: UnmatchedParen, Pos: p.pos}
	}
	matchID, err := p.b.push(State{kind: kindMatch, out1: InvalidState})
	if err != nil {
		return nil, err
	}
	p.b.patch(frag.out, matchID)

	lit, _ := literal.Extract(pattern)
	return &NFA{states: p.b.states, start: frag.start, match: matchID, literal: lit}, nil
}

type parser struct {
	pat   string
	pos   int
	b     *builder
	depth int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.pat) {
		return 0, false
	}
	return p.pat[p.pos], true
}

func (p *parser) parseExpr() (fragment, error) {
	f, err := p.parseConcat()
	if err != nil {
		return fragment{}, err
	}
	for {
		c, ok := p.peek()
		if !ok || c != '|' {
			break
		}
		p.pos++
		f2, err := p.parseConcat()
		if err != nil {
			return fragment{}, err
		}
		f, err = p.b.alternate(f, f2)
		if err != nil {
			return fragment{}, err
		}
	}
	return f, nil
}

func (p *parser) parseConcat() (fragment, error) {
	var frags []fragment
	for {
		c, ok := p.peek()
		if !ok || c == '|' || c == ')' {
			break
		}
		f, err := p.parseRepeat()
		if err != nil {
			return fragment{}, err
		}
		frags = append(frags, f)
	}
	if len(frags) == 0 {
		return p.b.addEpsilon()
	}
	result := frags[0]
	for _, f := range frags[1:] {
		result = p.b.concat(result, f)
	}
	return result, nil
}

func (p *parser) parseRepeat() (fragment, error) {
	f, err := p.parseAtom()
	if err != nil {
		return fragment{}, err
	}
	c, ok := p.peek()
	if !ok {
		return f, nil
	}
	switch c {
	case '*':
		p.pos++
		return p.b.star(f)
	case '+':
		p.pos++
		return p.b.plus(f)
	case '?':
		p.pos++
		return p.b.quest(f)
	default:
		return f, nil
	}
}

func (p *parser) parseAtom() (fragment, error) {
	c, ok := p.peek()
	if !ok {
		return fragment{}, &CompileError{Kind: UnexpectedEnd, Pos: p.pos}
	}
	switch c {
	case '(':
		p.pos++
		p.depth++
		if p.depth > maxGroupDepth {
			return fragment{}, &CompileError{Kind: OutOfMemory, Pos: p.pos}
		}
		inner, err := p.parseExpr()
		if err != nil {
			return fragment{}, err
		}
		p.depth--
		if c2, ok := p.peek(); !ok || c2 != ')' {
			return fragment{}, &CompileError{Kind: UnmatchedParen, Pos: p.pos}
		}
		p.pos++
		return inner, nil
	case ')':
		return fragment{}, &CompileError{Kind: UnmatchedParen, Pos: p.pos}
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return p.b.addAny()
	case '^', '$':
		p.pos++
		return p.b.addEpsilon()
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return fragment{}, &CompileError{Kind: UnexpectedEnd, Pos: p.pos}
	default:
		p.pos++
		return p.b.addChar(c)
	}
}

func (p *parser) parseEscape() (fragment, error) {
	start := p.pos
	p.pos++ // consume '\'
	c, ok := p.peek()
	if !ok {
		return fragment{}, &CompileError{Kind: TrailingBackslash, Pos: start}
	}
	p.pos++
	switch c {
	case 'n':
		return p.b.addChar('\n')
	case 'r':
		return p.b.addChar('\r')
	case 't':
		return p.b.addChar('\t')
	case 's':
		return p.b.addChar(' ')
	default:
		return p.b.addChar(c)
	}
}

func (p *parser) parseClass() (fragment, error) {
	start := p.pos
	p.pos++ // consume '['
	negated := false
	if c, ok := p.peek(); ok && c == '^' {
		negated = true
		p.pos++
	}
	cls := &CharClass{Negated: negated}
	first := true
	for {
		c, ok := p.peek()
		if !ok {
			return fragment{}, &CompileError{Kind: UnmatchedBracket, Pos: start}
		}
		if c == ']' && !first {
			p.pos++
			break
		}
		first = false
		lo, err := p.readClassByte()
		if err != nil {
			return fragment{}, err
		}
		if c2, ok := p.peek(); ok && c2 == '-' {
			if c3, ok := p.peekAt(p.pos + 1); ok && c3 != ']' {
				p.pos++ // consume '-'
				hi, err := p.readClassByte()
				if err != nil {
					return fragment{}, err
				}
				cls.AddRange(lo, hi)
				continue
			}
		}
		cls.AddRange(lo, lo)
	}
	return p.b.addClass(cls)
}

func (p *parser) peekAt(i int) (byte, bool) {
	if i >= len(p.pat) {
		return 0, false
	}
	return p.pat[i], true
}

func (p *parser) readClassByte() (byte, error) {
	c, ok := p.peek()
	if !ok {
		return 0, &CompileError{Kind: UnmatchedBracket, Pos: p.pos}
	}
	if c == '\\' {
		p.pos++
		c2, ok := p.peek()
		if !ok {
			return 0, &CompileError{Kind: TrailingBackslash, Pos: p.pos}
		}
		p.pos++
		return c2, nil
	}
	p.pos++
	return c, nil
}
