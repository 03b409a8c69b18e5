package nfa

import "github.com/coregx/corgrep/literal"

// StateID indexes into NFA.states; states are indexed 0..N with N <= 256.
type StateID int32

// InvalidState marks an unpatched or absent transition.
const InvalidState StateID = -1

// stateKind tags the variant of a State.
type stateKind uint8

const (
	kindAny stateKind = iota
	kindChar
	kindClass
	kindEpsilon
	kindSplit
	kindMatch
)

// State is one NFA node. Each state stores up to two outgoing transitions
// (for split nodes); Any/Char/Class/Epsilon use only out1.
type State struct {
	kind  stateKind
	b     byte       // kindChar
	class *CharClass // kindClass
	out1  StateID
	out2  StateID // kindSplit only
}

// NFA is a compiled, bounded Thompson NFA: N <= MaxStates states, no
// capture groups, anchors are parsed but treated as unconditional epsilon.
type NFA struct {
	states  []State
	start   StateID
	match   StateID
	literal *literal.Info
}

// NumStates returns the number of states in the compiled NFA.
func (n *NFA) NumStates() int { return len(n.states) }

// fragment is a partially built sub-NFA: a start state plus a list of
// dangling "out" patch points still to be wired to whatever comes next.
type fragment struct {
	start StateID
	out   []patch
}

// patch identifies a single dangling transition slot to fill in later.
type patch struct {
	state StateID
	which int // 1 = out1, 2 = out2
}

// builder incrementally constructs NFA states, enforcing the MaxStates cap.
type builder struct {
	states []State
}

func newBuilder() *builder {
	return &builder{states: make([]State, 0, 32)}
}

func (b *builder) push(s State) (StateID, error) {
	if len(b.states) >= MaxStates {
		return InvalidState, &CompileError{Kind: TooManyStates}
	}
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id, nil
}

func (b *builder) addChar(c byte) (fragment, error) {
	id, err := b.push(State{kind: kindChar, b: c, out1: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: id, out: []patch{{id, 1}}}, nil
}

func (b *builder) addAny() (fragment, error) {
	id, err := b.push(State{kind: kindAny, out1: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: id, out: []patch{{id, 1}}}, nil
}

func (b *builder) addClass(cls *CharClass) (fragment, error) {
	id, err := b.push(State{kind: kindClass, class: cls, out1: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: id, out: []patch{{id, 1}}}, nil
}

// addEpsilon adds a single unconditional epsilon transition, used for
// anchors (^, $) which are parsed but not enforced.
func (b *builder) addEpsilon() (fragment, error) {
	id, err := b.push(State{kind: kindEpsilon, out1: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	return fragment{start: id, out: []patch{{id, 1}}}, nil
}

func (b *builder) patch(ps []patch, target StateID) {
	for _, p := range ps {
		if p.which == 1 {
			b.states[p.state].out1 = target
		} else {
			b.states[p.state].out2 = target
		}
	}
}

// concat sequences two fragments: f1 then f2.
func (b *builder) concat(f1, f2 fragment) fragment {
	b.patch(f1.out, f2.start)
	return fragment{start: f1.start, out: f2.out}
}

// alternate builds f1|f2 via a split state.
func (b *builder) alternate(f1, f2 fragment) (fragment, error) {
	id, err := b.push(State{kind: kindSplit, out1: f1.start, out2: f2.start})
	if err != nil {
		return fragment{}, err
	}
	out := make([]patch, 0, len(f1.out)+len(f2.out))
	out = append(out, f1.out...)
	out = append(out, f2.out...)
	return fragment{start: id, out: out}, nil
}

// star builds f* via a split that either enters f (looping back to the
// split) or skips it entirely.
func (b *builder) star(f fragment) (fragment, error) {
	id, err := b.push(State{kind: kindSplit, out1: f.start, out2: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	b.patch(f.out, id)
	return fragment{start: id, out: []patch{{id, 2}}}, nil
}

// plus builds f+ : run f once, then loop via a split.
func (b *builder) plus(f fragment) (fragment, error) {
	id, err := b.push(State{kind: kindSplit, out1: f.start, out2: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	b.patch(f.out, id)
	return fragment{start: f.start, out: []patch{{id, 2}}}, nil
}

// quest builds f? : a split that either enters f or skips it.
func (b *builder) quest(f fragment) (fragment, error) {
	id, err := b.push(State{kind: kindSplit, out1: f.start, out2: InvalidState})
	if err != nil {
		return fragment{}, err
	}
	out := make([]patch, 0, len(f.out)+1)
	out = append(out, f.out...)
	out = append(out, patch{id, 2})
	return fragment{start: id, out: out}, nil
}
