package nfa

import "fmt"

// CompileErrorKind enumerates the ways a pattern can fail to compile.
type CompileErrorKind int

const (
	// UnmatchedParen is returned for a '(' with no matching ')', or vice
	// versa.
	UnmatchedParen CompileErrorKind = iota
	// UnmatchedBracket is returned for a '[' with no matching ']'.
	UnmatchedBracket
	// TrailingBackslash is returned when a pattern ends with an
	// unterminated escape.
	TrailingBackslash
	// UnexpectedEnd is returned for a quantifier with no preceding atom,
	// or other structurally incomplete constructs.
	UnexpectedEnd
	// OutOfMemory is returned when the compiler's recursion/nesting
	// budget is exceeded.
	OutOfMemory
	// TooManyStates is returned when compiling the pattern would exceed
	// the fixed 256-state limit.
	TooManyStates
)

func (k CompileErrorKind) String() string {
	switch k {
	case UnmatchedParen:
		return "unmatched parenthesis"
	case UnmatchedBracket:
		return "unmatched bracket"
	case TrailingBackslash:
		return "trailing backslash"
	case UnexpectedEnd:
		return "unexpected end of pattern"
	case OutOfMemory:
		return "pattern nesting exceeds compiler budget"
	case TooManyStates:
		return "pattern compiles to more than 256 NFA states"
	default:
		return "unknown compile error"
	}
}

// CompileError is returned by Compile when a pattern cannot be compiled.
type CompileError struct {
	Kind CompileErrorKind
	Pos  int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("regex compile error at byte %d: %s", e.Pos, e.Kind)
}

// Is supports errors.Is comparisons against a CompileErrorKind-only
// sentinel (ignores Pos).
func (e *CompileError) Is(target error) bool {
	other, ok := target.(*CompileError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
