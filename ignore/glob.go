// Package ignore implements gitignore-compatible pattern matching with
// nested/inherited per-directory scoping, plus the separate CLI
// inclusion/exclusion glob filter.
package ignore

import "github.com/bmatcuk/doublestar/v4"

// globMatch matches a gitignore/CLI-glob pattern against target, using
// doublestar as the underlying glob engine (`*`, `**`, `?`, `[...]`).
// gitignore's `[!...]` negated-class syntax is rewritten to doublestar's
// `[^...]` form first, since doublestar follows path.Match conventions.
func globMatch(pattern, target string) bool {
	ok, err := doublestar.Match(negateClasses(pattern), target)
	if err != nil {
		return false
	}
	return ok
}

// negateClasses rewrites "[!...]" character classes (git's negation marker)
// into doublestar's "[^...]" form, leaving escapes and everything outside
// classes untouched.
func negateClasses(pattern string) string {
	hasNegatedClass := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '\\' {
			i++
			continue
		}
		if pattern[i] == '[' && i+1 < len(pattern) && pattern[i+1] == '!' {
			hasNegatedClass = true
			break
		}
	}
	if !hasNegatedClass {
		return pattern
	}

	out := make([]byte, 0, len(pattern))
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			out = append(out, c, pattern[i+1])
			i++
			continue
		}
		if !inClass && c == '[' {
			inClass = true
			out = append(out, c)
			if i+1 < len(pattern) && pattern[i+1] == '!' {
				out = append(out, '^')
				i++
			}
			continue
		}
		if inClass && c == ']' {
			inClass = false
		}
		out = append(out, c)
	}
	return string(out)
}
