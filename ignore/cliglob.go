package ignore

import (
	"path"
	"strings"
)

// cliGlob is a single -g/--glob entry: a "!"-prefix (or "\!"-prefix for a
// literal leading "!") negates the pattern, and a trailing "/" restricts
// it to directories.
type cliGlob struct {
	text    string
	negated bool
	dirOnly bool
}

// CLIGlobSet implements the inclusion/exclusion semantics of repeated
// -g/--glob flags, distinct from gitignore's anchor_dir/last-match-wins
// rules.
type CLIGlobSet struct {
	globs            []cliGlob
	hasDirInclusion  bool
	hasFileInclusion bool
}

// NewCLIGlobSet compiles the raw -g flag values. An empty patterns slice
// yields a set that accepts everything.
func NewCLIGlobSet(patterns []string) *CLIGlobSet {
	set := &CLIGlobSet{}
	for _, raw := range patterns {
		s := raw
		g := cliGlob{}
		switch {
		case strings.HasPrefix(s, "\\!"):
			s = s[1:]
		case strings.HasPrefix(s, "!"):
			g.negated = true
			s = s[1:]
		}
		if strings.HasSuffix(s, "/") {
			g.dirOnly = true
			s = s[:len(s)-1]
		}
		g.text = s
		set.globs = append(set.globs, g)
		if !g.negated {
			if g.dirOnly {
				set.hasDirInclusion = true
			} else {
				set.hasFileInclusion = true
			}
		}
	}
	return set
}

// target picks the full relative path or just its basename, the same
// contains-slash rule gitignore patterns use.
func (g cliGlob) target(relPath string) string {
	if strings.Contains(g.text, "/") {
		return relPath
	}
	return path.Base(relPath)
}

func (g cliGlob) matches(relPath string) bool {
	return globMatch(g.text, g.target(relPath))
}

// Allowed reports whether relPath (slash-separated, relative to the
// search root) passes the CLI glob filter:
//   - empty pattern list -> accept everything
//   - any negated match -> always reject
//   - directories are restricted only if a directory-only inclusion
//     exists; file-only inclusions never block descent into a directory
//   - files are restricted only if a file-like inclusion exists
func (set *CLIGlobSet) Allowed(relPath string, isDir bool) bool {
	if set == nil || len(set.globs) == 0 {
		return true
	}

	for _, g := range set.globs {
		if !g.negated {
			continue
		}
		if g.dirOnly && !isDir {
			continue
		}
		if g.matches(relPath) {
			return false
		}
	}

	if isDir {
		if !set.hasDirInclusion {
			return true
		}
		for _, g := range set.globs {
			if g.negated || !g.dirOnly {
				continue
			}
			if g.matches(relPath) {
				return true
			}
		}
		return false
	}

	if !set.hasFileInclusion {
		return true
	}
	for _, g := range set.globs {
		if g.negated || g.dirOnly {
			continue
		}
		if g.matches(relPath) {
			return true
		}
	}
	return false
}
