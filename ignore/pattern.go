package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Pattern is a single compiled gitignore-style rule. AnchorDir is the
// directory containing the .gitignore that produced it; patterns match
// paths relative to that directory.
type Pattern struct {
	text          string
	AnchorDir     string
	Negated       bool
	DirectoryOnly bool
	Anchored      bool
	ContainsSlash bool
}

// ParseLine compiles a single gitignore-style line anchored at anchorDir.
// Returns nil for blank lines and comments, matching git's own rules for
// what counts as an inert line.
func ParseLine(line, anchorDir string) *Pattern {
	if line == "" {
		return nil
	}

	s := line
	p := &Pattern{AnchorDir: anchorDir}

	switch {
	case strings.HasPrefix(s, "\\#"), strings.HasPrefix(s, "\\!"):
		s = s[1:]
	case strings.HasPrefix(s, "#"):
		return nil
	case strings.HasPrefix(s, "!"):
		p.Negated = true
		s = s[1:]
	}

	s = trimTrailingSpaces(s)
	if s == "" {
		return nil
	}

	if strings.HasSuffix(s, "/") {
		p.DirectoryOnly = true
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "/") {
		p.Anchored = true
		s = s[1:]
	}
	if strings.Contains(s, "/") {
		p.ContainsSlash = true
	}

	p.text = s
	return p
}

// trimTrailingSpaces removes unescaped trailing space characters, matching
// git's rule that a trailing space preceded by an odd number of backslashes
// is literal, not trimmable.
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		backslashes := 0
		for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

// Match applies gitignore pattern semantics:
//  1. rel = relative_to(p, AnchorDir); no match if p is not under AnchorDir.
//  2. directory_only patterns never match non-directories.
//  3. anchored or contains_slash patterns glob-match the full rel path.
//  4. otherwise glob-match only the basename of rel.
func (p *Pattern) Match(candidate string, isDir bool) bool {
	rel, err := filepath.Rel(p.AnchorDir, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	if p.DirectoryOnly && !isDir {
		return false
	}

	rel = filepath.ToSlash(rel)
	target := rel
	if !p.Anchored && !p.ContainsSlash {
		target = path.Base(rel)
	}
	return globMatch(p.text, target)
}

// LoadGitignoreFile reads and compiles a .gitignore-style file, anchoring
// every pattern at anchorDir. A missing file yields (nil, nil): most
// directories don't have one, and that's not an error.
func LoadGitignoreFile(path, anchorDir string) ([]*Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []*Pattern
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for scanner.Scan() {
		if p := ParseLine(scanner.Text(), anchorDir); p != nil {
			out = append(out, p)
		}
	}
	return out, scanner.Err()
}
