package ignore

// GlobalIgnore is the process-wide, read-only ignore seed shared by every
// worker. Built once from configuration before the walk starts.
type GlobalIgnore struct {
	patterns []*Pattern
}

// NewGlobalIgnore wraps a fixed pattern set as the shared base. A nil or
// empty GlobalIgnore is valid and contributes no matches.
func NewGlobalIgnore(patterns []*Pattern) *GlobalIgnore {
	return &GlobalIgnore{patterns: patterns}
}

// State is a per-worker, per-directory accumulation of ignore patterns.
// Local patterns grow as the walker descends from the search root; State
// is immutable, so Extend returns a new value and siblings can share the
// parent's chain.
type State struct {
	base  *GlobalIgnore
	local []*Pattern
}

// NewState starts a fresh per-directory state rooted at base.
func NewState(base *GlobalIgnore) *State {
	return &State{base: base}
}

// Extend returns a new State with patterns appended after the existing
// local chain. Appending (rather than prepending) preserves root-first
// ordering, so that patterns loaded from directories nearer the matched
// path are evaluated later and win.
func (s *State) Extend(patterns []*Pattern) *State {
	if len(patterns) == 0 {
		return s
	}
	next := make([]*Pattern, len(s.local), len(s.local)+len(patterns))
	copy(next, s.local)
	next = append(next, patterns...)
	return &State{base: s.base, local: next}
}

// Ignored evaluates every base then local pattern in order against path;
// the last pattern to match decides, and a matching negated pattern
// un-ignores.
func (s *State) Ignored(path string, isDir bool) bool {
	ignored := false
	if s.base != nil {
		for _, p := range s.base.patterns {
			if p.Match(path, isDir) {
				ignored = !p.Negated
			}
		}
	}
	for _, p := range s.local {
		if p.Match(path, isDir) {
			ignored = !p.Negated
		}
	}
	return ignored
}

// alwaysIgnoredDirs are VCS directory names skipped unconditionally,
// independent of any ignore configuration.
var alwaysIgnoredDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// IsAlwaysIgnoredDir reports whether name is an unconditionally-skipped
// VCS directory name.
func IsAlwaysIgnoredDir(name string) bool {
	return alwaysIgnoredDirs[name]
}
