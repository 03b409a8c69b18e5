// Package search wires the matcher, ignore engine, walker, and output
// packages behind a single entry point, consumed by cmd/corgrep.
package search

import (
	"fmt"
	"io"
	"runtime"

	"github.com/coregx/corgrep/ignore"
	"github.com/coregx/corgrep/matcher"
	"github.com/coregx/corgrep/output"
	"github.com/coregx/corgrep/walker"
)

// Config is the fully user-facing configuration, mapping directly to the
// CLI's flag table. Normalize fills in its defaults before Run constructs
// the matcher/walker/output triple.
type Config struct {
	Pattern string
	Paths   []string

	IgnoreCase     bool
	LineNumber     bool
	Count          bool
	FilesWithMatches bool
	WordRegexp     bool
	Globs          []string
	NoIgnore       bool
	Hidden         bool
	Threads        int
	MaxDepth       int // 0 means unset/unlimited, per CLI convention
	Color          output.ColorPolicy
	Heading        *bool
}

// Normalize resolves the worker-count default: Threads <= 0 becomes
// runtime.NumCPU(). An unset max-depth is mapped to unlimited separately,
// by maxDepthOrUnlimited.
func (c *Config) Normalize() {
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
}

// maxDepthOrUnlimited maps the CLI's "0 means unset" convention onto the
// walker's "negative means unlimited" convention.
func (c *Config) maxDepthOrUnlimited() int {
	if c.MaxDepth <= 0 {
		return -1
	}
	return c.MaxDepth
}

// Exit codes mirror grep's convention: 0 whether or not anything matched,
// 2 only for a usage/pattern error.
const (
	ExitSuccess = 0
	ExitUsage   = 2
)

// Run builds the matcher, ignore configuration, output, and walker from
// cfg and executes one search, writing results to w. It returns the
// process exit code: 0 on any completed run (matches or not), 2 if the
// pattern fails to compile.
func Run(cfg Config, w io.Writer, stderr io.Writer) int {
	cfg.Normalize()

	m, err := matcher.New(cfg.Pattern, cfg.IgnoreCase, cfg.WordRegexp)
	if err != nil {
		fmt.Fprintf(stderr, "corgrep: %v\n", err)
		return ExitUsage
	}

	mode := output.ModeLines
	switch {
	case cfg.Count:
		mode = output.ModeCount
	case cfg.FilesWithMatches:
		mode = output.ModeFilesWithMatches
	}

	out := output.New(w, output.Config{
		Mode:       mode,
		LineNumber: cfg.LineNumber,
		Color:      cfg.Color,
		Heading:    cfg.Heading,
	})

	var globalIgnore *ignore.GlobalIgnore
	if !cfg.NoIgnore {
		globalIgnore = ignore.NewGlobalIgnore(nil)
	}

	paths := cfg.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	soloStdin := len(paths) == 1 && paths[0] == "-"

	wk := walker.New(walker.Config{
		NumWorkers:   cfg.Threads,
		Hidden:       cfg.Hidden,
		MaxDepth:     cfg.maxDepthOrUnlimited(),
		CLIGlobs:     ignore.NewCLIGlobSet(cfg.Globs),
		GlobalIgnore: globalIgnore,
		SoloStdin:    soloStdin,
	}, m, out)

	_ = wk.Run(paths)
	_ = out.Flush()

	return ExitSuccess
}
