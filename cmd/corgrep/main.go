// Command corgrep is the CLI entry point: flag parsing via kong, wired
// straight into search.Run.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/coregx/corgrep/output"
	"github.com/coregx/corgrep/search"
)

// cli is corgrep's flag table. There are no subcommands: corgrep's
// surface is `PROG [OPTIONS] PATTERN [PATH ...]`.
var cli struct {
	IgnoreCase       bool     `short:"i" name:"ignore-case" help:"ASCII case-insensitive match."`
	LineNumber       bool     `short:"n" name:"line-number" default:"true" help:"Prefix output lines with line number."`
	Count            bool     `short:"c" name:"count" help:"Per-file match count only."`
	FilesWithMatches bool     `short:"l" name:"files-with-matches" help:"Print file paths with at least one match; stop at first match."`
	WordRegexp       bool     `short:"w" name:"word-regexp" help:"Enforce word boundaries around matches."`
	Glob             []string `short:"g" name:"glob" help:"Include/exclude glob, repeatable; !-prefix (or \\!-prefix) negates."`
	NoIgnore         bool     `name:"no-ignore" help:"Disable .gitignore processing."`
	Hidden           bool     `name:"hidden" help:"Include dot-prefixed entries."`
	Threads          int      `short:"j" name:"threads" help:"Override worker count (default: number of CPUs)."`
	MaxDepth         int      `short:"d" name:"max-depth" help:"Cap recursion depth (root is depth 0; default: unlimited)."`
	Color            string   `name:"color" enum:"auto,always,never" default:"auto" help:"Color policy."`
	Heading          bool     `name:"heading" help:"Force file-header grouping."`
	NoHeading        bool     `name:"no-heading" help:"Force flat path:line:content output."`

	Pattern string   `arg:"" help:"Pattern to search for."`
	Paths   []string `arg:"" optional:"" help:"Paths to search ('-' for stdin). Defaults to the current directory."`
}

func colorPolicy(s string) output.ColorPolicy {
	switch s {
	case "always":
		return output.ColorAlways
	case "never":
		return output.ColorNever
	default:
		return output.ColorAuto
	}
}

func headingOverride() *bool {
	switch {
	case cli.Heading:
		yes := true
		return &yes
	case cli.NoHeading:
		no := false
		return &no
	default:
		return nil
	}
}

func main() {
	_ = kong.Parse(&cli,
		kong.Name("corgrep"),
		kong.Description("A parallel, SIMD-accelerated grep."),
		kong.Writers(os.Stderr, os.Stderr),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			if code != 0 {
				os.Exit(search.ExitUsage)
			}
			os.Exit(search.ExitSuccess)
		}),
	)

	cfg := search.Config{
		Pattern:          cli.Pattern,
		Paths:            cli.Paths,
		IgnoreCase:       cli.IgnoreCase,
		LineNumber:       cli.LineNumber,
		Count:            cli.Count,
		FilesWithMatches: cli.FilesWithMatches,
		WordRegexp:       cli.WordRegexp,
		Globs:            cli.Glob,
		NoIgnore:         cli.NoIgnore,
		Hidden:           cli.Hidden,
		Threads:          cli.Threads,
		MaxDepth:         cli.MaxDepth,
		Color:            colorPolicy(cli.Color),
		Heading:          headingOverride(),
	}

	code := search.Run(cfg, os.Stdout, os.Stderr)
	if code != search.ExitSuccess {
		fmt.Fprintln(os.Stderr, "corgrep: search failed")
	}
	os.Exit(code)
}
