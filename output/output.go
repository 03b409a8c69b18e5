// Package output implements per-file buffered emission plus a
// single-mutex flush, keeping worker goroutines off the shared writer
// except for the brief critical section at flush time.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Mode selects what search_file emits per match (the -c/-l flags).
type Mode int

const (
	// ModeLines prints matching lines (the default).
	ModeLines Mode = iota
	// ModeCount prints only a per-file match count.
	ModeCount
	// ModeFilesWithMatches prints only file paths with >=1 match.
	ModeFilesWithMatches
)

// ColorPolicy mirrors the --color flag's three settings.
type ColorPolicy int

const (
	ColorAuto ColorPolicy = iota
	ColorAlways
	ColorNever
)

// Config is the user-facing formatting configuration, resolved once at
// startup into an Output's immutable fields.
type Config struct {
	Mode       Mode
	LineNumber bool
	Color      ColorPolicy
	// Heading is nil for "auto" (follow the same isTTY(stdout) decision as
	// ColorAuto); otherwise explicit.
	Heading *bool
}

// Output is the single process-wide writer: one mutex-guarded writer, an
// atomic running total, and the color/heading decisions made once at
// construction.
type Output struct {
	w              *bufio.Writer
	mode           Mode
	lineNumber     bool
	colorEnabled   bool
	headingEnabled bool

	mu             sync.Mutex
	needsSeparator bool
	total          atomic.Int64
}

// New resolves color/heading policy against w (auto-detecting via isatty
// when w is an *os.File) and returns a ready Output.
func New(w io.Writer, cfg Config) *Output {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	colorEnabled := false
	switch cfg.Color {
	case ColorAlways:
		colorEnabled = true
	case ColorNever:
		colorEnabled = false
	default:
		colorEnabled = isTTY
	}

	heading := isTTY
	if cfg.Heading != nil {
		heading = *cfg.Heading
	}

	return &Output{
		w:              bufio.NewWriter(w),
		mode:           cfg.Mode,
		lineNumber:     cfg.LineNumber,
		colorEnabled:   colorEnabled,
		headingEnabled: heading,
	}
}

// TotalMatches returns the running total across every flushed file.
func (o *Output) TotalMatches() int64 { return o.total.Load() }

// Mode returns the resolved output mode, used by callers deciding whether to
// stop at the first match (ModeFilesWithMatches) or compute line text.
func (o *Output) Mode() Mode { return o.mode }

// Flush flushes the underlying buffered writer; call once at the end of
// the run.
func (o *Output) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Flush()
}

var (
	pathColor  = color.New(color.FgMagenta, color.Bold)
	lineColor  = color.New(color.FgGreen)
	matchColor = color.New(color.FgRed, color.Bold)
)

// FlushFileBuffer takes the output mutex exactly once per file, writes an
// inter-file separator if needed, then the buffer's contents, and updates
// the atomic total.
func (o *Output) FlushFileBuffer(fb *FileBuffer) {
	if fb.count == 0 {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.mode {
	case ModeCount:
		if fb.soloStdin {
			fmt.Fprintf(o.w, "%d\n", fb.count)
		} else {
			o.printFileCountLocked(fb.path, fb.count)
		}
	case ModeFilesWithMatches:
		o.writePathLocked(fb.path)
		fmt.Fprintln(o.w)
	default:
		if o.headingEnabled {
			o.writeSeparatorLocked()
			o.needsSeparator = true
		}
		o.w.Write(fb.buf)
	}
	o.total.Add(int64(fb.count))
}

// printFileCountLocked formats "path:n" under the caller's held lock.
func (o *Output) printFileCountLocked(path string, n int) {
	o.writePathLocked(path)
	fmt.Fprintf(o.w, ":%d\n", n)
}

func (o *Output) writeSeparatorLocked() {
	if o.needsSeparator {
		fmt.Fprintln(o.w)
	}
}

func (o *Output) writePathLocked(path string) {
	if o.colorEnabled {
		o.w.WriteString(pathColor.Sprint(path))
		return
	}
	o.w.WriteString(path)
}
