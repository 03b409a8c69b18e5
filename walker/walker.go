// Package walker implements parallel directory traversal: a work-stealing
// walker over per-worker Chase-Lev deques, with adaptive idle back-off
// termination detection, feeding matched lines to a shared Output through
// per-file buffers.
package walker

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/corgrep/internal/arena"
	"github.com/coregx/corgrep/internal/deque"
	"github.com/coregx/corgrep/ignore"
	"github.com/coregx/corgrep/matcher"
	"github.com/coregx/corgrep/output"
	"github.com/coregx/corgrep/reader"
)

// WorkItem is a directory awaiting traversal. State carries the ignore
// state accumulated down to (and including) this directory's parent; it
// is immutable and safely shared across whichever worker ends up popping
// or stealing this item, unlike Path, which must be a normal heap string:
// WorkItems cross goroutine boundaries and must outlive the arena of the
// worker that created them. Go's GC heap is the allocator for WorkItems
// themselves, so no separate pool is needed.
type WorkItem struct {
	Path  string
	Depth int
	Root  string // the seeded directory this item descends from, for CLI-glob relative matching
	State *ignore.State
}

// Config configures one walk: matcher, ignore configuration, and output
// are supplied separately to New, alongside worker count and depth/hidden
// policy here.
type Config struct {
	NumWorkers   int
	Hidden       bool
	MaxDepth     int // negative means unlimited
	CLIGlobs     *ignore.CLIGlobSet
	GlobalIgnore *ignore.GlobalIgnore // nil disables gitignore processing (--no-ignore)
	SoloStdin    bool                 // true when stdin is the run's only input, affecting count-mode formatting
}

// Walker owns the per-worker deques, the shared matcher/output, and the
// termination-detection state for one run.
type Walker struct {
	matcher  *matcher.Matcher
	output   *output.Output
	numWorkers int
	hidden   bool
	maxDepth int
	cliGlobs *ignore.CLIGlobSet
	globalIgnore *ignore.GlobalIgnore
	soloStdin bool

	deques   []*deque.Deque
	workers  []deque.Worker
	stealers []deque.Stealer

	active      atomic.Int64
	done        atomic.Bool
	initialized atomic.Int64
}

// New constructs a Walker with cfg.NumWorkers deques (or runtime.NumCPU()
// when unset).
func New(cfg Config, m *matcher.Matcher, out *output.Output) *Walker {
	n := cfg.NumWorkers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	w := &Walker{
		matcher:      m,
		output:       out,
		numWorkers:   n,
		hidden:       cfg.Hidden,
		maxDepth:     cfg.MaxDepth,
		cliGlobs:     cfg.CLIGlobs,
		globalIgnore: cfg.GlobalIgnore,
		soloStdin:    cfg.SoloStdin,
		deques:       make([]*deque.Deque, n),
		workers:      make([]deque.Worker, n),
		stealers:     make([]deque.Stealer, n),
	}
	for i := 0; i < n; i++ {
		w.deques[i] = deque.New(32)
		w.workers[i], w.stealers[i] = w.deques[i].Handles()
	}
	return w
}

// Run seeds the walk from paths, runs the worker pool to completion, and
// finally searches stdin if "-" was among paths: stdin is always
// processed after every file path has finished.
func (w *Walker) Run(paths []string) error {
	searchStdin := w.seed(paths)

	w.active.Store(int64(w.numWorkers))

	g := new(errgroup.Group)
	for i := 0; i < w.numWorkers; i++ {
		id := i
		g.Go(func() error {
			w.workerLoop(id)
			return nil
		})
	}
	err := g.Wait()

	if searchStdin {
		w.searchStdin()
	}
	return err
}

// seed dispatches each input path: "-" defers stdin, files are filtered
// and searched inline, directories are pushed round-robin.
func (w *Walker) seed(paths []string) (stdinRequested bool) {
	dirIndex := 0
	for _, p := range paths {
		if p == "-" {
			stdinRequested = true
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			continue
		}

		if !info.IsDir() {
			if w.cliGlobs.Allowed(p, false) {
				w.searchFile(p, p)
			}
			continue
		}

		root, err := filepath.Abs(p)
		if err != nil {
			root = p
		}
		var st *ignore.State
		if w.globalIgnore != nil {
			st = ignore.NewState(w.globalIgnore)
		}
		target := dirIndex % w.numWorkers
		w.workers[target].Push(&WorkItem{Path: root, Depth: 0, Root: root, State: st})
		dirIndex++
	}
	return stdinRequested
}

// workerLoop is one worker's main loop: barrier on initialization, then
// pop/steal/idle until termination is detected.
func (w *Walker) workerLoop(id int) {
	a := arena.New(8192)

	w.initialized.Add(1)
	for w.initialized.Load() < int64(w.numWorkers) {
		runtime.Gosched()
	}

	idleSpins := 0
	for {
		if v, ok := w.workers[id].Pop(); ok {
			w.processDirectory(id, a, v.(*WorkItem))
			a.Reset()
			idleSpins = 0
			continue
		}

		if item, ok := w.trySteal(id); ok {
			w.processDirectory(id, a, item)
			a.Reset()
			idleSpins = 0
			continue
		}

		if w.idle(&idleSpins) {
			return
		}
	}
}

// trySteal visits the other N-1 deques round-robin starting at
// (self+1)%N, retrying each target's CAS up to 3 times before moving on.
func (w *Walker) trySteal(self int) (*WorkItem, bool) {
	n := w.numWorkers
	for off := 1; off < n; off++ {
		target := (self + off) % n
		for attempt := 0; attempt < 3; attempt++ {
			v, res := w.stealers[target].Steal()
			switch res {
			case deque.StealSuccess:
				return v.(*WorkItem), true
			case deque.StealRetry:
				continue
			default: // StealEmpty
			}
			break
		}
	}
	return nil, false
}

var idleBackoff = []time.Duration{
	10 * time.Microsecond,
	100 * time.Microsecond,
	500 * time.Microsecond,
	2 * time.Millisecond,
}

// idle is the adaptive idle back-off termination detection: spin first,
// then deactivate and either publish done or sleep with increasing
// back-off until work reappears or every worker is inactive. Returns true
// when this worker should exit.
func (w *Walker) idle(spins *int) bool {
	*spins++
	hint := 128
	if *spins > 1 {
		hint = 32
	}
	for i := 0; i < hint; i++ {
		runtime.Gosched()
	}

	if w.done.Load() {
		return true
	}
	if w.anyWork() {
		return false
	}

	if w.active.Add(-1) == 0 {
		if !w.anyWork() {
			w.done.Store(true)
			return true
		}
		w.active.Add(1)
		return false
	}

	tier := 0
	for {
		time.Sleep(idleBackoff[tier])
		if tier < len(idleBackoff)-1 {
			tier++
		}
		if w.done.Load() {
			return true
		}
		if w.anyWork() {
			w.active.Add(1)
			return false
		}
	}
}

func (w *Walker) anyWork() bool {
	for _, d := range w.deques {
		if d.Len() > 0 {
			return true
		}
	}
	return false
}

// processDirectory handles one directory: depth cap, ancestor-chained
// ignore state, hidden/VCS/ignore/glob filtering, and file/directory
// dispatch.
func (w *Walker) processDirectory(id int, a *arena.Arena, item *WorkItem) {
	if w.maxDepth >= 0 && item.Depth >= w.maxDepth {
		return
	}

	entries, err := os.ReadDir(item.Path)
	if err != nil {
		return
	}

	state := item.State
	if w.globalIgnore != nil {
		local, _ := ignore.LoadGitignoreFile(filepath.Join(item.Path, ".gitignore"), item.Path)
		state = state.Extend(local)
	}

	for _, entry := range entries {
		name := entry.Name()
		isDir := entry.IsDir()

		if !w.hidden && name != ".gitignore" && strings.HasPrefix(name, ".") {
			continue
		}
		if isDir && ignore.IsAlwaysIgnoredDir(name) {
			continue
		}

		full := a.AllocPath(item.Path, name)

		if state != nil && state.Ignored(full, isDir) {
			continue
		}
		relPath := full
		if rel, err := filepath.Rel(item.Root, full); err == nil {
			relPath = filepath.ToSlash(rel)
		}
		if !w.cliGlobs.Allowed(relPath, isDir) {
			continue
		}

		if isDir {
			// Heap-allocate: this path must outlive the current arena's
			// Reset once the pushed WorkItem is popped or stolen later.
			child := filepath.Join(item.Path, name)
			w.workers[id].Push(&WorkItem{Path: child, Depth: item.Depth + 1, Root: item.Root, State: state})
			continue
		}

		if entry.Type().IsRegular() {
			w.searchFile(full, full)
		}
	}
}

// searchFile opens path via the streaming reader, skips .gitignore files,
// dispatches to the fast literal buffer scan or line-by-line matching,
// and flushes once under the output's single mutex.
func (w *Walker) searchFile(displayPath, openPath string) {
	if filepath.Base(openPath) == ".gitignore" {
		return
	}

	src, err := reader.Open(openPath)
	if err != nil {
		return
	}
	defer src.Close()

	fb := w.output.NewFileBuffer(displayPath)
	mode := w.output.Mode()

	if needle, ignoreCase, ok := w.matcher.FastLiteral(); ok {
		w.fastSearch(src, fb, needle, ignoreCase, mode)
	} else {
		w.lineSearch(src, fb, mode)
	}

	w.output.FlushFileBuffer(fb)
}

func (w *Walker) searchStdin() {
	src, err := reader.OpenStdin()
	if err != nil {
		return
	}
	defer src.Close()

	fb := w.output.NewStdinFileBuffer("<stdin>", w.soloStdin)
	mode := w.output.Mode()

	if needle, ignoreCase, ok := w.matcher.FastLiteral(); ok {
		w.fastSearch(src, fb, needle, ignoreCase, mode)
	} else {
		w.lineSearch(src, fb, mode)
	}

	w.output.FlushFileBuffer(fb)
}

// fastSearch drives reader.Source.SearchLiteral's whole-buffer SIMD path,
// collapsing repeat hits on the same line to a single reported match the
// way lineSearch's per-Next() loop naturally does.
func (w *Walker) fastSearch(src *reader.Source, fb *output.FileBuffer, needle []byte, ignoreCase bool, mode output.Mode) {
	content := src.Bytes()
	lastLine := -1
	src.SearchLiteral(needle, ignoreCase, func(lineNo, start, end int) bool {
		if lineNo == lastLine {
			return true
		}
		lastLine = lineNo
		if mode == output.ModeLines {
			lineStart, lineEnd := lineBounds(content, start, end)
			fb.AddMatch(lineNo, content[lineStart:lineEnd], start-lineStart, end-lineStart)
		} else {
			fb.AddMatch(lineNo, nil, 0, 0)
		}
		return mode != output.ModeFilesWithMatches
	})
}

// lineBounds finds the line enclosing content[start:end] without needing a
// prior line split, for the fast path's on-demand line recovery.
func lineBounds(content []byte, start, end int) (lineStart, lineEnd int) {
	lineStart = 0
	if i := bytes.LastIndexByte(content[:start], '\n'); i >= 0 {
		lineStart = i + 1
	}
	lineEnd = len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return lineStart, lineEnd
}

// lineSearch drives the matcher line-by-line, for regex/Aho-Corasick
// engines and literal searches with word-boundary enforcement.
func (w *Walker) lineSearch(src *reader.Source, fb *output.FileBuffer, mode output.Mode) {
	for {
		line, lineNo, ok := src.Next()
		if !ok {
			break
		}
		m := w.matcher.FindFirst(line)
		if m == nil {
			continue
		}
		fb.AddMatch(lineNo, line, m.Start, m.End)
		if mode == output.ModeFilesWithMatches {
			break
		}
	}
}
