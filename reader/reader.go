// Package reader implements the streaming file/stdin reading strategies: a
// 64 KB buffered reader for ordinary files, a memory-mapped reader for
// large files, and a growable stdin reader, all exposing the same lazy
// line iteration and a fast whole-buffer literal search path.
package reader

import (
	"io"
	"os"

	"github.com/coregx/corgrep/simd"
)

const (
	// bufferedChunkSize is the fixed refill size for the buffered strategy.
	bufferedChunkSize = 64 * 1024
	// mmapThreshold is the file size above which memory mapping is used
	// instead of buffered reads.
	mmapThreshold = 16 * 1024 * 1024
	// binaryCheckWindow is how much of a file is inspected for NUL bytes.
	binaryCheckWindow = 8192
)

// Source is a single file's (or stdin's) content plus cursor, produced by
// one of three strategies (buffered, mmap, stdin) that all converge on the
// same line-iteration and literal-search code below.
type Source struct {
	content []byte
	pos     int // byte offset of the next unread line
	line    int // 1-based number of the last line returned

	closer io.Closer // non-nil for the mmap strategy
}

// ErrBinary is returned by Open when the first min(len,8192) bytes of a
// file contain a NUL, the usual signal that it isn't text.
var ErrBinary = errBinary{}

type errBinary struct{}

func (errBinary) Error() string { return "reader: binary file" }

// Open selects a reading strategy based on file size and returns a ready
// Source, or ErrBinary if the file fails the binary-content heuristic.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if info.Size() > mmapThreshold {
		return openMmap(f, info.Size())
	}
	return openBuffered(f)
}

// openBuffered reads path in fixed bufferedChunkSize increments into a
// growable slice.
func openBuffered(f *os.File) (*Source, error) {
	content := make([]byte, 0, bufferedChunkSize)
	chunk := make([]byte, bufferedChunkSize)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			content = append(content, chunk[:n]...)
			if len(content) <= binaryCheckWindow && containsNUL(content) {
				return nil, ErrBinary
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if containsNUL(content[:min(len(content), binaryCheckWindow)]) {
		return nil, ErrBinary
	}
	return &Source{content: content}, nil
}

func containsNUL(b []byte) bool {
	for _, c := range b {
		if c == 0 {
			return true
		}
	}
	return false
}

// Close releases any OS resources held by the source (mmap unmaps; the
// buffered/stdin strategies are no-ops).
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Next returns the next line's content (without its trailing newline) and
// its 1-based line number, or ok=false at end of content. A final
// unterminated line (no trailing newline at EOF) is still yielded; a
// trailing newline at EOF produces no extra empty line.
func (s *Source) Next() (line []byte, number int, ok bool) {
	if s.pos >= len(s.content) {
		return nil, 0, false
	}
	rest := s.content[s.pos:]
	nl := simd.FindNewline(rest)
	s.line++
	if nl == -1 {
		s.pos = len(s.content)
		return rest, s.line, true
	}
	s.pos += nl + 1
	return rest[:nl], s.line, true
}

// Bytes returns the full content backing this source, for the fast
// literal-search path below.
func (s *Source) Bytes() []byte { return s.content }

// SearchLiteral is the fast literal buffer search path: scan the whole
// content for needle via SIMD, deriving each hit's line number
// by counting newlines since the last hit (amortized, not per-line). fn
// is called with (lineNumber, matchStart, matchEnd) in content-relative
// byte offsets for matchStart/matchEnd; it stops early if fn returns
// false.
func (s *Source) SearchLiteral(needle []byte, ignoreCase bool, fn func(lineNumber, start, end int) bool) {
	content := s.content
	lineNo := 1
	scanned := 0 // newlines counted in content[:scanned]
	pos := 0
	for {
		var hit int
		if ignoreCase {
			rel := simd.FindSubstringIgnoreCase(content[pos:], needle)
			if rel == -1 {
				return
			}
			hit = pos + rel
		} else {
			hit = simd.FindSubstringFrom(content, needle, pos)
			if hit == -1 {
				return
			}
		}
		lineNo += simd.CountNewlines(content[scanned:hit])
		scanned = hit
		if !fn(lineNo, hit, hit+len(needle)) {
			return
		}
		pos = hit + 1
	}
}
