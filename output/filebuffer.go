package output

import (
	"fmt"
)

// FileBuffer accumulates one file's formatted output region plus its
// match count, flushed to the shared writer in a single critical section.
type FileBuffer struct {
	path      string
	buf       []byte
	count     int
	out       *Output
	soloStdin bool
}

// NewFileBuffer starts a buffer for path, formatted per o's resolved
// heading/color/line-number settings.
func (o *Output) NewFileBuffer(path string) *FileBuffer {
	return &FileBuffer{path: path, out: o}
}

// NewStdinFileBuffer starts a buffer for stdin. When solo is true (stdin is
// the only input the run searches), count mode prints a bare count with no
// path prefix: there's no other file for the number to be disambiguated
// against.
func (o *Output) NewStdinFileBuffer(path string, solo bool) *FileBuffer {
	return &FileBuffer{path: path, out: o, soloStdin: solo}
}

// Count returns the number of matches recorded so far.
func (fb *FileBuffer) Count() int { return fb.count }

// AddMatch records one match. In ModeCount/ModeFilesWithMatches only the
// counter advances; in ModeLines the line is formatted into the buffer,
// emitting a file header on the first match.
func (fb *FileBuffer) AddMatch(lineNumber int, line []byte, matchStart, matchEnd int) {
	fb.count++
	if fb.out.mode != ModeLines {
		return
	}
	if fb.count == 1 && fb.out.headingEnabled {
		fb.writeHeader()
	}
	fb.writeLine(lineNumber, line, matchStart, matchEnd)
}

func (fb *FileBuffer) writeHeader() {
	if fb.out.colorEnabled {
		fb.buf = append(fb.buf, pathColor.Sprint(fb.path)...)
	} else {
		fb.buf = append(fb.buf, fb.path...)
	}
	fb.buf = append(fb.buf, '\n')
}

func (fb *FileBuffer) writeLine(lineNumber int, line []byte, matchStart, matchEnd int) {
	if !fb.out.headingEnabled {
		if fb.out.colorEnabled {
			fb.buf = append(fb.buf, pathColor.Sprint(fb.path)...)
		} else {
			fb.buf = append(fb.buf, fb.path...)
		}
		fb.buf = append(fb.buf, ':')
	}
	if fb.out.lineNumber {
		if fb.out.colorEnabled {
			fb.buf = append(fb.buf, lineColor.Sprint(fmt.Sprintf("%d", lineNumber))...)
		} else {
			fb.buf = fmt.Appendf(fb.buf, "%d", lineNumber)
		}
		fb.buf = append(fb.buf, ':')
	}
	fb.writeHighlighted(line, matchStart, matchEnd)
	fb.buf = append(fb.buf, '\n')
}

func (fb *FileBuffer) writeHighlighted(line []byte, matchStart, matchEnd int) {
	if matchStart < 0 || matchEnd > len(line) || matchStart > matchEnd || !fb.out.colorEnabled {
		fb.buf = append(fb.buf, line...)
		return
	}
	fb.buf = append(fb.buf, line[:matchStart]...)
	fb.buf = append(fb.buf, matchColor.Sprint(string(line[matchStart:matchEnd]))...)
	fb.buf = append(fb.buf, line[matchEnd:]...)
}
