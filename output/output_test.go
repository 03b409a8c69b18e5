package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestOutput(t *testing.T, cfg Config) (*Output, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	if cfg.Heading == nil {
		no := false
		cfg.Heading = &no
	}
	return New(&buf, cfg), &buf
}

func TestFlatModeFormat(t *testing.T) {
	out, buf := newTestOutput(t, Config{Mode: ModeLines, LineNumber: true, Color: ColorNever})
	fb := out.NewFileBuffer("/t/a.txt")
	fb.AddMatch(1, []byte("hello world"), 0, 5)
	fb.AddMatch(2, []byte("HELLO again"), 0, 5)
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())

	want := "/t/a.txt:1:hello world\n/t/a.txt:2:HELLO again\n"
	require.Equal(t, want, buf.String())
}

func TestHeadingModeFormat(t *testing.T) {
	yes := true
	out, buf := newTestOutput(t, Config{Mode: ModeLines, LineNumber: true, Color: ColorNever, Heading: &yes})
	fb := out.NewFileBuffer("/t/a.txt")
	fb.AddMatch(1, []byte("hello"), 0, 5)
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())

	want := "/t/a.txt\n1:hello\n"
	require.Equal(t, want, buf.String())
}

func TestCountModeFormat(t *testing.T) {
	out, buf := newTestOutput(t, Config{Mode: ModeCount, Color: ColorNever})
	fb := out.NewFileBuffer("/t/a.txt")
	fb.AddMatch(1, []byte("x"), 0, 1)
	fb.AddMatch(2, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())
	require.Equal(t, "/t/a.txt:2\n", buf.String())
}

func TestCountModeSoloStdinFormat(t *testing.T) {
	out, buf := newTestOutput(t, Config{Mode: ModeCount, Color: ColorNever})
	fb := out.NewStdinFileBuffer("<stdin>", true)
	fb.AddMatch(1, []byte("x"), 0, 1)
	fb.AddMatch(2, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())
	require.Equal(t, "2\n", buf.String())
}

func TestFilesWithMatchesFormat(t *testing.T) {
	out, buf := newTestOutput(t, Config{Mode: ModeFilesWithMatches, Color: ColorNever})
	fb := out.NewFileBuffer("/t/a.txt")
	fb.AddMatch(1, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())
	require.Equal(t, "/t/a.txt\n", buf.String())
}

func TestZeroMatchesNeverFlushed(t *testing.T) {
	out, buf := newTestOutput(t, Config{Mode: ModeLines, Color: ColorNever})
	fb := out.NewFileBuffer("/t/empty.txt")
	out.FlushFileBuffer(fb)
	require.NoError(t, out.Flush())
	require.Empty(t, buf.String())
	require.Equal(t, int64(0), out.TotalMatches())
}

func TestTotalMatchesAccumulates(t *testing.T) {
	out, _ := newTestOutput(t, Config{Mode: ModeLines, Color: ColorNever})
	fb1 := out.NewFileBuffer("/t/a.txt")
	fb1.AddMatch(1, []byte("x"), 0, 1)
	fb1.AddMatch(2, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb1)

	fb2 := out.NewFileBuffer("/t/b.txt")
	fb2.AddMatch(1, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb2)

	require.Equal(t, int64(3), out.TotalMatches())
}

func TestHeadingModeBlankLineSeparatesFiles(t *testing.T) {
	yes := true
	out, buf := newTestOutput(t, Config{Mode: ModeLines, LineNumber: true, Color: ColorNever, Heading: &yes})
	fb1 := out.NewFileBuffer("/t/a.txt")
	fb1.AddMatch(1, []byte("x"), 0, 1)
	out.FlushFileBuffer(fb1)

	fb2 := out.NewFileBuffer("/t/b.txt")
	fb2.AddMatch(1, []byte("y"), 0, 1)
	out.FlushFileBuffer(fb2)
	require.NoError(t, out.Flush())

	want := "/t/a.txt\n1:x\n\n/t/b.txt\n1:y\n"
	require.Equal(t, want, buf.String())
}
