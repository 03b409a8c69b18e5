package reader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenBufferedLines(t *testing.T) {
	path := writeTemp(t, "one\ntwo\nthree\n")
	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	var got [][]byte
	for {
		line, _, ok := src.Next()
		if !ok {
			break
		}
		got = append(got, append([]byte(nil), line...))
	}
	if len(got) != 3 || string(got[0]) != "one" || string(got[2]) != "three" {
		t.Fatalf("got %v", got)
	}
}

func TestNoTrailingEmptyLine(t *testing.T) {
	path := writeTemp(t, "a\nb\n")
	src, _ := Open(path)
	defer src.Close()
	count := 0
	for {
		_, _, ok := src.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Fatalf("got %d lines, want 2", count)
	}
}

func TestUnterminatedFinalLine(t *testing.T) {
	path := writeTemp(t, "a\nb")
	src, _ := Open(path)
	defer src.Close()
	var lines []string
	for {
		line, _, ok := src.Next()
		if !ok {
			break
		}
		lines = append(lines, string(line))
	}
	if len(lines) != 2 || lines[1] != "b" {
		t.Fatalf("got %v", lines)
	}
}

func TestBinaryDetection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin")
	content := append([]byte("hello"), 0, 'w', 'o', 'r', 'l', 'd')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err != ErrBinary {
		t.Fatalf("got %v, want ErrBinary", err)
	}
}

func TestSearchLiteralLineNumbers(t *testing.T) {
	path := writeTemp(t, "alpha\nbeta needle here\ngamma\nneedle again\n")
	src, _ := Open(path)
	defer src.Close()

	var lines []int
	src.SearchLiteral([]byte("needle"), false, func(lineNo, start, end int) bool {
		lines = append(lines, lineNo)
		return true
	})
	if len(lines) != 2 || lines[0] != 2 || lines[1] != 4 {
		t.Fatalf("got %v", lines)
	}
}

func TestSearchLiteralIgnoreCase(t *testing.T) {
	path := writeTemp(t, "NEEDLE here\n")
	src, _ := Open(path)
	defer src.Close()
	found := false
	src.SearchLiteral([]byte("needle"), true, func(lineNo, start, end int) bool {
		found = true
		return true
	})
	if !found {
		t.Fatal("expected case-insensitive match")
	}
}

func TestSearchLiteralStopsEarly(t *testing.T) {
	path := writeTemp(t, "x x x x\n")
	src, _ := Open(path)
	defer src.Close()
	count := 0
	src.SearchLiteral([]byte("x"), false, func(lineNo, start, end int) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Fatalf("got %d calls, want 2 (stopped early)", count)
	}
}
