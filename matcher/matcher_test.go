package matcher

import "testing"

func TestNewRejectsEmptyPattern(t *testing.T) {
	if _, err := New("", false, false); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestLiteralMode(t *testing.T) {
	m, err := New("hello", false, false)
	if err != nil {
		t.Fatal(err)
	}
	got := m.FindFirst([]byte("say hello world"))
	if got == nil || got.Start != 4 || got.End != 9 {
		t.Fatalf("got %+v", got)
	}
}

func TestLiteralIgnoreCaseScenario(t *testing.T) {
	m, err := New("hello", true, false)
	if err != nil {
		t.Fatal(err)
	}
	haystack := []byte("hello world")
	got := m.FindFirst(haystack)
	if got == nil || got.Start != 0 {
		t.Fatalf("got %+v", got)
	}
	haystack2 := []byte("HELLO again")
	got2 := m.FindFirst(haystack2)
	if got2 == nil || got2.Start != 0 || got2.End != 5 {
		t.Fatalf("got %+v", got2)
	}
}

func TestAlternationModeScenario(t *testing.T) {
	m, err := New("ERR_SYS|PME_TURN_OFF|LINK_REQ_RST|CFG_BME_EVT", false, false)
	if err != nil {
		t.Fatal(err)
	}
	lines := [][]byte{[]byte("ERR_SYS here"), []byte("warn here"), []byte("CFG_BME_EVT")}
	count := 0
	for _, line := range lines {
		if m.FindFirst(line) != nil {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("got %d matches, want 2", count)
	}
}

func TestWordBoundaryScenario(t *testing.T) {
	// `.*_cache` with -w over "xx_cache_y z_cache_w valid_cache
	// here_cache_end" should find exactly one match, ending where
	// "valid_cache" ends.
	m, err := New(".*_cache", false, true)
	if err != nil {
		t.Fatal(err)
	}
	line := []byte("xx_cache_y z_cache_w valid_cache here_cache_end")
	got := m.FindFirst(line)
	if got == nil {
		t.Fatal("expected a match")
	}
	wantEnd := len("xx_cache_y z_cache_w valid_cache")
	if got.End != wantEnd {
		t.Fatalf("got end %d, want %d (%q)", got.End, wantEnd, line[got.Start:got.End])
	}
}

func TestWordBoundaryRejectsNonBoundaryMatch(t *testing.T) {
	m, err := New("cat", false, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.FindFirst([]byte("concatenate")); got != nil {
		t.Fatalf("got %+v, want no match (not a word boundary)", got)
	}
	got := m.FindFirst([]byte("a cat sat"))
	if got == nil || got.Start != 2 || got.End != 5 {
		t.Fatalf("got %+v", got)
	}
}

func TestRegexEngineSelection(t *testing.T) {
	m, err := New(`a[bc]+d`, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.kind != engineNFA {
		t.Fatalf("expected NFA engine, got %v", m.kind)
	}
	got := m.FindFirst([]byte("xxabcbcdxx"))
	if got == nil || got.Start != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestMaxPatternLen(t *testing.T) {
	m, _ := New("hello", false, false)
	if m.MaxPatternLen() != 5 {
		t.Fatalf("got %d", m.MaxPatternLen())
	}
}
