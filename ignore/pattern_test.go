package ignore

import "testing"

func TestParseLineBasics(t *testing.T) {
	if p := ParseLine("", "/root"); p != nil {
		t.Fatalf("empty line should be nil, got %+v", p)
	}
	if p := ParseLine("# comment", "/root"); p != nil {
		t.Fatalf("comment line should be nil, got %+v", p)
	}
	p := ParseLine("*.log", "/root")
	if p == nil || p.Negated || p.DirectoryOnly || p.Anchored || p.ContainsSlash {
		t.Fatalf("got %+v", p)
	}
}

func TestParseLineNegation(t *testing.T) {
	p := ParseLine("!important.log", "/root")
	if p == nil || !p.Negated || p.text != "important.log" {
		t.Fatalf("got %+v", p)
	}
}

func TestParseLineDirectoryOnly(t *testing.T) {
	p := ParseLine("node_modules/", "/root")
	if p == nil || !p.DirectoryOnly || p.ContainsSlash {
		t.Fatalf("got %+v", p)
	}
}

func TestParseLineAnchored(t *testing.T) {
	p := ParseLine("/build", "/root")
	if p == nil || !p.Anchored || p.ContainsSlash {
		t.Fatalf("got %+v", p)
	}
}

func TestParseLineContainsSlash(t *testing.T) {
	p := ParseLine("src/generated", "/root")
	if p == nil || p.Anchored || !p.ContainsSlash {
		t.Fatalf("got %+v", p)
	}
}

func TestMatchBasenameAnywhere(t *testing.T) {
	p := ParseLine("*.log", "/root")
	if !p.Match("/root/a.log", false) {
		t.Fatal("expected match at top level")
	}
	if !p.Match("/root/sub/dir/b.log", false) {
		t.Fatal("expected match in nested dir (no slash => match anywhere)")
	}
	if p.Match("/root/a.txt", false) {
		t.Fatal("unexpected match")
	}
}

func TestMatchAnchoredOnlyAtRoot(t *testing.T) {
	p := ParseLine("/build", "/root")
	if !p.Match("/root/build", true) {
		t.Fatal("expected match at anchor root")
	}
	if p.Match("/root/sub/build", true) {
		t.Fatal("anchored pattern should not match nested build dir")
	}
}

func TestMatchDirectoryOnlyRejectsFiles(t *testing.T) {
	p := ParseLine("dist/", "/root")
	if p.Match("/root/dist", false) {
		t.Fatal("directory_only pattern should not match a file")
	}
	if !p.Match("/root/dist", true) {
		t.Fatal("expected directory match")
	}
}

func TestMatchOutsideAnchorDir(t *testing.T) {
	p := ParseLine("*.log", "/root/sub")
	if p.Match("/root/a.log", false) {
		t.Fatal("path outside anchor_dir must not match")
	}
}

func TestMatchContainsSlashMatchesFullRel(t *testing.T) {
	p := ParseLine("src/generated", "/root")
	if !p.Match("/root/src/generated", true) {
		t.Fatal("expected match against full relative path")
	}
	if p.Match("/root/other/src/generated", true) {
		t.Fatal("contains_slash pattern must match full rel, not a suffix")
	}
}

func TestNegatedClassTranslation(t *testing.T) {
	p := ParseLine("[!a-c].txt", "/root")
	if p.Match("/root/a.txt", false) {
		t.Fatal("[!a-c] should exclude 'a'")
	}
	if !p.Match("/root/z.txt", false) {
		t.Fatal("[!a-c] should include 'z'")
	}
}
