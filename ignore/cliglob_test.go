package ignore

import "testing"

func TestCLIGlobSetEmptyAcceptsAll(t *testing.T) {
	set := NewCLIGlobSet(nil)
	if !set.Allowed("anything.go", false) || !set.Allowed("sub", true) {
		t.Fatal("empty glob set should accept everything")
	}
}

func TestCLIGlobSetFileInclusion(t *testing.T) {
	set := NewCLIGlobSet([]string{"*.go"})
	if !set.Allowed("main.go", false) {
		t.Fatal("expected main.go to be allowed")
	}
	if set.Allowed("main.py", false) {
		t.Fatal("main.py should be rejected: file inclusion exists and doesn't match")
	}
	// file-only inclusion must not restrict directories.
	if !set.Allowed("sub", true) {
		t.Fatal("directories should not be restricted by a file-only inclusion")
	}
}

func TestCLIGlobSetDirectoryInclusion(t *testing.T) {
	set := NewCLIGlobSet([]string{"src/"})
	if !set.Allowed("anything.go", false) {
		t.Fatal("dir-only inclusion must not restrict files")
	}
	if !set.Allowed("src", true) {
		t.Fatal("expected src directory allowed")
	}
	if set.Allowed("docs", true) {
		t.Fatal("docs should be rejected: directory inclusion exists and doesn't match")
	}
}

func TestCLIGlobSetNegationAlwaysRejects(t *testing.T) {
	set := NewCLIGlobSet([]string{"*.go", "!vendor_gen.go"})
	if set.Allowed("vendor_gen.go", false) {
		t.Fatal("negated glob match should always reject")
	}
	if !set.Allowed("main.go", false) {
		t.Fatal("main.go should still be allowed")
	}
}
