package arena

import (
	"bytes"
	"testing"
)

func TestAllocReturnsCopy(t *testing.T) {
	a := New(16)
	src := []byte("hello")
	got := a.Alloc(src)
	src[0] = 'X'
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("arena slice aliased caller's buffer: got %q", got)
	}
}

func TestResetRetainsCapacity(t *testing.T) {
	a := New(4)
	a.Alloc([]byte("a long string that forces growth"))
	grown := a.Cap()
	a.Reset()
	if a.Cap() != grown {
		t.Fatalf("Reset should retain capacity: got %d, want %d", a.Cap(), grown)
	}
	if len(a.buf) != 0 {
		t.Fatalf("Reset should zero length, got %d", len(a.buf))
	}
}

func TestAllocAfterReset(t *testing.T) {
	a := New(16)
	a.AllocString("/root/a")
	a.Reset()
	got := a.AllocString("/root/b")
	if string(got) != "/root/b" {
		t.Fatalf("got %q", got)
	}
}
