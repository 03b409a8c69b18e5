// Package arena provides a thread-local bump allocator for the transient,
// per-directory byte slices (composed paths, ignore pattern scratch) the
// walker produces, reset with retain-capacity between directories so the
// backing pages survive without being cleared or released.
package arena

import "unsafe"

// Arena is a single growable byte buffer used as a bump allocator. It is
// not safe for concurrent use; callers keep one per worker goroutine.
type Arena struct {
	buf []byte
}

// New creates an Arena with the given initial backing capacity.
func New(capacity int) *Arena {
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Alloc copies src into the arena and returns the resulting slice, valid
// until the next Reset. When append grows the backing array, earlier
// results keep pointing at the old one; after a Reset, later allocations
// reuse the current array and overwrite what it held, so callers must not
// retain an Alloc result across a Reset.
func (a *Arena) Alloc(src []byte) []byte {
	start := len(a.buf)
	a.buf = append(a.buf, src...)
	return a.buf[start:len(a.buf):len(a.buf)]
}

// AllocString is Alloc for a string, avoiding an extra []byte conversion
// at call sites that already hold a string (e.g. a composed path).
func (a *Arena) AllocString(s string) []byte {
	start := len(a.buf)
	a.buf = append(a.buf, s...)
	return a.buf[start:len(a.buf):len(a.buf)]
}

// Reset reclaims all allocations, retaining the backing array's capacity
// so the arena doesn't repeatedly reallocate across directories.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
}

// Cap reports the arena's current backing capacity, useful for tests and
// diagnostics.
func (a *Arena) Cap() int { return cap(a.buf) }

// AllocPath composes dir+"/"+name into the arena and returns it as a
// string with no extra copy, for the walker's per-entry path composition.
// The returned string aliases the arena's backing array and must not be
// retained across Reset.
func (a *Arena) AllocPath(dir, name string) string {
	start := len(a.buf)
	a.buf = append(a.buf, dir...)
	a.buf = append(a.buf, '/')
	a.buf = append(a.buf, name...)
	b := a.buf[start:len(a.buf):len(a.buf)]
	return unsafe.String(&b[0], len(b))
}
