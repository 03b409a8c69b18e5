package reader

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapCloser unmaps its slice on Close; kept separate from Source so
// Source.Close can stay a thin dispatch regardless of strategy.
type mmapCloser struct {
	data []byte
}

func (m mmapCloser) Close() error {
	if m.data == nil {
		return nil
	}
	return unix.Munmap(m.data)
}

// openMmap memory-maps path read-only and private, advising the kernel of
// sequential access since grep always scans front to back.
func openMmap(f *os.File, size int64) (*Source, error) {
	if size == 0 {
		return &Source{}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return openBuffered(f)
	}
	if len(data) > binaryCheckWindow {
		if containsNUL(data[:binaryCheckWindow]) {
			_ = unix.Munmap(data)
			return nil, ErrBinary
		}
	} else if containsNUL(data) {
		_ = unix.Munmap(data)
		return nil, ErrBinary
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return &Source{content: data, closer: mmapCloser{data: data}}, nil
}
