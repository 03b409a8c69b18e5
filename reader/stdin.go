package reader

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// OpenStdin reads all of stdin into a growable buffer, in 64 KB chunks,
// pre-sized via a platform FIONREAD hint when available.
func OpenStdin() (*Source, error) {
	hint := bufferedChunkSize
	if n, err := unix.IoctlGetInt(int(os.Stdin.Fd()), unix.FIONREAD); err == nil && n > 0 {
		hint = n
	}

	content := make([]byte, 0, hint)
	chunk := make([]byte, bufferedChunkSize)
	for {
		n, err := os.Stdin.Read(chunk)
		if n > 0 {
			content = append(content, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	window := len(content)
	if window > binaryCheckWindow {
		window = binaryCheckWindow
	}
	if containsNUL(content[:window]) {
		return nil, ErrBinary
	}
	return &Source{content: content}, nil
}
