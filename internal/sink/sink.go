package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultBufferSize is the copy buffer size used when none is configured.
const DefaultBufferSize = 4096

// Sink writes files into a single destination directory.
type Sink struct {
	dir     string
	bufSize int
}

// New creates a sink rooted at dir, creating the directory if needed.
func New(dir string, bufSize int) (*Sink, error) {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: create directory: %w", err)
	}
	return &Sink{dir: dir, bufSize: bufSize}, nil
}

// Path returns the full path a file with the given name is written to.
func (s *Sink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteFile streams src into dir/name durably: the data is written to a
// temporary file, fsynced, and renamed into place. On any error the
// temporary file is removed and no file is left at the final name.
func (s *Sink) WriteFile(name string, src io.Reader) (int64, error) {
	final := s.Path(name)
	tmp := final + ".partial"

	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("sink: create %s: %w", tmp, err)
	}

	// Wrap both sides so CopyBuffer cannot bypass buf via WriterTo or
	// ReaderFrom and the copy runs in bufSize chunks.
	buf := make([]byte, s.bufSize)
	n, err := io.CopyBuffer(struct{ io.Writer }{f}, struct{ io.Reader }{src}, buf)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return n, fmt.Errorf("sink: write %s: %w", name, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return n, fmt.Errorf("sink: sync %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("sink: close %s: %w", name, err)
	}

	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return n, fmt.Errorf("sink: rename %s: %w", name, err)
	}
	return n, nil
}
