package log

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/go-units"
)

// RotateWriter appends to a log file and shifts it to path.1 once the
// next write would cross the size limit. Older backups move up one
// slot (path.1 -> path.2, ...) and anything past keep is removed.
type RotateWriter struct {
	path  string
	limit int64
	keep  int

	mu      sync.Mutex
	f       *os.File
	written int64
}

// NewRotateWriter opens path for appending. limit is a human size such
// as "10MB".
func NewRotateWriter(path, limit string, keep int) (*RotateWriter, error) {
	n, err := units.FromHumanSize(limit)
	if err != nil {
		return nil, fmt.Errorf("log rotation size %q: %w", limit, err)
	}
	w := &RotateWriter{path: path, limit: n, keep: keep}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written > 0 && w.written+int64(len(p)) > w.limit {
		if err := w.shift(); err != nil {
			return 0, err
		}
	}
	n, err := w.f.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotateWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o700); err != nil {
		return fmt.Errorf("log directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	w.f, w.written = f, fi.Size()
	return nil
}

func (w *RotateWriter) backup(i int) string {
	return fmt.Sprintf("%s.%d", w.path, i)
}

func (w *RotateWriter) shift() error {
	if w.f != nil {
		w.f.Close()
		w.f = nil
	}

	if w.keep <= 0 {
		if err := os.Remove(w.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return w.open()
	}

	if err := os.Remove(w.backup(w.keep)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for i := w.keep - 1; i >= 1; i-- {
		if err := os.Rename(w.backup(i), w.backup(i+1)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.Rename(w.path, w.backup(1)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return w.open()
}
