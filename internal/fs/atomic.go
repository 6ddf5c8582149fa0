package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cp "github.com/otiai10/copy"
)

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// maxUniqueAttempts bounds the " (n)" suffix search
const maxUniqueAttempts = 10000

// UniqueName returns the n-th candidate for name: the name itself for
// n <= 1, otherwise "base (n).ext".
func UniqueName(name string, n int) string {
	if n <= 1 {
		return name
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// dotfiles like ".env" have no extension to split off
		base, ext = name, ""
	}
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// CreateUniqueFile creates name inside dir, appending " (2)", " (3)", ...
// until a free name is found. The returned file is open for writing.
func CreateUniqueFile(dir, name string, perm os.FileMode) (*os.File, error) {
	for n := 1; n <= maxUniqueAttempts; n++ {
		f, err := CreateExclusive(filepath.Join(dir, UniqueName(name, n)), perm)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free name for %q in %q: %w", name, dir, fs.ErrExist)
}

// CreateUniqueDir is CreateUniqueFile for folders. Mkdir fails on an
// existing path, so it doubles as the exclusive create.
func CreateUniqueDir(dir, name string, perm os.FileMode) (string, error) {
	for n := 1; n <= maxUniqueAttempts; n++ {
		path := filepath.Join(dir, UniqueName(name, n))
		err := os.Mkdir(path, perm)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no free name for %q in %q: %w", name, dir, fs.ErrExist)
}

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // fall back to copy and delete across devices
	Force         bool // overwrite an existing destination
}

// Move moves a file or directory from src to dst. A plain rename is tried
// first when both sides share a partition; otherwise, if allowed, the
// tree is copied and the source removed.
func Move(src, dst string, opts MoveOptions) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(src); err != nil {
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if !opts.Force {
		if _, err := os.Lstat(dst); err == nil {
			return &MoveError{Op: "check_destination", Src: src, Dst: dst, Err: ErrDestinationExists}
		}
	}

	same, err := isSamePartition(src, dst)
	if err != nil || same {
		err := os.Rename(src, dst)
		if err == nil {
			return nil
		}
		if !isCrossDeviceErr(err) {
			return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
		}
	}

	if !opts.AllowCrossDev {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: ErrCrossDeviceMove}
	}
	return copyAndDelete(src, dst)
}

var removeAll = os.RemoveAll

func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
		Sync:          true,
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		_ = os.RemoveAll(dst)
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	if err := removeAll(src); err != nil {
		// whatever was already unlinked from src only survives in dst
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: errors.Join(ErrSourceRemains, err)}
	}
	return nil
}
