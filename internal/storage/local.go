package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/fs"
	"github.com/babarot/fileops/internal/fsresult"
)

var errUnsafePath = errors.New("refusing to delete unsafe path")

// Local mutates the local filesystem. Every call reports a classified
// code instead of an error.
type Local struct {
	bin Recycler
}

// NewLocal returns a Local that recycles into bin. A nil bin makes the
// default delete mode fail with GENERIC.
func NewLocal(bin Recycler) *Local {
	return &Local{bin: bin}
}

// ResolveFile resolves path as a file. A folder yields NOTAFILE.
func (s *Local) ResolveFile(path string) fsresult.Result[*FileInfo] {
	res := s.stat(path)
	if fi, ok := res.Value(); ok && fi.IsDir {
		return fsresult.Fail[*FileInfo](fsresult.NotAFile)
	}
	return res
}

// ResolveFolder resolves path as a folder. A file yields NOTAFOLDER.
func (s *Local) ResolveFolder(path string) fsresult.Result[*FileInfo] {
	res := s.stat(path)
	if fi, ok := res.Value(); ok && !fi.IsDir {
		return fsresult.Fail[*FileInfo](fsresult.NotAFolder)
	}
	return res
}

func (s *Local) stat(path string) fsresult.Result[*FileInfo] {
	return fsresult.Wrap(func() (*FileInfo, error) {
		fi, err := os.Lstat(path)
		if err != nil {
			return nil, err
		}
		return newFileInfo(path, fi), nil
	})
}

// Delete resolves item as its kind and deletes it in the given mode
func (s *Local) Delete(ctx context.Context, item types.ListedItem, mode types.DeleteMode) fsresult.Status {
	if item.Kind == types.Folder {
		return s.DeleteFolder(ctx, item.Path, mode)
	}
	return s.DeleteFile(ctx, item.Path, mode)
}

// DeleteFile removes the file at path, recycling it unless mode is permanent
func (s *Local) DeleteFile(ctx context.Context, path string, mode types.DeleteMode) fsresult.Status {
	if res := s.ResolveFile(path); !res.IsOk() {
		return res.Status()
	}
	return s.remove(path, mode, os.Remove)
}

// DeleteFolder removes the folder at path and everything below it,
// recycling it unless mode is permanent
func (s *Local) DeleteFolder(ctx context.Context, path string, mode types.DeleteMode) fsresult.Status {
	if res := s.ResolveFolder(path); !res.IsOk() {
		return res.Status()
	}
	return s.remove(path, mode, os.RemoveAll)
}

// DeletePermanently removes whatever is at path without recycling it
func (s *Local) DeletePermanently(ctx context.Context, path string) fsresult.Status {
	res := s.stat(path)
	if !res.IsOk() {
		return res.Status()
	}
	if fi, _ := res.Value(); fi.IsDir {
		return s.remove(path, types.PermanentDelete, os.RemoveAll)
	}
	return s.remove(path, types.PermanentDelete, os.Remove)
}

func (s *Local) remove(path string, mode types.DeleteMode, rm func(string) error) fsresult.Status {
	return fsresult.Do(func() error {
		if unsafe, _ := fs.IsUnsafePath(path); unsafe {
			return errUnsafePath
		}
		if mode == types.PermanentDelete {
			slog.Debug("deleting permanently", "path", path)
			return rm(path)
		}
		if s.bin == nil {
			return errors.New("no recycle bin configured")
		}
		_, err := s.bin.Put(path)
		return err
	})
}

// CreateFolder creates name inside dir, picking "name (n)" on collision.
// The created path is returned.
func (s *Local) CreateFolder(ctx context.Context, dir, name string) fsresult.Result[string] {
	if res := s.ResolveFolder(dir); !res.IsOk() {
		return fsresult.Fail[string](res.ErrorCode())
	}
	return fsresult.Wrap(func() (string, error) {
		return fs.CreateUniqueDir(dir, name, 0755)
	})
}

// CreateFile creates an empty file name inside dir, picking "name (n).ext"
// on collision. The created path is returned.
func (s *Local) CreateFile(ctx context.Context, dir, name string) fsresult.Result[string] {
	if res := s.ResolveFolder(dir); !res.IsOk() {
		return fsresult.Fail[string](res.ErrorCode())
	}
	return fsresult.Wrap(func() (string, error) {
		f, err := fs.CreateUniqueFile(dir, filepath.Base(name), 0644)
		if err != nil {
			return "", err
		}
		if err := f.Close(); err != nil {
			return "", err
		}
		return f.Name(), nil
	})
}
