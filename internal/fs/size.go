package fs

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the total size of regular files below path, or the
// size of path itself when it is not a directory. Symlinks are not
// followed.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}
