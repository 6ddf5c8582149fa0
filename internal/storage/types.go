package storage

import (
	"os"
	"time"
)

// FileInfo is what a resolve step learns about an existing item
type FileInfo struct {
	Path    string      // Absolute path
	Size    int64       // Size in bytes, zero for folders
	ModTime time.Time   // Last modification time
	Mode    os.FileMode // File mode and permission
	IsDir   bool        // Whether this is a folder
}

func newFileInfo(path string, fi os.FileInfo) *FileInfo {
	info := &FileInfo{
		Path:    path,
		ModTime: fi.ModTime(),
		Mode:    fi.Mode(),
		IsDir:   fi.IsDir(),
	}
	if !fi.IsDir() {
		info.Size = fi.Size()
	}
	return info
}

// Recycler moves an item into the recycle bin and returns its new path
type Recycler interface {
	Put(path string) (string, error)
}
