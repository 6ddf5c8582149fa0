//go:build !windows

package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"
)

// isSamePartition checks if src and the parent directory of dst reside on
// the same filesystem.
func isSamePartition(src, dst string) (bool, error) {
	var srcStat, dstStat unix.Stat_t
	if err := unix.Lstat(src, &srcStat); err != nil {
		return false, fmt.Errorf("failed to get source file stats: %w", err)
	}
	if err := unix.Stat(filepath.Dir(dst), &dstStat); err != nil {
		return false, fmt.Errorf("failed to get destination directory stats: %w", err)
	}
	return srcStat.Dev == dstStat.Dev, nil
}

func isCrossDeviceErr(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		err = linkErr.Err
	}
	return errors.Is(err, syscall.EXDEV)
}
