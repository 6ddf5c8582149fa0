//go:build unix

package fsresult

import (
	"syscall"

	"golang.org/x/sys/unix"
)

var (
	unauthorizedErrnos = []syscall.Errno{unix.EACCES, unix.EPERM}

	// ENODEV/ENXIO/ESTALE show up when removable media or a network share
	// vanished under an open path
	notFoundErrnos = []syscall.Errno{unix.ENOENT, unix.ENODEV, unix.ENXIO, unix.ESTALE}

	inUseErrnos = []syscall.Errno{unix.EBUSY, unix.ETXTBSY, unix.EAGAIN, unix.EWOULDBLOCK}

	nameTooLongErrnos = []syscall.Errno{unix.ENAMETOOLONG}

	invalidArgumentErrnos = []syscall.Errno{unix.EINVAL, unix.ENOTDIR}

	unusablePathErrnos = []syscall.Errno{}
)
