//go:build !unix && !windows

package fsresult

import "syscall"

var (
	unauthorizedErrnos    = []syscall.Errno{}
	notFoundErrnos        = []syscall.Errno{}
	inUseErrnos           = []syscall.Errno{}
	nameTooLongErrnos     = []syscall.Errno{}
	invalidArgumentErrnos = []syscall.Errno{}
	unusablePathErrnos    = []syscall.Errno{}
)
