//go:build windows

package fsresult

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	errCloudProviderNotRunning syscall.Errno = 362        // ERROR_CLOUD_FILE_PROVIDER_NOT_RUNNING
	errPending                 syscall.Errno = 0x8000000A // E_PENDING
)

var (
	unauthorizedErrnos = []syscall.Errno{windows.ERROR_ACCESS_DENIED}

	notFoundErrnos = []syscall.Errno{
		windows.ERROR_FILE_NOT_FOUND,
		windows.ERROR_PATH_NOT_FOUND,
		windows.ERROR_INVALID_DRIVE, // the system cannot find the drive specified
		windows.ERROR_NOT_READY,
		windows.ERROR_DEV_NOT_EXIST,
	}

	inUseErrnos = []syscall.Errno{
		windows.ERROR_SHARING_VIOLATION,
		windows.ERROR_LOCK_VIOLATION,
		windows.ERROR_USER_MAPPED_FILE,
	}

	nameTooLongErrnos = []syscall.Errno{windows.ERROR_FILENAME_EXCED_RANGE}

	invalidArgumentErrnos = []syscall.Errno{
		windows.ERROR_INVALID_PARAMETER,
		windows.ERROR_INVALID_NAME,
		windows.ERROR_DIRECTORY,
	}

	// usually an MTP device that was disconnected
	unusablePathErrnos = []syscall.Errno{
		windows.ERROR_BAD_PATHNAME,
		errCloudProviderNotRunning,
		errPending,
	}
)
