package fsresult

import (
	"errors"
	"io/fs"
	"slices"
	"syscall"
)

// Sentinels for conditions that have no portable errno. Lower layers wrap
// them so the classifier can recognize the condition.
var (
	ErrAccessDenied       = errors.New("access denied")
	ErrVolumeUnavailable  = errors.New("volume unavailable")
	ErrInUse              = errors.New("file is in use")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrProviderNotRunning = errors.New("cloud file provider is not running")
	ErrDataUnavailable    = errors.New("data not yet available")
)

// Classify maps a failure raised by a filesystem action to an ErrorCode.
// It never fails: anything unrecognized is Generic. A nil error is OK.
func Classify(err error) ErrorCode {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, fs.ErrPermission),
		errors.Is(err, ErrAccessDenied),
		matchErrno(err, unauthorizedErrnos):
		return Unauthorized
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, ErrVolumeUnavailable),
		matchErrno(err, notFoundErrnos):
		return NotFound
	case errors.Is(err, ErrInUse),
		matchErrno(err, inUseErrnos):
		return InUse
	case matchErrno(err, nameTooLongErrnos):
		return NameTooLong
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, fs.ErrInvalid),
		matchErrno(err, invalidArgumentErrnos):
		return NotAFolder
	case errors.Is(err, ErrProviderNotRunning),
		errors.Is(err, ErrDataUnavailable),
		matchErrno(err, unusablePathErrnos):
		return Generic
	default:
		return Generic
	}
}

func matchErrno(err error, set []syscall.Errno) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return slices.Contains(set, errno)
}
