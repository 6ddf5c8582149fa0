// Package fsresult classifies filesystem failures into a closed set of
// error codes and carries them as typed results.
package fsresult

// ErrorCode is the result of a single filesystem action attempt
type ErrorCode int

const (
	// Generic is any failure that could not be classified more precisely
	Generic ErrorCode = iota - 1

	// OK is the only success code
	OK

	// Unauthorized indicates access or permission was denied
	Unauthorized

	// NotFound indicates the target, or the volume holding it, is gone
	NotFound

	// InUse indicates the target is open or locked elsewhere
	InUse

	// NameTooLong indicates the path exceeds the system length limit
	NameTooLong

	// NotAFolder indicates an invalid argument, typically a file path
	// given where a folder was required
	NotAFolder

	// NotAFile indicates a folder path given where a file was required
	NotAFile
)

func (c ErrorCode) String() string {
	switch c {
	case OK:
		return "OK"
	case Unauthorized:
		return "UNAUTHORIZED"
	case NotFound:
		return "NOTFOUND"
	case InUse:
		return "INUSE"
	case NameTooLong:
		return "NAMETOOLONG"
	case NotAFolder:
		return "NOTAFOLDER"
	case NotAFile:
		return "NOTAFILE"
	default:
		return "GENERIC"
	}
}

// IsOk reports whether c is the success code
func (c ErrorCode) IsOk() bool {
	return c == OK
}
