package recyclebin

import "errors"

var (
	// ErrNotFound is returned when a record cannot be found in the bin
	ErrNotFound = errors.New("record not found in recycle bin")

	// ErrInvalidRecord is returned when an info record cannot be parsed
	ErrInvalidRecord = errors.New("invalid recycle info record")

	// ErrUnsafePath is returned for paths that must never be recycled
	ErrUnsafePath = errors.New("refusing to recycle unsafe path")

	// ErrInsideBin is returned when recycling something already in the bin
	ErrInsideBin = errors.New("path is already inside the recycle bin")
)

// Error wraps an error with the bin operation and path that failed
type Error struct {
	// Op is the operation that failed (e.g., "put", "list", "parse")
	Op string

	// Path is the path of the item that caused the error
	Path string

	// Err is the underlying error
	Err error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidRecord returns true if the error is ErrInvalidRecord
func IsInvalidRecord(err error) bool {
	return errors.Is(err, ErrInvalidRecord)
}
