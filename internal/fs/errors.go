package fs

import (
	"errors"
	"fmt"
)

var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrCrossDeviceMove   = errors.New("cross-device move operation")
	ErrInvalidPath       = errors.New("invalid path specified")

	// ErrSourceRemains marks a copy that reached the destination while
	// part of the source could not be removed
	ErrSourceRemains = errors.New("source not fully removed after copy")
)

// MoveError represents an error that occurred during a move operation
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s %q -> %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// IsPartialMove reports a move whose destination holds a complete copy
// but whose source was only partly removed. The destination must be kept.
func IsPartialMove(err error) bool {
	return errors.Is(err, ErrSourceRemains)
}
