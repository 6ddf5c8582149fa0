// Package elevate asks a trusted helper process to perform a delete the
// current process was not allowed to do. One request carries one
// operation on one path and gets exactly one Success or Failure back.
package elevate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/fs"
)

// Arguments is the only request kind the helper accepts
const Arguments = "FileOperation"

// Operation is the helper-side action
type Operation string

const (
	// MoveToBin recycles the path
	MoveToBin Operation = "MoveToBin"
	// DeleteItem removes the path permanently
	DeleteItem Operation = "DeleteItem"
)

// OperationFor maps a delete mode to the helper operation
func OperationFor(mode types.DeleteMode) Operation {
	if mode == types.PermanentDelete {
		return DeleteItem
	}
	return MoveToBin
}

// Status is the helper's terminal answer
type Status string

const (
	Success Status = "Success"
	Failure Status = "Failure"
)

var (
	ErrUnknownArguments = errors.New("unknown request arguments")
	ErrUnknownOperation = errors.New("unknown file operation")
	ErrRelativePath     = errors.New("path must be absolute")
	ErrUnsafePath       = errors.New("path is unsafe to modify")
)

// Request is the wire form of one escalation
type Request struct {
	Arguments string    `json:"Arguments"`
	FileOp    Operation `json:"fileop"`
	FilePath  string    `json:"filepath"`
}

// Response is the wire form of the helper's answer
type Response struct {
	Status Status `json:"status"`
}

// NewRequest builds a request for op on path
func NewRequest(op Operation, path string) Request {
	return Request{
		Arguments: Arguments,
		FileOp:    op,
		FilePath:  path,
	}
}

// Validate rejects anything the helper must not act on
func (r Request) Validate() error {
	if r.Arguments != Arguments {
		return fmt.Errorf("%w: %q", ErrUnknownArguments, r.Arguments)
	}
	switch r.FileOp {
	case MoveToBin, DeleteItem:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, r.FileOp)
	}
	if !filepath.IsAbs(r.FilePath) {
		return fmt.Errorf("%w: %q", ErrRelativePath, r.FilePath)
	}
	if unsafe, _ := fs.IsUnsafePath(r.FilePath); unsafe {
		return fmt.Errorf("%w: %q", ErrUnsafePath, r.FilePath)
	}
	return nil
}

func writeMessage(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func readMessage(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
