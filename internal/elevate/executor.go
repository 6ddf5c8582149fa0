package elevate

import (
	"context"
	"fmt"
	"os"
)

// Executor carries out a validated request inside the helper
type Executor interface {
	Execute(ctx context.Context, op Operation, path string) error
}

// Recycler moves a path into the recycle bin
type Recycler interface {
	Put(path string) (string, error)
}

// LocalExecutor recycles through a bin or removes directly
type LocalExecutor struct {
	Bin Recycler
}

func (e *LocalExecutor) Execute(ctx context.Context, op Operation, path string) error {
	if _, err := os.Lstat(path); err != nil {
		return err
	}
	switch op {
	case MoveToBin:
		if e.Bin == nil {
			return fmt.Errorf("%s: no recycle bin configured", op)
		}
		_, err := e.Bin.Put(path)
		return err
	case DeleteItem:
		return os.RemoveAll(path)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}
