// Package listing turns command-line arguments into the items a delete
// works on, and tracks what happened to them.
package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/fs"
	"github.com/babarot/fileops/internal/ops"
	"github.com/samber/lo"
)

// FromArgs resolves args against wd. Missing items are kept as files so
// the delete reports them per item; ".", ".." and the root are rejected.
func FromArgs(wd string, args []string) ([]types.ListedItem, error) {
	var errs []error
	items := make([]types.ListedItem, 0, len(args))
	for _, arg := range lo.Uniq(args) {
		if unsafe, err := fs.IsUnsafePath(arg); err != nil || unsafe {
			errs = append(errs, types.NewValidationError(arg,
				fmt.Sprintf("refusing to remove '.' or '..' directory: skipping %q", arg)))
			continue
		}
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		path = filepath.Clean(path)

		kind := types.File
		if fi, err := os.Lstat(path); err == nil && fi.IsDir() {
			kind = types.Folder
		}
		items = append(items, types.NewListedItem(path, kind))
	}
	return items, errors.Join(errs...)
}

// Listing is the view-model for one invocation
type Listing struct {
	mu      sync.Mutex
	items   []types.ListedItem
	added   []string
	out     io.Writer
	verbose bool
}

var _ ops.ViewModel = (*Listing)(nil)

// New returns a Listing over items. With verbose set every change is
// echoed to out.
func New(items []types.ListedItem, out io.Writer, verbose bool) *Listing {
	return &Listing{
		items:   items,
		out:     out,
		verbose: verbose,
	}
}

// Items returns the items not removed so far
func (l *Listing) Items() []types.ListedItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]types.ListedItem(nil), l.items...)
}

// Added returns the paths created during the invocation
func (l *Listing) Added() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.added...)
}

func (l *Listing) RemoveItem(_ context.Context, item types.ListedItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, idx, found := lo.FindIndexOf(l.items, func(i types.ListedItem) bool {
		return i.Path == item.Path
	})
	if !found {
		return fmt.Errorf("%s: not listed", item.Path)
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	if l.verbose && l.out != nil {
		fmt.Fprintf(l.out, "removed '%s'\n", item.Path)
	}
	return nil
}

func (l *Listing) AddItem(_ context.Context, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.added = append(l.added, path)
	if l.out != nil {
		fmt.Fprintf(l.out, "created '%s'\n", path)
	}
	return nil
}
