package ops

import (
	"context"
	"log/slog"
	"strings"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/fsresult"
)

var defaultNames = map[types.CreateKind]string{
	types.CreateFolder:       "New Folder",
	types.CreateTextDocument: "New Text Document",
	types.CreateBitmapImage:  "New Bitmap Image",
}

var extensions = map[types.CreateKind]string{
	types.CreateTextDocument: ".txt",
	types.CreateBitmapImage:  ".bmp",
}

// Creator adds new items to the working directory
type Creator struct {
	app     Context
	banners Banners
	mutator Mutator
}

// NewCreator wires a Creator
func NewCreator(c Context, banners Banners, mutator Mutator) *Creator {
	return &Creator{app: c, banners: banners, mutator: mutator}
}

// ItemName returns the name an item of kind will be created with. A
// blank name falls back to the default; files get their extension
// appended.
func ItemName(kind types.CreateKind, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultNames[kind]
	}
	return name + extensions[kind]
}

// Create makes a new item of kind in the working directory, choosing a
// unique name on collision. The created path is reported to the view
// model.
func (c *Creator) Create(ctx context.Context, kind types.CreateKind, name string) fsresult.Result[string] {
	name = ItemName(kind, name)
	dir := c.app.WorkingDirectory

	var res fsresult.Result[string]
	if kind == types.CreateFolder {
		res = c.mutator.CreateFolder(ctx, dir, name)
	} else {
		res = c.mutator.CreateFile(ctx, dir, name)
	}

	path, ok := res.Value()
	if !ok {
		slog.Warn("create failed", "kind", kind, "dir", dir, "name", name, "code", res.ErrorCode())
		if res.ErrorCode() == fsresult.Unauthorized && c.banners != nil {
			c.banners.Post(Banner{
				Title:    "Access Denied",
				Detail:   "You do not have permission to create items in this folder.",
				Severity: types.Error,
			})
		}
		return res
	}

	slog.Info("created", "kind", kind, "path", path)
	if c.app.ViewModel != nil {
		if err := c.app.ViewModel.AddItem(ctx, path); err != nil {
			slog.Warn("view model refused new item", "path", path, "error", err)
		}
	}
	return res
}
