package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/fsresult"
	"github.com/babarot/fileops/internal/listing"
	"github.com/babarot/fileops/internal/ops"
	"github.com/babarot/fileops/internal/storage"
)

func (c CLI) Create(ctx context.Context) error {
	slog.Debug("cli.create started")
	defer slog.Debug("cli.create finished")

	kind, ok := types.ParseCreateKind(c.option.Create.Kind)
	if !ok {
		return fmt.Errorf("unknown item kind: %q", c.option.Create.Kind)
	}
	wd, err := c.workingDirectory()
	if err != nil {
		return err
	}

	creator := ops.NewCreator(ops.Context{
		WorkingDirectory: wd,
		ViewModel:        listing.New(nil, c.stdout, true),
		RunID:            c.runID,
	}, c.banners(), storage.NewLocal(nil))

	res := creator.Create(ctx, kind, c.option.Create.Name)
	switch code := res.ErrorCode(); code {
	case fsresult.OK, fsresult.Unauthorized:
		// access denied has been shown as a banner
		return nil
	default:
		return fmt.Errorf("create %s in %s: %s", kind, wd, code)
	}
}
