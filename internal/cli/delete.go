package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/fileops/internal/audit"
	"github.com/babarot/fileops/internal/core/types"
	"github.com/babarot/fileops/internal/listing"
	"github.com/babarot/fileops/internal/ops"
	"github.com/babarot/fileops/internal/recyclebin"
	"github.com/babarot/fileops/internal/storage"
	"github.com/babarot/fileops/internal/ui/banner"
	"github.com/babarot/fileops/internal/ui/confirm"
	"github.com/babarot/fileops/internal/ui/table"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

func (c CLI) Delete(ctx context.Context, args []string) error {
	slog.Debug("cli.delete started")
	defer slog.Debug("cli.delete finished")

	if len(args) == 0 {
		return ErrNoArguments
	}

	wd, err := c.workingDirectory()
	if err != nil {
		return err
	}
	items, err := listing.FromArgs(wd, args)
	if err != nil {
		if len(items) == 0 {
			return err
		}
		fmt.Fprintln(c.stderr, err)
	}

	bin, err := recyclebin.New(c.config.RecycleBinPath())
	if err != nil {
		return fmt.Errorf("open recycle bin: %w", err)
	}

	view := listing.New(items, c.stdout, c.option.Rm.Verbose)
	app := ops.Context{
		WorkingDirectory: wd,
		RecycleBinRoot:   bin.Root(),
		ViewModel:        view,
		Settings: ops.Settings{
			ConfirmDelete:         c.config.Core.ConfirmDelete && !c.option.Yes,
			CompletionBannerAfter: c.config.CompletionBannerAfter(),
			ProgressThreshold:     c.config.Core.Banner.ProgressThreshold,
		},
		RunID: c.runID,
	}

	var opts []ops.DeleterOption
	if c.config.Core.Audit.Enabled {
		store, err := audit.Open(c.config.AuditPath())
		if err != nil {
			slog.Warn("audit trail unavailable", "error", err)
		} else {
			defer store.Close()
			opts = append(opts, ops.WithRecorder(store))
		}
	}

	deleter := ops.NewDeleter(app,
		c.prompter(len(items)),
		c.banners(),
		c.escalator(),
		storage.NewLocal(bin),
		opts...,
	)

	mode := lo.Ternary(c.option.Permanent, types.PermanentDelete, types.Default)
	summary, err := deleter.DeleteWithStatus(ctx, types.DeleteRequest{Items: items, Mode: mode})
	if err != nil {
		return err
	}
	if summary.State != ops.Completed {
		return nil
	}

	red := color.New(color.FgRed).SprintFunc()
	for _, f := range summary.Failures {
		fmt.Fprintf(c.stderr, "%s: cannot delete '%s': %s\n", red("error"), f.Item.Path, f.Code)
	}
	if c.option.Rm.Verbose || len(summary.Failures) > 0 {
		table.Summary(c.stderr, summary.Deleted, summary.Total, summary.Elapsed)
	}
	return nil
}

// prompter and banners read answers from the same buffered stdin so a
// piped retry answer is not lost to the confirm read
func (c CLI) prompter(items int) *confirm.Prompter {
	return confirm.NewPrompter(c.stdin, items, c.config.UI.Style.Prompt)
}

func (c CLI) banners() *banner.Terminal {
	b := banner.New(c.stderr, c.stdin, c.config.UI)
	b.Live = confirm.IsTerminal(os.Stderr)
	return b
}
